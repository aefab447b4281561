package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ordermode/internal/ir"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "ordermode", cmd.Use)
	assert.Contains(t, cmd.Long, "chronological order")
	assert.Equal(t, ir.EngineVersion, cmd.Version)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"validate", "start", "move", "hint", "show", "replay", "test", "catalog"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestAttemptCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"move", "hint", "show", "replay"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			require.NotNil(t, sub.Flags().Lookup("db"))
			require.NotNil(t, sub.Flags().Lookup("puzzle"))
		})
	}

	hint, _, err := cmd.Find([]string{"hint"})
	require.NoError(t, err)
	kind := hint.Flags().Lookup("kind")
	require.NotNil(t, kind)
	assert.Equal(t, "anchor", kind.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	puzzle := writeFile(t, dir, "letters.yaml", lettersYAML)

	_, err := execute(t, NewRootCommand(), "--format", "xml", "validate", puzzle)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestRootDispatch(t *testing.T) {
	dir := t.TempDir()
	puzzle := writeFile(t, dir, "letters.yaml", lettersYAML)
	db := filepath.Join(dir, "game.db")

	out, err := execute(t, NewRootCommand(), "start", "--db", db, "--seed", "5", "--attempt", "root-1", puzzle)
	require.NoError(t, err)
	assert.Contains(t, out, "Attempt root-1 (puzzle letters")

	out, err = execute(t, NewRootCommand(), "--format", "json", "show", "--db", db, "--puzzle", puzzle, "root-1")
	require.NoError(t, err)
	var view AttemptView
	resp := decodeResponse(t, out, &view)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "root-1", view.AttemptID)
}
