package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPuzzleFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"cue", "p.cue", `id: "p", events: [{id: "b", year: 2, text: "two"}, {id: "a", year: 1, text: "one"}]`},
		{"yaml", "p.yaml", "id: p\nevents:\n  - {id: b, year: 2, text: two}\n  - {id: a, year: 1, text: one}\n"},
		{"json", "p.json", `{"id":"p","events":[{"id":"b","year":2,"text":"two"},{"id":"a","year":1,"text":"one"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := LoadPuzzleFile(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, "p", p.ID)
			assert.Equal(t, []string{"a", "b"}, p.Baseline)
			assert.Empty(t, ValidatePuzzle(p))
		})
	}
}

func TestLoadPuzzleFile_Errors(t *testing.T) {
	_, err := LoadPuzzleFile(filepath.Join(t.TempDir(), "missing.cue"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadPuzzleFile(writeFile(t, "p.toml", "id = 'p'"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")

	_, err = LoadPuzzleFile(writeFile(t, "p.cue", `id: `))
	require.Error(t, err)
}

func TestLoadPuzzleFile_NormalizesIDs(t *testing.T) {
	path := writeFile(t, "p.yaml", "id: p\nevents:\n  - {id: \"cafe\\u0301\", year: 1686, text: Procope}\n  - {id: moon, year: 1969, text: Apollo}\nbaseline: [\"cafe\\u0301\", moon]\n")

	p, err := LoadPuzzleFile(path)
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", p.Events[0].ID)
	assert.Equal(t, []string{"caf\u00e9", "moon"}, p.Baseline)
	assert.Empty(t, ValidatePuzzle(p))
}
