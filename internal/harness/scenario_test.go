package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ordermode/internal/ir"
)

// writeScenario writes content to dir/test.yaml and returns the path.
func writeScenario(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	dir := t.TempDir()
	puzzle, err := os.ReadFile(filepath.Join("testdata", "puzzles", "letters.yaml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "letters.yaml"), puzzle, 0644))

	path := writeScenario(t, dir, `
name: test_scenario
description: "Test scenario for validation"
puzzle: letters.yaml
initial: [b, a, c, d, e, f]
hints:
  - {type: anchor, event_id: c, position: 2}
steps:
  - move: {event_id: a, target_index: 0}
  - hint: {type: relative, earlier_event_id: a, later_event_id: b}
  - hydrate:
      - {type: bracket, event_id: d, year_range: [1041, 1091]}
  - buy: {kind: anchor, seed: 4}
    expect_error: NO_HINT_AVAILABLE
assertions:
  - {type: ordering, expect: [a, b, c, d, e, f]}
  - {type: locked, locked: {2: c}}
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, filepath.Join(dir, "letters.yaml"), scenario.Puzzle)
	assert.Equal(t, []string{"b", "a", "c", "d", "e", "f"}, scenario.Initial)
	require.Len(t, scenario.Hints, 1)
	assert.Equal(t, 2, *scenario.Hints[0].Position)

	require.Len(t, scenario.Steps, 4)
	assert.Equal(t, StepMove, scenario.Steps[0].Kind())
	assert.Equal(t, StepHint, scenario.Steps[1].Kind())
	assert.Equal(t, StepHydrate, scenario.Steps[2].Kind())
	assert.Equal(t, StepBuy, scenario.Steps[3].Kind())
	assert.Equal(t, ir.HintAnchor, scenario.Steps[3].Buy.Kind)
	assert.Equal(t, int64(4), *scenario.Steps[3].Buy.Seed)
	assert.Equal(t, "NO_HINT_AVAILABLE", scenario.Steps[3].ExpectError)

	assert.Equal(t, map[int]string{2: "c"}, scenario.Assertions[1].Locked)
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_PuzzleNotFound(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: test
description: "Puzzle missing"
puzzle: missing.yaml
assertions:
  - {type: permutation}
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "puzzle file not found")
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "unknown field",
			content: `
name: test
description: "typo"
events: [{id: a, year: 1, text: x}, {id: b, year: 2, text: y}]
assertion:
  - {type: permutation}
`,
			wantErr: "field assertion not found",
		},
		{
			name: "missing name",
			content: `
description: "no name"
events: [{id: a, year: 1, text: x}, {id: b, year: 2, text: y}]
assertions: [{type: permutation}]
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			content: `
name: test
events: [{id: a, year: 1, text: x}, {id: b, year: 2, text: y}]
assertions: [{type: permutation}]
`,
			wantErr: "description is required",
		},
		{
			name: "no puzzle",
			content: `
name: test
description: "no puzzle"
assertions: [{type: permutation}]
`,
			wantErr: "puzzle or events is required",
		},
		{
			name: "puzzle and events",
			content: `
name: test
description: "both"
puzzle: letters.yaml
events: [{id: a, year: 1, text: x}, {id: b, year: 2, text: y}]
assertions: [{type: permutation}]
`,
			wantErr: "mutually exclusive",
		},
		{
			name: "no assertions",
			content: `
name: test
description: "nothing checked"
events: [{id: a, year: 1, text: x}, {id: b, year: 2, text: y}]
`,
			wantErr: "assertions list is required",
		},
		{
			name: "malformed initial hint",
			content: `
name: test
description: "anchor without position"
events: [{id: a, year: 1, text: x}, {id: b, year: 2, text: y}]
hints: [{type: anchor, event_id: a}]
assertions: [{type: permutation}]
`,
			wantErr: "hints[0]: anchor hint requires event_id and position",
		},
		{
			name: "two actions in one step",
			content: `
name: test
description: "ambiguous step"
events: [{id: a, year: 1, text: x}, {id: b, year: 2, text: y}]
steps:
  - move: {event_id: a, target_index: 1}
    buy: {kind: anchor}
assertions: [{type: permutation}]
`,
			wantErr: "steps[0]: exactly one of move, hint, hydrate, buy is required",
		},
		{
			name: "empty step",
			content: `
name: test
description: "empty step"
events: [{id: a, year: 1, text: x}, {id: b, year: 2, text: y}]
steps:
  - {}
assertions: [{type: permutation}]
`,
			wantErr: "steps[0]: exactly one of",
		},
		{
			name: "move without event",
			content: `
name: test
description: "move without event"
events: [{id: a, year: 1, text: x}, {id: b, year: 2, text: y}]
steps:
  - move: {target_index: 1}
assertions: [{type: permutation}]
`,
			wantErr: "steps[0]: move requires event_id",
		},
		{
			name: "buy without kind",
			content: `
name: test
description: "buy without kind"
events: [{id: a, year: 1, text: x}, {id: b, year: 2, text: y}]
steps:
  - buy: {seed: 3}
assertions: [{type: permutation}]
`,
			wantErr: "steps[0]: buy requires kind",
		},
		{
			name: "expect_error on move",
			content: `
name: test
description: "moves cannot fail"
events: [{id: a, year: 1, text: x}, {id: b, year: 2, text: y}]
steps:
  - move: {event_id: a, target_index: 1}
    expect_error: NO_HINT_AVAILABLE
assertions: [{type: permutation}]
`,
			wantErr: "expect_error is only valid on buy steps",
		},
		{
			name: "unknown assertion",
			content: `
name: test
description: "bad assertion"
events: [{id: a, year: 1, text: x}, {id: b, year: 2, text: y}]
assertions: [{type: vibes}]
`,
			wantErr: `assertions[0]: unknown assertion type "vibes"`,
		},
		{
			name: "ordering without expect",
			content: `
name: test
description: "ordering needs expect"
events: [{id: a, year: 1, text: x}, {id: b, year: 2, text: y}]
assertions: [{type: ordering}]
`,
			wantErr: "expect is required for ordering",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_InlinePuzzle(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: inline
description: "Inline events with a default baseline"
events:
  - {id: late, year: 2000, text: "late"}
  - {id: early, year: -300, text: "early"}
assertions:
  - {type: ordering, expect: [early, late]}
  - {type: solved, solved: true}
`))
	require.NoError(t, err)
	assert.Empty(t, scenario.Puzzle)
	require.Len(t, scenario.Events, 2)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}
