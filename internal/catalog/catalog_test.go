package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "puzzles": {
    "1969": ["Apollo 11 lands on the Moon"],
    "-44": ["Caesar is assassinated"],
    "476": ["The Western Roman Empire falls"]
  },
  "meta": {"total_puzzles": 99, "date_range": "stale", "source": "manual"},
  "version": 2
}`

func TestParse_SortsYearsNumerically(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []int{-44, 476, 1969}, c.Years())
	assert.Equal(t, Meta{TotalPuzzles: 3, DateRange: "-44-1969"}, c.Meta(), "meta is derived, not read")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{"not json", `{`, "parse catalog"},
		{"non-integer year", `{"puzzles": {"MCMLXIX": ["x"]}}`, `invalid year "MCMLXIX"`},
		{"duplicate year", `{"puzzles": {"44": ["x"], "044": ["y"]}}`, "more than once"},
		{"clues not strings", `{"puzzles": {"44": [1]}}`, "parse puzzles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParse_MissingPuzzlesIsEmpty(t *testing.T) {
	c, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, c.Years())
	assert.Equal(t, Meta{}, c.Meta())
}

func TestAdd(t *testing.T) {
	c := New()

	require.NoError(t, c.Add(1999, []string{"  The euro is introduced  ", "", "Y2K fears peak"}))
	clues, ok := c.Clues(1999)
	require.True(t, ok)
	assert.Equal(t, []string{"The euro is introduced", "Y2K fears peak"}, clues)

	err := c.Add(1999, []string{"again"})
	assert.True(t, errors.Is(err, ErrYearExists))
	assert.Contains(t, err.Error(), "1999")
}

func TestUpdate(t *testing.T) {
	c := New()

	err := c.Update(-44, []string{"Ides of March"})
	assert.True(t, errors.Is(err, ErrYearNotFound))

	require.NoError(t, c.Add(-44, []string{"old"}))
	require.NoError(t, c.Update(-44, []string{"Ides of March"}))
	clues, _ := c.Clues(-44)
	assert.Equal(t, []string{"Ides of March"}, clues)
}

func TestAddUpdate_RequireClues(t *testing.T) {
	c := New()
	assert.ErrorIs(t, c.Add(1, []string{" ", ""}), ErrNoClues)
	assert.ErrorIs(t, c.Add(1, nil), ErrNoClues)

	_, ok := c.Clues(1)
	assert.False(t, ok, "failed add must not create the year")
}

func TestCleanClues_NFC(t *testing.T) {
	got := CleanClues([]string{" Cafe\u0301 society\n"})
	assert.Equal(t, []string{"Caf\u00e9 society"}, got)
}

func TestClues_ReturnsCopy(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(1, []string{"a"}))

	clues, _ := c.Clues(1)
	clues[0] = "mutated"

	again, _ := c.Clues(1)
	assert.Equal(t, []string{"a"}, again)
}

func TestEncode_Format(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, c.Add(-3000, []string{"Writing & <cuneiform> in Sumer", "Ménès unifies Egypt"}))

	got, err := c.Encode()
	require.NoError(t, err)

	want := `{
  "puzzles": {
    "-3000": [
      "Writing & <cuneiform> in Sumer",
      "Ménès unifies Egypt"
    ],
    "-44": [
      "Caesar is assassinated"
    ],
    "476": [
      "The Western Roman Empire falls"
    ],
    "1969": [
      "Apollo 11 lands on the Moon"
    ]
  },
  "meta": {
    "total_puzzles": 4,
    "date_range": "-3000-1969",
    "source": "manual"
  },
  "version": 2
}`
	assert.Equal(t, want, string(got))
}

func TestEncode_Empty(t *testing.T) {
	got, err := New().Encode()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"puzzles\": {},\n  \"meta\": {\n    \"total_puzzles\": 0,\n    \"date_range\": \"\"\n  }\n}", string(got))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzles.json")

	c := New()
	require.NoError(t, c.Add(1066, []string{"Battle of Hastings"}))
	require.NoError(t, c.Add(-753, []string{"Rome is founded"}))
	require.NoError(t, c.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{-753, 1066}, loaded.Years())

	first, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, loaded.Save(path))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second), "save is a fixed point")

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file cleaned up")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
