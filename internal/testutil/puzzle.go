package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/ordermode/internal/ir"
	"github.com/roach88/ordermode/internal/ordering"
)

// LetterPuzzle returns a six-event puzzle with ids "a".."f" whose years
// increase in that order, so the baseline is a, b, c, d, e, f.
func LetterPuzzle() ir.Puzzle {
	events := []ir.Event{
		{ID: "a", Year: -500, Text: "event a"},
		{ID: "b", Year: -44, Text: "event b"},
		{ID: "c", Year: 476, Text: "event c"},
		{ID: "d", Year: 1066, Text: "event d"},
		{ID: "e", Year: 1492, Text: "event e"},
		{ID: "f", Year: 1969, Text: "event f"},
	}
	return ir.Puzzle{
		ID:       "letters",
		Events:   events,
		Baseline: []string{"a", "b", "c", "d", "e", "f"},
	}
}

// RequirePermutation fails the test unless got is a permutation of baseline.
func RequirePermutation(t testing.TB, got, baseline []string) {
	t.Helper()
	require.True(t, ordering.IsPermutation(got, baseline),
		"ordering %v is not a permutation of %v", got, baseline)
}

// RequireLocksHeld fails the test unless every anchor in hints sits at its
// position in got.
func RequireLocksHeld(t testing.TB, got []string, hints []ir.Hint) {
	t.Helper()
	for _, h := range hints {
		a, ok := h.(ir.AnchorHint)
		if !ok {
			continue
		}
		require.True(t, a.Position >= 0 && a.Position < len(got), "anchor %+v out of range", a)
		require.Equal(t, a.EventID, got[a.Position], "anchor %+v not held in %v", a, got)
	}
}
