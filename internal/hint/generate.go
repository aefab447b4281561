package hint

import (
	"sort"

	"github.com/roach88/ordermode/internal/ir"
)

// DefaultBracketWidth is the half-width in years of a generated bracket.
const DefaultBracketWidth = 25

// AnchorOptions configures GenerateAnchor.
type AnchorOptions struct {
	// Seed selects among candidates; nil takes the first in index order.
	Seed *int64
	// ExcludeEventIDs are events that already have an anchor hint.
	ExcludeEventIDs []string
	// ExcludePositions are slots already held by an anchor, possibly a
	// wrong one granted elsewhere.
	ExcludePositions []int
}

// RelativeOptions configures GenerateRelative.
type RelativeOptions struct {
	// Seed selects among candidates; nil takes the first in scan order.
	Seed *int64
	// ExcludePairs are relative hints already given. A pair matches in
	// either orientation.
	ExcludePairs []ir.RelativeHint
}

// Seed is a convenience for building option structs.
func Seed(s int64) *int64 { return &s }

// GenerateAnchor proposes an anchor for a slot the player has wrong.
//
// Candidates are the indices i where current[i] != correct[i], correct[i] is
// not excluded and i is not an excluded position; the hint fixes correct[i]
// at i. ok is false when the board
// is already correct or every candidate is excluded: no hint is available.
func GenerateAnchor(current, correct []string, opts AnchorOptions) (h ir.AnchorHint, ok bool) {
	excluded := make(map[string]bool, len(opts.ExcludeEventIDs))
	for _, id := range opts.ExcludeEventIDs {
		excluded[id] = true
	}
	held := make(map[int]bool, len(opts.ExcludePositions))
	for _, pos := range opts.ExcludePositions {
		held[pos] = true
	}

	var candidates []ir.AnchorHint
	for i, want := range correct {
		if i < len(current) && current[i] == want {
			continue
		}
		if excluded[want] || held[i] {
			continue
		}
		candidates = append(candidates, ir.AnchorHint{EventID: want, Position: i})
	}
	return choose(candidates, opts.Seed)
}

// GenerateRelative proposes "X happened before Y" for a pair of adjacent cards
// that are chronologically inverted in current.
//
// When current has no inverted pair at all, it falls back to the two
// chronologically earliest events so a hint is always available for a solved
// board. ok is false only when every inverted pair is excluded, or there are
// fewer than two events.
func GenerateRelative(current []string, events []ir.Event, opts RelativeOptions) (h ir.RelativeHint, ok bool) {
	years := make(map[string]int, len(events))
	for _, e := range events {
		years[e.ID] = e.Year
	}

	excluded := make(map[[2]string]bool, len(opts.ExcludePairs))
	for _, p := range opts.ExcludePairs {
		excluded[[2]string{p.EarlierEventID, p.LaterEventID}] = true
		excluded[[2]string{p.LaterEventID, p.EarlierEventID}] = true
	}

	var candidates []ir.RelativeHint
	inverted := 0
	for i := 0; i+1 < len(current); i++ {
		left, right := current[i], current[i+1]
		ly, lok := years[left]
		ry, rok := years[right]
		if !lok || !rok || ly <= ry {
			continue
		}
		inverted++
		if excluded[[2]string{right, left}] {
			continue
		}
		candidates = append(candidates, ir.RelativeHint{EarlierEventID: right, LaterEventID: left})
	}

	if inverted == 0 {
		return earliestPair(events)
	}
	return choose(candidates, opts.Seed)
}

// earliestPair returns the two chronologically earliest events, ties broken
// by their order in events.
func earliestPair(events []ir.Event) (ir.RelativeHint, bool) {
	if len(events) < 2 {
		return ir.RelativeHint{}, false
	}
	sorted := make([]ir.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Year < sorted[j].Year
	})
	return ir.RelativeHint{EarlierEventID: sorted[0].ID, LaterEventID: sorted[1].ID}, true
}

// GenerateBracket returns a bracket of ±width years around the event's year.
// Arithmetic is plain signed addition, so brackets straddle 1 BCE / 1 CE
// without special cases. A negative width is treated as its magnitude.
func GenerateBracket(event ir.Event, width int) ir.BracketHint {
	if width < 0 {
		width = -width
	}
	return ir.BracketHint{
		EventID:   event.ID,
		YearRange: [2]int{event.Year - width, event.Year + width},
	}
}

// BracketTarget picks the event the next bracket hint should describe: the
// first (or seed-selected) event in events that is not in exclude.
func BracketTarget(events []ir.Event, exclude []string, seed *int64) (ir.Event, bool) {
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	var candidates []ir.Event
	for _, e := range events {
		if !skip[e.ID] {
			candidates = append(candidates, e)
		}
	}
	return choose(candidates, seed)
}
