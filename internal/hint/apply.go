package hint

import (
	"github.com/roach88/ordermode/internal/ir"
	"github.com/roach88/ordermode/internal/ordering"
)

// Apply returns the ordering that results from granting h. It never mutates
// current and always returns a fresh slice.
//
// Anchor: the event is spliced from its current index to h.Position in the
// full ordering. An unknown event id or a position outside [0, len) is a
// no-op, as is an event already at its position.
//
// Relative and bracket hints never change the ordering.
func Apply(current []string, h ir.Hint) []string {
	switch v := h.(type) {
	case ir.AnchorHint:
		from := ordering.IndexOf(current, v.EventID)
		if from < 0 || v.Position < 0 || v.Position >= len(current) {
			return clone(current)
		}
		return ordering.Move(current, from, v.Position)
	case ir.RelativeHint, ir.BracketHint:
		return clone(current)
	}
	// Hint is sealed, so only a nil hint gets here.
	return clone(current)
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
