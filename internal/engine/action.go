package engine

import (
	"fmt"

	"github.com/roach88/ordermode/internal/ir"
)

// Action is a sealed sum of the inputs Reduce accepts: Move, ApplyHint and
// Hydrate.
type Action interface {
	// Record returns the wire form persisted by the session journal.
	Record() ir.ActionRecord
	isAction()
}

// Move drags an unlocked card to TargetIndex in unlocked space (not the full
// ordering). Targets outside the subsequence are clamped.
type Move struct {
	EventID     string
	TargetIndex int
}

// ApplyHint grants one hint. The canonical correct order it is checked
// against is the engine's Context.Baseline.
type ApplyHint struct {
	Hint ir.Hint
}

// Hydrate merges a hint list from an external source such as a server
// snapshot.
type Hydrate struct {
	Hints []ir.Hint
}

func (Move) isAction()      {}
func (ApplyHint) isAction() {}
func (Hydrate) isAction()   {}

// Record implements Action.
func (m Move) Record() ir.ActionRecord {
	return ir.ActionRecord{Type: ir.ActionMove, EventID: m.EventID, TargetIndex: m.TargetIndex}
}

// Record implements Action.
func (a ApplyHint) Record() ir.ActionRecord {
	rec := ir.ActionRecord{Type: ir.ActionApplyHint}
	if a.Hint != nil {
		hr := ir.RecordOf(a.Hint)
		rec.Hint = &hr
	}
	return rec
}

// Record implements Action.
func (h Hydrate) Record() ir.ActionRecord {
	return ir.ActionRecord{Type: ir.ActionHydrate, Hints: ir.Records(h.Hints)}
}

// ActionFromRecord decodes a journaled action.
// Returns an error for unknown types or malformed hints.
func ActionFromRecord(r ir.ActionRecord) (Action, error) {
	switch r.Type {
	case ir.ActionMove:
		if r.EventID == "" {
			return nil, fmt.Errorf("move requires event_id")
		}
		return Move{EventID: r.EventID, TargetIndex: r.TargetIndex}, nil
	case ir.ActionApplyHint:
		if r.Hint == nil {
			return nil, fmt.Errorf("apply-hint requires hint")
		}
		h, err := r.Hint.Hint()
		if err != nil {
			return nil, fmt.Errorf("apply-hint: %w", err)
		}
		return ApplyHint{Hint: h}, nil
	case ir.ActionHydrate:
		hints, err := ir.HintsFromRecords(r.Hints)
		if err != nil {
			return nil, fmt.Errorf("hydrate: %w", err)
		}
		return Hydrate{Hints: hints}, nil
	default:
		return nil, fmt.Errorf("unknown action type %q", r.Type)
	}
}

// NormalizeAction returns a with every event id in NFC, the form the
// journal stores. Reducing the normalised action and replaying its record
// reach the same state.
func NormalizeAction(a Action) Action {
	switch act := a.(type) {
	case Move:
		act.EventID = ir.NormalizeID(act.EventID)
		return act
	case ApplyHint:
		act.Hint = ir.NormalizeHint(act.Hint)
		return act
	case Hydrate:
		act.Hints = ir.NormalizeHints(act.Hints)
		return act
	}
	return a
}
