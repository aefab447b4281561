package engine

import (
	"github.com/roach88/ordermode/internal/ir"
	"github.com/roach88/ordermode/internal/ordering"
)

// OrderState is an immutable snapshot of one puzzle attempt.
//
// Fields are unexported and every accessor returns a copy, so a state value
// can be shared freely; reductions build a new value instead of editing one.
type OrderState struct {
	ordering []string
	hints    []ir.Hint
	keys     map[string]bool // ir.HintKey of every granted hint
	locks    ordering.Locks
	version  int64
}

// Ordering returns a copy of the full ordering.
func (s OrderState) Ordering() []string {
	return append([]string(nil), s.ordering...)
}

// Hints returns the granted hints in insertion order.
func (s OrderState) Hints() []ir.Hint {
	return append([]ir.Hint(nil), s.hints...)
}

// Locked returns the locked positions as position → event id.
func (s OrderState) Locked() map[int]string {
	return s.locks.Map()
}

// IsLocked reports whether the event is fixed by an anchor hint.
func (s OrderState) IsLocked(eventID string) bool {
	return s.locks.IsLocked(eventID)
}

// Version counts the reductions that changed this state since Initialize.
func (s OrderState) Version() int64 {
	return s.version
}

// Hash returns the content-addressed identity of the ordering and hints.
func (s OrderState) Hash() (string, error) {
	return ir.StateHash(s.ordering, s.hints)
}

// AnchoredEventIDs returns the events that have an anchor hint.
func (s OrderState) AnchoredEventIDs() []string {
	var out []string
	for _, h := range s.hints {
		if a, ok := h.(ir.AnchorHint); ok {
			out = append(out, a.EventID)
		}
	}
	return out
}

// RelativePairs returns the relative hints granted so far.
func (s OrderState) RelativePairs() []ir.RelativeHint {
	var out []ir.RelativeHint
	for _, h := range s.hints {
		if r, ok := h.(ir.RelativeHint); ok {
			out = append(out, r)
		}
	}
	return out
}

// BracketedEventIDs returns the events that have a bracket hint.
func (s OrderState) BracketedEventIDs() []string {
	var out []string
	for _, h := range s.hints {
		if b, ok := h.(ir.BracketHint); ok {
			out = append(out, b.EventID)
		}
	}
	return out
}

// Snapshot is the serialisable view of a state, for rendering and output.
type Snapshot struct {
	Ordering []string       `json:"ordering"`
	Hints    ir.HintList    `json:"hints"`
	Locked   map[int]string `json:"locked,omitempty"`
	Version  int64          `json:"version"`
}

// Snapshot returns the serialisable view of s.
func (s OrderState) Snapshot() Snapshot {
	hints := s.Hints()
	if hints == nil {
		hints = []ir.Hint{}
	}
	return Snapshot{
		Ordering: s.Ordering(),
		Hints:    hints,
		Locked:   s.Locked(),
		Version:  s.version,
	}
}

func (s OrderState) admission() admission {
	return admission{hints: s.hints, keys: s.keys, locks: s.locks}
}

// next returns the successor state with the version advanced.
func (s OrderState) next(full []string, hints []ir.Hint, keys map[string]bool, locks ordering.Locks) OrderState {
	return OrderState{
		ordering: full,
		hints:    hints,
		keys:     keys,
		locks:    locks,
		version:  s.version + 1,
	}
}
