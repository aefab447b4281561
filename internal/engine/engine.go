package engine

import (
	"log/slog"

	"github.com/roach88/ordermode/internal/hint"
	"github.com/roach88/ordermode/internal/ir"
	"github.com/roach88/ordermode/internal/ordering"
)

// Context is the read-only puzzle data a state is reduced against.
// Baseline is the canonical correct order; Events are used by hint generation.
type Context struct {
	Baseline []string
	Events   []ir.Event
}

// ContextFromPuzzle builds a Context from a compiled puzzle.
func ContextFromPuzzle(p ir.Puzzle) Context {
	return Context{Baseline: p.Baseline, Events: p.Events}
}

// Engine reduces actions against a fixed Context.
type Engine struct {
	ctx    Context
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for recovery diagnostics.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine for ctx. Baseline and Events are copied so later
// changes by the caller cannot affect reductions.
func New(ctx Context, opts ...Option) *Engine {
	e := &Engine{
		ctx: Context{
			Baseline: append([]string(nil), ctx.Baseline...),
			Events:   append([]ir.Event(nil), ctx.Events...),
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Context returns a copy of the engine's puzzle context.
func (e *Engine) Context() Context {
	return Context{
		Baseline: append([]string(nil), e.ctx.Baseline...),
		Events:   append([]ir.Event(nil), e.ctx.Events...),
	}
}

// Initialize builds a consistent state from a raw ordering (freshly shuffled
// or restored from a snapshot) and the hints already granted.
//
//  1. raw is validated against the baseline; any defect falls back to baseline.
//  2. Hints are admitted in order: duplicates and malformed or conflicting
//     anchors are dropped, everything else is retained.
//  3. The ordering is projected to the unlocked subsequence and reassembled
//     with each anchored event at its position.
func (e *Engine) Initialize(raw []string, hints []ir.Hint) OrderState {
	base, repaired := ordering.Repair(raw, e.ctx.Baseline)
	if repaired {
		e.logger.Debug("ordering replaced by baseline",
			"raw_length", len(raw),
			"baseline_length", len(e.ctx.Baseline),
		)
	}

	adm := e.admit(admission{keys: map[string]bool{}}, base, hints)
	return OrderState{
		ordering: e.place(base, adm.locks),
		hints:    adm.hints,
		keys:     adm.keys,
		locks:    adm.locks,
	}
}

// Reduce applies one action and returns the resulting state. When the action
// is a no-op (locked card, duplicate hint, malformed input) the input state
// is returned unchanged, including its version.
func (e *Engine) Reduce(s OrderState, a Action) OrderState {
	switch act := a.(type) {
	case Move:
		return e.move(s, act)
	case ApplyHint:
		return e.applyHint(s, act)
	case Hydrate:
		return e.hydrate(s, act)
	default:
		return s
	}
}

// Select returns the current full ordering.
func Select(s OrderState) []string {
	return s.Ordering()
}

// Solved reports whether the state's ordering equals the baseline.
func (e *Engine) Solved(s OrderState) bool {
	return ordering.Equal(s.ordering, e.ctx.Baseline)
}

// move relocates an unlocked card within unlocked space.
func (e *Engine) move(s OrderState, m Move) OrderState {
	if s.locks.IsLocked(m.EventID) {
		return s
	}
	sub := ordering.Project(s.ordering, s.locks)
	from := ordering.IndexOf(sub, m.EventID)
	if from < 0 {
		return s
	}

	full, ok := ordering.Reassemble(ordering.Move(sub, from, m.TargetIndex), s.locks, len(s.ordering))
	if !ok || ordering.Equal(full, s.ordering) {
		return s
	}
	return s.next(full, s.hints, s.keys, s.locks)
}

// applyHint grants a single hint.
//
// For anchors the splice from hint.Apply decides where the unlocked cards
// end up relative to each other; reassembly then pins every lock, including
// earlier ones the splice may have shifted.
func (e *Engine) applyHint(s OrderState, a ApplyHint) OrderState {
	if a.Hint == nil {
		return s
	}
	adm := e.admit(s.admission(), s.ordering, []ir.Hint{a.Hint})
	if len(adm.hints) == len(s.hints) {
		return s
	}

	full := s.ordering
	if _, ok := a.Hint.(ir.AnchorHint); ok {
		full = e.place(hint.Apply(s.ordering, a.Hint), adm.locks)
	}
	return s.next(full, adm.hints, adm.keys, adm.locks)
}

// hydrate merges an externally supplied hint list. Anchor placement under
// "fixed slot, fill remainder in order" is commutative, so this equals
// granting the new hints one at a time.
func (e *Engine) hydrate(s OrderState, h Hydrate) OrderState {
	adm := e.admit(s.admission(), s.ordering, h.Hints)
	if len(adm.hints) == len(s.hints) {
		return s
	}
	return s.next(e.place(s.ordering, adm.locks), adm.hints, adm.keys, adm.locks)
}

// place projects current into unlocked space and reassembles it with locks.
func (e *Engine) place(current []string, locks ordering.Locks) []string {
	full, ok := ordering.Reassemble(ordering.Project(current, locks), locks, len(current))
	if !ok {
		e.logger.Warn("reassembly rejected inconsistent locks", "locks", locks.Len(), "length", len(current))
		return append([]string(nil), current...)
	}
	return full
}

// admission is the accumulated hint list with its derived indexes.
type admission struct {
	hints []ir.Hint
	keys  map[string]bool
	locks ordering.Locks
}

// admit appends each hint in incoming to adm unless it is a duplicate or a
// malformed anchor. current is the full ordering anchors are checked against.
// adm is copied before modification.
func (e *Engine) admit(adm admission, current []string, incoming []ir.Hint) admission {
	out := admission{
		hints: append([]ir.Hint(nil), adm.hints...),
		keys:  make(map[string]bool, len(adm.keys)+len(incoming)),
		locks: adm.locks,
	}
	for k := range adm.keys {
		out.keys[k] = true
	}

	for _, h := range incoming {
		if h == nil {
			continue
		}
		key := ir.HintKey(h)
		if out.keys[key] {
			continue
		}
		if anchor, ok := h.(ir.AnchorHint); ok {
			if reason := anchorDefect(anchor, current, out.locks); reason != "" {
				e.logger.Debug("anchor hint dropped",
					"event_id", anchor.EventID,
					"position", anchor.Position,
					"reason", reason,
				)
				continue
			}
			out.locks = out.locks.With(anchor.EventID, anchor.Position)
		}
		out.keys[key] = true
		out.hints = append(out.hints, h)
	}
	return out
}

// anchorDefect returns why an anchor cannot be granted, or "" if it can.
func anchorDefect(a ir.AnchorHint, current []string, locks ordering.Locks) string {
	switch {
	case ordering.IndexOf(current, a.EventID) < 0:
		return "unknown event"
	case a.Position < 0 || a.Position >= len(current):
		return "position out of range"
	case !locks.CanLock(a.EventID, a.Position):
		return "conflicts with existing anchor"
	}
	return ""
}
