package session

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/roach88/ordermode/internal/engine"
	"github.com/roach88/ordermode/internal/hint"
	"github.com/roach88/ordermode/internal/ir"
)

// Session is one live attempt at a puzzle.
type Session struct {
	mu        sync.Mutex
	attemptID string
	puzzle    ir.Puzzle
	engine    *engine.Engine
	state     engine.OrderState
	clock     *Clock
	journal   Journal
	logger    *slog.Logger
	width     int
}

type config struct {
	journal Journal
	ids     IDGenerator
	logger  *slog.Logger
	width   int
}

// Option configures Start and Resume.
type Option func(*config)

// WithJournal persists the attempt and every state-changing action.
// Without a journal the session is memory-only.
func WithJournal(j Journal) Option {
	return func(c *config) { c.journal = j }
}

// WithIDGenerator overrides the attempt id source.
// Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(c *config) {
		if g != nil {
			c.ids = g
		}
	}
}

// WithLogger sets the logger for the session and its engine.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBracketWidth sets the half-width of purchased bracket hints.
// Default: hint.DefaultBracketWidth.
func WithBracketWidth(w int) Option {
	return func(c *config) { c.width = w }
}

func newConfig(opts []Option) config {
	c := config{
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
		width:  hint.DefaultBracketWidth,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func newSession(id string, puzzle ir.Puzzle, clock *Clock, c config) *Session {
	return &Session{
		attemptID: id,
		puzzle:    puzzle,
		engine:    engine.New(engine.ContextFromPuzzle(puzzle), engine.WithLogger(c.logger)),
		clock:     clock,
		journal:   c.journal,
		logger:    c.logger,
		width:     c.width,
	}
}

// Start creates a new attempt at puzzle from a raw ordering (typically a
// shuffle of the baseline) and any hints already granted, and journals it.
// Ids are taken in NFC, as the journal stores them.
func Start(ctx context.Context, puzzle ir.Puzzle, raw []string, hints []ir.Hint, opts ...Option) (*Session, error) {
	raw = ir.NormalizeIDs(raw)
	hints = ir.NormalizeHints(hints)

	c := newConfig(opts)
	s := newSession(c.ids.Generate(), puzzle, NewClock(), c)
	s.state = s.engine.Initialize(raw, hints)

	if s.journal != nil {
		err := s.journal.WriteAttempt(ctx, Attempt{
			ID:           s.attemptID,
			PuzzleID:     puzzle.ID,
			Baseline:     append([]string(nil), puzzle.Baseline...),
			RawOrdering:  append([]string(nil), raw...),
			InitialHints: ir.Records(hints),
		})
		if err != nil {
			return nil, fmt.Errorf("journal attempt: %w", err)
		}
	}

	s.logger.Debug("attempt started",
		"attempt_id", s.attemptID,
		"puzzle_id", puzzle.ID,
		"hints", len(hints),
	)
	return s, nil
}

// AttemptID returns the attempt's id.
func (s *Session) AttemptID() string {
	return s.attemptID
}

// Puzzle returns the puzzle being played.
func (s *Session) Puzzle() ir.Puzzle {
	return s.puzzle
}

// State returns the current state.
func (s *Session) State() engine.OrderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Seq returns the seq of the last journaled action, 0 if none.
func (s *Session) Seq() int64 {
	return s.clock.Current()
}

// Solved reports whether the current ordering equals the baseline.
func (s *Session) Solved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Solved(s.state)
}

// Move drags eventID to targetIndex in unlocked space.
func (s *Session) Move(ctx context.Context, eventID string, targetIndex int) (engine.OrderState, error) {
	return s.Do(ctx, engine.Move{EventID: eventID, TargetIndex: targetIndex})
}

// ApplyHint grants h.
func (s *Session) ApplyHint(ctx context.Context, h ir.Hint) (engine.OrderState, error) {
	return s.Do(ctx, engine.ApplyHint{Hint: h})
}

// Hydrate merges hints from an external source.
func (s *Session) Hydrate(ctx context.Context, hints []ir.Hint) (engine.OrderState, error) {
	return s.Do(ctx, engine.Hydrate{Hints: hints})
}

// Do reduces a and journals it when the state changed. No-op actions are
// not journaled and do not advance the clock.
func (s *Session) Do(ctx context.Context, a engine.Action) (engine.OrderState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.do(ctx, a)
	return s.state, err
}

// do reduces under s.mu and reports whether the state changed.
// On a journal failure the in-memory state is left untouched.
func (s *Session) do(ctx context.Context, a engine.Action) (bool, error) {
	a = engine.NormalizeAction(a)
	next := s.engine.Reduce(s.state, a)
	if next.Version() == s.state.Version() {
		return false, nil
	}

	if s.journal != nil {
		hash, err := next.Hash()
		if err != nil {
			return false, fmt.Errorf("hash state: %w", err)
		}
		entry := Entry{
			AttemptID: s.attemptID,
			Seq:       s.clock.Current() + 1,
			Action:    a.Record(),
			StateHash: hash,
		}
		if err := s.journal.AppendAction(ctx, entry); err != nil {
			return false, fmt.Errorf("journal %s: %w", entry.Action.Type, err)
		}
	}

	s.clock.Next()
	s.state = next
	return true, nil
}

// BuyHint generates a hint of the requested kind for the current state and
// grants it.
//
// Exclusions come from the hints already granted: no second anchor for an
// anchored event or an anchored slot, no repeat of a relative pair, no second
// bracket for an event. A nil seed takes the first candidate. Returns a NO_HINT_AVAILABLE
// error when there is nothing left to reveal and UNKNOWN_HINT_KIND for any
// other kind.
func (s *Session) BuyHint(ctx context.Context, kind ir.HintKind, seed *int64) (ir.Hint, engine.OrderState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok, err := s.generate(kind, seed)
	if err != nil {
		return nil, s.state, err
	}
	if !ok {
		return nil, s.state, s.noHint(kind)
	}

	changed, err := s.do(ctx, engine.ApplyHint{Hint: h})
	if err != nil {
		return nil, s.state, err
	}
	if !changed {
		// The relative fallback can propose a pair that was already granted.
		return nil, s.state, s.noHint(kind)
	}

	s.logger.Debug("hint purchased",
		"attempt_id", s.attemptID,
		"kind", string(kind),
		"key", ir.HintKey(h),
	)
	return h, s.state, nil
}

func (s *Session) generate(kind ir.HintKind, seed *int64) (ir.Hint, bool, error) {
	switch kind {
	case ir.HintAnchor:
		h, ok := hint.GenerateAnchor(s.state.Ordering(), s.puzzle.Baseline, hint.AnchorOptions{
			Seed:             seed,
			ExcludeEventIDs:  s.state.AnchoredEventIDs(),
			ExcludePositions: slices.Collect(maps.Keys(s.state.Locked())),
		})
		return h, ok, nil
	case ir.HintRelative:
		h, ok := hint.GenerateRelative(s.state.Ordering(), s.puzzle.Events, hint.RelativeOptions{
			Seed:         seed,
			ExcludePairs: s.state.RelativePairs(),
		})
		return h, ok, nil
	case ir.HintBracket:
		ev, ok := hint.BracketTarget(s.puzzle.Events, s.state.BracketedEventIDs(), seed)
		if !ok {
			return nil, false, nil
		}
		return hint.GenerateBracket(ev, s.width), true, nil
	default:
		return nil, false, &Error{
			Code:      ErrCodeUnknownHintKind,
			Message:   fmt.Sprintf("unknown hint kind %q", kind),
			AttemptID: s.attemptID,
		}
	}
}

func (s *Session) noHint(kind ir.HintKind) error {
	return &Error{
		Code:      ErrCodeNoHintAvailable,
		Message:   fmt.Sprintf("no %s hint available", kind),
		AttemptID: s.attemptID,
	}
}
