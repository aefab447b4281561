package session

import (
	"context"
	"fmt"

	"github.com/roach88/ordermode/internal/engine"
	"github.com/roach88/ordermode/internal/ir"
)

// Resume rebuilds an attempt from its journal.
//
// The initial state is re-initialised from the journaled raw ordering and
// hints, then every entry is reduced in seq order. After each step the
// state hash must match the recorded one, otherwise a REPLAY_DIVERGED error
// names the first bad seq. The resumed session keeps journaling to j.
func Resume(ctx context.Context, j Journal, puzzle ir.Puzzle, attemptID string, opts ...Option) (*Session, error) {
	attempt, found, err := j.ReadAttempt(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("read attempt: %w", err)
	}
	if !found {
		return nil, &Error{Code: ErrCodeAttemptNotFound, Message: "no such attempt", AttemptID: attemptID}
	}
	if attempt.PuzzleID != puzzle.ID {
		return nil, &Error{
			Code:      ErrCodeReplayDiverged,
			Message:   fmt.Sprintf("attempt is for puzzle %q, not %q", attempt.PuzzleID, puzzle.ID),
			AttemptID: attemptID,
		}
	}

	initial, err := ir.HintsFromRecords(attempt.InitialHints)
	if err != nil {
		return nil, fmt.Errorf("decode initial hints: %w", err)
	}
	entries, err := j.ReadActions(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("read actions: %w", err)
	}

	c := newConfig(append(opts, WithJournal(j)))
	s := newSession(attemptID, puzzle, NewClock(), c)
	s.state = s.engine.Initialize(attempt.RawOrdering, initial)

	var last int64
	for _, e := range entries {
		state, err := replayEntry(s.engine, s.state, e)
		if err != nil {
			return nil, err
		}
		s.state = state
		last = e.Seq
	}
	s.clock = NewClockAt(last)

	c.logger.Debug("attempt resumed",
		"attempt_id", attemptID,
		"actions", len(entries),
		"version", s.state.Version(),
	)
	return s, nil
}

func replayEntry(eng *engine.Engine, state engine.OrderState, e Entry) (engine.OrderState, error) {
	act, err := engine.ActionFromRecord(e.Action)
	if err != nil {
		return state, fmt.Errorf("decode action seq=%d: %w", e.Seq, err)
	}
	next := eng.Reduce(state, act)
	hash, err := next.Hash()
	if err != nil {
		return state, fmt.Errorf("hash state seq=%d: %w", e.Seq, err)
	}
	if hash != e.StateHash {
		return state, &Error{
			Code:      ErrCodeReplayDiverged,
			Message:   fmt.Sprintf("state hash mismatch at seq %d: recorded %s, replayed %s", e.Seq, e.StateHash, hash),
			AttemptID: e.AttemptID,
		}
	}
	return next, nil
}
