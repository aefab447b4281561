package store

import (
	"context"
	"fmt"

	"github.com/roach88/ordermode/internal/ir"
	"github.com/roach88/ordermode/internal/session"
)

// WriteAttempt inserts an attempt header.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - rewriting an id is
// silently ignored and keeps the original row.
//
// created_seq is assigned here as one past the highest existing value, so
// attempts list in insertion order; a.CreatedSeq is ignored.
func (s *Store) WriteAttempt(ctx context.Context, a session.Attempt) error {
	baseline, err := marshalIDs(a.Baseline)
	if err != nil {
		return fmt.Errorf("write attempt: %w", err)
	}
	raw, err := marshalIDs(a.RawOrdering)
	if err != nil {
		return fmt.Errorf("write attempt: %w", err)
	}
	hints, err := marshalHints(a.InitialHints)
	if err != nil {
		return fmt.Errorf("write attempt: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO attempts
		(id, puzzle_id, baseline, raw_ordering, initial_hints, created_seq)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(created_seq), 0) + 1 FROM attempts))
		ON CONFLICT(id) DO NOTHING
	`,
		a.ID,
		a.PuzzleID,
		baseline,
		raw,
		hints,
	)
	if err != nil {
		return fmt.Errorf("write attempt: %w", err)
	}

	return nil
}

// AppendAction inserts one journaled action.
// Uses ON CONFLICT DO NOTHING for idempotency - a second entry for the same
// (attempt_id, seq) is silently ignored.
//
// Note: The attempt referenced by AttemptID must exist (foreign key constraint).
func (s *Store) AppendAction(ctx context.Context, e session.Entry) error {
	action, err := marshalAction(e.Action)
	if err != nil {
		return fmt.Errorf("append action: %w", err)
	}
	id, err := ir.ActionID(e.AttemptID, e.Seq, e.Action)
	if err != nil {
		return fmt.Errorf("append action: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO actions
		(id, attempt_id, seq, action, state_hash)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		id,
		e.AttemptID,
		e.Seq,
		action,
		e.StateHash,
	)
	if err != nil {
		return fmt.Errorf("append action: %w", err)
	}

	return nil
}
