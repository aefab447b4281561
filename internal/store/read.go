package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/ordermode/internal/session"
)

// ReadAttempt retrieves an attempt header by id.
// Returns found=false, not an error, when no such attempt exists.
func (s *Store) ReadAttempt(ctx context.Context, id string) (session.Attempt, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, puzzle_id, baseline, raw_ordering, initial_hints, created_seq
		FROM attempts
		WHERE id = ?
	`, id)

	a, err := scanAttempt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Attempt{}, false, nil
	}
	if err != nil {
		return session.Attempt{}, false, err
	}
	return a, true, nil
}

// ReadActions returns the journaled actions of an attempt, ORDER BY seq ASC.
// Returns an empty slice (not nil) if there are none.
func (s *Store) ReadActions(ctx context.Context, attemptID string) ([]session.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT attempt_id, seq, action, state_hash
		FROM actions
		WHERE attempt_id = ?
		ORDER BY seq ASC
	`, attemptID)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	entries := []session.Entry{}
	for rows.Next() {
		var (
			e      session.Entry
			action string
		)
		if err := rows.Scan(&e.AttemptID, &e.Seq, &action, &e.StateHash); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		if e.Action, err = unmarshalAction(action); err != nil {
			return nil, fmt.Errorf("action seq=%d: %w", e.Seq, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actions: %w", err)
	}

	return entries, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanAttempt scans one attempts row. sql.ErrNoRows is returned unwrapped.
func scanAttempt(row rowScanner) (session.Attempt, error) {
	var (
		a                    session.Attempt
		baseline, raw, hints string
	)
	if err := row.Scan(&a.ID, &a.PuzzleID, &baseline, &raw, &hints, &a.CreatedSeq); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, err
		}
		return a, fmt.Errorf("scan attempt: %w", err)
	}

	var err error
	if a.Baseline, err = unmarshalIDs(baseline); err != nil {
		return a, fmt.Errorf("attempt %s: %w", a.ID, err)
	}
	if a.RawOrdering, err = unmarshalIDs(raw); err != nil {
		return a, fmt.Errorf("attempt %s: %w", a.ID, err)
	}
	if a.InitialHints, err = unmarshalHints(hints); err != nil {
		return a, fmt.Errorf("attempt %s: %w", a.ID, err)
	}
	return a, nil
}
