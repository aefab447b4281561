package store

import (
	"context"
	"fmt"

	"github.com/roach88/ordermode/internal/session"
)

// AttemptSummary is an attempt header with journal statistics, for listing
// and bulk replay.
type AttemptSummary struct {
	session.Attempt
	ActionCount int
	LastSeq     int64
}

// ListAttempts returns the attempts for puzzleID, or every attempt when
// puzzleID is empty, ORDER BY created_seq ASC.
// Returns an empty slice (not nil) if there are none.
func (s *Store) ListAttempts(ctx context.Context, puzzleID string) ([]AttemptSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.puzzle_id, a.baseline, a.raw_ordering, a.initial_hints, a.created_seq,
		       COUNT(x.seq), COALESCE(MAX(x.seq), 0)
		FROM attempts a
		LEFT JOIN actions x ON x.attempt_id = a.id
		WHERE ? = '' OR a.puzzle_id = ?
		GROUP BY a.id
		ORDER BY a.created_seq ASC
	`, puzzleID, puzzleID)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	out := []AttemptSummary{}
	for rows.Next() {
		var (
			sum                  AttemptSummary
			baseline, raw, hints string
		)
		if err := rows.Scan(
			&sum.ID, &sum.PuzzleID, &baseline, &raw, &hints, &sum.CreatedSeq,
			&sum.ActionCount, &sum.LastSeq,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if sum.Baseline, err = unmarshalIDs(baseline); err != nil {
			return nil, fmt.Errorf("attempt %s: %w", sum.ID, err)
		}
		if sum.RawOrdering, err = unmarshalIDs(raw); err != nil {
			return nil, fmt.Errorf("attempt %s: %w", sum.ID, err)
		}
		if sum.InitialHints, err = unmarshalHints(hints); err != nil {
			return nil, fmt.Errorf("attempt %s: %w", sum.ID, err)
		}
		out = append(out, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}

	return out, nil
}

// LastSeq returns the highest journaled seq for an attempt, 0 if it has no
// actions.
func (s *Store) LastSeq(ctx context.Context, attemptID string) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) FROM actions WHERE attempt_id = ?
	`, attemptID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq, nil
}
