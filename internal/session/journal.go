package session

import (
	"context"

	"github.com/roach88/ordermode/internal/ir"
)

// Attempt is the journaled header of one puzzle attempt: everything needed
// to rebuild its initial state.
type Attempt struct {
	ID           string
	PuzzleID     string
	Baseline     []string
	RawOrdering  []string
	InitialHints []ir.HintRecord

	// CreatedSeq orders attempts within a journal. It is assigned by the
	// journal on write; the value passed in is ignored.
	CreatedSeq int64
}

// Entry is one journaled action and the hash of the state it produced.
type Entry struct {
	AttemptID string
	Seq       int64
	Action    ir.ActionRecord
	StateHash string
}

// Journal persists attempts and their actions.
//
// Writes must be idempotent: writing the same attempt or the same
// (attempt, seq) entry twice is not an error. ReadActions returns entries
// in ascending seq order.
type Journal interface {
	WriteAttempt(ctx context.Context, a Attempt) error
	AppendAction(ctx context.Context, e Entry) error
	// ReadAttempt returns found=false, not an error, for an unknown id.
	ReadAttempt(ctx context.Context, id string) (a Attempt, found bool, err error)
	ReadActions(ctx context.Context, attemptID string) ([]Entry, error)
}
