package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ordermode/internal/engine"
	"github.com/roach88/ordermode/internal/ir"
	"github.com/roach88/ordermode/internal/session"
	"github.com/roach88/ordermode/internal/store"
)

// AttemptOptions are the flags shared by commands that act on a journaled
// attempt.
type AttemptOptions struct {
	*RootOptions
	Database string
	Puzzle   string
}

func (o *AttemptOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&o.Puzzle, "puzzle", "", "path to the puzzle file (.cue, .yaml, .json) (required)")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("puzzle")
}

// AttemptView is the printable state of an attempt.
type AttemptView struct {
	AttemptID string            `json:"attempt_id"`
	PuzzleID  string            `json:"puzzle_id"`
	Ordering  []string          `json:"ordering"`
	Hints     []ir.HintRecord   `json:"hints"`
	Locked    map[int]string    `json:"locked,omitempty"`
	Version   int64             `json:"version"`
	Seq       int64             `json:"seq"`
	Solved    bool              `json:"solved"`
	texts     map[string]string // event id → text, for text output
}

// newAttemptView snapshots s.
func newAttemptView(s *session.Session) AttemptView {
	state := s.State()
	puzzle := s.Puzzle()
	texts := make(map[string]string, len(puzzle.Events))
	for _, ev := range puzzle.Events {
		texts[ev.ID] = ev.Text
	}
	return AttemptView{
		AttemptID: s.AttemptID(),
		PuzzleID:  puzzle.ID,
		Ordering:  engine.Select(state),
		Hints:     ir.Records(state.Hints()),
		Locked:    state.Locked(),
		Version:   state.Version(),
		Seq:       s.Seq(),
		Solved:    s.Solved(),
		texts:     texts,
	}
}

// String renders the board one card per line; anchored cards are marked.
func (v AttemptView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Attempt %s (puzzle %s, version %d, seq %d)\n", v.AttemptID, v.PuzzleID, v.Version, v.Seq)
	for i, id := range v.Ordering {
		marker := " "
		if _, ok := v.Locked[i]; ok {
			marker = "*"
		}
		fmt.Fprintf(&b, "  %s %2d. %-12s %s\n", marker, i, id, v.texts[id])
	}
	for _, h := range v.Hints {
		fmt.Fprintf(&b, "  hint: %s\n", describeHint(h))
	}
	if v.Solved {
		b.WriteString("✓ Solved")
	} else {
		fmt.Fprintf(&b, "%d hint(s) granted", len(v.Hints))
	}
	return b.String()
}

// describeHint renders a hint record for humans.
func describeHint(h ir.HintRecord) string {
	switch h.Type {
	case ir.HintAnchor:
		if h.Position != nil {
			return fmt.Sprintf("%s belongs at position %d", h.EventID, *h.Position)
		}
	case ir.HintRelative:
		return fmt.Sprintf("%s happened before %s", h.EarlierEventID, h.LaterEventID)
	case ir.HintBracket:
		if len(h.YearRange) == 2 {
			return fmt.Sprintf("%s happened between %s and %s", h.EventID, formatYear(h.YearRange[0]), formatYear(h.YearRange[1]))
		}
	}
	return string(h.Type)
}

// formatYear renders negative years as BCE.
func formatYear(y int) string {
	if y < 0 {
		return fmt.Sprintf("%d BCE", -y)
	}
	return fmt.Sprintf("%d", y)
}

// openAttempt loads the puzzle, opens the database and resumes the attempt.
// The caller closes the returned store.
func openAttempt(ctx context.Context, opts *AttemptOptions, attemptID string) (*store.Store, *session.Session, error) {
	puzzle, err := LoadValidPuzzle(opts.Puzzle)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, nil, &LoadError{Code: ErrCodeStoreFailed, Message: fmt.Sprintf("failed to open database: %v", err)}
	}

	s, err := session.Resume(ctx, st, puzzle, attemptID, session.WithLogger(slog.Default()))
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return st, s, nil
}

// failAttempt maps an openAttempt or session error onto the formatter.
// Session errors are failures (exit 1); load and store errors are command
// errors (exit 2).
func failAttempt(f *OutputFormatter, err error) error {
	var serr *session.Error
	if errors.As(err, &serr) {
		return f.Fail(ExitFailure, string(serr.Code), serr.Message)
	}
	code, msg := loadErrorCode(err)
	return f.Fail(ExitCommandError, code, msg)
}
