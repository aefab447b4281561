package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/ordermode/internal/ir"
	"github.com/roach88/ordermode/internal/session"
	"github.com/roach88/ordermode/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database  string
	Puzzle    string
	AttemptID string // optional - specific attempt only
}

// ReplayAttemptResult holds the replay result for a single attempt.
type ReplayAttemptResult struct {
	AttemptID     string `json:"attempt_id"`
	Actions       int    `json:"actions"`
	LastSeq       int64  `json:"last_seq"`
	Version       int64  `json:"version"`
	Solved        bool   `json:"solved"`
	StateHash     string `json:"state_hash,omitempty"`
	Deterministic bool   `json:"deterministic"`
	Error         string `json:"error,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	PuzzleID         string                `json:"puzzle_id"`
	Attempts         []ReplayAttemptResult `json:"attempts"`
	TotalAttempts    int                   `json:"total_attempts"`
	AllDeterministic bool                  `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay journaled attempts and verify determinism",
		Long: `Replay every attempt of a puzzle from the action journal.

Each attempt is rebuilt twice through the engine. Every journaled state hash
must match the replayed state and both replays must end in the same state.

Exit codes:
  0 - All attempts are deterministic
  1 - Replay diverged for at least one attempt
  2 - Command error (database not found, etc.)

Examples:
  ordermode replay --db ./ordermode.db --puzzle ./history.cue
  ordermode replay --db ./ordermode.db --puzzle ./history.cue --attempt demo-1
  ordermode replay --db ./ordermode.db --puzzle ./history.cue --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Puzzle, "puzzle", "", "path to the puzzle file (required)")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("puzzle")
	cmd.Flags().StringVar(&opts.AttemptID, "attempt", "", "replay specific attempt only")

	return cmd
}

func runReplay(ctx context.Context, opts *ReplayOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	puzzle, err := LoadValidPuzzle(opts.Puzzle)
	if err != nil {
		code, msg := loadErrorCode(err)
		return formatter.Fail(ExitCommandError, code, msg)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var attemptIDs []string
	if opts.AttemptID != "" {
		attemptIDs = []string{opts.AttemptID}
	} else {
		summaries, err := st.ListAttempts(ctx, puzzle.ID)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list attempts", err)
		}
		for _, sum := range summaries {
			attemptIDs = append(attemptIDs, sum.ID)
		}
	}

	result := ReplayResult{
		PuzzleID:         puzzle.ID,
		Attempts:         make([]ReplayAttemptResult, 0, len(attemptIDs)),
		TotalAttempts:    len(attemptIDs),
		AllDeterministic: true,
	}

	for _, id := range attemptIDs {
		attempt, err := replayAndVerifyAttempt(ctx, st, puzzle, id)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay attempt %s", id), err)
		}
		result.Attempts = append(result.Attempts, attempt)
		if !attempt.Deterministic {
			result.AllDeterministic = false
		}
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, result)
	}
	return outputReplayText(cmd, result, opts.Verbose)
}

// replayAndVerifyAttempt resumes an attempt twice and compares the results.
// Session errors (missing attempt, diverged hash) are reported in the
// result; anything else is returned.
func replayAndVerifyAttempt(ctx context.Context, st *store.Store, puzzle ir.Puzzle, attemptID string) (ReplayAttemptResult, error) {
	res := ReplayAttemptResult{AttemptID: attemptID}

	entries, err := st.ReadActions(ctx, attemptID)
	if err != nil {
		return res, err
	}
	res.Actions = len(entries)

	first, err := session.Resume(ctx, st, puzzle, attemptID, session.WithLogger(slog.Default()))
	if err != nil {
		var serr *session.Error
		if errors.As(err, &serr) {
			res.Error = serr.Error()
			return res, nil
		}
		return res, err
	}
	second, err := session.Resume(ctx, st, puzzle, attemptID, session.WithLogger(slog.Default()))
	if err != nil {
		return res, fmt.Errorf("second replay failed: %w", err)
	}

	h1, err := first.State().Hash()
	if err != nil {
		return res, err
	}
	h2, err := second.State().Hash()
	if err != nil {
		return res, err
	}

	res.LastSeq = first.Seq()
	res.Version = first.State().Version()
	res.Solved = first.Solved()
	res.StateHash = h1
	res.Deterministic = h1 == h2 && first.Seq() == second.Seq()
	if !res.Deterministic {
		res.Error = fmt.Sprintf("replays disagree: %s vs %s", h1, h2)
	}
	return res, nil
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	if !result.AllDeterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    string(session.ErrCodeReplayDiverged),
			Message: "determinism verification failed",
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !result.AllDeterministic {
		// Determinism failure = exit code 1
		return NewExitError(ExitFailure, "determinism verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) error {
	w := cmd.OutOrStdout()

	if result.TotalAttempts == 0 {
		fmt.Fprintf(w, "No attempts found for puzzle %s.\n", result.PuzzleID)
		return nil
	}

	fmt.Fprintf(w, "Replay Summary: %d attempt(s) of %s\n", result.TotalAttempts, result.PuzzleID)
	fmt.Fprintln(w)

	for _, a := range result.Attempts {
		status := "✓"
		if !a.Deterministic {
			status = "✗"
		}

		fmt.Fprintf(w, "%s Attempt: %s\n", status, a.AttemptID)
		fmt.Fprintf(w, "  Actions: %d, version %d, solved %v\n", a.Actions, a.Version, a.Solved)
		if verbose && a.StateHash != "" {
			fmt.Fprintf(w, "  State hash: %s\n", a.StateHash)
		}
		if a.Error != "" {
			fmt.Fprintf(w, "  Error: %s\n", a.Error)
		}
		fmt.Fprintln(w)
	}

	if result.AllDeterministic {
		fmt.Fprintln(w, "✓ All attempts verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	return NewExitError(ExitFailure, "determinism verification failed")
}
