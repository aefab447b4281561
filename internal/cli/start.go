package cli

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/roach88/ordermode/internal/ir"
	"github.com/roach88/ordermode/internal/session"
	"github.com/roach88/ordermode/internal/store"
)

// StartOptions holds flags for the start command.
type StartOptions struct {
	*RootOptions
	Database  string
	Seed      int64
	AttemptID string // optional - fixed attempt id instead of a UUIDv7

	// IDGenerator overrides attempt id generation (for testing).
	IDGenerator session.IDGenerator
}

// NewStartCommand creates the start command.
func NewStartCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StartOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "start <puzzle>",
		Short: "Start a new attempt with a shuffled board",
		Long: `Start a new attempt at a puzzle. The baseline is shuffled (with --seed the
shuffle is reproducible) and the attempt is journaled to the database.

Examples:
  ordermode start --db ./ordermode.db ./puzzles/history.cue
  ordermode start --db ./ordermode.db --seed 42 ./puzzles/history.cue
  ordermode start --db ./ordermode.db --attempt demo-1 ./puzzles/history.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.Seed = rand.Int64()
			}
			return runStart(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "shuffle seed (random if unset)")
	cmd.Flags().StringVar(&opts.AttemptID, "attempt", "", "attempt id (UUIDv7 if unset)")

	return cmd
}

func runStart(ctx context.Context, opts *StartOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)

	puzzle, err := LoadValidPuzzle(path)
	if err != nil {
		code, msg := loadErrorCode(err)
		return formatter.Fail(ExitCommandError, code, msg)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error())
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ids := opts.IDGenerator
	if opts.AttemptID != "" {
		ids = fixedID(opts.AttemptID)
	}
	sessOpts := []session.Option{session.WithJournal(st), session.WithLogger(slog.Default())}
	if ids != nil {
		sessOpts = append(sessOpts, session.WithIDGenerator(ids))
	}

	raw := Shuffle(puzzle.Baseline, opts.Seed)
	formatter.VerboseLog("Shuffled %s with seed %d", puzzle.ID, opts.Seed)

	s, err := session.Start(ctx, puzzle, raw, []ir.Hint(nil), sessOpts...)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error())
	}

	return formatter.Success(newAttemptView(s))
}

// Shuffle returns a seeded permutation of ids. The same seed always yields
// the same permutation.
func Shuffle(ids []string, seed int64) []string {
	out := append([]string(nil), ids...)
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// fixedID hands out one attempt id.
type fixedID string

func (f fixedID) Generate() string { return string(f) }
