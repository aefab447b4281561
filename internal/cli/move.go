package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewMoveCommand creates the move command.
func NewMoveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AttemptOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "move <attempt> <event> <index>",
		Short: "Drag a card to a new position",
		Long: `Move an event to an index in the unlocked part of the board. Anchored
cards are skipped when counting and cannot be moved; out-of-range indices
are clamped. Use -- before a negative index.

Examples:
  ordermode move --db ./ordermode.db --puzzle ./history.cue demo-1 rome 0
  ordermode move --db ./ordermode.db --puzzle ./history.cue -- demo-1 rome -1`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(cmd.Context(), opts, args, cmd)
		},
	}

	opts.addFlags(cmd)

	return cmd
}

func runMove(ctx context.Context, opts *AttemptOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	index, err := strconv.Atoi(args[2])
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeBadArgument, fmt.Sprintf("index must be an integer, got %q", args[2]))
	}

	st, s, err := openAttempt(ctx, opts, args[0])
	if err != nil {
		return failAttempt(formatter, err)
	}
	defer st.Close()

	before := s.Seq()
	if _, err := s.Move(ctx, args[1], index); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error())
	}
	if s.Seq() == before {
		formatter.VerboseLog("Move of %s changed nothing (locked, unknown or already there)", args[1])
	}

	return formatter.Success(newAttemptView(s))
}
