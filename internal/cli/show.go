package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AttemptOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "show <attempt>",
		Short:         "Show the current board of an attempt",
		Long:          "Replay an attempt from the journal and print its board, hints and solved status.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), opts, args[0], cmd)
		},
	}

	opts.addFlags(cmd)

	return cmd
}

func runShow(ctx context.Context, opts *AttemptOptions, attemptID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, s, err := openAttempt(ctx, opts, attemptID)
	if err != nil {
		return failAttempt(formatter, err)
	}
	defer st.Close()

	return formatter.Success(newAttemptView(s))
}
