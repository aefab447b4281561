package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ordermode/internal/ir"
	"github.com/roach88/ordermode/internal/session"
)

// HintOptions holds flags for the hint command.
type HintOptions struct {
	AttemptOptions
	Kind string
	Seed int64
}

// HintResult is the purchased hint and the attempt after applying it.
type HintResult struct {
	Hint    ir.HintRecord `json:"hint"`
	Attempt AttemptView   `json:"attempt"`
}

func (r HintResult) String() string {
	return fmt.Sprintf("Bought %s hint: %s\n%s", r.Hint.Type, describeHint(r.Hint), r.Attempt)
}

// NewHintCommand creates the hint command.
func NewHintCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HintOptions{AttemptOptions: AttemptOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "hint <attempt>",
		Short: "Buy a hint for an attempt",
		Long: `Buy an anchor, relative or bracket hint. Anchors lock a card in its
correct slot, relative hints reveal which of two neighbours came first, and
brackets give a year range for one event. --seed picks among candidates.

Exit codes:
  0 - Hint granted
  1 - No hint of that kind is available
  2 - Command error

Examples:
  ordermode hint --db ./ordermode.db --puzzle ./history.cue --kind anchor demo-1
  ordermode hint --db ./ordermode.db --puzzle ./history.cue --kind bracket --seed 3 demo-1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var seed *int64
			if cmd.Flags().Changed("seed") {
				seed = &opts.Seed
			}
			return runHint(cmd.Context(), opts, args[0], seed, cmd)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVar(&opts.Kind, "kind", string(ir.HintAnchor), "hint kind (anchor|relative|bracket)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "candidate selection seed (first candidate if unset)")

	return cmd
}

func runHint(ctx context.Context, opts *HintOptions, attemptID string, seed *int64, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, s, err := openAttempt(ctx, &opts.AttemptOptions, attemptID)
	if err != nil {
		return failAttempt(formatter, err)
	}
	defer st.Close()

	h, _, err := s.BuyHint(ctx, ir.HintKind(opts.Kind), seed)
	if err != nil {
		var serr *session.Error
		if errors.As(err, &serr) {
			return failAttempt(formatter, err)
		}
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error())
	}

	return formatter.Success(HintResult{
		Hint:    ir.RecordOf(h),
		Attempt: newAttemptView(s),
	})
}
