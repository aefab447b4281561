package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/ordermode/internal/compiler"
	"github.com/roach88/ordermode/internal/engine"
	"github.com/roach88/ordermode/internal/ir"
	"github.com/roach88/ordermode/internal/session"
	"github.com/roach88/ordermode/internal/testutil"
)

// Harness is the test execution engine.
// It drives one session with a fixed attempt id and an in-memory journal.
type Harness struct {
	session *session.Session
	journal *session.MemoryJournal
	puzzle  ir.Puzzle
	logger  *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh in-memory journal.
// Execution flow:
//  1. Load or build the puzzle and validate it
//  2. Start a session from the initial ordering and hints
//  3. Play every step, recording the state after each
//  4. Resume the attempt from the journal and compare states
//  5. Evaluate assertions against the final state
//
// An error is returned only when the scenario cannot be executed at all;
// behavioural mismatches are reported through Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	puzzle, err := scenarioPuzzle(scenario)
	if err != nil {
		return nil, err
	}

	initial, err := ir.HintsFromRecords(scenario.Hints)
	if err != nil {
		return nil, fmt.Errorf("initial hints: %w", err)
	}

	raw := scenario.Initial
	if len(raw) == 0 {
		raw = puzzle.Baseline
	}

	ctx := context.Background()
	h := &Harness{
		journal: session.NewMemoryJournal(),
		puzzle:  puzzle,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	h.session, err = session.Start(ctx, puzzle, raw, initial,
		session.WithJournal(h.journal),
		session.WithIDGenerator(testutil.NewFixedIDGenerator("scenario-"+scenario.Name)),
		session.WithLogger(h.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	result := NewResult()
	result.AttemptID = h.session.AttemptID()
	result.AddTrace(h.event(0, ActionInitialize))

	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, i+1, step, result); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	if err := h.verifyReplay(ctx, result); err != nil {
		return nil, err
	}

	actx := &AssertionContext{
		State:    h.session.State(),
		Baseline: puzzle.Baseline,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// scenarioPuzzle loads the scenario's puzzle file or builds its inline puzzle.
func scenarioPuzzle(s *Scenario) (ir.Puzzle, error) {
	var p *ir.Puzzle
	if s.Puzzle != "" {
		loaded, err := compiler.LoadPuzzleFile(s.Puzzle)
		if err != nil {
			return ir.Puzzle{}, fmt.Errorf("failed to load puzzle: %w", err)
		}
		p = loaded
	} else {
		p = &ir.Puzzle{ID: s.Name, Events: s.Events, Baseline: s.Baseline}
		if len(p.Baseline) == 0 {
			p.Baseline = compiler.DefaultBaseline(p.Events)
		}
	}

	if errs := compiler.ValidatePuzzle(p); len(errs) > 0 {
		return ir.Puzzle{}, fmt.Errorf("invalid puzzle: %w", errs[0])
	}
	return *p, nil
}

// executeStep plays one step and appends its trace event.
func (h *Harness) executeStep(ctx context.Context, index int, step Step, result *Result) error {
	switch {
	case step.Move != nil:
		if _, err := h.session.Move(ctx, step.Move.EventID, step.Move.TargetIndex); err != nil {
			return err
		}
	case step.Hint != nil:
		hint, err := step.Hint.Hint()
		if err != nil {
			return err
		}
		if _, err := h.session.ApplyHint(ctx, hint); err != nil {
			return err
		}
	case step.Hydrate != nil:
		hints, err := ir.HintsFromRecords(step.Hydrate)
		if err != nil {
			return err
		}
		if _, err := h.session.Hydrate(ctx, hints); err != nil {
			return err
		}
	case step.Buy != nil:
		return h.executeBuy(ctx, index, step, result)
	default:
		return fmt.Errorf("empty step")
	}

	result.AddTrace(h.event(index, step.Kind()))
	return nil
}

// executeBuy purchases a hint and checks the outcome against expect_error.
func (h *Harness) executeBuy(ctx context.Context, index int, step Step, result *Result) error {
	bought, _, err := h.session.BuyHint(ctx, step.Buy.Kind, step.Buy.Seed)
	event := h.event(index, StepBuy)

	if err != nil {
		var serr *session.Error
		if !errors.As(err, &serr) {
			return err
		}
		event.Error = string(serr.Code)
		if step.ExpectError == "" {
			result.AddError(fmt.Sprintf("step %d: unexpected error %s", index, serr))
		} else if string(serr.Code) != step.ExpectError {
			result.AddError(fmt.Sprintf("step %d: expected error %s, got %s", index, step.ExpectError, serr.Code))
		}
	} else {
		rec := ir.RecordOf(bought)
		event.Hint = &rec
		if step.ExpectError != "" {
			result.AddError(fmt.Sprintf("step %d: expected error %s, got hint %s", index, step.ExpectError, ir.HintKey(bought)))
		}
	}

	result.AddTrace(event)
	return nil
}

// verifyReplay rebuilds the attempt from the journal and checks that it
// reaches the live session's state.
func (h *Harness) verifyReplay(ctx context.Context, result *Result) error {
	resumed, err := session.Resume(ctx, h.journal, h.puzzle, h.session.AttemptID(),
		session.WithLogger(h.logger),
	)
	if err != nil {
		result.AddError(fmt.Sprintf("replay: %v", err))
		return nil
	}

	live, err := h.session.State().Hash()
	if err != nil {
		return fmt.Errorf("hash live state: %w", err)
	}
	replayed, err := resumed.State().Hash()
	if err != nil {
		return fmt.Errorf("hash replayed state: %w", err)
	}

	if live != replayed || resumed.State().Version() != h.session.State().Version() {
		result.AddError(fmt.Sprintf("replay: state diverged (live %s v%d, replayed %s v%d)",
			live, h.session.State().Version(), replayed, resumed.State().Version()))
	}
	if resumed.Seq() != h.session.Seq() {
		result.AddError(fmt.Sprintf("replay: seq %d, want %d", resumed.Seq(), h.session.Seq()))
	}
	return nil
}

// event snapshots the session state into a trace event.
func (h *Harness) event(index int, action string) TraceEvent {
	state := h.session.State()
	return TraceEvent{
		Step:     index,
		Action:   action,
		Seq:      h.session.Seq(),
		Ordering: engine.Select(state),
		Version:  state.Version(),
	}
}
