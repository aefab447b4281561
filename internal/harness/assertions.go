package harness

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/roach88/ordermode/internal/engine"
	"github.com/roach88/ordermode/internal/ir"
	"github.com/roach88/ordermode/internal/ordering"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s %v v%d", event.Step, event.Action, event.Ordering, event.Version)
		if event.Error != "" {
			fmt.Fprintf(&buf, " error=%s", event.Error)
		}
		buf.WriteByte('\n')
	}

	return buf.String()
}

// AssertionContext carries the final state assertions are evaluated against.
type AssertionContext struct {
	State    engine.OrderState
	Baseline []string
}

// assertOrdering checks the final ordering exactly.
func assertOrdering(trace []TraceEvent, actx *AssertionContext, a Assertion) error {
	got := actx.State.Ordering()
	if slices.Equal(got, a.Expect) {
		return nil
	}
	return &AssertionError{
		Type:     AssertOrdering,
		Expected: fmt.Sprintf("%v", a.Expect),
		Actual:   fmt.Sprintf("%v", got),
		Trace:    trace,
	}
}

// assertLocked checks the position → event map derived from anchors.
func assertLocked(trace []TraceEvent, actx *AssertionContext, a Assertion) error {
	got := actx.State.Locked()
	if maps.Equal(got, a.Locked) {
		return nil
	}
	return &AssertionError{
		Type:     AssertLocked,
		Expected: formatLocked(a.Locked),
		Actual:   formatLocked(got),
		Trace:    trace,
	}
}

// assertHintCount checks the number of granted hints.
func assertHintCount(trace []TraceEvent, actx *AssertionContext, a Assertion) error {
	hints := actx.State.Hints()
	if len(hints) == a.Count {
		return nil
	}
	keys := make([]string, len(hints))
	for i, h := range hints {
		keys[i] = ir.HintKey(h)
	}
	return &AssertionError{
		Type:     AssertHintCount,
		Expected: fmt.Sprintf("%d hints", a.Count),
		Actual:   fmt.Sprintf("%d hints %v", len(hints), keys),
		Trace:    trace,
	}
}

// assertVersion checks the final state version.
func assertVersion(trace []TraceEvent, actx *AssertionContext, a Assertion) error {
	if actx.State.Version() == a.Version {
		return nil
	}
	return &AssertionError{
		Type:     AssertVersion,
		Expected: fmt.Sprintf("version %d", a.Version),
		Actual:   fmt.Sprintf("version %d", actx.State.Version()),
		Trace:    trace,
	}
}

// assertPermutation checks that the ordering holds every baseline id once
// and that every anchored event sits at its position.
func assertPermutation(trace []TraceEvent, actx *AssertionContext) error {
	got := actx.State.Ordering()
	if !ordering.IsPermutation(got, actx.Baseline) {
		return &AssertionError{
			Type:     AssertPermutation,
			Expected: fmt.Sprintf("a permutation of %v", actx.Baseline),
			Actual:   fmt.Sprintf("%v", got),
			Trace:    trace,
		}
	}
	for pos, id := range actx.State.Locked() {
		if pos >= len(got) || got[pos] != id {
			return &AssertionError{
				Type:     AssertPermutation,
				Expected: fmt.Sprintf("%s at position %d", id, pos),
				Actual:   fmt.Sprintf("%v", got),
				Trace:    trace,
			}
		}
	}
	return nil
}

// assertSolved checks whether the ordering equals the baseline.
func assertSolved(trace []TraceEvent, actx *AssertionContext, a Assertion) error {
	solved := slices.Equal(actx.State.Ordering(), actx.Baseline)
	if solved == a.Solved {
		return nil
	}
	return &AssertionError{
		Type:     AssertSolved,
		Expected: fmt.Sprintf("solved=%t", a.Solved),
		Actual:   fmt.Sprintf("solved=%t %v", solved, actx.State.Ordering()),
		Trace:    trace,
	}
}

func formatLocked(m map[int]string) string {
	if len(m) == 0 {
		return "{}"
	}
	positions := slices.Sorted(maps.Keys(m))
	parts := make([]string, len(positions))
	for i, pos := range positions {
		parts[i] = fmt.Sprintf("%d:%s", pos, m[pos])
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// EvaluateAssertions checks all assertions and returns the failures.
// All assertions are evaluated; failures do not short-circuit.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertOrdering:
			err = assertOrdering(result.Trace, actx, assertion)
		case AssertLocked:
			err = assertLocked(result.Trace, actx, assertion)
		case AssertHintCount:
			err = assertHintCount(result.Trace, actx, assertion)
		case AssertVersion:
			err = assertVersion(result.Trace, actx, assertion)
		case AssertPermutation:
			err = assertPermutation(result.Trace, actx)
		case AssertSolved:
			err = assertSolved(result.Trace, actx, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
