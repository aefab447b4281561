package harness

import "github.com/roach88/ordermode/internal/ir"

// TraceEvent records the state after one scenario step.
// Step 0 is the initial state produced by session.Start.
type TraceEvent struct {
	// Step is the 1-based step index, 0 for the initial state.
	Step int `json:"step"`

	// Action is "initialize" or one of the Step* constants.
	Action string `json:"action"`

	// Seq is the session's journal sequence after the step.
	// It only advances when the step changed the state.
	Seq int64 `json:"seq"`

	// Ordering is the full ordering after the step.
	Ordering []string `json:"ordering"`

	// Version is the state version after the step.
	Version int64 `json:"version"`

	// Hint is the purchased hint, for successful buy steps.
	Hint *ir.HintRecord `json:"hint,omitempty"`

	// Error is the session error code, for failed buy steps.
	Error string `json:"error,omitempty"`
}

// ActionInitialize is the trace action of step 0.
const ActionInitialize = "initialize"

// Value returns the canonical form of the event for golden comparison.
func (e TraceEvent) Value() ir.Object {
	obj := ir.Object{
		"step":     ir.Int(e.Step),
		"action":   ir.String(e.Action),
		"seq":      ir.Int(e.Seq),
		"ordering": ir.Strings(e.Ordering),
		"version":  ir.Int(e.Version),
	}
	if e.Hint != nil {
		obj["hint"] = e.Hint.Value()
	}
	if e.Error != "" {
		obj["error"] = ir.String(e.Error)
	}
	return obj
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every step behaved as expected and all assertions hold.
	Pass bool `json:"pass"`

	// AttemptID is the id the scenario's attempt was journaled under.
	AttemptID string `json:"attempt_id"`

	// Trace contains one event per step, preceded by the initial state.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event to the trace.
func (r *Result) AddTrace(e TraceEvent) {
	r.Trace = append(r.Trace, e)
}
