package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ordermode/internal/ir"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Puzzle is a path to a puzzle file, relative to the scenario file.
	// Mutually exclusive with Events.
	Puzzle string `yaml:"puzzle,omitempty"`

	// Events and Baseline define the puzzle inline. Baseline defaults to
	// the events sorted by year.
	Events   []ir.Event `yaml:"events,omitempty"`
	Baseline []string   `yaml:"baseline,omitempty"`

	// Initial is the raw starting ordering. Empty means the baseline.
	Initial []string `yaml:"initial,omitempty"`

	// Hints are granted before the first step.
	Hints []ir.HintRecord `yaml:"hints,omitempty"`

	// Steps are played in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final state.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one player action. Exactly one of Move, Hint, Hydrate or Buy is set.
type Step struct {
	Move    *MoveStep       `yaml:"move,omitempty"`
	Hint    *ir.HintRecord  `yaml:"hint,omitempty"`
	Hydrate []ir.HintRecord `yaml:"hydrate,omitempty"`
	Buy     *BuyStep        `yaml:"buy,omitempty"`

	// ExpectError is the session error code the step must fail with.
	// Only buy steps can fail.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// MoveStep drags a card to an index in unlocked space.
type MoveStep struct {
	EventID     string `yaml:"event_id"`
	TargetIndex int    `yaml:"target_index"`
}

// BuyStep purchases a generated hint.
type BuyStep struct {
	Kind ir.HintKind `yaml:"kind"`
	Seed *int64      `yaml:"seed,omitempty"`
}

// Kind returns the step's action name for traces.
func (s Step) Kind() string {
	switch {
	case s.Move != nil:
		return StepMove
	case s.Hint != nil:
		return StepHint
	case s.Hydrate != nil:
		return StepHydrate
	case s.Buy != nil:
		return StepBuy
	}
	return ""
}

// Step kind constants.
const (
	StepMove    = "move"
	StepHint    = "hint"
	StepHydrate = "hydrate"
	StepBuy     = "buy"
)

// Assertion validates the final state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Expect is the expected ordering (ordering).
	Expect []string `yaml:"expect,omitempty"`

	// Locked is the expected position → event id map (locked).
	Locked map[int]string `yaml:"locked,omitempty"`

	// Count is the expected number of hints (hint_count).
	Count int `yaml:"count,omitempty"`

	// Version is the expected state version (version).
	Version int64 `yaml:"version,omitempty"`

	// Solved is the expected solved flag (solved).
	Solved bool `yaml:"solved,omitempty"`
}

// Assertion type constants.
const (
	AssertOrdering    = "ordering"
	AssertLocked      = "locked"
	AssertHintCount   = "hint_count"
	AssertVersion     = "version"
	AssertPermutation = "permutation"
	AssertSolved      = "solved"
)

// LoadScenario reads and parses a scenario YAML file. A relative puzzle
// path is resolved against the scenario's directory.
//
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Puzzle != "" && !filepath.IsAbs(scenario.Puzzle) {
		scenario.Puzzle = filepath.Join(filepath.Dir(path), scenario.Puzzle)
	}
	if scenario.Puzzle != "" {
		if _, err := os.Stat(scenario.Puzzle); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: puzzle file not found: %s", scenario.Puzzle)
		}
	}

	return scenario, nil
}

// ParseScenario parses scenario YAML without touching the filesystem.
func ParseScenario(data []byte) (*Scenario, error) {
	// Reject unknown fields, catching typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Puzzle == "" && len(s.Events) == 0 {
		return fmt.Errorf("puzzle or events is required")
	}
	if s.Puzzle != "" && len(s.Events) > 0 {
		return fmt.Errorf("puzzle and events are mutually exclusive")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, h := range s.Hints {
		if _, err := h.Hint(); err != nil {
			return fmt.Errorf("hints[%d]: %w", i, err)
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep checks that exactly one action is set and its fields decode.
func validateStep(index int, s Step) error {
	set := 0
	for _, ok := range []bool{s.Move != nil, s.Hint != nil, s.Hydrate != nil, s.Buy != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("steps[%d]: exactly one of move, hint, hydrate, buy is required", index)
	}

	switch {
	case s.Move != nil:
		if s.Move.EventID == "" {
			return fmt.Errorf("steps[%d]: move requires event_id", index)
		}
	case s.Hint != nil:
		if _, err := s.Hint.Hint(); err != nil {
			return fmt.Errorf("steps[%d]: %w", index, err)
		}
	case s.Hydrate != nil:
		if _, err := ir.HintsFromRecords(s.Hydrate); err != nil {
			return fmt.Errorf("steps[%d]: hydrate: %w", index, err)
		}
	case s.Buy != nil:
		if s.Buy.Kind == "" {
			return fmt.Errorf("steps[%d]: buy requires kind", index)
		}
	}

	if s.ExpectError != "" && s.Buy == nil {
		return fmt.Errorf("steps[%d]: expect_error is only valid on buy steps", index)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOrdering:
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for ordering", index)
		}
	case AssertHintCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for hint_count", index)
		}
	case AssertVersion:
		if a.Version < 0 {
			return fmt.Errorf("assertions[%d]: version must be non-negative", index)
		}
	case AssertLocked, AssertPermutation, AssertSolved:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
