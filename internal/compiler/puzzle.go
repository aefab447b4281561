package compiler

import (
	"fmt"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/ordermode/internal/ir"
)

// CompilePuzzle parses a CUE value into a Puzzle.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value is the puzzle struct itself:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`id: "rome", events: [{id: "a", year: -44, text: "..."}, ...]`)
//	p, err := CompilePuzzle(v)
//
// A missing baseline defaults to DefaultBaseline(events). Semantic checks
// (unique ids, baseline is a permutation) are left to ValidatePuzzle.
func CompilePuzzle(v cue.Value) (*ir.Puzzle, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	p := &ir.Puzzle{}

	idVal := v.LookupPath(cue.ParsePath("id"))
	if !idVal.Exists() {
		return nil, &CompileError{Field: "id", Message: "id is required", Pos: v.Pos()}
	}
	id, err := idVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	p.ID = id

	if dateVal := v.LookupPath(cue.ParsePath("date")); dateVal.Exists() {
		if p.Date, err = dateVal.String(); err != nil {
			return nil, formatCUEError(err)
		}
	}

	p.Events, err = parseEvents(v)
	if err != nil {
		return nil, err
	}

	if baseVal := v.LookupPath(cue.ParsePath("baseline")); baseVal.Exists() {
		p.Baseline, err = parseStrings(baseVal, "baseline")
		if err != nil {
			return nil, err
		}
	} else {
		p.Baseline = DefaultBaseline(p.Events)
	}

	return p, nil
}

// parseEvents extracts the events list.
func parseEvents(v cue.Value) ([]ir.Event, error) {
	eventsVal := v.LookupPath(cue.ParsePath("events"))
	if !eventsVal.Exists() {
		return nil, &CompileError{Field: "events", Message: "events is required", Pos: v.Pos()}
	}

	iter, err := eventsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var events []ir.Event
	for i := 0; iter.Next(); i++ {
		ev, err := parseEvent(iter.Value(), i)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// parseEvent extracts one {id, year, text} struct.
func parseEvent(v cue.Value, index int) (ir.Event, error) {
	var ev ir.Event
	field := fmt.Sprintf("events[%d]", index)

	idVal := v.LookupPath(cue.ParsePath("id"))
	if !idVal.Exists() {
		return ev, &CompileError{Field: field + ".id", Message: "id is required", Pos: v.Pos()}
	}
	id, err := idVal.String()
	if err != nil {
		return ev, formatCUEError(err)
	}
	ev.ID = id

	yearVal := v.LookupPath(cue.ParsePath("year"))
	if !yearVal.Exists() {
		return ev, &CompileError{Field: field + ".year", Message: "year is required", Pos: v.Pos()}
	}
	if yearVal.IncompleteKind() != cue.IntKind {
		return ev, &CompileError{
			Field:   field + ".year",
			Message: fmt.Sprintf("year must be an integer, got %v", yearVal.IncompleteKind()),
			Pos:     yearVal.Pos(),
		}
	}
	year, err := yearVal.Int64()
	if err != nil {
		return ev, formatCUEError(err)
	}
	ev.Year = int(year)

	if textVal := v.LookupPath(cue.ParsePath("text")); textVal.Exists() {
		if ev.Text, err = textVal.String(); err != nil {
			return ev, formatCUEError(err)
		}
	}

	return ev, nil
}

// parseStrings extracts a list of strings.
func parseStrings(v cue.Value, field string) ([]string, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	out := []string{}
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{Field: field, Message: "entries must be strings", Pos: iter.Value().Pos()}
		}
		out = append(out, s)
	}
	return out, nil
}

// DefaultBaseline orders event ids by year, ties kept in definition order.
func DefaultBaseline(events []ir.Event) []string {
	sorted := make([]ir.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Year < sorted[j].Year
	})
	ids := make([]string, len(sorted))
	for i, e := range sorted {
		ids[i] = e.ID
	}
	return ids
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
