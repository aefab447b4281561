package compiler

import (
	"fmt"
	"strings"
	"time"

	"github.com/roach88/ordermode/internal/ir"
	"github.com/roach88/ordermode/internal/ordering"
)

// Validation error codes (E100-E199)
const (
	ErrPuzzleIDEmpty          = "E101" // id is required
	ErrTooFewEvents           = "E102" // at least two events required
	ErrEventIDEmpty           = "E103" // event id is required
	ErrDuplicateEventID       = "E104" // event ids must be unique
	ErrBaselineNotPermutation = "E105" // baseline must list every event id once
	ErrInvalidDate            = "E106" // date must be YYYY-MM-DD
	ErrEventTextEmpty         = "E107" // event text is required
	ErrEventIDNotNFC          = "E108" // event id must be NFC-normalised
)

// dateLayout is the puzzle date format, one puzzle per calendar day.
const dateLayout = "2006-01-02"

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidatePuzzle checks a compiled puzzle.
// Returns all errors found (does not fail-fast).
func ValidatePuzzle(p *ir.Puzzle) []ValidationError {
	var errs []ValidationError

	// E101: id is required
	if strings.TrimSpace(p.ID) == "" {
		errs = append(errs, ValidationError{
			Field:   "id",
			Message: "id is required and must be non-empty",
			Code:    ErrPuzzleIDEmpty,
		})
	}

	// E106: date format
	if p.Date != "" {
		if _, err := time.Parse(dateLayout, p.Date); err != nil {
			errs = append(errs, ValidationError{
				Field:   "date",
				Message: fmt.Sprintf("date %q must be YYYY-MM-DD", p.Date),
				Code:    ErrInvalidDate,
			})
		}
	}

	// E102: a single card cannot be ordered
	if len(p.Events) < 2 {
		errs = append(errs, ValidationError{
			Field:   "events",
			Message: fmt.Sprintf("at least two events are required, got %d", len(p.Events)),
			Code:    ErrTooFewEvents,
		})
	}

	ids := make([]string, 0, len(p.Events))
	seen := make(map[string]bool, len(p.Events))
	for i, ev := range p.Events {
		// E103: event id is required
		if strings.TrimSpace(ev.ID) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("events[%d].id", i),
				Message: "event id is required and must be non-empty",
				Code:    ErrEventIDEmpty,
			})
			continue
		}

		// E108: ids are journaled in NFC, so any other form would not replay
		if ev.ID != ir.NormalizeID(ev.ID) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("events[%d].id", i),
				Message: fmt.Sprintf("event id %q is not NFC-normalised", ev.ID),
				Code:    ErrEventIDNotNFC,
			})
		}

		// E104: duplicate event id
		if seen[ev.ID] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("events[%d].id", i),
				Message: fmt.Sprintf("duplicate event id: %q", ev.ID),
				Code:    ErrDuplicateEventID,
			})
		}
		seen[ev.ID] = true
		ids = append(ids, ev.ID)

		// E107: event text is required
		if strings.TrimSpace(ev.Text) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("events[%d].text", i),
				Message: fmt.Sprintf("event %q has no text", ev.ID),
				Code:    ErrEventTextEmpty,
			})
		}
	}

	// E105: baseline must be a permutation of the event ids
	if len(ids) == len(p.Events) && !ordering.IsPermutation(p.Baseline, ids) {
		errs = append(errs, ValidationError{
			Field:   "baseline",
			Message: fmt.Sprintf("baseline %v is not a permutation of the event ids", p.Baseline),
			Code:    ErrBaselineNotPermutation,
		})
	}

	return errs
}
