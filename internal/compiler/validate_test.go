package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ordermode/internal/ir"
)

func validPuzzle() *ir.Puzzle {
	return &ir.Puzzle{
		ID:   "rome",
		Date: "2026-03-15",
		Events: []ir.Event{
			{ID: "founding", Year: -753, Text: "Rome is founded"},
			{ID: "caesar", Year: -44, Text: "Caesar is assassinated"},
		},
		Baseline: []string{"founding", "caesar"},
	}
}

func TestValidatePuzzleValid(t *testing.T) {
	assert.Empty(t, ValidatePuzzle(validPuzzle()))
}

func TestValidatePuzzle(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *ir.Puzzle)
		code   string
		field  string
	}{
		{"empty id", func(p *ir.Puzzle) { p.ID = "  " }, ErrPuzzleIDEmpty, "id"},
		{"bad date", func(p *ir.Puzzle) { p.Date = "15/03/2026" }, ErrInvalidDate, "date"},
		{"one event", func(p *ir.Puzzle) {
			p.Events = p.Events[:1]
			p.Baseline = []string{"founding"}
		}, ErrTooFewEvents, "events"},
		{"empty event id", func(p *ir.Puzzle) {
			p.Events = append(p.Events, ir.Event{ID: "", Year: 1, Text: "x"})
		}, ErrEventIDEmpty, "events[2].id"},
		{"duplicate event id", func(p *ir.Puzzle) {
			p.Events = append(p.Events, ir.Event{ID: "caesar", Year: 1, Text: "x"})
			p.Baseline = []string{"founding", "caesar", "caesar"}
		}, ErrDuplicateEventID, "events[2].id"},
		{"empty text", func(p *ir.Puzzle) { p.Events[1].Text = "" }, ErrEventTextEmpty, "events[1].text"},
		{"decomposed event id", func(p *ir.Puzzle) {
			p.Events = append(p.Events, ir.Event{ID: "cafe\u0301", Year: 1686, Text: "Procope opens"})
			p.Baseline = []string{"founding", "caesar", "cafe\u0301"}
		}, ErrEventIDNotNFC, "events[2].id"},
		{"baseline missing id", func(p *ir.Puzzle) { p.Baseline = []string{"founding"} }, ErrBaselineNotPermutation, "baseline"},
		{"baseline foreign id", func(p *ir.Puzzle) { p.Baseline = []string{"founding", "nero"} }, ErrBaselineNotPermutation, "baseline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPuzzle()
			tt.mutate(p)

			errs := ValidatePuzzle(p)
			require.Len(t, errs, 1, "errors: %v", errs)
			assert.Equal(t, tt.code, errs[0].Code)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func TestValidatePuzzleCollectsAll(t *testing.T) {
	p := &ir.Puzzle{Events: []ir.Event{{ID: "a", Year: 1}}, Baseline: []string{"b"}}

	errs := ValidatePuzzle(p)
	codes := make([]string, len(errs))
	for i, e := range errs {
		codes[i] = e.Code
	}
	assert.Equal(t, []string{ErrPuzzleIDEmpty, ErrTooFewEvents, ErrEventTextEmpty, ErrBaselineNotPermutation}, codes)
}

func TestValidationErrorFormat(t *testing.T) {
	assert.Equal(t, "[E101] id: required", ValidationError{Field: "id", Message: "required", Code: "E101"}.Error())
	assert.Equal(t, "[E101] line 3: id: required", ValidationError{Field: "id", Message: "required", Code: "E101", Line: 3}.Error())
}
