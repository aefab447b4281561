package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ordermode/internal/compiler"
	"github.com/roach88/ordermode/internal/ir"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool                       `json:"valid"`
	PuzzleID string                     `json:"puzzle_id,omitempty"`
	Events   int                        `json:"events,omitempty"`
	Baseline []string                   `json:"baseline,omitempty"`
	Errors   []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <puzzle>",
		Short: "Validate a puzzle definition",
		Long: `Decode a CUE, YAML or JSON puzzle file and check it: a non-empty id,
at least two events, unique NFC event ids with text, an optional
YYYY-MM-DD date, and a baseline that lists every event exactly once.

A missing baseline is derived from the event years.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	puzzle, err := LoadPuzzle(path)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Code == ErrCodeLoadFailed {
			// Decode errors are reported like validation errors, with a line.
			return outputValidationErrors(formatter, []compiler.ValidationError{{
				Field:   "load",
				Message: loadErr.Message,
				Code:    loadErr.Code,
				Line:    getLineFromTokenPos(loadErr.Pos),
			}})
		}
		code, msg := loadErrorCode(err)
		return formatter.Fail(ExitCommandError, code, msg)
	}

	formatter.VerboseLog("Decoded puzzle %s with %d event(s)", puzzle.ID, len(puzzle.Events))

	if errs := compiler.ValidatePuzzle(puzzle); len(errs) > 0 {
		return outputValidationErrors(formatter, errs)
	}

	return outputValidateSuccess(formatter, puzzle)
}

// outputValidateSuccess outputs the success message.
func outputValidateSuccess(formatter *OutputFormatter, p *ir.Puzzle) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{
			Valid:    true,
			PuzzleID: p.ID,
			Events:   len(p.Events),
			Baseline: p.Baseline,
		})
	}

	fmt.Fprintf(formatter.Writer, "✓ Puzzle %s valid (%d events)\n", p.ID, len(p.Events))
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:  false,
				Errors: errs,
			},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", err.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
