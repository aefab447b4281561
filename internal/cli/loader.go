package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"cuelang.org/go/cue/token"

	"github.com/roach88/ordermode/internal/compiler"
	"github.com/roach88/ordermode/internal/ir"
)

// LoadError represents an error that occurred during puzzle loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadPuzzle reads and decodes a puzzle file without validating it.
// Decode failures are returned as *LoadError.
func LoadPuzzle(path string) (*ir.Puzzle, error) {
	p, err := compiler.LoadPuzzleFile(path)
	if err == nil {
		return p, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("puzzle file not found: %s", path)}
	}
	var cErr *compiler.CompileError
	if errors.As(err, &cErr) {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("%s: %s", cErr.Field, cErr.Message), Pos: cErr.Pos}
	}
	return nil, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
}

// LoadValidPuzzle loads a puzzle and rejects it if ValidatePuzzle finds
// anything. Used by every command that plays a puzzle.
func LoadValidPuzzle(path string) (ir.Puzzle, error) {
	p, err := LoadPuzzle(path)
	if err != nil {
		return ir.Puzzle{}, err
	}
	if errs := compiler.ValidatePuzzle(p); len(errs) > 0 {
		return ir.Puzzle{}, &LoadError{Code: errs[0].Code, Message: errs[0].Error()}
	}
	return *p, nil
}

// getLineFromTokenPos returns the line of a CUE position, 0 if unknown.
func getLineFromTokenPos(pos token.Pos) int {
	if pos.IsValid() {
		return pos.Line()
	}
	return 0
}

// loadErrorCode returns the code of a *LoadError, ErrCodeGeneric otherwise.
func loadErrorCode(err error) (string, string) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	return ErrCodeGeneric, err.Error()
}
