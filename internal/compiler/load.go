package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/ordermode/internal/ir"
)

// LoadPuzzleFile reads a puzzle definition, choosing the decoder by
// extension: .cue is compiled with CUE, .yaml, .yml and .json are decoded
// as YAML. Event ids and the baseline are NFC-normalised. It does not run
// ValidatePuzzle.
func LoadPuzzleFile(path string) (*ir.Puzzle, error) {
	p, err := loadPuzzleFile(path)
	if err != nil {
		return nil, err
	}
	normalizeIDs(p)
	return p, nil
}

func loadPuzzleFile(path string) (*ir.Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read puzzle: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		v := cuecontext.New().CompileBytes(data, cue.Filename(path))
		return CompilePuzzle(v)
	case ".yaml", ".yml", ".json":
		p, err := DecodePuzzleYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported puzzle file extension %q (want .cue, .yaml, .yml or .json)", ext)
	}
}

// normalizeIDs puts every event id and baseline entry in NFC, the form the
// attempt journal stores them in.
func normalizeIDs(p *ir.Puzzle) {
	for i := range p.Events {
		p.Events[i].ID = ir.NormalizeID(p.Events[i].ID)
	}
	p.Baseline = ir.NormalizeIDs(p.Baseline)
}
