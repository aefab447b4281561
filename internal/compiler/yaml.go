package compiler

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ordermode/internal/ir"
)

// puzzleFile is the YAML (and JSON) form of a puzzle definition.
type puzzleFile struct {
	ID       string     `yaml:"id"`
	Date     string     `yaml:"date"`
	Events   []ir.Event `yaml:"events"`
	Baseline []string   `yaml:"baseline"`
}

// DecodePuzzleYAML parses a YAML puzzle definition. JSON is valid YAML, so
// puzzles exported as JSON decode here too.
//
// Unknown fields are rejected to catch typos. A missing baseline defaults
// to DefaultBaseline(events).
func DecodePuzzleYAML(data []byte) (*ir.Puzzle, error) {
	var f puzzleFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, &CompileError{Field: "yaml", Message: err.Error()}
	}

	if f.ID == "" {
		return nil, &CompileError{Field: "id", Message: "id is required"}
	}
	if f.Events == nil {
		return nil, &CompileError{Field: "events", Message: "events is required"}
	}

	p := &ir.Puzzle{
		ID:       f.ID,
		Date:     f.Date,
		Events:   f.Events,
		Baseline: f.Baseline,
	}
	if p.Baseline == nil {
		p.Baseline = DefaultBaseline(p.Events)
	}
	return p, nil
}

// EncodePuzzleYAML renders p in the form DecodePuzzleYAML reads.
func EncodePuzzleYAML(p *ir.Puzzle) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(puzzleFile{ID: p.ID, Date: p.Date, Events: p.Events, Baseline: p.Baseline}); err != nil {
		return nil, fmt.Errorf("encode puzzle: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode puzzle: %w", err)
	}
	return buf.Bytes(), nil
}
