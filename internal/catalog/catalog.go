// Package catalog maintains puzzles.json, the year-keyed clue catalog the
// daily puzzle is drawn from.
//
// File layout:
//
//	{
//	  "puzzles": {"-44": ["clue", ...], "1969": [...]},
//	  "meta": {"total_puzzles": 2, "date_range": "-44-1969"}
//	}
//
// Years are kept in numeric order on every save and meta is recomputed from
// the puzzles, so the file never drifts from its contents. Keys this package
// does not know, at top level or in meta, are preserved.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// ErrYearExists is returned by Add for a year already in the catalog.
	ErrYearExists = errors.New("year already exists")

	// ErrYearNotFound is returned by Update for a year not in the catalog.
	ErrYearNotFound = errors.New("year not found")

	// ErrNoClues is returned when Add or Update is given no non-blank clue.
	ErrNoClues = errors.New("at least one clue is required")
)

// Meta is the derived summary stored under "meta".
type Meta struct {
	TotalPuzzles int    `json:"total_puzzles"`
	DateRange    string `json:"date_range"`
}

// Catalog is an in-memory puzzles.json.
type Catalog struct {
	puzzles map[int][]string
	meta    map[string]json.RawMessage // meta keys other than Meta's
	extra   map[string]json.RawMessage // top-level keys other than puzzles and meta
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{puzzles: make(map[int][]string)}
}

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog JSON. Every puzzles key must be an integer year.
func Parse(data []byte) (*Catalog, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := New()
	if raw, ok := top["puzzles"]; ok {
		var byKey map[string][]string
		if err := json.Unmarshal(raw, &byKey); err != nil {
			return nil, fmt.Errorf("parse puzzles: %w", err)
		}
		for key, clues := range byKey {
			year, err := strconv.Atoi(strings.TrimSpace(key))
			if err != nil {
				return nil, fmt.Errorf("invalid year %q: %w", key, err)
			}
			if _, dup := c.puzzles[year]; dup {
				return nil, fmt.Errorf("year %d appears more than once", year)
			}
			c.puzzles[year] = clues
		}
		delete(top, "puzzles")
	}

	if raw, ok := top["meta"]; ok {
		if err := json.Unmarshal(raw, &c.meta); err != nil {
			return nil, fmt.Errorf("parse meta: %w", err)
		}
		delete(c.meta, "total_puzzles")
		delete(c.meta, "date_range")
		delete(top, "meta")
	}

	if len(top) > 0 {
		c.extra = top
	}
	return c, nil
}

// Add inserts a new year. Returns ErrYearExists if the year is present.
func (c *Catalog) Add(year int, clues []string) error {
	if _, ok := c.puzzles[year]; ok {
		return fmt.Errorf("%w: %d (use update to modify it)", ErrYearExists, year)
	}
	return c.set(year, clues)
}

// Update replaces the clues of an existing year. Returns ErrYearNotFound if
// the year is absent.
func (c *Catalog) Update(year int, clues []string) error {
	if _, ok := c.puzzles[year]; !ok {
		return fmt.Errorf("%w: %d (use add to create it)", ErrYearNotFound, year)
	}
	return c.set(year, clues)
}

func (c *Catalog) set(year int, clues []string) error {
	cleaned := CleanClues(clues)
	if len(cleaned) == 0 {
		return ErrNoClues
	}
	c.puzzles[year] = cleaned
	return nil
}

// CleanClues NFC-normalises and trims each clue, dropping blank ones.
func CleanClues(clues []string) []string {
	out := make([]string, 0, len(clues))
	for _, clue := range clues {
		clue = strings.TrimSpace(norm.NFC.String(clue))
		if clue != "" {
			out = append(out, clue)
		}
	}
	return out
}

// Years returns the catalog's years in ascending numeric order.
func (c *Catalog) Years() []int {
	years := make([]int, 0, len(c.puzzles))
	for y := range c.puzzles {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// Clues returns a copy of the clues for year.
func (c *Catalog) Clues(year int) ([]string, bool) {
	clues, ok := c.puzzles[year]
	return slices.Clone(clues), ok
}

// Meta derives the summary from the current puzzles. DateRange is
// "min-max" ("-44-1969" for a BCE start), empty for an empty catalog.
func (c *Catalog) Meta() Meta {
	years := c.Years()
	m := Meta{TotalPuzzles: len(years)}
	if len(years) > 0 {
		m.DateRange = fmt.Sprintf("%d-%d", years[0], years[len(years)-1])
	}
	return m
}
