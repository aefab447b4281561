package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ordermode/internal/catalog"
)

// Catalog error codes.
const (
	ErrCodeYearExists   = "E201" // add on an existing year
	ErrCodeYearNotFound = "E202" // update on a missing year
	ErrCodeNoClues      = "E203" // every clue was blank
)

// CatalogOptions holds flags for the catalog subcommands.
type CatalogOptions struct {
	*RootOptions
	File  string
	Year  int
	Hints []string
}

// CatalogResult describes the year written and the catalog summary.
type CatalogResult struct {
	Action       string   `json:"action"` // "added" | "updated"
	Year         int      `json:"year"`
	Clues        []string `json:"clues"`
	TotalPuzzles int      `json:"total_puzzles"`
	DateRange    string   `json:"date_range"`
}

func (r CatalogResult) String() string {
	return fmt.Sprintf("Successfully %s year %d (%d clue(s)); catalog has %d puzzle(s) spanning %s.",
		r.Action, r.Year, len(r.Clues), r.TotalPuzzles, r.DateRange)
}

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the puzzles.json year catalog",
		Long: `Add or update the clue list of one year in a puzzles.json catalog.

The file is rewritten with years in numeric order and meta.total_puzzles and
meta.date_range recomputed.`,
	}

	cmd.AddCommand(newCatalogWriteCommand(rootOpts, "add", "Add clues for a new year"))
	cmd.AddCommand(newCatalogWriteCommand(rootOpts, "update", "Replace the clues of an existing year"))

	return cmd
}

func newCatalogWriteCommand(rootOpts *RootOptions, action, short string) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   action,
		Short: short,
		Example: fmt.Sprintf(`  ordermode catalog %s --file ./puzzles.json --year 1969 --hints "Apollo 11 lands on the Moon" --hints "Woodstock"
  ordermode catalog %s --file ./puzzles.json --year=-44 --hints "Caesar is assassinated"`, action, action),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(opts, action, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "puzzles.json", "path to the catalog file")
	cmd.Flags().IntVar(&opts.Year, "year", 0, "the year (negative for BCE) (required)")
	cmd.Flags().StringArrayVar(&opts.Hints, "hints", nil, "a clue for the year; repeat for more (required)")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("hints")

	return cmd
}

func runCatalog(opts *CatalogOptions, action string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	c, err := catalog.Load(opts.File)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, err.Error())
	}

	verb := "added"
	if action == "add" {
		err = c.Add(opts.Year, opts.Hints)
	} else {
		verb = "updated"
		err = c.Update(opts.Year, opts.Hints)
	}
	switch {
	case errors.Is(err, catalog.ErrYearExists):
		return formatter.Fail(ExitFailure, ErrCodeYearExists, err.Error())
	case errors.Is(err, catalog.ErrYearNotFound):
		return formatter.Fail(ExitFailure, ErrCodeYearNotFound, err.Error())
	case errors.Is(err, catalog.ErrNoClues):
		return formatter.Fail(ExitCommandError, ErrCodeNoClues, err.Error())
	case err != nil:
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error())
	}

	if err := c.Save(opts.File); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, err.Error())
	}
	formatter.VerboseLog("Wrote %s", opts.File)

	clues, _ := c.Clues(opts.Year)
	meta := c.Meta()
	return formatter.Success(CatalogResult{
		Action:       verb,
		Year:         opts.Year,
		Clues:        clues,
		TotalPuzzles: meta.TotalPuzzles,
		DateRange:    meta.DateRange,
	})
}
