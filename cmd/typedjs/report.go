package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"typedjs/internal/diag"
	"typedjs/internal/diagfmt"
	"typedjs/internal/driver"
	"typedjs/internal/observ"
)

type reportOptions struct {
	format    string // pretty|json|short
	withNotes bool
	fullPath  bool
}

func (o reportOptions) pathMode() diagfmt.PathMode {
	if o.fullPath {
		return diagfmt.PathModeAbsolute
	}
	return diagfmt.PathModeAuto
}

// collect merges the bags of results that share one FileSet.
func collect(results []*driver.Result) *diag.Bag {
	bag := diag.NewBag(0)
	for _, r := range results {
		bag.Merge(r.Bag)
	}
	return bag
}

// printDiagnostics renders the diagnostics of results to w.
func printDiagnostics(cmd *cobra.Command, w *os.File, results []*driver.Result, opts reportOptions) error {
	if len(results) == 0 {
		return nil
	}
	fs := results[0].FileSet
	bag := collect(results)
	switch opts.format {
	case "pretty":
		if bag.Len() == 0 {
			return nil
		}
		color, err := useColor(cmd, w)
		if err != nil {
			return err
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     color,
			Context:   1,
			PathMode:  opts.pathMode(),
			ShowNotes: opts.withNotes,
			ShowFixes: opts.withNotes,
		})
	case "short":
		diagfmt.Short(w, bag, fs, opts.pathMode())
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         opts.pathMode(),
			IncludeNotes:     opts.withNotes,
			IncludeFixes:     opts.withNotes,
		})
	default:
		return fmt.Errorf("unknown format: %s", opts.format)
	}
	return nil
}

func printSummary(out io.Writer, results []*driver.Result) {
	stats, errors, warnings := driver.Summary(results)
	cached := 0
	for _, r := range results {
		if r.Cached {
			cached++
		}
	}
	fmt.Fprintf(out, "%d files (%d cached): %d fields hoisted in %d classes, %d classes not converted, %d errors, %d warnings\n",
		len(results), cached, stats.Fields, stats.Classes, stats.Failed, errors, warnings)
}

func printTimings(out io.Writer, results []*driver.Result) {
	var total observ.Report
	for _, r := range results {
		if r.Timing != nil {
			total.Add(*r.Timing)
		}
	}
	fmt.Fprint(out, total.Summary())
}

func hasErrors(results []*driver.Result) bool {
	for _, r := range results {
		if r.Bag.HasErrors() {
			return true
		}
	}
	return false
}
