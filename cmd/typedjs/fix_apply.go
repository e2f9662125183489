package main

import (
	"errors"
	"fmt"
	"io"

	"typedjs/internal/diag"
	"typedjs/internal/driver"
	"typedjs/internal/fix"
	"typedjs/internal/source"
)

// applyFixes применяет первый fix каждой диагностики и пишет файлы на диск.
func applyFixes(w io.Writer, results []*driver.Result) error {
	bySet := make(map[*source.FileSet][]diag.Diagnostic)
	var order []*source.FileSet
	for _, r := range results {
		if r == nil || r.Bag == nil || r.FileSet == nil {
			continue
		}
		if _, ok := bySet[r.FileSet]; !ok {
			order = append(order, r.FileSet)
		}
		bySet[r.FileSet] = append(bySet[r.FileSet], r.Bag.Items()...)
	}

	applied := 0
	for _, fs := range order {
		res, err := fix.Apply(fs, bySet[fs])
		if err != nil && !errors.Is(err, fix.ErrNoFixes) {
			return err
		}
		if err := fix.WriteChanges(res.FileChanges); err != nil {
			return err
		}
		for _, item := range res.Applied {
			fmt.Fprintf(w, "  %s [%s] %s (%d edits)\n", item.Title, item.Code.ID(), item.Path, item.EditCount)
		}
		for _, skip := range res.Skipped {
			fmt.Fprintf(w, "  skipped %s: %s\n", skip.Title, skip.Reason)
		}
		applied += len(res.Applied)
	}
	if applied == 0 {
		fmt.Fprintln(w, "No applicable fixes found.")
		return nil
	}
	fmt.Fprintf(w, "%d fixes applied\n", applied)
	return nil
}
