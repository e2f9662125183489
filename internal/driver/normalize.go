package driver

import (
	"typedjs/internal/diag"
	"typedjs/internal/normalize"
	"typedjs/internal/source"
	"typedjs/internal/typeast"
	"typedjs/internal/typeexpr"
)

type NormalizeResult struct {
	Type    typeast.Type // nil when the text did not parse
	FileSet *source.FileSet
	Bag     *diag.Bag
}

// NormalizeText parses src as a single type expression in grammar g and
// normalizes it.
func NormalizeText(src string, g typeexpr.Grammar, maxDiagnostics int) NormalizeResult {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<type>", []byte(src))
	bag := diag.NewBag(maxDiagnostics)
	res := NormalizeResult{FileSet: fs, Bag: bag}
	n, ok := typeexpr.ParseFile(fs, id, g, &diag.BagReporter{Bag: bag})
	if !ok || bag.HasErrors() {
		return res
	}
	res.Type = normalize.Normalize(n)
	return res
}
