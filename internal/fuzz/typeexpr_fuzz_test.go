package fuzztests

import (
	"testing"

	"typedjs/internal/diag"
	"typedjs/internal/normalize"
	"typedjs/internal/source"
	"typedjs/internal/typeast"
	"typedjs/internal/typeexpr"
)

// FuzzTypeGrammars parses input with both grammars and normalizes whatever parses.
func FuzzTypeGrammars(f *testing.F) {
	addTypeSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		for _, g := range []typeexpr.Grammar{typeexpr.GrammarLegacy, typeexpr.GrammarInline} {
			fs := source.NewFileSet()
			id := fs.AddVirtual("fuzz.type", input)
			bag := diag.NewBag(32)
			n, ok := typeexpr.ParseFile(fs, id, g, &diag.BagReporter{Bag: bag})
			if !ok {
				continue
			}
			typ := normalize.Normalize(n)
			if typ == nil {
				t.Fatalf("%s: nil type for %q", g, truncateForLog(input, 200))
			}
			_ = typeast.Print(typ)
		}
	})
}
