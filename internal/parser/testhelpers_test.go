package parser

import (
	"testing"

	"typedjs/internal/ast"
	"typedjs/internal/diag"
	"typedjs/internal/source"
)

type parsed struct {
	b    *ast.Builder
	file ast.FileID
	bag  *diag.Bag
	fs   *source.FileSet
}

func (ps parsed) stmts() []ast.StmtID {
	return ps.b.Files.Get(ps.file).Stmts
}

func parseSource(t *testing.T, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tjs", []byte(src))
	bag := diag.NewBag(100)
	b := ast.NewBuilder(ast.Hints{})
	res := ParseFile(fs, id, b, Options{Reporter: &diag.BagReporter{Bag: bag}})
	return parsed{b: b, file: res.File, bag: bag, fs: fs}
}

func parseOK(t *testing.T, src string) parsed {
	t.Helper()
	ps := parseSource(t, src)
	if ps.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", diag.FormatGoldenDiagnostics(ps.bag.Items(), ps.fs, false))
	}
	return ps
}
