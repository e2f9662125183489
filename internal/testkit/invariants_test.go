package testkit

import (
	"strings"
	"testing"

	"typedjs/internal/ast"
	"typedjs/internal/source"
)

func TestCheckSpanInvariantsCatchesOverlap(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.tjs", []byte("a; b;"))
	b := ast.NewBuilder(ast.Hints{})
	s1 := b.Stmts.NewEmpty(source.Span{File: id, Start: 0, End: 2})
	s2 := b.Stmts.NewEmpty(source.Span{File: id, Start: 1, End: 5})
	fid := b.Files.New(source.Span{File: id, Start: 0, End: 5})
	b.Files.Get(fid).Stmts = []ast.StmtID{s1, s2}

	err := CheckSpanInvariants(b, fid, fs.Get(id))
	if err == nil || !strings.Contains(err.Error(), "overlaps") {
		t.Fatalf("err = %v", err)
	}
}
