package lexer

import (
	"strings"
	"testing"

	"typedjs/internal/diag"
	"typedjs/internal/source"
	"typedjs/internal/token"
)

func TestTokenTooLongTriggersDiagnosticAndStops(t *testing.T) {
	content := strings.Repeat("a", maxTokenLength+1) + " b"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("long.tjs", []byte(content)))

	bag := diag.NewBag(4)
	lx := New(file, Options{Reporter: &diag.BagReporter{Bag: bag}})

	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected invalid token, got %v", tok.Kind)
	}
	if bag.Count(diag.LexTokenTooLong) != 1 {
		t.Fatalf("expected LexTokenTooLong")
	}
	if next := lx.Next(); next.Kind != token.EOF {
		t.Fatalf("expected EOF after long token, got %v", next.Kind)
	}
}

func TestCursorRangeClamps(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("c.tjs", []byte("abc")))
	c := NewRangeCursor(file, source.Span{Start: 1, End: 99})
	if c.Limit != 3 || c.Off != 1 {
		t.Fatalf("cursor %+v", c)
	}
	if b := c.Bump(); b != 'b' {
		t.Fatalf("bump %q", b)
	}
	m := c.Mark()
	c.Bump()
	if !c.EOF() {
		t.Fatalf("expected EOF")
	}
	if sp := c.SpanFrom(m); sp.Start != 2 || sp.End != 3 {
		t.Fatalf("span %v", sp)
	}
}
