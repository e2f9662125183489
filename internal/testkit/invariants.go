// Package testkit holds structural checks shared by parser and pass tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"typedjs/internal/ast"
	"typedjs/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// the file span lies within the content, every top-level statement span is
// non-empty and inside the file span, and statements do not overlap.
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent || f.Span.Start > f.Span.End {
		return fmt.Errorf("file span %v outside content of %d bytes", f.Span, lenContent)
	}

	var prev source.Span
	for i, id := range f.Stmts {
		stmt := b.Stmts.Get(id)
		if stmt == nil {
			return fmt.Errorf("nil statement for id=%d", id)
		}
		sp := stmt.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("statement %d: empty span %v", i, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("statement %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if !f.Span.Contains(sp) {
			return fmt.Errorf("statement %d: span %v is outside file span %v", i, sp, f.Span)
		}
		if i > 0 && sp.Start < prev.End {
			return fmt.Errorf("statement %d: span %v overlaps previous %v", i, sp, prev)
		}
		prev = sp
	}
	return nil
}
