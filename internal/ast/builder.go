package ast

import (
	"typedjs/internal/source"
)

type Hints struct{ Files, Stmts, Exprs, Funcs, Classes uint }

// Builder owns every arena of one compilation unit (or several, in tests).
// It is single-writer: passes mutate it in place one at a time.
type Builder struct {
	Files   *Files
	Stmts   *Stmts
	Exprs   *Exprs
	Funcs   *Funcs
	Classes *Classes
	// Types keeps canonical types per annotation site, filled by the annotate pass.
	Types *TypeTable
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 9
	}
	if hints.Funcs == 0 {
		hints.Funcs = 1 << 6
	}
	if hints.Classes == 0 {
		hints.Classes = 1 << 4
	}
	return &Builder{
		Files:   NewFiles(hints.Files),
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Funcs:   NewFuncs(hints.Funcs),
		Classes: NewClasses(hints.Classes),
		Types:   NewTypeTable(),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

// PushStmt appends a top-level statement to file.
func (b *Builder) PushStmt(file FileID, stmt StmtID) {
	f := b.Files.Get(file)
	f.Stmts = append(f.Stmts, stmt)
}
