package ast

import (
	"typedjs/internal/source"
	"typedjs/internal/token"
	"typedjs/internal/typeexpr"
)

// Param is one formal parameter. Pattern is set instead of Name when the
// parameter is a destructuring pattern.
type Param struct {
	Name     string
	Pattern  ExprID
	Rest     bool
	Optional bool // `x?: T`
	Default  ExprID
	Type     typeexpr.Node
	Span     source.Span
}

type Func struct {
	Name     string // empty for anonymous functions and methods
	NameSpan source.Span
	Params   []Param
	Return   typeexpr.Node
	// Body is a block statement; arrow functions with an expression body use ExprBody.
	Body     StmtID
	ExprBody ExprID
	Arrow    bool
	Doc      *token.Trivia
	Span     source.Span
}

type Funcs struct {
	Arena *Arena[Func]
}

func NewFuncs(capHint uint) *Funcs {
	return &Funcs{
		Arena: NewArena[Func](capHint),
	}
}

func (f *Funcs) New(fn Func) FuncID {
	return FuncID(f.Arena.Allocate(fn))
}

func (f *Funcs) Get(id FuncID) *Func {
	return f.Arena.Get(uint32(id))
}

// HasRest reports whether the last parameter collects the remaining arguments.
func (fn *Func) HasRest() bool {
	return len(fn.Params) > 0 && fn.Params[len(fn.Params)-1].Rest
}
