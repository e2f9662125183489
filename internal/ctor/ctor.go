// Package ctor gives every class an explicit constructor so later passes can
// rely on one being present.
package ctor

import (
	"typedjs/internal/ast"
	"typedjs/internal/source"
)

// Synthesize adds `constructor() {}` to every class of file that lacks one, or
// `constructor(...args) { super(...args); }` when the class has a superclass.
// The new member is placed first. It returns the number of classes changed.
func Synthesize(b *ast.Builder, file ast.FileID) int {
	return synthesize(b, file, false)
}

// SynthesizeNeeded only touches classes that declare fields, the minimum
// field hoisting requires.
func SynthesizeNeeded(b *ast.Builder, file ast.FileID) int {
	return synthesize(b, file, true)
}

func synthesize(b *ast.Builder, file ast.FileID, fieldsOnly bool) int {
	n := 0
	b.Walk(file, ast.Visitor{
		Class: func(site ast.ClassSite) {
			if _, _, ok := b.Classes.Constructor(site.Class); ok {
				return
			}
			if fieldsOnly && len(b.Classes.Fields(site.Class)) == 0 {
				return
			}
			b.Classes.InsertMember(site.Class, 0, newCtor(b, site.Class))
			n++
		},
	})
	return n
}

func newCtor(b *ast.Builder, id ast.ClassID) ast.MemberID {
	cls := b.Classes.Get(id)
	sp := cls.Span.ZeroideToStart()

	var (
		params []ast.Param
		body   []ast.StmtID
	)
	if cls.Extends.IsValid() {
		params = []ast.Param{{Name: "args", Rest: true, Pattern: ast.NoExprID, Default: ast.NoExprID, Span: sp}}
		body = []ast.StmtID{superCall(b, sp)}
	}
	fn := b.Funcs.New(ast.Func{
		Params:   params,
		Body:     b.Stmts.NewBlock(sp, body),
		ExprBody: ast.NoExprID,
		Span:     sp,
	})
	return b.Classes.NewMember(ast.Member{
		Kind:     ast.MemberMethod,
		Name:     "constructor",
		NameSpan: sp,
		Key:      ast.NoExprID,
		Func:     fn,
		Init:     ast.NoExprID,
		Span:     sp,
	})
}

// super(...args);
func superCall(b *ast.Builder, sp source.Span) ast.StmtID {
	x := b.Exprs
	args := x.NewSpread(sp, x.NewIdent(sp, "args"))
	call := x.NewCall(sp, x.NewSuper(sp), []ast.ExprID{args})
	return b.Stmts.NewExpr(sp, call)
}
