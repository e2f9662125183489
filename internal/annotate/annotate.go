// Package annotate resolves every type annotation of a parsed file to its
// canonical type. Each site is parsed with the grammar it is written in,
// normalized once, and stored in the builder's type table.
package annotate

import (
	"fmt"

	"typedjs/internal/ast"
	"typedjs/internal/diag"
	"typedjs/internal/normalize"
	"typedjs/internal/source"
	"typedjs/internal/token"
	"typedjs/internal/typeexpr"
)

// Result summarizes one run.
type Result struct {
	Sites     int
	Conflicts int
}

type annotator struct {
	b   *ast.Builder
	src *source.File
	r   diag.Reporter
	res Result
	// JSDoc written on `var f = function` or `a.b = function` belongs to the function.
	funcDocs map[ast.FuncID]*token.Trivia
}

// Run annotates file. src is the source file the builder's file was parsed from.
func Run(b *ast.Builder, file ast.FileID, src *source.File, r diag.Reporter) Result {
	a := &annotator{
		b:        b,
		src:      src,
		r:        r,
		funcDocs: make(map[ast.FuncID]*token.Trivia),
	}
	b.Walk(file, ast.Visitor{
		Stmt:  a.stmt,
		Func:  a.fn,
		Class: a.class,
	})
	return a.res
}

func (a *annotator) doc(t *token.Trivia) typeexpr.Doc {
	if t == nil {
		return typeexpr.Doc{}
	}
	return typeexpr.ExtractDoc(a.src, *t)
}

func (a *annotator) stmt(_ ast.ListRef, id ast.StmtID) {
	st := a.b.Stmts.Get(id)
	d := a.doc(st.Doc)

	switch st.Kind {
	case ast.StmtVar:
		data, _ := a.b.Stmts.Var(id)
		used, inherited := false, false
		for i, decl := range data.Decls {
			var tag *typeexpr.Tag
			if _, ok := a.b.Exprs.Ident(decl.Target); ok {
				tag = d.Type
				used = used || tag != nil
			}
			a.site(ast.VarSite(id, i), decl.Type, tag)
			if fn, ok := a.funcInit(decl.Init); ok && len(data.Decls) == 1 {
				inherited = a.inheritDoc(fn, st.Doc, d)
			}
		}
		if d.Type != nil && !used {
			a.unattached(*d.Type)
		}
		if !inherited {
			a.unattachedFuncTags(d)
		}
	case ast.StmtExpr:
		data, _ := a.b.Stmts.Expr(id)
		if as, ok := a.b.Exprs.Assign(data.Expr); ok {
			if fn, ok := a.funcInit(as.Value); ok && a.inheritDoc(fn, st.Doc, d) {
				return
			}
		}
		if d.Type != nil {
			a.unattached(*d.Type)
		}
		a.unattachedFuncTags(d)
	case ast.StmtFunc, ast.StmtClass:
		// документация уже у функции или класса
	default:
		if d.Type != nil {
			a.unattached(*d.Type)
		}
		a.unattachedFuncTags(d)
	}
}

func (a *annotator) funcInit(id ast.ExprID) (ast.FuncID, bool) {
	fe, ok := a.b.Exprs.Func(a.b.Exprs.Unparen(id))
	if !ok {
		return ast.NoFuncID, false
	}
	return fe.Func, true
}

// inheritDoc hands @param/@return tags of a statement to the function it assigns.
func (a *annotator) inheritDoc(fn ast.FuncID, doc *token.Trivia, d typeexpr.Doc) bool {
	if doc == nil || a.b.Funcs.Get(fn).Doc != nil {
		return false
	}
	if len(d.Params) == 0 && d.Return == nil {
		return false
	}
	a.funcDocs[fn] = doc
	return true
}

func (a *annotator) fn(id ast.FuncID) {
	fn := a.b.Funcs.Get(id)
	docTrivia := fn.Doc
	if docTrivia == nil {
		docTrivia = a.funcDocs[id]
	}
	d := a.doc(docTrivia)

	matched := make(map[string]bool, len(d.Params))
	for i, param := range fn.Params {
		var tag *typeexpr.Tag
		if param.Name != "" {
			if t, ok := d.Param(param.Name); ok {
				tag = &t
				matched[param.Name] = true
			}
		}
		inline := param.Type
		switch {
		case inline == nil:
		case param.Rest:
			inline = typeexpr.NewRest(param.Span, inline)
		case param.Optional:
			inline = typeexpr.NewOptional(param.Span, inline)
		}
		a.site(ast.ParamSite(id, i), inline, tag)
	}
	for _, t := range d.Params {
		if !matched[t.Name] {
			diag.ReportWarning(a.r, diag.TypJSDocParamName, t.NameSpan,
				fmt.Sprintf("@param %q does not match any parameter", t.Name)).Emit()
		}
	}
	a.site(ast.ReturnSite(id), fn.Return, d.Return)
	if d.Type != nil {
		a.unattached(*d.Type)
	}
}

func (a *annotator) class(site ast.ClassSite) {
	cls := a.b.Classes.Get(site.Class)
	d := a.doc(cls.Doc)
	if d.Type != nil {
		a.unattached(*d.Type)
	}
	a.unattachedFuncTags(d)
	for _, mid := range cls.Members {
		m := a.b.Classes.Member(mid)
		if m.Kind != ast.MemberField {
			continue
		}
		md := a.doc(m.Doc)
		a.site(ast.FieldSite(mid), m.Type, md.Type)
	}
}

// site normalizes the annotation of one declaration. With both syntaxes
// present the inline type is kept and the conflict reported.
func (a *annotator) site(s ast.TypeSite, inline typeexpr.Node, tag *typeexpr.Tag) {
	switch {
	case inline != nil && tag != nil:
		diag.ReportError(a.r, diag.SynTypeSyntaxConflict, inline.Span(),
			"type syntax conflict: declaration has both an inline type and a JSDoc type").
			WithNote(tag.Span, "JSDoc type is declared here").
			Emit()
		a.res.Conflicts++
		a.set(s, inline)
	case inline != nil:
		a.set(s, inline)
	case tag != nil:
		if n, ok := typeexpr.ParseTag(a.src, *tag, a.r); ok {
			a.set(s, n)
		}
	}
}

func (a *annotator) set(s ast.TypeSite, n typeexpr.Node) {
	a.b.Types.Set(s, normalize.Normalize(n))
	a.res.Sites++
}

func (a *annotator) unattached(tag typeexpr.Tag) {
	diag.ReportWarning(a.r, diag.TypJSDocUnattached, tag.Span,
		fmt.Sprintf("%s tag is not attached to a declaration", tag.Kind)).Emit()
}

func (a *annotator) unattachedFuncTags(d typeexpr.Doc) {
	for _, t := range d.Params {
		a.unattached(t)
	}
	if d.Return != nil {
		a.unattached(*d.Return)
	}
}
