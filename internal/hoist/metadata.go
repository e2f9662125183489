package hoist

import (
	"typedjs/internal/ast"
	"typedjs/internal/token"
)

// metadata is what a class needs for static fields: the qualified name used
// as assignment target and where the statements go.
type metadata struct {
	name []string // "this" may be the first segment
	list ast.ListRef
	// owner is the statement after which static assignments start.
	owner ast.StmtID
}

// classMetadata derives metadata from the statement owning the class:
//
//	class C {}                  -> C
//	var|let|const C = class {}  -> C
//	a.b.C = class {};           -> a.b.C
//
// Anything else has no derivable name.
func classMetadata(b *ast.Builder, site ast.ClassSite) (metadata, bool) {
	if !site.List.IsValid() {
		return metadata{}, false
	}
	md := metadata{list: site.List, owner: site.Owner}
	if !site.Expr.IsValid() {
		cls := b.Classes.Get(site.Class)
		if cls.Name == "" {
			return metadata{}, false
		}
		md.name = []string{cls.Name}
		return md, true
	}

	switch b.Stmts.Get(site.Owner).Kind {
	case ast.StmtVar:
		data, _ := b.Stmts.Var(site.Owner)
		for _, d := range data.Decls {
			if b.Exprs.Unparen(d.Init) != site.Expr {
				continue
			}
			if id, ok := b.Exprs.Ident(d.Target); ok {
				md.name = []string{id.Name}
				return md, true
			}
		}
	case ast.StmtExpr:
		data, _ := b.Stmts.Expr(site.Owner)
		as, ok := b.Exprs.Assign(data.Expr)
		if !ok || as.Op != token.Assign || b.Exprs.Unparen(as.Value) != site.Expr {
			break
		}
		if name, ok := qualifiedName(b, as.Target); ok {
			md.name = name
			return md, true
		}
	}
	return metadata{}, false
}

// qualifiedName flattens `a.b.c` (or `this.a.b`) into its segments.
func qualifiedName(b *ast.Builder, id ast.ExprID) ([]string, bool) {
	e := b.Exprs.Get(id)
	if e == nil {
		return nil, false
	}
	switch e.Kind {
	case ast.ExprIdent:
		ident, _ := b.Exprs.Ident(id)
		return []string{ident.Name}, true
	case ast.ExprThis:
		return []string{"this"}, true
	case ast.ExprMember:
		m, _ := b.Exprs.Member(id)
		prefix, ok := qualifiedName(b, m.Object)
		if !ok {
			return nil, false
		}
		return append(prefix, m.Name), true
	}
	return nil, false
}
