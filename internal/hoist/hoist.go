package hoist

import (
	"fmt"
	"strings"

	"typedjs/internal/ast"
	"typedjs/internal/diag"
	"typedjs/internal/source"
	"typedjs/internal/token"
	"typedjs/internal/trace"
)

type Options struct {
	Reporter diag.Reporter
	Sink     ChangeSink   // may be nil
	Tracer   trace.Tracer // may be nil
	ParentID uint64       // trace span of the caller
}

type Result struct {
	Classes int // classes whose fields were converted
	Fields  int
	Failed  int // classes reported with CnvCannotConvertFields
}

// Run converts the fields of every class in file. Classes are independent:
// a failure leaves only the offending class untouched.
func Run(b *ast.Builder, file ast.FileID, opts Options) Result {
	h := &hoister{b: b, opts: opts}
	b.Walk(file, ast.Visitor{Class: h.class})
	return h.res
}

type hoister struct {
	b    *ast.Builder
	opts Options
	res  Result
}

func (h *hoister) mark(c Change) {
	if h.opts.Sink != nil {
		h.opts.Sink.MarkChanged(c)
	}
}

func (h *hoister) class(site ast.ClassSite) {
	fields := h.b.Classes.Fields(site.Class)
	if len(fields) == 0 {
		return
	}
	cls := h.b.Classes.Get(site.Class)
	md, ok := classMetadata(h.b, site)
	if !ok {
		diag.ReportError(h.opts.Reporter, diag.CnvCannotConvertFields, cls.Span,
			"cannot convert field: class fields can only be converted in declarations or simple assignments to a qualified name").
			Emit()
		h.res.Failed++
		return
	}
	_, ctor, ok := h.b.Classes.Constructor(site.Class)
	if !ok {
		panic(fmt.Errorf("hoist: class %q has no constructor; constructor synthesis must run first", cls.Name))
	}
	body := ast.ListRef{Block: h.b.Funcs.Get(ctor.Func).Body}

	var (
		instanceCursor = h.leadingSuperCall(body) // NoStmtID: front of the constructor body
		staticCursor   = md.owner
		instances      int
		statics        int
	)
	for _, mid := range fields {
		m := h.b.Classes.Member(mid)
		h.b.Classes.RemoveMember(site.Class, mid)
		h.mark(Change{Kind: FieldRemoved, Class: site.Class, List: site.List})

		if m.Static {
			stmt := h.fieldStmt(m, h.qualifiedRef(md.name, m.Span))
			h.b.InsertAfter(md.list, staticCursor, stmt)
			staticCursor = stmt
			statics++
			h.mark(Change{Kind: StaticInserted, Class: site.Class, List: md.list, Stmt: stmt})
			continue
		}
		stmt := h.fieldStmt(m, h.b.Exprs.NewThis(m.Span))
		h.b.InsertAfter(body, instanceCursor, stmt)
		instanceCursor = stmt
		instances++
		h.mark(Change{Kind: InstanceInserted, Class: site.Class, List: body, Stmt: stmt})
	}

	h.res.Classes++
	h.res.Fields += len(fields)
	trace.Point(h.opts.Tracer, trace.ScopeClass, "hoist:"+strings.Join(md.name, "."), h.opts.ParentID,
		fmt.Sprintf("%d instance, %d static", instances, statics))
}

// leadingSuperCall returns the first statement of body if it is `super(...)`;
// `this` is unusable before it runs.
func (h *hoister) leadingSuperCall(body ast.ListRef) ast.StmtID {
	list := h.b.List(body)
	if list == nil || len(*list) == 0 {
		return ast.NoStmtID
	}
	first := (*list)[0]
	data, ok := h.b.Stmts.Expr(first)
	if !ok {
		return ast.NoStmtID
	}
	call, ok := h.b.Exprs.Call(data.Expr)
	if !ok || h.b.Exprs.Get(data.Expr).Kind != ast.ExprCall {
		return ast.NoStmtID
	}
	if h.b.Exprs.Get(call.Callee).Kind != ast.ExprSuper {
		return ast.NoStmtID
	}
	return first
}

// fieldStmt builds `target.name = init;` or `target.name;`. The initializer,
// a computed key and the field's JSDoc are moved into the new statement.
func (h *hoister) fieldStmt(m *ast.Member, target ast.ExprID) ast.StmtID {
	x := h.b.Exprs
	var access ast.ExprID
	switch {
	case m.Computed:
		access = x.NewIndex(m.Span, target, m.Key)
	case isIdentName(m.Name):
		access = x.NewMember(m.Span, target, m.Name, m.NameSpan)
	case strings.HasPrefix(m.Name, "'") || strings.HasPrefix(m.Name, `"`):
		access = x.NewIndex(m.Span, target, x.NewLiteral(m.NameSpan, ast.LitString, m.Name))
	default:
		access = x.NewIndex(m.Span, target, x.NewLiteral(m.NameSpan, ast.LitNumber, m.Name))
	}
	expr := access
	if m.Init.IsValid() {
		expr = x.NewAssign(m.Span, token.Assign, access, m.Init)
	}
	stmt := h.b.Stmts.NewExpr(m.Span, expr)
	h.b.Stmts.Get(stmt).Doc = m.Doc
	return stmt
}

// qualifiedRef builds a fresh `a.b.C` expression for every use.
func (h *hoister) qualifiedRef(name []string, sp source.Span) ast.ExprID {
	x := h.b.Exprs
	var ref ast.ExprID
	if name[0] == "this" {
		ref = x.NewThis(sp)
	} else {
		ref = x.NewIdent(sp, name[0])
	}
	for _, part := range name[1:] {
		ref = x.NewMember(sp, ref, part, sp)
	}
	return ref
}

func isIdentName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || r >= 0x80:
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
