package printer

import (
	"fmt"

	"typedjs/internal/ast"
)

func (p *printer) stmt(id ast.StmtID) {
	st := p.b.Stmts.Get(id)
	if st == nil {
		return
	}
	p.doc(st.Doc)
	switch st.Kind {
	case ast.StmtEmpty:
		p.w.WriteString(";")
	case ast.StmtExpr:
		data, _ := p.b.Stmts.Expr(id)
		p.exprStmt(data.Expr)
	case ast.StmtVar:
		p.varDecl(id)
		p.w.WriteString(";")
	case ast.StmtFunc:
		data, _ := p.b.Stmts.Func(id)
		p.function(data.Func)
	case ast.StmtClass:
		data, _ := p.b.Stmts.Class(id)
		p.class(data.Class)
	case ast.StmtReturn:
		data, _ := p.b.Stmts.Return(id)
		p.w.WriteString("return")
		if data.Value.IsValid() {
			p.w.WriteString(" ")
			p.expr(data.Value, precSeq)
		}
		p.w.WriteString(";")
	case ast.StmtThrow:
		data, _ := p.b.Stmts.Throw(id)
		p.w.WriteString("throw ")
		p.expr(data.Value, precSeq)
		p.w.WriteString(";")
	case ast.StmtBreak, ast.StmtContinue:
		data, _ := p.b.Stmts.Jump(id)
		if st.Kind == ast.StmtBreak {
			p.w.WriteString("break")
		} else {
			p.w.WriteString("continue")
		}
		if data.Label != "" {
			p.w.WriteString(" " + data.Label)
		}
		p.w.WriteString(";")
	case ast.StmtBlock:
		p.block(id)
	case ast.StmtIf:
		p.ifStmt(id)
	case ast.StmtWhile:
		data, _ := p.b.Stmts.While(id)
		p.w.WriteString("while (")
		p.expr(data.Cond, precSeq)
		p.w.WriteString(")")
		p.body(data.Body)
	case ast.StmtFor:
		p.forStmt(id)
	case ast.StmtTry:
		p.tryStmt(id)
	default:
		panic(fmt.Errorf("printer: unexpected statement kind %d", st.Kind))
	}
}

// exprStmt parenthesizes statements that would otherwise start with
// `function`, `class` or `{`.
func (p *printer) exprStmt(e ast.ExprID) {
	if p.ambiguousStart(p.leftmost(e)) {
		p.w.WriteString("(")
		p.expr(e, precSeq)
		p.w.WriteString(");")
		return
	}
	p.expr(e, precSeq)
	p.w.WriteString(";")
}

func (p *printer) ambiguousStart(id ast.ExprID) bool {
	switch p.b.Exprs.Get(id).Kind {
	case ast.ExprClass, ast.ExprObject:
		return true
	case ast.ExprFunc:
		fe, _ := p.b.Exprs.Func(id)
		return !p.b.Funcs.Get(fe.Func).Arrow
	}
	return false
}

func (p *printer) varDecl(id ast.StmtID) {
	data, _ := p.b.Stmts.Var(id)
	p.w.WriteString(data.Kind.String())
	p.w.WriteString(" ")
	for i, d := range data.Decls {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.expr(d.Target, precAssign)
		p.annotation(ast.VarSite(id, i), false)
		if d.Init.IsValid() {
			p.w.WriteString(" = ")
			p.expr(d.Init, precAssign)
		}
	}
}

func (p *printer) block(id ast.StmtID) {
	data, ok := p.b.Stmts.Block(id)
	if !ok || len(data.Stmts) == 0 {
		p.w.WriteString("{}")
		return
	}
	p.w.WriteString("{")
	p.w.Newline()
	p.w.IndentPush()
	for _, s := range data.Stmts {
		p.stmt(s)
		p.w.Newline()
	}
	p.w.IndentPop()
	p.w.WriteString("}")
}

// body prints a loop or branch body: blocks on the same line, anything
// else indented on the next one.
func (p *printer) body(id ast.StmtID) {
	if st := p.b.Stmts.Get(id); st != nil && st.Kind == ast.StmtBlock {
		p.w.WriteString(" ")
		p.block(id)
		return
	}
	p.w.Newline()
	p.w.IndentPush()
	p.stmt(id)
	p.w.IndentPop()
}

func (p *printer) ifStmt(id ast.StmtID) {
	data, _ := p.b.Stmts.If(id)
	p.w.WriteString("if (")
	p.expr(data.Cond, precSeq)
	p.w.WriteString(")")
	p.body(data.Then)
	if !data.Else.IsValid() {
		return
	}
	if p.b.Stmts.Get(data.Then).Kind == ast.StmtBlock {
		p.w.WriteString(" ")
	} else {
		p.w.Newline()
	}
	p.w.WriteString("else")
	if p.b.Stmts.Get(data.Else).Kind == ast.StmtIf {
		p.w.WriteString(" ")
		p.stmt(data.Else)
		return
	}
	p.body(data.Else)
}

func (p *printer) forStmt(id ast.StmtID) {
	data, _ := p.b.Stmts.For(id)
	p.w.WriteString("for (")
	if data.Init.IsValid() {
		switch st := p.b.Stmts.Get(data.Init); st.Kind {
		case ast.StmtVar:
			p.varDecl(data.Init)
		case ast.StmtExpr:
			e, _ := p.b.Stmts.Expr(data.Init)
			p.expr(e.Expr, precSeq)
		}
	}
	p.w.WriteString(";")
	if data.Cond.IsValid() {
		p.w.WriteString(" ")
		p.expr(data.Cond, precSeq)
	}
	p.w.WriteString(";")
	if data.Update.IsValid() {
		p.w.WriteString(" ")
		p.expr(data.Update, precSeq)
	}
	p.w.WriteString(")")
	p.body(data.Body)
}

func (p *printer) tryStmt(id ast.StmtID) {
	data, _ := p.b.Stmts.Try(id)
	p.w.WriteString("try ")
	p.block(data.Body)
	if data.Catch.IsValid() {
		p.w.WriteString(" catch ")
		if data.CatchParam != "" {
			p.w.WriteString("(" + data.CatchParam + ") ")
		}
		p.block(data.Catch)
	}
	if data.Finally.IsValid() {
		p.w.WriteString(" finally ")
		p.block(data.Finally)
	}
}
