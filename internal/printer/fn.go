package printer

import "typedjs/internal/ast"

// function prints a declaration, a function expression or an arrow.
func (p *printer) function(id ast.FuncID) {
	fn := p.b.Funcs.Get(id)
	if fn.Arrow {
		p.params(id)
		p.annotation(ast.ReturnSite(id), false)
		p.w.WriteString(" => ")
		if fn.ExprBody.IsValid() {
			if p.b.Exprs.Get(p.leftmost(fn.ExprBody)).Kind == ast.ExprObject {
				p.w.WriteString("(")
				p.expr(fn.ExprBody, precSeq)
				p.w.WriteString(")")
			} else {
				p.expr(fn.ExprBody, precAssign)
			}
			return
		}
		p.block(fn.Body)
		return
	}
	p.w.WriteString("function")
	if fn.Name != "" {
		p.w.WriteString(" " + fn.Name)
	}
	p.signature(id)
}

// signature prints `(params): R {body}`; method names are written by the caller.
func (p *printer) signature(id ast.FuncID) {
	fn := p.b.Funcs.Get(id)
	p.params(id)
	p.annotation(ast.ReturnSite(id), false)
	p.w.WriteString(" ")
	p.block(fn.Body)
}

func (p *printer) params(id ast.FuncID) {
	fn := p.b.Funcs.Get(id)
	p.w.WriteString("(")
	for i, param := range fn.Params {
		if i > 0 {
			p.w.WriteString(", ")
		}
		if param.Rest {
			p.w.WriteString("...")
		}
		if param.Pattern.IsValid() {
			p.expr(param.Pattern, precAssign)
		} else {
			p.w.WriteString(param.Name)
		}
		if param.Optional && p.opt.PreserveTypes {
			if _, ok := p.b.Types.Lookup(ast.ParamSite(id, i)); ok {
				p.w.WriteString("?")
			}
		}
		p.annotation(ast.ParamSite(id, i), param.Rest || param.Optional)
		if param.Default.IsValid() {
			p.w.WriteString(" = ")
			p.expr(param.Default, precAssign)
		}
	}
	p.w.WriteString(")")
}
