package printer

import (
	"fmt"

	"typedjs/internal/ast"
	"typedjs/internal/parser"
	"typedjs/internal/token"
)

// Уровни приоритета выражений; бинарные операторы занимают
// precBinary+1 .. precBinary+10 по таблице парсера.
const (
	precSeq     = 0
	precAssign  = 1 // присваивание, стрелочные функции, spread
	precCond    = 2
	precBinary  = 2
	precUnary   = 13
	precPostfix = 14
	precCall    = 15 // вызов, member, new
	precPrimary = 16
)

func (p *printer) prec(id ast.ExprID) int {
	e := p.b.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprSeq:
		return precSeq
	case ast.ExprAssign, ast.ExprSpread:
		return precAssign
	case ast.ExprFunc:
		fe, _ := p.b.Exprs.Func(id)
		if p.b.Funcs.Get(fe.Func).Arrow {
			return precAssign
		}
		return precPrimary
	case ast.ExprCond:
		return precCond
	case ast.ExprBinary:
		data, _ := p.b.Exprs.Binary(id)
		return precBinary + parser.BinaryPrec(data.Op)
	case ast.ExprUnary:
		data, _ := p.b.Exprs.Unary(id)
		if data.Postfix {
			return precPostfix
		}
		return precUnary
	case ast.ExprCall, ast.ExprNew, ast.ExprMember, ast.ExprIndex:
		return precCall
	}
	return precPrimary
}

// expr prints id, wrapping it in parentheses when it binds looser than min.
func (p *printer) expr(id ast.ExprID, min int) {
	if p.prec(id) < min {
		p.w.WriteString("(")
		p.exprInner(id)
		p.w.WriteString(")")
		return
	}
	p.exprInner(id)
}

func (p *printer) exprInner(id ast.ExprID) {
	x := p.b.Exprs
	e := x.Get(id)
	switch e.Kind {
	case ast.ExprIdent:
		data, _ := x.Ident(id)
		p.w.WriteString(data.Name)
	case ast.ExprLit:
		data, _ := x.Literal(id)
		if data.Kind == ast.LitString {
			p.w.WriteString(singleQuoted(data.Raw))
		} else {
			p.w.WriteString(data.Raw)
		}
	case ast.ExprThis:
		p.w.WriteString("this")
	case ast.ExprSuper:
		p.w.WriteString("super")
	case ast.ExprBinary:
		data, _ := x.Binary(id)
		prec := p.prec(id)
		p.expr(data.Left, prec)
		p.w.WriteString(" " + data.Op.String() + " ")
		p.expr(data.Right, prec+1)
	case ast.ExprUnary:
		p.unary(id)
	case ast.ExprAssign:
		data, _ := x.Assign(id)
		p.expr(data.Target, precCall)
		p.w.WriteString(" " + data.Op.String() + " ")
		p.expr(data.Value, precAssign)
	case ast.ExprCond:
		data, _ := x.Cond(id)
		p.expr(data.Cond, precCond+1)
		p.w.WriteString(" ? ")
		p.expr(data.Then, precAssign)
		p.w.WriteString(" : ")
		p.expr(data.Else, precAssign)
	case ast.ExprCall:
		data, _ := x.Call(id)
		p.expr(data.Callee, precCall)
		p.args(data.Args)
	case ast.ExprNew:
		data, _ := x.Call(id)
		p.w.WriteString("new ")
		if p.containsCall(data.Callee) {
			p.w.WriteString("(")
			p.exprInner(data.Callee)
			p.w.WriteString(")")
		} else {
			p.expr(data.Callee, precCall)
		}
		p.args(data.Args)
	case ast.ExprMember:
		data, _ := x.Member(id)
		p.expr(data.Object, precCall)
		if lit, ok := x.Literal(data.Object); ok && lit.Kind == ast.LitNumber && isPlainInt(lit.Raw) {
			// 1.toString() не разбирается
			p.w.WriteString(".")
		}
		p.w.WriteString("." + data.Name)
	case ast.ExprIndex:
		data, _ := x.Index(id)
		p.expr(data.Object, precCall)
		p.w.WriteString("[")
		p.expr(data.Key, precSeq)
		p.w.WriteString("]")
	case ast.ExprArray:
		p.array(id)
	case ast.ExprSeq:
		data, _ := x.List(id)
		for i, item := range data.Items {
			if i > 0 {
				p.w.WriteString(", ")
			}
			p.expr(item, precAssign)
		}
	case ast.ExprObject:
		p.object(id)
	case ast.ExprFunc:
		data, _ := x.Func(id)
		p.function(data.Func)
	case ast.ExprClass:
		data, _ := x.Class(id)
		p.class(data.Class)
	case ast.ExprSpread:
		inner, _ := x.Wrapped(id)
		p.w.WriteString("...")
		p.expr(inner, precAssign)
	case ast.ExprParen:
		inner, _ := x.Wrapped(id)
		p.w.WriteString("(")
		p.expr(inner, precSeq)
		p.w.WriteString(")")
	default:
		panic(fmt.Errorf("printer: unexpected expression kind %d", e.Kind))
	}
}

func (p *printer) unary(id ast.ExprID) {
	data, _ := p.b.Exprs.Unary(id)
	if data.Postfix {
		p.expr(data.X, precCall)
		p.w.WriteString(data.Op.String())
		return
	}
	p.w.WriteString(data.Op.String())
	switch data.Op {
	case token.KwTypeof, token.KwVoid, token.KwDelete:
		p.w.WriteString(" ")
	case token.Plus, token.Minus, token.PlusPlus, token.MinusMinus:
		// `- -x` и `+ ++x` не должны слипнуться
		if inner, ok := p.b.Exprs.Unary(data.X); ok && !inner.Postfix && sameSign(data.Op, inner.Op) {
			p.w.WriteString(" ")
		}
	}
	p.expr(data.X, precUnary)
}

func sameSign(a, b token.Kind) bool {
	plus := func(k token.Kind) bool { return k == token.Plus || k == token.PlusPlus }
	minus := func(k token.Kind) bool { return k == token.Minus || k == token.MinusMinus }
	return plus(a) && plus(b) || minus(a) && minus(b)
}

func isPlainInt(raw string) bool {
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}
	return raw != ""
}

// containsCall reports whether a `new` callee has a call on its member
// chain; `new (f())()` differs from `new f()()`.
func (p *printer) containsCall(id ast.ExprID) bool {
	x := p.b.Exprs
	for {
		switch e := x.Get(id); e.Kind {
		case ast.ExprCall:
			return true
		case ast.ExprMember:
			m, _ := x.Member(id)
			id = m.Object
		case ast.ExprIndex:
			ix, _ := x.Index(id)
			id = ix.Object
		default:
			return false
		}
	}
}

// leftmost returns the expression that begins the printed text of id.
func (p *printer) leftmost(id ast.ExprID) ast.ExprID {
	x := p.b.Exprs
	for {
		if p.prec(id) == precPrimary {
			return id
		}
		switch e := x.Get(id); e.Kind {
		case ast.ExprBinary:
			data, _ := x.Binary(id)
			id = data.Left
		case ast.ExprAssign:
			data, _ := x.Assign(id)
			id = data.Target
		case ast.ExprCond:
			data, _ := x.Cond(id)
			id = data.Cond
		case ast.ExprCall:
			data, _ := x.Call(id)
			id = data.Callee
		case ast.ExprMember:
			data, _ := x.Member(id)
			id = data.Object
		case ast.ExprIndex:
			data, _ := x.Index(id)
			id = data.Object
		case ast.ExprSeq:
			data, _ := x.List(id)
			id = data.Items[0]
		case ast.ExprUnary:
			data, _ := x.Unary(id)
			if !data.Postfix {
				return id
			}
			id = data.X
		default:
			return id
		}
	}
}

func (p *printer) args(args []ast.ExprID) {
	p.w.WriteString("(")
	for i, a := range args {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.expr(a, precAssign)
	}
	p.w.WriteString(")")
}

func (p *printer) array(id ast.ExprID) {
	data, _ := p.b.Exprs.List(id)
	p.w.WriteString("[")
	for i, item := range data.Items {
		if i > 0 {
			p.w.WriteString(", ")
		}
		if item.IsValid() {
			p.expr(item, precAssign)
		}
	}
	if n := len(data.Items); n > 0 && !data.Items[n-1].IsValid() {
		p.w.WriteString(",")
	}
	p.w.WriteString("]")
}

func (p *printer) object(id ast.ExprID) {
	data, _ := p.b.Exprs.Object(id)
	if len(data.Props) == 0 {
		p.w.WriteString("{}")
		return
	}
	p.w.WriteString("{")
	for i, prop := range data.Props {
		if i > 0 {
			p.w.WriteString(",")
		}
		p.w.WriteString(" ")
		p.prop(prop)
	}
	p.w.WriteString(" }")
}

func (p *printer) prop(prop ast.Prop) {
	switch prop.Kind {
	case ast.PropSpread:
		p.w.WriteString("...")
		p.expr(prop.Value, precAssign)
		return
	case ast.PropShorthand:
		p.w.WriteString(prop.Key)
		return
	case ast.PropGet:
		p.w.WriteString("get ")
	case ast.PropSet:
		p.w.WriteString("set ")
	}
	p.propKey(prop.Key, prop.Computed, prop.KeyExpr)
	if prop.Kind == ast.PropInit {
		p.w.WriteString(": ")
		p.expr(prop.Value, precAssign)
		return
	}
	p.signature(prop.Func)
}

func (p *printer) propKey(raw string, computed bool, key ast.ExprID) {
	if computed {
		p.w.WriteString("[")
		p.expr(key, precAssign)
		p.w.WriteString("]")
		return
	}
	p.w.WriteString(singleQuoted(raw))
}
