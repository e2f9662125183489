package parser

import (
	"typedjs/internal/ast"
	"typedjs/internal/diag"
	"typedjs/internal/token"
)

// parseExpr: assign (, assign)*
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	start := p.s.Peek().Span
	first, ok := p.parseAssign()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Comma) {
		return first, true
	}
	items := []ast.ExprID{first}
	for p.eat(token.Comma) {
		next, ok := p.parseAssign()
		if !ok {
			return ast.NoExprID, false
		}
		items = append(items, next)
	}
	return p.arenas.Exprs.NewSeq(start.Cover(p.lastSpan), items), true
}

func (p *Parser) parseAssign() (ast.ExprID, bool) {
	if p.isArrowAhead() {
		return p.parseArrow()
	}
	start := p.s.Peek().Span
	left, ok := p.parseConditional()
	if !ok {
		return ast.NoExprID, false
	}
	op := p.s.Peek()
	if !op.Kind.IsAssignOp() {
		return left, true
	}
	if !p.isAssignTarget(left, op.Kind == token.Assign) {
		p.errAt(diag.SynUnexpectedToken, p.arenas.Exprs.Get(left).Span, "invalid assignment target")
		return ast.NoExprID, false
	}
	p.advance()
	right, ok := p.parseAssign()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewAssign(start.Cover(p.lastSpan), op.Kind, left, right), true
}

// isAssignTarget: identifiers and property accesses; plain '=' also accepts patterns.
func (p *Parser) isAssignTarget(id ast.ExprID, plain bool) bool {
	e := p.arenas.Exprs.Get(p.arenas.Exprs.Unparen(id))
	switch e.Kind {
	case ast.ExprIdent, ast.ExprMember, ast.ExprIndex:
		return true
	case ast.ExprObject, ast.ExprArray:
		return plain && p.arenas.Exprs.Get(id).Kind != ast.ExprParen
	}
	return false
}

func (p *Parser) parseConditional() (ast.ExprID, bool) {
	start := p.s.Peek().Span
	cond, ok := p.parseBinary(0)
	if !ok {
		return ast.NoExprID, false
	}
	if !p.eat(token.Question) {
		return cond, true
	}
	then, ok := p.parseAssign()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional expression"); !ok {
		return ast.NoExprID, false
	}
	els, ok := p.parseAssign()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewCond(start.Cover(p.lastSpan), cond, then, els), true
}

// parseBinary: precedence climbing; minPrec исключающий.
func (p *Parser) parseBinary(minPrec int) (ast.ExprID, bool) {
	start := p.s.Peek().Span
	left, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		op := p.s.Peek().Kind
		prec := BinaryPrec(op)
		if prec <= minPrec {
			return left, true
		}
		p.advance()
		right, ok := p.parseBinary(prec)
		if !ok {
			return ast.NoExprID, false
		}
		left = p.arenas.Exprs.NewBinary(start.Cover(p.lastSpan), op, left, right)
	}
}

func (p *Parser) parseUnary() (ast.ExprID, bool) {
	tok := p.s.Peek()
	if isPrefixOp(tok.Kind) {
		p.advance()
		x, ok := p.parseUnary()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(tok.Span.Cover(p.lastSpan), tok.Kind, x, false), true
	}
	x, ok := p.parseCallOrMember(true)
	if !ok {
		return ast.NoExprID, false
	}
	if next := p.s.Peek(); (next.Kind == token.PlusPlus || next.Kind == token.MinusMinus) && !next.NewlineBefore {
		p.advance()
		return p.arenas.Exprs.NewUnary(tok.Span.Cover(p.lastSpan), next.Kind, x, true), true
	}
	return x, true
}

// parseCallOrMember разбирает цепочку .name, [key] и (args); allowCall=false для
// callee в `new` и выражения после `extends`.
func (p *Parser) parseCallOrMember(allowCall bool) (ast.ExprID, bool) {
	start := p.s.Peek().Span
	var (
		x  ast.ExprID
		ok bool
	)
	if p.at(token.KwNew) {
		x, ok = p.parseNew()
	} else {
		x, ok = p.parsePrimary()
	}
	if !ok {
		return ast.NoExprID, false
	}
	for {
		switch p.s.Peek().Kind {
		case token.Dot:
			p.advance()
			name := p.s.Peek()
			if !name.IsIdentName() {
				p.err(diag.SynExpectIdentifier, "expected property name after '.'")
				return ast.NoExprID, false
			}
			p.advance()
			x = p.arenas.Exprs.NewMember(start.Cover(name.Span), x, name.Text, name.Span)
		case token.LBracket:
			p.advance()
			key, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'"); !ok {
				return ast.NoExprID, false
			}
			x = p.arenas.Exprs.NewIndex(start.Cover(p.lastSpan), x, key)
		case token.LParen:
			if !allowCall {
				return x, true
			}
			args, ok := p.parseArgs()
			if !ok {
				return ast.NoExprID, false
			}
			x = p.arenas.Exprs.NewCall(start.Cover(p.lastSpan), x, args)
		default:
			return x, true
		}
	}
}

func (p *Parser) parseNew() (ast.ExprID, bool) {
	kw := p.advance()
	callee, ok := p.parseCallOrMember(false)
	if !ok {
		return ast.NoExprID, false
	}
	var args []ast.ExprID
	if p.at(token.LParen) {
		if args, ok = p.parseArgs(); !ok {
			return ast.NoExprID, false
		}
	}
	return p.arenas.Exprs.NewNew(kw.Span.Cover(p.lastSpan), callee, args), true
}

func (p *Parser) parseArgs() ([]ast.ExprID, bool) {
	p.advance() // (
	args := make([]ast.ExprID, 0)
	for !p.at(token.RParen) {
		arg, ok := p.parseSpreadOrAssign()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list"); !ok {
		return nil, false
	}
	return args, true
}

func (p *Parser) parseSpreadOrAssign() (ast.ExprID, bool) {
	if p.at(token.DotDotDot) {
		dots := p.advance()
		x, ok := p.parseAssign()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewSpread(dots.Span.Cover(p.lastSpan), x), true
	}
	return p.parseAssign()
}

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.s.Peek()
	x := p.arenas.Exprs
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return x.NewIdent(tok.Span, tok.Text), true
	case token.NumberLit:
		p.advance()
		return x.NewLiteral(tok.Span, ast.LitNumber, tok.Text), true
	case token.StringLit:
		p.advance()
		return x.NewLiteral(tok.Span, ast.LitString, tok.Text), true
	case token.KwTrue:
		p.advance()
		return x.NewLiteral(tok.Span, ast.LitTrue, tok.Text), true
	case token.KwFalse:
		p.advance()
		return x.NewLiteral(tok.Span, ast.LitFalse, tok.Text), true
	case token.KwNull:
		p.advance()
		return x.NewLiteral(tok.Span, ast.LitNull, tok.Text), true
	case token.KwThis:
		p.advance()
		return x.NewThis(tok.Span), true
	case token.KwSuper:
		p.advance()
		return x.NewSuper(tok.Span), true
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
			return ast.NoExprID, false
		}
		return x.NewParen(tok.Span.Cover(p.lastSpan), inner), true
	case token.LBracket:
		return p.parseArrayLit()
	case token.LBrace:
		return p.parseObjectLit()
	case token.KwFunction:
		fn, ok := p.parseFunction(false)
		if !ok {
			return ast.NoExprID, false
		}
		p.arenas.Funcs.Get(fn).Doc = docOf(tok)
		return x.NewFunc(tok.Span.Cover(p.lastSpan), fn), true
	case token.KwClass:
		cls, ok := p.parseClass(false)
		if !ok {
			return ast.NoExprID, false
		}
		return x.NewClass(tok.Span.Cover(p.lastSpan), cls), true
	}
	if tok.Kind == token.EOF {
		p.err(diag.SynExpectExpression, "expected expression, got end of input")
	} else {
		p.err(diag.SynExpectExpression, "expected expression, got \""+tok.Text+"\"")
	}
	return ast.NoExprID, false
}

// [a, , ...rest]
func (p *Parser) parseArrayLit() (ast.ExprID, bool) {
	open := p.advance()
	items := make([]ast.ExprID, 0)
	for !p.at(token.RBracket) {
		if p.at(token.Comma) {
			p.advance()
			items = append(items, ast.NoExprID) // дырка
			continue
		}
		item, ok := p.parseSpreadOrAssign()
		if !ok {
			return ast.NoExprID, false
		}
		items = append(items, item)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array literal"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArray(open.Span.Cover(p.lastSpan), items), true
}

// { key: v, short, [k]: v, m() {}, get g() {}, ...spread }
func (p *Parser) parseObjectLit() (ast.ExprID, bool) {
	open := p.advance()
	props := make([]ast.Prop, 0)
	for !p.at(token.RBrace) {
		prop, ok := p.parseProp()
		if !ok {
			return ast.NoExprID, false
		}
		props = append(props, prop)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close object literal"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewObject(open.Span.Cover(p.lastSpan), props), true
}

func (p *Parser) parseProp() (ast.Prop, bool) {
	start := p.s.Peek()
	prop := ast.Prop{KeyExpr: ast.NoExprID, Value: ast.NoExprID, Func: ast.NoFuncID}
	if p.eat(token.DotDotDot) {
		v, ok := p.parseAssign()
		if !ok {
			return ast.Prop{}, false
		}
		prop.Kind, prop.Value = ast.PropSpread, v
		prop.Span = start.Span.Cover(p.lastSpan)
		return prop, true
	}
	accessor := ast.PropMethod
	switch {
	case p.isModifier("get"):
		p.advance()
		accessor = ast.PropGet
	case p.isModifier("set"):
		p.advance()
		accessor = ast.PropSet
	}
	key := p.s.Peek()
	switch {
	case key.IsIdentName(), key.Kind == token.StringLit, key.Kind == token.NumberLit:
		p.advance()
		prop.Key = key.Text
	case key.Kind == token.LBracket:
		p.advance()
		k, ok := p.parseAssign()
		if !ok {
			return ast.Prop{}, false
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after computed key"); !ok {
			return ast.Prop{}, false
		}
		prop.Computed, prop.KeyExpr = true, k
	default:
		p.unexpected("property name")
		return ast.Prop{}, false
	}
	switch {
	case p.at(token.LParen):
		fn, ok := p.parseMethodFunc(start)
		if !ok {
			return ast.Prop{}, false
		}
		prop.Kind, prop.Func = accessor, fn
	case accessor != ast.PropMethod:
		p.err(diag.SynUnexpectedToken, "expected '(' after accessor name")
		return ast.Prop{}, false
	case p.eat(token.Colon):
		v, ok := p.parseAssign()
		if !ok {
			return ast.Prop{}, false
		}
		prop.Kind, prop.Value = ast.PropInit, v
	case key.Kind == token.Ident:
		prop.Kind = ast.PropShorthand
		prop.Value = p.arenas.Exprs.NewIdent(key.Span, key.Text)
		if p.at(token.Assign) {
			// `{a = 1}` в шаблоне деструктуризации
			p.advance()
			def, ok := p.parseAssign()
			if !ok {
				return ast.Prop{}, false
			}
			prop.Value = p.arenas.Exprs.NewAssign(key.Span.Cover(p.lastSpan), token.Assign, prop.Value, def)
		}
	default:
		p.unexpected("':' after property name")
		return ast.Prop{}, false
	}
	prop.Span = start.Span.Cover(p.lastSpan)
	return prop, true
}
