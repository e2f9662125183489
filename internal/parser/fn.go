package parser

import (
	"typedjs/internal/ast"
	"typedjs/internal/diag"
	"typedjs/internal/token"
	"typedjs/internal/typeexpr"
)

// function [name] (params) [: T] { body }
func (p *Parser) parseFunction(declaration bool) (ast.FuncID, bool) {
	kw := p.advance()
	fn := ast.Func{Body: ast.NoStmtID, ExprBody: ast.NoExprID}
	if p.at(token.Ident) {
		name := p.advance()
		fn.Name, fn.NameSpan = name.Text, name.Span
	} else if declaration {
		p.err(diag.SynExpectIdentifier, "expected function name")
		return ast.NoFuncID, false
	}
	if !p.parseSignature(&fn) {
		return ast.NoFuncID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoFuncID, false
	}
	fn.Body = body
	fn.Span = kw.Span.Cover(p.lastSpan)
	return p.arenas.Funcs.New(fn), true
}

// parseSignature: (params) [: ReturnType]
func (p *Parser) parseSignature(fn *ast.Func) bool {
	params, ok := p.parseParams()
	if !ok {
		return false
	}
	fn.Params = params
	if p.eat(token.Colon) {
		t, ok := p.parseTypeAnnotation()
		if !ok {
			return false
		}
		fn.Return = t
	}
	return true
}

func (p *Parser) parseParams() ([]ast.Param, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' to start parameter list"); !ok {
		return nil, false
	}
	params := make([]ast.Param, 0, 2)
	for !p.at(token.RParen) {
		param, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if param.Rest && !p.at(token.RParen) {
			p.err(diag.SynUnexpectedToken, "rest parameter must be last")
			return nil, false
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list"); !ok {
		return nil, false
	}
	return params, true
}

// [...] name [?] [: T] [= default]
func (p *Parser) parseParam() (ast.Param, bool) {
	start := p.s.Peek().Span
	param := ast.Param{Pattern: ast.NoExprID, Default: ast.NoExprID}
	param.Rest = p.eat(token.DotDotDot)
	if p.atOr(token.LBrace, token.LBracket) {
		pat, ok := p.parseBindingTarget()
		if !ok {
			return ast.Param{}, false
		}
		param.Pattern = pat
	} else {
		name, ok := p.parseIdent()
		if !ok {
			return ast.Param{}, false
		}
		param.Name = name.Text
	}
	if !param.Rest && p.eat(token.Question) {
		param.Optional = true
	}
	if p.at(token.Colon) {
		colon := p.advance()
		t, ok := p.parseTypeAnnotation()
		if !ok {
			return ast.Param{}, false
		}
		if param.Pattern.IsValid() {
			p.errAt(diag.SynDestructuringTyped, colon.Span.Cover(t.Span()),
				"type annotations on destructuring patterns are not supported")
		} else {
			param.Type = t
		}
	}
	if p.eat(token.Assign) {
		def, ok := p.parseAssign()
		if !ok {
			return ast.Param{}, false
		}
		param.Default = def
	}
	param.Span = start.Cover(p.lastSpan)
	return param, true
}

// isArrowAhead looks past `x` or a parenthesized group for `=>`, allowing
// a return type annotation in between: `(a: T): R => ...`.
func (p *Parser) isArrowAhead() bool {
	tok := p.s.Peek()
	if tok.Kind == token.Ident {
		next := p.s.PeekN(1)
		return next.Kind == token.FatArrow && !next.NewlineBefore
	}
	if tok.Kind != token.LParen {
		return false
	}
	end := p.s.MatchClose(p.s.Pos())
	if end < 0 {
		return false
	}
	next := p.s.At(end + 1)
	switch next.Kind {
	case token.FatArrow:
		return !next.NewlineBefore
	case token.Colon:
		fork := p.s.Fork()
		for range end - p.s.Pos() + 2 {
			fork.Next()
		}
		if _, ok := typeexpr.ParseInline(fork, diag.NopReporter{}); !ok {
			return false
		}
		arrow := fork.Peek()
		return arrow.Kind == token.FatArrow && !arrow.NewlineBefore
	}
	return false
}

func (p *Parser) parseArrow() (ast.ExprID, bool) {
	start := p.s.Peek()
	fn := ast.Func{Arrow: true, Body: ast.NoStmtID, ExprBody: ast.NoExprID}
	if p.at(token.Ident) {
		name := p.advance()
		fn.Params = []ast.Param{{Name: name.Text, Pattern: ast.NoExprID, Default: ast.NoExprID, Span: name.Span}}
	} else if !p.parseSignature(&fn) {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>'"); !ok {
		return ast.NoExprID, false
	}
	if p.at(token.LBrace) {
		body, ok := p.parseBlock()
		if !ok {
			return ast.NoExprID, false
		}
		fn.Body = body
	} else {
		e, ok := p.parseAssign()
		if !ok {
			return ast.NoExprID, false
		}
		fn.ExprBody = e
	}
	fn.Span = start.Span.Cover(p.lastSpan)
	id := p.arenas.Funcs.New(fn)
	return p.arenas.Exprs.NewFunc(fn.Span, id), true
}

// parseMethodFunc parses `(params) [: T] { body }` of a method, getter or setter.
func (p *Parser) parseMethodFunc(startTok token.Token) (ast.FuncID, bool) {
	fn := ast.Func{Body: ast.NoStmtID, ExprBody: ast.NoExprID}
	if !p.parseSignature(&fn) {
		return ast.NoFuncID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoFuncID, false
	}
	fn.Body = body
	fn.Doc = docOf(startTok)
	fn.Span = startTok.Span.Cover(p.lastSpan)
	return p.arenas.Funcs.New(fn), true
}
