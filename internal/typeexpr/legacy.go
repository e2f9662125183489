package typeexpr

import (
	"typedjs/internal/diag"
	"typedjs/internal/lexer"
	"typedjs/internal/token"
)

// ParseLegacy parses one complete JSDoc type expression; the stream must hold
// nothing else. Malformed input is reported and ok is false.
func ParseLegacy(s *lexer.Stream, r diag.Reporter) (Node, bool) {
	p := newParser(s, r)
	n, ok := p.parseLegacyTop()
	if ok && !p.at(token.EOF) {
		p.err(diag.SynTypeTrailingInput, "unexpected input after type expression")
		return nil, false
	}
	return n, ok
}

// parseLegacyTop: [ '...' ] union [ '=' ]
func (p *parser) parseLegacyTop() (Node, bool) {
	start := p.peek().Span
	if p.eat(token.DotDotDot) {
		if legacyTypeEnds(p.peek().Kind) {
			return NewRest(p.spanFrom(start), NewEmpty(p.lastSpan.ZeroideToEnd())), true
		}
		inner, ok := p.parseLegacyUnion()
		if !ok {
			return nil, false
		}
		return NewRest(p.spanFrom(start), inner), true
	}
	t, ok := p.parseLegacyUnion()
	if !ok {
		return nil, false
	}
	if p.eat(token.Assign) {
		return NewOptional(p.spanFrom(start), t), true
	}
	return t, true
}

func (p *parser) parseLegacyUnion() (Node, bool) {
	start := p.peek().Span
	first, ok := p.parseLegacyType()
	if !ok {
		return nil, false
	}
	if !p.at(token.Pipe) {
		return first, true
	}
	members := []Node{first}
	for p.eat(token.Pipe) {
		m, ok := p.parseLegacyType()
		if !ok {
			return nil, false
		}
		members = append(members, m)
	}
	return NewUnion(p.spanFrom(start), members), true
}

// legacyTypeEnds reports whether k may follow a bare '?' or '...'.
func legacyTypeEnds(k token.Kind) bool {
	switch k {
	case token.EOF, token.Comma, token.RParen, token.RBrace, token.RBracket,
		token.Gt, token.Shr, token.UShr, token.GtEq, token.Pipe, token.Assign:
		return true
	}
	return false
}

func (p *parser) parseLegacyType() (Node, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	tok := p.peek()
	switch tok.Kind {
	case token.Star:
		p.advance()
		return NewWildcard(tok.Span), true

	case token.Question:
		p.advance()
		if legacyTypeEnds(p.peek().Kind) {
			return NewNullable(tok.Span, nil), true
		}
		inner, ok := p.parseLegacyType()
		if !ok {
			return nil, false
		}
		return NewNullable(p.spanFrom(tok.Span), inner), true

	case token.Bang:
		p.advance()
		inner, ok := p.parseLegacyType()
		if !ok {
			return nil, false
		}
		return NewNonNull(p.spanFrom(tok.Span), inner), true

	case token.LBrace:
		return p.parseLegacyRecord()

	case token.LParen:
		p.advance()
		u, ok := p.parseLegacyUnion()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynTypeExpectRParen, "expected ')' to close union type"); !ok {
			return nil, false
		}
		return u, true

	case token.KwFunction:
		return p.parseLegacyFunction()

	case token.KwVoid:
		p.advance()
		return NewVoidMarker(tok.Span), true
	}

	if tok.IsIdentName() {
		return p.parseLegacyName()
	}
	p.unexpected("type")
	return nil, false
}

// Name | Name '.<' args '>' | Name '<' args '>'
func (p *parser) parseLegacyName() (Node, bool) {
	start := p.peek().Span
	text, ok := p.parseDottedName()
	if !ok {
		return nil, false
	}
	switch {
	case p.at(token.Dot) && p.peekN(1).Kind == token.Lt:
		p.advance()
		p.advance()
	case p.at(token.Lt):
		p.advance()
	default:
		return NewName(p.spanFrom(start), text, nil), true
	}
	var args []Node
	for {
		arg, ok := p.parseLegacyUnion()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.expectGt() {
		return nil, false
	}
	return NewName(p.spanFrom(start), text, args), true
}

func (p *parser) parseLegacyRecord() (Node, bool) {
	open := p.advance()
	var fields []RecordField
	for !p.at(token.RBrace) {
		key := p.peek()
		if !key.IsIdentName() && key.Kind != token.StringLit && key.Kind != token.NumberLit {
			p.unexpected("record field name")
			return nil, false
		}
		p.advance()
		field := RecordField{Key: key.Text, Span: key.Span}
		if p.eat(token.Colon) {
			t, ok := p.parseLegacyUnion()
			if !ok {
				return nil, false
			}
			field.Type = t
			field.Span = key.Span.Cover(t.Span())
		}
		fields = append(fields, field)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynTypeExpectRBrace, "expected '}' to close record type"); !ok {
		return nil, false
	}
	return NewRecord(p.spanFrom(open.Span), fields), true
}

// function '(' [this:T ,] [new:T ,] params ')' [':' T]
func (p *parser) parseLegacyFunction() (Node, bool) {
	fnTok := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'function' in type"); !ok {
		return nil, false
	}
	var (
		params         []Node
		thisT, newT    Node
		variadic       bool
		sawOrdinaryArg bool
	)
	for !p.at(token.RParen) {
		if variadic {
			p.err(diag.SynTypeRestNotLast, "rest parameter must be last")
			return nil, false
		}
		switch tok := p.peek(); {
		case !sawOrdinaryArg && (tok.Kind == token.KwThis || tok.Kind == token.KwNew) && p.peekN(1).Kind == token.Colon:
			p.advance()
			p.advance()
			t, ok := p.parseLegacyUnion()
			if !ok {
				return nil, false
			}
			if tok.Kind == token.KwThis {
				thisT = t
			} else {
				newT = t
			}
		case tok.Kind == token.DotDotDot:
			p.advance()
			variadic = true
			sawOrdinaryArg = true
			if p.at(token.RParen) || p.at(token.Comma) {
				params = append(params, NewEmpty(tok.Span.ZeroideToEnd()))
				break
			}
			t, ok := p.parseLegacyUnion()
			if !ok {
				return nil, false
			}
			params = append(params, t)
		default:
			sawOrdinaryArg = true
			t, ok := p.parseLegacyUnion()
			if !ok {
				return nil, false
			}
			if p.eat(token.Assign) {
				t = NewOptional(t.Span().Cover(p.lastSpan), t)
			}
			params = append(params, t)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynTypeExpectRParen, "expected ')' to close parameter list"); !ok {
		return nil, false
	}
	var ret Node = NewEmpty(p.lastSpan.ZeroideToEnd())
	if p.eat(token.Colon) {
		t, ok := p.parseLegacyType()
		if !ok {
			return nil, false
		}
		ret = t
	}
	return NewFunction(p.spanFrom(fnTok.Span), params, thisT, newT, variadic, ret), true
}
