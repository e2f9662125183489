package typeexpr

import (
	"typedjs/internal/diag"
	"typedjs/internal/lexer"
	"typedjs/internal/token"
)

// ParseInline parses one inline annotation type starting at the stream head and
// stops at the first token that cannot continue it. The caller has already
// consumed the ':'.
func ParseInline(s *lexer.Stream, r diag.Reporter) (Node, bool) {
	p := newParser(s, r)
	return p.parseInlineUnion()
}

// ParseInlineAll parses a stream that must contain exactly one inline type.
func ParseInlineAll(s *lexer.Stream, r diag.Reporter) (Node, bool) {
	p := newParser(s, r)
	n, ok := p.parseInlineUnion()
	if ok && !p.at(token.EOF) {
		p.err(diag.SynTypeTrailingInput, "unexpected input after type expression")
		return nil, false
	}
	return n, ok
}

func (p *parser) parseInlineUnion() (Node, bool) {
	start := p.peek().Span
	p.eat(token.Pipe) // допускаем ведущий '|'
	first, ok := p.parseInlinePostfix()
	if !ok {
		return nil, false
	}
	if !p.at(token.Pipe) {
		return first, true
	}
	members := []Node{first}
	for p.eat(token.Pipe) {
		m, ok := p.parseInlinePostfix()
		if !ok {
			return nil, false
		}
		members = append(members, m)
	}
	return NewUnion(p.spanFrom(start), members), true
}

// T[] [] ...
func (p *parser) parseInlinePostfix() (Node, bool) {
	start := p.peek().Span
	t, ok := p.parseInlinePrimary()
	if !ok {
		return nil, false
	}
	for p.at(token.LBracket) && !p.peek().NewlineBefore && p.peekN(1).Kind == token.RBracket {
		p.advance()
		p.advance()
		t = NewName(p.spanFrom(start), "Array", []Node{t})
	}
	return t, true
}

func (p *parser) parseInlinePrimary() (Node, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		if tok.Text == "any" && p.peekN(1).Kind != token.Dot {
			p.advance()
			return NewWildcard(tok.Span), true
		}
		return p.parseInlineName()
	case token.KwVoid:
		p.advance()
		return NewVoidMarker(tok.Span), true
	case token.KwNull:
		p.advance()
		return NewName(tok.Span, "null", nil), true
	case token.LBrace:
		return p.parseInlineRecord()
	case token.LParen:
		if end := p.s.MatchClose(p.s.Pos()); end >= 0 && p.s.At(end+1).Kind == token.FatArrow {
			return p.parseInlineFunction()
		}
		p.advance()
		t, ok := p.parseInlineUnion()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynTypeExpectRParen, "expected ')'"); !ok {
			return nil, false
		}
		return t, true
	}
	p.unexpected("type")
	return nil, false
}

// a.b.C [ '<' args '>' ]
func (p *parser) parseInlineName() (Node, bool) {
	start := p.peek().Span
	text, ok := p.parseDottedName()
	if !ok {
		return nil, false
	}
	if !p.at(token.Lt) {
		return NewName(p.spanFrom(start), text, nil), true
	}
	p.advance()
	var args []Node
	for {
		arg, ok := p.parseInlineUnion()
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

// { key: T, 'key': T; ... }
func (p *parser) parseInlineRecord() (Node, bool) {
	open := p.advance()
	var fields []RecordField
	for !p.at(token.RBrace) {
		key := p.peek()
		if !key.IsIdentName() && key.Kind != token.StringLit && key.Kind != token.NumberLit {
			p.unexpected("record field name")
			return nil, false
		}
		p.advance()
		if _, ok := p.expect(token.Colon, diag.SynTypeExpectColon, "expected ':' after record field name"); !ok {
			return nil, false
		}
		t, ok := p.parseInlineUnion()
		if !ok {
			return nil, false
		}
		fields = append(fields, RecordField{Key: key.Text, Type: t, Span: key.Span.Cover(t.Span())})
		if !p.eat(token.Comma) && !p.eat(token.Semicolon) {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynTypeExpectRBrace, "expected '}' to close record type"); !ok {
		return nil, false
	}
	return NewRecord(p.spanFrom(open.Span), fields), true
}

// '(' [this: T,] [new: T,] (name[?][: T] | ...name[: T]),* ')' '=>' T
func (p *parser) parseInlineFunction() (Node, bool) {
	open := p.advance()
	var (
		params      []Node
		thisT, newT Node
		variadic    bool
		sawParam    bool
	)
	for !p.at(token.RParen) {
		if variadic {
			p.err(diag.SynTypeRestNotLast, "rest parameter must be last")
			return nil, false
		}
		tok := p.peek()
		switch {
		case !sawParam && (tok.Kind == token.KwThis || tok.Kind == token.KwNew) && p.peekN(1).Kind == token.Colon:
			p.advance()
			p.advance()
			t, ok := p.parseInlineUnion()
			if !ok {
				return nil, false
			}
			if tok.Kind == token.KwThis {
				thisT = t
			} else {
				newT = t
			}
		default:
			sawParam = true
			rest := p.eat(token.DotDotDot)
			name := p.peek()
			if !name.IsIdent() {
				p.err(diag.SynExpectIdentifier, "expected parameter name")
				return nil, false
			}
			p.advance()
			optional := !rest && p.eat(token.Question)
			var t Node = NewEmpty(name.Span.ZeroideToEnd())
			if p.eat(token.Colon) {
				var ok bool
				if t, ok = p.parseInlineUnion(); !ok {
					return nil, false
				}
			}
			if optional {
				t = NewOptional(name.Span.Cover(p.lastSpan), t)
			}
			variadic = rest
			params = append(params, t)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynTypeExpectRParen, "expected ')' to close parameter list"); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' in function type"); !ok {
		return nil, false
	}
	ret, ok := p.parseInlineUnion()
	if !ok {
		return nil, false
	}
	return NewFunction(p.spanFrom(open.Span), params, thisT, newT, variadic, ret), true
}
