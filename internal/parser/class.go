package parser

import (
	"fmt"

	"typedjs/internal/ast"
	"typedjs/internal/diag"
	"typedjs/internal/source"
	"typedjs/internal/token"
)

// class [Name] [extends Expr] { members }
func (p *Parser) parseClass(declaration bool) (ast.ClassID, bool) {
	kw := p.advance()
	cls := ast.Class{Extends: ast.NoExprID}
	if p.at(token.Ident) {
		name := p.advance()
		cls.Name, cls.NameSpan = name.Text, name.Span
	} else if declaration {
		p.err(diag.SynExpectIdentifier, "expected class name")
		return ast.NoClassID, false
	}
	if p.eat(token.KwExtends) {
		sup, ok := p.parseCallOrMember(false)
		if !ok {
			return ast.NoClassID, false
		}
		cls.Extends = sup
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to start class body"); !ok {
		return ast.NoClassID, false
	}
	var ctorSpan source.Span
	for !p.atOr(token.RBrace, token.EOF) {
		if p.eat(token.Semicolon) {
			continue
		}
		mid, ok := p.parseMember()
		if !ok {
			p.resyncMember()
			continue
		}
		m := p.arenas.Classes.Member(mid)
		if m.IsConstructor() {
			if ctorSpan.End != 0 {
				diag.ReportError(p.countingReporter(), diag.SynDuplicateCtor, m.NameSpan, "a class may only have one constructor").
					WithNote(ctorSpan, "previous constructor is here").
					Emit()
				continue
			}
			ctorSpan = m.NameSpan
		}
		cls.Members = append(cls.Members, mid)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close class body"); !ok {
		return ast.NoClassID, false
	}
	cls.Span = kw.Span.Cover(p.lastSpan)
	return p.arenas.Classes.New(cls), true
}

// parseMember: [static] [get|set] key ( method | [: T] [= init] ; )
func (p *Parser) parseMember() (ast.MemberID, bool) {
	start := p.s.Peek()
	m := ast.Member{Key: ast.NoExprID, Init: ast.NoExprID, Func: ast.NoFuncID, Doc: docOf(start)}
	if p.isModifier("static") {
		p.advance()
		m.Static = true
	}
	kind := ast.MemberMethod
	switch {
	case p.isModifier("get"):
		p.advance()
		kind = ast.MemberGetter
	case p.isModifier("set"):
		p.advance()
		kind = ast.MemberSetter
	}
	if !p.parseMemberKey(&m) {
		return ast.NoMemberID, false
	}
	if p.at(token.LParen) {
		m.Kind = kind
		fn, ok := p.parseMethodFunc(start)
		if !ok {
			return ast.NoMemberID, false
		}
		m.Func = fn
	} else {
		if kind != ast.MemberMethod {
			p.err(diag.SynUnexpectedToken, fmt.Sprintf("expected '(' after %s accessor name", kind))
			return ast.NoMemberID, false
		}
		m.Kind = ast.MemberField
		if p.eat(token.Colon) {
			t, ok := p.parseTypeAnnotation()
			if !ok {
				return ast.NoMemberID, false
			}
			m.Type = t
		}
		if p.eat(token.Assign) {
			init, ok := p.parseAssign()
			if !ok {
				return ast.NoMemberID, false
			}
			m.Init = init
		}
		if !p.consumeSemicolon() {
			return ast.NoMemberID, false
		}
	}
	m.Span = start.Span.Cover(p.lastSpan)
	return p.arenas.Classes.NewMember(m), true
}

// isModifier reports whether the contextual word at the head modifies the
// member that follows rather than naming it (`static;` and `get: T` are fields).
func (p *Parser) isModifier(word string) bool {
	tok := p.s.Peek()
	if tok.Kind != token.Ident || tok.Text != word {
		return false
	}
	next := p.s.PeekN(1)
	if next.NewlineBefore {
		return false
	}
	return next.IsIdentName() || next.Kind == token.StringLit || next.Kind == token.NumberLit || next.Kind == token.LBracket
}

func (p *Parser) parseMemberKey(m *ast.Member) bool {
	tok := p.s.Peek()
	switch {
	case tok.IsIdentName(), tok.Kind == token.StringLit, tok.Kind == token.NumberLit:
		p.advance()
		m.Name, m.NameSpan = tok.Text, tok.Span
		return true
	case tok.Kind == token.LBracket:
		p.advance()
		key, ok := p.parseAssign()
		if !ok {
			return false
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after computed member name"); !ok {
			return false
		}
		m.Computed, m.Key = true, key
		m.NameSpan = tok.Span.Cover(p.lastSpan)
		return true
	}
	p.unexpected("class member name")
	return false
}

// resyncMember skips to the end of the broken member without leaving the class body.
func (p *Parser) resyncMember() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.s.Peek().Kind {
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			if depth > 0 {
				depth--
			}
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}
