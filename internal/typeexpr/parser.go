package typeexpr

import (
	"fmt"

	"typedjs/internal/diag"
	"typedjs/internal/lexer"
	"typedjs/internal/source"
	"typedjs/internal/token"
)

// MaxDepth bounds nesting of type expressions; deeper input is rejected with SynTypeTooDeep.
const MaxDepth = 256

type parser struct {
	s        *lexer.Stream
	reporter diag.Reporter
	depth    int
	lastSpan source.Span
	// tooDeep latches so a runaway nesting reports once.
	tooDeep bool
}

func newParser(s *lexer.Stream, r diag.Reporter) *parser {
	return &parser{s: s, reporter: r}
}

func (p *parser) peek() token.Token       { return p.s.Peek() }
func (p *parser) peekN(n int) token.Token { return p.s.PeekN(n) }

func (p *parser) at(k token.Kind) bool {
	return p.s.Peek().Kind == k
}

// advance: съедает следующий токен и обновляет lastSpan
func (p *parser) advance() token.Token {
	tok := p.s.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

func (p *parser) expectGt() bool {
	tok, ok := p.s.EatGt()
	if ok {
		p.lastSpan = tok.Span
		return true
	}
	p.err(diag.SynTypeExpectRAngle, "expected '>' to close type arguments")
	return false
}

// diagSpan: на EOF указываем точку сразу после последнего токена.
func (p *parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.ZeroideToEnd()
	}
	return tok.Span
}

func (p *parser) err(code diag.Code, msg string) {
	p.errAt(code, p.diagSpan(), msg)
}

func (p *parser) errAt(code diag.Code, sp source.Span, msg string) {
	if p.reporter != nil {
		diag.ReportError(p.reporter, code, sp, msg).Emit()
	}
}

func (p *parser) unexpected(what string) {
	tok := p.peek()
	if tok.Kind == token.EOF {
		p.err(diag.SynTypeExpected, fmt.Sprintf("expected %s, got end of input", what))
		return
	}
	p.err(diag.SynTypeExpected, fmt.Sprintf("expected %s, got %q", what, tok.Text))
}

// enter guards recursion; every successful enter must be paired with leave.
func (p *parser) enter() bool {
	if p.depth >= MaxDepth {
		if !p.tooDeep {
			p.tooDeep = true
			p.err(diag.SynTypeTooDeep, fmt.Sprintf("type expression nested deeper than %d levels", MaxDepth))
		}
		return false
	}
	p.depth++
	return true
}

func (p *parser) leave() { p.depth-- }

func (p *parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

// parseDottedName reads `a.b.c`; segments after a dot may be reserved words.
// The dot before '<' (legacy `Type.<A>`) is left unconsumed.
func (p *parser) parseDottedName() (string, bool) {
	first := p.peek()
	if !first.IsIdentName() {
		p.unexpected("type name")
		return "", false
	}
	p.advance()
	text := first.Text
	for p.at(token.Dot) && p.peekN(1).IsIdentName() {
		p.advance()
		text += "." + p.advance().Text
	}
	return text, true
}
