package parser

import (
	"fmt"

	"typedjs/internal/diag"
	"typedjs/internal/fix"
	"typedjs/internal/source"
	"typedjs/internal/token"
	"typedjs/internal/typeexpr"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.s.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// getDiagnosticSpan: на EOF указываем позицию сразу после lastSpan
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.s.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.ZeroideToEnd()
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.s.Peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) bool {
	return p.report(code, diag.SevError, sp, msg)
}

// errFix reports an error at the current position with one fix suggestion.
func (p *Parser) errFix(code diag.Code, msg string, f diag.Fix) bool {
	return p.reportWith(code, diag.SevError, p.getDiagnosticSpan(), msg, []diag.Fix{f})
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	return p.reportWith(code, sev, sp, msg, nil)
}

func (p *Parser) reportWith(code diag.Code, sev diag.Severity, sp source.Span, msg string, fixes []diag.Fix) bool {
	if p.opts.Reporter != nil {
		if sev == diag.SevError {
			p.opts.CurrentErrors++
		}
		if !p.opts.Enough() {
			p.opts.Reporter.Report(code, sev, sp, msg, nil, fixes)
			return true
		}
		return false // достигли максимального количества ошибок
	}
	return false
}

func (p *Parser) unexpected(what string) {
	tok := p.s.Peek()
	if tok.Kind == token.EOF {
		p.err(diag.SynUnexpectedToken, fmt.Sprintf("expected %s, got end of input", what))
		return
	}
	p.err(diag.SynUnexpectedToken, fmt.Sprintf("expected %s, got %q", what, tok.Text))
}

// consumeSemicolon implements automatic semicolon insertion: ';' is optional
// before '}', at EOF and after a line break.
func (p *Parser) consumeSemicolon() bool {
	if p.eat(token.Semicolon) {
		return true
	}
	tok := p.s.Peek()
	if tok.Kind == token.RBrace || tok.Kind == token.EOF || tok.NewlineBefore {
		return true
	}
	at := source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	p.errFix(diag.SynExpectSemicolon, fmt.Sprintf("expected ';', got %q", tok.Text), fix.InsertText("insert ';'", at, ";"))
	return false
}

// parseIdent ожидает Ident; на ошибке: SynExpectIdentifier.
func (p *Parser) parseIdent() (token.Token, bool) {
	if p.at(token.Ident) {
		return p.advance(), true
	}
	p.err(diag.SynExpectIdentifier, fmt.Sprintf("expected identifier, got %q", p.s.Peek().Text))
	return token.Token{}, false
}

// parseTypeAnnotation parses the inline type after an already consumed ':'.
func (p *Parser) parseTypeAnnotation() (typeexpr.Node, bool) {
	n, ok := typeexpr.ParseInline(p.s, p.countingReporter())
	if !ok {
		return nil, false
	}
	p.lastSpan = n.Span()
	return n, true
}

// countingReporter counts errors reported outside p.report against the error limit.
func (p *Parser) countingReporter() diag.Reporter {
	return reporterFunc(func(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
		if p.opts.Reporter == nil {
			return
		}
		if sev == diag.SevError {
			p.opts.CurrentErrors++
		}
		if !p.opts.Enough() {
			p.opts.Reporter.Report(code, sev, sp, msg, notes, fixes)
		}
	})
}

type reporterFunc func(diag.Code, diag.Severity, source.Span, string, []diag.Note, []diag.Fix)

func (f reporterFunc) Report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	f(code, sev, sp, msg, notes, fixes)
}

// docOf returns the JSDoc block in front of tok, if any.
func docOf(tok token.Token) *token.Trivia {
	if doc, ok := tok.DocBlock(); ok {
		return &doc
	}
	return nil
}
