package lexer

import (
	"bytes"

	"typedjs/internal/diag"
	"typedjs/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ', '\t', '\r', '\v', '\f' коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - //... до \n -> TriviaLineComment
// - /** ... */ -> TriviaDocBlock (но не "/**/")
// - /* ... */ -> TriviaBlockComment (без вложенности, как в JS)
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	lx.newline = false
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if isSpaceByte(b) {
			for isSpaceByte(lx.cursor.Peek()) && !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.newline = true
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		}

		if b == '/' && lx.scanCommentIntoHold() {
			continue
		}

		break
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

// //... и /*...*/
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' || (b1 != '/' && b1 != '*') {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()

	if b1 == '/' {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.pushTrivia(token.TriviaLineComment, start)
		return true
	}

	kind := token.TriviaBlockComment
	if c0, c1, ok := lx.cursor.Peek2(); ok && c0 == '*' && c1 != '/' {
		kind = token.TriviaDocBlock
	}
	closed := false
	for !lx.cursor.EOF() {
		if c0, c1, ok := lx.cursor.Peek2(); ok && c0 == '*' && c1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			closed = true
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if !closed {
		lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
	}
	if bytes.IndexByte(lx.file.Content[sp.Start:sp.End], '\n') >= 0 {
		lx.newline = true
	}
	lx.pushTrivia(kind, start)
	return true
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\v' || b == '\f'
}
