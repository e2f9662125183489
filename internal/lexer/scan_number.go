package lexer

import (
	"typedjs/internal/diag"
	"typedjs/internal/token"
)

// Поддержка: 0, 123, 0b..., 0o..., 0x..., 1.5, .5, 1e-3, 1_000.
// Kind всегда NumberLit; Text: исходный срез.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	bad := func(msg string) token.Token {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, msg)
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	if lx.cursor.Peek() == '0' {
		if _, b1, ok := lx.cursor.Peek2(); ok {
			var digit func(byte) bool
			switch b1 {
			case 'b', 'B':
				digit = func(b byte) bool { return b == '0' || b == '1' }
			case 'o', 'O':
				digit = func(b byte) bool { return b >= '0' && b <= '7' }
			case 'x', 'X':
				digit = isHex
			}
			if digit != nil {
				lx.cursor.Bump()
				lx.cursor.Bump()
				n := 0
				for b := lx.cursor.Peek(); digit(b) || b == '_'; b = lx.cursor.Peek() {
					lx.cursor.Bump()
					n++
				}
				if n == 0 {
					return bad("missing digits after base prefix")
				}
				return lx.emitNumber(start)
			}
		}
	}

	lx.eatDecimals()
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.eatDecimals()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			return bad("expected digit after exponent")
		}
		lx.eatDecimals()
	}
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) && !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
		return bad("identifier starts immediately after numeric literal")
	}
	return lx.emitNumber(start)
}

func (lx *Lexer) eatDecimals() {
	for b := lx.cursor.Peek(); (isDec(b) || b == '_') && !lx.cursor.EOF(); b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) emitNumber(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
