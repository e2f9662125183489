package lexer

import (
	"typedjs/internal/diag"
	"typedjs/internal/token"
)

type opSpelling struct {
	text string
	kind token.Kind
}

// Жадность: длинные операторы проверяются раньше коротких.
var multiByteOps = []opSpelling{
	{">>>", token.UShr},
	{"===", token.EqEqEq},
	{"!==", token.BangEqEq},
	{"...", token.DotDotDot},
	{"=>", token.FatArrow},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"??", token.QuestionQuestion},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
}

var singleByteOps = [256]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'~': token.Tilde,
	'?': token.Question,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: k,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		}
	}

	for _, op := range multiByteOps {
		if lx.tryText(op.text) {
			return emit(op.kind)
		}
	}

	ch := lx.cursor.Bump()
	if k := singleByteOps[ch]; k != token.Invalid {
		return emit(k)
	}
	// неизвестный символ: съедаем всю руну, чтобы не резать UTF-8
	if ch >= utf8RuneSelf {
		lx.cursor.Reset(start)
		lx.bumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
