package parser

import (
	"typedjs/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precLogicalOr      = 1  // || ??
	precLogicalAnd     = 2  // &&
	precBitwiseOr      = 3  // |
	precBitwiseXor     = 4  // ^
	precBitwiseAnd     = 5  // &
	precEquality       = 6  // == != === !==
	precComparison     = 7  // < <= > >= instanceof in
	precShift          = 8  // << >> >>>
	precAdditive       = 9  // + -
	precMultiplicative = 10 // * / %
)

// BinaryPrec возвращает приоритет бинарного оператора или -1.
// Все бинарные операторы левоассоциативны.
func BinaryPrec(kind token.Kind) int {
	switch kind {
	case token.OrOr, token.QuestionQuestion:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd
	case token.Pipe:
		return precBitwiseOr
	case token.Caret:
		return precBitwiseXor
	case token.Amp:
		return precBitwiseAnd
	case token.EqEq, token.BangEq, token.EqEqEq, token.BangEqEq:
		return precEquality
	case token.Lt, token.LtEq, token.Gt, token.GtEq, token.KwInstanceof, token.KwIn:
		return precComparison
	case token.Shl, token.Shr, token.UShr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	default:
		return -1
	}
}

func isPrefixOp(kind token.Kind) bool {
	switch kind {
	case token.Bang, token.Tilde, token.Plus, token.Minus, token.PlusPlus, token.MinusMinus,
		token.KwTypeof, token.KwVoid, token.KwDelete:
		return true
	}
	return false
}
