package token

import (
	"typedjs/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
	// NewlineBefore is set when a line break separates this token from the previous one.
	NewlineBefore bool
}

// IsLiteral reports whether the token is a numeric, string, boolean or null literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwVar && t.Kind <= KwInstanceof
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind < kindCount
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsIdentName reports whether the token may serve as a property name
// (identifiers and reserved words alike).
func (t Token) IsIdentName() bool { return t.IsIdent() || t.IsKeyword() }

// DocBlock returns the closest JSDoc block among the leading trivia.
func (t Token) DocBlock() (Trivia, bool) {
	for i := len(t.Leading) - 1; i >= 0; i-- {
		if t.Leading[i].Kind == TriviaDocBlock {
			return t.Leading[i], true
		}
	}
	return Trivia{}, false
}
