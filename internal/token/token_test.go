package token_test

import (
	"testing"

	"typedjs/internal/source"
	"typedjs/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.NumberLit, token.StringLit, token.KwTrue, token.KwFalse, token.KwNull}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwLet, token.Plus, token.LParen}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestKindClasses(t *testing.T) {
	if !tok(token.KwClass).IsKeyword() || tok(token.Ident).IsKeyword() {
		t.Fatal("keyword classification broken")
	}
	if !tok(token.KwInstanceof).IsKeyword() || tok(token.Plus).IsKeyword() {
		t.Fatal("keyword range boundaries broken")
	}
	for _, k := range []token.Kind{token.Plus, token.UShr, token.FatArrow, token.RBracket} {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	if !tok(token.KwNew).IsIdentName() || tok(token.Dot).IsIdentName() {
		t.Fatal("IsIdentName broken")
	}
	if token.PlusAssign.IsAssignOp() != true || token.EqEq.IsAssignOp() {
		t.Fatal("IsAssignOp broken")
	}
}

func TestKindString(t *testing.T) {
	if got := token.UShr.String(); got != ">>>" {
		t.Fatalf("got %q", got)
	}
	if got := token.KwExtends.String(); got != "extends" {
		t.Fatalf("got %q", got)
	}
}

func TestDocBlockPicksClosest(t *testing.T) {
	tk := token.Token{Kind: token.KwVar, Leading: []token.Trivia{
		{Kind: token.TriviaDocBlock, Text: "/** @type {a} */"},
		{Kind: token.TriviaNewline},
		{Kind: token.TriviaDocBlock, Text: "/** @type {b} */"},
		{Kind: token.TriviaSpace},
	}}
	doc, ok := tk.DocBlock()
	if !ok || doc.Text != "/** @type {b} */" {
		t.Fatalf("unexpected doc block %+v", doc)
	}
}

func TestLookupKeyword(t *testing.T) {
	if k, ok := token.LookupKeyword("class"); !ok || k != token.KwClass {
		t.Fatal("class must be a keyword")
	}
	for _, s := range []string{"static", "constructor", "Class", "undefined", "any"} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Fatalf("%q must not be a keyword", s)
		}
	}
}
