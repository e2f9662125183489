package typeexpr

import (
	"fmt"

	"typedjs/internal/diag"
	"typedjs/internal/lexer"
	"typedjs/internal/source"
)

// Grammar selects one of the two annotation syntaxes.
type Grammar uint8

const (
	GrammarLegacy Grammar = iota
	GrammarInline
)

func (g Grammar) String() string {
	if g == GrammarInline {
		return "inline"
	}
	return "legacy"
}

// ParseGrammar maps a CLI spelling to a Grammar.
func ParseGrammar(s string) (Grammar, error) {
	switch s {
	case "legacy", "jsdoc":
		return GrammarLegacy, nil
	case "inline":
		return GrammarInline, nil
	}
	return 0, fmt.Errorf("unknown grammar %q (want legacy or inline)", s)
}

// ParseFile parses the whole of file id as a single type expression.
func ParseFile(fs *source.FileSet, id source.FileID, g Grammar, r diag.Reporter) (Node, bool) {
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: r})
	s := lexer.NewStream(lx)
	if g == GrammarInline {
		return ParseInlineAll(s, r)
	}
	return ParseLegacy(s, r)
}
