package typeexpr

import (
	"fmt"

	"fortio.org/safecast"

	"typedjs/internal/diag"
	"typedjs/internal/lexer"
	"typedjs/internal/source"
	"typedjs/internal/token"
)

type TagKind uint8

const (
	TagType TagKind = iota
	TagParam
	TagReturn
)

func (k TagKind) String() string {
	switch k {
	case TagType:
		return "@type"
	case TagParam:
		return "@param"
	case TagReturn:
		return "@return"
	}
	return "@?"
}

// Tag is one type-carrying JSDoc tag. TypeSpan covers the text between the braces.
type Tag struct {
	Kind     TagKind
	Span     source.Span
	TypeSpan source.Span
	Name     string // only for @param
	NameSpan source.Span
}

// Doc is the type-relevant content of one /** */ block.
type Doc struct {
	Type   *Tag
	Params []Tag
	Return *Tag
}

// Empty reports whether the block carries no type information.
func (d Doc) Empty() bool {
	return d.Type == nil && d.Return == nil && len(d.Params) == 0
}

// Param finds the @param tag for name.
func (d Doc) Param(name string) (Tag, bool) {
	for _, t := range d.Params {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

var tagNames = map[string]TagKind{
	"type":    TagType,
	"param":   TagParam,
	"return":  TagReturn,
	"returns": TagReturn,
}

// ExtractDoc scans a doc block for @type, @param and @return(s) tags.
// Tags without a braced type, and unrelated tags, are ignored.
func ExtractDoc(f *source.File, doc token.Trivia) Doc {
	var out Doc
	text := f.Content[doc.Span.Start:doc.Span.End]
	off := func(i int) uint32 {
		v, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("doc offset overflow: %w", err))
		}
		return doc.Span.Start + v
	}
	span := func(i, j int) source.Span {
		return source.Span{File: f.ID, Start: off(i), End: off(j)}
	}

	for i := 0; i < len(text); i++ {
		if text[i] != '@' {
			continue
		}
		j := i + 1
		for j < len(text) && isTagByte(text[j]) {
			j++
		}
		kind, ok := tagNames[string(text[i+1:j])]
		if !ok {
			i = j - 1
			continue
		}
		k := skipDocSpace(text, j)
		if k >= len(text) || text[k] != '{' {
			i = j - 1
			continue
		}
		end := matchBrace(text, k)
		if end < 0 {
			// незакрытая скобка: дальше искать нечего
			break
		}
		at := i
		tag := Tag{Kind: kind, TypeSpan: span(k+1, end), Span: span(at, end+1)}
		i = end
		if kind == TagParam {
			n := skipDocSpace(text, end+1)
			m := n
			for m < len(text) && isTagByte(text[m]) {
				m++
			}
			if m == n {
				continue
			}
			tag.Name = string(text[n:m])
			tag.NameSpan = span(n, m)
			tag.Span = span(at, m)
			i = m - 1
		}
		switch kind {
		case TagType:
			if out.Type == nil {
				t := tag
				out.Type = &t
			}
		case TagReturn:
			if out.Return == nil {
				t := tag
				out.Return = &t
			}
		case TagParam:
			out.Params = append(out.Params, tag)
		}
	}
	return out
}

func isTagByte(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func skipDocSpace(text []byte, i int) int {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return i
}

func matchBrace(text []byte, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// ParseTag lexes the braced text of tag and parses it with the legacy grammar.
// A '*' that opens a continuation line of the comment is layout, not a wildcard.
func ParseTag(f *source.File, tag Tag, r diag.Reporter) (Node, bool) {
	sp := tag.TypeSpan
	lx := lexer.New(f, lexer.Options{Reporter: r, Range: &sp})
	all := lx.All()
	toks := all[:0]
	for _, t := range all {
		if t.Kind == token.Star && t.NewlineBefore {
			continue
		}
		toks = append(toks, t)
	}
	if len(toks) == 1 {
		diag.ReportError(r, diag.SynTypeExpected, sp, fmt.Sprintf("empty type in %s tag", tag.Kind)).Emit()
		return nil, false
	}
	return ParseLegacy(lexer.StreamOf(toks), r)
}
