package typeast

import (
	"fmt"
	"strings"
	"unicode"

	"typedjs/internal/token"
)

type printCtx uint8

const (
	ctxTop printCtx = iota
	// ctxMember: union member or array element, where unions and functions need parens.
	ctxMember
)

// Print renders t in the inline annotation syntax. For trees where
// InlineRepresentable is false the output is for display only; Unknown prints as '?'.
func Print(t Type) string {
	var sb strings.Builder
	printType(&sb, t, ctxTop)
	return sb.String()
}

func printType(sb *strings.Builder, t Type, ctx printCtx) {
	switch t := t.(type) {
	case Any:
		sb.WriteString("any")
	case Void:
		sb.WriteString("void")
	case Unknown:
		sb.WriteString("?")
	case Null:
		sb.WriteString("null")
	case Boolean:
		sb.WriteString("boolean")
	case Number:
		sb.WriteString("number")
	case String:
		sb.WriteString("string")
	case *Named:
		if len(t.Args) == 1 && len(t.Name) == 1 && t.Name[0] == "Array" && arrayShorthand(t.Args[0]) {
			printType(sb, t.Args[0], ctxMember)
			sb.WriteString("[]")
			return
		}
		sb.WriteString(t.Name.String())
		if len(t.Args) > 0 {
			sb.WriteByte('<')
			for i, a := range t.Args {
				if i > 0 {
					sb.WriteString(", ")
				}
				printType(sb, a, ctxTop)
			}
			sb.WriteByte('>')
		}
	case *Union:
		if ctx == ctxMember {
			sb.WriteByte('(')
		}
		for i, m := range t.Members {
			if i > 0 {
				sb.WriteString(" | ")
			}
			printType(sb, m, ctxMember)
		}
		if ctx == ctxMember {
			sb.WriteByte(')')
		}
	case *Record:
		sb.WriteByte('{')
		for i, f := range t.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(recordKey(f.Name))
			sb.WriteString(": ")
			printType(sb, f.Type, ctxTop)
		}
		sb.WriteByte('}')
	case *Function:
		if ctx == ctxMember {
			sb.WriteByte('(')
		}
		printFunction(sb, t)
		if ctx == ctxMember {
			sb.WriteByte(')')
		}
	case *Rest:
		sb.WriteString("...")
		printType(sb, t.Inner, ctxMember)
	case *Optional:
		printType(sb, t.Inner, ctxMember)
		sb.WriteByte('=')
	default:
		panic(fmt.Errorf("typeast: unknown type %T", t))
	}
}

func printFunction(sb *strings.Builder, f *Function) {
	sb.WriteByte('(')
	first := true
	sep := func() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
	}
	if f.This != nil {
		sep()
		sb.WriteString("this: ")
		printType(sb, f.This, ctxTop)
	}
	if f.New != nil {
		sep()
		sb.WriteString("new: ")
		printType(sb, f.New, ctxTop)
	}
	for _, p := range f.Params {
		sep()
		pt := p.Type
		switch inner := pt.(type) {
		case *Rest:
			sb.WriteString("...")
			sb.WriteString(p.Name)
			pt = inner.Inner
		case *Optional:
			sb.WriteString(p.Name)
			sb.WriteByte('?')
			pt = inner.Inner
		default:
			sb.WriteString(p.Name)
		}
		if pt.Kind() != KindUnknown {
			sb.WriteString(": ")
			printType(sb, pt, ctxTop)
		}
	}
	sb.WriteString(") => ")
	printType(sb, f.Return, ctxTop)
}

func arrayShorthand(elem Type) bool {
	switch elem.Kind() {
	case KindUnion, KindFunction:
		return false
	}
	return true
}

func recordKey(name string) string {
	if isIdentifierName(name) {
		return name
	}
	if strings.ContainsRune(name, '\'') {
		return `"` + name + `"`
	}
	return "'" + name + "'"
}

func isIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// InlineRepresentable reports whether Print(t) parses back to t under the
// inline grammar.
func InlineRepresentable(t Type) bool {
	switch t := t.(type) {
	case Any, Void, Null, Boolean, Number, String:
		return true
	case Unknown, *Rest, *Optional:
		return false
	case *Named:
		if !namedRepresentable(t.Name) {
			return false
		}
		return allRepresentable(t.Args)
	case *Union:
		return len(t.Members) > 1 && allRepresentable(t.Members)
	case *Record:
		for _, f := range t.Fields {
			if strings.ContainsRune(f.Name, '\'') && strings.ContainsRune(f.Name, '"') {
				return false
			}
			if !InlineRepresentable(f.Type) {
				return false
			}
		}
		return true
	case *Function:
		if t.This != nil && !InlineRepresentable(t.This) {
			return false
		}
		if t.New != nil && !InlineRepresentable(t.New) {
			return false
		}
		for i, p := range t.Params {
			if p.Name != fmt.Sprintf("p%d", i+1) {
				return false
			}
			if !paramRepresentable(p.Type, i == len(t.Params)-1) {
				return false
			}
		}
		return InlineRepresentable(t.Return)
	}
	panic(fmt.Errorf("typeast: unknown type %T", t))
}

func paramRepresentable(t Type, last bool) bool {
	var inner Type
	switch p := t.(type) {
	case *Rest:
		if !last {
			return false
		}
		inner = p.Inner
	case *Optional:
		inner = p.Inner
	case Unknown:
		return true
	default:
		return InlineRepresentable(t)
	}
	return inner.Kind() == KindUnknown || InlineRepresentable(inner)
}

// namedRepresentable rejects names the inline grammar would read as
// something else: reserved words, primitives, and the 'any' wildcard.
func namedRepresentable(q QualifiedName) bool {
	if len(q) == 0 || !isIdentifierName(q[0]) {
		return false
	}
	if _, kw := token.LookupKeyword(q[0]); kw {
		return false
	}
	if len(q) == 1 {
		switch q[0] {
		case "any", "boolean", "number", "string", "undefined":
			return false
		}
	}
	for _, seg := range q[1:] {
		if !isIdentifierName(seg) {
			return false
		}
	}
	return true
}

func allRepresentable(ts []Type) bool {
	for _, t := range ts {
		if !InlineRepresentable(t) {
			return false
		}
	}
	return true
}
