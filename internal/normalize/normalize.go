// Package normalize turns parsed type expressions of either annotation grammar
// into canonical type trees.
package normalize

import (
	"fmt"
	"strconv"

	"typedjs/internal/typeast"
	"typedjs/internal/typeexpr"
)

// Normalize is total over the typeexpr vocabulary and has no side effects;
// it is safe to call concurrently. A node kind it does not know is a broken
// pipeline contract and panics.
func Normalize(n typeexpr.Node) typeast.Type {
	switch n := n.(type) {
	case *typeexpr.Wildcard:
		return typeast.Any{}
	case *typeexpr.VoidMarker:
		return typeast.Void{}
	case *typeexpr.Empty:
		return typeast.Unknown{}
	case *typeexpr.NonNull:
		return stripNull(Normalize(n.Inner))
	case *typeexpr.Name:
		return normalizeName(n)
	case *typeexpr.Nullable:
		if n.Inner == nil {
			return typeast.Any{}
		}
		return &typeast.Union{Members: []typeast.Type{typeast.Null{}, Normalize(n.Inner)}}
	case *typeexpr.Record:
		fields := make([]typeast.Field, len(n.Fields))
		for i, f := range n.Fields {
			var t typeast.Type = typeast.Unknown{}
			if f.Type != nil {
				t = Normalize(f.Type)
			}
			fields[i] = typeast.Field{Name: unquote(f.Key), Type: t}
		}
		return &typeast.Record{Fields: fields}
	case *typeexpr.Union:
		return &typeast.Union{Members: normalizeList(n.Members)}
	case *typeexpr.Rest:
		return &typeast.Rest{Inner: Normalize(n.Inner)}
	case *typeexpr.Optional:
		return &typeast.Optional{Inner: Normalize(n.Inner)}
	case *typeexpr.Function:
		return normalizeFunction(n)
	}
	panic(fmt.Errorf("normalize: unexpected type expression %T", n))
}

var keywordTypes = map[string]typeast.Type{
	"boolean":   typeast.Boolean{},
	"number":    typeast.Number{},
	"string":    typeast.String{},
	"null":      typeast.Null{},
	"undefined": typeast.Void{},
	"void":      typeast.Void{},
}

func normalizeName(n *typeexpr.Name) typeast.Type {
	if prim, ok := keywordTypes[n.Text]; ok {
		return prim
	}
	named := &typeast.Named{Name: typeast.ParseQualifiedName(n.Text)}
	if len(n.Args) > 0 {
		named.Args = normalizeList(n.Args)
	}
	return named
}

func normalizeFunction(n *typeexpr.Function) *typeast.Function {
	fn := &typeast.Function{
		Params: make([]typeast.Param, len(n.Params)),
		Return: Normalize(n.Return),
	}
	for i, p := range n.Params {
		t := Normalize(p)
		if n.Variadic && i == len(n.Params)-1 && t.Kind() != typeast.KindRest {
			t = &typeast.Rest{Inner: t}
		}
		fn.Params[i] = typeast.Param{Name: "p" + strconv.Itoa(i+1), Type: t}
	}
	if n.This != nil {
		fn.This = Normalize(n.This)
	}
	if n.New != nil {
		fn.New = Normalize(n.New)
	}
	return fn
}

func normalizeList(ns []typeexpr.Node) []typeast.Type {
	out := make([]typeast.Type, len(ns))
	for i, n := range ns {
		out[i] = Normalize(n)
	}
	return out
}

// stripNull drops Null members of a union; `!?T` is T.
func stripNull(t typeast.Type) typeast.Type {
	u, ok := t.(*typeast.Union)
	if !ok {
		return t
	}
	members := make([]typeast.Type, 0, len(u.Members))
	for _, m := range u.Members {
		if m.Kind() != typeast.KindNull {
			members = append(members, m)
		}
	}
	switch len(members) {
	case len(u.Members):
		return u
	case 0:
		return t
	case 1:
		return members[0]
	}
	return &typeast.Union{Members: members}
}

func unquote(key string) string {
	if len(key) >= 2 {
		q := key[0]
		if (q == '\'' || q == '"') && key[len(key)-1] == q {
			return key[1 : len(key)-1]
		}
	}
	return key
}
