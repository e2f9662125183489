package typeast

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Dump renders an S-expression form, e.g. (union null (named a.b.C number)).
func Dump(t Type) string {
	var sb strings.Builder
	dump(&sb, t)
	return sb.String()
}

func dump(sb *strings.Builder, t Type) {
	switch t := t.(type) {
	case Any, Void, Unknown, Null, Boolean, Number, String:
		sb.WriteString(t.Kind().String())
	case *Named:
		if len(t.Args) == 0 {
			fmt.Fprintf(sb, "(named %s)", t.Name)
			return
		}
		fmt.Fprintf(sb, "(named %s", t.Name)
		for _, a := range t.Args {
			sb.WriteByte(' ')
			dump(sb, a)
		}
		sb.WriteByte(')')
	case *Union:
		sb.WriteString("(union")
		for _, m := range t.Members {
			sb.WriteByte(' ')
			dump(sb, m)
		}
		sb.WriteByte(')')
	case *Record:
		sb.WriteString("(record")
		for _, f := range t.Fields {
			fmt.Fprintf(sb, " (%s ", f.Name)
			dump(sb, f.Type)
			sb.WriteByte(')')
		}
		sb.WriteByte(')')
	case *Function:
		sb.WriteString("(function")
		for _, p := range t.Params {
			fmt.Fprintf(sb, " (%s ", p.Name)
			dump(sb, p.Type)
			sb.WriteByte(')')
		}
		if t.This != nil {
			sb.WriteString(" (this ")
			dump(sb, t.This)
			sb.WriteByte(')')
		}
		if t.New != nil {
			sb.WriteString(" (new ")
			dump(sb, t.New)
			sb.WriteByte(')')
		}
		sb.WriteString(" (return ")
		dump(sb, t.Return)
		sb.WriteString("))")
	case *Rest:
		sb.WriteString("(rest ")
		dump(sb, t.Inner)
		sb.WriteByte(')')
	case *Optional:
		sb.WriteString("(optional ")
		dump(sb, t.Inner)
		sb.WriteByte(')')
	default:
		panic(fmt.Errorf("typeast: unknown type %T", t))
	}
}

// jsonNode is the wire shape used by `typedjs normalize --format=json`.
type jsonNode struct {
	Kind    string      `json:"kind"`
	Name    string      `json:"name,omitempty"`
	Args    []jsonNode  `json:"args,omitempty"`
	Members []jsonNode  `json:"members,omitempty"`
	Fields  []jsonField `json:"fields,omitempty"`
	Params  []jsonField `json:"params,omitempty"`
	This    *jsonNode   `json:"this,omitempty"`
	New     *jsonNode   `json:"new,omitempty"`
	Return  *jsonNode   `json:"return,omitempty"`
	Inner   *jsonNode   `json:"inner,omitempty"`
}

type jsonField struct {
	Name string   `json:"name"`
	Type jsonNode `json:"type"`
}

// MarshalJSON encodes t as nested objects tagged by kind.
func MarshalJSON(t Type) ([]byte, error) {
	return json.MarshalIndent(toJSON(t), "", "  ")
}

func toJSON(t Type) jsonNode {
	n := jsonNode{Kind: t.Kind().String()}
	ptr := func(t Type) *jsonNode {
		if t == nil {
			return nil
		}
		j := toJSON(t)
		return &j
	}
	switch t := t.(type) {
	case *Named:
		n.Name = t.Name.String()
		for _, a := range t.Args {
			n.Args = append(n.Args, toJSON(a))
		}
	case *Union:
		for _, m := range t.Members {
			n.Members = append(n.Members, toJSON(m))
		}
	case *Record:
		for _, f := range t.Fields {
			n.Fields = append(n.Fields, jsonField{Name: f.Name, Type: toJSON(f.Type)})
		}
	case *Function:
		for _, p := range t.Params {
			n.Params = append(n.Params, jsonField{Name: p.Name, Type: toJSON(p.Type)})
		}
		n.This, n.New, n.Return = ptr(t.This), ptr(t.New), ptr(t.Return)
	case *Rest:
		n.Inner = ptr(t.Inner)
	case *Optional:
		n.Inner = ptr(t.Inner)
	}
	return n
}
