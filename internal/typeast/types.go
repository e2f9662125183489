package typeast

import "strings"

type Kind uint8

const (
	KindAny Kind = iota
	KindVoid
	KindUnknown
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindNamed
	KindUnion
	KindRecord
	KindFunction
	KindRest
	KindOptional
)

var kindNames = [...]string{
	KindAny:      "any",
	KindVoid:     "void",
	KindUnknown:  "unknown",
	KindNull:     "null",
	KindBoolean:  "boolean",
	KindNumber:   "number",
	KindString:   "string",
	KindNamed:    "named",
	KindUnion:    "union",
	KindRecord:   "record",
	KindFunction: "function",
	KindRest:     "rest",
	KindOptional: "optional",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind?"
}

// Type is a canonical type node. The set of implementations is closed.
type Type interface {
	Kind() Kind
	canonicalType()
}

type (
	Any     struct{}
	Void    struct{}
	Unknown struct{}
	Null    struct{}
	Boolean struct{}
	Number  struct{}
	String  struct{}
)

func (Any) Kind() Kind     { return KindAny }
func (Void) Kind() Kind    { return KindVoid }
func (Unknown) Kind() Kind { return KindUnknown }
func (Null) Kind() Kind    { return KindNull }
func (Boolean) Kind() Kind { return KindBoolean }
func (Number) Kind() Kind  { return KindNumber }
func (String) Kind() Kind  { return KindString }

func (Any) canonicalType()     {}
func (Void) canonicalType()    {}
func (Unknown) canonicalType() {}
func (Null) canonicalType()    {}
func (Boolean) canonicalType() {}
func (Number) canonicalType()  {}
func (String) canonicalType()  {}

// QualifiedName is the ordered segment list of a dotted name.
type QualifiedName []string

// ParseQualifiedName splits "a.b.c".
func ParseQualifiedName(s string) QualifiedName {
	return QualifiedName(strings.Split(s, "."))
}

func (q QualifiedName) String() string { return strings.Join(q, ".") }

// Named is a reference to a named type, optionally parameterized.
type Named struct {
	Name QualifiedName
	Args []Type
}

// Union keeps members in source order; duplicates are not removed.
type Union struct {
	Members []Type
}

type Field struct {
	Name string
	Type Type
}

type Record struct {
	Fields []Field
}

// Param keys are positional ("p1", "p2", ...); source names are not kept.
type Param struct {
	Name string
	Type Type
}

type Function struct {
	Params []Param
	This   Type // nil if absent
	New    Type // nil if absent
	Return Type
}

type Rest struct {
	Inner Type
}

type Optional struct {
	Inner Type
}

func (*Named) Kind() Kind    { return KindNamed }
func (*Union) Kind() Kind    { return KindUnion }
func (*Record) Kind() Kind   { return KindRecord }
func (*Function) Kind() Kind { return KindFunction }
func (*Rest) Kind() Kind     { return KindRest }
func (*Optional) Kind() Kind { return KindOptional }

func (*Named) canonicalType()    {}
func (*Union) canonicalType()    {}
func (*Record) canonicalType()   {}
func (*Function) canonicalType() {}
func (*Rest) canonicalType()     {}
func (*Optional) canonicalType() {}

// Field looks a record field up by name.
func (r *Record) Field(name string) (Type, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// Param looks a parameter up by its positional key.
func (f *Function) Param(name string) (Type, bool) {
	for _, p := range f.Params {
		if p.Name == name {
			return p.Type, true
		}
	}
	return nil, false
}

// IsPrimitive reports whether t is one of the keyword kinds.
func IsPrimitive(t Type) bool {
	switch t.Kind() {
	case KindBoolean, KindNumber, KindString, KindNull, KindVoid:
		return true
	}
	return false
}
