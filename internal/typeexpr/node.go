package typeexpr

import "typedjs/internal/source"

// Node is a parsed, not yet normalized, type expression.
type Node interface {
	Span() source.Span
	typeExprNode()
}

type nodeBase struct {
	Sp source.Span
}

func (b nodeBase) Span() source.Span { return b.Sp }
func (nodeBase) typeExprNode()       {}

// Wildcard is `*` in JSDoc and `any` inline.
type Wildcard struct{ nodeBase }

// VoidMarker is an explicit `void`.
type VoidMarker struct{ nodeBase }

// Empty marks a missing type, e.g. a function signature without a return type.
type Empty struct{ nodeBase }

// NonNull is `!T`.
type NonNull struct {
	nodeBase
	Inner Node
}

// Name is a possibly dotted type name with optional type arguments.
// Text keeps the dotted spelling; `T[]` is parsed as Name{Text: "Array", Args: [T]}.
type Name struct {
	nodeBase
	Text string
	Args []Node
}

// Nullable is `?T`; a bare `?` leaves Inner nil.
type Nullable struct {
	nodeBase
	Inner Node
}

// RecordField is one `key: T` entry. Key is the raw spelling, quotes included.
// A bare key leaves Type nil.
type RecordField struct {
	Key  string
	Type Node
	Span source.Span
}

type Record struct {
	nodeBase
	Fields []RecordField
}

type Union struct {
	nodeBase
	Members []Node
}

// Rest is `...T`.
type Rest struct {
	nodeBase
	Inner Node
}

// Optional is a trailing `=` in JSDoc or `name?:` inline.
type Optional struct {
	nodeBase
	Inner Node
}

// Function is a function signature type.
// With Variadic set, the last parameter is the element type of the rest parameter.
type Function struct {
	nodeBase
	Params   []Node
	This     Node // nil if absent
	New      Node // nil if absent
	Variadic bool
	Return   Node // Empty when not written
}

func NewWildcard(sp source.Span) *Wildcard     { return &Wildcard{nodeBase{sp}} }
func NewVoidMarker(sp source.Span) *VoidMarker { return &VoidMarker{nodeBase{sp}} }
func NewEmpty(sp source.Span) *Empty           { return &Empty{nodeBase{sp}} }

func NewNonNull(sp source.Span, inner Node) *NonNull {
	return &NonNull{nodeBase: nodeBase{sp}, Inner: inner}
}

func NewName(sp source.Span, text string, args []Node) *Name {
	return &Name{nodeBase: nodeBase{sp}, Text: text, Args: args}
}

func NewNullable(sp source.Span, inner Node) *Nullable {
	return &Nullable{nodeBase: nodeBase{sp}, Inner: inner}
}

func NewRecord(sp source.Span, fields []RecordField) *Record {
	return &Record{nodeBase: nodeBase{sp}, Fields: fields}
}

func NewUnion(sp source.Span, members []Node) *Union {
	return &Union{nodeBase: nodeBase{sp}, Members: members}
}

func NewRest(sp source.Span, inner Node) *Rest {
	return &Rest{nodeBase: nodeBase{sp}, Inner: inner}
}

func NewOptional(sp source.Span, inner Node) *Optional {
	return &Optional{nodeBase: nodeBase{sp}, Inner: inner}
}

func NewFunction(sp source.Span, params []Node, this, newType Node, variadic bool, ret Node) *Function {
	return &Function{
		nodeBase: nodeBase{sp},
		Params:   params,
		This:     this,
		New:      newType,
		Variadic: variadic,
		Return:   ret,
	}
}
