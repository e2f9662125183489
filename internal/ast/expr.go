package ast

import (
	"typedjs/internal/source"
	"typedjs/internal/token"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprThis
	ExprSuper
	ExprBinary
	ExprUnary
	ExprAssign
	ExprCond
	ExprCall
	ExprNew
	ExprMember
	ExprIndex
	ExprArray
	ExprObject
	ExprFunc
	ExprClass
	ExprSpread
	ExprParen
	ExprSeq
)

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type LitKind uint8

const (
	LitNumber LitKind = iota
	LitString
	LitTrue
	LitFalse
	LitNull
)

type ExprIdentData struct{ Name string }

// ExprLitData keeps the raw source spelling, quotes included for strings.
type ExprLitData struct {
	Kind LitKind
	Raw  string
}

type ExprBinaryData struct {
	Op    token.Kind
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      token.Kind
	X       ExprID
	Postfix bool
}

type ExprAssignData struct {
	Op     token.Kind
	Target ExprID
	Value  ExprID
}

type ExprCondData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

// ExprCallData is shared by calls and `new` expressions.
type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprMemberData struct {
	Object   ExprID
	Name     string
	NameSpan source.Span
}

type ExprIndexData struct {
	Object ExprID
	Key    ExprID
}

// ExprListData backs array literals (NoExprID marks a hole) and sequences.
type ExprListData struct{ Items []ExprID }

type PropKind uint8

const (
	PropInit PropKind = iota
	PropShorthand
	PropMethod
	PropGet
	PropSet
	PropSpread
)

// Prop is one object literal entry. Key is the raw spelling for plain keys;
// computed keys live in KeyExpr.
type Prop struct {
	Kind     PropKind
	Key      string
	Computed bool
	KeyExpr  ExprID
	Value    ExprID
	Func     FuncID
	Span     source.Span
}

type ExprObjectData struct{ Props []Prop }

type ExprFuncData struct{ Func FuncID }

type ExprClassData struct{ Class ClassID }

type ExprWrapData struct{ X ExprID }

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[ExprIdentData]
	Literals *Arena[ExprLitData]
	Binaries *Arena[ExprBinaryData]
	Unaries  *Arena[ExprUnaryData]
	Assigns  *Arena[ExprAssignData]
	Conds    *Arena[ExprCondData]
	Calls    *Arena[ExprCallData]
	Members  *Arena[ExprMemberData]
	Indices  *Arena[ExprIndexData]
	Lists    *Arena[ExprListData]
	Objects  *Arena[ExprObjectData]
	Funcs    *Arena[ExprFuncData]
	Classes  *Arena[ExprClassData]
	Wraps    *Arena[ExprWrapData]
}

// NewExprs creates per-kind arenas preallocated with capHint (default 1<<8).
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Literals: NewArena[ExprLitData](capHint),
		Binaries: NewArena[ExprBinaryData](small),
		Unaries:  NewArena[ExprUnaryData](small),
		Assigns:  NewArena[ExprAssignData](small),
		Conds:    NewArena[ExprCondData](small),
		Calls:    NewArena[ExprCallData](small),
		Members:  NewArena[ExprMemberData](capHint),
		Indices:  NewArena[ExprIndexData](small),
		Lists:    NewArena[ExprListData](small),
		Objects:  NewArena[ExprObjectData](small),
		Funcs:    NewArena[ExprFuncData](small),
		Classes:  NewArena[ExprClassData](small),
		Wraps:    NewArena[ExprWrapData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (PayloadID, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return NoPayloadID, false
	}
	return expr.Payload, true
}

func (e *Exprs) NewIdent(span source.Span, name string) ExprID {
	return e.new(ExprIdent, span, PayloadID(e.Idents.Allocate(ExprIdentData{Name: name})))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payload(id, ExprIdent)
	if !ok {
		return nil, false
	}
	return e.Idents.Get(uint32(p)), true
}

func (e *Exprs) NewLiteral(span source.Span, kind LitKind, raw string) ExprID {
	return e.new(ExprLit, span, PayloadID(e.Literals.Allocate(ExprLitData{Kind: kind, Raw: raw})))
}

func (e *Exprs) Literal(id ExprID) (*ExprLitData, bool) {
	p, ok := e.payload(id, ExprLit)
	if !ok {
		return nil, false
	}
	return e.Literals.Get(uint32(p)), true
}

func (e *Exprs) NewThis(span source.Span) ExprID {
	return e.new(ExprThis, span, NoPayloadID)
}

func (e *Exprs) NewSuper(span source.Span) ExprID {
	return e.new(ExprSuper, span, NoPayloadID)
}

func (e *Exprs) NewBinary(span source.Span, op token.Kind, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, PayloadID(e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(uint32(p)), true
}

func (e *Exprs) NewUnary(span source.Span, op token.Kind, x ExprID, postfix bool) ExprID {
	return e.new(ExprUnary, span, PayloadID(e.Unaries.Allocate(ExprUnaryData{Op: op, X: x, Postfix: postfix})))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(uint32(p)), true
}

func (e *Exprs) NewAssign(span source.Span, op token.Kind, target, value ExprID) ExprID {
	return e.new(ExprAssign, span, PayloadID(e.Assigns.Allocate(ExprAssignData{Op: op, Target: target, Value: value})))
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	p, ok := e.payload(id, ExprAssign)
	if !ok {
		return nil, false
	}
	return e.Assigns.Get(uint32(p)), true
}

func (e *Exprs) NewCond(span source.Span, cond, then, els ExprID) ExprID {
	return e.new(ExprCond, span, PayloadID(e.Conds.Allocate(ExprCondData{Cond: cond, Then: then, Else: els})))
}

func (e *Exprs) Cond(id ExprID) (*ExprCondData, bool) {
	p, ok := e.payload(id, ExprCond)
	if !ok {
		return nil, false
	}
	return e.Conds.Get(uint32(p)), true
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	return e.new(ExprCall, span, PayloadID(e.Calls.Allocate(ExprCallData{Callee: callee, Args: args})))
}

func (e *Exprs) NewNew(span source.Span, callee ExprID, args []ExprID) ExprID {
	return e.new(ExprNew, span, PayloadID(e.Calls.Allocate(ExprCallData{Callee: callee, Args: args})))
}

// Call returns call data for both ExprCall and ExprNew.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || (expr.Kind != ExprCall && expr.Kind != ExprNew) {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewMember(span source.Span, object ExprID, name string, nameSpan source.Span) ExprID {
	return e.new(ExprMember, span, PayloadID(e.Members.Allocate(ExprMemberData{Object: object, Name: name, NameSpan: nameSpan})))
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	p, ok := e.payload(id, ExprMember)
	if !ok {
		return nil, false
	}
	return e.Members.Get(uint32(p)), true
}

func (e *Exprs) NewIndex(span source.Span, object, key ExprID) ExprID {
	return e.new(ExprIndex, span, PayloadID(e.Indices.Allocate(ExprIndexData{Object: object, Key: key})))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	p, ok := e.payload(id, ExprIndex)
	if !ok {
		return nil, false
	}
	return e.Indices.Get(uint32(p)), true
}

func (e *Exprs) NewArray(span source.Span, items []ExprID) ExprID {
	return e.new(ExprArray, span, PayloadID(e.Lists.Allocate(ExprListData{Items: items})))
}

func (e *Exprs) NewSeq(span source.Span, items []ExprID) ExprID {
	return e.new(ExprSeq, span, PayloadID(e.Lists.Allocate(ExprListData{Items: items})))
}

// List returns items of an array literal or a sequence.
func (e *Exprs) List(id ExprID) (*ExprListData, bool) {
	expr := e.Get(id)
	if expr == nil || (expr.Kind != ExprArray && expr.Kind != ExprSeq) {
		return nil, false
	}
	return e.Lists.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewObject(span source.Span, props []Prop) ExprID {
	return e.new(ExprObject, span, PayloadID(e.Objects.Allocate(ExprObjectData{Props: props})))
}

func (e *Exprs) Object(id ExprID) (*ExprObjectData, bool) {
	p, ok := e.payload(id, ExprObject)
	if !ok {
		return nil, false
	}
	return e.Objects.Get(uint32(p)), true
}

func (e *Exprs) NewFunc(span source.Span, fn FuncID) ExprID {
	return e.new(ExprFunc, span, PayloadID(e.Funcs.Allocate(ExprFuncData{Func: fn})))
}

func (e *Exprs) Func(id ExprID) (*ExprFuncData, bool) {
	p, ok := e.payload(id, ExprFunc)
	if !ok {
		return nil, false
	}
	return e.Funcs.Get(uint32(p)), true
}

func (e *Exprs) NewClass(span source.Span, class ClassID) ExprID {
	return e.new(ExprClass, span, PayloadID(e.Classes.Allocate(ExprClassData{Class: class})))
}

func (e *Exprs) Class(id ExprID) (*ExprClassData, bool) {
	p, ok := e.payload(id, ExprClass)
	if !ok {
		return nil, false
	}
	return e.Classes.Get(uint32(p)), true
}

func (e *Exprs) NewSpread(span source.Span, x ExprID) ExprID {
	return e.new(ExprSpread, span, PayloadID(e.Wraps.Allocate(ExprWrapData{X: x})))
}

func (e *Exprs) NewParen(span source.Span, x ExprID) ExprID {
	return e.new(ExprParen, span, PayloadID(e.Wraps.Allocate(ExprWrapData{X: x})))
}

// Wrapped returns the operand of a spread or parenthesized expression.
func (e *Exprs) Wrapped(id ExprID) (ExprID, bool) {
	expr := e.Get(id)
	if expr == nil || (expr.Kind != ExprSpread && expr.Kind != ExprParen) {
		return NoExprID, false
	}
	return e.Wraps.Get(uint32(expr.Payload)).X, true
}

// Unparen strips any number of enclosing parentheses.
func (e *Exprs) Unparen(id ExprID) ExprID {
	for {
		expr := e.Get(id)
		if expr == nil || expr.Kind != ExprParen {
			return id
		}
		id = e.Wraps.Get(uint32(expr.Payload)).X
	}
}
