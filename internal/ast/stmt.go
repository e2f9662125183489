package ast

import (
	"typedjs/internal/source"
	"typedjs/internal/token"
	"typedjs/internal/typeexpr"
)

type StmtKind uint8

const (
	StmtEmpty StmtKind = iota
	StmtExpr
	StmtVar
	StmtFunc
	StmtClass
	StmtReturn
	StmtIf
	StmtBlock
	StmtWhile
	StmtFor
	StmtThrow
	StmtBreak
	StmtContinue
	StmtTry
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
	// Doc is the JSDoc block written in front of the statement, if any.
	Doc *token.Trivia
}

type VarKind uint8

const (
	VarVar VarKind = iota
	VarLet
	VarConst
)

func (k VarKind) String() string {
	switch k {
	case VarLet:
		return "let"
	case VarConst:
		return "const"
	}
	return "var"
}

// VarDeclarator is one `target[: T] [= init]` entry. Target is an Ident
// expression or, for destructuring, an Object/Array pattern expression.
type VarDeclarator struct {
	Target ExprID
	Type   typeexpr.Node // inline annotation, nil if absent
	Init   ExprID
	Span   source.Span
}

type StmtExprData struct{ Expr ExprID }

type StmtVarData struct {
	Kind  VarKind
	Decls []VarDeclarator
}

type StmtFuncData struct{ Func FuncID }

type StmtClassData struct{ Class ClassID }

type StmtReturnData struct{ Value ExprID }

type StmtIfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

type StmtBlockData struct{ Stmts []StmtID }

type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

// StmtForData is a classic three-clause loop; Init is a var or expression statement.
type StmtForData struct {
	Init   StmtID
	Cond   ExprID
	Update ExprID
	Body   StmtID
}

type StmtThrowData struct{ Value ExprID }

type StmtJumpData struct{ Label string }

type StmtTryData struct {
	Body       StmtID
	CatchParam string // empty when the catch clause binds nothing
	Catch      StmtID
	Finally    StmtID
}

type Stmts struct {
	Arena   *Arena[Stmt]
	Exprs   *Arena[StmtExprData]
	Vars    *Arena[StmtVarData]
	Funcs   *Arena[StmtFuncData]
	Classes *Arena[StmtClassData]
	Returns *Arena[StmtReturnData]
	Ifs     *Arena[StmtIfData]
	Blocks  *Arena[StmtBlockData]
	Whiles  *Arena[StmtWhileData]
	Fors    *Arena[StmtForData]
	Throws  *Arena[StmtThrowData]
	Jumps   *Arena[StmtJumpData]
	Tries   *Arena[StmtTryData]
}

func NewStmts(capHint uint) *Stmts {
	small := capHint/8 + 1
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Exprs:   NewArena[StmtExprData](capHint),
		Vars:    NewArena[StmtVarData](small),
		Funcs:   NewArena[StmtFuncData](small),
		Classes: NewArena[StmtClassData](small),
		Returns: NewArena[StmtReturnData](small),
		Ifs:     NewArena[StmtIfData](small),
		Blocks:  NewArena[StmtBlockData](small),
		Whiles:  NewArena[StmtWhileData](small),
		Fors:    NewArena[StmtForData](small),
		Throws:  NewArena[StmtThrowData](small),
		Jumps:   NewArena[StmtJumpData](small),
		Tries:   NewArena[StmtTryData](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (PayloadID, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return NoPayloadID, false
	}
	return st.Payload, true
}

func (s *Stmts) NewEmpty(span source.Span) StmtID {
	return s.new(StmtEmpty, span, NoPayloadID)
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, PayloadID(s.Exprs.Allocate(StmtExprData{Expr: expr})))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(uint32(p)), true
}

func (s *Stmts) NewVar(span source.Span, kind VarKind, decls []VarDeclarator) StmtID {
	return s.new(StmtVar, span, PayloadID(s.Vars.Allocate(StmtVarData{Kind: kind, Decls: decls})))
}

func (s *Stmts) Var(id StmtID) (*StmtVarData, bool) {
	p, ok := s.payload(id, StmtVar)
	if !ok {
		return nil, false
	}
	return s.Vars.Get(uint32(p)), true
}

func (s *Stmts) NewFunc(span source.Span, fn FuncID) StmtID {
	return s.new(StmtFunc, span, PayloadID(s.Funcs.Allocate(StmtFuncData{Func: fn})))
}

func (s *Stmts) Func(id StmtID) (*StmtFuncData, bool) {
	p, ok := s.payload(id, StmtFunc)
	if !ok {
		return nil, false
	}
	return s.Funcs.Get(uint32(p)), true
}

func (s *Stmts) NewClass(span source.Span, class ClassID) StmtID {
	return s.new(StmtClass, span, PayloadID(s.Classes.Allocate(StmtClassData{Class: class})))
}

func (s *Stmts) Class(id StmtID) (*StmtClassData, bool) {
	p, ok := s.payload(id, StmtClass)
	if !ok {
		return nil, false
	}
	return s.Classes.Get(uint32(p)), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, PayloadID(s.Returns.Allocate(StmtReturnData{Value: value})))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(uint32(p)), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, PayloadID(s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els})))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(uint32(p)), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, span, PayloadID(s.Blocks.Allocate(StmtBlockData{Stmts: stmts})))
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(uint32(p)), true
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	return s.new(StmtWhile, span, PayloadID(s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil, false
	}
	return s.Whiles.Get(uint32(p)), true
}

func (s *Stmts) NewFor(span source.Span, init StmtID, cond, update ExprID, body StmtID) StmtID {
	return s.new(StmtFor, span, PayloadID(s.Fors.Allocate(StmtForData{Init: init, Cond: cond, Update: update, Body: body})))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	p, ok := s.payload(id, StmtFor)
	if !ok {
		return nil, false
	}
	return s.Fors.Get(uint32(p)), true
}

func (s *Stmts) NewThrow(span source.Span, value ExprID) StmtID {
	return s.new(StmtThrow, span, PayloadID(s.Throws.Allocate(StmtThrowData{Value: value})))
}

func (s *Stmts) Throw(id StmtID) (*StmtThrowData, bool) {
	p, ok := s.payload(id, StmtThrow)
	if !ok {
		return nil, false
	}
	return s.Throws.Get(uint32(p)), true
}

// NewJump creates a break or continue statement.
func (s *Stmts) NewJump(span source.Span, kind StmtKind, label string) StmtID {
	return s.new(kind, span, PayloadID(s.Jumps.Allocate(StmtJumpData{Label: label})))
}

func (s *Stmts) Jump(id StmtID) (*StmtJumpData, bool) {
	st := s.Get(id)
	if st == nil || (st.Kind != StmtBreak && st.Kind != StmtContinue) {
		return nil, false
	}
	return s.Jumps.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewTry(span source.Span, body StmtID, param string, catch, finally StmtID) StmtID {
	return s.new(StmtTry, span, PayloadID(s.Tries.Allocate(StmtTryData{
		Body: body, CatchParam: param, Catch: catch, Finally: finally,
	})))
}

func (s *Stmts) Try(id StmtID) (*StmtTryData, bool) {
	p, ok := s.payload(id, StmtTry)
	if !ok {
		return nil, false
	}
	return s.Tries.Get(uint32(p)), true
}
