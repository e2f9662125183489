package ast

import "slices"

// ListRef names a mutable statement sequence: a file body or a block statement.
// The zero value refers to no list.
type ListRef struct {
	File  FileID
	Block StmtID
}

func (r ListRef) IsValid() bool { return r.File.IsValid() || r.Block.IsValid() }

// List resolves ref to the backing slice. The pointer is only valid until the
// next allocation in the owning arena.
func (b *Builder) List(ref ListRef) *[]StmtID {
	if ref.Block.IsValid() {
		if blk, ok := b.Stmts.Block(ref.Block); ok {
			return &blk.Stmts
		}
		return nil
	}
	if f := b.Files.Get(ref.File); f != nil {
		return &f.Stmts
	}
	return nil
}

// InsertAfter puts stmt right after anchor in the list. A NoStmtID anchor
// inserts at the front. Returns false when anchor is not in the list.
func (b *Builder) InsertAfter(ref ListRef, anchor, stmt StmtID) bool {
	list := b.List(ref)
	if list == nil {
		return false
	}
	at := 0
	if anchor.IsValid() {
		idx := slices.Index(*list, anchor)
		if idx < 0 {
			return false
		}
		at = idx + 1
	}
	*list = slices.Insert(*list, at, stmt)
	return true
}

// ClassSite locates a class together with the statement that owns it.
type ClassSite struct {
	Class ClassID
	// Expr is the class expression node; NoExprID for class declarations.
	Expr  ExprID
	Owner StmtID
	// List holds Owner; zero when Owner is the non-block body of a compound statement.
	List ListRef
}

// Visitor callbacks; nil entries are skipped. Stmt fires before children,
// Func and Class after their bodies have been walked.
type Visitor struct {
	Stmt  func(list ListRef, id StmtID)
	Func  func(id FuncID)
	Class func(site ClassSite)
}

// Walk traverses every statement of file in source order.
func (b *Builder) Walk(file FileID, v Visitor) {
	f := b.Files.Get(file)
	if f == nil {
		return
	}
	w := walker{b: b, v: v}
	ref := ListRef{File: file}
	// копия: посетитель может вставлять в список
	for _, id := range slices.Clone(f.Stmts) {
		w.stmt(ref, id)
	}
}

type walker struct {
	b     *Builder
	v     Visitor
	owner StmtID
	list  ListRef
}

func (w *walker) stmts(ref ListRef, ids []StmtID) {
	for _, id := range slices.Clone(ids) {
		w.stmt(ref, id)
	}
}

// child walks a nested statement that is not itself in a list.
func (w *walker) child(id StmtID) {
	if id.IsValid() {
		w.stmt(ListRef{}, id)
	}
}

func (w *walker) stmt(ref ListRef, id StmtID) {
	st := w.b.Stmts.Get(id)
	if st == nil {
		return
	}
	if w.v.Stmt != nil {
		w.v.Stmt(ref, id)
	}
	prevOwner, prevList := w.owner, w.list
	w.owner, w.list = id, ref
	defer func() { w.owner, w.list = prevOwner, prevList }()

	switch st.Kind {
	case StmtExpr:
		data, _ := w.b.Stmts.Expr(id)
		w.expr(data.Expr)
	case StmtVar:
		data, _ := w.b.Stmts.Var(id)
		for _, d := range data.Decls {
			w.expr(d.Target)
			w.expr(d.Init)
		}
	case StmtFunc:
		data, _ := w.b.Stmts.Func(id)
		w.fn(data.Func)
	case StmtClass:
		data, _ := w.b.Stmts.Class(id)
		w.class(data.Class, NoExprID)
	case StmtReturn:
		data, _ := w.b.Stmts.Return(id)
		w.expr(data.Value)
	case StmtThrow:
		data, _ := w.b.Stmts.Throw(id)
		w.expr(data.Value)
	case StmtIf:
		data, _ := w.b.Stmts.If(id)
		w.expr(data.Cond)
		w.child(data.Then)
		w.child(data.Else)
	case StmtBlock:
		data, _ := w.b.Stmts.Block(id)
		w.stmts(ListRef{Block: id}, data.Stmts)
	case StmtWhile:
		data, _ := w.b.Stmts.While(id)
		w.expr(data.Cond)
		w.child(data.Body)
	case StmtFor:
		data, _ := w.b.Stmts.For(id)
		w.child(data.Init)
		w.expr(data.Cond)
		w.expr(data.Update)
		w.child(data.Body)
	case StmtTry:
		data, _ := w.b.Stmts.Try(id)
		w.child(data.Body)
		w.child(data.Catch)
		w.child(data.Finally)
	}
}

func (w *walker) fn(id FuncID) {
	fn := w.b.Funcs.Get(id)
	if fn == nil {
		return
	}
	for _, p := range fn.Params {
		w.expr(p.Pattern)
		w.expr(p.Default)
	}
	if fn.Body.IsValid() {
		if blk, ok := w.b.Stmts.Block(fn.Body); ok {
			w.stmts(ListRef{Block: fn.Body}, blk.Stmts)
		}
	}
	w.expr(fn.ExprBody)
	if w.v.Func != nil {
		w.v.Func(id)
	}
}

func (w *walker) class(id ClassID, expr ExprID) {
	class := w.b.Classes.Get(id)
	if class == nil {
		return
	}
	site := ClassSite{Class: id, Expr: expr, Owner: w.owner, List: w.list}
	w.expr(class.Extends)
	for _, mid := range slices.Clone(class.Members) {
		m := w.b.Classes.Member(mid)
		w.expr(m.Key)
		w.expr(m.Init)
		if m.Func.IsValid() {
			w.fn(m.Func)
		}
	}
	if w.v.Class != nil {
		w.v.Class(site)
	}
}

func (w *walker) expr(id ExprID) {
	e := w.b.Exprs.Get(id)
	if e == nil {
		return
	}
	x := w.b.Exprs
	switch e.Kind {
	case ExprBinary:
		d, _ := x.Binary(id)
		w.expr(d.Left)
		w.expr(d.Right)
	case ExprUnary:
		d, _ := x.Unary(id)
		w.expr(d.X)
	case ExprAssign:
		d, _ := x.Assign(id)
		w.expr(d.Target)
		w.expr(d.Value)
	case ExprCond:
		d, _ := x.Cond(id)
		w.expr(d.Cond)
		w.expr(d.Then)
		w.expr(d.Else)
	case ExprCall, ExprNew:
		d, _ := x.Call(id)
		w.expr(d.Callee)
		for _, a := range d.Args {
			w.expr(a)
		}
	case ExprMember:
		d, _ := x.Member(id)
		w.expr(d.Object)
	case ExprIndex:
		d, _ := x.Index(id)
		w.expr(d.Object)
		w.expr(d.Key)
	case ExprArray, ExprSeq:
		d, _ := x.List(id)
		for _, it := range d.Items {
			w.expr(it)
		}
	case ExprObject:
		d, _ := x.Object(id)
		for _, p := range d.Props {
			w.expr(p.KeyExpr)
			w.expr(p.Value)
			if p.Func.IsValid() {
				w.fn(p.Func)
			}
		}
	case ExprFunc:
		d, _ := x.Func(id)
		w.fn(d.Func)
	case ExprClass:
		d, _ := x.Class(id)
		w.class(d.Class, id)
	case ExprSpread, ExprParen:
		inner, _ := x.Wrapped(id)
		w.expr(inner)
	}
}
