package ast

import (
	"testing"

	"typedjs/internal/source"
	"typedjs/internal/typeast"
)

func sp(a, b uint32) source.Span { return source.Span{File: 1, Start: a, End: b} }

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if got := a.Get(0); got != nil {
		t.Fatalf("Get(0) = %v, want nil", got)
	}
	id := a.Allocate(42)
	if id != 1 {
		t.Fatalf("first id = %d, want 1", id)
	}
	if *a.Get(id) != 42 || a.Len() != 1 {
		t.Fatalf("unexpected arena state")
	}
}

func TestPayloadAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{})
	id := b.Exprs.NewIdent(sp(0, 1), "x")
	if _, ok := b.Exprs.Literal(id); ok {
		t.Fatalf("Literal accessor accepted an identifier")
	}
	data, ok := b.Exprs.Ident(id)
	if !ok || data.Name != "x" {
		t.Fatalf("Ident = %+v, %v", data, ok)
	}
	inner := b.Exprs.NewLiteral(sp(1, 2), LitNumber, "1")
	p1 := b.Exprs.NewParen(sp(0, 3), inner)
	p2 := b.Exprs.NewParen(sp(0, 4), p1)
	if got := b.Exprs.Unparen(p2); got != inner {
		t.Fatalf("Unparen = %d, want %d", got, inner)
	}
}

func TestClassMembers(t *testing.T) {
	b := NewBuilder(Hints{})
	field := b.Classes.NewMember(Member{Kind: MemberField, Name: "a"})
	ctorFn := b.Funcs.New(Func{Body: b.Stmts.NewBlock(sp(0, 0), nil)})
	ctor := b.Classes.NewMember(Member{Kind: MemberMethod, Name: "constructor", Func: ctorFn})
	static := b.Classes.NewMember(Member{Kind: MemberMethod, Static: true, Name: "constructor"})
	cls := b.Classes.New(Class{Name: "C", Members: []MemberID{field, static, ctor}})

	got, _, ok := b.Classes.Constructor(cls)
	if !ok || got != ctor {
		t.Fatalf("Constructor = %d, %v; want %d", got, ok, ctor)
	}
	if f := b.Classes.Fields(cls); len(f) != 1 || f[0] != field {
		t.Fatalf("Fields = %v", f)
	}
	if !b.Classes.RemoveMember(cls, field) {
		t.Fatalf("RemoveMember failed")
	}
	if b.Classes.RemoveMember(cls, field) {
		t.Fatalf("second RemoveMember should report false")
	}
	if n := len(b.Classes.Get(cls).Members); n != 2 {
		t.Fatalf("members left = %d, want 2", n)
	}
}

func TestInsertAfter(t *testing.T) {
	b := NewBuilder(Hints{})
	file := b.NewFile(sp(0, 10))
	s1 := b.Stmts.NewEmpty(sp(0, 1))
	s2 := b.Stmts.NewEmpty(sp(1, 2))
	b.PushStmt(file, s1)
	b.PushStmt(file, s2)
	ref := ListRef{File: file}

	n1 := b.Stmts.NewEmpty(sp(0, 0))
	n2 := b.Stmts.NewEmpty(sp(0, 0))
	if !b.InsertAfter(ref, s1, n1) || !b.InsertAfter(ref, n1, n2) {
		t.Fatalf("InsertAfter failed")
	}
	front := b.Stmts.NewEmpty(sp(0, 0))
	b.InsertAfter(ref, NoStmtID, front)

	want := []StmtID{front, s1, n1, n2, s2}
	got := b.Files.Get(file).Stmts
	if len(got) != len(want) {
		t.Fatalf("stmts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stmts = %v, want %v", got, want)
		}
	}
	if b.InsertAfter(ref, StmtID(999), n1) {
		t.Fatalf("InsertAfter with unknown anchor should fail")
	}
}

func TestWalkFindsClassOwners(t *testing.T) {
	b := NewBuilder(Hints{})
	file := b.NewFile(sp(0, 100))

	// class A {}
	clsA := b.Classes.New(Class{Name: "A"})
	declA := b.Stmts.NewClass(sp(0, 10), clsA)
	b.PushStmt(file, declA)

	// var B = class {};   inside a function body
	clsB := b.Classes.New(Class{})
	bExpr := b.Exprs.NewClass(sp(20, 30), clsB)
	varB := b.Stmts.NewVar(sp(12, 31), VarVar, []VarDeclarator{{Target: b.Exprs.NewIdent(sp(16, 17), "B"), Init: bExpr}})
	body := b.Stmts.NewBlock(sp(11, 40), []StmtID{varB})
	fn := b.Funcs.New(Func{Name: "f", Body: body})
	b.PushStmt(file, b.Stmts.NewFunc(sp(11, 40), fn))

	var sites []ClassSite
	var funcs []FuncID
	b.Walk(file, Visitor{
		Class: func(s ClassSite) { sites = append(sites, s) },
		Func:  func(id FuncID) { funcs = append(funcs, id) },
	})
	if len(sites) != 2 {
		t.Fatalf("found %d classes, want 2", len(sites))
	}
	if sites[0].Owner != declA || sites[0].List != (ListRef{File: file}) || sites[0].Expr.IsValid() {
		t.Fatalf("class A site = %+v", sites[0])
	}
	if sites[1].Owner != varB || sites[1].List != (ListRef{Block: body}) || sites[1].Expr != bExpr {
		t.Fatalf("class B site = %+v", sites[1])
	}
	if len(funcs) != 1 || funcs[0] != fn {
		t.Fatalf("funcs = %v", funcs)
	}
}

func TestTypeTableKeepsOrder(t *testing.T) {
	tt := NewTypeTable()
	tt.Set(ReturnSite(2), typeast.Number{})
	tt.Set(ParamSite(2, 0), typeast.String{})
	tt.Set(ReturnSite(2), typeast.Boolean{})
	if tt.Len() != 2 || len(tt.Sites) != 2 {
		t.Fatalf("len = %d, sites = %v", tt.Len(), tt.Sites)
	}
	if tt.Sites[0] != ReturnSite(2) {
		t.Fatalf("first site = %+v", tt.Sites[0])
	}
	got, ok := tt.Lookup(ReturnSite(2))
	if !ok || !typeast.Equal(got, typeast.Boolean{}) {
		t.Fatalf("Lookup = %v, %v", got, ok)
	}
	if _, ok := tt.Lookup(FieldSite(1)); ok {
		t.Fatalf("unexpected field type")
	}
}
