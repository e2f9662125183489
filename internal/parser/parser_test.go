package parser

import (
	"testing"

	"typedjs/internal/ast"
	"typedjs/internal/diag"
	"typedjs/internal/fix"
	"typedjs/internal/testkit"
	"typedjs/internal/token"
	"typedjs/internal/typeexpr"
)

func TestVarWithInlineType(t *testing.T) {
	ps := parseOK(t, "var x: number = 1, y;\nlet m: Map<string, Array<number>> = z;")
	if n := len(ps.stmts()); n != 2 {
		t.Fatalf("stmts = %d, want 2", n)
	}
	v, ok := ps.b.Stmts.Var(ps.stmts()[0])
	if !ok || len(v.Decls) != 2 {
		t.Fatalf("var data = %+v", v)
	}
	name, ok := v.Decls[0].Type.(*typeexpr.Name)
	if !ok || name.Text != "number" {
		t.Fatalf("x type = %#v", v.Decls[0].Type)
	}
	if v.Decls[1].Type != nil || v.Decls[1].Init.IsValid() {
		t.Fatalf("y must have neither type nor init")
	}
	m, _ := ps.b.Stmts.Var(ps.stmts()[1])
	if m.Kind != ast.VarLet {
		t.Fatalf("kind = %v", m.Kind)
	}
	outer, ok := m.Decls[0].Type.(*typeexpr.Name)
	if !ok || outer.Text != "Map" || len(outer.Args) != 2 {
		t.Fatalf("m type = %#v", m.Decls[0].Type)
	}
}

func TestDestructuringWithTypeIsRejected(t *testing.T) {
	ps := parseSource(t, "var {a, b}: Foo = o;\nfunction f([x]: number[]) {}\nvar ok = 1;")
	if got := ps.bag.Count(diag.SynDestructuringTyped); got != 2 {
		t.Fatalf("SynDestructuringTyped = %d, want 2", got)
	}
	if n := len(ps.stmts()); n != 3 {
		t.Fatalf("parser should keep going, stmts = %d", n)
	}
	v, _ := ps.b.Stmts.Var(ps.stmts()[0])
	if v.Decls[0].Type != nil {
		t.Fatalf("rejected annotation must not be attached")
	}
}

func TestClassMembers(t *testing.T) {
	src := `class C extends B {
  mv: number;
  mv2: number = 1;
  static smv = 3;
  ['mv' + 2]: string = 'x';
  static;
  get size(): number { return 1; }
  set size(v) {}
  static create(): C { return new C(); }
  constructor(a: number, b?: string, ...rest: any[]) { super(); }
}`
	ps := parseOK(t, src)
	decl, ok := ps.b.Stmts.Class(ps.stmts()[0])
	if !ok {
		t.Fatalf("not a class declaration")
	}
	cls := ps.b.Classes.Get(decl.Class)
	if cls.Name != "C" || !cls.Extends.IsValid() {
		t.Fatalf("class header = %+v", cls)
	}
	type want struct {
		kind     ast.MemberKind
		name     string
		static   bool
		computed bool
		init     bool
	}
	wants := []want{
		{ast.MemberField, "mv", false, false, false},
		{ast.MemberField, "mv2", false, false, true},
		{ast.MemberField, "smv", true, false, true},
		{ast.MemberField, "", false, true, true},
		{ast.MemberField, "static", false, false, false},
		{ast.MemberGetter, "size", false, false, false},
		{ast.MemberSetter, "size", false, false, false},
		{ast.MemberMethod, "create", true, false, false},
		{ast.MemberMethod, "constructor", false, false, false},
	}
	if len(cls.Members) != len(wants) {
		t.Fatalf("members = %d, want %d", len(cls.Members), len(wants))
	}
	for i, w := range wants {
		m := ps.b.Classes.Member(cls.Members[i])
		if m.Kind != w.kind || m.Name != w.name || m.Static != w.static || m.Computed != w.computed || m.Init.IsValid() != w.init {
			t.Fatalf("member %d = %+v, want %+v", i, m, w)
		}
	}
	_, ctor, ok := ps.b.Classes.Constructor(decl.Class)
	if !ok {
		t.Fatalf("constructor not found")
	}
	fn := ps.b.Funcs.Get(ctor.Func)
	if len(fn.Params) != 3 || !fn.Params[1].Optional || !fn.Params[2].Rest {
		t.Fatalf("ctor params = %+v", fn.Params)
	}
	key := ps.b.Classes.Member(cls.Members[3]).Key
	if bin, ok := ps.b.Exprs.Binary(key); !ok || bin.Op != token.Plus {
		t.Fatalf("computed key = %+v", ps.b.Exprs.Get(key))
	}
}

func TestDuplicateConstructor(t *testing.T) {
	ps := parseSource(t, "class A { constructor() {} constructor() {} }")
	if ps.bag.Count(diag.SynDuplicateCtor) != 1 {
		t.Fatalf("expected SynDuplicateCtor, got %d diagnostics", ps.bag.Len())
	}
	decl, _ := ps.b.Stmts.Class(ps.stmts()[0])
	if n := len(ps.b.Classes.Get(decl.Class).Members); n != 1 {
		t.Fatalf("members = %d, want 1", n)
	}
}

func TestArrowFunctions(t *testing.T) {
	ps := parseOK(t, `var f = (a: number, b): string => a + b;
var g = x => { return x; };
var h = c ? (a) : b;
var k = (a): (x: number) => void => a;`)
	arrow := func(i int) *ast.Func {
		v, _ := ps.b.Stmts.Var(ps.stmts()[i])
		fe, ok := ps.b.Exprs.Func(v.Decls[0].Init)
		if !ok {
			return nil
		}
		return ps.b.Funcs.Get(fe.Func)
	}
	f := arrow(0)
	if f == nil || !f.Arrow || len(f.Params) != 2 || f.Return == nil || !f.ExprBody.IsValid() {
		t.Fatalf("f = %+v", f)
	}
	if _, ok := f.Params[0].Type.(*typeexpr.Name); !ok {
		t.Fatalf("a type = %#v", f.Params[0].Type)
	}
	g := arrow(1)
	if g == nil || len(g.Params) != 1 || !g.Body.IsValid() {
		t.Fatalf("g = %+v", g)
	}
	if arrow(2) != nil {
		t.Fatalf("conditional must not parse as arrow")
	}
	k := arrow(3)
	if k == nil {
		t.Fatalf("k is not an arrow")
	}
	if _, ok := k.Return.(*typeexpr.Function); !ok {
		t.Fatalf("k return = %#v", k.Return)
	}
}

func TestASIAndRecovery(t *testing.T) {
	ps := parseSource(t, "var a = 1\nvar b = a\n++b\nvar = ;\nvar ok = 2")
	if ps.bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, want 1:\n%s", ps.bag.Len(), diag.FormatGoldenDiagnostics(ps.bag.Items(), ps.fs, false))
	}
	// a, b, ++b, ok
	if n := len(ps.stmts()); n != 4 {
		t.Fatalf("stmts = %d, want 4", n)
	}
	es, ok := ps.b.Stmts.Expr(ps.stmts()[2])
	if !ok {
		t.Fatalf("third statement is not an expression")
	}
	if u, ok := ps.b.Exprs.Unary(es.Expr); !ok || u.Postfix {
		t.Fatalf("++b must be a prefix update")
	}
}

func TestMissingSemicolon(t *testing.T) {
	ps := parseSource(t, "var a = 1 var b = 2;")
	if ps.bag.Count(diag.SynExpectSemicolon) != 1 {
		t.Fatalf("expected SynExpectSemicolon")
	}
	res, err := fix.Apply(ps.fs, ps.bag.Items())
	if err != nil {
		t.Fatalf("fix.Apply: %v", err)
	}
	if got := string(res.FileChanges[0].Content); got != "var a = 1; var b = 2;" {
		t.Fatalf("fixed = %q", got)
	}
}

func TestDocAttachment(t *testing.T) {
	src := "/** @type {number} */\nvar x = 1;\nclass A {\n  /** @type {string} */\n  f;\n  /** @param {number} a */\n  m(a) {}\n}"
	ps := parseOK(t, src)
	if ps.b.Stmts.Get(ps.stmts()[0]).Doc == nil {
		t.Fatalf("var doc not attached")
	}
	decl, _ := ps.b.Stmts.Class(ps.stmts()[1])
	cls := ps.b.Classes.Get(decl.Class)
	field := ps.b.Classes.Member(cls.Members[0])
	method := ps.b.Classes.Member(cls.Members[1])
	if field.Doc == nil || method.Doc == nil {
		t.Fatalf("member docs not attached")
	}
	if ps.b.Funcs.Get(method.Func).Doc == nil {
		t.Fatalf("method func doc not attached")
	}
}

func TestStatements(t *testing.T) {
	src := `for (let i = 0; i < 10; i++) { if (i % 2) continue; else break; }
while (x) x--;
try { f(); } catch (e) { throw e; } finally { g(); }
function h(o) { return o?.a; }`
	ps := parseSource(t, src)
	// `?.` is not supported: one error, the rest parses.
	if ps.bag.Len() == 0 {
		t.Fatalf("expected an error for optional chaining")
	}
	kinds := []ast.StmtKind{ast.StmtFor, ast.StmtWhile, ast.StmtTry}
	for i, k := range kinds {
		if got := ps.b.Stmts.Get(ps.stmts()[i]).Kind; got != k {
			t.Fatalf("stmt %d kind = %v, want %v", i, got, k)
		}
	}
}

func TestObjectAndArrayLiterals(t *testing.T) {
	ps := parseOK(t, "var o = {a: 1, b, 'c': [1, , ...d], [k]: 2, m() {}, get g() { return 1; }, ...rest};")
	v, _ := ps.b.Stmts.Var(ps.stmts()[0])
	obj, ok := ps.b.Exprs.Object(v.Decls[0].Init)
	if !ok {
		t.Fatalf("init is not an object")
	}
	kinds := []ast.PropKind{ast.PropInit, ast.PropShorthand, ast.PropInit, ast.PropInit, ast.PropMethod, ast.PropGet, ast.PropSpread}
	if len(obj.Props) != len(kinds) {
		t.Fatalf("props = %d, want %d", len(obj.Props), len(kinds))
	}
	for i, k := range kinds {
		if obj.Props[i].Kind != k {
			t.Fatalf("prop %d kind = %v, want %v", i, obj.Props[i].Kind, k)
		}
	}
	if !obj.Props[3].Computed {
		t.Fatalf("[k] must be computed")
	}
	arr, ok := ps.b.Exprs.List(obj.Props[2].Value)
	if !ok || len(arr.Items) != 3 || arr.Items[1].IsValid() {
		t.Fatalf("array = %+v", arr)
	}
}

func TestSpanInvariants(t *testing.T) {
	srcs := []string{
		"",
		"var x: number = 1;\nlet y",
		"/** @type {string} */\nvar s = 'a';\nfunction f(a?: number, ...r: string[]): void { return; }",
		"class C extends B { static s = 1; x: number; constructor() { super(); } m() {} }\nC.prototype.z = 2;",
		"if (a) { b(); } else c();\nfor (var i = 0; i < n; i++) {}\ntry { t(); } catch (e) {} finally {}",
		"var o = { a: 1, b, 'c': [1, , 2] }; var g = (x) => ({ x });",
	}
	for _, src := range srcs {
		ps := parseOK(t, src)
		if err := testkit.CheckSpanInvariants(ps.b, ps.file, ps.fs.Get(0)); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}
