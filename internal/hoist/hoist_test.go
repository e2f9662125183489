package hoist_test

import (
	"strings"
	"testing"

	"typedjs/internal/ast"
	"typedjs/internal/ctor"
	"typedjs/internal/diag"
	"typedjs/internal/hoist"
	"typedjs/internal/parser"
	"typedjs/internal/printer"
	"typedjs/internal/source"
	"typedjs/internal/trace"
)

type hoisted struct {
	out     string
	res     hoist.Result
	bag     *diag.Bag
	changes *hoist.ChangeCounter
}

type setup struct {
	skipCtor bool
	print    printer.Options
	tracer   trace.Tracer
}

func run(t *testing.T, src string, cfg setup) hoisted {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("h.tjs", []byte(src))
	bag := diag.NewBag(20)
	r := &diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{})
	pr := parser.ParseFile(fs, id, b, parser.Options{Reporter: r})
	if bag.Len() != 0 {
		t.Fatalf("parse diagnostics:\n%s", diag.FormatGoldenDiagnostics(bag.Items(), fs, false))
	}
	if !cfg.skipCtor {
		ctor.Synthesize(b, pr.File)
	}
	counter := hoist.NewChangeCounter()
	res := hoist.Run(b, pr.File, hoist.Options{Reporter: r, Sink: counter, Tracer: cfg.tracer})
	out, err := printer.PrintFile(b, pr.File, cfg.print)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	return hoisted{out: string(out), res: res, bag: bag, changes: counter}
}

func TestHoistConverts(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"instance fields before existing body",
			"class C {\n  mv: number;\n  mv2: number = 1;\n  constructor() { this.f = 1; }\n}",
			"class C {\n  constructor() {\n    this.mv;\n    this.mv2 = 1;\n    this.f = 1;\n  }\n}\n",
		},
		{
			"static after declaration",
			"class C { static smv = 3; constructor() {} }",
			"class C {\n  constructor() {}\n}\nC.smv = 3;\n",
		},
		{
			"statics keep order before following code",
			"class C { static a = 1; static b: string; }\nf();",
			"class C {\n  constructor() {}\n}\nC.a = 1;\nC.b;\nf();\n",
		},
		{
			"var assigned class",
			"var C = class { static s = 1; x = 2; };",
			"var C = class {\n  constructor() {\n    this.x = 2;\n  }\n};\nC.s = 1;\n",
		},
		{
			"qualified name",
			"a.b.C = class { static s; };",
			"a.b.C = class {\n  constructor() {}\n};\na.b.C.s;\n",
		},
		{
			"this rooted name",
			"this.C = class { static s = 1; };",
			"this.C = class {\n  constructor() {}\n};\nthis.C.s = 1;\n",
		},
		{
			"computed keys",
			"class C { ['mv']: number; ['mv' + 2]: number = 1; }",
			"class C {\n  constructor() {\n    this['mv'];\n    this['mv' + 2] = 1;\n  }\n}\n",
		},
		{
			"quoted and numeric names",
			"class C { 'a-b' = 1; 42 = 2; }",
			"class C {\n  constructor() {\n    this['a-b'] = 1;\n    this[42] = 2;\n  }\n}\n",
		},
		{
			"derived class keeps super call first",
			"class D extends B { x = 1; }",
			"class D extends B {\n  constructor(...args) {\n    super(...args);\n    this.x = 1;\n  }\n}\n",
		},
		{
			"explicit super call",
			"class D extends B { x = 1; y; constructor() { super(1); f(); } }",
			"class D extends B {\n  constructor() {\n    super(1);\n    this.x = 1;\n    this.y;\n    f();\n  }\n}\n",
		},
		{
			"class in function body",
			"function g() { class C { static s = 1; } return C; }",
			"function g() {\n  class C {\n    constructor() {}\n  }\n  C.s = 1;\n  return C;\n}\n",
		},
		{
			"methods stay",
			"class C { x = 1; m() { return this.x; } }",
			"class C {\n  constructor() {\n    this.x = 1;\n  }\n  m() {\n    return this.x;\n  }\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := run(t, tt.src, setup{})
			if h.bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %d", h.bag.Len())
			}
			if h.out != tt.want {
				t.Fatalf("got:\n%s\nwant:\n%s", h.out, tt.want)
			}
			if h.res.Classes != 1 || h.res.Failed != 0 {
				t.Fatalf("result = %+v", h.res)
			}
		})
	}
}

func TestHoistAnonymousClassFails(t *testing.T) {
	src := "f(class { static s = 1; x = 2; });\nclass K { static k = 1; }"
	h := run(t, src, setup{})
	if got := h.bag.Count(diag.CnvCannotConvertFields); got != 1 {
		t.Fatalf("CnvCannotConvertFields = %d, want 1", got)
	}
	want := "f(class {\n  constructor() {}\n  static s = 1;\n  x = 2;\n});\n" +
		"class K {\n  constructor() {}\n}\nK.k = 1;\n"
	if h.out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", h.out, want)
	}
	if h.res.Failed != 1 || h.res.Classes != 1 || h.res.Fields != 1 {
		t.Fatalf("result = %+v", h.res)
	}
}

func TestHoistUnnamedOwners(t *testing.T) {
	srcs := []string{
		"a.b.C += class { static s = 1; };",
		"a[0] = class { static s = 1; };",
		"var x = f(class { static s = 1; });",
		"x = y = class { static s = 1; };",
	}
	for _, src := range srcs {
		h := run(t, src, setup{})
		if h.bag.Count(diag.CnvCannotConvertFields) != 1 {
			t.Fatalf("%q: expected cannot convert diagnostic", src)
		}
		if h.changes.Total != 0 {
			t.Fatalf("%q: class was modified (%d changes)", src, h.changes.Total)
		}
	}
}

func TestHoistWithoutFieldsIsSilent(t *testing.T) {
	h := run(t, "f(class { m() {} });", setup{skipCtor: true})
	if h.bag.Len() != 0 || h.res != (hoist.Result{}) {
		t.Fatalf("class without fields: diags=%d result=%+v", h.bag.Len(), h.res)
	}
}

func TestHoistPanicsWithoutConstructor(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for class without constructor")
		}
	}()
	run(t, "class C { x = 1; }", setup{skipCtor: true})
}

func TestHoistCarriesDocs(t *testing.T) {
	src := "class C {\n  /** @type {number} */\n  x;\n  /** @const */\n  static s = 1;\n}"
	h := run(t, src, setup{print: printer.Options{KeepDocs: true}})
	want := "class C {\n  constructor() {\n    /** @type {number} */\n    this.x;\n  }\n}\n/** @const */\nC.s = 1;\n"
	if h.out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", h.out, want)
	}
}

func TestHoistReportsChanges(t *testing.T) {
	h := run(t, "class C { a = 1; b; static s = 2; }", setup{})
	c := h.changes
	if c.Total != 6 {
		t.Fatalf("total = %d, want 6", c.Total)
	}
	if c.ByKind[hoist.FieldRemoved] != 3 || c.ByKind[hoist.InstanceInserted] != 2 || c.ByKind[hoist.StaticInserted] != 1 {
		t.Fatalf("by kind = %v", c.ByKind)
	}
	// удаления и статические вставки относятся к файлу, остальное к телу конструктора
	if len(c.ByScope) != 2 {
		t.Fatalf("scopes = %v", c.ByScope)
	}
	if h.res.Fields != 3 {
		t.Fatalf("fields = %d", h.res.Fields)
	}
}

func TestHoistTracesClasses(t *testing.T) {
	ring := trace.NewRingTracer(16, trace.LevelDebug)
	run(t, "a.b.C = class { static s = 1; x = 2; y; };", setup{tracer: ring})
	events := ring.Snapshot()
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	ev := events[0]
	if ev.Kind != trace.KindPoint || ev.Name != "hoist:a.b.C" || !strings.Contains(ev.Detail, "2 instance, 1 static") {
		t.Fatalf("event = %+v", ev)
	}
}
