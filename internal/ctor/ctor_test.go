package ctor_test

import (
	"testing"

	"typedjs/internal/ast"
	"typedjs/internal/ctor"
	"typedjs/internal/diag"
	"typedjs/internal/parser"
	"typedjs/internal/printer"
	"typedjs/internal/source"
)

func synth(t *testing.T, src string) (string, int) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("c.tjs", []byte(src))
	bag := diag.NewBag(10)
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(fs, id, b, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("diagnostics:\n%s", diag.FormatGoldenDiagnostics(bag.Items(), fs, false))
	}
	n := ctor.Synthesize(b, res.File)
	out, err := printer.PrintFile(b, res.File, printer.Options{})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	return string(out), n
}

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
		n    int
	}{
		{"plain", "class A { m() {} }",
			"class A {\n  constructor() {}\n  m() {}\n}\n", 1},
		{"derived", "class B extends A {}",
			"class B extends A {\n  constructor(...args) {\n    super(...args);\n  }\n}\n", 1},
		{"existing", "class C { x = 1; constructor() { f(); } }",
			"class C {\n  x = 1;\n  constructor() {\n    f();\n  }\n}\n", 0},
		{"nested expression", "var D = class { m() { return class {}; } };",
			"var D = class {\n  constructor() {}\n  m() {\n    return class {\n      constructor() {}\n    };\n  }\n};\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := synth(t, tt.src)
			if n != tt.n {
				t.Fatalf("changed %d classes, want %d", n, tt.n)
			}
			if got != tt.want {
				t.Fatalf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestSynthesizeNeeded(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("c.tjs", []byte("class A { m() {} }\nclass B { x = 1; }"))
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(fs, id, b, parser.Options{Reporter: diag.NopReporter{}})
	if n := ctor.SynthesizeNeeded(b, res.File); n != 1 {
		t.Fatalf("changed %d classes, want 1", n)
	}
	out, err := printer.PrintFile(b, res.File, printer.Options{})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	want := "class A {\n  m() {}\n}\nclass B {\n  constructor() {}\n  x = 1;\n}\n"
	if string(out) != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}
