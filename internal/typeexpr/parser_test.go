package typeexpr_test

import (
	"fmt"
	"strings"
	"testing"

	"typedjs/internal/diag"
	"typedjs/internal/source"
	"typedjs/internal/typeexpr"
)

// show renders a node compactly for assertions.
func show(n typeexpr.Node) string {
	switch n := n.(type) {
	case nil:
		return "<nil>"
	case *typeexpr.Wildcard:
		return "*"
	case *typeexpr.VoidMarker:
		return "void"
	case *typeexpr.Empty:
		return "_"
	case *typeexpr.NonNull:
		return "!" + show(n.Inner)
	case *typeexpr.Name:
		if len(n.Args) == 0 {
			return n.Text
		}
		return n.Text + "<" + showList(n.Args) + ">"
	case *typeexpr.Nullable:
		if n.Inner == nil {
			return "?"
		}
		return "?" + show(n.Inner)
	case *typeexpr.Record:
		parts := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			parts[i] = f.Key
			if f.Type != nil {
				parts[i] += ":" + show(f.Type)
			}
		}
		return "{" + strings.Join(parts, ",") + "}"
	case *typeexpr.Union:
		return "(" + strings.Join(showAll(n.Members), "|") + ")"
	case *typeexpr.Rest:
		return "..." + show(n.Inner)
	case *typeexpr.Optional:
		return show(n.Inner) + "="
	case *typeexpr.Function:
		var b strings.Builder
		b.WriteString("fn(")
		var parts []string
		if n.This != nil {
			parts = append(parts, "this:"+show(n.This))
		}
		if n.New != nil {
			parts = append(parts, "new:"+show(n.New))
		}
		parts = append(parts, showAll(n.Params)...)
		b.WriteString(strings.Join(parts, ","))
		if n.Variadic {
			b.WriteString(",variadic")
		}
		b.WriteString("):" + show(n.Return))
		return b.String()
	}
	return fmt.Sprintf("%T", n)
}

func showAll(ns []typeexpr.Node) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = show(n)
	}
	return out
}

func showList(ns []typeexpr.Node) string { return strings.Join(showAll(ns), ",") }

func parse(t *testing.T, g typeexpr.Grammar, src string) (typeexpr.Node, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("type.txt", []byte(src))
	bag := diag.NewBag(0)
	n, ok := typeexpr.ParseFile(fs, id, g, &diag.BagReporter{Bag: bag})
	if ok != !bag.HasErrors() {
		t.Fatalf("ok=%v but diagnostics=%d for %q", ok, bag.Len(), src)
	}
	return n, bag
}

func TestParseLegacy(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"*", "*"},
		{"?", "?"},
		{"?string", "?string"},
		{"!Object", "!Object"},
		{"number", "number"},
		{"a.b.c", "a.b.c"},
		{"Array.<string>", "Array<string>"},
		{"Object<string, number>", "Object<string,number>"},
		{"my.parameterized.Type.<ns.A, ns.B>", "my.parameterized.Type<ns.A,ns.B>"},
		{"(number|string)", "(number|string)"},
		{"number|?Foo", "(number|?Foo)"},
		{"{a: number, 'b': string, c}", "{a:number,'b':string,c}"},
		{"function(string, number): boolean", "fn(string,number):boolean"},
		{"function(?string=, number=)", "fn(?string=,number=):_"},
		{"function(this:Foo, new:Bar, ...number)", "fn(this:Foo,new:Bar,number,variadic):_"},
		{"function(...)", "fn(_,variadic):_"},
		{"function(): void", "fn():void"},
		{"...number", "...number"},
		{"string=", "string="},
		{"Array<Array<number>>", "Array<Array<number>>"},
		{"!Array<?Object>=", "!Array<?Object>="},
		{"?function(): ?", "?fn():?"},
		{"null", "null"},
		{"undefined", "undefined"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			n, bag := parse(t, typeexpr.GrammarLegacy, tt.src)
			if bag.HasErrors() {
				t.Fatalf("unexpected diagnostics: %s", diag.FormatGoldenDiagnostics(bag.Items(), nil, false))
			}
			if got := show(n); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseInline(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"any", "*"},
		{"void", "void"},
		{"null", "null"},
		{"string[]", "Array<string>"},
		{"mymod.ns.Type[]", "Array<mymod.ns.Type>"},
		{"number[][]", "Array<Array<number>>"},
		{"my.parameterized.Type<ns.A, ns.B>", "my.parameterized.Type<ns.A,ns.B>"},
		{"Map<string, Array<number>>", "Map<string,Array<number>>"},
		{"A<B<C>>", "A<B<C>>"},
		{"number | string", "(number|string)"},
		{"(number | string)[]", "Array<(number|string)>"},
		{"{a: number; 'b-c': string}", "{a:number,'b-c':string}"},
		{"(a: number, b?: string) => void", "fn(number,string=):void"},
		{"(this: Foo, ...rest: number) => any", "fn(this:Foo,number,variadic):*"},
		{"() => A | B", "fn():(A|B)"},
		{"(x) => number", "fn(_):number"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			n, bag := parse(t, typeexpr.GrammarInline, tt.src)
			if bag.HasErrors() {
				t.Fatalf("unexpected diagnostics: %d", bag.Len())
			}
			if got := show(n); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		g    typeexpr.Grammar
		src  string
		code diag.Code
	}{
		{typeexpr.GrammarLegacy, "", diag.SynTypeExpected},
		{typeexpr.GrammarLegacy, "Array.<string", diag.SynTypeExpectRAngle},
		{typeexpr.GrammarLegacy, "{a: number", diag.SynTypeExpectRBrace},
		{typeexpr.GrammarLegacy, "(number|string", diag.SynTypeExpectRParen},
		{typeexpr.GrammarLegacy, "function(...number, string)", diag.SynTypeRestNotLast},
		{typeexpr.GrammarLegacy, "number string", diag.SynTypeTrailingInput},
		{typeexpr.GrammarInline, "{a}", diag.SynTypeExpectColon},
		{typeexpr.GrammarInline, "(...a: number, b: string) => void", diag.SynTypeRestNotLast},
		{typeexpr.GrammarInline, "string[", diag.SynTypeTrailingInput},
		{typeexpr.GrammarInline, "?string", diag.SynTypeExpected},
	}
	for _, tt := range tests {
		t.Run(tt.g.String()+"/"+tt.src, func(t *testing.T) {
			n, bag := parse(t, tt.g, tt.src)
			if n != nil {
				t.Fatalf("expected failure, got %s", show(n))
			}
			if bag.Count(tt.code) == 0 {
				t.Fatalf("expected %s, got %s", tt.code.ID(), diag.FormatGoldenDiagnostics(bag.Items(), nil, false))
			}
		})
	}
}

func TestDepthGuard(t *testing.T) {
	src := strings.Repeat("Array<", typeexpr.MaxDepth+10) + "x" + strings.Repeat(">", typeexpr.MaxDepth+10)
	_, bag := parse(t, typeexpr.GrammarInline, src)
	if bag.Count(diag.SynTypeTooDeep) != 1 {
		t.Fatalf("expected one SynTypeTooDeep, got %d", bag.Count(diag.SynTypeTooDeep))
	}

	legacy := strings.Repeat("!", typeexpr.MaxDepth+1) + "x"
	_, bag = parse(t, typeexpr.GrammarLegacy, legacy)
	if bag.Count(diag.SynTypeTooDeep) != 1 {
		t.Fatalf("legacy: expected SynTypeTooDeep")
	}
}

func TestParseGrammar(t *testing.T) {
	if g, err := typeexpr.ParseGrammar("inline"); err != nil || g != typeexpr.GrammarInline {
		t.Fatalf("inline: %v %v", g, err)
	}
	if g, err := typeexpr.ParseGrammar("jsdoc"); err != nil || g != typeexpr.GrammarLegacy {
		t.Fatalf("jsdoc: %v %v", g, err)
	}
	if _, err := typeexpr.ParseGrammar("flow"); err == nil {
		t.Fatal("expected error")
	}
}
