package normalize_test

import (
	"math/rand/v2"
	"strconv"
	"sync"
	"testing"

	"typedjs/internal/diag"
	"typedjs/internal/normalize"
	"typedjs/internal/source"
	"typedjs/internal/typeast"
	"typedjs/internal/typeexpr"
)

func parse(t *testing.T, g typeexpr.Grammar, src string) typeexpr.Node {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t", []byte(src))
	bag := diag.NewBag(0)
	n, ok := typeexpr.ParseFile(fs, id, g, &diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("parse %q: %s", src, diag.FormatGoldenDiagnostics(bag.Items(), fs, false))
	}
	return n
}

func legacy(t *testing.T, src string) typeast.Type {
	t.Helper()
	return normalize.Normalize(parse(t, typeexpr.GrammarLegacy, src))
}

func TestNormalizeLegacy(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"*", "any"},
		{"?", "any"},
		{"?string", "(union null string)"},
		{"!Object", "(named Object)"},
		{"!?Object", "(named Object)"},
		{"a.b.c", "(named a.b.c)"},
		{"Array.<string>", "(named Array string)"},
		{"Object<string, ?number>", "(named Object string (union null number))"},
		{"(number|string|number)", "(union number string number)"},
		{"{b: number, 'a': string, c}", "(record (b number) (a string) (c unknown))"},
		{"{\"x\": boolean}", "(record (x boolean))"},
		{"function(this:Foo, new:Bar, string): number", "(function (p1 string) (this (named Foo)) (new (named Bar)) (return number))"},
		{"function(?string=, number=)", "(function (p1 (optional (union null string))) (p2 (optional number)) (return unknown))"},
		{"function(string, ...number)", "(function (p1 string) (p2 (rest number)) (return unknown))"},
		{"function(...)", "(function (p1 (rest unknown)) (return unknown))"},
		{"function(): void", "(function (return void))"},
		{"...number", "(rest number)"},
		{"...?number", "(rest (union null number))"},
		{"number=", "(optional number)"},
		{"undefined", "void"},
		{"void", "void"},
		{"null", "null"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := typeast.Dump(legacy(t, tt.src)); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPrimitiveKeywordsNeverNamed(t *testing.T) {
	want := map[string]typeast.Kind{
		"boolean": typeast.KindBoolean,
		"number":  typeast.KindNumber,
		"string":  typeast.KindString,
		"void":    typeast.KindVoid,
		"null":    typeast.KindNull,
	}
	for k, kind := range want {
		got := normalize.Normalize(typeexpr.NewName(source.Span{}, k, nil))
		if got.Kind() != kind {
			t.Errorf("%s -> %s, want %s", k, got.Kind(), kind)
		}
	}
}

func TestQualifiedName(t *testing.T) {
	got := normalize.Normalize(typeexpr.NewName(source.Span{}, "a.b.c", nil))
	want := &typeast.Named{Name: typeast.QualifiedName{"a", "b", "c"}}
	if !typeast.Equal(got, want) {
		t.Fatalf("got %s", typeast.Dump(got))
	}
}

func TestNullableWrapsInUnion(t *testing.T) {
	for _, inner := range []typeexpr.Node{
		typeexpr.NewName(source.Span{}, "Foo", nil),
		typeexpr.NewName(source.Span{}, "number", nil),
		typeexpr.NewWildcard(source.Span{}),
	} {
		got := normalize.Normalize(typeexpr.NewNullable(source.Span{}, inner))
		want := &typeast.Union{Members: []typeast.Type{typeast.Null{}, normalize.Normalize(inner)}}
		if !typeast.Equal(got, want) {
			t.Fatalf("got %s", typeast.Dump(got))
		}
	}
}

func TestFunctionParamKeysArePositional(t *testing.T) {
	n := parse(t, typeexpr.GrammarInline, "(zeta: number, alpha: string) => void")
	fn := normalize.Normalize(n).(*typeast.Function)
	if len(fn.Params) != 2 || fn.Params[0].Name != "p1" || fn.Params[1].Name != "p2" {
		t.Fatalf("params %+v", fn.Params)
	}
	if fn.Params[0].Type.Kind() != typeast.KindNumber {
		t.Fatalf("p1 must be number")
	}
}

func TestRecordOrderPreserved(t *testing.T) {
	rec := normalize.Normalize(parse(t, typeexpr.GrammarInline, "{b: number, a: string}")).(*typeast.Record)
	if rec.Fields[0].Name != "b" || rec.Fields[1].Name != "a" {
		t.Fatalf("order lost: %s", typeast.Dump(rec))
	}
}

func TestUnknownNodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	normalize.Normalize(nil)
}

func TestNormalizeInline(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"any", "any"},
		{"string[]", "(named Array string)"},
		{"mymod.ns.Type[]", "(named Array (named mymod.ns.Type))"},
		{"my.parameterized.Type<ns.A, ns.B>", "(named my.parameterized.Type (named ns.A) (named ns.B))"},
		{"null | string", "(union null string)"},
		{"(a?: number, ...b: string) => any", "(function (p1 (optional number)) (p2 (rest string)) (return any))"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := normalize.Normalize(parse(t, typeexpr.GrammarInline, tt.src))
			if d := typeast.Dump(got); d != tt.want {
				t.Fatalf("got %s, want %s", d, tt.want)
			}
		})
	}
}

func TestRoundTripSamples(t *testing.T) {
	samples := []string{
		"number", "a.b.C", "string[]", "Foo<Bar, Baz[]>", "null | (number | string)",
		"{a: number, 'b-c': string[]}", "(this: Foo, p1: number, p2?: string, ...p3: any) => void",
		"(() => number) | null", "Array<number | string>", "() => () => boolean",
		"(p1) => Map<string, {x: null}>",
	}
	for _, src := range samples {
		canonical := normalize.Normalize(parse(t, typeexpr.GrammarInline, src))
		assertRoundTrip(t, canonical)
	}
}

func assertRoundTrip(t *testing.T, canonical typeast.Type) {
	t.Helper()
	if !typeast.InlineRepresentable(canonical) {
		t.Fatalf("%s is not inline representable", typeast.Dump(canonical))
	}
	printed := typeast.Print(canonical)
	again := normalize.Normalize(parse(t, typeexpr.GrammarInline, printed))
	if !typeast.Equal(canonical, again) {
		t.Fatalf("round trip changed tree\n printed: %s\n before: %s\n after:  %s",
			printed, typeast.Dump(canonical), typeast.Dump(again))
	}
}

// gen builds random canonical trees; depth bounds the recursion.
type gen struct{ r *rand.Rand }

func (g gen) typ(depth int) typeast.Type {
	leaf := []func() typeast.Type{
		func() typeast.Type { return typeast.Any{} },
		func() typeast.Type { return typeast.Void{} },
		func() typeast.Type { return typeast.Null{} },
		func() typeast.Type { return typeast.Boolean{} },
		func() typeast.Type { return typeast.Number{} },
		func() typeast.Type { return typeast.String{} },
		func() typeast.Type { return &typeast.Named{Name: g.name()} },
	}
	if depth <= 0 || g.r.IntN(3) == 0 {
		return leaf[g.r.IntN(len(leaf))]()
	}
	switch g.r.IntN(4) {
	case 0:
		args := make([]typeast.Type, 1+g.r.IntN(2))
		for i := range args {
			args[i] = g.typ(depth - 1)
		}
		return &typeast.Named{Name: g.name(), Args: args}
	case 1:
		members := make([]typeast.Type, 2+g.r.IntN(2))
		for i := range members {
			members[i] = g.typ(depth - 1)
		}
		return &typeast.Union{Members: members}
	case 2:
		fields := make([]typeast.Field, g.r.IntN(3))
		for i := range fields {
			key := "f" + strconv.Itoa(i)
			if g.r.IntN(2) == 0 {
				key = "k-" + key
			}
			fields[i] = typeast.Field{Name: key, Type: g.typ(depth - 1)}
		}
		return &typeast.Record{Fields: fields}
	default:
		params := make([]typeast.Param, g.r.IntN(3))
		for i := range params {
			var pt typeast.Type = g.typ(depth - 1)
			switch {
			case i == len(params)-1 && g.r.IntN(3) == 0:
				pt = &typeast.Rest{Inner: pt}
			case g.r.IntN(3) == 0:
				pt = &typeast.Optional{Inner: pt}
			}
			params[i] = typeast.Param{Name: "p" + strconv.Itoa(i+1), Type: pt}
		}
		fn := &typeast.Function{Params: params, Return: g.typ(depth - 1)}
		if g.r.IntN(4) == 0 {
			fn.This = g.typ(depth - 1)
		}
		return fn
	}
}

func (g gen) name() typeast.QualifiedName {
	names := []string{"Foo", "Array", "ns.Bar", "a.b.C", "Map"}
	return typeast.ParseQualifiedName(names[g.r.IntN(len(names))])
}

func TestRoundTripGenerated(t *testing.T) {
	g := gen{r: rand.New(rand.NewPCG(1, 2))}
	for range 500 {
		ty := g.typ(4)
		if !typeast.InlineRepresentable(ty) {
			continue
		}
		assertRoundTrip(t, ty)
	}
}

func TestNormalizeConcurrent(t *testing.T) {
	n := parse(t, typeexpr.GrammarLegacy, "function(this:Foo, ?Array.<{a: string}>, ...number): !Bar")
	want := normalize.Normalize(n)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if !typeast.Equal(normalize.Normalize(n), want) {
					t.Error("non-deterministic result")
					return
				}
			}
		}()
	}
	wg.Wait()
}
