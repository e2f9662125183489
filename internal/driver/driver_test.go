package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"typedjs/internal/diag"
	"typedjs/internal/project"
	"typedjs/internal/trace"
	"typedjs/internal/typeast"
	"typedjs/internal/typeexpr"
)

func defaultOptions() Options {
	return OptionsFromConfig(project.Default())
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func TestDesugarSource(t *testing.T) {
	src := "class C {\n  mv: number;\n  mv2: number = 1;\n  static smv = 3;\n  constructor() { this.f = 1; }\n}\n"
	res, err := DesugarSource(context.Background(), "c.tjs", []byte(src), defaultOptions())
	if err != nil {
		t.Fatalf("DesugarSource: %v", err)
	}
	want := "class C {\n  constructor() {\n    this.mv;\n    this.mv2 = 1;\n    this.f = 1;\n  }\n}\nC.smv = 3;\n"
	if string(res.Output) != want {
		t.Fatalf("got:\n%s\nwant:\n%s", res.Output, want)
	}
	if res.Stats.Fields != 3 || res.Stats.Classes != 1 || res.Stats.Sites != 2 || res.Stats.Changes != 6 {
		t.Fatalf("stats = %+v", res.Stats)
	}
	if res.Timing == nil || len(res.Timing.Phases) != 5 {
		t.Fatalf("timing = %+v", res.Timing)
	}
}

func TestDesugarStopsOnErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"parse error", "var = 1;", diag.SynExpectIdentifier},
		{"syntax conflict", "/** @type {string} */\nvar x: number = 1;", diag.SynTypeSyntaxConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := DesugarSource(context.Background(), "e.tjs", []byte(tt.src), defaultOptions())
			if err != nil {
				t.Fatalf("DesugarSource: %v", err)
			}
			if res.Output != nil {
				t.Fatalf("expected no output, got %q", res.Output)
			}
			if res.Bag.Count(tt.code) == 0 {
				t.Fatalf("missing %s:\n%s", tt.code.ID(), diag.FormatGoldenDiagnostics(res.Bag.Items(), res.FileSet, false))
			}
		})
	}
}

func TestDesugarKeepsOutputOnHoistFailure(t *testing.T) {
	res, err := DesugarSource(context.Background(), "f.tjs", []byte("f(class { static s = 1; });"), defaultOptions())
	if err != nil {
		t.Fatalf("DesugarSource: %v", err)
	}
	if res.Bag.Count(diag.CnvCannotConvertFields) != 1 || res.Output == nil {
		t.Fatalf("bag=%d output=%q", res.Bag.Len(), res.Output)
	}
	if res.Stats.Failed != 1 {
		t.Fatalf("stats = %+v", res.Stats)
	}
}

func TestSynthesizeCtorOff(t *testing.T) {
	opts := defaultOptions()
	opts.SynthesizeCtor = false
	res, err := DesugarSource(context.Background(), "g.tjs", []byte("class A {}\nclass B { x = 1; }"), opts)
	if err != nil {
		t.Fatalf("DesugarSource: %v", err)
	}
	want := "class A {}\nclass B {\n  constructor() {\n    this.x = 1;\n  }\n}\n"
	if string(res.Output) != want || res.Stats.Ctors != 1 {
		t.Fatalf("ctors=%d got:\n%s", res.Stats.Ctors, res.Output)
	}
}

func TestTimingsDiagnostic(t *testing.T) {
	opts := defaultOptions()
	opts.Timings = true
	res, err := DesugarSource(context.Background(), "t.tjs", []byte("var a = 1;"), opts)
	if err != nil {
		t.Fatalf("DesugarSource: %v", err)
	}
	if res.Bag.Count(diag.ObsTimings) != 1 {
		t.Fatalf("expected a timings diagnostic")
	}
	note := res.Bag.Items()[0].Notes[0].Msg
	if !strings.Contains(note, `"phases"`) || !strings.Contains(note, `"parse"`) {
		t.Fatalf("note = %s", note)
	}
}

func TestDesugarDir(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.tjs":             "class B { static s = 1; }",
		"a.ts.js":           "var a = 1;",
		"sub/c.js":          "f(class { x = 1; });",
		"node_modules/x.js": "var skipped = 1;",
		".hidden/y.tjs":     "var skipped = 1;",
		"notes.txt":         "not a source",
	})
	opts := defaultOptions()
	opts.Jobs = 2
	var (
		mu   sync.Mutex
		seen = map[int]bool{}
	)
	opts.Progress = func(ev FileEvent) {
		mu.Lock()
		defer mu.Unlock()
		seen[ev.Index] = true
		if ev.Total != 3 {
			t.Errorf("total = %d", ev.Total)
		}
	}
	_, results, err := DesugarDir(context.Background(), root, opts)
	if err != nil {
		t.Fatalf("DesugarDir: %v", err)
	}
	if len(results) != 3 || len(seen) != 3 {
		t.Fatalf("results=%d progress=%d", len(results), len(seen))
	}
	var names []string
	for _, r := range results {
		names = append(names, filepath.Base(r.Path))
	}
	if got := strings.Join(names, ","); got != "a.ts.js,b.tjs,c.js" {
		t.Fatalf("order = %s", got)
	}
	stats, errs, _ := Summary(results)
	if stats.Fields != 1 || stats.Failed != 1 || errs != 1 {
		t.Fatalf("summary: stats=%+v errors=%d", stats, errs)
	}

	out := filepath.Join(t.TempDir(), "out")
	n, err := WriteOutputs(results, root, out)
	if err != nil || n != 3 {
		t.Fatalf("WriteOutputs: n=%d err=%v", n, err)
	}
	data, err := os.ReadFile(filepath.Join(out, "b.js"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if want := "class B {\n  constructor() {}\n}\nB.s = 1;\n"; string(data) != want {
		t.Fatalf("b.js:\n%s", data)
	}
	if _, err := os.Stat(filepath.Join(out, "sub", "c.js")); err != nil {
		t.Fatalf("sub/c.js missing: %v", err)
	}
}

func TestDiskCache(t *testing.T) {
	root := writeTree(t, map[string]string{"a.tjs": "f(class { static s = 1; });\nclass K { x = 1; }"})
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	opts := defaultOptions()
	opts.Cache = cache
	path := filepath.Join(root, "a.tjs")

	first, err := DesugarFile(context.Background(), path, opts)
	if err != nil || first.Cached {
		t.Fatalf("first run: cached=%v err=%v", first != nil && first.Cached, err)
	}
	second, err := DesugarFile(context.Background(), path, opts)
	if err != nil || !second.Cached {
		t.Fatalf("second run must hit the cache: err=%v", err)
	}
	if string(second.Output) != string(first.Output) || second.Stats != first.Stats {
		t.Fatalf("cached result differs")
	}
	a, b := first.Bag.Items()[0], second.Bag.Items()[0]
	if a.Code != b.Code || a.Primary != b.Primary || a.Message != b.Message {
		t.Fatalf("diagnostic differs: %+v vs %+v", a, b)
	}

	opts.Print.PreserveTypes = true
	third, err := DesugarFile(context.Background(), path, opts)
	if err != nil || third.Cached {
		t.Fatalf("changed options must miss the cache")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	opts.Print.PreserveTypes = false
	fourth, err := DesugarFile(context.Background(), path, opts)
	if err != nil || fourth.Cached {
		t.Fatalf("dropped cache must miss")
	}
}

func TestDesugarFileMissing(t *testing.T) {
	if _, err := DesugarFile(context.Background(), filepath.Join(t.TempDir(), "nope.tjs"), defaultOptions()); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := DesugarSource(ctx, "x.tjs", []byte("var a;"), defaultOptions()); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestTracedRun(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := DesugarSource(ctx, "tr.tjs", []byte("class C { x = 1; }"), defaultOptions()); err != nil {
		t.Fatalf("DesugarSource: %v", err)
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind != trace.KindSpanEnd {
			names = append(names, ev.Name)
		}
	}
	got := strings.Join(names, " ")
	want := "file:tr.tjs parse annotate ctor hoist hoist:C print"
	if got != want {
		t.Fatalf("events = %q, want %q", got, want)
	}
}

func TestNormalizeText(t *testing.T) {
	res := NormalizeText("Array.<?string>", typeexpr.GrammarLegacy, 10)
	want := &typeast.Named{
		Name: typeast.QualifiedName{"Array"},
		Args: []typeast.Type{&typeast.Union{Members: []typeast.Type{typeast.Null{}, typeast.String{}}}},
	}
	if res.Type == nil || !typeast.Equal(res.Type, want) {
		t.Fatalf("got %v", res.Type)
	}
	bad := NormalizeText("Array<", typeexpr.GrammarInline, 10)
	if bad.Type != nil || !bad.Bag.HasErrors() {
		t.Fatalf("malformed input must fail with diagnostics")
	}
}

func TestOutputPath(t *testing.T) {
	cases := map[string]string{
		"src/a.tjs":     "out/a.js",
		"src/b/c.ts.js": "out/b/c.js",
		"src/d.js":      "out/d.js",
	}
	for in, want := range cases {
		got, err := OutputPath("src", "out", filepath.FromSlash(in))
		if err != nil || got != filepath.FromSlash(want) {
			t.Fatalf("OutputPath(%s) = %s, %v", in, got, err)
		}
	}
	if _, err := OutputPath("src", "out", "other/a.tjs"); err == nil {
		t.Fatalf("expected error for path outside root")
	}
}
