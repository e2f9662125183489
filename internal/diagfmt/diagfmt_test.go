package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"typedjs/internal/diag"
	"typedjs/internal/source"
)

func fieldBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	content := []byte("var x = 1;\nf(class { static s = 1; });\n")
	id := fs.AddVirtual("/home/user/project/src/field.tjs", content)
	fs.SetBaseDir("/home/user/project")
	bag := diag.NewBag(10)
	d := diag.NewError(diag.CnvCannotConvertFields, source.Span{File: id, Start: 13, End: 18},
		"cannot convert field").
		WithNote(source.Span{File: id, Start: 21, End: 27}, "static field declared here")
	bag.Add(d)
	return bag, fs
}

func TestPathModes(t *testing.T) {
	bag, fs := fieldBag(t)
	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/field.tjs:2:3"},
		{"relative", PathModeRelative, "src/field.tjs:2:3"},
		{"basename", PathModeBasename, "field.tjs:2:3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Fatalf("expected %q in:\n%s", tt.contains, out)
			}
			if !strings.Contains(out, "ERROR CNV4001: cannot convert field") {
				t.Fatalf("missing header in:\n%s", out)
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	bag, fs := fieldBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename, ShowNotes: true})
	want := "field.tjs:2:3: ERROR CNV4001: cannot convert field\n" +
		"1 | var x = 1;\n" +
		"2 | f(class { static s = 1; });\n" +
		"  |   ^~~~~\n" +
		"3 | \n" +
		"  note: field.tjs:2:11: static field declared here\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestPrettyWithoutNotes(t *testing.T) {
	bag, fs := fieldBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes must be hidden:\n%s", buf.String())
	}
}

func TestPrettyFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("example.tjs", []byte("var a = 42 // missing semicolon"))
	bag := diag.NewBag(2)
	at := source.Span{File: id, Start: 10, End: 10}
	bag.Add(diag.New(diag.SevWarning, diag.SynExpectSemicolon, at, "missing semicolon").
		WithFix("insert semicolon", diag.FixEdit{Span: at, NewText: ";"}))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowFixes: true, ShowPreview: true})
	out := buf.String()
	for _, want := range []string{
		"WARNING SYN",
		"fix #1: insert semicolon",
		`apply=";"`,
		"preview:",
		"- var a = 42 // missing semicolon",
		"+ var a = 42; // missing semicolon",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestShort(t *testing.T) {
	bag, fs := fieldBag(t)
	var buf bytes.Buffer
	Short(&buf, bag, fs, PathModeBasename)
	if got, want := buf.String(), "field.tjs:2:3: error CNV4001: cannot convert field\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestJSON(t *testing.T) {
	bag, fs := fieldBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "CNV4001" || d.Severity != "ERROR" || d.Title != "Cannot convert field" {
		t.Fatalf("diagnostic = %+v", d)
	}
	if d.Location.File != "field.tjs" || d.Location.StartLine != 2 || d.Location.StartCol != 3 {
		t.Fatalf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.StartCol != 11 {
		t.Fatalf("notes = %+v", d.Notes)
	}
}

func TestJSONMax(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.tjs", []byte("abc"))
	bag := diag.NewBag(0)
	for range 3 {
		bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: 0, End: 1}, "x"))
	}
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || out.Diagnostics[0].Location.StartLine != 0 {
		t.Fatalf("out = %+v", out)
	}
}
