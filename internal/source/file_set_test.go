package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("a.tjs", []byte("class A {}"), 0)
	id2 := fs.Add("a.tjs", []byte("class B {}"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("a.tjs")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "class A {}" {
		t.Fatalf("old version lost: %q", got)
	}
	if !fs.HasFile(id2) || fs.HasFile(FileID(7)) {
		t.Fatalf("HasFile reports wrong membership")
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.tjs", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}},
		{3, LineCol{Line: 2, Col: 1}},
		{6, LineCol{Line: 3, Col: 1}},
		{8, LineCol{Line: 4, Col: 2}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x.tjs", []byte("first\nsecond\nthird")))

	if got := f.GetLine(2); got != "second" {
		t.Fatalf("line 2 = %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Fatalf("line 3 = %q", got)
	}
	if got := f.GetLine(9); got != "" {
		t.Fatalf("line 9 = %q, want empty", got)
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.tjs")
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("var a;\r\nvar b;\r\n")...)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "var a;\nvar b;\n" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
}

func TestSpanCoverAndText(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.tjs", []byte("this.mv = 1;"))
	a := Span{File: id, Start: 0, End: 4}
	b := Span{File: id, Start: 5, End: 7}

	c := a.Cover(b)
	if got := fs.Text(c); got != "this.mv" {
		t.Fatalf("Text(cover) = %q", got)
	}
	if !c.Contains(a) || !c.Contains(b) || a.Contains(c) {
		t.Fatalf("Contains misreports for %v", c)
	}
}
