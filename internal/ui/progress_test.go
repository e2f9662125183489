package ui

import (
	"strings"
	"testing"

	"typedjs/internal/diag"
	"typedjs/internal/driver"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	events := make(chan driver.FileEvent)
	m := NewProgressModel("desugar", []string{"a.tjs", "b.tjs", "c.tjs"}, events).(*progressModel)

	m.Update(eventMsg{Index: 1, Total: 3, Result: &driver.Result{
		Output: []byte("x"), Bag: diag.NewBag(0), Stats: driver.Stats{Fields: 2, Failed: 1},
	}})
	m.Update(eventMsg{Index: 2, Total: 3, Result: &driver.Result{Bag: diag.NewBag(0)}})

	if m.finished != 2 || m.fields != 2 {
		t.Fatalf("finished=%d fields=%d", m.finished, m.fields)
	}
	want := []status{statusQueued, statusWarn, statusError}
	for i, item := range m.items {
		if item.status != want[i] {
			t.Fatalf("item %d: status %s, want %s", i, item.status, want[i])
		}
	}
	view := m.View()
	for _, s := range []string{"(2/3 files, 2 fields)", "partial", "1 classes not converted", "error"} {
		if !strings.Contains(view, s) {
			t.Fatalf("view misses %q:\n%s", s, view)
		}
	}

	m.Update(doneMsg{})
	if !m.done || !strings.Contains(m.View(), "done: desugar") {
		t.Fatalf("model must finish on doneMsg:\n%s", m.View())
	}
}

func TestProgressModelIgnoresUnknownIndex(t *testing.T) {
	m := NewProgressModel("x", []string{"a.tjs"}, nil).(*progressModel)
	if cmd := m.applyEvent(driver.FileEvent{Index: 5, Result: &driver.Result{}}); cmd != nil || m.finished != 0 {
		t.Fatalf("out of range event must be ignored")
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"averyveryverylongpath.tjs", 10, "averyve..."},
		{"abcdef", 3, "abc"},
		{"путь/к/файлу.tjs", 8, "путь/..."},
	}
	for _, c := range cases {
		if got := truncate(c.in, c.width); got != c.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", c.in, c.width, got, c.want)
		}
	}
}
