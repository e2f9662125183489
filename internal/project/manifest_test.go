package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadFromWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[project]
name = "demo"

[desugar]
preserve_types = true

[build]
jobs = 3
out_dir = "dist"
`)
	nested := filepath.Join(root, "src", "lib")
	writeFile(t, filepath.Join(nested, "a.tjs"), "var a = 1;")

	m, ok, err := LoadFrom(filepath.Join(nested, "a.tjs"))
	if err != nil || !ok {
		t.Fatalf("LoadFrom: ok=%v err=%v", ok, err)
	}
	cfg := m.Config
	if cfg.Project.Name != "demo" || !cfg.Desugar.PreserveTypes || cfg.Build.Jobs != 3 {
		t.Fatalf("config = %+v", cfg)
	}
	// не заданные ключи сохраняют значения по умолчанию
	if !cfg.Desugar.SynthesizeCtor || cfg.Diagnostics.Max != 100 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if want := filepath.Join(root, "dist"); m.OutDir() != want {
		t.Fatalf("OutDir = %q, want %q", m.OutDir(), want)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no project", "[build]\njobs = 1\n", "missing [project]"},
		{"no name", "[project]\nname = \"  \"\n", "missing [project].name"},
		{"unknown key", "[project]\nname = \"x\"\n[desugar]\nhoist = true\n", "unknown keys: desugar.hoist"},
		{"negative jobs", "[project]\nname = \"x\"\n[build]\njobs = -1\n", "jobs must not be negative"},
		{"bad toml", "[project\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestInitRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path, err := Init(dir, "app")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Config != func() Config { c := Default(); c.Project.Name = "app"; return c }() {
		t.Fatalf("config = %+v", m.Config)
	}
	if _, err := Init(dir, "app"); err == nil {
		t.Fatalf("second Init must fail")
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	var base Digest
	a := Combine(base, []byte("a"), []byte("b"))
	b := Combine(base, []byte("b"), []byte("a"))
	if a == b {
		t.Fatalf("Combine must depend on part order")
	}
	if a != Combine(base, []byte("a"), []byte("b")) {
		t.Fatalf("Combine must be deterministic")
	}
}
