package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file searched for from the input path upwards.
const ManifestName = "typedjs.toml"

type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Project     ProjectConfig     `toml:"project"`
	Desugar     DesugarConfig     `toml:"desugar"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Build       BuildConfig       `toml:"build"`
}

type ProjectConfig struct {
	Name string `toml:"name"`
}

type DesugarConfig struct {
	PreserveTypes  bool `toml:"preserve_types"`
	SynthesizeCtor bool `toml:"synthesize_ctor"`
	KeepDocs       bool `toml:"keep_docs"`
}

type DiagnosticsConfig struct {
	Max int `toml:"max"`
}

type BuildConfig struct {
	Jobs   int    `toml:"jobs"` // 0 = GOMAXPROCS
	OutDir string `toml:"out_dir"`
	Cache  bool   `toml:"cache"`
}

// Default is the configuration used without a manifest.
func Default() Config {
	return Config{
		Desugar:     DesugarConfig{SynthesizeCtor: true, KeepDocs: true},
		Diagnostics: DiagnosticsConfig{Max: 100},
		Build:       BuildConfig{OutDir: "out"},
	}
}

// FindManifest walks up from startDir to locate typedjs.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadFrom finds and loads the manifest governing startDir.
func LoadFrom(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// Load parses a manifest. Keys left out keep their Default values.
func Load(path string) (*Manifest, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return nil, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return nil, fmt.Errorf("%s: missing [project].name", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Build.Jobs < 0 {
		return nil, fmt.Errorf("%s: [build].jobs must not be negative", path)
	}
	if cfg.Diagnostics.Max < 0 {
		return nil, fmt.Errorf("%s: [diagnostics].max must not be negative", path)
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// OutDir resolves [build].out_dir against the manifest root.
func (m *Manifest) OutDir() string {
	if filepath.IsAbs(m.Config.Build.OutDir) {
		return m.Config.Build.OutDir
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.OutDir))
}

// Init writes a default manifest into dir. An existing manifest is left alone.
func Init(dir, name string) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	if strings.TrimSpace(name) == "" {
		name = filepath.Base(dir)
	}
	cfg := Default()
	cfg.Project.Name = name

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close() //nolint:errcheck
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, f.Close()
}
