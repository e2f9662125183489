package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputPath maps a source path under srcRoot to its location under outDir:
// `a/b.tjs` and `a/b.ts.js` become `a/b.js`.
func OutputPath(srcRoot, outDir, path string) (string, error) {
	rel, err := filepath.Rel(srcRoot, path)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside %s", path, srcRoot)
	}
	for _, ext := range SourceExts {
		if trimmed, ok := strings.CutSuffix(rel, ext); ok {
			rel = trimmed + ".js"
			break
		}
	}
	return filepath.Join(outDir, rel), nil
}

// WriteOutputs writes every result that produced output and returns how
// many files were written.
func WriteOutputs(results []*Result, srcRoot, outDir string) (int, error) {
	n := 0
	for _, r := range results {
		if r == nil || r.Output == nil {
			continue
		}
		dst, err := OutputPath(srcRoot, outDir, r.Path)
		if err != nil {
			return n, err
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return n, err
		}
		if err := os.WriteFile(dst, r.Output, 0o644); err != nil { //nolint:gosec
			return n, err
		}
		n++
	}
	return n, nil
}
