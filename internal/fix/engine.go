package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"typedjs/internal/diag"
	"typedjs/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Title     string
	Code      diag.Code
	Path      string
	EditCount int
}

// SkippedFix captures a fix that was not applied, with a reason.
type SkippedFix struct {
	Title  string
	Reason string
}

// FileChange is the new content of one modified file.
type FileChange struct {
	Path      string
	Content   []byte
	EditCount int
}

type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	file  source.FileID
	order int
}

// Apply takes the first fix of every diagnostic and applies them in memory.
// A fix whose edits overlap an earlier accepted fix is skipped; fixes
// spanning several files are skipped as well.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	var cands []candidate
	for _, d := range diagnostics {
		if len(d.Fixes) == 0 {
			continue
		}
		f := d.Fixes[0]
		if len(f.Edits) == 0 {
			result.Skipped = append(result.Skipped, SkippedFix{Title: f.Title, Reason: "fix has no edits"})
			continue
		}
		file := f.Edits[0].Span.File
		sameFile := true
		for _, e := range f.Edits[1:] {
			sameFile = sameFile && e.Span.File == file
		}
		if !sameFile || !fs.HasFile(file) {
			result.Skipped = append(result.Skipped, SkippedFix{Title: f.Title, Reason: "edits span several files"})
			continue
		}
		cands = append(cands, candidate{diag: d, fix: f, file: file, order: len(cands)})
	}
	if len(cands) == 0 {
		return result, ErrNoFixes
	}

	byFile := make(map[source.FileID][]candidate)
	var files []source.FileID
	for _, c := range cands {
		if _, ok := byFile[c.file]; !ok {
			files = append(files, c.file)
		}
		byFile[c.file] = append(byFile[c.file], c)
	}
	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	for _, id := range files {
		file := fs.Get(id)
		var accepted []diag.FixEdit
		for _, c := range byFile[id] {
			if overlapsAny(c.fix.Edits, accepted) {
				result.Skipped = append(result.Skipped, SkippedFix{Title: c.fix.Title, Reason: "conflicts with an earlier fix"})
				continue
			}
			accepted = append(accepted, c.fix.Edits...)
			result.Applied = append(result.Applied, AppliedFix{
				Title: c.fix.Title, Code: c.diag.Code, Path: file.Path, EditCount: len(c.fix.Edits),
			})
		}
		if len(accepted) == 0 {
			continue
		}
		content, err := applyEdits(file.Content, accepted)
		if err != nil {
			return result, fmt.Errorf("fix: %s: %w", file.Path, err)
		}
		result.FileChanges = append(result.FileChanges, FileChange{Path: file.Path, Content: content, EditCount: len(accepted)})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

func overlapsAny(edits, accepted []diag.FixEdit) bool {
	for _, e := range edits {
		for _, a := range accepted {
			// две вставки в одну точку тоже конфликтуют
			if (e.Span.Start < a.Span.End && a.Span.Start < e.Span.End) || e.Span.Start == a.Span.Start {
				return true
			}
		}
	}
	return false
}

// applyEdits applies non-overlapping edits back to front.
func applyEdits(content []byte, edits []diag.FixEdit) ([]byte, error) {
	sorted := append([]diag.FixEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Span.Start > sorted[j].Span.Start })
	out := append([]byte(nil), content...)
	for _, e := range sorted {
		if int(e.Span.End) > len(out) || e.Span.Start > e.Span.End {
			return nil, fmt.Errorf("edit %v out of range", e.Span)
		}
		tail := append([]byte(e.NewText), out[e.Span.End:]...)
		out = append(out[:e.Span.Start], tail...)
	}
	return out, nil
}

// WriteChanges writes every changed file in place, keeping its mode.
func WriteChanges(changes []FileChange) error {
	for _, ch := range changes {
		mode := os.FileMode(0o644)
		if st, err := os.Stat(ch.Path); err == nil {
			mode = st.Mode().Perm()
		}
		if err := os.WriteFile(ch.Path, ch.Content, mode); err != nil {
			return err
		}
	}
	return nil
}
