package diagfmt

import "typedjs/internal/source"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps short paths and shortens long absolute ones to the basename.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	Context     int8 // строк контекста до и после основной строки
	PathMode    PathMode
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if !fs.HasFile(id) {
		return "<unknown>"
	}
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// position renders `path:line:col` for the start of span.
func position(fs *source.FileSet, span source.Span, mode PathMode) string {
	path := formatPath(fs, span.File, mode)
	if !fs.HasFile(span.File) {
		return path
	}
	start, _ := fs.Resolve(span)
	return path + ":" + itoa(start.Line) + ":" + itoa(start.Col)
}
