package diag

import (
	"fmt"
	"strings"

	"typedjs/internal/source"
)

// FormatGoldenDiagnostics renders diagnostics in a stable single-line format:
// SEV CODE path:line:col message
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, d := range diags {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(formatLine(d.Severity.String(), d.Code.ID(), d.Primary, d.Message, fs))
		if includeNotes {
			for _, n := range d.Notes {
				sb.WriteByte('\n')
				sb.WriteString("  ")
				sb.WriteString(formatLine("NOTE", d.Code.ID(), n.Span, n.Msg, fs))
			}
		}
	}
	return sb.String()
}

func formatLine(sev, code string, sp source.Span, msg string, fs *source.FileSet) string {
	path := "<unknown>"
	line, col := uint32(0), uint32(0)
	if fs != nil && fs.HasFile(sp.File) {
		f := fs.Get(sp.File)
		path = f.Path
		if f.Flags&source.FileVirtual == 0 {
			path = f.FormatPath("relative", fs.BaseDir())
		}
		start, _ := fs.Resolve(sp)
		line, col = start.Line, start.Col
	}
	return fmt.Sprintf("%s %s %s:%d:%d %s", sev, code, path, line, col, msg)
}
