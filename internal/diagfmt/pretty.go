package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"typedjs/internal/diag"
	"typedjs/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, path      *color.Color
	gutter, caret   *color.Color
	note, fix       *color.Color
	added, removed  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		code:    color.New(color.Bold),
		path:    color.New(color.FgWhite, color.Bold),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgGreen, color.Bold),
		note:    color.New(color.FgCyan),
		fix:     color.New(color.FgMagenta),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note, p.fix, p.added, p.removed} {
		// глобальный color.NoColor смотрит на stdout; здесь решает вызывающий
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строки контекста с подчёркиванием ^~~~ по Span, затем заметки и исправления.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.path.Sprint(position(fs, d.Primary, opts.PathMode)),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message)
		writeSnippet(w, fs, d.Primary, int(opts.Context), p)

		// тайминги без заметок бессмысленны
		if opts.ShowNotes || d.Code == diag.ObsTimings {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), position(fs, n.Span, opts.PathMode), n.Msg)
			}
		}
		if opts.ShowFixes {
			writeFixes(w, fs, d.Fixes, opts, p)
		}
	}
}

// Short prints one line per diagnostic.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s: %s %s: %s\n", position(fs, d.Primary, mode),
			strings.ToLower(d.Severity.String()), d.Code.ID(), d.Message)
	}
}

func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, context int, p palette) {
	if !fs.HasFile(span.File) {
		return
	}
	f := fs.Get(span.File)
	if len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)
	first := max(int(start.Line)-context, 1)
	last := min(int(start.Line)+context, len(f.LineIdx)+1)
	gutterWidth := len(strconv.Itoa(last))

	for n := first; n <= last; n++ {
		line := f.GetLine(uint32(n)) //nolint:gosec // n <= число строк
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, n), line)
		if n != int(start.Line) {
			continue
		}
		col := min(int(start.Col)-1, len(line))
		stop := len(line)
		if end.Line == start.Line {
			stop = min(int(end.Col)-1, len(line))
		}
		width := 1
		if stop > col {
			width = max(runewidth.StringWidth(line[col:stop]), 1)
		}
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), padding(line[:col]), p.caret.Sprint(marker))
	}
}

// padding повторяет ширину prefix пробелами, сохраняя табы.
func padding(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func writeFixes(w io.Writer, fs *source.FileSet, fixes []diag.Fix, opts PrettyOpts, p palette) {
	for i, fix := range fixes {
		fmt.Fprintf(w, "  %s %s\n", p.fix.Sprintf("fix #%d:", i+1), fix.Title)
		for _, edit := range fix.Edits {
			fmt.Fprintf(w, "    edit %s apply=%q\n", position(fs, edit.Span, opts.PathMode), edit.NewText)
			if !opts.ShowPreview {
				continue
			}
			preview, err := buildFixEditPreview(fs, edit)
			if err != nil {
				continue
			}
			fmt.Fprintln(w, "    preview:")
			for _, l := range preview.before {
				fmt.Fprintf(w, "      %s\n", p.removed.Sprint("- "+l))
			}
			for _, l := range preview.after {
				fmt.Fprintf(w, "      %s\n", p.added.Sprint("+ "+l))
			}
		}
	}
}

func itoa(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
