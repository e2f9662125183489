// Package fix builds fix suggestions for diagnostics and applies them to sources.
package fix

import (
	"typedjs/internal/diag"
	"typedjs/internal/source"
)

// InsertText inserts text at the start of at.
func InsertText(title string, at source.Span, text string) diag.Fix {
	at = at.ZeroideToStart()
	return diag.Fix{Title: title, Edits: []diag.FixEdit{{Span: at, NewText: text}}}
}

// DeleteSpan removes the bytes covered by span.
func DeleteSpan(title string, span source.Span) diag.Fix {
	return diag.Fix{Title: title, Edits: []diag.FixEdit{{Span: span}}}
}

// ReplaceSpan replaces the bytes covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText string) diag.Fix {
	return diag.Fix{Title: title, Edits: []diag.FixEdit{{Span: span, NewText: newText}}}
}

// WrapWith surrounds span with prefix and suffix.
func WrapWith(title string, span source.Span, prefix, suffix string) diag.Fix {
	return diag.Fix{Title: title, Edits: []diag.FixEdit{
		{Span: span.ZeroideToStart(), NewText: prefix},
		{Span: span.ZeroideToEnd(), NewText: suffix},
	}}
}
