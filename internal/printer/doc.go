// Package printer renders a program AST back to JavaScript.
//
// Output is canonical rather than faithful: two-space indentation, one
// statement per line, single-quoted strings where the content allows it,
// and parentheses only where precedence needs them (plus those the author
// wrote). Comments other than JSDoc blocks are dropped.
//
// With Options.PreserveTypes the canonical types recorded by the annotate
// pass are re-emitted in the inline syntax; types that have no inline
// spelling are left out.
package printer
