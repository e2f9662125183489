// Package typeexpr holds the provisional tree produced by both annotation
// grammars and the parsers that build it.
//
// The legacy grammar lives inside JSDoc comments (`@type {?Array.<string>}`),
// the inline grammar follows a colon in declarations (`var x: string[]`).
// Both parsers work over a lexer.Stream, so they share one tokenizer with the
// program parser. Nodes are immutable once built and are consumed only by
// internal/normalize.
//
// Node is a closed set: every variant embeds the unexported marker, and
// consumers switch over the concrete types exhaustively.
package typeexpr
