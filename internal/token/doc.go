// Package token defines lexical token kinds and trivia for typedjs sources.
// Invariants:
//   - Token.Text is a slice of the original source (no copies), except for
//     identifiers, which are NFC-normalized.
//   - Token.Span matches the source bytes exactly (Start..End).
//   - Comments never appear in the main token stream; they are leading Trivia.
//     A block comment opened with "/**" is a TriviaDocBlock and is the only
//     carrier of the legacy JSDoc annotation grammar.
//   - Contextual words (static, get, set, constructor, of, async) are
//     identifiers; the parser decides their role.
//   - '>>' and '>>>' are single tokens; the inline type parser splits them when
//     closing nested type arguments.
package token
