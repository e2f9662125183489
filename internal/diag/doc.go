// Package diag defines the diagnostic model shared by every typedjs phase.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced by the
//     lexer, the parsers of both annotation grammars, the annotation pass and the
//     class field hoisting pass.
//   - Offer light-weight utilities (Reporter, Bag) so producers emit diagnostics
//     without coupling to storage or formatting.
//
// # Scope
//
// Package diag performs no formatting or IO. Rendering lives in internal/diagfmt,
// orchestration in internal/driver.
//
// # Fatal versus recoverable
//
// Only user-facing problems become diagnostics. Internal-consistency failures
// (an unknown type expression kind reaching the normalizer, a class without a
// constructor reaching the hoisting pass) are pipeline contract breaches and panic
// at the point of detection instead of being reported here.
//
// # Emitting diagnostics
//
// Phases hold a diag.Reporter. ReportError/ReportWarning return a ReportBuilder
// that accepts notes and fixes before Emit. BagReporter collects into a Bag,
// which supports sorting, deduplication and merging.
package diag
