// Package diag defines the diagnostic model shared by the frontend adapters
// and the directive checker.
//
// A Diagnostic carries a Severity, a numeric Code with a stable textual ID,
// a message, a primary source.Span and optional notes. Frontends emit
// diagnostics through a Reporter (usually a BagReporter, optionally wrapped
// in a DedupReporter); the checker only reads them back from the Bag.
//
// Spans use source.NoSpan when a diagnostic has no location, for example a
// package listing error. Such diagnostics never match a directive line.
//
// The package does no formatting and no IO. Rendering lives in
// internal/reportfmt.
package diag
