// Package directive checks inline assertion comments against what a
// frontend reports for a single file.
//
// Two directive forms are recognised in line comments:
//
//	// $ExpectType <type text>
//	// $ExpectError <message substring>
//
// A directive alone on its line applies to the next line; a directive
// trailing code applies to its own line.
//
// Check runs three stages. Extract scans comment tokens into assertions.
// Bind walks the syntax tree and attaches each assertion to the first node
// that starts on its target line. Reconcile matches frontend diagnostics and
// inferred types against the bound assertions and builds a Report.
//
// The package knows nothing about Go syntax: the Frontend interface supplies
// tokens, the tree, types and diagnostics. See internal/frontend for the Go
// implementation.
package directive
