// Package frontend adapts the Go toolchain front end (go/scanner, go/parser,
// go/types and optionally golang.org/x/tools/go/packages) to the capability
// set the directive checker consumes.
//
// Load produces a *Program for one analysed file. A Program is immutable
// after loading and is never shared between goroutines by the driver.
//
// Two loaders exist. The "source" loader parses the file itself (plus, in
// package mode, its sibling files selected by go/build constraints) and
// type-checks with the source importer. The "packages" loader asks the go
// command for the enclosing package, honouring modules, build tags and test
// variants, at the cost of running `go list`.
package frontend
