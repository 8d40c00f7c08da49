package directive

import (
	"fmt"
	"sort"
	"strings"

	"typings/internal/diag"
	"typings/internal/source"
)

// NoLine marks a failure whose diagnostic has no line in the analysed file.
const NoLine = -1

type FailureKind uint8

const (
	KindWrongType FailureKind = iota + 1
	KindUnexpectedError
	KindWrongError
	KindMissingError
)

func (k FailureKind) String() string {
	switch k {
	case KindWrongType:
		return "WRONG_TYPE"
	case KindUnexpectedError:
		return "UNEXPECTED_ERROR"
	case KindWrongError:
		return "WRONG_ERROR"
	case KindMissingError:
		return "MISSING_ERROR"
	}
	return "UNKNOWN"
}

// Failure is one reportable mismatch. The four variants below are the only
// implementations.
type Failure interface {
	TargetLine() int
	Kind() FailureKind
	// NodeText is the source text of the bound node, empty for unexpected errors.
	NodeText() string
	// Describe renders the failure message without location.
	Describe() string
	isFailure()
}

type WrongTypeFailure struct {
	Line     int
	Code     string
	Expected string
	Actual   string
}

type UnexpectedErrorFailure struct {
	Line int
	Got  string
}

type WrongErrorFailure struct {
	Line    int
	Code    string
	Pattern string
	Got     string
}

type MissingErrorFailure struct {
	Line    int
	Code    string
	Pattern string
}

func (f WrongTypeFailure) TargetLine() int       { return f.Line }
func (f UnexpectedErrorFailure) TargetLine() int { return f.Line }
func (f WrongErrorFailure) TargetLine() int      { return f.Line }
func (f MissingErrorFailure) TargetLine() int    { return f.Line }

func (WrongTypeFailure) Kind() FailureKind       { return KindWrongType }
func (UnexpectedErrorFailure) Kind() FailureKind { return KindUnexpectedError }
func (WrongErrorFailure) Kind() FailureKind      { return KindWrongError }
func (MissingErrorFailure) Kind() FailureKind    { return KindMissingError }

func (f WrongTypeFailure) NodeText() string     { return f.Code }
func (UnexpectedErrorFailure) NodeText() string { return "" }
func (f WrongErrorFailure) NodeText() string    { return f.Code }
func (f MissingErrorFailure) NodeText() string  { return f.Code }

func (f WrongTypeFailure) Describe() string {
	return fmt.Sprintf("Expected type\n  %s\nbut got:\n  %s", f.Expected, f.Actual)
}

func (f UnexpectedErrorFailure) Describe() string {
	return "Unexpected error\n  " + f.Got
}

func (f WrongErrorFailure) Describe() string {
	return fmt.Sprintf("Expected error\n  %s\nbut got:\n  %s", f.Pattern, f.Got)
}

func (f MissingErrorFailure) Describe() string {
	return "Expected error " + f.Pattern
}

func (WrongTypeFailure) isFailure()       {}
func (UnexpectedErrorFailure) isFailure() {}
func (WrongErrorFailure) isFailure()      {}
func (MissingErrorFailure) isFailure()    {}

// Report is the classified outcome of checking one file.
type Report struct {
	Successes int
	Failures  []Failure
}

func (r Report) Total() int   { return r.Successes + len(r.Failures) }
func (r Report) Passed() bool { return len(r.Failures) == 0 }

// diagLine resolves the zero-based line of d, or NoLine when d has no
// position inside file.
func diagLine(d *diag.Diagnostic, file source.FileID, lines LineMapper) int {
	if !d.Primary.IsValid() || d.Primary.File != file {
		return NoLine
	}
	line, _ := lines.Position(int(d.Primary.Start))
	return line
}

// Reconcile classifies bound assertions against the frontend diagnostics.
//
// Each diagnostic goes to the first bound assertion on its line, a later
// diagnostic on the same line replacing an earlier one. Diagnostics on lines
// without an assertion become unexpected errors. Error assertions then match
// by case-sensitive substring of the flattened message, type assertions by
// exact equality of the formatted type. Failures are stable-sorted by line.
func Reconcile[N, T any](bound []Bound[N, T], diags []diag.Diagnostic, file source.FileID, lines LineMapper, oracle TypeOracle[N, T], opts Options) Report {
	var rep Report

	for i := range diags {
		d := &diags[i]
		line := diagLine(d, file, lines)
		idx := -1
		if line != NoLine {
			for j := range bound {
				if bound[j].Assertion.TargetLine() == line {
					idx = j
					break
				}
			}
		}
		if idx < 0 {
			rep.Failures = append(rep.Failures, UnexpectedErrorFailure{Line: line, Got: d.Flatten()})
			continue
		}
		bound[idx].Diag = d
		if _, isType := bound[idx].Assertion.(TypeAssertion); isType && opts.StrictTypeLines {
			rep.Failures = append(rep.Failures, UnexpectedErrorFailure{Line: line, Got: d.Flatten()})
		}
	}

	for i := range bound {
		b := &bound[i]
		switch a := b.Assertion.(type) {
		case ErrorAssertion:
			switch {
			case b.Diag == nil:
				rep.Failures = append(rep.Failures, MissingErrorFailure{Line: a.Line, Code: b.Code, Pattern: a.Pattern})
			case !strings.Contains(b.Diag.Flatten(), a.Pattern):
				rep.Failures = append(rep.Failures, WrongErrorFailure{
					Line: a.Line, Code: b.Code, Pattern: a.Pattern, Got: b.Diag.Flatten(),
				})
			default:
				rep.Successes++
			}
		case TypeAssertion:
			actual := oracle.TypeString(b.Type)
			if actual != a.Type {
				rep.Failures = append(rep.Failures, WrongTypeFailure{
					Line: a.Line, Code: b.Code, Expected: a.Type, Actual: actual,
				})
				continue
			}
			rep.Successes++
		}
	}

	sort.SliceStable(rep.Failures, func(i, j int) bool {
		return rep.Failures[i].TargetLine() < rep.Failures[j].TargetLine()
	})
	return rep
}
