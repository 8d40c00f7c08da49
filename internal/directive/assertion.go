package directive

import "fmt"

// Assertion is an expectation parsed from a directive comment.
// Implemented by TypeAssertion and ErrorAssertion only.
type Assertion interface {
	// TargetLine is the zero-based line the assertion applies to.
	TargetLine() int
	String() string
	isAssertion()
}

// TypeAssertion expects the node on Line to have the exact type text Type.
type TypeAssertion struct {
	Line int
	Type string
}

// ErrorAssertion expects a diagnostic on Line whose message contains Pattern.
type ErrorAssertion struct {
	Line    int
	Pattern string
}

func (a TypeAssertion) TargetLine() int  { return a.Line }
func (a ErrorAssertion) TargetLine() int { return a.Line }

func (a TypeAssertion) String() string  { return "$ExpectType " + a.Type }
func (a ErrorAssertion) String() string { return "$ExpectError " + a.Pattern }

func (TypeAssertion) isAssertion()  {}
func (ErrorAssertion) isAssertion() {}

// describe renders an assertion the way fatal errors list them: "<line+1>: $ExpectType T".
func describe(a Assertion) string {
	return fmt.Sprintf("%d: %s", a.TargetLine()+1, a.String())
}
