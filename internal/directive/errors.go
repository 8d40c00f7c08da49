package directive

import (
	"errors"
	"strings"
)

// ErrExpectErrorDisallowed is returned by Extract when an $ExpectError
// directive is found while Options.AllowExpectError is off.
var ErrExpectErrorDisallowed = errors.New("found $ExpectError assertion but --allow-expect-error was not set")

// UnboundError reports assertions that no syntax node could be bound to.
type UnboundError struct {
	Assertions []Assertion
}

func (e *UnboundError) Error() string {
	var b strings.Builder
	b.WriteString("unable to attach nodes to all assertions:")
	for _, l := range e.Lines() {
		b.WriteString("\n\t")
		b.WriteString(l)
	}
	return b.String()
}

// Lines returns "<line+1>: $ExpectType T" entries in scan order.
func (e *UnboundError) Lines() []string {
	out := make([]string, 0, len(e.Assertions))
	for _, a := range e.Assertions {
		out = append(out, describe(a))
	}
	return out
}
