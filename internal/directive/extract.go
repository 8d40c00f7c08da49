package directive

import (
	"fmt"
	"regexp"
)

var directiveRe = regexp.MustCompile(`^// \$Expect(Type|Error) (.*)`)

// Extract scans the file and returns directive assertions in scan order.
//
// A directive that is the first token on its line applies to the next line,
// a trailing directive applies to its own line. Whitespace tokens never take
// part in the first-on-line decision.
func Extract(sc Scanner, lines LineMapper, opts Options) ([]Assertion, error) {
	var out []Assertion
	lastLine := -1
	for {
		tok := sc.Scan()
		if tok.Kind == TokenEOF {
			break
		}
		if tok.Kind == TokenWhitespace {
			continue
		}
		line, _ := lines.Position(tok.Offset)
		first := line != lastLine
		lastLine = line

		if tok.Kind != TokenComment {
			continue
		}
		m := directiveRe.FindStringSubmatch(tok.Text)
		if m == nil {
			continue
		}
		if first {
			line++
		}
		switch m[1] {
		case "Type":
			out = append(out, TypeAssertion{Line: line, Type: m[2]})
		case "Error":
			if !opts.AllowExpectError {
				return nil, fmt.Errorf("line %d: %w", line+1, ErrExpectErrorDisallowed)
			}
			out = append(out, ErrorAssertion{Line: line, Pattern: m[2]})
		}
	}
	return out, nil
}
