// Package testkit holds invariant checks shared by frontend tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"typings/internal/directive"
)

// maxDepth bounds the tree walk so a cyclic tree fails instead of hanging.
const maxDepth = 10_000

// CheckTree verifies a frontend tree over content of size bytes:
//  1. every node starts within [0, size], or at -1 when it has no position
//  2. a child never starts before its parent (nodes without a position are
//     exempt)
//  3. FirstChild agrees with the first node ForEachChild yields
//  4. Text never reaches past the content
func CheckTree[N any](tree directive.Tree[N], size int) error {
	var walk func(n N, depth int) error
	walk = func(n N, depth int) error {
		if depth > maxDepth {
			return fmt.Errorf("tree deeper than %d", maxDepth)
		}
		start := tree.Start(n)
		if start < -1 || start > size {
			return fmt.Errorf("node start %d outside [0, %d]", start, size)
		}
		if l := len(tree.Text(n)); start >= 0 && start+l > size {
			return fmt.Errorf("node text [%d, %d) past end %d", start, start+l, size)
		}

		var (
			children []N
			err      error
		)
		tree.ForEachChild(n, func(c N) {
			children = append(children, c)
		})
		first, ok := tree.FirstChild(n)
		if ok != (len(children) > 0) {
			return fmt.Errorf("FirstChild ok=%v but %d children at offset %d", ok, len(children), start)
		}
		if ok && tree.Start(first) != tree.Start(children[0]) {
			return fmt.Errorf("FirstChild starts at %d, first child at %d", tree.Start(first), tree.Start(children[0]))
		}
		for _, c := range children {
			if cs := tree.Start(c); cs >= 0 && start >= 0 && cs < start {
				return fmt.Errorf("child at %d starts before parent at %d", cs, start)
			}
			if err = walk(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(tree.Root(), 0)
}

// CheckTokens drains sc and verifies that offsets never decrease, stay
// within the content and that the stream ends with TokenEOF.
func CheckTokens(sc directive.Scanner, size int) error {
	prev := 0
	// a byte yields at most one token plus an inserted semicolon
	limit := 2*size + 2
	for i := 0; i <= limit; i++ {
		tok := sc.Scan()
		if tok.Offset < prev || tok.Offset > size {
			return fmt.Errorf("token %d (%s) at offset %d, previous %d, size %d", i, tok.Kind, tok.Offset, prev, size)
		}
		if tok.Kind == directive.TokenEOF {
			return nil
		}
		prev = tok.Offset
	}
	return fmt.Errorf("no EOF after %d tokens", limit+1)
}

// CheckReport verifies a report for a file of lineCount lines: failures are
// sorted, lines are in range and every failure carries a message.
func CheckReport(rep directive.Report, lineCount int) error {
	if rep.Successes < 0 {
		return fmt.Errorf("negative success count %d", rep.Successes)
	}
	prev := directive.NoLine
	for i, f := range rep.Failures {
		line := f.TargetLine()
		if line < directive.NoLine || line >= lineCount {
			return fmt.Errorf("failure %d: line %d outside [%d, %d)", i, line, directive.NoLine, lineCount)
		}
		if line < prev {
			return fmt.Errorf("failure %d: line %d after line %d", i, line, prev)
		}
		prev = line
		if f.Describe() == "" {
			return fmt.Errorf("failure %d: empty message", i)
		}
		if wt, ok := f.(directive.WrongTypeFailure); ok && wt.Expected == wt.Actual {
			return fmt.Errorf("failure %d: wrong type with equal types %q", i, wt.Actual)
		}
	}
	return nil
}
