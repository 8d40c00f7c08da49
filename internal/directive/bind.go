package directive

import "typings/internal/diag"

// Bound is an assertion attached to the syntax node that starts on its target line.
type Bound[N, T any] struct {
	Assertion Assertion
	Node      N
	// Type is the type of the node's first child, computed for every assertion kind.
	Type T
	// Code is the source text of Node.
	Code string
	// Diag is the last diagnostic reported on the target line, if any.
	Diag *diag.Diagnostic
}

type BindResult[N, T any] struct {
	Bound   []Bound[N, T]
	Unbound []Assertion
}

// Complete returns an *UnboundError when any assertion stayed pending.
func (r BindResult[N, T]) Complete() error {
	if len(r.Unbound) == 0 {
		return nil
	}
	return &UnboundError{Assertions: r.Unbound}
}

// Bind walks the tree in pre-order (root excluded) and binds each pending
// assertion to the first node starting on its target line. The node's first
// child is typed; a leaf is typed itself. Nodes without a position are never
// bound but their children are still visited. Pending is drained as it goes.
func Bind[N, T any](tree Tree[N], lines LineMapper, oracle TypeOracle[N, T], pending *Pending) BindResult[N, T] {
	var res BindResult[N, T]
	var visit func(n N)
	visit = func(n N) {
		if start := tree.Start(n); start >= 0 && pending.Len() > 0 {
			line, _ := lines.Position(start)
			if a, ok := pending.Take(line); ok {
				target, ok := tree.FirstChild(n)
				if !ok {
					target = n
				}
				res.Bound = append(res.Bound, Bound[N, T]{
					Assertion: a,
					Node:      n,
					Type:      oracle.TypeAt(target),
					Code:      tree.Text(n),
				})
			}
		}
		tree.ForEachChild(n, visit)
	}
	tree.ForEachChild(tree.Root(), visit)
	res.Unbound = pending.Remaining()
	return res
}
