package directive

// Pending is the ordered set of assertions not yet bound to a node.
type Pending struct {
	items []Assertion
}

// NewPending copies as, so the caller's slice is never modified.
func NewPending(as []Assertion) *Pending {
	return &Pending{items: append([]Assertion(nil), as...)}
}

// Take removes and returns the first assertion (in scan order) targeting line.
func (p *Pending) Take(line int) (Assertion, bool) {
	for i, a := range p.items {
		if a.TargetLine() == line {
			p.items = append(p.items[:i], p.items[i+1:]...)
			return a, true
		}
	}
	return nil, false
}

func (p *Pending) Len() int { return len(p.items) }

// Remaining returns a copy of the assertions still pending.
func (p *Pending) Remaining() []Assertion {
	return append([]Assertion(nil), p.items...)
}
