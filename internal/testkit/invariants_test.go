package testkit

import (
	"strings"
	"testing"

	"typings/internal/directive"
)

type node struct {
	start    int
	text     string
	children []*node
}

type tree struct{ root *node }

func (t tree) Root() *node { return t.root }
func (t tree) ForEachChild(n *node, fn func(*node)) {
	for _, c := range n.children {
		fn(c)
	}
}
func (t tree) Start(n *node) int  { return n.start }
func (t tree) Text(n *node) string { return n.text }
func (t tree) FirstChild(n *node) (*node, bool) {
	if len(n.children) == 0 {
		return nil, false
	}
	return n.children[0], true
}

func TestCheckTree(t *testing.T) {
	good := tree{&node{start: 0, text: "abcdef", children: []*node{
		{start: 0, text: "abc"},
		{start: 4, text: "ef"},
	}}}
	if err := CheckTree[*node](good, 6); err != nil {
		t.Fatalf("good tree: %v", err)
	}

	early := tree{&node{start: 3, text: "def", children: []*node{{start: 1, text: "b"}}}}
	if err := CheckTree[*node](early, 6); err == nil || !strings.Contains(err.Error(), "before parent") {
		t.Fatalf("expected a parent order error, got %v", err)
	}

	unpositioned := tree{&node{start: 3, text: "def", children: []*node{{start: -1}}}}
	if err := CheckTree[*node](unpositioned, 6); err != nil {
		t.Fatalf("unpositioned child: %v", err)
	}

	long := tree{&node{start: 4, text: "efgh"}}
	if err := CheckTree[*node](long, 6); err == nil {
		t.Fatal("expected an error for text past the end")
	}
}

type tokens []directive.Token

func (ts *tokens) Scan() directive.Token {
	if len(*ts) == 0 {
		return directive.Token{Kind: directive.TokenOther}
	}
	tok := (*ts)[0]
	*ts = (*ts)[1:]
	return tok
}

func TestCheckTokens(t *testing.T) {
	ok := tokens{{Offset: 0}, {Kind: directive.TokenComment, Offset: 2}, {Kind: directive.TokenEOF, Offset: 5}}
	if err := CheckTokens(&ok, 5); err != nil {
		t.Fatalf("good stream: %v", err)
	}
	back := tokens{{Offset: 3}, {Offset: 1}}
	if err := CheckTokens(&back, 5); err == nil {
		t.Fatal("expected an error for decreasing offsets")
	}
	endless := tokens{}
	if err := CheckTokens(&endless, 5); err == nil {
		t.Fatal("expected an error for a stream without EOF")
	}
}

func TestCheckReport(t *testing.T) {
	good := directive.Report{Successes: 1, Failures: []directive.Failure{
		directive.UnexpectedErrorFailure{Line: directive.NoLine, Got: "x"},
		directive.WrongTypeFailure{Line: 2, Expected: "int", Actual: "string"},
	}}
	if err := CheckReport(good, 3); err != nil {
		t.Fatalf("good report: %v", err)
	}

	tests := map[string]directive.Report{
		"out of range": {Failures: []directive.Failure{directive.MissingErrorFailure{Line: 3, Pattern: "p"}}},
		"unsorted": {Failures: []directive.Failure{
			directive.MissingErrorFailure{Line: 2, Pattern: "p"},
			directive.MissingErrorFailure{Line: 1, Pattern: "p"},
		}},
		"equal types": {Failures: []directive.Failure{directive.WrongTypeFailure{Line: 0, Expected: "int", Actual: "int"}}},
	}
	for name, rep := range tests {
		if err := CheckReport(rep, 3); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
