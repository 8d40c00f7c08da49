package directive

import (
	"strings"

	"typings/internal/diag"
	"typings/internal/source"
)

// fakeSource is a line-oriented toy language: words separated by spaces,
// "//" starts a comment running to the end of the line.
type fakeSource struct {
	text       string
	lineStarts []int
}

func newFakeSource(lines ...string) *fakeSource {
	text := strings.Join(lines, "\n")
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &fakeSource{text: text, lineStarts: starts}
}

func (s *fakeSource) Position(off int) (line, col int) {
	for i := len(s.lineStarts) - 1; i >= 0; i-- {
		if s.lineStarts[i] <= off {
			return i, off - s.lineStarts[i]
		}
	}
	return 0, off
}

// at returns the offset of the col'th byte on line.
func (s *fakeSource) at(line, col int) int { return s.lineStarts[line] + col }

func (s *fakeSource) tokens() []Token {
	var toks []Token
	i := 0
	for i < len(s.text) {
		c := s.text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			j := i
			for j < len(s.text) && (s.text[j] == ' ' || s.text[j] == '\t' || s.text[j] == '\n') {
				j++
			}
			toks = append(toks, Token{Kind: TokenWhitespace, Offset: i, Text: s.text[i:j]})
			i = j
		case strings.HasPrefix(s.text[i:], "//"):
			j := strings.IndexByte(s.text[i:], '\n')
			if j < 0 {
				j = len(s.text) - i
			}
			toks = append(toks, Token{Kind: TokenComment, Offset: i, Text: s.text[i : i+j]})
			i += j
		default:
			j := i
			for j < len(s.text) && s.text[j] != ' ' && s.text[j] != '\t' && s.text[j] != '\n' {
				j++
			}
			toks = append(toks, Token{Kind: TokenOther, Offset: i, Text: s.text[i:j]})
			i = j
		}
	}
	return toks
}

type sliceScanner struct {
	toks []Token
	pos  int
}

func (s *sliceScanner) Scan() Token {
	if s.pos >= len(s.toks) {
		return Token{Kind: TokenEOF}
	}
	t := s.toks[s.pos]
	s.pos++
	return t
}

type fakeNode struct {
	name     string
	start    int
	typ      string
	children []*fakeNode
}

func node(name string, start int, typ string, children ...*fakeNode) *fakeNode {
	return &fakeNode{name: name, start: start, typ: typ, children: children}
}

type fakeFrontend struct {
	src   *fakeSource
	root  *fakeNode
	diags []diag.Diagnostic
	// typed records every TypeAt call in order.
	typed []string
}

const fakeFile source.FileID = 7

func (f *fakeFrontend) Position(off int) (int, int) { return f.src.Position(off) }
func (f *fakeFrontend) Root() *fakeNode             { return f.root }
func (f *fakeFrontend) ForEachChild(n *fakeNode, fn func(*fakeNode)) {
	for _, c := range n.children {
		fn(c)
	}
}
func (f *fakeFrontend) Start(n *fakeNode) int { return n.start }
func (f *fakeFrontend) FirstChild(n *fakeNode) (*fakeNode, bool) {
	if len(n.children) == 0 {
		return nil, false
	}
	return n.children[0], true
}
func (f *fakeFrontend) Text(n *fakeNode) string { return n.name }
func (f *fakeFrontend) TypeAt(n *fakeNode) string {
	f.typed = append(f.typed, n.name)
	return n.typ
}
func (f *fakeFrontend) TypeString(t string) string     { return t }
func (f *fakeFrontend) Tokens() Scanner                { return &sliceScanner{toks: f.src.tokens()} }
func (f *fakeFrontend) Diagnostics() []diag.Diagnostic { return f.diags }
func (f *fakeFrontend) File() source.FileID            { return fakeFile }

// diagAt builds an error diagnostic starting at off in the fake file.
func diagAt(off int, msg string, notes ...string) diag.Diagnostic {
	d := diag.NewError(diag.SemaTypeError, source.Span{File: fakeFile, Start: uint32(off), End: uint32(off)}, msg)
	for _, n := range notes {
		d = d.WithNote(source.NoSpan, n)
	}
	return d
}
