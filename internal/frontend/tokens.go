package frontend

import (
	"go/scanner"
	"go/token"

	"typings/internal/directive"
)

// tokenScanner feeds go/scanner tokens to the directive extractor.
// Auto-inserted semicolons come out as TokenOther on the line that ends.
type tokenScanner struct {
	s    scanner.Scanner
	file *token.File
}

func newTokenScanner(name string, src []byte) *tokenScanner {
	fset := token.NewFileSet()
	ts := &tokenScanner{file: fset.AddFile(name, -1, len(src))}
	// Lexical errors are reported by the parser; the scanner keeps going.
	ts.s.Init(ts.file, src, nil, scanner.ScanComments)
	return ts
}

func (ts *tokenScanner) Scan() directive.Token {
	pos, tok, lit := ts.s.Scan()
	off := ts.file.Offset(pos)
	switch tok {
	case token.EOF:
		return directive.Token{Kind: directive.TokenEOF, Offset: off}
	case token.COMMENT:
		return directive.Token{Kind: directive.TokenComment, Offset: off, Text: lit}
	}
	if lit == "" {
		lit = tok.String()
	}
	return directive.Token{Kind: directive.TokenOther, Offset: off, Text: lit}
}
