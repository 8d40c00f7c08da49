package directive

import (
	"typings/internal/diag"
	"typings/internal/source"
)

// TokenKind classifies scanner tokens. The checker only cares about comments.
type TokenKind uint8

const (
	TokenOther TokenKind = iota
	TokenComment
	TokenWhitespace
	TokenEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokenOther:
		return "other"
	case TokenComment:
		return "comment"
	case TokenWhitespace:
		return "whitespace"
	case TokenEOF:
		return "eof"
	}
	return "unknown"
}

// Token is a single lexical token with its byte offset in the analysed file.
type Token struct {
	Kind   TokenKind
	Offset int
	Text   string
}

// Scanner yields tokens of the analysed file in order, ending with TokenEOF.
type Scanner interface {
	Scan() Token
}

// LineMapper converts byte offsets to zero-based (line, column) pairs.
type LineMapper interface {
	Position(offset int) (line, col int)
}

// Tree is a read-only view of the frontend syntax tree.
type Tree[N any] interface {
	Root() N
	// ForEachChild calls fn for each direct child of n in source order.
	ForEachChild(n N, fn func(N))
	// Start returns the byte offset of the first token of n, excluding leading
	// trivia, or a negative value when n has no position in the analysed file.
	Start(n N) int
	FirstChild(n N) (N, bool)
	// Text returns the source text covered by n.
	Text(n N) string
}

// TypeOracle answers type queries for tree nodes.
type TypeOracle[N, T any] interface {
	TypeAt(n N) T
	// TypeString must be deterministic for a given type.
	TypeString(t T) string
}

// Frontend bundles the capabilities one checked file needs.
// Tokens returns a fresh scanner positioned at the start of the file.
type Frontend[N, T any] interface {
	LineMapper
	Tree[N]
	TypeOracle[N, T]
	Tokens() Scanner
	Diagnostics() []diag.Diagnostic
	File() source.FileID
}
