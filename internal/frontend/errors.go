package frontend

import "errors"

var (
	// ErrNoSyntaxTree is returned when the parser yields no tree for the analysed file.
	ErrNoSyntaxTree = errors.New("no syntax tree")
	// ErrFileNotInPackage is returned when build constraints or the package
	// loader leave the analysed file out of every loaded package.
	ErrFileNotInPackage = errors.New("file is not part of any loaded package")
)
