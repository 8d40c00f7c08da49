package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Синтаксис (go/scanner, go/parser)
	SynInfo         Code = 2000
	SynParseError   Code = 2001
	SynNoSyntaxTree Code = 2002

	// Типизация (go/types)
	SemaInfo          Code = 3000
	SemaTypeError     Code = 3001
	SemaSoftTypeError Code = 3002 // unused vars/imports and similar
	SemaImportError   Code = 3003

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Загрузчик пакетов (x/tools/go/packages)
	LoadInfo      Code = 5000
	LoadListError Code = 5001
	LoadUnknown   Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:       "Unknown error",
	SynInfo:           "Syntax information",
	SynParseError:     "Parse error",
	SynNoSyntaxTree:   "Parser produced no syntax tree",
	SemaInfo:          "Type information",
	SemaTypeError:     "Type error",
	SemaSoftTypeError: "Type error (soft)",
	SemaImportError:   "Import could not be resolved",
	IOLoadFileError:   "I/O load file error",
	LoadInfo:          "Loader information",
	LoadListError:     "Package listing error",
	LoadUnknown:       "Unclassified loader error",
}

// ID returns the stable textual identifier of the code, e.g. "SEM3001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("LDR%04d", ic)
	}
	return "E0000"
}

func (c Code) String() string {
	return c.ID()
}

// Title returns the short description of the code.
func (c Code) Title() string {
	if d, ok := codeDescription[c]; ok {
		return d
	}
	return codeDescription[UnknownCode]
}
