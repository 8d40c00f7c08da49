package frontend

import (
	"errors"
	"go/scanner"
	"go/types"
	"path/filepath"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/tools/go/packages"

	"typings/internal/diag"
	"typings/internal/source"
)

// collector turns toolchain errors into diagnostics for one Program.
type collector struct {
	prog *Program
	rep  diag.Reporter
}

func newCollector(p *Program, rep diag.Reporter) *collector {
	return &collector{prog: p, rep: rep}
}

// spanAt maps a filename and byte offset to a span. Only the analysed file
// resolves; everything else gets source.NoSpan.
func (c *collector) spanAt(filename string, offset int) source.Span {
	if !c.isTarget(filename) || offset < 0 {
		return source.NoSpan
	}
	off, err := safecast.Conv[uint32](offset)
	if err != nil {
		return source.NoSpan
	}
	return source.Span{File: c.prog.file.ID, Start: off, End: off}
}

func (c *collector) isTarget(filename string) bool {
	if filename == "" {
		return false
	}
	return filepath.ToSlash(filepath.Clean(filename)) == c.prog.file.Path
}

func (c *collector) parseErrors(err error) {
	if err == nil {
		return
	}
	var list scanner.ErrorList
	if errors.As(err, &list) {
		for _, e := range list {
			c.rep.Report(diag.SynParseError, diag.SevError, c.spanAt(e.Pos.Filename, e.Pos.Offset), e.Msg, nil)
		}
		return
	}
	c.rep.Report(diag.SynParseError, diag.SevError, source.NoSpan, err.Error(), nil)
}

// typeError is suitable as types.Config.Error. Continuation errors, whose
// message starts with a tab, become notes of the previous diagnostic.
func (c *collector) typeError(err error) {
	var terr types.Error
	if !errors.As(err, &terr) {
		c.rep.Report(diag.LoadUnknown, diag.SevError, source.NoSpan, err.Error(), nil)
		return
	}
	pos := terr.Fset.Position(terr.Pos)
	sp := c.spanAt(pos.Filename, pos.Offset)
	if c.continuation(sp, terr.Msg) {
		return
	}
	code, sev := diag.SemaTypeError, diag.SevError
	switch {
	case strings.HasPrefix(terr.Msg, "could not import"):
		code = diag.SemaImportError
	case terr.Soft:
		code, sev = diag.SemaSoftTypeError, diag.SevWarning
	}
	c.rep.Report(code, sev, sp, terr.Msg, nil)
}

func (c *collector) continuation(sp source.Span, msg string) bool {
	if !strings.HasPrefix(msg, "\t") {
		return false
	}
	last := c.prog.bag.Last()
	if last == nil {
		return false
	}
	last.Notes = append(last.Notes, diag.Note{Span: sp, Msg: strings.TrimPrefix(msg, "\t")})
	return true
}

// packageError converts a go/packages error; its position is "file:line:col".
func (c *collector) packageError(e packages.Error) {
	sp := source.NoSpan
	if name, line, col, ok := splitPos(e.Pos); ok && c.isTarget(name) {
		if off, ok := c.prog.file.Offset(line, col); ok {
			sp = c.spanAt(name, off)
		}
	}
	if c.continuation(sp, e.Msg) {
		return
	}
	code := diag.LoadUnknown
	switch e.Kind {
	case packages.ListError:
		code = diag.LoadListError
	case packages.ParseError:
		code = diag.SynParseError
	case packages.TypeError:
		code = diag.SemaTypeError
		if strings.HasPrefix(e.Msg, "could not import") {
			code = diag.SemaImportError
		}
	}
	c.rep.Report(code, diag.SevError, sp, e.Msg, nil)
}

// splitPos parses "file:line:col" or "file:line". Column defaults to 1.
func splitPos(pos string) (name string, line, col int, ok bool) {
	if pos == "" || pos == "-" {
		return "", 0, 0, false
	}
	rest := pos
	nums := make([]int, 0, 2)
	for len(nums) < 2 {
		i := strings.LastIndexByte(rest, ':')
		if i < 0 {
			break
		}
		n, err := strconv.Atoi(rest[i+1:])
		if err != nil {
			break
		}
		nums = append(nums, n)
		rest = rest[:i]
	}
	switch len(nums) {
	case 2:
		return rest, nums[1], nums[0], true
	case 1:
		return rest, nums[0], 1, true
	}
	return "", 0, 0, false
}
