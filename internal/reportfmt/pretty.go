package reportfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"

	"typings/internal/directive"
)

type palette struct {
	path *color.Color
	pass *color.Color
	fail *color.Color
	dim  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path: color.New(color.Bold),
		pass: color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
		dim:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.path, p.pass, p.fail, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// displayPath composes the path to NFC. Some filesystems hand back
// decomposed names, which would otherwise misalign the summary table.
func displayPath(p string) string {
	return norm.NFC.String(p)
}

// Pretty writes one file's result. Failure blocks and fatal errors go to
// errw, the "checks passed" line goes to w:
//
//	<path>:<line>: <message>
//	<path>: <successes> / <total> checks passed.
func Pretty(w, errw io.Writer, res directive.Result, opts Options) error {
	pal := newPalette(opts.Color)
	path := displayPath(res.Path)
	if res.Err != nil {
		_, err := fmt.Fprintf(errw, "%s: %s\n", pal.path.Sprint(path), pal.fail.Sprint(res.Err.Error()))
		return err
	}
	for _, f := range res.Report.Failures {
		if _, err := io.WriteString(errw, failureBlock(path, f, opts, pal)); err != nil {
			return err
		}
	}
	counts := pal.pass
	if !res.Report.Passed() {
		counts = pal.fail
	}
	_, err := fmt.Fprintf(w, "%s: %s checks passed.\n",
		pal.path.Sprint(path),
		counts.Sprintf("%d / %d", res.Report.Successes, res.Report.Total()))
	return err
}

// FailureBlock renders a single failure without color.
func FailureBlock(path string, f directive.Failure, opts Options) string {
	return failureBlock(displayPath(path), f, opts, newPalette(false))
}

func failureBlock(path string, f directive.Failure, opts Options, pal palette) string {
	var b strings.Builder
	b.WriteString(pal.path.Sprint(path))
	b.WriteByte(':')
	if !opts.NoLines && f.TargetLine() != directive.NoLine {
		b.WriteString(strconv.Itoa(f.TargetLine() + 1))
		b.WriteByte(':')
	}
	if code := f.NodeText(); opts.Verbose && code != "" {
		b.WriteString(pal.dim.Sprint(code))
		b.WriteString("\n\n")
	} else {
		b.WriteByte(' ')
	}
	b.WriteString(f.Describe())
	b.WriteString("\n\n")
	return b.String()
}

// Summary writes an aligned table of per-file results followed by the
// totals. Paths wider than maxPath columns are truncated from the left.
func Summary(w io.Writer, results []directive.Result, sum directive.Summary, opts Options) error {
	const maxPath = 60
	pal := newPalette(opts.Color)

	width := 0
	for _, r := range results {
		width = max(width, min(runewidth.StringWidth(displayPath(r.Path)), maxPath))
	}

	var b strings.Builder
	for _, r := range results {
		name := runewidth.FillRight(truncateLeft(displayPath(r.Path), maxPath), width)
		var status string
		switch {
		case r.Err != nil:
			status = pal.fail.Sprint("error")
		case r.Report.Passed():
			status = pal.pass.Sprintf("%d / %d", r.Report.Successes, r.Report.Total())
		default:
			status = pal.fail.Sprintf("%d / %d", r.Report.Successes, r.Report.Total())
		}
		if r.Cached {
			status += pal.dim.Sprint(" (cached)")
		}
		fmt.Fprintf(&b, "  %s  %s\n", name, status)
	}
	fmt.Fprintf(&b, "%d files, %d checks: %d passed, %d failed", sum.Files, sum.Checks, sum.Successes, sum.Failures)
	if sum.Fatal > 0 {
		fmt.Fprintf(&b, ", %d files with errors", sum.Fatal)
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// truncateLeft keeps the tail of s, which holds the file name.
func truncateLeft(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	rs := []rune(s)
	for i := range rs {
		tail := string(rs[i:])
		if runewidth.StringWidth(tail)+3 <= width {
			return "..." + tail
		}
	}
	return "..."
}
