package driver

import (
	"context"
	"fmt"
	"go/ast"
	"go/types"
	"strconv"

	"typings/internal/diag"
	"typings/internal/directive"
	"typings/internal/frontend"
	"typings/internal/observ"
	"typings/internal/pipeline"
	"typings/internal/source"
	"typings/internal/trace"
)

// Outcome is the result of one file together with its stage timings.
type Outcome struct {
	directive.Result
	Timing observ.Report
	Stages pipeline.Timings
}

// CheckFile loads path, runs the assertion checker over it and returns the
// outcome. Fatal errors are reported in Outcome.Err, never returned.
func CheckFile(ctx context.Context, path string, opts Options) (out Outcome) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeFile, "file")
	span.WithExtra("path", path)

	out.Path = path
	timer := observ.NewTimer()
	rec := &stageRecorder{ctx: ctx, path: path, timer: timer, stages: &out.Stages, sink: opts.Progress}
	defer func() {
		out.Timing = timer.Report()
		span.WithExtra("cached", strconv.FormatBool(out.Cached))
		if out.Err == nil {
			span.WithExtra("checks", strconv.Itoa(out.Report.Total()))
			span.WithExtra("failures", strconv.Itoa(len(out.Report.Failures)))
		}
		span.EndErr(out.Err)
	}()

	end := rec.begin(pipeline.StageLoad)
	file, err := readFile(path)
	if err != nil {
		end(err)
		out.Err = err
		return out
	}

	var key Key
	if opts.Cache != nil {
		key, err = opts.Cache.KeyFor(file, opts)
		if err == nil {
			rep, hit, getErr := opts.Cache.Get(key)
			if getErr != nil {
				span.WithExtra("cache_error", getErr.Error())
			}
			if hit {
				end(nil)
				out.Report = rep
				out.Cached = true
				pipeline.Emit(opts.Progress, pipeline.Event{File: path, Status: pipeline.StatusCached})
				return out
			}
		} else {
			span.WithExtra("cache_error", err.Error())
		}
	}

	prog, err := frontend.LoadFile(ctx, file, opts.Frontend)
	end(err)
	if err != nil {
		out.Err = err
		return out
	}
	tally := diag.Tally(prog.Diagnostics())
	for _, sev := range []diag.Severity{diag.SevError, diag.SevWarning} {
		if tally[sev] > 0 {
			span.WithExtra(sev.String()+"s", strconv.Itoa(tally[sev]))
		}
	}

	rep, err := directive.Check[ast.Node, types.Type](prog, opts.directiveOptions(rec.hook()))
	if err != nil {
		out.Err = err
		return out
	}
	out.Report = rep
	traceFailures(ctx, span.ID(), rep)

	if opts.Cache != nil && key != (Key{}) {
		if err := opts.Cache.Put(key, rep); err != nil {
			span.WithExtra("cache_error", err.Error())
		}
	}
	return out
}

func readFile(path string) (*source.File, error) {
	abs, err := source.AbsolutePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(abs)
	if err != nil {
		return nil, err
	}
	return fs.Get(id), nil
}

// traceFailures emits one node event per failed assertion.
func traceFailures(ctx context.Context, parent uint64, rep directive.Report) {
	t := trace.FromContext(ctx)
	if !t.Level().ShouldEmit(trace.ScopeNode) {
		return
	}
	for _, f := range rep.Failures {
		trace.Point(t, trace.ScopeNode, f.Kind().String(), parent, "", map[string]string{
			"line": strconv.Itoa(f.TargetLine() + 1),
		})
	}
}
