package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"typings/internal/directive"
	"typings/internal/pipeline"
	"typings/internal/trace"
)

// Run is the outcome of checking several files.
type Run struct {
	// Outcomes are in input order.
	Outcomes []Outcome
	Registry *directive.Registry
}

// Summary aggregates the run.
func (r *Run) Summary() directive.Summary {
	return r.Registry.Summary()
}

// Fatal joins the fatal errors of all files, each prefixed with its path.
// It is nil when every file was checked.
func (r *Run) Fatal() error {
	var merr *multierror.Error
	for i := range r.Outcomes {
		if err := r.Outcomes[i].Err; err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", r.Outcomes[i].Path, err))
		}
	}
	return merr.ErrorOrNil()
}

// CheckFiles checks paths in parallel, at most opts.Jobs at a time. The
// returned error is only set when ctx is canceled before every file ran;
// per-file failures are in the outcomes.
func CheckFiles(ctx context.Context, paths []string, opts Options) (*Run, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeDriver, "check")
	span.WithExtra("files", strconv.Itoa(len(paths)))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	run := &Run{
		Outcomes: make([]Outcome, len(paths)),
		Registry: directive.NewRegistry(),
	}
	for _, path := range paths {
		pipeline.Emit(opts.Progress, pipeline.Event{File: path, Status: pipeline.StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// индекс i уникален для горутины, мьютекс не нужен
			run.Outcomes[i] = CheckFile(gctx, path, opts)
			run.Registry.Add(run.Outcomes[i].Result)
			return nil
		})
	}
	err := g.Wait()

	sum := run.Registry.Summary()
	span.WithExtra("failures", strconv.Itoa(sum.Failures))
	span.WithExtra("fatal", strconv.Itoa(sum.Fatal))
	span.EndErr(err)
	return run, err
}
