package driver

import (
	"typings/internal/directive"
	"typings/internal/frontend"
	"typings/internal/pipeline"
)

// Options configures a check run.
type Options struct {
	AllowExpectError bool
	StrictTypeLines  bool
	Frontend         frontend.Options

	// Jobs bounds the number of files checked in parallel; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache, when set, serves and stores reports of unchanged files.
	Cache *ReportCache
	// Progress receives per-file stage events.
	Progress pipeline.ProgressSink
}

func (o Options) directiveOptions(hook directive.StageHook) directive.Options {
	return directive.Options{
		AllowExpectError: o.AllowExpectError,
		StrictTypeLines:  o.StrictTypeLines,
		Hook:             hook,
	}
}
