package directive

import (
	"sort"
	"sync"
)

// Result is the outcome of checking one file. Err is set for fatal errors,
// in which case Report is empty.
type Result struct {
	Path   string
	Report Report
	Err    error
	Cached bool
}

// Summary aggregates results of a multi-file run.
type Summary struct {
	Files     int
	Checks    int
	Successes int
	Failures  int
	Fatal     int
}

// Registry collects per-file results of a run. Safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	results []Result
	byPath  map[string]int // path -> index into results
}

// NewRegistry creates an empty result registry.
func NewRegistry() *Registry {
	return &Registry{
		results: make([]Result, 0),
		byPath:  make(map[string]int),
	}
}

// Add registers a result. A second result for the same path replaces the first.
func (r *Registry) Add(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx, ok := r.byPath[res.Path]; ok {
		r.results[idx] = res
		return
	}
	r.byPath[res.Path] = len(r.results)
	r.results = append(r.results, res)
}

// All returns all results sorted by path.
func (r *Registry) All() []Result {
	r.mu.Lock()
	out := append([]Result(nil), r.results...)
	r.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Len returns the number of files registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

func (r *Registry) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	var s Summary
	for i := range r.results {
		res := &r.results[i]
		s.Files++
		if res.Err != nil {
			s.Fatal++
			continue
		}
		s.Checks += res.Report.Total()
		s.Successes += res.Report.Successes
		s.Failures += len(res.Report.Failures)
	}
	return s
}

// ExitCode is failures plus fatal files, capped at 255.
func (s Summary) ExitCode() int {
	return min(s.Failures+s.Fatal, 255)
}
