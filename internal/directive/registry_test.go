package directive

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry_AddAndSummary(t *testing.T) {
	r := NewRegistry()
	r.Add(Result{Path: "b.go", Report: Report{Successes: 3}})
	r.Add(Result{Path: "a.go", Report: Report{Successes: 1, Failures: []Failure{MissingErrorFailure{Line: 1}}}})
	r.Add(Result{Path: "c.go", Err: errors.New("boom")})

	if r.Len() != 3 {
		t.Fatalf("expected 3 results, got %d", r.Len())
	}
	var paths []string
	for _, res := range r.All() {
		paths = append(paths, res.Path)
	}
	if diff := cmp.Diff([]string{"a.go", "b.go", "c.go"}, paths); diff != "" {
		t.Fatalf("All() order (-want +got):\n%s", diff)
	}

	want := Summary{Files: 3, Checks: 5, Successes: 4, Failures: 1, Fatal: 1}
	if diff := cmp.Diff(want, r.Summary()); diff != "" {
		t.Fatalf("Summary (-want +got):\n%s", diff)
	}
	if code := r.Summary().ExitCode(); code != 2 {
		t.Fatalf("ExitCode() = %d, want 2", code)
	}
}

func TestRegistry_AddReplacesSamePath(t *testing.T) {
	r := NewRegistry()
	r.Add(Result{Path: "a.go", Err: errors.New("old")})
	r.Add(Result{Path: "a.go", Report: Report{Successes: 1}})
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	if r.All()[0].Err != nil {
		t.Fatal("expected the second result to replace the first")
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Add(Result{Path: string(rune('A' + i)), Report: Report{Successes: 1}})
		}(i)
	}
	wg.Wait()
	if s := r.Summary(); s.Files != 32 || s.Successes != 32 {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestSummaryExitCodeCapped(t *testing.T) {
	if code := (Summary{Failures: 300, Fatal: 2}).ExitCode(); code != 255 {
		t.Fatalf("ExitCode() = %d, want 255", code)
	}
}
