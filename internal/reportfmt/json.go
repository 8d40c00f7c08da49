package reportfmt

import (
	"encoding/json"
	"io"

	"typings/internal/directive"
)

// FileJSON is the JSON form of one file's result.
type FileJSON struct {
	Path      string             `json:"path"`
	Successes int                `json:"successes"`
	Total     int                `json:"total"`
	Failures  []directive.Record `json:"failures"`
	Error     string             `json:"error,omitempty"`
	Cached    bool               `json:"cached,omitempty"`
}

// SummaryJSON mirrors directive.Summary.
type SummaryJSON struct {
	Files     int `json:"files"`
	Checks    int `json:"checks"`
	Successes int `json:"successes"`
	Failures  int `json:"failures"`
	Fatal     int `json:"fatal"`
	ExitCode  int `json:"exit_code"`
}

// Output is the root JSON document.
type Output struct {
	Files   []FileJSON  `json:"files"`
	Summary SummaryJSON `json:"summary"`
}

// BuildOutput converts results into the JSON document. Record lines stay
// 0-based; a failure without a line has line -1.
func BuildOutput(results []directive.Result, sum directive.Summary) Output {
	out := Output{
		Files: make([]FileJSON, 0, len(results)),
		Summary: SummaryJSON{
			Files:     sum.Files,
			Checks:    sum.Checks,
			Successes: sum.Successes,
			Failures:  sum.Failures,
			Fatal:     sum.Fatal,
			ExitCode:  sum.ExitCode(),
		},
	}
	for _, r := range results {
		f := FileJSON{
			Path:      displayPath(r.Path),
			Successes: r.Report.Successes,
			Total:     r.Report.Total(),
			Failures:  r.Report.Records(),
			Cached:    r.Cached,
		}
		if r.Err != nil {
			f.Error = r.Err.Error()
		}
		out.Files = append(out.Files, f)
	}
	return out
}

// JSON writes results as one indented JSON document.
func JSON(w io.Writer, results []directive.Result, sum directive.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildOutput(results, sum))
}
