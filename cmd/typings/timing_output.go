package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"typings/internal/driver"
	"typings/internal/pipeline"
)

func printStageTimings(out io.Writer, o driver.Outcome) {
	if out == nil {
		return
	}
	parts := make([]string, 0, len(pipeline.Stages))
	for _, stage := range pipeline.Stages {
		if o.Stages.Has(stage) {
			parts = append(parts, fmt.Sprintf("%s %.1f ms", stage, toMillis(o.Stages.Duration(stage))))
		}
	}
	if len(parts) == 0 {
		return
	}
	suffix := ""
	if o.Cached {
		suffix = " (cached)"
	}
	fmt.Fprintf(out, "%s: %s, total %.1f ms%s\n",
		o.Path, strings.Join(parts, ", "), toMillis(o.Stages.Sum(pipeline.Stages...)), suffix)
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
