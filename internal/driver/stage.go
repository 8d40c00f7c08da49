package driver

import (
	"context"
	"time"

	"typings/internal/directive"
	"typings/internal/observ"
	"typings/internal/pipeline"
	"typings/internal/trace"
)

// stageRecorder fans one stage boundary out to the tracer, the per-file
// timer and the progress sink.
type stageRecorder struct {
	ctx    context.Context
	path   string
	timer  *observ.Timer
	stages *pipeline.Timings
	sink   pipeline.ProgressSink
}

func (r *stageRecorder) begin(stage pipeline.Stage) func(error) {
	_, span := trace.BeginCtx(r.ctx, trace.ScopeStage, string(stage))
	idx := r.timer.Begin(string(stage))
	start := time.Now()
	pipeline.Emit(r.sink, pipeline.Event{File: r.path, Stage: stage, Status: pipeline.StatusWorking})

	return func(err error) {
		elapsed := time.Since(start)
		r.stages.Add(stage, elapsed)
		status, note := pipeline.StatusDone, ""
		if err != nil {
			status, note = pipeline.StatusError, "failed"
		}
		r.timer.End(idx, note)
		span.EndErr(err)
		pipeline.Emit(r.sink, pipeline.Event{
			File:    r.path,
			Stage:   stage,
			Status:  status,
			Err:     err,
			Elapsed: elapsed,
		})
	}
}

// hook adapts the recorder to the checker's stage callbacks.
func (r *stageRecorder) hook() directive.StageHook {
	return func(s directive.Stage) func(error) {
		return r.begin(pipeline.Stage(s.String()))
	}
}
