// Package trace records what a typings run does: one span for the run, one
// per checked file and one per pipeline stage, plus point events for single
// assertion outcomes.
//
// Enable tracing via command-line flags:
//
//	typings --trace=- --trace-level=detail ./testdata/*.go
//
// Tracers:
//
//   - Nop: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate text or NDJSON output (file/stderr)
//   - ZapTracer: structured output through go.uber.org/zap
//   - RingTracer: circular buffer dumped after fatal file errors
//   - MultiTracer: combines several tracers
//
// Levels: off, error (ring only), phase (driver + files), detail (+ stages),
// debug (+ assertion outcomes).
//
// Tracers travel through the driver via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.BeginCtx(ctx, trace.ScopeFile, "file")
//	defer span.End("")
package trace
