package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"typings/internal/trace"
)

// tracing is the tracer installed for one command run.
type tracing struct {
	tracer    trace.Tracer
	ring      *trace.RingTracer
	heartbeat *trace.Heartbeat
}

// setupTracing inspects trace-related flags, attaches the tracer to the
// command context and returns it. Close must be called when the command ends.
func setupTracing(cmd *cobra.Command) (*tracing, error) {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := root.PersistentFlags().GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := root.PersistentFlags().GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	ringSize, err := root.PersistentFlags().GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := root.PersistentFlags().GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	// --trace without a level means phase tracing
	if level == trace.LevelOff && traceOutput != "" && !root.PersistentFlags().Changed("trace-level") {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return &tracing{tracer: trace.Nop}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	// error level only feeds the ring that is dumped on fatal files
	if level == trace.LevelError {
		mode = trace.ModeRing
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
		Heartbeat:  heartbeatInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	t := &tracing{tracer: tracer}
	t.ring, _ = trace.FindRing(tracer)
	t.heartbeat = trace.StartHeartbeat(tracer, heartbeatInterval)
	return t, nil
}

// DumpRing writes the ring buffer, if any, to cmd's stderr.
func (t *tracing) DumpRing(cmd *cobra.Command) {
	if t == nil || t.ring == nil {
		return
	}
	out := cmd.ErrOrStderr()
	fmt.Fprintln(out, "trace: last events before the failure:")
	if n := t.ring.Dropped(); n > 0 {
		fmt.Fprintf(out, "trace: %d earlier events dropped\n", n)
	}
	if err := t.ring.Dump(out, trace.FormatText); err != nil {
		fmt.Fprintf(out, "trace: dump error: %v\n", err)
	}
}

// Close stops the heartbeat and flushes the tracer.
func (t *tracing) Close(cmd *cobra.Command) {
	if t == nil {
		return
	}
	t.heartbeat.Stop()
	if err := t.tracer.Flush(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
	}
	if err := t.tracer.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
	}
}
