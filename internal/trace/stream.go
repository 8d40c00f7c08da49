package trace

import (
	"io"
	"sync"
)

// StreamTracer writes each event to w as it happens, in text or NDJSON.
// Writes never fail the check; the first write error is kept and returned by
// Flush and Close so the CLI can report a broken trace file once at exit.
type StreamTracer struct {
	mu       sync.Mutex
	w        io.Writer
	level    Level
	format   Format
	writeErr error
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: w, level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.Seq = NextSeq()
	line := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.writeErr != nil {
		return
	}
	if _, err := t.w.Write(line); err != nil {
		t.writeErr = err
	}
}

// Flush flushes w when it buffers and returns the first write error, if any.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.writeErr != nil {
		return t.writeErr
	}
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes w when it is a Closer (a --trace file).
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
