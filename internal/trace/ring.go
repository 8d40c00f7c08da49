package trace

import (
	"io"
	"sync"
)

// DefaultRingSize is used when --trace-ring-size is not positive.
const DefaultRingSize = 4096

// RingTracer keeps the most recent events in memory. With --trace-level=error
// nothing is written until a file fails fatally; the CLI then dumps the ring
// so the failure comes with the stages that led to it.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	total  uint64 // events ever stored
	level  Level
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	stored := *ev
	stored.Seq = NextSeq()
	t.events[t.total%uint64(len(t.events))] = stored
	t.total++
}

// Snapshot returns the retained events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	size := uint64(len(t.events))
	if t.total <= size {
		return append([]Event(nil), t.events[:t.total]...)
	}
	head := t.total % size
	out := make([]Event, 0, size)
	out = append(out, t.events[head:]...)
	return append(out, t.events[:head]...)
}

// Dropped reports how many events were overwritten.
func (t *RingTracer) Dropped() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if size := uint64(len(t.events)); t.total > size {
		return t.total - size
	}
	return 0
}

// Dump writes the retained events to w, oldest first.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
