package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
	KindHeartbeat // periodic liveness signal
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent coarser events.
type Scope uint8

const (
	// ScopeDriver covers a whole CLI run.
	ScopeDriver Scope = iota + 1
	// ScopeFile covers one checked file.
	ScopeFile
	// ScopeStage covers one pipeline stage of a file (load, extract, bind, reconcile).
	ScopeStage
	ScopeNode // single assertion outcomes
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopeFile:
		return "file"
	case ScopeStage:
		return "stage"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// depth is the indentation level used by the text format.
func (s Scope) depth() int {
	if s == 0 {
		return 0
	}
	return int(s) - 1
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number (monotonic)
	Kind     Kind              // event kind
	Scope    Scope             // granularity level
	SpanID   uint64            // unique span identifier
	ParentID uint64            // parent span (0 if root)
	GID      uint64            // goroutine ID (for concurrent spans)
	Name     string            // e.g. "check", "file", "bind"
	Detail   string            // optional detail message
	Extra    map[string]string // extensible key-value pairs
}
