package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of an event.
// Lower values are coarser.
type Scope uint8

const (
	ScopeDriver  Scope = iota + 1 // CLI invocation
	ScopeScript                   // one script file
	ScopeCommand                  // one script command
	ScopeTable                    // one table mutation
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopeScript:
		return "script"
	case ScopeCommand:
		return "command"
	case ScopeTable:
		return "table"
	default:
		return "unknown"
	}
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // monotonic, assigned by the tracer
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans and points
	Name     string
	Detail   string
	Extra    map[string]string
}
