package attendance

import "time"

// Kind identifies what a log line records.
type Kind uint8

const (
	// KindStart opens a work session.
	KindStart Kind = iota
	// KindFinish closes the current work session.
	KindFinish
	// KindBreakStart opens a break within the current session.
	KindBreakStart
	// KindBreakEnd closes the open break.
	KindBreakEnd
)

// Wire literals used in the type= field of a log line.
const (
	literalStart      = "start"
	literalFinish     = "finish"
	literalBreakStart = "break_start"
	literalBreakEnd   = "break_end"
)

// String returns the wire literal for the kind.
func (k Kind) String() string {
	switch k {
	case KindStart:
		return literalStart
	case KindFinish:
		return literalFinish
	case KindBreakStart:
		return literalBreakStart
	case KindBreakEnd:
		return literalBreakEnd
	default:
		return "unknown"
	}
}

// ParseKind maps a wire literal back to its Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case literalStart:
		return KindStart, true
	case literalFinish:
		return KindFinish, true
	case literalBreakStart:
		return KindBreakStart, true
	case literalBreakEnd:
		return KindBreakEnd, true
	default:
		return 0, false
	}
}

// Event is one decoded log line. The timestamp keeps whatever UTC offset the
// line recorded; nothing downstream converts it. Note is only meaningful on
// finish events but the decoder preserves it wherever it appears.
type Event struct {
	Timestamp time.Time
	Kind      Kind
	Note      string
}

// NewEvent stamps an event of the given kind at the supplied wall-clock time.
func NewEvent(kind Kind, at time.Time, note string) Event {
	return Event{Timestamp: at, Kind: kind, Note: note}
}

// sortPriority orders kinds when timestamps tie: closing events win over
// opening ones so that a break or session ending at the same instant another
// begins resolves deterministically.
func (k Kind) sortPriority() int {
	switch k {
	case KindBreakEnd:
		return 0
	case KindFinish:
		return 1
	case KindBreakStart:
		return 2
	default: // KindStart
		return 3
	}
}
