package attendance

import (
	"errors"
	"fmt"
	"time"
)

// Parse failures.
var (
	// ErrMalformedLine is returned when a line is missing a required field or
	// is not valid logfmt at all.
	ErrMalformedLine = errors.New("malformed line")
	// ErrUnknownEventKind is returned when type= holds an unrecognized literal.
	ErrUnknownEventKind = errors.New("unknown event kind")
	// ErrBadTimestamp is returned when ts= cannot be parsed as an RFC3339 timestamp.
	ErrBadTimestamp = errors.New("bad timestamp")
)

// Reconstruction failures.
var (
	// ErrUnexpectedStart marks a start event while a session is already open.
	ErrUnexpectedStart = errors.New("unexpected session start")
	// ErrUnexpectedBreakStart marks a break_start outside a working session
	// or while a break is already open.
	ErrUnexpectedBreakStart = errors.New("unexpected break start")
	// ErrUnexpectedBreakEnd marks a break_end with no open break.
	ErrUnexpectedBreakEnd = errors.New("unexpected break end")
	// ErrUnexpectedFinish marks a finish while idle or mid-break.
	ErrUnexpectedFinish = errors.New("unexpected session finish")
	// ErrUnterminatedSession marks a stream that ended with a session or
	// break still open.
	ErrUnterminatedSession = errors.New("unterminated session")
)

// ErrNegativeDuration marks a session whose breaks add up to more than its span.
var ErrNegativeDuration = errors.New("negative session duration")

// ParseError describes why a single input line could not become an Event.
type ParseError struct {
	Line   int    // 1-based line number
	Reason error  // one of the parse sentinels
	Detail string // offending field or value, may be empty
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("line %d: %v: %s", e.Line, e.Reason, e.Detail)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Reason }

// StateError describes an event that is impossible in the machine's current
// state. The event is reported, recovery is best-effort, and reconstruction
// continues.
type StateError struct {
	Reason error // one of the reconstruction sentinels
	Kind   Kind
	State  State // machine state the event arrived in
	At     time.Time
}

func (e *StateError) Error() string {
	if e.At.IsZero() {
		return e.Reason.Error()
	}
	return fmt.Sprintf("%v: %s at %s while %s", e.Reason, e.Kind, e.At.Format(time.RFC3339), e.State)
}

func (e *StateError) Unwrap() error { return e.Reason }

// NegativeDurationError flags a session whose recorded breaks exceed its
// span. The session is excluded from aggregation rather than clamped.
type NegativeDurationError struct {
	Session Session
}

func (e *NegativeDurationError) Error() string {
	return fmt.Sprintf("%v: session %s %s~%s", ErrNegativeDuration,
		DateOf(e.Session.Span.Start),
		e.Session.Span.Start.Format("15:04"),
		e.Session.Span.End.Format("15:04"))
}

func (e *NegativeDurationError) Unwrap() error { return ErrNegativeDuration }
