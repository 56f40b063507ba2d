package attendance

import "time"

// Interval is a closed time range, End at or after Start. It models both a
// session's span and the breaks inside it.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the exact length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Minutes returns the interval length in whole minutes with both endpoints
// floored to the minute first. All report arithmetic runs on these values so
// that totals always agree with the HH:MM forms shown to the user.
func (iv Interval) Minutes() int {
	return int(minuteFloor(iv.End).Sub(minuteFloor(iv.Start)) / time.Minute)
}

func minuteFloor(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}

// Session is one finished work period: a span, the breaks taken inside it
// (non-overlapping, ordered by start), and the note attached at finish.
// Sessions are immutable once emitted by the reconstructor.
type Session struct {
	Span   Interval
	Breaks []Interval
	Note   string
}

// NetMinutes returns the worked minutes net of breaks. A session whose
// breaks add up to more than its span is reported, never clamped.
func (s Session) NetMinutes() (int, error) {
	net := s.Span.Minutes()
	for _, b := range s.Breaks {
		net -= b.Minutes()
	}
	if net < 0 {
		return 0, &NegativeDurationError{Session: s}
	}
	return net, nil
}

// Segments returns the worked stretches of the span, i.e. the complement of
// the breaks: span start to first break, between breaks, last break to span
// end. With no breaks the span itself is the single segment.
func (s Session) Segments() []Interval {
	segments := make([]Interval, 0, len(s.Breaks)+1)
	cursor := s.Span.Start
	for _, b := range s.Breaks {
		segments = append(segments, Interval{Start: cursor, End: b.Start})
		cursor = b.End
	}
	return append(segments, Interval{Start: cursor, End: s.Span.End})
}

// OpenSession is the trailing session a stream ended inside of. It is
// surfaced for status display and never aggregated.
type OpenSession struct {
	Start      time.Time
	Breaks     []Interval
	BreakStart *time.Time // non-nil while a break is open
}

// OnBreak reports whether the open session is currently inside a break.
func (o *OpenSession) OnBreak() bool {
	return o != nil && o.BreakStart != nil
}
