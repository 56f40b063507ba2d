package attendance

import (
	"fmt"
	"sort"
	"time"
)

// Reconstruction is the outcome of one fold over an event stream: the
// sessions that closed cleanly, the trailing open session if the stream
// ended inside one, and every fault met along the way. Faults never abort
// the fold; the caller decides what to do with them.
type Reconstruction struct {
	Sessions []Session
	Open     *OpenSession
	Errs     []error
}

// State is the reconstruction machine's position between events. A
// *StateError carries the state its event arrived in.
type State uint8

const (
	StateIdle State = iota
	StateWorking
	StateOnBreak
)

// String returns the state's display name.
func (s State) String() string {
	switch s {
	case StateWorking:
		return "working"
	case StateOnBreak:
		return "on break"
	default:
		return "idle"
	}
}

// machine carries the in-flight session while events fold through it.
type machine struct {
	state      State
	start      time.Time
	breaks     []Interval
	breakStart time.Time
}

// Reconstruct folds events into closed sessions. The input is left
// untouched: a copy is sorted by timestamp, ties broken by kind priority so
// that closing events land before opening ones at the same instant. Every
// event that is impossible in the current state is reported as a
// *StateError and recovery continues with the most usable interpretation
// (the one the data loss already forced).
func Reconstruct(events []Event) Reconstruction {
	ordered := make([]Event, len(events))
	copy(ordered, events)
	sortEvents(ordered)

	var rec Reconstruction
	m := &machine{}
	for _, ev := range ordered {
		session, err := m.apply(ev)
		if err != nil {
			rec.Errs = append(rec.Errs, err)
		}
		if session != nil {
			rec.Sessions = append(rec.Sessions, *session)
		}
	}

	if m.state != StateIdle {
		rec.Open = m.snapshot()
		rec.Errs = append(rec.Errs, fmt.Errorf("%w: started %s",
			ErrUnterminatedSession, m.start.Format(time.RFC3339)))
	}
	return rec
}

// sortEvents orders by timestamp, then by closing-before-opening priority on
// equal timestamps, keeping input order as the final tiebreak.
func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.Kind.sortPriority() < b.Kind.sortPriority()
	})
}

// apply advances the machine by one event, returning the session a finish
// emitted or the fault the event caused. Exactly one of the two is non-nil
// on an eventful transition; both are nil on a plain state change.
func (m *machine) apply(ev Event) (*Session, error) {
	switch ev.Kind {
	case KindStart:
		if m.state != StateIdle {
			// The stale session can no longer close correctly; the
			// newer start wins.
			err := m.fault(ErrUnexpectedStart, ev)
			m.reset()
			m.begin(ev.Timestamp)
			return nil, err
		}
		m.begin(ev.Timestamp)
		return nil, nil

	case KindBreakStart:
		switch m.state {
		case StateWorking:
			m.state = StateOnBreak
			m.breakStart = ev.Timestamp
			return nil, nil
		case StateOnBreak:
			// The newer timestamp replaces the stale open break.
			m.breakStart = ev.Timestamp
			return nil, m.fault(ErrUnexpectedBreakStart, ev)
		default:
			return nil, m.fault(ErrUnexpectedBreakStart, ev)
		}

	case KindBreakEnd:
		if m.state != StateOnBreak {
			return nil, m.fault(ErrUnexpectedBreakEnd, ev)
		}
		m.breaks = append(m.breaks, Interval{Start: m.breakStart, End: ev.Timestamp})
		m.state = StateWorking
		return nil, nil

	case KindFinish:
		switch m.state {
		case StateWorking:
			session := &Session{
				Span:   Interval{Start: m.start, End: ev.Timestamp},
				Breaks: m.breaks,
				Note:   ev.Note,
			}
			m.reset()
			return session, nil
		case StateOnBreak:
			// The open break has no end, so the session cannot be
			// valued. Drop it.
			err := m.fault(ErrUnexpectedFinish, ev)
			m.reset()
			return nil, err
		default:
			return nil, m.fault(ErrUnexpectedFinish, ev)
		}
	}
	return nil, nil
}

func (m *machine) begin(at time.Time) {
	m.state = StateWorking
	m.start = at
}

func (m *machine) reset() {
	*m = machine{}
}

func (m *machine) fault(reason error, ev Event) error {
	return &StateError{Reason: reason, Kind: ev.Kind, State: m.state, At: ev.Timestamp}
}

func (m *machine) snapshot() *OpenSession {
	open := &OpenSession{
		Start:  m.start,
		Breaks: append([]Interval(nil), m.breaks...),
	}
	if m.state == StateOnBreak {
		at := m.breakStart
		open.BreakStart = &at
	}
	return open
}
