package attendance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-logfmt/logfmt"
)

// Field names of the wire format.
const (
	fieldTimestamp = "ts"
	fieldType      = "type"
	fieldContent   = "content"
)

// maxLineBytes caps a single log line. The note is the only unbounded
// field; a line beyond the cap is a stream error, not a decodable record.
const maxLineBytes = 1 << 20

// Parser decodes logfmt attendance lines into Events, one call per line, in
// input order. Ordering by line position is all it promises; timestamps may
// still be out of order and are sorted later by the reconstructor.
type Parser struct {
	scanner *bufio.Scanner
	line    int
	done    bool
}

// NewParser returns a parser reading raw log lines from r. Lines up to
// maxLineBytes long are accepted.
func NewParser(r io.Reader) *Parser {
	if r == nil {
		r = strings.NewReader("")
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Parser{scanner: scanner}
}

// Next returns the next decoded Event. Blank lines are skipped. A line that
// cannot be decoded yields a *ParseError carrying its line number; the
// parser stays usable and continues with the following line. A failed read
// or an over-long line ends the stream instead: the error is returned once,
// with the position it happened at, and every later call reports io.EOF.
// io.EOF signals a clean end of input.
func (p *Parser) Next() (Event, error) {
	if p.done {
		return Event{}, io.EOF
	}
	for p.scanner.Scan() {
		p.line++
		text := strings.TrimSpace(p.scanner.Text())
		if text == "" {
			continue
		}
		return decodeLine(text, p.line)
	}
	p.done = true
	if err := p.scanner.Err(); err != nil {
		return Event{}, fmt.Errorf("line %d: %w", p.line+1, err)
	}
	return Event{}, io.EOF
}

// ParseAll drains r, returning every decodable event plus one error per
// undecodable line, both in input order. A stream failure stops the scan;
// it is the final entry of the error list.
func ParseAll(r io.Reader) ([]Event, []error) {
	p := NewParser(r)
	var (
		events []Event
		errs   []error
	)
	for {
		ev, err := p.Next()
		if err == io.EOF {
			return events, errs
		}
		if err != nil {
			errs = append(errs, err)
			var perr *ParseError
			if errors.As(err, &perr) {
				continue
			}
			return events, errs
		}
		events = append(events, ev)
	}
}

// decodeLine runs the logfmt decoder over a single line so that a syntax
// error is contained to that line. The decoder is sized to the line: its
// default buffer would reject long records the scanner already accepted.
func decodeLine(text string, line int) (Event, error) {
	var (
		tsValue, typeValue, noteValue string
		hasTS, hasType                bool
	)

	dec := logfmt.NewDecoderSize(strings.NewReader(text), len(text)+1)
	for dec.ScanRecord() {
		for dec.ScanKeyval() {
			switch string(dec.Key()) {
			case fieldTimestamp:
				tsValue = string(dec.Value())
				hasTS = true
			case fieldType:
				typeValue = string(dec.Value())
				hasType = true
			case fieldContent:
				noteValue = string(dec.Value())
			}
		}
	}
	if err := dec.Err(); err != nil {
		return Event{}, &ParseError{Line: line, Reason: ErrMalformedLine, Detail: err.Error()}
	}
	if !hasTS || tsValue == "" {
		return Event{}, &ParseError{Line: line, Reason: ErrMalformedLine, Detail: "missing " + fieldTimestamp}
	}
	if !hasType || typeValue == "" {
		return Event{}, &ParseError{Line: line, Reason: ErrMalformedLine, Detail: "missing " + fieldType}
	}

	kind, ok := ParseKind(typeValue)
	if !ok {
		return Event{}, &ParseError{Line: line, Reason: ErrUnknownEventKind, Detail: typeValue}
	}

	ts, err := time.Parse(time.RFC3339, tsValue)
	if err != nil {
		return Event{}, &ParseError{Line: line, Reason: ErrBadTimestamp, Detail: tsValue}
	}

	return Event{Timestamp: ts, Kind: kind, Note: noteValue}, nil
}
