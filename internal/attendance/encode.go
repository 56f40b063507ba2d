package attendance

import (
	"bytes"
	"time"

	"github.com/go-logfmt/logfmt"
)

// EncodeLine renders one event as a single logfmt record, without a trailing
// newline: ts=<RFC3339> type=<kind> and, when present, content="...". Lines
// produced here decode back to the same event at second precision.
func EncodeLine(ev Event) (string, error) {
	var buf bytes.Buffer
	enc := logfmt.NewEncoder(&buf)
	if err := enc.EncodeKeyval(fieldTimestamp, ev.Timestamp.Format(time.RFC3339)); err != nil {
		return "", err
	}
	if err := enc.EncodeKeyval(fieldType, ev.Kind.String()); err != nil {
		return "", err
	}
	if ev.Note != "" {
		if err := enc.EncodeKeyval(fieldContent, ev.Note); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
