package attendance

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

const sampleLog = `ts=2025-11-04T09:00:00+09:00 type=start
ts=2025-11-04T12:00:00+09:00 type=break_start
ts=2025-11-04T13:00:00+09:00 type=break_end
ts=2025-11-04T18:00:00+09:00 type=finish content="release prep"
ts=2025-11-05T10:00:00+09:00 type=start
ts=2025-11-05T14:30:00+09:00 type=finish
ts=2025-12-01T09:00:00+09:00 type=start
ts=2025-12-01T11:00:00+09:00 type=finish
`

func TestSummarizeCleanLog(t *testing.T) {
	report, err := Summarize(strings.NewReader(sampleLog), decimal.NewFromInt(35))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(report.Warnings) != 0 {
		t.Fatalf("Warnings = %v, want none", report.Warnings)
	}
	if report.Open != nil {
		t.Fatalf("Open = %+v, want nil", report.Open)
	}

	if len(report.Days) != 3 {
		t.Fatalf("Days length = %d, want 3", len(report.Days))
	}
	day, ok := report.Day(Date{2025, time.November, 4})
	if !ok {
		t.Fatalf("Day(2025/11/04) not found")
	}
	if day.NetMinutes != 480 {
		t.Fatalf("2025/11/04 net minutes = %d, want 480", day.NetMinutes)
	}
	if day.Sessions[0].Note != "release prep" {
		t.Fatalf("note = %q, want %q", day.Sessions[0].Note, "release prep")
	}

	november, ok := report.Month(2025, time.November)
	if !ok {
		t.Fatalf("Month(2025/11) not found")
	}
	if november.NetMinutes != 480+270 {
		t.Fatalf("november minutes = %d, want 750", november.NetMinutes)
	}
	// 12.5h at 35.
	if november.Salary.String() != "437.5" {
		t.Fatalf("november salary = %q, want %q", november.Salary.String(), "437.5")
	}

	latest, ok := report.LatestMonth()
	if !ok || latest.Label() != "2025/12" {
		t.Fatalf("LatestMonth = %v, %v, want 2025/12", latest.Label(), ok)
	}

	novemberDays := report.DaysIn(2025, time.November)
	if len(novemberDays) != 2 {
		t.Fatalf("DaysIn(2025/11) length = %d, want 2", len(novemberDays))
	}
}

func TestSummarizeCollectsWarningsAndKeepsGoing(t *testing.T) {
	log := `ts=2025-11-04T09:00:00+09:00 type=start
not a log line at all
ts=2025-11-04T10:00:00+09:00 type=nap
ts=2025-11-04T18:00:00+09:00 type=finish
ts=2025-11-05T09:00:00+09:00 type=break_end
ts=2025-11-06T09:00:00+09:00 type=start
`

	report, err := Summarize(strings.NewReader(log), decimal.Zero)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	// One malformed line, one unknown kind, one stray break_end, one
	// unterminated tail.
	if len(report.Warnings) != 4 {
		t.Fatalf("Warnings = %v, want 4", report.Warnings)
	}
	wants := []error{ErrMalformedLine, ErrUnknownEventKind, ErrUnexpectedBreakEnd, ErrUnterminatedSession}
	for i, want := range wants {
		if !errors.Is(report.Warnings[i], want) {
			t.Fatalf("warning %d = %v, want %v", i, report.Warnings[i], want)
		}
	}

	// The clean session still made it through.
	if len(report.Days) != 1 || report.Days[0].NetMinutes != 540 {
		t.Fatalf("Days = %+v, want one day with 540 minutes", report.Days)
	}
	if report.Open == nil {
		t.Fatalf("Open = nil, want the unterminated tail")
	}
	if !report.Open.Start.Equal(ts(t, "2025-11-06T09:00:00+09:00")) {
		t.Fatalf("Open.Start = %s, want 2025-11-06 09:00", report.Open.Start)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	report, err := Summarize(strings.NewReader(""), decimal.Zero)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(report.Days) != 0 || len(report.Months) != 0 || len(report.Warnings) != 0 || report.Open != nil {
		t.Fatalf("report = %+v, want empty", report)
	}
	if _, ok := report.LatestMonth(); ok {
		t.Fatalf("LatestMonth on empty report = ok, want not found")
	}
}

func TestSummarizeOpenSessionExcludedFromTotals(t *testing.T) {
	log := `ts=2025-11-04T09:00:00+09:00 type=start
ts=2025-11-04T17:00:00+09:00 type=finish
ts=2025-11-05T09:00:00+09:00 type=start
`

	report, err := Summarize(strings.NewReader(log), decimal.Zero)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	month, ok := report.Month(2025, time.November)
	if !ok {
		t.Fatalf("Month(2025/11) not found")
	}
	if month.NetMinutes != 480 {
		t.Fatalf("month minutes = %d, want only the closed session's 480", month.NetMinutes)
	}
	if _, ok := report.Day(Date{2025, time.November, 5}); ok {
		t.Fatalf("open session produced a daily summary, want none")
	}
}
