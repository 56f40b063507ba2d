package attendance

import (
	"bytes"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// Report is everything one pass over a log produced: daily and monthly
// summaries sorted ascending, the trailing open session if any, and the
// collected non-fatal diagnostics (parse faults, state faults, an
// unterminated tail, negative-duration exclusions).
type Report struct {
	Days     []DailySummary
	Months   []MonthlySummary
	Open     *OpenSession
	Warnings []error
}

// Summarize is the engine's batch entry point. It drains r completely
// before any decoding starts, then parses, reconstructs and aggregates.
// Only the initial read can fail; everything else is collected into
// Warnings next to the usable result.
func Summarize(r io.Reader, rate decimal.Decimal) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	events, parseErrs := ParseAll(bytes.NewReader(data))
	rec := Reconstruct(events)
	days, months, aggErrs := Aggregate(rec.Sessions, rate)

	report := &Report{Days: days, Months: months, Open: rec.Open}
	report.Warnings = append(report.Warnings, parseErrs...)
	report.Warnings = append(report.Warnings, rec.Errs...)
	report.Warnings = append(report.Warnings, aggErrs...)
	return report, nil
}

// Day returns the summary for one calendar date.
func (r *Report) Day(date Date) (DailySummary, bool) {
	for _, day := range r.Days {
		if day.Date == date {
			return day, true
		}
	}
	return DailySummary{}, false
}

// Month returns the summary for one calendar month.
func (r *Report) Month(year int, month time.Month) (MonthlySummary, bool) {
	for _, m := range r.Months {
		if m.Year == year && m.Month == month {
			return m, true
		}
	}
	return MonthlySummary{}, false
}

// LatestMonth returns the most recent month present in the log.
func (r *Report) LatestMonth() (MonthlySummary, bool) {
	if len(r.Months) == 0 {
		return MonthlySummary{}, false
	}
	return r.Months[len(r.Months)-1], true
}

// DaysIn returns the daily summaries belonging to one calendar month, in
// date order.
func (r *Report) DaysIn(year int, month time.Month) []DailySummary {
	var days []DailySummary
	for _, day := range r.Days {
		if day.Date.Year == year && day.Date.Month == month {
			days = append(days, day)
		}
	}
	return days
}
