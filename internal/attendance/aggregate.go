package attendance

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Date is a calendar date taken in the UTC offset its timestamp recorded.
// No conversion happens anywhere: the offset written to the log is
// authoritative for which day a session belongs to.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf extracts the calendar date of t without touching its offset.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// String renders YYYY/MM/DD, the form the daily table shows.
func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// DailySummary groups the sessions that started on one calendar date. A
// session crossing midnight counts toward the day it started.
type DailySummary struct {
	Date       Date
	Sessions   []Session
	NetMinutes int
}

// Hours renders the day's net minutes as "HhMMm (H.HHh)".
func (d DailySummary) Hours() string { return FormatHours(d.NetMinutes) }

// MonthlySummary rolls the daily totals of one calendar month into net
// minutes and a salary at the caller's hourly rate.
type MonthlySummary struct {
	Year       int
	Month      time.Month
	NetMinutes int
	Salary     decimal.Decimal
}

// Label renders YYYY/MM, the form the monthly table shows.
func (m MonthlySummary) Label() string {
	return fmt.Sprintf("%04d/%02d", m.Year, int(m.Month))
}

// Hours renders the month's net minutes as "HhMMm (H.HHh)".
func (m MonthlySummary) Hours() string { return FormatHours(m.NetMinutes) }

// FormatHours derives both display forms from net minutes alone so the pair
// can never disagree.
func FormatHours(netMinutes int) string {
	return fmt.Sprintf("%dh%02dm (%.2fh)",
		netMinutes/60, netMinutes%60, float64(netMinutes)/60)
}

// salaryFor computes net_minutes/60 × rate, rounded half-up to two decimal
// places. Rounding happens here and nowhere else, exactly once per month, so
// per-session drift cannot accumulate.
func salaryFor(netMinutes int, rate decimal.Decimal) decimal.Decimal {
	hours := decimal.NewFromInt(int64(netMinutes)).Div(decimal.NewFromInt(60))
	return hours.Mul(rate).Round(2)
}

// Aggregate groups sessions into per-day and per-month summaries, both
// sorted ascending. A session whose breaks exceed its span is excluded and
// returned as a *NegativeDurationError instead of poisoning the totals.
// Output depends only on the set of sessions, not their order.
func Aggregate(sessions []Session, rate decimal.Decimal) ([]DailySummary, []MonthlySummary, []error) {
	var errs []error

	byDate := make(map[Date]*DailySummary)
	for _, s := range sessions {
		net, err := s.NetMinutes()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		key := DateOf(s.Span.Start)
		day := byDate[key]
		if day == nil {
			day = &DailySummary{Date: key}
			byDate[key] = day
		}
		day.Sessions = append(day.Sessions, s)
		day.NetMinutes += net
	}

	days := make([]DailySummary, 0, len(byDate))
	for _, day := range byDate {
		sort.Slice(day.Sessions, func(i, j int) bool {
			return day.Sessions[i].Span.Start.Before(day.Sessions[j].Span.Start)
		})
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.before(days[j].Date) })

	type monthKey struct {
		year  int
		month time.Month
	}
	byMonth := make(map[monthKey]int)
	for _, day := range days {
		byMonth[monthKey{day.Date.Year, day.Date.Month}] += day.NetMinutes
	}

	months := make([]MonthlySummary, 0, len(byMonth))
	for key, minutes := range byMonth {
		months = append(months, MonthlySummary{
			Year:       key.year,
			Month:      key.month,
			NetMinutes: minutes,
			Salary:     salaryFor(minutes, rate),
		})
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year < months[j].Year
		}
		return months[i].Month < months[j].Month
	})

	return days, months, errs
}
