// Package report renders the aggregation engine's output: Markdown
// tables on a writer and single-month Excel workbooks on disk.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji/kintai/internal/attendance"
)

// TimeRange renders a session's work segments as HH:MM~HH:MM pairs
// joined by commas, breaks elided. Times keep the offset they were
// recorded in; a segment crossing midnight shows wall-clock times only.
func TimeRange(s attendance.Session) string {
	segments := s.Segments()

	var builder strings.Builder
	for i, seg := range segments {
		if i > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(seg.Start.Format("15:04"))
		builder.WriteByte('~')
		builder.WriteString(seg.End.Format("15:04"))
	}
	return builder.String()
}

// WriteDaily emits the daily attendance table, one row per session,
// followed by a blank separator line.
//
//	| date | time | content |
//	|------|------|---------|
//	| 2025/11/04 | 09:00~12:00,13:00~18:00 | release prep |
func WriteDaily(w io.Writer, days []attendance.DailySummary) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "| date | time | content |")
	fmt.Fprintln(bw, "|------|------|---------|")
	for _, day := range days {
		for _, s := range day.Sessions {
			fmt.Fprintf(bw, "| %s | %s | %s |\n", day.Date, TimeRange(s), s.Note)
		}
	}
	fmt.Fprintln(bw)
	return bw.Flush()
}

// WriteMonthly emits the monthly totals table, one row per month,
// followed by a blank separator line.
//
//	| month | hours | salary |
//	|-------|-------|--------|
//	| 2025/11 | 8h00m (8.00h) | 280 |
func WriteMonthly(w io.Writer, months []attendance.MonthlySummary) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "| month | hours | salary |")
	fmt.Fprintln(bw, "|-------|-------|--------|")
	for _, m := range months {
		fmt.Fprintf(bw, "| %s | %s | %s |\n", m.Label(), m.Hours(), m.Salary)
	}
	fmt.Fprintln(bw)
	return bw.Flush()
}
