package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji/kintai/internal/attendance"
)

// SheetName returns the worksheet name used for a month's export.
func SheetName(m attendance.MonthlySummary) string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// WriteMonth writes one month's attendance to an Excel workbook at path:
// a bold header row, one row per session, then total and salary rows.
// The workbook is built in memory and written by a single SaveAs, so a
// failed export leaves no partial file behind.
func WriteMonth(path string, month attendance.MonthlySummary, days []attendance.DailySummary) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(month)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	rows := [][]any{{"Date", "Time", "Note", "Hours"}}
	for _, day := range days {
		for _, s := range day.Sessions {
			net, err := s.NetMinutes()
			if err != nil {
				return err
			}
			rows = append(rows, []any{day.Date.String(), TimeRange(s), s.Note, attendance.FormatHours(net)})
		}
	}
	rows = append(rows,
		[]any{"total", "", "", month.Hours()},
		[]any{"salary", "", "", month.Salary.String()},
	)

	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", bold); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "B", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "C", "D", 16); err != nil {
		return err
	}

	return f.SaveAs(path)
}
