package reports

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"timeclock/internal/domain/reconcile"
	"timeclock/internal/platform/clock"
)

var weeklyHeader = []string{"employee_id", "employee_name", "week_start", "week_end", "scheduled_hours", "actual_hours", "overtime_hours", "variance"}

func weeklyRow(s reconcile.WeeklySummary) []string {
	return []string{
		s.EmployeeID,
		s.EmployeeName,
		s.WeekStart.Format(clock.DateLayout),
		s.WeekEnd.Format(clock.DateLayout),
		s.ScheduledHours.String(),
		s.ActualHours.String(),
		s.OvertimeHours.String(),
		s.Variance.String(),
	}
}

// WeeklyCSV writes one row per summary in the order given.
func WeeklyCSV(w io.Writer, summaries []reconcile.WeeklySummary) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(weeklyHeader); err != nil {
		return err
	}
	for _, s := range summaries {
		if err := writer.Write(weeklyRow(s)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

const (
	summarySheet = "Summary"
	dailySheet   = "Daily"
)

// WeeklyXLSX writes a workbook with a summary sheet and a per-day sheet.
func WeeklyXLSX(w io.Writer, summaries []reconcile.WeeklySummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if err := writeRow(f, summarySheet, 1, toAny(weeklyHeader)); err != nil {
		return err
	}
	for i, s := range summaries {
		row := []any{
			s.EmployeeID,
			s.EmployeeName,
			s.WeekStart.Format(clock.DateLayout),
			s.WeekEnd.Format(clock.DateLayout),
			s.ScheduledHours.InexactFloat64(),
			s.ActualHours.InexactFloat64(),
			s.OvertimeHours.InexactFloat64(),
			s.Variance.InexactFloat64(),
		}
		if err := writeRow(f, summarySheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(dailySheet); err != nil {
		return err
	}
	if err := writeRow(f, dailySheet, 1, []any{"employee_id", "date", "scheduled_hours", "actual_hours"}); err != nil {
		return err
	}
	next := 2
	for _, s := range summaries {
		for _, day := range s.Days {
			row := []any{s.EmployeeID, day.Date.Format(clock.DateLayout), day.ScheduledHours.InexactFloat64(), day.ActualHours.InexactFloat64()}
			if err := writeRow(f, dailySheet, next, row); err != nil {
				return err
			}
			next++
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
