package reconcile

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"timeclock/internal/domain/directory"
	"timeclock/internal/domain/schedule"
	"timeclock/internal/domain/timeentry"
	"timeclock/internal/platform/clock"
)

// Reconcile joins one week of schedules and closed time entries per
// employee. Every employee passed in gets a summary, even with no data.
// Output is ordered so that the employees needing the most attention come
// first: overtime descending, then absolute variance descending.
func Reconcile(weekStart time.Time, employees []directory.Employee, schedules []schedule.Entry, entries []timeentry.Entry, threshold decimal.Decimal) ([]WeeklySummary, error) {
	weekStart = clock.Date(weekStart)
	if !clock.IsMonday(weekStart) {
		return nil, ErrWeekStartNotMonday
	}
	days := clock.WeekDays(weekStart)
	weekEnd := days[len(days)-1]

	type dayKey struct {
		employeeID string
		date       time.Time
	}
	scheduled := make(map[dayKey]decimal.Decimal)
	for _, entry := range schedules {
		key := dayKey{entry.EmployeeID, clock.Date(entry.Date)}
		scheduled[key] = entry.Hours()
	}
	actual := make(map[dayKey]decimal.Decimal)
	for _, entry := range entries {
		if entry.Open() {
			continue
		}
		key := dayKey{entry.EmployeeID, clock.Date(entry.Date)}
		actual[key] = actual[key].Add(entry.Worked())
	}

	out := make([]WeeklySummary, 0, len(employees))
	for _, employee := range employees {
		summary := WeeklySummary{
			EmployeeID:     employee.ID,
			EmployeeName:   employee.Name,
			WeekStart:      weekStart,
			WeekEnd:        weekEnd,
			ScheduledHours: decimal.Zero,
			ActualHours:    decimal.Zero,
			Days:           make([]DaySummary, 0, len(days)),
		}
		for _, day := range days {
			key := dayKey{employee.ID, day}
			daySummary := DaySummary{Date: day, ScheduledHours: scheduled[key], ActualHours: actual[key]}
			summary.ScheduledHours = summary.ScheduledHours.Add(daySummary.ScheduledHours)
			summary.ActualHours = summary.ActualHours.Add(daySummary.ActualHours)
			summary.Days = append(summary.Days, daySummary)
		}
		summary.OvertimeHours = Overtime(summary.ActualHours, threshold)
		summary.Variance = summary.ActualHours.Sub(summary.ScheduledHours)
		out = append(out, summary)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].OvertimeHours.Cmp(out[j].OvertimeHours); c != 0 {
			return c > 0
		}
		if c := out[i].Variance.Abs().Cmp(out[j].Variance.Abs()); c != 0 {
			return c > 0
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}

// Overtime returns the hours above threshold, never negative.
func Overtime(actual, threshold decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, actual.Sub(threshold))
}
