package reports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"timeclock/internal/domain/directory"
	"timeclock/internal/domain/payroll"
	"timeclock/internal/domain/reconcile"
	"timeclock/internal/domain/schedule"
	"timeclock/internal/domain/timeentry"
)

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func sampleWeek(t *testing.T) []reconcile.WeeklySummary {
	t.Helper()
	out := monday.Add(19 * time.Hour)
	worked := decimal.RequireFromString("10.5")
	summaries, err := reconcile.Reconcile(monday,
		[]directory.Employee{{ID: "a", Name: "Ada"}, {ID: "b", Name: "Bo"}},
		[]schedule.Entry{{EmployeeID: "a", Date: monday, Start: shiftAt(9, 0), End: shiftAt(17, 0)}},
		[]timeentry.Entry{{EmployeeID: "a", Date: monday, ClockIn: monday.Add(8 * time.Hour), ClockOut: &out, HoursWorked: &worked}},
		decimal.NewFromInt(40))
	require.NoError(t, err)
	return summaries
}

func TestWeeklyCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WeeklyCSV(&buf, sampleWeek(t)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, weeklyHeader, records[0])
	assert.Equal(t, []string{"a", "Ada", "2026-03-02", "2026-03-08", "8", "10.5", "0", "2.5"}, records[1])
	assert.Equal(t, "b", records[2][0])
}

func TestWeeklyXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WeeklyXLSX(&buf, sampleWeek(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, dailySheet}, f.GetSheetList())
	name, err := f.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ada", name)
	actual, err := f.GetCellValue(summarySheet, "F2")
	require.NoError(t, err)
	assert.Equal(t, "10.5", actual)

	rows, err := f.GetRows(dailySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1+14)
}

func TestPayStubsCSV(t *testing.T) {
	stub := payroll.PayStub{
		ID:              "p1",
		EmployeeID:      "a",
		PeriodStart:     monday,
		PeriodEnd:       monday.AddDate(0, 0, 6),
		Status:          payroll.StatusDraft,
		RegularHours:    decimal.NewFromInt(40),
		OvertimeHours:   decimal.NewFromInt(4),
		HourlyRate:      decimal.NewFromInt(20),
		GrossPay:        decimal.NewFromInt(920),
		TotalDeductions: decimal.RequireFromString("226.78"),
		NetPay:          decimal.RequireFromString("693.22"),
	}

	var buf bytes.Buffer
	require.NoError(t, PayStubsCSV(&buf, []payroll.PayStub{stub}))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"p1", "a", "2026-03-02", "2026-03-08", "draft", "40", "4", "20.00", "920.00", "226.78", "693.22"}, records[1])
}

func shiftAt(hour, minute int) schedule.ShiftTime {
	return schedule.ShiftTime(hour*60 + minute)
}
