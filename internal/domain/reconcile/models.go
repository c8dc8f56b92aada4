package reconcile

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrWeekStartNotMonday = errors.New("week start must be a Monday")

type DaySummary struct {
	Date           time.Time       `json:"date"`
	ScheduledHours decimal.Decimal `json:"scheduledHours"`
	ActualHours    decimal.Decimal `json:"actualHours"`
}

type WeeklySummary struct {
	EmployeeID     string          `json:"employeeId"`
	EmployeeName   string          `json:"employeeName"`
	WeekStart      time.Time       `json:"weekStart"`
	WeekEnd        time.Time       `json:"weekEnd"`
	ScheduledHours decimal.Decimal `json:"scheduledHours"`
	ActualHours    decimal.Decimal `json:"actualHours"`
	OvertimeHours  decimal.Decimal `json:"overtimeHours"`
	Variance       decimal.Decimal `json:"variance"`
	Days           []DaySummary    `json:"days"`
}

// RegularHours is the part of ActualHours paid at the base rate.
func (w WeeklySummary) RegularHours() decimal.Decimal {
	return w.ActualHours.Sub(w.OvertimeHours)
}
