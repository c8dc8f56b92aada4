package timeentry

import (
	"time"

	"github.com/shopspring/decimal"
)

type Entry struct {
	ID           string           `json:"id"`
	EmployeeID   string           `json:"employeeId"`
	Date         time.Time        `json:"date"`
	ClockIn      time.Time        `json:"clockIn"`
	ClockOut     *time.Time       `json:"clockOut"`
	BreakMinutes int              `json:"breakMinutes"`
	HoursWorked  *decimal.Decimal `json:"hoursWorked"`
	CreatedAt    time.Time        `json:"createdAt"`
}

func (e Entry) Open() bool {
	return e.ClockOut == nil
}

// Worked returns the closed entry's hours, or zero while it is still open.
func (e Entry) Worked() decimal.Decimal {
	if e.HoursWorked == nil {
		return decimal.Zero
	}
	return *e.HoursWorked
}

type RangeFilter struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
}
