package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

type Entry struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Date       time.Time `json:"date"`
	Start      ShiftTime `json:"startTime"`
	End        ShiftTime `json:"endTime"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (e Entry) Hours() decimal.Decimal {
	return e.Start.HoursUntil(e.End)
}

type Shift struct {
	Start ShiftTime
	End   ShiftTime
}

func (s Shift) Validate() error {
	if !s.Start.Valid() || !s.End.Valid() {
		return ErrInvalidTime
	}
	if s.End <= s.Start {
		return ErrEndBeforeStart
	}
	return nil
}

type RangeFilter struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
}
