package timeoff

import (
	"time"

	"github.com/shopspring/decimal"
)

type Request struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employeeId"`
	Type           string          `json:"type"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	HoursRequested decimal.Decimal `json:"hoursRequested"`
	Reason         string          `json:"reason,omitempty"`
	Status         string          `json:"status"`
	ReviewNotes    *string         `json:"reviewNotes,omitempty"`
	ReviewedBy     *string         `json:"reviewedBy,omitempty"`
	ReviewedAt     *time.Time      `json:"reviewedAt,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

func (r Request) Year() int {
	return r.StartDate.Year()
}

// Balance is one employee's annual pool for a time off type. Pending hours
// are reserved by open requests and count against what remains.
type Balance struct {
	EmployeeID string          `json:"employeeId"`
	Type       string          `json:"type"`
	Year       int             `json:"year"`
	Allotted   decimal.Decimal `json:"allotted"`
	Pending    decimal.Decimal `json:"pending"`
	Used       decimal.Decimal `json:"used"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (b Balance) Remaining() decimal.Decimal {
	return b.Allotted.Sub(b.Pending).Sub(b.Used)
}

type SubmitInput struct {
	EmployeeID string
	Type       string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
}

type Review struct {
	ReviewerID string
	Notes      string
}

type ListFilter struct {
	EmployeeID string
	Status     string
	Limit      int
	Offset     int
}
