package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayStub freezes the hourly rate in effect when it was created; later rate
// changes never re-price it.
type PayStub struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employeeId"`
	PeriodStart     time.Time       `json:"periodStart"`
	PeriodEnd       time.Time       `json:"periodEnd"`
	RegularHours    decimal.Decimal `json:"regularHours"`
	OvertimeHours   decimal.Decimal `json:"overtimeHours"`
	HourlyRate      decimal.Decimal `json:"hourlyRate"`
	RegularPay      decimal.Decimal `json:"regularPay"`
	OvertimePay     decimal.Decimal `json:"overtimePay"`
	GrossPay        decimal.Decimal `json:"grossPay"`
	FederalTax      decimal.Decimal `json:"federalTax"`
	StateTax        decimal.Decimal `json:"stateTax"`
	SocialSecurity  decimal.Decimal `json:"socialSecurity"`
	Medicare        decimal.Decimal `json:"medicare"`
	OtherDeductions decimal.Decimal `json:"otherDeductions"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	NetPay          decimal.Decimal `json:"netPay"`
	Status          string          `json:"status"`
	PayDate         *time.Time      `json:"payDate,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func (p *PayStub) apply(b Breakdown) {
	p.RegularPay = b.RegularPay
	p.OvertimePay = b.OvertimePay
	p.GrossPay = b.GrossPay
	p.FederalTax = b.FederalTax
	p.StateTax = b.StateTax
	p.SocialSecurity = b.SocialSecurity
	p.Medicare = b.Medicare
	p.OtherDeductions = b.OtherDeductions
	p.TotalDeductions = b.TotalDeductions
	p.NetPay = b.NetPay
}

type ComputeInput struct {
	EmployeeID    string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	PayDate       *time.Time
}
