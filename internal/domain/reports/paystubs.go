package reports

import (
	"encoding/csv"
	"io"

	"timeclock/internal/domain/payroll"
	"timeclock/internal/platform/clock"
)

var payStubHeader = []string{
	"pay_stub_id", "employee_id", "period_start", "period_end", "status",
	"regular_hours", "overtime_hours", "hourly_rate", "gross_pay", "total_deductions", "net_pay",
}

// PayStubsCSV is the payroll register: one line per stub, currency in cents.
func PayStubsCSV(w io.Writer, stubs []payroll.PayStub) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(payStubHeader); err != nil {
		return err
	}
	for _, p := range stubs {
		if err := writer.Write([]string{
			p.ID,
			p.EmployeeID,
			p.PeriodStart.Format(clock.DateLayout),
			p.PeriodEnd.Format(clock.DateLayout),
			p.Status,
			p.RegularHours.String(),
			p.OvertimeHours.String(),
			p.HourlyRate.StringFixed(2),
			p.GrossPay.StringFixed(2),
			p.TotalDeductions.StringFixed(2),
			p.NetPay.StringFixed(2),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
