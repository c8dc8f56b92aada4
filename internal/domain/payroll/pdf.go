package payroll

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"timeclock/internal/platform/clock"
)

// WritePDF renders a single-page pay stub.
func WritePDF(w io.Writer, stub PayStub, employeeName string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Pay Stub")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", employeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", stub.PeriodStart.Format(clock.DateLayout), stub.PeriodEnd.Format(clock.DateLayout)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", stub.Status))
	if stub.PayDate != nil {
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Pay date: %s", stub.PayDate.Format(clock.DateLayout)))
	}
	pdf.Ln(10)

	lines := []struct {
		label string
		value decimal.Decimal
	}{
		{fmt.Sprintf("Regular (%s h @ %s)", stub.RegularHours.String(), money(stub.HourlyRate)), stub.RegularPay},
		{fmt.Sprintf("Overtime (%s h)", stub.OvertimeHours.String()), stub.OvertimePay},
		{"Gross pay", stub.GrossPay},
		{"Federal tax", stub.FederalTax},
		{"State tax", stub.StateTax},
		{"Social security", stub.SocialSecurity},
		{"Medicare", stub.Medicare},
		{"Other deductions", stub.OtherDeductions},
		{"Total deductions", stub.TotalDeductions},
		{"Net pay", stub.NetPay},
	}
	for _, line := range lines {
		pdf.CellFormat(110, 8, line.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, money(line.value), "", 1, "R", false, 0, "")
	}

	return pdf.Output(w)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(centPlaces)
}
