package payroll

import (
	"github.com/shopspring/decimal"

	"timeclock/internal/platform/config"
)

// Calculator turns hours and a rate into pay. Every line is carried at full
// precision and rounded to cents only when it is written out.
type Calculator struct {
	Rates              config.DeductionRates
	OvertimeMultiplier decimal.Decimal
}

func NewCalculator(cfg config.Config) Calculator {
	return Calculator{Rates: cfg.Rates, OvertimeMultiplier: cfg.OvertimeMultiplier}
}

type Breakdown struct {
	RegularPay      decimal.Decimal
	OvertimePay     decimal.Decimal
	GrossPay        decimal.Decimal
	FederalTax      decimal.Decimal
	StateTax        decimal.Decimal
	SocialSecurity  decimal.Decimal
	Medicare        decimal.Decimal
	OtherDeductions decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
}

func (c Calculator) Compute(regularHours, overtimeHours, rate decimal.Decimal) (Breakdown, error) {
	if regularHours.IsNegative() || overtimeHours.IsNegative() {
		return Breakdown{}, ErrNegativeHours
	}

	regular := regularHours.Mul(rate)
	overtime := overtimeHours.Mul(rate).Mul(c.OvertimeMultiplier)
	gross := regular.Add(overtime)

	out := Breakdown{
		RegularPay:      cents(regular),
		OvertimePay:     cents(overtime),
		OtherDeductions: decimal.Zero,
	}
	out.GrossPay = out.RegularPay.Add(out.OvertimePay)

	// Lines are rounded one by one, so each is capped at what is left of
	// gross. Net pay stays at or above zero even when the rates sum to 1.
	remaining := out.GrossPay
	deduct := func(rate decimal.Decimal) decimal.Decimal {
		line := decimal.Min(cents(gross.Mul(rate)), remaining)
		remaining = remaining.Sub(line)
		return line
	}
	out.FederalTax = deduct(c.Rates.FederalTax)
	out.StateTax = deduct(c.Rates.StateTax)
	out.SocialSecurity = deduct(c.Rates.SocialSecurity)
	out.Medicare = deduct(c.Rates.Medicare)

	out.TotalDeductions = out.FederalTax.Add(out.StateTax).Add(out.SocialSecurity).Add(out.Medicare).Add(out.OtherDeductions)
	out.NetPay = out.GrossPay.Sub(out.TotalDeductions)
	return out, nil
}

func cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(centPlaces)
}
