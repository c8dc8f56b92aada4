package timeoff

import (
	"time"

	"github.com/shopspring/decimal"

	"timeclock/internal/platform/clock"
)

// CalculateDays returns the inclusive number of calendar days between start
// and end.
func CalculateDays(start, end time.Time) (int, error) {
	start, end = clock.Date(start), clock.Date(end)
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// HoursRequested is the day span multiplied by the standard workday.
func HoursRequested(start, end time.Time, workday decimal.Decimal) (decimal.Decimal, error) {
	days, err := CalculateDays(start, end)
	if err != nil {
		return decimal.Zero, err
	}
	return workday.Mul(decimal.NewFromInt(int64(days))), nil
}
