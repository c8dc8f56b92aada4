package timeentry

import (
	"time"

	"github.com/shopspring/decimal"
)

const hoursPrecision = 4

var secondsPerHour = decimal.NewFromInt(3600)

// HoursWorked returns (clockOut - clockIn - break) in hours, floored at zero.
func HoursWorked(clockIn, clockOut time.Time, breakMinutes int) decimal.Decimal {
	worked := clockOut.Sub(clockIn) - time.Duration(breakMinutes)*time.Minute
	if worked <= 0 {
		return decimal.Zero
	}
	seconds := decimal.NewFromInt(int64(worked / time.Second))
	return seconds.DivRound(secondsPerHour, hoursPrecision)
}
