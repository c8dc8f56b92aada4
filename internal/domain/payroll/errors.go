package payroll

import "errors"

var (
	ErrNegativeHours     = errors.New("hours must not be negative")
	ErrInvalidPeriod     = errors.New("invalid pay period")
	ErrNotHourlyEmployee = errors.New("employee is not paid hourly")
	ErrMissingRate       = errors.New("employee has no hourly rate")
	ErrPayStubNotFound   = errors.New("pay stub not found")
	ErrInvalidTransition = errors.New("invalid pay stub status transition")
)
