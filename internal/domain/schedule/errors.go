package schedule

import "errors"

var (
	ErrInvalidTime     = errors.New("invalid shift time")
	ErrEndBeforeStart  = errors.New("shift end must be after start")
	ErrScheduleMissing = errors.New("schedule entry not found")
	ErrInvalidRange    = errors.New("end date must be on or after start date")
)
