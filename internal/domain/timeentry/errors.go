package timeentry

import "errors"

var (
	ErrAlreadyClockedIn = errors.New("employee is already clocked in")
	ErrNoActiveEntry    = errors.New("no active time entry")
	ErrEntryNotFound    = errors.New("time entry not found")
	ErrInvalidBreak     = errors.New("break minutes must be zero or more")
	ErrInvalidRange     = errors.New("end date must be on or after start date")
)
