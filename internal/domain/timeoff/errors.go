package timeoff

import "errors"

var (
	ErrInvalidType         = errors.New("invalid time off type")
	ErrInvalidRange        = errors.New("end date must be on or after start date")
	ErrSpansYears          = errors.New("time off cannot span calendar years")
	ErrDateInPast          = errors.New("start date is in the past")
	ErrInsufficientBalance = errors.New("insufficient time off balance")
	ErrNegativeAllotment   = errors.New("allotted hours must be zero or more")
	ErrRequestNotFound     = errors.New("time off request not found")
	ErrAlreadyReviewed     = errors.New("request already reviewed")
)
