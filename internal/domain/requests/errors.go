package requests

import "errors"

var (
	ErrRequestNotFound     = errors.New("schedule request not found")
	ErrInvalidType         = errors.New("invalid request type")
	ErrReasonRequired      = errors.New("reason is required")
	ErrDateInPast          = errors.New("requested date is in the past")
	ErrRequestedTimes      = errors.New("requested start and end are required")
	ErrSwapPartnerRequired = errors.New("swap partner is required")
	ErrSwapWithSelf        = errors.New("cannot swap a shift with yourself")
	ErrInvalidSwapPartner  = errors.New("swap partner is not an active employee")
	ErrAlreadyReviewed     = errors.New("request already reviewed")
	ErrSwapApplyFailed     = errors.New("shift swap could not be applied")
	ErrScheduleApplyFailed = errors.New("schedule change could not be applied")
)
