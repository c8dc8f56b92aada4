package requests

import (
	"timeclock/internal/domain/schedule"
)

// Details carries the fields that only make sense for one request type.
type Details interface {
	Type() string
	validate(requesterID string) error
}

// ScheduleChange moves the requester's shift on the requested date.
type ScheduleChange struct {
	Current   *schedule.Shift
	Requested schedule.Shift
}

func (ScheduleChange) Type() string { return TypeScheduleChange }

func (d ScheduleChange) validate(string) error {
	return d.Requested.Validate()
}

// ShiftSwap exchanges the requester's shift with another employee's shift on
// the same date.
type ShiftSwap struct {
	SwapWithEmployeeID string
}

func (ShiftSwap) Type() string { return TypeShiftSwap }

func (d ShiftSwap) validate(requesterID string) error {
	if d.SwapWithEmployeeID == "" {
		return ErrSwapPartnerRequired
	}
	if d.SwapWithEmployeeID == requesterID {
		return ErrSwapWithSelf
	}
	return nil
}

// TimeOffCoverage asks for someone to cover a shift; approving it does not
// change the schedule by itself.
type TimeOffCoverage struct {
	Current *schedule.Shift
}

func (TimeOffCoverage) Type() string { return TypeTimeOffCoverage }

func (d TimeOffCoverage) validate(string) error {
	if d.Current == nil {
		return nil
	}
	return d.Current.Validate()
}

// DetailsInput is the flat shape clients send; BuildDetails keeps only the
// fields relevant to requestType.
type DetailsInput struct {
	CurrentStart       *schedule.ShiftTime
	CurrentEnd         *schedule.ShiftTime
	RequestedStart     *schedule.ShiftTime
	RequestedEnd       *schedule.ShiftTime
	SwapWithEmployeeID string
}

func BuildDetails(requestType string, in DetailsInput) (Details, error) {
	current := shiftOf(in.CurrentStart, in.CurrentEnd)
	switch requestType {
	case TypeScheduleChange:
		requested := shiftOf(in.RequestedStart, in.RequestedEnd)
		if requested == nil {
			return nil, ErrRequestedTimes
		}
		return ScheduleChange{Current: current, Requested: *requested}, nil
	case TypeShiftSwap:
		return ShiftSwap{SwapWithEmployeeID: in.SwapWithEmployeeID}, nil
	case TypeTimeOffCoverage:
		return TimeOffCoverage{Current: current}, nil
	default:
		return nil, ErrInvalidType
	}
}

func shiftOf(start, end *schedule.ShiftTime) *schedule.Shift {
	if start == nil || end == nil {
		return nil
	}
	return &schedule.Shift{Start: *start, End: *end}
}
