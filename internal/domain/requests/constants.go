package requests

const (
	TypeScheduleChange  = "schedule_change"
	TypeShiftSwap       = "shift_swap"
	TypeTimeOffCoverage = "time_off_coverage"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

func ValidType(requestType string) bool {
	switch requestType {
	case TypeScheduleChange, TypeShiftSwap, TypeTimeOffCoverage:
		return true
	}
	return false
}
