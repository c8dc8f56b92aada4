package notifications

const (
	TypeRequestSubmitted = "request_submitted"
	TypeRequestApproved  = "request_approved"
	TypeRequestDenied    = "request_denied"
	TypeRequestFailed    = "request_failed"
	TypeTimeOffSubmitted = "time_off_submitted"
	TypeTimeOffApproved  = "time_off_approved"
	TypeTimeOffDenied    = "time_off_denied"
	TypePayStubFinalized = "pay_stub_finalized"
)

const (
	VariantSuccess = "success"
	VariantError   = "error"
	VariantWarning = "warning"
)

const DefaultChannel = "timeclock:notifications"
