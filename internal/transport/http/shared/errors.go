package shared

import (
	"errors"
	"log/slog"
	"net/http"

	"timeclock/internal/domain/allocation"
	"timeclock/internal/domain/directory"
	"timeclock/internal/domain/notifications"
	"timeclock/internal/domain/payroll"
	"timeclock/internal/domain/reconcile"
	"timeclock/internal/domain/requests"
	"timeclock/internal/domain/schedule"
	"timeclock/internal/domain/timeentry"
	"timeclock/internal/domain/timeoff"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
)

var (
	ErrForbidden        = errors.New("not permitted to act for this employee")
	ErrEmployeeRequired = errors.New("employeeId is required")
)

type errorMapping struct {
	target error
	status int
	code   string
}

// Checked in order; apply failures wrap lower-level errors and must match
// before them.
var errorMappings = []errorMapping{
	{requests.ErrSwapApplyFailed, http.StatusConflict, "swap_apply_failed"},
	{requests.ErrScheduleApplyFailed, http.StatusConflict, "schedule_apply_failed"},
	{requests.ErrAlreadyReviewed, http.StatusConflict, "already_reviewed"},
	{timeoff.ErrAlreadyReviewed, http.StatusConflict, "already_reviewed"},
	{timeentry.ErrAlreadyClockedIn, http.StatusConflict, "already_clocked_in"},
	{timeentry.ErrNoActiveEntry, http.StatusConflict, "no_active_entry"},
	{payroll.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},

	{ErrForbidden, http.StatusForbidden, "forbidden"},

	{directory.ErrEmployeeNotFound, http.StatusNotFound, "employee_not_found"},
	{timeentry.ErrEntryNotFound, http.StatusNotFound, "time_entry_not_found"},
	{schedule.ErrScheduleMissing, http.StatusNotFound, "schedule_not_found"},
	{requests.ErrRequestNotFound, http.StatusNotFound, "request_not_found"},
	{timeoff.ErrRequestNotFound, http.StatusNotFound, "time_off_not_found"},
	{payroll.ErrPayStubNotFound, http.StatusNotFound, "pay_stub_not_found"},
	{allocation.ErrAllocationNotFound, http.StatusNotFound, "allocation_not_found"},
	{notifications.ErrNotificationNotFound, http.StatusNotFound, "notification_not_found"},

	{ErrEmployeeRequired, http.StatusBadRequest, "employee_required"},
	{directory.ErrEmployeeInactive, http.StatusBadRequest, "employee_inactive"},
	{timeentry.ErrInvalidBreak, http.StatusBadRequest, "invalid_break"},
	{timeentry.ErrInvalidRange, http.StatusBadRequest, "invalid_range"},
	{schedule.ErrInvalidTime, http.StatusBadRequest, "invalid_time"},
	{schedule.ErrEndBeforeStart, http.StatusBadRequest, "end_before_start"},
	{schedule.ErrInvalidRange, http.StatusBadRequest, "invalid_range"},
	{requests.ErrInvalidType, http.StatusBadRequest, "invalid_type"},
	{requests.ErrReasonRequired, http.StatusBadRequest, "reason_required"},
	{requests.ErrDateInPast, http.StatusBadRequest, "date_in_past"},
	{requests.ErrRequestedTimes, http.StatusBadRequest, "requested_times_required"},
	{requests.ErrSwapPartnerRequired, http.StatusBadRequest, "swap_partner_required"},
	{requests.ErrSwapWithSelf, http.StatusBadRequest, "swap_with_self"},
	{requests.ErrInvalidSwapPartner, http.StatusBadRequest, "invalid_swap_partner"},
	{timeoff.ErrInvalidType, http.StatusBadRequest, "invalid_type"},
	{timeoff.ErrInvalidRange, http.StatusBadRequest, "invalid_range"},
	{timeoff.ErrSpansYears, http.StatusBadRequest, "spans_years"},
	{timeoff.ErrDateInPast, http.StatusBadRequest, "date_in_past"},
	{timeoff.ErrInsufficientBalance, http.StatusBadRequest, "insufficient_balance"},
	{timeoff.ErrNegativeAllotment, http.StatusBadRequest, "negative_allotment"},
	{reconcile.ErrWeekStartNotMonday, http.StatusBadRequest, "week_start_not_monday"},
	{payroll.ErrNegativeHours, http.StatusBadRequest, "negative_hours"},
	{payroll.ErrInvalidPeriod, http.StatusBadRequest, "invalid_period"},
	{payroll.ErrNotHourlyEmployee, http.StatusBadRequest, "not_hourly_employee"},
	{payroll.ErrMissingRate, http.StatusBadRequest, "missing_rate"},
	{allocation.ErrNotSalariedEmployee, http.StatusBadRequest, "not_salaried_employee"},
	{allocation.ErrWeekStartNotMonday, http.StatusBadRequest, "week_start_not_monday"},
	{allocation.ErrBuildingRequired, http.StatusBadRequest, "building_required"},
}

// WriteError maps a domain error to a status and code. The domain message is
// returned as is; unknown errors are logged and hidden behind a 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			api.Fail(w, m.status, m.code, err.Error(), requestID)
			return
		}
	}
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "requestId", requestID, "err", err)
	api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
}
