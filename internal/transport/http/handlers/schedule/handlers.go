package schedulehandler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"timeclock/internal/domain/auth"
	"timeclock/internal/domain/schedule"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
	"timeclock/internal/transport/http/shared"
)

type Store interface {
	UpsertSchedule(ctx context.Context, employeeID string, date time.Time, shift schedule.Shift) (schedule.Entry, error)
	EntriesForRange(ctx context.Context, employeeID string, start, end time.Time) ([]schedule.Entry, error)
	DeleteSchedule(ctx context.Context, employeeID string, date time.Time) error
}

type Handler struct {
	Schedules Store
	Audit     shared.Auditor
}

func NewHandler(schedules Store, auditor shared.Auditor) *Handler {
	return &Handler{Schedules: schedules, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/schedules", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermScheduleRead)).Get("/", h.handleRange)
		r.With(middleware.RequirePermission(auth.PermScheduleWrite)).Put("/{employeeID}/{date}", h.handleUpsert)
		r.With(middleware.RequirePermission(auth.PermScheduleWrite)).Delete("/{employeeID}/{date}", h.handleDelete)
	})
}

type upsertRequest struct {
	StartTime *schedule.ShiftTime `json:"startTime" validate:"required"`
	EndTime   *schedule.ShiftTime `json:"endTime" validate:"required"`
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	v := shared.NewValidator()
	date := v.Date("date", chi.URLParam(r, "date"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	var payload upsertRequest
	if !shared.Decode(w, r, &payload) {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	entry, err := h.Schedules.UpsertSchedule(r.Context(), employeeID, date, schedule.Shift{Start: *payload.StartTime, End: *payload.EndTime})
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	shared.Audit(r, h.Audit, identity.UserID, "schedule.upsert", "schedule_entry", entry.ID, nil, entry)
	api.Success(w, entry, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	v := shared.NewValidator()
	date := v.Date("date", chi.URLParam(r, "date"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if err := h.Schedules.DeleteSchedule(r.Context(), employeeID, date); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	shared.Audit(r, h.Audit, identity.UserID, "schedule.delete", "schedule_entry", employeeID+"@"+date.Format("2006-01-02"), nil, nil)
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

// handleRange serves the week view. Employees see their own shifts; schedule
// writers may read anyone's or everyone's.
func (h *Handler) handleRange(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	v := shared.NewValidator()
	start := v.Date("start", query.Get("start"))
	end := v.Date("end", query.Get("end"))
	v.DateOrder("start", start, "end", end)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	employeeID, err := shared.ScopeEmployee(identity, query.Get("employeeId"), auth.PermScheduleWrite)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}

	entries, err := h.Schedules.EntriesForRange(r.Context(), employeeID, start, end)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}
