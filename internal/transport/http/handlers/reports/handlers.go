package reportshandler

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"timeclock/internal/domain/auth"
	"timeclock/internal/domain/reconcile"
	"timeclock/internal/domain/reports"
	"timeclock/internal/platform/clock"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
	"timeclock/internal/transport/http/shared"
)

type Reconciler interface {
	Week(ctx context.Context, weekStart time.Time) ([]reconcile.WeeklySummary, error)
	ForEmployee(ctx context.Context, employeeID string, weekStart time.Time) (reconcile.WeeklySummary, error)
}

// Handler serves read-only projections of reconciled hours.
type Handler struct {
	Reconciler Reconciler
	Now        clock.Func
	Location   *time.Location
}

func NewHandler(reconciler Reconciler, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{Reconciler: reconciler, Now: clock.System, Location: loc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermReportsRead)).Get("/weekly-hours", h.handleWeek)
		r.Get("/weekly-hours/{employeeID}", h.handleEmployeeWeek)
	})
}

// weekStart reads ?weekStart=, defaulting to the Monday of the current week.
func (h *Handler) weekStart(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("weekStart")
	if raw == "" {
		return clock.StartOfWeek(clock.DateOf(h.Now(), h.Location)), true
	}
	v := shared.NewValidator()
	start := v.Date("weekStart", raw)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return time.Time{}, false
	}
	return start, true
}

func (h *Handler) handleWeek(w http.ResponseWriter, r *http.Request) {
	weekStart, ok := h.weekStart(w, r)
	if !ok {
		return
	}
	summaries, err := h.Reconciler.Week(r.Context(), weekStart)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}

	stamp := weekStart.Format(clock.DateLayout)
	var buf bytes.Buffer
	switch strings.ToLower(r.URL.Query().Get("format")) {
	case "", "json":
		api.Success(w, summaries, middleware.GetRequestID(r.Context()))
	case "csv":
		if err := reports.WeeklyCSV(&buf, summaries); err != nil {
			shared.WriteError(w, r, err)
			return
		}
		api.Attachment(w, "text/csv", "weekly-hours-"+stamp+".csv", buf.Bytes())
	case "xlsx":
		if err := reports.WeeklyXLSX(&buf, summaries); err != nil {
			shared.WriteError(w, r, err)
			return
		}
		api.Attachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "weekly-hours-"+stamp+".xlsx", buf.Bytes())
	default:
		v := shared.NewValidator()
		v.Add("format", "must be one of json, csv, xlsx")
		v.Reject(w, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleEmployeeWeek(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	employeeID, err := shared.TargetEmployee(identity, chi.URLParam(r, "employeeID"), auth.PermReportsRead)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	weekStart, ok := h.weekStart(w, r)
	if !ok {
		return
	}

	summary, err := h.Reconciler.ForEmployee(r.Context(), employeeID, weekStart)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}
