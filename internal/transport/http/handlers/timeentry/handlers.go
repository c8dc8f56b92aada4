package timeentryhandler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"timeclock/internal/domain/auth"
	"timeclock/internal/domain/timeentry"
	"timeclock/internal/platform/metrics"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
	"timeclock/internal/transport/http/shared"
)

type Ledger interface {
	ClockIn(ctx context.Context, employeeID string) (timeentry.Entry, error)
	ClockOut(ctx context.Context, entryID string, breakMinutes int) (timeentry.Entry, error)
	ActiveEntryFor(ctx context.Context, employeeID string) (*timeentry.Entry, error)
	EntriesForRange(ctx context.Context, employeeID string, start, end time.Time) ([]timeentry.Entry, error)
	History(ctx context.Context, employeeID string, limit, offset int) ([]timeentry.Entry, error)
	Get(ctx context.Context, entryID string) (timeentry.Entry, error)
}

type Handler struct {
	Ledger  Ledger
	Metrics *metrics.Collector
}

func NewHandler(ledger Ledger, collector *metrics.Collector) *Handler {
	return &Handler{Ledger: ledger, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/time", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermTimeClock)).Post("/clock-in", h.handleClockIn)
		r.With(middleware.RequirePermission(auth.PermTimeClock)).Post("/entries/{entryID}/clock-out", h.handleClockOut)
		r.Get("/active", h.handleActive)
		r.Get("/entries", h.handleRange)
		r.Get("/history", h.handleHistory)
	})
}

type clockInRequest struct {
	EmployeeID string `json:"employeeId"`
}

type clockOutRequest struct {
	BreakMinutes int `json:"breakMinutes" validate:"gte=0,lte=1440"`
}

func (h *Handler) handleClockIn(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	var payload clockInRequest
	if !shared.Decode(w, r, &payload) {
		return
	}
	employeeID, err := shared.TargetEmployee(identity, payload.EmployeeID, auth.PermTimeManage)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}

	entry, err := h.Ledger.ClockIn(r.Context(), employeeID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Metrics.Event("clock_in")
	api.Created(w, entry, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleClockOut(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	var payload clockOutRequest
	if !shared.Decode(w, r, &payload) {
		return
	}

	entryID := chi.URLParam(r, "entryID")
	entry, err := h.Ledger.Get(r.Context(), entryID)
	if errors.Is(err, timeentry.ErrEntryNotFound) {
		shared.WriteError(w, r, timeentry.ErrNoActiveEntry)
		return
	}
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	if _, err := shared.TargetEmployee(identity, entry.EmployeeID, auth.PermTimeManage); err != nil {
		shared.WriteError(w, r, err)
		return
	}

	closed, err := h.Ledger.ClockOut(r.Context(), entryID, payload.BreakMinutes)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Metrics.Event("clock_out")
	api.Success(w, closed, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleActive(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	employeeID, err := shared.TargetEmployee(identity, r.URL.Query().Get("employeeId"), auth.PermTimeRead)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}

	entry, err := h.Ledger.ActiveEntryFor(r.Context(), employeeID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, map[string]any{"clockedIn": entry != nil, "entry": entry}, middleware.GetRequestID(r.Context()))
}

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
	employeeID, err := shared.ScopeEmployee(identity, query.Get("employeeId"), auth.PermTimeRead)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}

	entries, err := h.Ledger.EntriesForRange(r.Context(), employeeID, start, end)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	employeeID, err := shared.TargetEmployee(identity, r.URL.Query().Get("employeeId"), auth.PermTimeRead)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	entries, err := h.Ledger.History(r.Context(), employeeID, page.Limit, page.Offset)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}
