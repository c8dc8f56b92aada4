package allocationhandler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"timeclock/internal/domain/allocation"
	"timeclock/internal/domain/auth"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
	"timeclock/internal/transport/http/shared"
)

type Planner interface {
	UpsertAllocation(ctx context.Context, input allocation.UpsertInput) (allocation.Allocation, error)
	ForEmployee(ctx context.Context, employeeID string, weekStart time.Time) (allocation.Allocation, error)
	ListForWeek(ctx context.Context, weekStart time.Time) ([]allocation.Allocation, error)
}

type Handler struct {
	Planner Planner
	Audit   shared.Auditor
}

func NewHandler(planner Planner, auditor shared.Auditor) *Handler {
	return &Handler{Planner: planner, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/allocations", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAllocationWrite)).Get("/", h.handleListWeek)
		r.With(middleware.RequirePermission(auth.PermAllocationRead)).Get("/{employeeID}/{weekStart}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermAllocationWrite)).Put("/{employeeID}/{weekStart}", h.handleUpsert)
	})
}

type upsertRequest struct {
	BuildingID   string `json:"buildingId" validate:"required,max=100"`
	RoleCoverage string `json:"roleCoverage" validate:"max=200"`
	Notes        string `json:"notes" validate:"max=2000"`
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	v := shared.NewValidator()
	weekStart := v.Date("weekStart", chi.URLParam(r, "weekStart"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	var payload upsertRequest
	if !shared.Decode(w, r, &payload) {
		return
	}

	saved, err := h.Planner.UpsertAllocation(r.Context(), allocation.UpsertInput{
		EmployeeID:   chi.URLParam(r, "employeeID"),
		WeekStart:    weekStart,
		BuildingID:   payload.BuildingID,
		RoleCoverage: payload.RoleCoverage,
		Notes:        payload.Notes,
	})
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	shared.Audit(r, h.Audit, identity.UserID, "allocation.upsert", "salaried_allocation", saved.ID, nil, saved)
	api.Success(w, saved, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	employeeID, err := shared.TargetEmployee(identity, chi.URLParam(r, "employeeID"), auth.PermAllocationWrite)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	v := shared.NewValidator()
	weekStart := v.Date("weekStart", chi.URLParam(r, "weekStart"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	found, err := h.Planner.ForEmployee(r.Context(), employeeID, weekStart)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, found, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListWeek(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	weekStart := v.Date("weekStart", r.URL.Query().Get("weekStart"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	items, err := h.Planner.ListForWeek(r.Context(), weekStart)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}
