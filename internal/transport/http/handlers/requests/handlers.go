package requestshandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"timeclock/internal/domain/auth"
	"timeclock/internal/domain/requests"
	"timeclock/internal/domain/schedule"
	"timeclock/internal/platform/metrics"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
	"timeclock/internal/transport/http/shared"
)

type Workflow interface {
	Submit(ctx context.Context, input requests.SubmitInput) (requests.Request, error)
	Approve(ctx context.Context, requestID string, review requests.Review) (requests.Request, error)
	Deny(ctx context.Context, requestID string, review requests.Review) (requests.Request, error)
	Get(ctx context.Context, requestID string) (requests.Request, error)
	List(ctx context.Context, filter requests.ListFilter) ([]requests.Request, error)
}

type Handler struct {
	Workflow Workflow
	Audit    shared.Auditor
	Metrics  *metrics.Collector
}

func NewHandler(workflow Workflow, auditor shared.Auditor, collector *metrics.Collector) *Handler {
	return &Handler{Workflow: workflow, Audit: auditor, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/schedule-requests", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermRequestsSubmit)).Post("/", h.handleSubmit)
		r.Get("/", h.handleList)
		r.Get("/{requestID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermRequestsReview)).Post("/{requestID}/approve", h.handleApprove)
		r.With(middleware.RequirePermission(auth.PermRequestsReview)).Post("/{requestID}/deny", h.handleDeny)
	})
}

type submitRequest struct {
	EmployeeID         string              `json:"employeeId"`
	RequestType        string              `json:"requestType" validate:"required"`
	RequestedDate      string              `json:"requestedDate" validate:"required,datetime=2006-01-02"`
	CurrentStart       *schedule.ShiftTime `json:"currentStart"`
	CurrentEnd         *schedule.ShiftTime `json:"currentEnd"`
	RequestedStart     *schedule.ShiftTime `json:"requestedStart"`
	RequestedEnd       *schedule.ShiftTime `json:"requestedEnd"`
	SwapWithEmployeeID string              `json:"swapWithEmployeeId"`
	Reason             string              `json:"reason"`
}

type reviewRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	var payload submitRequest
	if !shared.Decode(w, r, &payload) {
		return
	}
	employeeID, err := shared.TargetEmployee(identity, payload.EmployeeID, auth.PermRequestsReview)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	date, err := shared.ParseDate(payload.RequestedDate)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}

	details, err := requests.BuildDetails(payload.RequestType, requests.DetailsInput{
		CurrentStart:       payload.CurrentStart,
		CurrentEnd:         payload.CurrentEnd,
		RequestedStart:     payload.RequestedStart,
		RequestedEnd:       payload.RequestedEnd,
		SwapWithEmployeeID: payload.SwapWithEmployeeID,
	})
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}

	req, err := h.Workflow.Submit(r.Context(), requests.SubmitInput{
		EmployeeID:    employeeID,
		RequestedDate: date,
		Reason:        payload.Reason,
		Details:       details,
	})
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Metrics.Event("schedule_request_submitted")
	api.Created(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	employeeID, err := shared.ScopeEmployee(identity, query.Get("employeeId"), auth.PermRequestsReview)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	items, err := h.Workflow.List(r.Context(), requests.ListFilter{
		EmployeeID: employeeID,
		Status:     query.Get("status"),
		Type:       query.Get("type"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	req, err := h.Workflow.Get(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	if !visible(identity, req) {
		shared.WriteError(w, r, requests.ErrRequestNotFound)
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

// visible lets swap partners see requests that name them.
func visible(identity auth.Identity, req requests.Request) bool {
	if identity.Can(auth.PermRequestsReview) || identity.Owns(req.EmployeeID) {
		return true
	}
	swap, ok := req.Details.(requests.ShiftSwap)
	return ok && identity.Owns(swap.SwapWithEmployeeID)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "schedule_request.approve", h.Workflow.Approve)
}

func (h *Handler) handleDeny(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "schedule_request.deny", h.Workflow.Deny)
}

type decision func(ctx context.Context, requestID string, review requests.Review) (requests.Request, error)

func (h *Handler) review(w http.ResponseWriter, r *http.Request, action string, decide decision) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	var payload reviewRequest
	if !shared.Decode(w, r, &payload) {
		return
	}

	requestID := chi.URLParam(r, "requestID")
	reviewed, err := decide(r.Context(), requestID, requests.Review{ReviewerID: identity.UserID, Notes: payload.Notes})
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	shared.Audit(r, h.Audit, identity.UserID, action, "schedule_request", reviewed.ID,
		map[string]string{"status": requests.StatusPending}, map[string]string{"status": reviewed.Status})
	h.Metrics.Event(action)
	api.Success(w, reviewed, middleware.GetRequestID(r.Context()))
}
