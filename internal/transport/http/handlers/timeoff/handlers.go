package timeoffhandler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"timeclock/internal/domain/auth"
	"timeclock/internal/domain/timeoff"
	"timeclock/internal/platform/clock"
	"timeclock/internal/platform/metrics"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
	"timeclock/internal/transport/http/shared"
)

type Service interface {
	Submit(ctx context.Context, input timeoff.SubmitInput) (timeoff.Request, error)
	Approve(ctx context.Context, requestID string, review timeoff.Review) (timeoff.Request, error)
	Deny(ctx context.Context, requestID string, review timeoff.Review) (timeoff.Request, error)
	Get(ctx context.Context, requestID string) (timeoff.Request, error)
	List(ctx context.Context, filter timeoff.ListFilter) ([]timeoff.Request, error)
	Balances(ctx context.Context, employeeID string, year int) ([]timeoff.Balance, error)
	GrantBalance(ctx context.Context, employeeID, timeOffType string, year int, hours decimal.Decimal) (timeoff.Balance, error)
}

type Handler struct {
	Service Service
	Audit   shared.Auditor
	Metrics *metrics.Collector
	Now     clock.Func
}

func NewHandler(service Service, auditor shared.Auditor, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Audit: auditor, Metrics: collector, Now: clock.System}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/time-off", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermTimeOffSubmit)).Post("/", h.handleSubmit)
		r.Get("/", h.handleList)
		r.Get("/balances", h.handleBalances)
		r.With(middleware.RequirePermission(auth.PermTimeOffReview)).Put("/balances/{employeeID}/{year}/{type}", h.handleGrant)
		r.Get("/{requestID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermTimeOffReview)).Post("/{requestID}/approve", h.handleApprove)
		r.With(middleware.RequirePermission(auth.PermTimeOffReview)).Post("/{requestID}/deny", h.handleDeny)
	})
}

type submitRequest struct {
	EmployeeID string `json:"employeeId"`
	Type       string `json:"type" validate:"required,oneof=vacation sick personal unpaid"`
	StartDate  string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Reason     string `json:"reason" validate:"max=2000"`
}

type reviewRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

type grantRequest struct {
	Hours decimal.Decimal `json:"hours"`
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
	employeeID, err := shared.TargetEmployee(identity, payload.EmployeeID, auth.PermTimeOffReview)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	v := shared.NewValidator()
	start := v.Date("startDate", payload.StartDate)
	end := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	req, err := h.Service.Submit(r.Context(), timeoff.SubmitInput{
		EmployeeID: employeeID,
		Type:       payload.Type,
		StartDate:  start,
		EndDate:    end,
		Reason:     payload.Reason,
	})
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Metrics.Event("time_off_submitted")
	api.Created(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	employeeID, err := shared.ScopeEmployee(identity, query.Get("employeeId"), auth.PermTimeOffReview)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	page := shared.ParsePagination(r, 50, 200)
	items, err := h.Service.List(r.Context(), timeoff.ListFilter{
		EmployeeID: employeeID,
		Status:     query.Get("status"),
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
	req, err := h.Service.Get(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	if !identity.Can(auth.PermTimeOffReview) && !identity.Owns(req.EmployeeID) {
		shared.WriteError(w, r, timeoff.ErrRequestNotFound)
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "time_off.approve", h.Service.Approve)
}

func (h *Handler) handleDeny(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "time_off.deny", h.Service.Deny)
}

type decision func(ctx context.Context, requestID string, review timeoff.Review) (timeoff.Request, error)

func (h *Handler) review(w http.ResponseWriter, r *http.Request, action string, decide decision) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	var payload reviewRequest
	if !shared.Decode(w, r, &payload) {
		return
	}

	reviewed, err := decide(r.Context(), chi.URLParam(r, "requestID"), timeoff.Review{ReviewerID: identity.UserID, Notes: payload.Notes})
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	shared.Audit(r, h.Audit, identity.UserID, action, "time_off_request", reviewed.ID,
		map[string]string{"status": timeoff.StatusPending}, map[string]string{"status": reviewed.Status})
	h.Metrics.Event(action)
	api.Success(w, reviewed, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleBalances(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	employeeID, err := shared.TargetEmployee(identity, query.Get("employeeId"), auth.PermTimeOffReview)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	year := h.Now().Year()
	if raw := query.Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1900 {
			v := shared.NewValidator()
			v.Add("year", "must be a four digit year")
			v.Reject(w, middleware.GetRequestID(r.Context()))
			return
		}
		year = parsed
	}

	balances, err := h.Service.Balances(r.Context(), employeeID, year)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	out := make([]map[string]any, 0, len(balances))
	for _, b := range balances {
		out = append(out, map[string]any{
			"type":      b.Type,
			"year":      b.Year,
			"allotted":  b.Allotted,
			"pending":   b.Pending,
			"used":      b.Used,
			"remaining": b.Remaining(),
		})
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGrant(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1900 {
		v := shared.NewValidator()
		v.Add("year", "must be a four digit year")
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}
	var payload grantRequest
	if !shared.Decode(w, r, &payload) {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	balance, err := h.Service.GrantBalance(r.Context(), employeeID, chi.URLParam(r, "type"), year, payload.Hours)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	shared.Audit(r, h.Audit, identity.UserID, "time_off.grant", "time_off_balance",
		employeeID+":"+balance.Type+":"+strconv.Itoa(year), nil, balance)
	api.Success(w, balance, middleware.GetRequestID(r.Context()))
}

