package payrollhandler

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"timeclock/internal/domain/auth"
	"timeclock/internal/domain/payroll"
	"timeclock/internal/domain/reports"
	"timeclock/internal/platform/metrics"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
	"timeclock/internal/transport/http/shared"
)

type Service interface {
	ComputePayStub(ctx context.Context, input payroll.ComputeInput) (payroll.PayStub, error)
	DraftFromTimesheets(ctx context.Context, employeeID string, periodStart, periodEnd time.Time, payDate *time.Time) (payroll.PayStub, error)
	Finalize(ctx context.Context, stubID string) (payroll.PayStub, error)
	MarkPaid(ctx context.Context, stubID string, payDate time.Time) (payroll.PayStub, error)
	Get(ctx context.Context, stubID string) (payroll.PayStub, error)
	ListForEmployee(ctx context.Context, employeeID string, limit, offset int) ([]payroll.PayStub, error)
	PDF(ctx context.Context, stubID string) ([]byte, payroll.PayStub, error)
}

type Handler struct {
	Service     Service
	Audit       shared.Auditor
	Idempotency middleware.IdempotencyStore
	Metrics     *metrics.Collector
}

func NewHandler(service Service, auditor shared.Auditor, idempotency middleware.IdempotencyStore, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Audit: auditor, Idempotency: idempotency, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/pay-stubs", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPayrollWrite)).Post("/", h.handleCompute)
		r.With(middleware.RequirePermission(auth.PermPayrollWrite)).Post("/from-timesheets", h.handleFromTimesheets)
		r.Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/export.csv", h.handleExport)
		r.Get("/{stubID}", h.handleGet)
		r.Get("/{stubID}/pdf", h.handlePDF)
		r.With(
			middleware.RequirePermission(auth.PermPayrollWrite),
			middleware.Idempotent(h.Idempotency, "payroll.finalize"),
		).Post("/{stubID}/finalize", h.handleFinalize)
		r.With(
			middleware.RequirePermission(auth.PermPayrollWrite),
			middleware.Idempotent(h.Idempotency, "payroll.paid"),
		).Post("/{stubID}/paid", h.handleMarkPaid)
	})
}

type computeRequest struct {
	EmployeeID    string          `json:"employeeId" validate:"required"`
	PeriodStart   string          `json:"periodStart" validate:"required,datetime=2006-01-02"`
	PeriodEnd     string          `json:"periodEnd" validate:"required,datetime=2006-01-02"`
	RegularHours  decimal.Decimal `json:"regularHours"`
	OvertimeHours decimal.Decimal `json:"overtimeHours"`
	PayDate       string          `json:"payDate" validate:"omitempty,datetime=2006-01-02"`
}

type timesheetRequest struct {
	EmployeeID  string `json:"employeeId" validate:"required"`
	PeriodStart string `json:"periodStart" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"periodEnd" validate:"required,datetime=2006-01-02"`
	PayDate     string `json:"payDate" validate:"omitempty,datetime=2006-01-02"`
}

type paidRequest struct {
	PayDate string `json:"payDate" validate:"required,datetime=2006-01-02"`
}

func (h *Handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	var payload computeRequest
	if !shared.Decode(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	start := v.Date("periodStart", payload.PeriodStart)
	end := v.Date("periodEnd", payload.PeriodEnd)
	v.DateOrder("periodStart", start, "periodEnd", end)
	payDate := v.OptionalDate("payDate", payload.PayDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	stub, err := h.Service.ComputePayStub(r.Context(), payroll.ComputeInput{
		EmployeeID:    payload.EmployeeID,
		PeriodStart:   start,
		PeriodEnd:     end,
		RegularHours:  payload.RegularHours,
		OvertimeHours: payload.OvertimeHours,
		PayDate:       payDate,
	})
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	shared.Audit(r, h.Audit, identity.UserID, "pay_stub.draft", "pay_stub", stub.ID, nil, stub)
	h.Metrics.Event("pay_stub_drafted")
	api.Created(w, stub, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleFromTimesheets(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	var payload timesheetRequest
	if !shared.Decode(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	start := v.Date("periodStart", payload.PeriodStart)
	end := v.Date("periodEnd", payload.PeriodEnd)
	v.DateOrder("periodStart", start, "periodEnd", end)
	payDate := v.OptionalDate("payDate", payload.PayDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	stub, err := h.Service.DraftFromTimesheets(r.Context(), payload.EmployeeID, start, end, payDate)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	shared.Audit(r, h.Audit, identity.UserID, "pay_stub.draft", "pay_stub", stub.ID, nil, stub)
	h.Metrics.Event("pay_stub_drafted")
	api.Created(w, stub, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	employeeID, err := shared.TargetEmployee(identity, r.URL.Query().Get("employeeId"), auth.PermPayrollRead)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	page := shared.ParsePagination(r, 50, 200)
	stubs, err := h.Service.ListForEmployee(r.Context(), employeeID, page.Limit, page.Offset)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, stubs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	employeeID := strings.TrimSpace(r.URL.Query().Get("employeeId"))
	v := shared.NewValidator()
	v.Required("employeeId", employeeID, "is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	stubs, err := h.Service.ListForEmployee(r.Context(), employeeID, 500, 0)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := reports.PayStubsCSV(&buf, stubs); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Attachment(w, "text/csv", "pay-stubs-"+employeeID+".csv", buf.Bytes())
}

// stubFor loads a stub the caller may see. Other employees' stubs read as
// missing.
func (h *Handler) stubFor(w http.ResponseWriter, r *http.Request) (payroll.PayStub, bool) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return payroll.PayStub{}, false
	}
	stub, err := h.Service.Get(r.Context(), chi.URLParam(r, "stubID"))
	if err != nil {
		shared.WriteError(w, r, err)
		return payroll.PayStub{}, false
	}
	if !identity.Can(auth.PermPayrollRead) && !identity.Owns(stub.EmployeeID) {
		shared.WriteError(w, r, payroll.ErrPayStubNotFound)
		return payroll.PayStub{}, false
	}
	return stub, true
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	stub, ok := h.stubFor(w, r)
	if !ok {
		return
	}
	api.Success(w, stub, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	stub, ok := h.stubFor(w, r)
	if !ok {
		return
	}
	data, _, err := h.Service.PDF(r.Context(), stub.ID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Attachment(w, "application/pdf", "pay-stub-"+stub.ID+".pdf", data)
}

func (h *Handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	stub, err := h.Service.Finalize(r.Context(), chi.URLParam(r, "stubID"))
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	shared.Audit(r, h.Audit, identity.UserID, "pay_stub.finalize", "pay_stub", stub.ID,
		map[string]string{"status": payroll.StatusDraft}, map[string]string{"status": stub.Status})
	h.Metrics.Event("pay_stub_finalized")
	api.Success(w, stub, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	var payload paidRequest
	if !shared.Decode(w, r, &payload) {
		return
	}
	payDate, err := shared.ParseDate(payload.PayDate)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}

	stub, err := h.Service.MarkPaid(r.Context(), chi.URLParam(r, "stubID"), payDate)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	shared.Audit(r, h.Audit, identity.UserID, "pay_stub.paid", "pay_stub", stub.ID,
		map[string]string{"status": payroll.StatusFinalized}, map[string]string{"status": stub.Status})
	h.Metrics.Event("pay_stub_paid")
	api.Success(w, stub, middleware.GetRequestID(r.Context()))
}
