package directoryhandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"timeclock/internal/domain/auth"
	"timeclock/internal/domain/directory"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
	"timeclock/internal/transport/http/shared"
)

type Directory interface {
	Get(ctx context.Context, employeeID string) (directory.Employee, error)
	List(ctx context.Context) ([]directory.Employee, error)
	ListActive(ctx context.Context) ([]directory.Employee, error)
}

// Handler exposes the employee directory read-only.
type Handler struct {
	Directory Directory
}

func NewHandler(dir Directory) *Handler {
	return &Handler{Directory: dir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermTimeRead)).Get("/", h.handleList)
		r.Get("/{employeeID}", h.handleGet)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list := h.Directory.ListActive
	if r.URL.Query().Get("status") == "all" {
		list = h.Directory.List
	}
	employees, err := list(r.Context())
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	employeeID, err := shared.TargetEmployee(identity, chi.URLParam(r, "employeeID"), auth.PermTimeRead)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	employee, err := h.Directory.Get(r.Context(), employeeID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}
