package notificationshandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"timeclock/internal/domain/notifications"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
	"timeclock/internal/transport/http/shared"
)

type Inbox interface {
	List(ctx context.Context, employeeID string, limit, offset int) ([]notifications.Notification, error)
	MarkRead(ctx context.Context, employeeID, notificationID string) error
}

type Handler struct {
	Inbox Inbox
}

func NewHandler(inbox Inbox) *Handler {
	return &Handler{Inbox: inbox}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/{notificationID}/read", h.handleMarkRead)
	})
}

// Notifications are addressed to employees; callers only ever see their own.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	if identity.EmployeeID == "" {
		api.Success(w, []notifications.Notification{}, middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 100, 500)
	items, err := h.Inbox.List(r.Context(), identity.EmployeeID, page.Limit, page.Offset)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.Identity(w, r)
	if !ok {
		return
	}
	if err := h.Inbox.MarkRead(r.Context(), identity.EmployeeID, chi.URLParam(r, "notificationID")); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "read"}, middleware.GetRequestID(r.Context()))
}
