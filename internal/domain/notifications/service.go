package notifications

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service records notifications and forwards them to the configured sinks.
// Delivery problems are logged and never surface to the caller, so a state
// change that triggered a notification is never undone by it.
type Service struct {
	store StoreAPI
	sinks []Sink
}

func New(store StoreAPI, sinks ...Sink) *Service {
	return &Service{store: store, sinks: sinks}
}

func (s *Service) Notify(ctx context.Context, n Notification) {
	if s == nil {
		return
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if n.Variant == "" {
		n.Variant = VariantSuccess
	}

	if s.store != nil {
		if err := s.store.Create(ctx, n); err != nil {
			slog.Warn("notification store failed", "type", n.Type, "employee_id", n.EmployeeID, "err", err)
		}
	}
	for _, sink := range s.sinks {
		if err := sink.Deliver(ctx, n); err != nil {
			slog.Warn("notification delivery failed", "type", n.Type, "employee_id", n.EmployeeID, "err", err)
		}
	}
}

func (s *Service) List(ctx context.Context, employeeID string, limit, offset int) ([]Notification, error) {
	return s.store.List(ctx, employeeID, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, employeeID, notificationID string) error {
	return s.store.MarkRead(ctx, employeeID, notificationID)
}
