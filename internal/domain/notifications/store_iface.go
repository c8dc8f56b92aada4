package notifications

import "context"

type StoreAPI interface {
	Create(ctx context.Context, n Notification) error
	List(ctx context.Context, employeeID string, limit, offset int) ([]Notification, error)
	MarkRead(ctx context.Context, employeeID, notificationID string) error
}

// Sink delivers a notification somewhere outside the database.
type Sink interface {
	Deliver(ctx context.Context, n Notification) error
}
