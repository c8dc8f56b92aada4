package payroll

import (
	"context"
	"time"
)

type StoreAPI interface {
	Insert(ctx context.Context, stub PayStub) error
	Get(ctx context.Context, stubID string) (PayStub, error)
	ListForEmployee(ctx context.Context, employeeID string, limit, offset int) ([]PayStub, error)
	// Transition moves a stub from one status to the next only if it is still
	// in from, and reports ErrInvalidTransition otherwise.
	Transition(ctx context.Context, stubID, from, to string, payDate *time.Time) (PayStub, error)
}
