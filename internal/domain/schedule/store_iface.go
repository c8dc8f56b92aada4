package schedule

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

type StoreAPI interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	Upsert(ctx context.Context, entry Entry) (Entry, error)
	UpsertTx(ctx context.Context, tx pgx.Tx, entry Entry) (Entry, error)
	// GetForUpdateTx locks the (employee, date) row until tx ends.
	GetForUpdateTx(ctx context.Context, tx pgx.Tx, employeeID string, date time.Time) (Entry, error)
	ListRange(ctx context.Context, filter RangeFilter) ([]Entry, error)
	Delete(ctx context.Context, employeeID string, date time.Time) error
}
