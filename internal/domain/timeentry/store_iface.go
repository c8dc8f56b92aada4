package timeentry

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type StoreAPI interface {
	// InsertOpen must fail with ErrAlreadyClockedIn when the employee already
	// has an entry without a clock-out.
	InsertOpen(ctx context.Context, entry Entry) error
	ActiveEntry(ctx context.Context, employeeID string) (Entry, error)
	GetEntry(ctx context.Context, entryID string) (Entry, error)
	// Close sets the clock-out only while the entry is still open and reports
	// ErrNoActiveEntry otherwise.
	Close(ctx context.Context, entryID string, clockOut time.Time, breakMinutes int, hours decimal.Decimal) (Entry, error)
	ListClosed(ctx context.Context, filter RangeFilter) ([]Entry, error)
	ListForEmployee(ctx context.Context, employeeID string, limit, offset int) ([]Entry, error)
}
