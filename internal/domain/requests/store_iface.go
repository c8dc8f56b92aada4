package requests

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

type StoreAPI interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	Insert(ctx context.Context, req Request) error
	Get(ctx context.Context, requestID string) (Request, error)
	List(ctx context.Context, filter ListFilter) ([]Request, error)
	// MarkReviewedTx moves a pending request to status. It reports
	// ErrAlreadyReviewed when the row is no longer pending.
	MarkReviewedTx(ctx context.Context, tx pgx.Tx, requestID, status string, review Review, at time.Time) (Request, error)
}
