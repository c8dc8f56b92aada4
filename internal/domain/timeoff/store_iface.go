package timeoff

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type StoreAPI interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	InsertTx(ctx context.Context, tx pgx.Tx, req Request) error
	Get(ctx context.Context, requestID string) (Request, error)
	List(ctx context.Context, filter ListFilter) ([]Request, error)
	MarkReviewedTx(ctx context.Context, tx pgx.Tx, requestID, status string, review Review, at time.Time) (Request, error)
	BalanceStore
}

// BalanceStore guards every change with the row's current values so a
// balance can never go below zero.
type BalanceStore interface {
	// ReserveTx moves hours into pending, failing with
	// ErrInsufficientBalance when fewer than hours remain.
	ReserveTx(ctx context.Context, tx pgx.Tx, employeeID, timeOffType string, year int, hours decimal.Decimal) error
	// ConsumeTx moves reserved hours from pending to used.
	ConsumeTx(ctx context.Context, tx pgx.Tx, employeeID, timeOffType string, year int, hours decimal.Decimal) error
	// ReleaseTx returns reserved hours to the pool.
	ReleaseTx(ctx context.Context, tx pgx.Tx, employeeID, timeOffType string, year int, hours decimal.Decimal) error
	Balances(ctx context.Context, employeeID string, year int) ([]Balance, error)
	SetAllotment(ctx context.Context, employeeID, timeOffType string, year int, hours decimal.Decimal) (Balance, error)
}
