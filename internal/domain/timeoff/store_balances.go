package timeoff

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func (s *Store) ReserveTx(ctx context.Context, tx pgx.Tx, employeeID, timeOffType string, year int, hours decimal.Decimal) error {
	tag, err := tx.Exec(ctx, `
    UPDATE time_off_balances
    SET pending = pending + $4, updated_at = now()
    WHERE employee_id::text = $1 AND type = $2 AND year = $3
      AND allotted - pending - used >= $4
  `, employeeID, timeOffType, year, hours)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

func (s *Store) ConsumeTx(ctx context.Context, tx pgx.Tx, employeeID, timeOffType string, year int, hours decimal.Decimal) error {
	return s.moveTx(ctx, tx, `pending = pending - $4, used = used + $4`, employeeID, timeOffType, year, hours)
}

func (s *Store) ReleaseTx(ctx context.Context, tx pgx.Tx, employeeID, timeOffType string, year int, hours decimal.Decimal) error {
	return s.moveTx(ctx, tx, `pending = pending - $4`, employeeID, timeOffType, year, hours)
}

func (s *Store) moveTx(ctx context.Context, tx pgx.Tx, set, employeeID, timeOffType string, year int, hours decimal.Decimal) error {
	tag, err := tx.Exec(ctx, `
    UPDATE time_off_balances
    SET `+set+`, updated_at = now()
    WHERE employee_id::text = $1 AND type = $2 AND year = $3 AND pending >= $4
  `, employeeID, timeOffType, year, hours)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pending hours out of sync", ErrInsufficientBalance)
	}
	return nil
}

const balanceColumns = `employee_id::text, type, year, allotted, pending, used, updated_at`

func scanBalance(row pgx.Row) (Balance, error) {
	var b Balance
	err := row.Scan(&b.EmployeeID, &b.Type, &b.Year, &b.Allotted, &b.Pending, &b.Used, &b.UpdatedAt)
	return b, err
}

func (s *Store) Balances(ctx context.Context, employeeID string, year int) ([]Balance, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+balanceColumns+`
    FROM time_off_balances
    WHERE employee_id::text = $1 AND year = $2
    ORDER BY type
  `, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Balance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SetAllotment refuses to drop the allotment below hours already pending or
// used.
func (s *Store) SetAllotment(ctx context.Context, employeeID, timeOffType string, year int, hours decimal.Decimal) (Balance, error) {
	b, err := scanBalance(s.DB.QueryRow(ctx, `
    INSERT INTO time_off_balances (employee_id, type, year, allotted, pending, used)
    VALUES ($1,$2,$3,$4,0,0)
    ON CONFLICT (employee_id, type, year)
    DO UPDATE SET allotted = EXCLUDED.allotted, updated_at = now()
    WHERE time_off_balances.pending + time_off_balances.used <= EXCLUDED.allotted
    RETURNING `+balanceColumns, employeeID, timeOffType, year, hours))
	if errors.Is(err, pgx.ErrNoRows) {
		return Balance{}, ErrInsufficientBalance
	}
	return b, err
}
