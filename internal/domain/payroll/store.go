package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"timeclock/internal/platform/db"
)

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

const stubColumns = `id::text, employee_id::text, period_start, period_end, regular_hours, overtime_hours,
  hourly_rate, regular_pay, overtime_pay, gross_pay, federal_tax, state_tax, social_security, medicare,
  other_deductions, total_deductions, net_pay, status, pay_date, created_at`

func scanStub(row pgx.Row) (PayStub, error) {
	var p PayStub
	err := row.Scan(&p.ID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd, &p.RegularHours, &p.OvertimeHours,
		&p.HourlyRate, &p.RegularPay, &p.OvertimePay, &p.GrossPay, &p.FederalTax, &p.StateTax, &p.SocialSecurity, &p.Medicare,
		&p.OtherDeductions, &p.TotalDeductions, &p.NetPay, &p.Status, &p.PayDate, &p.CreatedAt)
	return p, err
}

func (s *Store) Insert(ctx context.Context, p PayStub) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO pay_stubs (id, employee_id, period_start, period_end, regular_hours, overtime_hours,
      hourly_rate, regular_pay, overtime_pay, gross_pay, federal_tax, state_tax, social_security, medicare,
      other_deductions, total_deductions, net_pay, status, pay_date, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
  `, p.ID, p.EmployeeID, p.PeriodStart, p.PeriodEnd, p.RegularHours, p.OvertimeHours,
		p.HourlyRate, p.RegularPay, p.OvertimePay, p.GrossPay, p.FederalTax, p.StateTax, p.SocialSecurity, p.Medicare,
		p.OtherDeductions, p.TotalDeductions, p.NetPay, p.Status, p.PayDate, p.CreatedAt)
	return err
}

func (s *Store) Get(ctx context.Context, stubID string) (PayStub, error) {
	stub, err := scanStub(s.DB.QueryRow(ctx, `SELECT `+stubColumns+` FROM pay_stubs WHERE id::text = $1`, stubID))
	if errors.Is(err, pgx.ErrNoRows) {
		return PayStub{}, ErrPayStubNotFound
	}
	return stub, err
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID string, limit, offset int) ([]PayStub, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+stubColumns+`
    FROM pay_stubs
    WHERE employee_id::text = $1
    ORDER BY period_start DESC
    LIMIT $2 OFFSET $3
  `, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PayStub
	for rows.Next() {
		stub, err := scanStub(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, stub)
	}
	return out, rows.Err()
}

func (s *Store) Transition(ctx context.Context, stubID, from, to string, payDate *time.Time) (PayStub, error) {
	stub, err := scanStub(s.DB.QueryRow(ctx, `
    UPDATE pay_stubs
    SET status = $3, pay_date = COALESCE($4, pay_date)
    WHERE id::text = $1 AND status = $2
    RETURNING `+stubColumns, stubID, from, to, payDate))
	if errors.Is(err, pgx.ErrNoRows) {
		return PayStub{}, ErrInvalidTransition
	}
	return stub, err
}
