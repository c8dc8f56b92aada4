package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"timeclock/internal/platform/db"
)

// Store reads the employees table maintained by the employee directory.
type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (Employee, error) {
	var employee Employee
	var rate decimal.NullDecimal
	err := s.DB.QueryRow(ctx, `
    SELECT id::text, name, hourly_rate, employment_status, compensation_type
    FROM employees
    WHERE id::text = $1
  `, employeeID).Scan(&employee.ID, &employee.Name, &rate, &employee.Status, &employee.Compensation)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	if rate.Valid {
		employee.HourlyRate = &rate.Decimal
	}
	return employee, nil
}

func (s *Store) ListEmployees(ctx context.Context, status string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id::text, name, hourly_rate, employment_status, compensation_type
    FROM employees
    WHERE ($1 = '' OR employment_status = $1)
    ORDER BY name, id
  `, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var employee Employee
		var rate decimal.NullDecimal
		if err := rows.Scan(&employee.ID, &employee.Name, &rate, &employee.Status, &employee.Compensation); err != nil {
			return nil, err
		}
		if rate.Valid {
			value := rate.Decimal
			employee.HourlyRate = &value
		}
		out = append(out, employee)
	}
	return out, rows.Err()
}
