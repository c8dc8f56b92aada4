package allocation

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"timeclock/internal/platform/db"
)

type StoreAPI interface {
	Upsert(ctx context.Context, a Allocation) (Allocation, error)
	Get(ctx context.Context, employeeID string, weekStart time.Time) (Allocation, error)
	ListForWeek(ctx context.Context, weekStart time.Time) ([]Allocation, error)
}

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

const allocationColumns = `id::text, employee_id::text, week_start, building_id, role_coverage, notes, updated_at`

func scanAllocation(row pgx.Row) (Allocation, error) {
	var a Allocation
	err := row.Scan(&a.ID, &a.EmployeeID, &a.WeekStart, &a.BuildingID, &a.RoleCoverage, &a.Notes, &a.UpdatedAt)
	return a, err
}

func (s *Store) Upsert(ctx context.Context, a Allocation) (Allocation, error) {
	return scanAllocation(s.DB.QueryRow(ctx, `
    INSERT INTO salaried_allocations (id, employee_id, week_start, building_id, role_coverage, notes, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,now())
    ON CONFLICT (employee_id, week_start)
    DO UPDATE SET building_id = EXCLUDED.building_id, role_coverage = EXCLUDED.role_coverage,
      notes = EXCLUDED.notes, updated_at = now()
    RETURNING `+allocationColumns,
		a.ID, a.EmployeeID, a.WeekStart, a.BuildingID, a.RoleCoverage, a.Notes))
}

func (s *Store) Get(ctx context.Context, employeeID string, weekStart time.Time) (Allocation, error) {
	a, err := scanAllocation(s.DB.QueryRow(ctx, `
    SELECT `+allocationColumns+`
    FROM salaried_allocations
    WHERE employee_id::text = $1 AND week_start = $2
  `, employeeID, weekStart))
	if errors.Is(err, pgx.ErrNoRows) {
		return Allocation{}, ErrAllocationNotFound
	}
	return a, err
}

func (s *Store) ListForWeek(ctx context.Context, weekStart time.Time) ([]Allocation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+allocationColumns+`
    FROM salaried_allocations
    WHERE week_start = $1
    ORDER BY building_id, employee_id
  `, weekStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
