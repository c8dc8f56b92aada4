package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"timeclock/internal/platform/db"
)

type Store struct {
	DB *db.Pool
}

func NewStore(pool *db.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return s.DB.Begin(ctx)
}

const scheduleColumns = `id::text, employee_id::text, shift_date, start_time, end_time, updated_at`

func scanEntry(row pgx.Row) (Entry, error) {
	var entry Entry
	var start, end pgtype.Time
	if err := row.Scan(&entry.ID, &entry.EmployeeID, &entry.Date, &start, &end, &entry.UpdatedAt); err != nil {
		return Entry{}, err
	}
	entry.Start = ShiftTimeFromPG(start)
	entry.End = ShiftTimeFromPG(end)
	return entry, nil
}

func upsert(ctx context.Context, q db.Querier, entry Entry) (Entry, error) {
	return scanEntry(q.QueryRow(ctx, `
    INSERT INTO schedule_entries (id, employee_id, shift_date, start_time, end_time, updated_at)
    VALUES ($1,$2,$3,$4,$5,now())
    ON CONFLICT (employee_id, shift_date)
    DO UPDATE SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time, updated_at = now()
    RETURNING `+scheduleColumns,
		entry.ID, entry.EmployeeID, entry.Date, entry.Start.PGTime(), entry.End.PGTime()))
}

func (s *Store) Upsert(ctx context.Context, entry Entry) (Entry, error) {
	return upsert(ctx, s.DB, entry)
}

func (s *Store) UpsertTx(ctx context.Context, tx pgx.Tx, entry Entry) (Entry, error) {
	return upsert(ctx, tx, entry)
}

func (s *Store) GetForUpdateTx(ctx context.Context, tx pgx.Tx, employeeID string, date time.Time) (Entry, error) {
	entry, err := scanEntry(tx.QueryRow(ctx, `
    SELECT `+scheduleColumns+`
    FROM schedule_entries
    WHERE employee_id::text = $1 AND shift_date = $2
    FOR UPDATE
  `, employeeID, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrScheduleMissing
	}
	return entry, err
}

func (s *Store) ListRange(ctx context.Context, filter RangeFilter) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+scheduleColumns+`
    FROM schedule_entries
    WHERE shift_date BETWEEN $1 AND $2
      AND ($3 = '' OR employee_id::text = $3)
    ORDER BY shift_date, start_time, employee_id
  `, filter.StartDate, filter.EndDate, filter.EmployeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, employeeID string, date time.Time) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM schedule_entries WHERE employee_id::text = $1 AND shift_date = $2`, employeeID, date)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrScheduleMissing
	}
	return nil
}
