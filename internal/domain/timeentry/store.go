package timeentry

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"timeclock/internal/platform/db"
)

const openEntryConstraint = "time_entries_one_open_per_employee"

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

const entryColumns = `id::text, employee_id::text, entry_date, clock_in, clock_out, break_minutes, hours_worked, created_at`

func scanEntry(row pgx.Row) (Entry, error) {
	var entry Entry
	var hours decimal.NullDecimal
	if err := row.Scan(&entry.ID, &entry.EmployeeID, &entry.Date, &entry.ClockIn, &entry.ClockOut, &entry.BreakMinutes, &hours, &entry.CreatedAt); err != nil {
		return Entry{}, err
	}
	if hours.Valid {
		entry.HoursWorked = &hours.Decimal
	}
	return entry, nil
}

func (s *Store) InsertOpen(ctx context.Context, entry Entry) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO time_entries (id, employee_id, entry_date, clock_in, break_minutes)
    VALUES ($1,$2,$3,$4,0)
  `, entry.ID, entry.EmployeeID, entry.Date, entry.ClockIn)
	if db.IsUniqueViolation(err, openEntryConstraint) {
		return ErrAlreadyClockedIn
	}
	return err
}

func (s *Store) ActiveEntry(ctx context.Context, employeeID string) (Entry, error) {
	entry, err := scanEntry(s.DB.QueryRow(ctx, `
    SELECT `+entryColumns+`
    FROM time_entries
    WHERE employee_id::text = $1 AND clock_out IS NULL
  `, employeeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNoActiveEntry
	}
	return entry, err
}

func (s *Store) GetEntry(ctx context.Context, entryID string) (Entry, error) {
	entry, err := scanEntry(s.DB.QueryRow(ctx, `
    SELECT `+entryColumns+`
    FROM time_entries
    WHERE id::text = $1
  `, entryID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrEntryNotFound
	}
	return entry, err
}

func (s *Store) Close(ctx context.Context, entryID string, clockOut time.Time, breakMinutes int, hours decimal.Decimal) (Entry, error) {
	entry, err := scanEntry(s.DB.QueryRow(ctx, `
    UPDATE time_entries
    SET clock_out = $2, break_minutes = $3, hours_worked = $4
    WHERE id::text = $1 AND clock_out IS NULL
    RETURNING `+entryColumns, entryID, clockOut, breakMinutes, hours))
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNoActiveEntry
	}
	return entry, err
}

func (s *Store) ListClosed(ctx context.Context, filter RangeFilter) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+entryColumns+`
    FROM time_entries
    WHERE clock_out IS NOT NULL
      AND entry_date BETWEEN $1 AND $2
      AND ($3 = '' OR employee_id::text = $3)
    ORDER BY entry_date, employee_id, clock_in
  `, filter.StartDate, filter.EndDate, filter.EmployeeID)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID string, limit, offset int) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+entryColumns+`
    FROM time_entries
    WHERE employee_id::text = $1
    ORDER BY clock_in DESC
    LIMIT $2 OFFSET $3
  `, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]Entry, error) {
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
