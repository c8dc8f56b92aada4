package requests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"timeclock/internal/domain/schedule"
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

const requestColumns = `id::text, employee_id::text, request_type, requested_date,
  current_start, current_end, requested_start, requested_end, swap_with_employee_id::text,
  reason, status, review_notes, reviewed_by::text, reviewed_at, created_at`

func scanRequest(row pgx.Row) (Request, error) {
	var rec record
	var currentStart, currentEnd, requestedStart, requestedEnd pgtype.Time
	if err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.RequestType, &rec.RequestedDate,
		&currentStart, &currentEnd, &requestedStart, &requestedEnd, &rec.SwapWithEmployeeID,
		&rec.Reason, &rec.Status, &rec.ReviewNotes, &rec.ReviewedBy, &rec.ReviewedAt, &rec.CreatedAt); err != nil {
		return Request{}, err
	}
	rec.CurrentStart = fromPG(currentStart)
	rec.CurrentEnd = fromPG(currentEnd)
	rec.RequestedStart = fromPG(requestedStart)
	rec.RequestedEnd = fromPG(requestedEnd)
	return rec.toRequest()
}

func fromPG(value pgtype.Time) *schedule.ShiftTime {
	if !value.Valid {
		return nil
	}
	t := schedule.ShiftTimeFromPG(value)
	return &t
}

func toPG(value *schedule.ShiftTime) pgtype.Time {
	if value == nil {
		return pgtype.Time{}
	}
	return value.PGTime()
}

func (s *Store) Insert(ctx context.Context, req Request) error {
	rec := req.toRecord()
	_, err := s.DB.Exec(ctx, `
    INSERT INTO schedule_requests (id, employee_id, request_type, requested_date,
      current_start, current_end, requested_start, requested_end, swap_with_employee_id,
      reason, status, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
  `, rec.ID, rec.EmployeeID, rec.RequestType, rec.RequestedDate,
		toPG(rec.CurrentStart), toPG(rec.CurrentEnd), toPG(rec.RequestedStart), toPG(rec.RequestedEnd), rec.SwapWithEmployeeID,
		rec.Reason, rec.Status, rec.CreatedAt)
	return err
}

func (s *Store) Get(ctx context.Context, requestID string) (Request, error) {
	req, err := scanRequest(s.DB.QueryRow(ctx, `SELECT `+requestColumns+` FROM schedule_requests WHERE id::text = $1`, requestID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrRequestNotFound
	}
	return req, err
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Request, error) {
	query := `SELECT ` + requestColumns + ` FROM schedule_requests WHERE 1=1`
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id::text = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND request_type = $%d", len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (s *Store) MarkReviewedTx(ctx context.Context, tx pgx.Tx, requestID, status string, review Review, at time.Time) (Request, error) {
	req, err := scanRequest(tx.QueryRow(ctx, `
    UPDATE schedule_requests
    SET status = $2, review_notes = NULLIF($3, ''), reviewed_by = $4, reviewed_at = $5
    WHERE id::text = $1 AND status = 'pending'
    RETURNING `+requestColumns, requestID, status, review.Notes, review.ReviewerID, at))
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrAlreadyReviewed
	}
	return req, err
}
