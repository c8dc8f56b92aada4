package timeoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const requestColumns = `id::text, employee_id::text, type, start_date, end_date, hours_requested,
  reason, status, review_notes, reviewed_by::text, reviewed_at, created_at`

func scanRequest(row pgx.Row) (Request, error) {
	var req Request
	err := row.Scan(&req.ID, &req.EmployeeID, &req.Type, &req.StartDate, &req.EndDate, &req.HoursRequested,
		&req.Reason, &req.Status, &req.ReviewNotes, &req.ReviewedBy, &req.ReviewedAt, &req.CreatedAt)
	return req, err
}

func (s *Store) InsertTx(ctx context.Context, tx pgx.Tx, req Request) error {
	_, err := tx.Exec(ctx, `
    INSERT INTO time_off_requests (id, employee_id, type, start_date, end_date, hours_requested, reason, status, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
  `, req.ID, req.EmployeeID, req.Type, req.StartDate, req.EndDate, req.HoursRequested, req.Reason, req.Status, req.CreatedAt)
	return err
}

func (s *Store) Get(ctx context.Context, requestID string) (Request, error) {
	req, err := scanRequest(s.DB.QueryRow(ctx, `SELECT `+requestColumns+` FROM time_off_requests WHERE id::text = $1`, requestID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrRequestNotFound
	}
	return req, err
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Request, error) {
	query := `SELECT ` + requestColumns + ` FROM time_off_requests WHERE 1=1`
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id::text = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY start_date DESC, created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

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
    UPDATE time_off_requests
    SET status = $2, review_notes = NULLIF($3, ''), reviewed_by = $4, reviewed_at = $5
    WHERE id::text = $1 AND status = 'pending'
    RETURNING `+requestColumns, requestID, status, review.Notes, review.ReviewerID, at))
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrAlreadyReviewed
	}
	return req, err
}
