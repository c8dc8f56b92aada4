package notifications

import (
	"context"
	"errors"
)

var ErrNotificationNotFound = errors.New("notification not found")

func (s *Store) Create(ctx context.Context, n Notification) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO notifications (id, employee_id, type, title, message, variant, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, n.ID, n.EmployeeID, n.Type, n.Title, n.Message, n.Variant, n.CreatedAt)
	return err
}

func (s *Store) List(ctx context.Context, employeeID string, limit, offset int) ([]Notification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id::text, employee_id::text, type, title, message, variant, read_at, created_at
    FROM notifications
    WHERE employee_id::text = $1
    ORDER BY created_at DESC
    LIMIT $2 OFFSET $3
  `, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.EmployeeID, &n.Type, &n.Title, &n.Message, &n.Variant, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) MarkRead(ctx context.Context, employeeID, notificationID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE notifications SET read_at = now()
    WHERE id::text = $1 AND employee_id::text = $2 AND read_at IS NULL
  `, notificationID, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
