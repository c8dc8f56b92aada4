package requests

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"timeclock/internal/domain/directory"
	"timeclock/internal/domain/notifications"
	"timeclock/internal/domain/schedule"
	"timeclock/internal/platform/clock"
	"timeclock/internal/platform/db"
)

type EmployeeLookup interface {
	RequireActive(ctx context.Context, employeeID string) (directory.Employee, error)
}

// ScheduleWriter is the part of the schedule store an approval mutates.
type ScheduleWriter interface {
	GetForUpdateTx(ctx context.Context, tx pgx.Tx, employeeID string, date time.Time) (schedule.Entry, error)
	UpsertTx(ctx context.Context, tx pgx.Tx, employeeID string, date time.Time, shift schedule.Shift) (schedule.Entry, error)
}

type Notifier interface {
	Notify(ctx context.Context, n notifications.Notification)
}

type Service struct {
	store     StoreAPI
	employees EmployeeLookup
	schedules ScheduleWriter
	notifier  Notifier
	now       clock.Func
	loc       *time.Location
}

func NewService(store StoreAPI, employees EmployeeLookup, schedules ScheduleWriter, notifier Notifier, now clock.Func, loc *time.Location) *Service {
	if now == nil {
		now = clock.System
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, employees: employees, schedules: schedules, notifier: notifier, now: now, loc: loc}
}

func (s *Service) Submit(ctx context.Context, input SubmitInput) (Request, error) {
	if input.Details == nil {
		return Request{}, ErrInvalidType
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return Request{}, ErrReasonRequired
	}
	now := s.now()
	date := clock.Date(input.RequestedDate)
	if date.Before(clock.DateOf(now, s.loc)) {
		return Request{}, ErrDateInPast
	}
	if err := input.Details.validate(input.EmployeeID); err != nil {
		return Request{}, err
	}
	if _, err := s.employees.RequireActive(ctx, input.EmployeeID); err != nil {
		return Request{}, err
	}
	if swap, ok := input.Details.(ShiftSwap); ok {
		if _, err := s.employees.RequireActive(ctx, swap.SwapWithEmployeeID); err != nil {
			return Request{}, fmt.Errorf("%w: %v", ErrInvalidSwapPartner, err)
		}
	}

	req := Request{
		ID:            uuid.NewString(),
		EmployeeID:    input.EmployeeID,
		RequestedDate: date,
		Details:       input.Details,
		Reason:        reason,
		Status:        StatusPending,
		CreatedAt:     now,
	}
	if err := s.store.Insert(ctx, req); err != nil {
		return Request{}, err
	}

	s.notify(ctx, req, notifications.TypeRequestSubmitted, "Request submitted",
		fmt.Sprintf("Your %s request for %s is awaiting review.", label(req.Type()), req.RequestedDate.Format(clock.DateLayout)), notifications.VariantSuccess)
	return req, nil
}

// Approve marks the request approved and applies its schedule mutation in the
// same transaction. When the mutation fails nothing is persisted and the
// request stays pending.
func (s *Service) Approve(ctx context.Context, requestID string, review Review) (Request, error) {
	req, err := s.store.Get(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if !req.Pending() {
		return Request{}, ErrAlreadyReviewed
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return Request{}, err
	}
	defer db.RollbackQuietly(ctx, tx)

	approved, err := s.store.MarkReviewedTx(ctx, tx, requestID, StatusApproved, review, s.now())
	if err != nil {
		return Request{}, err
	}
	if err := s.apply(ctx, tx, approved); err != nil {
		db.RollbackQuietly(ctx, tx)
		s.notify(ctx, req, notifications.TypeRequestFailed, "Request not applied",
			fmt.Sprintf("Your %s request for %s could not be applied and is still pending.", label(req.Type()), req.RequestedDate.Format(clock.DateLayout)), notifications.VariantError)
		return Request{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Request{}, err
	}

	s.notify(ctx, approved, notifications.TypeRequestApproved, "Request approved",
		fmt.Sprintf("Your %s request for %s was approved.", label(approved.Type()), approved.RequestedDate.Format(clock.DateLayout)), notifications.VariantSuccess)
	if swap, ok := approved.Details.(ShiftSwap); ok {
		s.notifyEmployee(ctx, swap.SwapWithEmployeeID, notifications.TypeRequestApproved, "Shift swapped",
			fmt.Sprintf("Your shift on %s was swapped.", approved.RequestedDate.Format(clock.DateLayout)), notifications.VariantWarning)
	}
	return approved, nil
}

func (s *Service) Deny(ctx context.Context, requestID string, review Review) (Request, error) {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return Request{}, err
	}
	defer db.RollbackQuietly(ctx, tx)

	denied, err := s.store.MarkReviewedTx(ctx, tx, requestID, StatusDenied, review, s.now())
	if errors.Is(err, ErrAlreadyReviewed) {
		if _, getErr := s.store.Get(ctx, requestID); getErr != nil {
			return Request{}, getErr
		}
	}
	if err != nil {
		return Request{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Request{}, err
	}

	s.notify(ctx, denied, notifications.TypeRequestDenied, "Request denied",
		fmt.Sprintf("Your %s request for %s was denied.", label(denied.Type()), denied.RequestedDate.Format(clock.DateLayout)), notifications.VariantWarning)
	return denied, nil
}

func (s *Service) Get(ctx context.Context, requestID string) (Request, error) {
	return s.store.Get(ctx, requestID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Request, error) {
	if filter.Type != "" && !ValidType(filter.Type) {
		return nil, ErrInvalidType
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.store.List(ctx, filter)
}

func (s *Service) apply(ctx context.Context, tx pgx.Tx, req Request) error {
	switch d := req.Details.(type) {
	case ScheduleChange:
		if _, err := s.schedules.UpsertTx(ctx, tx, req.EmployeeID, req.RequestedDate, d.Requested); err != nil {
			return fmt.Errorf("%w: %w", ErrScheduleApplyFailed, err)
		}
	case ShiftSwap:
		if err := s.swap(ctx, tx, req.EmployeeID, d.SwapWithEmployeeID, req.RequestedDate); err != nil {
			return fmt.Errorf("%w: %w", ErrSwapApplyFailed, err)
		}
	}
	return nil
}

// swap exchanges both employees' shifts on date. Rows are locked in id order
// so two concurrent swaps over the same pair cannot deadlock.
func (s *Service) swap(ctx context.Context, tx pgx.Tx, a, b string, date time.Time) error {
	ids := []string{a, b}
	sort.Strings(ids)
	entries := make(map[string]schedule.Entry, 2)
	for _, id := range ids {
		entry, err := s.schedules.GetForUpdateTx(ctx, tx, id, date)
		if err != nil {
			return fmt.Errorf("employee %s: %w", id, err)
		}
		entries[id] = entry
	}

	first, second := entries[a], entries[b]
	if _, err := s.schedules.UpsertTx(ctx, tx, a, date, schedule.Shift{Start: second.Start, End: second.End}); err != nil {
		return err
	}
	if _, err := s.schedules.UpsertTx(ctx, tx, b, date, schedule.Shift{Start: first.Start, End: first.End}); err != nil {
		return err
	}
	return nil
}

func (s *Service) notify(ctx context.Context, req Request, ntype, title, message, variant string) {
	s.notifyEmployee(ctx, req.EmployeeID, ntype, title, message, variant)
}

func (s *Service) notifyEmployee(ctx context.Context, employeeID, ntype, title, message, variant string) {
	if s.notifier == nil {
		slog.Debug("no notifier configured", "type", ntype)
		return
	}
	s.notifier.Notify(ctx, notifications.Notification{
		EmployeeID: employeeID,
		Type:       ntype,
		Title:      title,
		Message:    message,
		Variant:    variant,
	})
}

func label(requestType string) string {
	return strings.ReplaceAll(requestType, "_", " ")
}
