package timeoff

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"timeclock/internal/domain/directory"
	"timeclock/internal/domain/notifications"
	"timeclock/internal/platform/clock"
	"timeclock/internal/platform/db"
)

type EmployeeLookup interface {
	RequireActive(ctx context.Context, employeeID string) (directory.Employee, error)
}

type Notifier interface {
	Notify(ctx context.Context, n notifications.Notification)
}

// Service runs the time off workflow. Submitting reserves the hours,
// approving consumes the reservation and denying releases it.
type Service struct {
	store     StoreAPI
	employees EmployeeLookup
	notifier  Notifier
	workday   decimal.Decimal
	now       clock.Func
	loc       *time.Location
}

func NewService(store StoreAPI, employees EmployeeLookup, notifier Notifier, workday decimal.Decimal, now clock.Func, loc *time.Location) *Service {
	if now == nil {
		now = clock.System
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, employees: employees, notifier: notifier, workday: workday, now: now, loc: loc}
}

func (s *Service) Submit(ctx context.Context, input SubmitInput) (Request, error) {
	if !ValidType(input.Type) {
		return Request{}, ErrInvalidType
	}
	start, end := clock.Date(input.StartDate), clock.Date(input.EndDate)
	hours, err := HoursRequested(start, end, s.workday)
	if err != nil {
		return Request{}, err
	}
	if start.Year() != end.Year() {
		return Request{}, ErrSpansYears
	}
	now := s.now()
	if start.Before(clock.DateOf(now, s.loc)) {
		return Request{}, ErrDateInPast
	}
	if _, err := s.employees.RequireActive(ctx, input.EmployeeID); err != nil {
		return Request{}, err
	}

	req := Request{
		ID:             uuid.NewString(),
		EmployeeID:     input.EmployeeID,
		Type:           input.Type,
		StartDate:      start,
		EndDate:        end,
		HoursRequested: hours,
		Reason:         input.Reason,
		Status:         StatusPending,
		CreatedAt:      now,
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return Request{}, err
	}
	defer db.RollbackQuietly(ctx, tx)

	if Pooled(req.Type) {
		if err := s.store.ReserveTx(ctx, tx, req.EmployeeID, req.Type, req.Year(), req.HoursRequested); err != nil {
			return Request{}, err
		}
	}
	if err := s.store.InsertTx(ctx, tx, req); err != nil {
		return Request{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Request{}, err
	}

	s.notify(ctx, req, notifications.TypeTimeOffSubmitted, "Time off submitted", "is awaiting review", notifications.VariantSuccess)
	return req, nil
}

func (s *Service) Approve(ctx context.Context, requestID string, review Review) (Request, error) {
	return s.review(ctx, requestID, StatusApproved, review)
}

func (s *Service) Deny(ctx context.Context, requestID string, review Review) (Request, error) {
	return s.review(ctx, requestID, StatusDenied, review)
}

func (s *Service) review(ctx context.Context, requestID, status string, review Review) (Request, error) {
	if _, err := s.store.Get(ctx, requestID); err != nil {
		return Request{}, err
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return Request{}, err
	}
	defer db.RollbackQuietly(ctx, tx)

	req, err := s.store.MarkReviewedTx(ctx, tx, requestID, status, review, s.now())
	if err != nil {
		return Request{}, err
	}
	if Pooled(req.Type) {
		if status == StatusApproved {
			err = s.store.ConsumeTx(ctx, tx, req.EmployeeID, req.Type, req.Year(), req.HoursRequested)
		} else {
			err = s.store.ReleaseTx(ctx, tx, req.EmployeeID, req.Type, req.Year(), req.HoursRequested)
		}
		if err != nil {
			return Request{}, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return Request{}, err
	}

	if status == StatusApproved {
		s.notify(ctx, req, notifications.TypeTimeOffApproved, "Time off approved", "was approved", notifications.VariantSuccess)
	} else {
		s.notify(ctx, req, notifications.TypeTimeOffDenied, "Time off denied", "was denied", notifications.VariantWarning)
	}
	return req, nil
}

func (s *Service) Get(ctx context.Context, requestID string) (Request, error) {
	return s.store.Get(ctx, requestID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Request, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.store.List(ctx, filter)
}

func (s *Service) Balances(ctx context.Context, employeeID string, year int) ([]Balance, error) {
	return s.store.Balances(ctx, employeeID, year)
}

// GrantBalance sets the annual allotment for a pooled type.
func (s *Service) GrantBalance(ctx context.Context, employeeID, timeOffType string, year int, hours decimal.Decimal) (Balance, error) {
	if !Pooled(timeOffType) {
		return Balance{}, ErrInvalidType
	}
	if hours.IsNegative() {
		return Balance{}, ErrNegativeAllotment
	}
	return s.store.SetAllotment(ctx, employeeID, timeOffType, year, hours.Round(hourPlaces))
}

func (s *Service) notify(ctx context.Context, req Request, ntype, title, outcome, variant string) {
	if s.notifier == nil {
		slog.Debug("no notifier configured", "type", ntype)
		return
	}
	message := fmt.Sprintf("Your %s request for %s to %s %s.", req.Type,
		req.StartDate.Format(clock.DateLayout), req.EndDate.Format(clock.DateLayout), outcome)
	s.notifier.Notify(ctx, notifications.Notification{
		EmployeeID: req.EmployeeID,
		Type:       ntype,
		Title:      title,
		Message:    message,
		Variant:    variant,
	})
}
