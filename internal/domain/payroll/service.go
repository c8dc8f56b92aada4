package payroll

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"timeclock/internal/domain/directory"
	"timeclock/internal/domain/notifications"
	"timeclock/internal/domain/reconcile"
	"timeclock/internal/platform/clock"
)

type EmployeeLookup interface {
	Get(ctx context.Context, employeeID string) (directory.Employee, error)
}

type WeekReconciler interface {
	ForEmployee(ctx context.Context, employeeID string, weekStart time.Time) (reconcile.WeeklySummary, error)
}

type Notifier interface {
	Notify(ctx context.Context, n notifications.Notification)
}

// Enqueuer runs work in the background.
type Enqueuer interface {
	Enqueue(name string, run func(context.Context) error) bool
}

type Service struct {
	store      StoreAPI
	employees  EmployeeLookup
	reconciler WeekReconciler
	notifier   Notifier
	calc       Calculator
	now        clock.Func
	// ArchiveDir, when set, receives a PDF copy of every finalized stub.
	ArchiveDir string
	// Jobs, when set, writes archives in the background.
	Jobs Enqueuer
}

func NewService(store StoreAPI, employees EmployeeLookup, reconciler WeekReconciler, notifier Notifier, calc Calculator, now clock.Func) *Service {
	if now == nil {
		now = clock.System
	}
	return &Service{store: store, employees: employees, reconciler: reconciler, notifier: notifier, calc: calc, now: now}
}

// ComputePayStub prices the given hours at the employee's current rate and
// stores the result as a draft.
func (s *Service) ComputePayStub(ctx context.Context, input ComputeInput) (PayStub, error) {
	if input.RegularHours.IsNegative() || input.OvertimeHours.IsNegative() {
		return PayStub{}, ErrNegativeHours
	}
	start, end := clock.Date(input.PeriodStart), clock.Date(input.PeriodEnd)
	if end.Before(start) {
		return PayStub{}, ErrInvalidPeriod
	}

	employee, err := s.employees.Get(ctx, input.EmployeeID)
	if err != nil {
		return PayStub{}, err
	}
	if !employee.Hourly() {
		return PayStub{}, ErrNotHourlyEmployee
	}
	if employee.HourlyRate == nil {
		return PayStub{}, ErrMissingRate
	}

	breakdown, err := s.calc.Compute(input.RegularHours, input.OvertimeHours, *employee.HourlyRate)
	if err != nil {
		return PayStub{}, err
	}

	stub := PayStub{
		ID:            uuid.NewString(),
		EmployeeID:    employee.ID,
		PeriodStart:   start,
		PeriodEnd:     end,
		RegularHours:  input.RegularHours,
		OvertimeHours: input.OvertimeHours,
		HourlyRate:    *employee.HourlyRate,
		Status:        StatusDraft,
		PayDate:       input.PayDate,
		CreatedAt:     s.now(),
	}
	stub.apply(breakdown)

	if err := s.store.Insert(ctx, stub); err != nil {
		return PayStub{}, err
	}
	return stub, nil
}

// DraftFromTimesheets reconciles each week of the period and drafts a stub
// from the summed regular and overtime hours. Overtime is counted per week,
// so the period must be whole Monday-to-Sunday weeks.
func (s *Service) DraftFromTimesheets(ctx context.Context, employeeID string, periodStart, periodEnd time.Time, payDate *time.Time) (PayStub, error) {
	start, end := clock.Date(periodStart), clock.Date(periodEnd)
	if !clock.IsMonday(start) || end.Before(start) {
		return PayStub{}, ErrInvalidPeriod
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days%7 != 0 {
		return PayStub{}, fmt.Errorf("%w: period must cover whole weeks", ErrInvalidPeriod)
	}

	regular, overtime := decimal.Zero, decimal.Zero
	for week := start; week.Before(end); week = week.AddDate(0, 0, 7) {
		summary, err := s.reconciler.ForEmployee(ctx, employeeID, week)
		if err != nil {
			return PayStub{}, err
		}
		regular = regular.Add(summary.RegularHours())
		overtime = overtime.Add(summary.OvertimeHours)
	}

	return s.ComputePayStub(ctx, ComputeInput{
		EmployeeID:    employeeID,
		PeriodStart:   start,
		PeriodEnd:     end,
		RegularHours:  regular,
		OvertimeHours: overtime,
		PayDate:       payDate,
	})
}

func (s *Service) Finalize(ctx context.Context, stubID string) (PayStub, error) {
	stub, err := s.transition(ctx, stubID, StatusFinalized, nil)
	if err != nil {
		return PayStub{}, err
	}
	s.archive(ctx, stub)
	if s.notifier != nil {
		s.notifier.Notify(ctx, notifications.Notification{
			EmployeeID: stub.EmployeeID,
			Type:       notifications.TypePayStubFinalized,
			Title:      "Pay stub ready",
			Message:    fmt.Sprintf("Your pay stub for %s to %s is ready.", stub.PeriodStart.Format(clock.DateLayout), stub.PeriodEnd.Format(clock.DateLayout)),
			Variant:    notifications.VariantSuccess,
		})
	}
	return stub, nil
}

func (s *Service) MarkPaid(ctx context.Context, stubID string, payDate time.Time) (PayStub, error) {
	date := clock.Date(payDate)
	return s.transition(ctx, stubID, StatusPaid, &date)
}

func (s *Service) transition(ctx context.Context, stubID, to string, payDate *time.Time) (PayStub, error) {
	current, err := s.store.Get(ctx, stubID)
	if err != nil {
		return PayStub{}, err
	}
	if nextStatus[current.Status] != to {
		return PayStub{}, ErrInvalidTransition
	}
	return s.store.Transition(ctx, stubID, current.Status, to, payDate)
}

func (s *Service) Get(ctx context.Context, stubID string) (PayStub, error) {
	return s.store.Get(ctx, stubID)
}

func (s *Service) ListForEmployee(ctx context.Context, employeeID string, limit, offset int) ([]PayStub, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.store.ListForEmployee(ctx, employeeID, limit, offset)
}

// PDF renders the stub with the employee's current name.
func (s *Service) PDF(ctx context.Context, stubID string) ([]byte, PayStub, error) {
	stub, err := s.store.Get(ctx, stubID)
	if err != nil {
		return nil, PayStub{}, err
	}
	name := stub.EmployeeID
	if employee, err := s.employees.Get(ctx, stub.EmployeeID); err == nil && employee.Name != "" {
		name = employee.Name
	}
	var buf bytes.Buffer
	if err := WritePDF(&buf, stub, name); err != nil {
		return nil, PayStub{}, err
	}
	return buf.Bytes(), stub, nil
}

func (s *Service) archive(ctx context.Context, stub PayStub) {
	if s.ArchiveDir == "" {
		return
	}
	if s.Jobs != nil && s.Jobs.Enqueue("pay_stub_archive", func(ctx context.Context) error {
		return s.writeArchive(ctx, stub.ID)
	}) {
		return
	}
	if err := s.writeArchive(ctx, stub.ID); err != nil {
		slog.Warn("pay stub archive failed", "pay_stub_id", stub.ID, "err", err)
	}
}

func (s *Service) writeArchive(ctx context.Context, stubID string) error {
	data, _, err := s.PDF(ctx, stubID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.ArchiveDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.ArchiveDir, stubID+".pdf"), data, 0o644)
}
