package reconcile

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"timeclock/internal/domain/directory"
	"timeclock/internal/domain/schedule"
	"timeclock/internal/domain/timeentry"
	"timeclock/internal/platform/clock"
)

type EmployeeSource interface {
	Get(ctx context.Context, employeeID string) (directory.Employee, error)
	ListActive(ctx context.Context) ([]directory.Employee, error)
}

type ScheduleSource interface {
	EntriesForRange(ctx context.Context, employeeID string, start, end time.Time) ([]schedule.Entry, error)
}

type LedgerSource interface {
	EntriesForRange(ctx context.Context, employeeID string, start, end time.Time) ([]timeentry.Entry, error)
}

type Service struct {
	employees EmployeeSource
	schedules ScheduleSource
	ledger    LedgerSource
	threshold decimal.Decimal
}

func NewService(employees EmployeeSource, schedules ScheduleSource, ledger LedgerSource, threshold decimal.Decimal) *Service {
	return &Service{employees: employees, schedules: schedules, ledger: ledger, threshold: threshold}
}

// Week reconciles every active employee for the week starting weekStart.
func (s *Service) Week(ctx context.Context, weekStart time.Time) ([]WeeklySummary, error) {
	if !clock.IsMonday(clock.Date(weekStart)) {
		return nil, ErrWeekStartNotMonday
	}
	employees, err := s.employees.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ctx, "", weekStart, employees)
}

func (s *Service) ForEmployee(ctx context.Context, employeeID string, weekStart time.Time) (WeeklySummary, error) {
	if !clock.IsMonday(clock.Date(weekStart)) {
		return WeeklySummary{}, ErrWeekStartNotMonday
	}
	employee, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return WeeklySummary{}, err
	}
	out, err := s.reconcile(ctx, employeeID, weekStart, []directory.Employee{employee})
	if err != nil {
		return WeeklySummary{}, err
	}
	return out[0], nil
}

func (s *Service) reconcile(ctx context.Context, employeeID string, weekStart time.Time, employees []directory.Employee) ([]WeeklySummary, error) {
	start := clock.Date(weekStart)
	end := start.AddDate(0, 0, 6)
	schedules, err := s.schedules.EntriesForRange(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	entries, err := s.ledger.EntriesForRange(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	return Reconcile(start, employees, schedules, entries, s.threshold)
}
