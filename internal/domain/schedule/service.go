package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"timeclock/internal/domain/directory"
	"timeclock/internal/platform/clock"
)

type EmployeeLookup interface {
	Get(ctx context.Context, employeeID string) (directory.Employee, error)
}

type Service struct {
	store     StoreAPI
	employees EmployeeLookup
}

func NewService(store StoreAPI, employees EmployeeLookup) *Service {
	return &Service{store: store, employees: employees}
}

// UpsertSchedule replaces whatever is planned for the employee on date.
func (s *Service) UpsertSchedule(ctx context.Context, employeeID string, date time.Time, shift Shift) (Entry, error) {
	if err := shift.Validate(); err != nil {
		return Entry{}, err
	}
	if _, err := s.employees.Get(ctx, employeeID); err != nil {
		return Entry{}, err
	}
	return s.store.Upsert(ctx, newEntry(employeeID, date, shift))
}

// UpsertTx writes inside a caller-owned transaction. The request workflow
// uses it so approval and the schedule mutation commit together.
func (s *Service) UpsertTx(ctx context.Context, tx pgx.Tx, employeeID string, date time.Time, shift Shift) (Entry, error) {
	if err := shift.Validate(); err != nil {
		return Entry{}, err
	}
	return s.store.UpsertTx(ctx, tx, newEntry(employeeID, date, shift))
}

func (s *Service) GetForUpdateTx(ctx context.Context, tx pgx.Tx, employeeID string, date time.Time) (Entry, error) {
	return s.store.GetForUpdateTx(ctx, tx, employeeID, clock.Date(date))
}

// EntriesForRange returns entries ordered by date. An empty employeeID
// covers everyone.
func (s *Service) EntriesForRange(ctx context.Context, employeeID string, start, end time.Time) ([]Entry, error) {
	start, end = clock.Date(start), clock.Date(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	return s.store.ListRange(ctx, RangeFilter{EmployeeID: employeeID, StartDate: start, EndDate: end})
}

func (s *Service) DeleteSchedule(ctx context.Context, employeeID string, date time.Time) error {
	return s.store.Delete(ctx, employeeID, clock.Date(date))
}

func newEntry(employeeID string, date time.Time, shift Shift) Entry {
	return Entry{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       clock.Date(date),
		Start:      shift.Start,
		End:        shift.End,
	}
}
