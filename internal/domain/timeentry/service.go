package timeentry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"timeclock/internal/domain/directory"
	"timeclock/internal/platform/clock"
)

type EmployeeLookup interface {
	RequireActive(ctx context.Context, employeeID string) (directory.Employee, error)
}

// Service is the time entry ledger. Entries are created on clock-in, closed
// once on clock-out and never edited afterwards.
type Service struct {
	store     StoreAPI
	employees EmployeeLookup
	now       clock.Func
	loc       *time.Location
}

func NewService(store StoreAPI, employees EmployeeLookup, now clock.Func, loc *time.Location) *Service {
	if now == nil {
		now = clock.System
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, employees: employees, now: now, loc: loc}
}

func (s *Service) ClockIn(ctx context.Context, employeeID string) (Entry, error) {
	if _, err := s.employees.RequireActive(ctx, employeeID); err != nil {
		return Entry{}, err
	}

	now := s.now()
	entry := Entry{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       clock.DateOf(now, s.loc),
		ClockIn:    now,
		CreatedAt:  now,
	}
	if err := s.store.InsertOpen(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (s *Service) ClockOut(ctx context.Context, entryID string, breakMinutes int) (Entry, error) {
	if breakMinutes < 0 {
		return Entry{}, ErrInvalidBreak
	}

	entry, err := s.store.GetEntry(ctx, entryID)
	if errors.Is(err, ErrEntryNotFound) {
		return Entry{}, ErrNoActiveEntry
	}
	if err != nil {
		return Entry{}, err
	}
	if !entry.Open() {
		return Entry{}, ErrNoActiveEntry
	}

	now := s.now()
	hours := HoursWorked(entry.ClockIn, now, breakMinutes)
	return s.store.Close(ctx, entryID, now, breakMinutes, hours)
}

// ActiveEntryFor returns the employee's open entry, or nil when clocked out.
func (s *Service) ActiveEntryFor(ctx context.Context, employeeID string) (*Entry, error) {
	entry, err := s.store.ActiveEntry(ctx, employeeID)
	if errors.Is(err, ErrNoActiveEntry) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// EntriesForRange lists closed entries dated within [start, end]. An empty
// employeeID covers every employee.
func (s *Service) EntriesForRange(ctx context.Context, employeeID string, start, end time.Time) ([]Entry, error) {
	start, end = clock.Date(start), clock.Date(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	return s.store.ListClosed(ctx, RangeFilter{EmployeeID: employeeID, StartDate: start, EndDate: end})
}

func (s *Service) History(ctx context.Context, employeeID string, limit, offset int) ([]Entry, error) {
	return s.store.ListForEmployee(ctx, employeeID, limit, offset)
}

func (s *Service) Get(ctx context.Context, entryID string) (Entry, error) {
	return s.store.GetEntry(ctx, entryID)
}
