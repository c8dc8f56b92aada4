package allocation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"timeclock/internal/domain/directory"
	"timeclock/internal/platform/clock"
)

type EmployeeLookup interface {
	RequireActive(ctx context.Context, employeeID string) (directory.Employee, error)
}

type Service struct {
	store     StoreAPI
	employees EmployeeLookup
}

func NewService(store StoreAPI, employees EmployeeLookup) *Service {
	return &Service{store: store, employees: employees}
}

// UpsertAllocation replaces the employee's allocation for the week.
func (s *Service) UpsertAllocation(ctx context.Context, input UpsertInput) (Allocation, error) {
	weekStart := clock.Date(input.WeekStart)
	if !clock.IsMonday(weekStart) {
		return Allocation{}, ErrWeekStartNotMonday
	}
	building := strings.TrimSpace(input.BuildingID)
	if building == "" {
		return Allocation{}, ErrBuildingRequired
	}
	employee, err := s.employees.RequireActive(ctx, input.EmployeeID)
	if err != nil {
		return Allocation{}, err
	}
	if !employee.Salaried() {
		return Allocation{}, ErrNotSalariedEmployee
	}

	return s.store.Upsert(ctx, Allocation{
		ID:           uuid.NewString(),
		EmployeeID:   employee.ID,
		WeekStart:    weekStart,
		BuildingID:   building,
		RoleCoverage: strings.TrimSpace(input.RoleCoverage),
		Notes:        input.Notes,
	})
}

func (s *Service) ForEmployee(ctx context.Context, employeeID string, weekStart time.Time) (Allocation, error) {
	return s.store.Get(ctx, employeeID, clock.Date(weekStart))
}

func (s *Service) ListForWeek(ctx context.Context, weekStart time.Time) ([]Allocation, error) {
	weekStart = clock.Date(weekStart)
	if !clock.IsMonday(weekStart) {
		return nil, ErrWeekStartNotMonday
	}
	return s.store.ListForWeek(ctx, weekStart)
}
