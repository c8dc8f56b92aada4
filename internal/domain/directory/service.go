package directory

import (
	"context"
	"strings"
)

// Service is the read-only view of the employee directory used by the
// scheduling components. It never creates or removes employees.
type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, employeeID string) (Employee, error) {
	if strings.TrimSpace(employeeID) == "" {
		return Employee{}, ErrEmployeeNotFound
	}
	return s.store.GetEmployee(ctx, employeeID)
}

// RequireActive returns the employee, or ErrEmployeeInactive when they are on
// leave or terminated.
func (s *Service) RequireActive(ctx context.Context, employeeID string) (Employee, error) {
	employee, err := s.Get(ctx, employeeID)
	if err != nil {
		return Employee{}, err
	}
	if !employee.Active() {
		return employee, ErrEmployeeInactive
	}
	return employee, nil
}

func (s *Service) ListActive(ctx context.Context) ([]Employee, error) {
	return s.store.ListEmployees(ctx, StatusActive)
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.store.ListEmployees(ctx, "")
}
