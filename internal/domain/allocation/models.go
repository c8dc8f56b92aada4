package allocation

import (
	"errors"
	"time"
)

var (
	ErrNotSalariedEmployee = errors.New("employee is not salaried")
	ErrWeekStartNotMonday  = errors.New("week start must be a Monday")
	ErrBuildingRequired    = errors.New("building is required")
	ErrAllocationNotFound  = errors.New("allocation not found")
)

// Allocation places a salaried employee at a building for one week. There is
// at most one per employee and week.
type Allocation struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	WeekStart    time.Time `json:"weekStart"`
	BuildingID   string    `json:"buildingId"`
	RoleCoverage string    `json:"roleCoverage"`
	Notes        string    `json:"notes,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type UpsertInput struct {
	EmployeeID   string
	WeekStart    time.Time
	BuildingID   string
	RoleCoverage string
	Notes        string
}
