package allocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeclock/internal/domain/directory"
)

type fakeStore struct {
	rows map[string]Allocation
}

func (f *fakeStore) key(employeeID string, week time.Time) string {
	return employeeID + "|" + week.Format("2006-01-02")
}

func (f *fakeStore) Upsert(_ context.Context, a Allocation) (Allocation, error) {
	if existing, ok := f.rows[f.key(a.EmployeeID, a.WeekStart)]; ok {
		a.ID = existing.ID
	}
	f.rows[f.key(a.EmployeeID, a.WeekStart)] = a
	return a, nil
}

func (f *fakeStore) Get(_ context.Context, employeeID string, week time.Time) (Allocation, error) {
	a, ok := f.rows[f.key(employeeID, week)]
	if !ok {
		return Allocation{}, ErrAllocationNotFound
	}
	return a, nil
}

func (f *fakeStore) ListForWeek(_ context.Context, week time.Time) ([]Allocation, error) {
	var out []Allocation
	for _, a := range f.rows {
		if a.WeekStart.Equal(week) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeEmployees map[string]directory.Employee

func (f fakeEmployees) RequireActive(_ context.Context, employeeID string) (directory.Employee, error) {
	employee, ok := f[employeeID]
	if !ok {
		return directory.Employee{}, directory.ErrEmployeeNotFound
	}
	if !employee.Active() {
		return employee, directory.ErrEmployeeInactive
	}
	return employee, nil
}

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func newTestService() (*Service, *fakeStore) {
	store := &fakeStore{rows: map[string]Allocation{}}
	employees := fakeEmployees{
		"director": {ID: "director", Status: directory.StatusActive, Compensation: directory.CompensationSalaried},
		"aide":     {ID: "aide", Status: directory.StatusActive, Compensation: directory.CompensationHourly},
	}
	return NewService(store, employees), store
}

func TestUpsertAllocationReplacesWeek(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	first, err := svc.UpsertAllocation(ctx, UpsertInput{EmployeeID: "director", WeekStart: monday, BuildingID: "north", RoleCoverage: "Director"})
	require.NoError(t, err)

	second, err := svc.UpsertAllocation(ctx, UpsertInput{EmployeeID: "director", WeekStart: monday, BuildingID: " south ", RoleCoverage: "Floater", Notes: "covering"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "south", second.BuildingID)
	require.Len(t, store.rows, 1)

	week, err := svc.ListForWeek(ctx, monday)
	require.NoError(t, err)
	require.Len(t, week, 1)
	assert.Equal(t, "Floater", week[0].RoleCoverage)

	got, err := svc.ForEmployee(ctx, "director", monday)
	require.NoError(t, err)
	assert.Equal(t, "covering", got.Notes)
}

func TestUpsertAllocationValidation(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	_, err := svc.UpsertAllocation(ctx, UpsertInput{EmployeeID: "aide", WeekStart: monday, BuildingID: "north"})
	assert.ErrorIs(t, err, ErrNotSalariedEmployee)

	_, err = svc.UpsertAllocation(ctx, UpsertInput{EmployeeID: "director", WeekStart: monday.AddDate(0, 0, 2), BuildingID: "north"})
	assert.ErrorIs(t, err, ErrWeekStartNotMonday)

	_, err = svc.UpsertAllocation(ctx, UpsertInput{EmployeeID: "director", WeekStart: monday, BuildingID: "  "})
	assert.ErrorIs(t, err, ErrBuildingRequired)

	_, err = svc.UpsertAllocation(ctx, UpsertInput{EmployeeID: "ghost", WeekStart: monday, BuildingID: "north"})
	assert.ErrorIs(t, err, directory.ErrEmployeeNotFound)

	assert.Empty(t, store.rows)

	_, err = svc.ListForWeek(ctx, monday.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, ErrWeekStartNotMonday)
}
