package timeentry

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"timeclock/internal/domain/directory"
)

type fakeStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: map[string]Entry{}}
}

func (f *fakeStore) InsertOpen(_ context.Context, entry Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.entries {
		if existing.EmployeeID == entry.EmployeeID && existing.Open() {
			return ErrAlreadyClockedIn
		}
	}
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeStore) ActiveEntry(_ context.Context, employeeID string) (Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, entry := range f.entries {
		if entry.EmployeeID == employeeID && entry.Open() {
			return entry, nil
		}
	}
	return Entry{}, ErrNoActiveEntry
}

func (f *fakeStore) GetEntry(_ context.Context, entryID string) (Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[entryID]
	if !ok {
		return Entry{}, ErrEntryNotFound
	}
	return entry, nil
}

func (f *fakeStore) Close(_ context.Context, entryID string, clockOut time.Time, breakMinutes int, hours decimal.Decimal) (Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[entryID]
	if !ok || !entry.Open() {
		return Entry{}, ErrNoActiveEntry
	}
	entry.ClockOut = &clockOut
	entry.BreakMinutes = breakMinutes
	entry.HoursWorked = &hours
	f.entries[entryID] = entry
	return entry, nil
}

func (f *fakeStore) ListClosed(_ context.Context, filter RangeFilter) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Entry
	for _, entry := range f.entries {
		if entry.Open() || entry.Date.Before(filter.StartDate) || entry.Date.After(filter.EndDate) {
			continue
		}
		if filter.EmployeeID != "" && entry.EmployeeID != filter.EmployeeID {
			continue
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClockIn.Before(out[j].ClockIn) })
	return out, nil
}

func (f *fakeStore) ListForEmployee(_ context.Context, employeeID string, limit, offset int) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Entry
	for _, entry := range f.entries {
		if entry.EmployeeID == employeeID {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClockIn.After(out[j].ClockIn) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
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

// steppingClock returns each instant in turn and then repeats the last one.
type steppingClock struct {
	mu    sync.Mutex
	times []time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.times[0]
	if len(c.times) > 1 {
		c.times = c.times[1:]
	}
	return now
}
