package requests

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"timeclock/internal/domain/directory"
	"timeclock/internal/domain/notifications"
	"timeclock/internal/domain/schedule"
)

// fakeDB keeps committed state; fakeTx stages writes until Commit. A request
// claimed by an open tx behaves like a row lock held by that tx.
type fakeDB struct {
	mu        sync.Mutex
	requests  map[string]Request
	claimed   map[string]bool
	schedules map[string]schedule.Entry
	upserts   int
	failFor   string
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		requests:  map[string]Request{},
		claimed:   map[string]bool{},
		schedules: map[string]schedule.Entry{},
	}
}

func scheduleKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeDB) seedShift(employeeID string, date time.Time, start, end schedule.ShiftTime) {
	f.schedules[scheduleKey(employeeID, date)] = schedule.Entry{ID: employeeID + "-shift", EmployeeID: employeeID, Date: date, Start: start, End: end}
}

func (f *fakeDB) shift(employeeID string, date time.Time) schedule.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.schedules[scheduleKey(employeeID, date)]
}

type fakeTx struct {
	pgx.Tx
	db      *fakeDB
	ops     []func()
	claims  []string
	applied bool
	closed  bool
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	if tx.closed {
		return pgx.ErrTxClosed
	}
	for _, op := range tx.ops {
		op()
	}
	tx.release()
	tx.closed = true
	tx.applied = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	if tx.closed {
		return pgx.ErrTxClosed
	}
	tx.release()
	tx.ops = nil
	tx.closed = true
	return nil
}

func (tx *fakeTx) release() {
	for _, id := range tx.claims {
		delete(tx.db.claimed, id)
	}
	tx.claims = nil
}

type fakeStore struct {
	db *fakeDB
}

func (s *fakeStore) BeginTx(context.Context) (pgx.Tx, error) {
	return &fakeTx{db: s.db}, nil
}

func (s *fakeStore) Insert(_ context.Context, req Request) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.requests[req.ID] = req
	return nil
}

func (s *fakeStore) Get(_ context.Context, requestID string) (Request, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	req, ok := s.db.requests[requestID]
	if !ok {
		return Request{}, ErrRequestNotFound
	}
	return req, nil
}

func (s *fakeStore) List(_ context.Context, filter ListFilter) ([]Request, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []Request
	for _, req := range s.db.requests {
		if filter.EmployeeID != "" && req.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		if filter.Type != "" && req.Type() != filter.Type {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeStore) MarkReviewedTx(_ context.Context, tx pgx.Tx, requestID, status string, review Review, at time.Time) (Request, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	req, ok := s.db.requests[requestID]
	if !ok || req.Status != StatusPending || s.db.claimed[requestID] {
		return Request{}, ErrAlreadyReviewed
	}
	ftx := tx.(*fakeTx)
	s.db.claimed[requestID] = true
	ftx.claims = append(ftx.claims, requestID)

	req.Status = status
	reviewer, notes := review.ReviewerID, review.Notes
	req.ReviewedBy = &reviewer
	if notes != "" {
		req.ReviewNotes = &notes
	}
	req.ReviewedAt = &at
	ftx.ops = append(ftx.ops, func() { s.db.requests[requestID] = req })
	return req, nil
}

type fakeSchedules struct {
	db *fakeDB
}

func (f *fakeSchedules) GetForUpdateTx(_ context.Context, _ pgx.Tx, employeeID string, date time.Time) (schedule.Entry, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	entry, ok := f.db.schedules[scheduleKey(employeeID, date)]
	if !ok {
		return schedule.Entry{}, schedule.ErrScheduleMissing
	}
	return entry, nil
}

func (f *fakeSchedules) UpsertTx(_ context.Context, tx pgx.Tx, employeeID string, date time.Time, shift schedule.Shift) (schedule.Entry, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.failFor == employeeID {
		return schedule.Entry{}, errors.New("injected failure")
	}
	entry := schedule.Entry{ID: employeeID + "-shift", EmployeeID: employeeID, Date: date, Start: shift.Start, End: shift.End}
	ftx := tx.(*fakeTx)
	ftx.ops = append(ftx.ops, func() {
		f.db.schedules[scheduleKey(employeeID, date)] = entry
		f.db.upserts++
	})
	return entry, nil
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

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notifications.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n notifications.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recordingNotifier) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sent))
	for _, n := range r.sent {
		out = append(out, n.Type)
	}
	return out
}
