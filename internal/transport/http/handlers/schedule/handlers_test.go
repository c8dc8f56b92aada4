package schedulehandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeclock/internal/domain/auth"
	"timeclock/internal/domain/schedule"
	"timeclock/internal/transport/http/middleware"
)

type fakeSchedules struct {
	entries map[string]schedule.Entry
	ranges  []string
}

func key(employeeID string, date time.Time) string {
	return employeeID + "@" + date.Format("2006-01-02")
}

func (f *fakeSchedules) UpsertSchedule(_ context.Context, employeeID string, date time.Time, shift schedule.Shift) (schedule.Entry, error) {
	if err := shift.Validate(); err != nil {
		return schedule.Entry{}, err
	}
	entry := schedule.Entry{ID: key(employeeID, date), EmployeeID: employeeID, Date: date, Start: shift.Start, End: shift.End}
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakeSchedules) EntriesForRange(_ context.Context, employeeID string, _, _ time.Time) ([]schedule.Entry, error) {
	f.ranges = append(f.ranges, employeeID)
	return []schedule.Entry{}, nil
}

func (f *fakeSchedules) DeleteSchedule(_ context.Context, employeeID string, date time.Time) error {
	delete(f.entries, key(employeeID, date))
	return nil
}

type recordedAudit struct {
	actions []string
}

func (a *recordedAudit) Record(_ context.Context, _, action, _, _, _, _ string, _, _ any) error {
	a.actions = append(a.actions, action)
	return nil
}

func serve(h *Handler, identity auth.Identity, method, target, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

var (
	alice = auth.Identity{UserID: "u-alice", EmployeeID: "alice", Role: auth.RoleEmployee}
	admin = auth.Identity{UserID: "u-admin", Role: auth.RoleAdmin}
)

func TestUpsertLastWriteWins(t *testing.T) {
	store := &fakeSchedules{entries: map[string]schedule.Entry{}}
	audit := &recordedAudit{}
	h := NewHandler(store, audit)

	rec := serve(h, admin, http.MethodPut, "/schedules/alice/2026-03-02", `{"startTime":"09:00","endTime":"17:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = serve(h, admin, http.MethodPut, "/schedules/alice/2026-03-02", `{"startTime":"13:00","endTime":"21:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	entry := store.entries["alice@2026-03-02"]
	assert.Equal(t, "13:00", entry.Start.String())
	assert.Equal(t, "21:00", entry.End.String())
	assert.Len(t, store.entries, 1)
	assert.Equal(t, []string{"schedule.upsert", "schedule.upsert"}, audit.actions)
}

func TestUpsertRejectsReversedShift(t *testing.T) {
	h := NewHandler(&fakeSchedules{entries: map[string]schedule.Entry{}}, nil)

	rec := serve(h, admin, http.MethodPut, "/schedules/alice/2026-03-02", `{"startTime":"17:00","endTime":"09:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "end_before_start")
}

func TestUpsertRequiresScheduleWrite(t *testing.T) {
	h := NewHandler(&fakeSchedules{entries: map[string]schedule.Entry{}}, nil)

	rec := serve(h, alice, http.MethodPut, "/schedules/alice/2026-03-02", `{"startTime":"09:00","endTime":"17:00"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRangeScopesEmployeesToThemselves(t *testing.T) {
	store := &fakeSchedules{entries: map[string]schedule.Entry{}}
	h := NewHandler(store, nil)

	rec := serve(h, alice, http.MethodGet, "/schedules?start=2026-03-02&end=2026-03-08", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = serve(h, alice, http.MethodGet, "/schedules?start=2026-03-02&end=2026-03-08&employeeId=bob", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = serve(h, admin, http.MethodGet, "/schedules?start=2026-03-02&end=2026-03-08", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []string{"alice", ""}, store.ranges)
}
