package requestshandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeclock/internal/domain/auth"
	"timeclock/internal/domain/requests"
	"timeclock/internal/transport/http/middleware"
)

type fakeWorkflow struct {
	mu        sync.Mutex
	items     map[string]requests.Request
	submitted []requests.SubmitInput
}

func (f *fakeWorkflow) Submit(_ context.Context, input requests.SubmitInput) (requests.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.TrimSpace(input.Reason) == "" {
		return requests.Request{}, requests.ErrReasonRequired
	}
	f.submitted = append(f.submitted, input)
	req := requests.Request{ID: "r-new", EmployeeID: input.EmployeeID, RequestedDate: input.RequestedDate, Details: input.Details, Reason: input.Reason, Status: requests.StatusPending}
	f.items[req.ID] = req
	return req, nil
}

func (f *fakeWorkflow) decide(id, status string) (requests.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.items[id]
	if !ok {
		return requests.Request{}, requests.ErrRequestNotFound
	}
	if !req.Pending() {
		return requests.Request{}, requests.ErrAlreadyReviewed
	}
	req.Status = status
	f.items[id] = req
	return req, nil
}

func (f *fakeWorkflow) Approve(_ context.Context, id string, _ requests.Review) (requests.Request, error) {
	return f.decide(id, requests.StatusApproved)
}

func (f *fakeWorkflow) Deny(_ context.Context, id string, _ requests.Review) (requests.Request, error) {
	return f.decide(id, requests.StatusDenied)
}

func (f *fakeWorkflow) Get(_ context.Context, id string) (requests.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.items[id]
	if !ok {
		return requests.Request{}, requests.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeWorkflow) List(_ context.Context, filter requests.ListFilter) ([]requests.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []requests.Request{}
	for _, req := range f.items {
		if filter.EmployeeID == "" || req.EmployeeID == filter.EmployeeID {
			out = append(out, req)
		}
	}
	return out, nil
}

var (
	alice = auth.Identity{UserID: "u-alice", EmployeeID: "alice", Role: auth.RoleEmployee}
	bob   = auth.Identity{UserID: "u-bob", EmployeeID: "bob", Role: auth.RoleEmployee}
	carol = auth.Identity{UserID: "u-carol", EmployeeID: "carol", Role: auth.RoleEmployee}
	admin = auth.Identity{UserID: "u-admin", Role: auth.RoleAdmin}
)

func serve(h *Handler, identity auth.Identity, method, target, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type auditLog struct {
	mu      sync.Mutex
	actions []string
}

func (a *auditLog) Record(_ context.Context, _, action, _, _, _, _ string, _, _ any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	return nil
}

func TestSubmitBuildsSwapDetails(t *testing.T) {
	wf := &fakeWorkflow{items: map[string]requests.Request{}}
	h := NewHandler(wf, nil, nil)

	rec := serve(h, alice, http.MethodPost, "/schedule-requests",
		`{"requestType":"shift_swap","requestedDate":"2030-03-04","swapWithEmployeeId":"bob","reason":"appointment"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.Len(t, wf.submitted, 1)
	assert.Equal(t, "alice", wf.submitted[0].EmployeeID)
	swap, ok := wf.submitted[0].Details.(requests.ShiftSwap)
	require.True(t, ok)
	assert.Equal(t, "bob", swap.SwapWithEmployeeID)
	assert.Contains(t, rec.Body.String(), `"swapWithEmployeeId":"bob"`)
}

func TestSubmitScheduleChangeNeedsRequestedTimes(t *testing.T) {
	h := NewHandler(&fakeWorkflow{items: map[string]requests.Request{}}, nil, nil)

	rec := serve(h, alice, http.MethodPost, "/schedule-requests",
		`{"requestType":"schedule_change","requestedDate":"2030-03-04","reason":"school run"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "requested_times_required")
}

func TestSubmitRejectsBlankReason(t *testing.T) {
	h := NewHandler(&fakeWorkflow{items: map[string]requests.Request{}}, nil, nil)

	rec := serve(h, alice, http.MethodPost, "/schedule-requests",
		`{"requestType":"time_off_coverage","requestedDate":"2030-03-04","reason":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "reason_required")
}

func TestApproveTwiceConflicts(t *testing.T) {
	wf := &fakeWorkflow{items: map[string]requests.Request{
		"r1": {ID: "r1", EmployeeID: "alice", Details: requests.TimeOffCoverage{}, Status: requests.StatusPending},
	}}
	audit := &auditLog{}
	h := NewHandler(wf, audit, nil)

	rec := serve(h, admin, http.MethodPost, "/schedule-requests/r1/approve", `{"notes":"ok"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = serve(h, admin, http.MethodPost, "/schedule-requests/r1/deny", `{}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already_reviewed")

	assert.Equal(t, requests.StatusApproved, wf.items["r1"].Status)
	assert.Equal(t, []string{"schedule_request.approve"}, audit.actions)
}

func TestEmployeesCannotReview(t *testing.T) {
	wf := &fakeWorkflow{items: map[string]requests.Request{
		"r1": {ID: "r1", EmployeeID: "alice", Details: requests.TimeOffCoverage{}, Status: requests.StatusPending},
	}}
	rec := serve(NewHandler(wf, nil, nil), alice, http.MethodPost, "/schedule-requests/r1/approve", `{}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.True(t, wf.items["r1"].Pending())
}

func TestGetVisibleToRequesterAndSwapPartner(t *testing.T) {
	wf := &fakeWorkflow{items: map[string]requests.Request{
		"r1": {ID: "r1", EmployeeID: "alice", Details: requests.ShiftSwap{SwapWithEmployeeID: "bob"}, Status: requests.StatusPending},
	}}
	h := NewHandler(wf, nil, nil)

	assert.Equal(t, http.StatusOK, serve(h, alice, http.MethodGet, "/schedule-requests/r1", "").Code)
	assert.Equal(t, http.StatusOK, serve(h, bob, http.MethodGet, "/schedule-requests/r1", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(h, carol, http.MethodGet, "/schedule-requests/r1", "").Code)
	assert.Equal(t, http.StatusOK, serve(h, admin, http.MethodGet, "/schedule-requests/r1", "").Code)
}
