package audithandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeclock/internal/domain/audit"
	"timeclock/internal/domain/auth"
	"timeclock/internal/transport/http/middleware"
)

type fakeLog struct {
	filter  audit.Filter
	details bool
	limit   int
}

func (f *fakeLog) List(_ context.Context, filter audit.Filter, includeDetails bool, limit, _ int) ([]audit.Event, error) {
	f.filter, f.details, f.limit = filter, includeDetails, limit
	return []audit.Event{{ID: "1", Action: filter.Action}}, nil
}

func serve(log *fakeLog, identity auth.Identity, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	NewHandler(log).RegisterRoutes(r)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestListEventsPassesFilter(t *testing.T) {
	log := &fakeLog{}
	rec := serve(log, auth.Identity{UserID: "a", Role: auth.RoleAdmin}, "/audit/events?action=pay_stub.finalize&entityId=s1&includeDetails=true&limit=10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pay_stub.finalize", log.filter.Action)
	assert.Equal(t, "s1", log.filter.EntityID)
	assert.True(t, log.details)
	assert.Equal(t, 10, log.limit)
}

func TestListEventsAdminOnly(t *testing.T) {
	rec := serve(&fakeLog{}, auth.Identity{UserID: "e", EmployeeID: "e", Role: auth.RoleEmployee}, "/audit/events")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
