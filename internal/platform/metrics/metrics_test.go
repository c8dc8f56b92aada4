package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCountsRequestsAndEvents(t *testing.T) {
	c := New()
	c.Record(http.MethodPost, "/api/v1/time/clock-in", http.StatusCreated, 15*time.Millisecond)
	c.Record(http.MethodPost, "/api/v1/time/clock-in", http.StatusConflict, 5*time.Millisecond)
	c.Event("clock_in")
	c.Event("clock_in")

	assert.Equal(t, float64(1), testutil.ToFloat64(c.requests.WithLabelValues(http.MethodPost, "/api/v1/time/clock-in", "409")))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.events.WithLabelValues("clock_in")))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	c.Record(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	c.Event("anything")
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := New()
	c.Event("pay_stub_drafted")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `timeclock_domain_events_total{event="pay_stub_drafted"} 1`)
}
