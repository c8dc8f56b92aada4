package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"timeclock/internal/domain/auth"
)

func TestRequestHashDeterministic(t *testing.T) {
	assert.Equal(t, RequestHash([]byte("payload")), RequestHash([]byte("payload")))
	assert.NotEqual(t, RequestHash([]byte("payload")), RequestHash([]byte("other")))
}

func idempotentRequest(body, key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/pay-stubs/1/finalize", strings.NewReader(body))
	req.Header.Set("Idempotency-Key", key)
	return req.WithContext(WithIdentity(req.Context(), auth.Identity{UserID: "admin-1", Role: auth.RoleAdmin}))
}

func TestIdempotentReplaysFirstResponse(t *testing.T) {
	calls := 0
	handler := Idempotent(NewMemoryIdempotencyStore(), "payroll.finalize")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, idempotentRequest(`{}`, "k1"))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, idempotentRequest(`{}`, "k1"))

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replay"))
	assert.JSONEq(t, `{"success":true}`, second.Body.String())
}

func TestIdempotentRejectsChangedPayload(t *testing.T) {
	handler := Idempotent(NewMemoryIdempotencyStore(), "payroll.finalize")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest(`{"a":1}`, "k2"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, idempotentRequest(`{"a":2}`, "k2"))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestIdempotentDoesNotCacheFailures(t *testing.T) {
	calls := 0
	handler := Idempotent(NewMemoryIdempotencyStore(), "x")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusConflict)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest(`{}`, "k3"))
	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest(`{}`, "k3"))

	assert.Equal(t, 2, calls)
}
