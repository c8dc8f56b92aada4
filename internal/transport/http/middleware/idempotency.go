package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"timeclock/internal/transport/http/api"
)

var ErrIdempotencyConflict = errors.New("idempotency key conflicts with existing request")

const idempotencyHeader = "Idempotency-Key"

// StoredResponse is a replayable response captured for an idempotency key.
type StoredResponse struct {
	RequestHash string          `json:"requestHash"`
	Status      int             `json:"status"`
	Body        json.RawMessage `json:"body"`
}

type IdempotencyStore interface {
	Check(ctx context.Context, key, requestHash string) (*StoredResponse, error)
	Save(ctx context.Context, key string, resp StoredResponse) error
}

func RequestHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

type RedisIdempotencyStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisIdempotencyStore(client *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client, prefix: "timeclock:idempotency:", ttl: ttl}
}

func (s *RedisIdempotencyStore) Check(ctx context.Context, key, requestHash string) (*StoredResponse, error) {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stored StoredResponse
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}
	if stored.RequestHash != requestHash {
		return nil, ErrIdempotencyConflict
	}
	return &stored, nil
}

func (s *RedisIdempotencyStore) Save(ctx context.Context, key string, resp StoredResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	created, err := s.client.SetNX(ctx, s.prefix+key, payload, s.ttl).Result()
	if err != nil {
		return err
	}
	if !created {
		existing, err := s.Check(ctx, key, resp.RequestHash)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrIdempotencyConflict
		}
	}
	return nil
}

// MemoryIdempotencyStore keeps responses in process. Used when no Redis
// address is configured.
type MemoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]StoredResponse
}

func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{entries: make(map[string]StoredResponse)}
}

func (s *MemoryIdempotencyStore) Check(_ context.Context, key, requestHash string) (*StoredResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if stored.RequestHash != requestHash {
		return nil, ErrIdempotencyConflict
	}
	return &stored, nil
}

func (s *MemoryIdempotencyStore) Save(_ context.Context, key string, resp StoredResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[key]; ok && existing.RequestHash != resp.RequestHash {
		return ErrIdempotencyConflict
	}
	s.entries[key] = resp
	return nil
}

type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (c *captureWriter) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}

func (c *captureWriter) Write(p []byte) (int, error) {
	c.body.Write(p)
	return c.ResponseWriter.Write(p)
}

// Idempotent replays the first successful response for a repeated
// Idempotency-Key. Keys are scoped per caller and per endpoint. Requests
// without the header are served normally.
func Idempotent(store IdempotencyStore, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(idempotencyHeader))
			if store == nil || key == "" {
				next.ServeHTTP(w, r)
				return
			}
			requestID := GetRequestID(r.Context())

			body, err := io.ReadAll(r.Body)
			if err != nil {
				api.Fail(w, http.StatusBadRequest, "invalid_payload", "unable to read request body", requestID)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			caller := "anonymous"
			if identity, ok := GetIdentity(r.Context()); ok {
				caller = identity.UserID
			}
			scopedKey := caller + ":" + scope + ":" + key
			hash := RequestHash(append([]byte(r.URL.Path+"\n"), body...))

			stored, err := store.Check(r.Context(), scopedKey, hash)
			if errors.Is(err, ErrIdempotencyConflict) {
				api.Fail(w, http.StatusConflict, "idempotency_conflict", "idempotency key reused with a different request", requestID)
				return
			}
			if err != nil {
				slog.Warn("idempotency check failed", "scope", scope, "err", err)
			}
			if stored != nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Idempotent-Replay", "true")
				w.WriteHeader(stored.Status)
				_, _ = w.Write(stored.Body)
				return
			}

			capture := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(capture, r)
			if capture.status < 200 || capture.status >= 300 {
				return
			}
			resp := StoredResponse{RequestHash: hash, Status: capture.status, Body: bytes.TrimSpace(capture.body.Bytes())}
			if err := store.Save(r.Context(), scopedKey, resp); err != nil {
				slog.Warn("idempotency save failed", "scope", scope, "err", err)
			}
		})
	}
}
