package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"timeclock/internal/transport/http/api"
)

// NewLimiter builds a limiter from a formatted rate such as "120-M". Counters
// live in Redis when a client is given so limits hold across replicas.
func NewLimiter(formatted string, client *redis.Client) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return limiter.New(memory.NewStore(), rate), nil
	}
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: "timeclock:ratelimit",
	})
	if err != nil {
		return nil, err
	}
	return limiter.New(store, rate), nil
}

// RateLimit keys on the authenticated user when present, else the client IP.
func RateLimit(instance *limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if instance == nil {
				next.ServeHTTP(w, r)
				return
			}
			key := rateLimitKey(r)
			result, err := instance.Get(r.Context(), key)
			if err != nil {
				// Fail open on store errors.
				slog.Error("rate limit check failed", "key", key, "err", err)
				next.ServeHTTP(w, r)
				return
			}

			headers := w.Header()
			headers.Set("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
			headers.Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
			headers.Set("X-RateLimit-Reset", strconv.FormatInt(result.Reset, 10))
			if result.Reached {
				slog.Warn("rate limit exceeded", "key", key, "limit", result.Limit)
				api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitKey(r *http.Request) string {
	if identity, ok := GetIdentity(r.Context()); ok && identity.UserID != "" {
		return "user:" + identity.UserID
	}
	host := strings.TrimSpace(r.RemoteAddr)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return "ip:" + host
}
