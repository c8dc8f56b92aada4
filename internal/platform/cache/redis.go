package cache

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"timeclock/internal/platform/config"
)

// Connect returns nil without error when REDIS_ADDR is unset; callers treat a
// nil client as "feature disabled".
func Connect(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	slog.Info("connected to redis", "addr", cfg.RedisAddr)
	return rdb, nil
}
