// Package cache provides the Redis client backing the rate-limit store.
package cache

import (
	"context"
	"log/slog"
	"time"

	"ripple/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to the rate-limit store. A nil client is returned when
// Redis is unreachable; the rate-limit gate treats that as a store error on
// every request rather than crashing the whole service at boot.
func NewClient(addr, password string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis connection warning, rate limiting will reject store lookups",
			slog.String("error", err.Error()))
		_ = client.Close()
		return nil
	}

	middleware.Logger.Info("Redis connected successfully")
	return client
}
