package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// ratePrefix namespaces limiter keys in the shared key-value store.
const ratePrefix = "ratelimit"

// Limiter decides whether one more event is allowed for the given id.
type Limiter interface {
	Allow(ctx context.Context, id string) (bool, error)
}

// SlidingWindow is a Redis-backed sliding-window counter. It keeps one
// counter per fixed window and weights the previous window by the fraction
// of it still inside the trailing interval, so a burst at a window boundary
// cannot double the effective limit.
type SlidingWindow struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

// NewSlidingWindow creates a limiter allowing `limit` events per `window` per id.
// Bucket arithmetic runs in milliseconds, so windows shorter than 1ms are
// raised to 1ms.
func NewSlidingWindow(rdb *redis.Client, limit int, window time.Duration) *SlidingWindow {
	if window < time.Millisecond {
		window = time.Millisecond
	}
	return &SlidingWindow{rdb: rdb, limit: limit, window: window}
}

// Allow consumes one slot for id. Every call costs one round trip to the
// store; there is no local caching of decisions.
func (l *SlidingWindow) Allow(ctx context.Context, id string) (bool, error) {
	if l.rdb == nil {
		return false, errors.New("rate limit store is unavailable")
	}

	now := time.Now()
	windowMs := l.window.Milliseconds()
	current := now.UnixMilli() / windowMs

	currentKey := fmt.Sprintf("%s:%s:%d", ratePrefix, id, current)
	previousKey := fmt.Sprintf("%s:%s:%d", ratePrefix, id, current-1)

	var incr *redis.IntCmd
	var prev *redis.StringCmd
	_, err := l.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, currentKey)
		p.Expire(ctx, currentKey, 2*l.window)
		prev = p.Get(ctx, previousKey)
		return nil
	})
	// A missing previous bucket surfaces as redis.Nil from the pipeline.
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}

	previousCount := int64(0)
	if v, err := prev.Int64(); err == nil {
		previousCount = v
	}

	elapsed := float64(now.UnixMilli()%windowMs) / float64(windowMs)
	weighted := float64(previousCount)*(1-elapsed) + float64(incr.Val())
	return weighted <= float64(l.limit), nil
}

// RateLimit returns the rate-limit gate. It keys on the client address taken
// from proxyHeader. When the header is absent the request is let through only
// against a local development database; otherwise it is a bad request. The
// gate runs before authentication on every procedure, public or private.
func RateLimit(limiter Limiter, dbURL, proxyHeader string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		addr := c.Get(proxyHeader)

		if addr == "" {
			local, err := IsLocal(dbURL)
			if err != nil {
				// The cause can quote the connection URL, credentials included;
				// it stays in the server log and never reaches the client.
				Logger.ErrorContext(c.UserContext(), "database URL classification failed",
					slog.String("error", err.Error()))
				return models.RespondWithError(c, fiber.StatusInternalServerError,
					models.NewInternalError(nil))
			}
			if local {
				Logger.WarnContext(c.UserContext(), "running in local mode, skipping rate limit")
				return c.Next()
			}
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewBadRequestError("IP address not found"))
		}

		allowed, err := limiter.Allow(c.UserContext(), addr)
		if err != nil {
			Logger.ErrorContext(c.UserContext(), "rate limit store error",
				slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(nil))
		}
		if !allowed {
			Logger.WarnContext(c.UserContext(), "rate limit exceeded", slog.String("addr", addr))
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				models.NewRateLimitError("Rate limit exceeded"))
		}

		return c.Next()
	}
}
