package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/nutrition-service/internal/auth"
	"github.com/spec-kit/nutrition-service/internal/persistence"
	apperrors "github.com/spec-kit/nutrition-service/pkg/util"
)

// RateLimiter applies a fixed-window per-user cap to expensive routes (the
// ones that fan out to the vision model). Counters live in Redis so the cap
// holds across instances. When Redis is down the limiter fails open: losing
// the cap is preferable to taking the endpoint down with it.
type RateLimiter struct {
	redis  *persistence.Redis
	logger *zap.Logger
	limit  int64
	window time.Duration
}

// NewRateLimiter builds the limiter.
func NewRateLimiter(redis *persistence.Redis, logger *zap.Logger, limit int64, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{redis: redis, logger: logger, limit: limit, window: window}
}

// Handle enforces the cap. Must run after the auth middleware.
func (rl *RateLimiter) Handle(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	window := time.Now().Unix() / int64(rl.window.Seconds())
	key := fmt.Sprintf("ratelimit:%s:%s:%d", c.Path(), user.ID, window)

	count, err := rl.redis.Client.Incr(c.Context(), key).Result()
	if err != nil {
		rl.logger.Warn("rate limiter unavailable, failing open", zap.Error(err))
		return c.Next()
	}
	if count == 1 {
		rl.redis.Client.Expire(c.Context(), key, rl.window)
	}

	if count > rl.limit {
		return apperrors.NewTooManyRequests("too many analysis requests, slow down")
	}
	return c.Next()
}
