package guardrails

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisFixedWindowLimiter implements a fixed window counter on top of Redis
// INCR and EXPIRE so that limits hold across multiple agent instances.
// Redis errors fail open: availability of the reading service is preferred
// over strict throttling.
type RedisFixedWindowLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zerolog.Logger
}

func NewRedisFixedWindowLimiter(client *redis.Client, limit int, window time.Duration, logger *zerolog.Logger) *RedisFixedWindowLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &RedisFixedWindowLimiter{
		client: client,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

func (l *RedisFixedWindowLimiter) Allow(ctx context.Context, callerID string) GuardrailResult {
	key := "ratelimit:" + callerID

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn().Err(err).Str("caller_id", callerID).Msg("rate limit check failed, allowing request")
		return Safe()
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn().Err(err).Str("key", key).Msg("failed to set rate limit window expiry")
		}
	}

	if count > int64(l.limit) {
		return Unsafe("rate limit exceeded")
	}
	return SafeWithMetadata(map[string]any{"caller_id": callerID})
}
