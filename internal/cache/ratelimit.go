package cache

import (
	"context"
	"fmt"
	"time"
)

// rateLimitPrefix is the Redis key prefix for rate limit counters.
const rateLimitPrefix = "ratelimit:"

// Allow applies a fixed-window rate limit for the given key.
// Returns whether the request is allowed and how many requests remain
// in the current window. Fails open: Redis errors are returned so the
// caller can decide, but the counter state is never a hard dependency.
func (c *Cache) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	redisKey := rateLimitPrefix + key

	count, err := c.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("increment rate limit counter: %w", err)
	}

	// First hit in the window sets the expiry. If the process dies
	// between INCR and EXPIRE the key lives forever, so refresh the
	// TTL whenever none is set.
	if count == 1 {
		if err := c.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return false, 0, fmt.Errorf("set rate limit window: %w", err)
		}
	} else {
		ttl, err := c.client.TTL(ctx, redisKey).Result()
		if err == nil && ttl < 0 {
			_ = c.client.Expire(ctx, redisKey, window).Err()
		}
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return int(count) <= limit, remaining, nil
}
