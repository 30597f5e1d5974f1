package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	rateLimitPrefix = "ratelimit:"
)

// RateLimiter is a fixed one-minute window counter kept in Redis
type RateLimiter struct {
	client            *Client
	requestsPerMinute int
	burst             int
	now               func() time.Time
}

// Decision is the outcome of one Allow call
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *Client, requestsPerMinute, burst int) *RateLimiter {
	return &RateLimiter{
		client:            client,
		requestsPerMinute: requestsPerMinute,
		burst:             burst,
		now:               time.Now,
	}
}

// Allow counts one request for key in the current window
func (r *RateLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := r.now()
	windowStart := now.Truncate(time.Minute)
	fullKey := fmt.Sprintf("%s%s:%d", rateLimitPrefix, key, windowStart.Unix())

	pipe := r.client.rdb.TxPipeline()
	incrCmd := pipe.Incr(ctx, fullKey)
	pipe.Expire(ctx, fullKey, time.Minute)

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return Decision{}, fmt.Errorf("failed to execute rate limit check: %w", err)
	}

	count := incrCmd.Val()
	limit := int64(r.requestsPerMinute + r.burst)
	remaining := int(limit - count)
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   count <= limit,
		Remaining: remaining,
		ResetAt:   windowStart.Add(time.Minute),
	}, nil
}
