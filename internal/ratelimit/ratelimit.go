// Package ratelimit provides Redis-based rate limiting for the websocket
// connect path.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrRateLimited is returned when a rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)

// Limiter provides rate limiting functionality using Redis
type Limiter struct {
	redis *redis.Client
}

// NewLimiter creates a new rate limiter. A nil client yields a limiter
// that allows everything (fail-open).
func NewLimiter(redis *redis.Client) *Limiter {
	return &Limiter{redis: redis}
}

// ConnectLimits defines the rate limits for websocket connection attempts
type ConnectLimits struct {
	// Per-IP: how many connection attempts a single address can make
	// within the window. Reconnect storms past this are cut off before
	// the upgrade.
	IPLimit  int
	IPWindow time.Duration
}

// DefaultConnectLimits returns the recommended connect limits
func DefaultConnectLimits() ConnectLimits {
	return ConnectLimits{
		IPLimit:  60,
		IPWindow: time.Minute,
	}
}

// CheckConnect checks the per-IP connect limit for a websocket upgrade.
// Returns nil if allowed, ErrRateLimited if the limit is exceeded.
func (l *Limiter) CheckConnect(ctx context.Context, ip string) error {
	if l == nil || l.redis == nil || ip == "" {
		// If Redis is unavailable, allow the request (fail-open for availability)
		return nil
	}

	limits := DefaultConnectLimits()

	key := fmt.Sprintf("ratelimit:connect:ip:%s", ip)
	if err := l.checkLimit(ctx, key, limits.IPLimit, limits.IPWindow); err != nil {
		log.Printf("[RateLimit] IP %s exceeded connect limit", ip)
		return ErrRateLimited
	}

	return nil
}

// checkLimit performs the actual rate limit check using Redis INCR
func (l *Limiter) checkLimit(ctx context.Context, key string, limit int, window time.Duration) error {
	// Use INCR to atomically increment the counter
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		// Fail-open on Redis errors to maintain availability
		return nil
	}

	// If this is the first request, set the expiry
	if count == 1 {
		l.redis.Expire(ctx, key, window)
	}

	// Check if limit exceeded
	if int(count) > limit {
		return ErrRateLimited
	}

	return nil
}
