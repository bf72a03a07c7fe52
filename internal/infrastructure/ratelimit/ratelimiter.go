// Package ratelimit counts requests per key over sliding windows.
package ratelimit

import (
	"context"
	"time"
)

// RateLimitConfig caps requests per window. A zero limit disables that window.
type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
	RequestsPerDay    int
}

func (c RateLimitConfig) windows() []window {
	return []window{
		{time.Minute, c.RequestsPerMinute},
		{time.Hour, c.RequestsPerHour},
		{24 * time.Hour, c.RequestsPerDay},
	}
}

// Enabled reports whether any window has a limit.
func (c RateLimitConfig) Enabled() bool {
	return c.RequestsPerMinute > 0 || c.RequestsPerHour > 0 || c.RequestsPerDay > 0
}

type window struct {
	duration time.Duration
	limit    int
}

type RateLimiter interface {
	// Allow records one request for key and reports whether every window is
	// still within its limit.
	Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error)
	// GetRemaining returns how many requests key made in the trailing window.
	GetRemaining(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
