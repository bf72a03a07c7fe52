package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryRateLimiter is the single-process fallback used when redis is disabled.
type MemoryRateLimiter struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	now  func() time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		hits: make(map[string][]time.Time),
		now:  time.Now,
	}
}

var _ RateLimiter = (*MemoryRateLimiter)(nil)

func (l *MemoryRateLimiter) Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	hits := l.prune(key, now.Add(-24*time.Hour))

	allowed := true
	for _, w := range config.windows() {
		if w.limit <= 0 {
			continue
		}
		if countSince(hits, now.Add(-w.duration)) >= w.limit {
			allowed = false
		}
	}

	// Denied requests still count, matching the redis limiter.
	l.hits[key] = append(hits, now)
	return allowed, nil
}

func (l *MemoryRateLimiter) GetRemaining(ctx context.Context, key string, window time.Duration) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return int64(countSince(l.hits[key], l.now().Add(-window))), nil
}

func (l *MemoryRateLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.hits, key)
	return nil
}

// prune drops hits older than cutoff; hits are kept in arrival order.
func (l *MemoryRateLimiter) prune(key string, cutoff time.Time) []time.Time {
	hits := l.hits[key]
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	hits = hits[i:]
	if len(hits) == 0 {
		delete(l.hits, key)
	}
	return hits
}

func countSince(hits []time.Time, cutoff time.Time) int {
	n := 0
	for _, h := range hits {
		if h.After(cutoff) {
			n++
		}
	}
	return n
}
