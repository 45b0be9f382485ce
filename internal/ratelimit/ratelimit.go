// Package ratelimit implements a per-key fixed-window limiter for inbound
// API traffic. Fixed windows permit a burst straddling a window boundary;
// that trade-off is accepted in exchange for O(1) state per key.
package ratelimit

import (
	"sync"
	"time"
)

type Result struct {
	Allowed    bool
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

type bucket struct {
	count   int
	resetAt time.Time
}

type Limiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	buckets map[string]*bucket
	now     func() time.Time
}

func New(window time.Duration, max int) *Limiter {
	return &Limiter{
		window:  window,
		max:     max,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow counts a call against key's current window. A bucket whose window has
// elapsed is replaced outright rather than reset in place.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || !b.resetAt.After(now) {
		resetAt := now.Add(l.window)
		l.buckets[key] = &bucket{count: 1, resetAt: resetAt}
		return Result{Allowed: true, Remaining: l.max - 1, ResetAt: resetAt}
	}

	b.count++
	if b.count > l.max {
		return Result{
			Allowed:    false,
			Remaining:  0,
			ResetAt:    b.resetAt,
			RetryAfter: b.resetAt.Sub(now),
		}
	}
	return Result{Allowed: true, Remaining: l.max - b.count, ResetAt: b.resetAt}
}
