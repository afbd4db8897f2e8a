// Package ratelimit implements sliding-window rate limiting with a
// pluggable store and an injectable clock for tests.
package ratelimit

import (
	"context"
	"time"
)

// Clock provides the current time. Tests substitute a controlled clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is a Clock backed by the system time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Store holds request timestamps per key. Implementations must be safe
// for concurrent use.
type Store interface {
	// CheckAndAdd atomically counts the requests for key after cutoff
	// and, when the count is below limit, records timestamp. It returns
	// whether the request was admitted and the count including it.
	CheckAndAdd(ctx context.Context, key string, timestamp, cutoff time.Time, limit int) (allowed bool, count int, err error)

	// Cleanup removes timestamps older than cutoff and returns the
	// number of keys dropped entirely.
	Cleanup(ctx context.Context, cutoff time.Time) (int, error)
}

// Decision is the outcome of a rate limit check.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
	ResetAt    time.Time
}

// Limiter admits at most Limit requests per key within a sliding Window.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	clock  Clock
}

func NewLimiter(store Store, limit int, window time.Duration, clock Clock) *Limiter {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Limiter{store: store, limit: limit, window: window, clock: clock}
}

// Allow checks and records one request for the key.
func (l *Limiter) Allow(ctx context.Context, key string) (*Decision, error) {
	now := l.clock.Now()
	cutoff := now.Add(-l.window)

	allowed, count, err := l.store.CheckAndAdd(ctx, key, now, cutoff, l.limit)
	if err != nil {
		return nil, err
	}

	d := &Decision{
		Allowed: allowed,
		ResetAt: now.Add(l.window),
	}
	if allowed {
		d.Remaining = l.limit - count
	} else {
		d.RetryAfter = l.window
	}
	return d, nil
}

// Purge drops state older than one window and returns the number of
// keys removed. Intended for periodic housekeeping.
func (l *Limiter) Purge(ctx context.Context) (int, error) {
	return l.store.Cleanup(ctx, l.clock.Now().Add(-l.window))
}
