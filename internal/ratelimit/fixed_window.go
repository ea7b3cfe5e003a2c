// Package ratelimit implements the fixed-window request limiter used on the
// quote endpoint. State is process-local: a multi-instance deployment would
// need a shared TTL store behind the same interface.
package ratelimit

import (
	"sync"
	"time"

	"github.com/alexanderscleaning/quotes-api/pkg/metrics"
)

// Result is the outcome of a limit check, carrying the accounting values
// surfaced to clients via X-RateLimit-* headers.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns the whole seconds until the window resets, at least 1
// so Retry-After is always positive.
func (r Result) RetryAfter(now time.Time) int {
	secs := int(r.ResetAt.Sub(now).Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

type window struct {
	count   int
	resetAt time.Time
}

// FixedWindowLimiter counts requests per identifier within a non-sliding
// window that resets atomically at the window boundary.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	windows map[string]*window

	window      time.Duration
	maxRequests int

	sweepInterval time.Duration
	stop          chan struct{}
	stopOnce      sync.Once

	// now is swappable for tests
	now func() time.Time
}

// NewFixedWindowLimiter creates a limiter. Call Start to run the janitor and
// Stop on shutdown.
func NewFixedWindowLimiter(windowDur time.Duration, maxRequests int, sweepInterval time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		windows:       make(map[string]*window),
		window:        windowDur,
		maxRequests:   maxRequests,
		sweepInterval: sweepInterval,
		stop:          make(chan struct{}),
		now:           time.Now,
	}
}

// Check records a request from identifier and reports whether it is allowed.
// When the limit is exceeded the count stays pinned at the cap.
func (l *FixedWindowLimiter) Check(identifier string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, exists := l.windows[identifier]

	// First request, or previous window expired: open a fresh window
	if !exists || now.After(w.resetAt) {
		w = &window{count: 1, resetAt: now.Add(l.window)}
		l.windows[identifier] = w
		return Result{
			Allowed:   true,
			Limit:     l.maxRequests,
			Remaining: l.maxRequests - 1,
			ResetAt:   w.resetAt,
		}
	}

	if w.count >= l.maxRequests {
		return Result{
			Allowed:   false,
			Limit:     l.maxRequests,
			Remaining: 0,
			ResetAt:   w.resetAt,
		}
	}

	w.count++
	return Result{
		Allowed:   true,
		Limit:     l.maxRequests,
		Remaining: l.maxRequests - w.count,
		ResetAt:   w.resetAt,
	}
}

// Start launches the background janitor that sweeps expired windows to bound
// memory.
func (l *FixedWindowLimiter) Start() {
	go func() {
		ticker := time.NewTicker(l.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				l.sweep()
			case <-l.stop:
				return
			}
		}
	}()
}

// Stop terminates the janitor goroutine. Safe to call more than once.
func (l *FixedWindowLimiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
}

func (l *FixedWindowLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for id, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, id)
		}
	}
	metrics.RateLimitEntries.Set(float64(len(l.windows)))
}

// Len reports the number of tracked identifiers.
func (l *FixedWindowLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
