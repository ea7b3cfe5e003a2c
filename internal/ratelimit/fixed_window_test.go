package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(windowDur time.Duration, maxRequests int) (*FixedWindowLimiter, *time.Time) {
	l := NewFixedWindowLimiter(windowDur, maxRequests, time.Minute)
	// Freeze the clock so window expiry is controlled by the test
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }
	return l, &current
}

func TestFixedWindowLimiter_AllowsUpToCap(t *testing.T) {
	l, _ := newTestLimiter(time.Minute, 5)

	for i := 0; i < 5; i++ {
		res := l.Check("1.2.3.4")
		assert.True(t, res.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 5, res.Limit)
		assert.Equal(t, 4-i, res.Remaining)
	}

	// 6th request within the window is rejected
	res := l.Check("1.2.3.4")
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
}

func TestFixedWindowLimiter_ResetsAfterWindow(t *testing.T) {
	l, clock := newTestLimiter(time.Minute, 5)

	for i := 0; i < 6; i++ {
		l.Check("1.2.3.4")
	}
	assert.False(t, l.Check("1.2.3.4").Allowed)

	// Advance past the window boundary: the 6th+ request is accepted again
	*clock = clock.Add(time.Minute + time.Second)
	res := l.Check("1.2.3.4")
	assert.True(t, res.Allowed)
	assert.Equal(t, 4, res.Remaining)
}

func TestFixedWindowLimiter_CountPinnedAtCap(t *testing.T) {
	l, _ := newTestLimiter(time.Minute, 2)

	l.Check("ip")
	l.Check("ip")
	for i := 0; i < 10; i++ {
		assert.False(t, l.Check("ip").Allowed)
	}

	// Exceeding the cap must not extend or inflate the window
	l.mu.Lock()
	assert.Equal(t, 2, l.windows["ip"].count)
	l.mu.Unlock()
}

func TestFixedWindowLimiter_IndependentIdentifiers(t *testing.T) {
	l, _ := newTestLimiter(time.Minute, 1)

	assert.True(t, l.Check("a").Allowed)
	assert.False(t, l.Check("a").Allowed)
	assert.True(t, l.Check("b").Allowed)
}

func TestFixedWindowLimiter_ResetAtStableWithinWindow(t *testing.T) {
	l, clock := newTestLimiter(time.Minute, 5)

	first := l.Check("ip")
	*clock = clock.Add(10 * time.Second)
	second := l.Check("ip")

	assert.Equal(t, first.ResetAt, second.ResetAt)
}

func TestFixedWindowLimiter_SweepRemovesExpired(t *testing.T) {
	l, clock := newTestLimiter(time.Minute, 5)

	l.Check("a")
	l.Check("b")
	require.Equal(t, 2, l.Len())

	*clock = clock.Add(2 * time.Minute)
	l.sweep()
	assert.Equal(t, 0, l.Len())
}

func TestFixedWindowLimiter_ConcurrentChecks(t *testing.T) {
	l := NewFixedWindowLimiter(time.Minute, 100, time.Minute)

	var wg sync.WaitGroup
	allowed := make([]bool, 200)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			allowed[n] = l.Check("shared").Allowed
		}(i)
	}
	wg.Wait()

	count := 0
	for _, ok := range allowed {
		if ok {
			count++
		}
	}
	assert.Equal(t, 100, count)
}

func TestResult_RetryAfter(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	res := Result{ResetAt: now.Add(42 * time.Second)}
	assert.Equal(t, 42, res.RetryAfter(now))

	// Already past reset: still report a positive retry delay
	res = Result{ResetAt: now.Add(-time.Second)}
	assert.Equal(t, 1, res.RetryAfter(now))
}

func TestFixedWindowLimiter_StopIdempotent(t *testing.T) {
	l := NewFixedWindowLimiter(time.Minute, 5, time.Millisecond)
	l.Start()
	l.Stop()
	assert.NotPanics(t, func() { l.Stop() })
}

func ExampleFixedWindowLimiter() {
	l := NewFixedWindowLimiter(time.Minute, 5, 10*time.Minute)
	res := l.Check("203.0.113.7")
	fmt.Println(res.Allowed, res.Limit, res.Remaining)
	// Output: true 5 4
}
