package trigger

import (
	"context"
	"time"

	"github.com/alexanderscleaning/quotes-api/pkg/logger"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a detached unit of work so a hung notifier
// cannot leak goroutines.
const DefaultTimeout = 15 * time.Second

// Async dispatches fn in a detached goroutine with its own deadline.
// The caller never waits for or observes the result; failures are logged
// only. This is the fire-and-forget primitive used for notification side
// effects, which must never affect the response already being prepared.
func Async(operation string, fn func(ctx context.Context) error) {
	AsyncWithTimeout(operation, DefaultTimeout, fn)
}

// AsyncWithTimeout is Async with an explicit deadline.
func AsyncWithTimeout(operation string, timeout time.Duration, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			logger.Error("Background task failed",
				zap.String("operation", operation),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err))
			return
		}

		logger.Info("Background task completed",
			zap.String("operation", operation),
			zap.Duration("elapsed", time.Since(start)))
	}()
}
