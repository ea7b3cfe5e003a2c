package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/alexanderscleaning/quotes-api/internal/ratelimit"
	apperrors "github.com/alexanderscleaning/quotes-api/pkg/errors"
	"github.com/alexanderscleaning/quotes-api/pkg/metrics"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// FixedWindowMiddleware guards a route with the fixed-window limiter and
// exposes the standard X-RateLimit-* header contract. The limit headers are
// set on every response, not just rejections, so clients can pace themselves.
func FixedWindowMiddleware(limiter *ratelimit.FixedWindowLimiter, name, businessPhone string) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		result := limiter.Check(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.UnixMilli(), 10))

		if !result.Allowed {
			retryAfter := result.RetryAfter(now)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			metrics.RateLimitRejections.WithLabelValues(name).Inc()
			attachGuardError(c, apperrors.ErrRateLimited)
			body := guardBody("Too many requests. Please try again later.", businessPhone)
			body["retryAfter"] = retryAfter
			c.AbortWithStatusJSON(http.StatusTooManyRequests, body)
			return
		}

		c.Next()
	}
}

// RateLimiter implements a simple in-memory token bucket limiter per IP address
// SECURITY: Protects against abuse and DoS attacks
type RateLimiter struct {
	visitors map[string]*rate.Limiter
	mu       sync.RWMutex
	r        rate.Limit // requests per second
	b        int        // burst size
	phone    string     // included in rejection bodies when configured
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a new rate limiter
// r: requests per second (e.g., 10 means 10 requests per second)
// b: burst size (e.g., 20 means allow bursts of up to 20 requests)
func NewRateLimiter(r rate.Limit, b int, businessPhone string) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
		phone:    businessPhone,
		stop:     make(chan struct{}),
	}

	// Clean up old entries every minute
	go rl.cleanupVisitors()

	return rl
}

// getVisitor returns the rate limiter for a given IP address
func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.visitors[ip]
	if !exists {
		limiter = rate.NewLimiter(rl.r, rl.b)
		rl.visitors[ip] = limiter
	}

	return limiter
}

// cleanupVisitors removes inactive visitors from memory
func (rl *RateLimiter) cleanupVisitors() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for ip, limiter := range rl.visitors {
				// Remove visitors who haven't made requests recently
				if limiter.Tokens() >= float64(rl.b) {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stop)
	})
}

// Middleware returns a Gin middleware function for rate limiting
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := rl.getVisitor(ip)

		if !limiter.Allow() {
			metrics.RateLimitRejections.WithLabelValues("global").Inc()
			c.JSON(http.StatusTooManyRequests, guardBody("Rate limit exceeded. Please try again later.", rl.phone))
			c.Abort()
			return
		}

		c.Next()
	}
}
