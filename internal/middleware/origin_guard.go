package middleware

import (
	"net/http"
	"strings"

	apperrors "github.com/alexanderscleaning/quotes-api/pkg/errors"
	"github.com/alexanderscleaning/quotes-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OriginGuardMiddleware rejects requests where neither the Origin nor the
// Referer header starts with one of the allowed origins. Either header
// matching is enough to pass.
// Header-based checks are best-effort: they stop casual cross-site form posts,
// not a determined client that forges headers.
func OriginGuardMiddleware(allowedOrigins []string, businessPhone string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		referer := c.GetHeader("Referer")

		if !originAllowed(origin, referer, allowedOrigins) {
			logger.Warn("Rejected request from unknown origin",
				zap.String("origin", origin),
				zap.String("referer", referer),
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			attachGuardError(c, apperrors.InvalidOriginError(origin, referer))
			c.AbortWithStatusJSON(http.StatusForbidden, guardBody("Invalid request origin", businessPhone))
			return
		}

		c.Next()
	}
}

// guardBody builds the rejection payload shared by the guard middlewares.
// The office phone is included whenever it is configured so a blocked
// visitor still has a direct way to reach the business.
func guardBody(message, phone string) gin.H {
	body := gin.H{"error": message}
	if phone != "" {
		body["phone"] = phone
	}
	return body
}

func originAllowed(origin, referer string, allowed []string) bool {
	return matchesAllowed(origin, allowed) || matchesAllowed(referer, allowed)
}

func matchesAllowed(value string, allowed []string) bool {
	if value == "" {
		return false
	}
	for _, prefix := range allowed {
		if prefix != "" && strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

func attachGuardError(c *gin.Context, err error) {
	_ = c.Error(err) //nolint:errcheck
}
