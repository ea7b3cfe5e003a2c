package handlers

import (
	"github.com/gin-gonic/gin"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// errorResponder shapes every error payload a handler sends. When the office
// phone is configured it rides along in each error body so a visitor whose
// submission failed still has a direct way to reach the business.
type errorResponder struct {
	phone string
}

func (r errorResponder) errorBody(message string) gin.H {
	body := gin.H{"error": message}
	if r.phone != "" {
		body["phone"] = r.phone
	}
	return body
}

// respondError sends an error JSON response and attaches the error to the gin
// context so the observability middleware can include the reason in the
// request log.
func (r errorResponder) respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, r.errorBody(message))
}

// respondErrorWithDetails sends an error response with an additional details field.
func (r errorResponder) respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	body := r.errorBody(message)
	body["details"] = details
	c.JSON(status, body)
}
