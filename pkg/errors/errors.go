package errors

import (
	"errors"
	"fmt"
)

// Application error taxonomy. The first six map to non-200 responses;
// notification and insight failures are always swallowed and logged.

var (
	// ErrInvalidOrigin indicates the request origin failed the allow-list check
	ErrInvalidOrigin = errors.New("invalid origin")

	// ErrRateLimited indicates the client exceeded the request rate limit
	ErrRateLimited = errors.New("rate limited")

	// ErrMalformedJSON indicates the request body could not be parsed
	ErrMalformedJSON = errors.New("malformed json")

	// ErrValidationFailed indicates the payload failed field validation
	ErrValidationFailed = errors.New("validation failed")

	// ErrStoreUnavailable indicates the persistence backend is not configured or reachable
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrPersistenceFailed indicates a write to the store failed
	ErrPersistenceFailed = errors.New("persistence failed")

	// ErrNotificationFailed indicates a best-effort notification send failed (non-fatal)
	ErrNotificationFailed = errors.New("notification failed")

	// ErrInsightFailed indicates the external insight backend failed (non-fatal, falls back)
	ErrInsightFailed = errors.New("insight generation failed")
)

// InvalidOriginError creates an invalid origin error with the offending headers
func InvalidOriginError(origin, referer string) error {
	return fmt.Errorf("origin=%q referer=%q: %w", origin, referer, ErrInvalidOrigin)
}

// ValidationError creates a validation error with field context
func ValidationError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrValidationFailed)
}

// PersistenceError wraps a store error without leaking it to callers
func PersistenceError(err error) error {
	return fmt.Errorf("%v: %w", err, ErrPersistenceFailed)
}

// NotificationError wraps a notifier error
func NotificationError(kind string, err error) error {
	return fmt.Errorf("%s: %v: %w", kind, err, ErrNotificationFailed)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
