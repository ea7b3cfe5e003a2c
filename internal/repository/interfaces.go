package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/alexanderscleaning/quotes-api/internal/models"
)

// QuoteRepositoryInterface defines quote persistence operations.
// The store is append-only from this service's perspective.
type QuoteRepositoryInterface interface {
	// Create persists a quote and returns its ID.
	Create(ctx context.Context, quote *models.Quote) (uuid.UUID, error)
	// Available reports whether the backing store is configured and reachable.
	Available(ctx context.Context) bool
}
