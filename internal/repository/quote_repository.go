package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/alexanderscleaning/quotes-api/internal/database/postgres"
	"github.com/alexanderscleaning/quotes-api/internal/models"
)

// QuoteRepository handles quote data access backed by PostgreSQL.
type QuoteRepository struct {
	client *postgres.Client
}

// NewQuoteRepository creates a new quote repository. A nil client is valid
// and marks the store unavailable (the service runs degraded without a
// configured database).
func NewQuoteRepository(client *postgres.Client) *QuoteRepository {
	return &QuoteRepository{
		client: client,
	}
}

// Create persists a new quote record.
func (r *QuoteRepository) Create(ctx context.Context, quote *models.Quote) (uuid.UUID, error) {
	return r.client.CreateQuote(ctx, quote)
}

// Available reports whether the persistence backend is configured and
// answers a ping.
func (r *QuoteRepository) Available(ctx context.Context) bool {
	if r.client == nil {
		return false
	}
	return r.client.Ping(ctx) == nil
}

// Ensure QuoteRepository implements QuoteRepositoryInterface
var _ QuoteRepositoryInterface = (*QuoteRepository)(nil)
