package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexanderscleaning/quotes-api/internal/models"
	"github.com/alexanderscleaning/quotes-api/pkg/logger"
)

// CreateQuote inserts a quote record and returns its generated ID.
// Quotes are append-only: there is no update or delete path in this service.
func (c *Client) CreateQuote(ctx context.Context, quote *models.Quote) (uuid.UUID, error) {
	start := time.Now()
	operation := "createQuote"

	query := `
		INSERT INTO quotes (name, contact, service, message, ip_address, user_agent, calculator_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id uuid.UUID
	err := c.pool.QueryRow(ctx, query,
		quote.Name,
		quote.Contact,
		quote.Service,
		quote.Message,
		nilIfEmpty(quote.IPAddress),
		quote.UserAgent,
		quote.CalculatorData,
	).Scan(&id)
	if err != nil {
		recordMetrics(operation, "error", measure(start))
		logger.Error("Failed to insert quote",
			zap.String("service", quote.Service),
			zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to insert quote: %w", err)
	}

	recordMetrics(operation, "success", measure(start))
	return id, nil
}

// CountQuotes returns the total number of persisted quotes. Used by the
// healthcheck as a cheap read probe.
func (c *Client) CountQuotes(ctx context.Context) (int, error) {
	start := time.Now()
	operation := "countQuotes"

	var count int
	err := c.pool.QueryRow(ctx, "SELECT COUNT(*) FROM quotes").Scan(&count)
	if err != nil {
		recordMetrics(operation, "error", measure(start))
		return 0, fmt.Errorf("failed to count quotes: %w", err)
	}

	recordMetrics(operation, "success", measure(start))
	return count, nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
