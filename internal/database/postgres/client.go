package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alexanderscleaning/quotes-api/pkg/metrics"
)

// Client wraps a pgx connection pool with observability
type Client struct {
	pool *pgxpool.Pool
}

// NewClient wraps an existing pool.
func NewClient(pool *pgxpool.Pool) *Client {
	return &Client{pool: pool}
}

// Ping verifies database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

// recordMetrics records operation metrics for database calls
func recordMetrics(operation, status string, duration float64) {
	metrics.DBRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.DBRequestTotal.WithLabelValues(operation, status).Inc()
}

// measure is a small helper so call sites read cleanly.
func measure(start time.Time) float64 {
	return metrics.MeasureDuration(start)
}
