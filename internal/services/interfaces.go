package services

import (
	"context"

	"github.com/alexanderscleaning/quotes-api/internal/models"
)

// QuoteServiceInterface defines the interface for quote submission operations
type QuoteServiceInterface interface {
	SubmitPlainQuote(ctx context.Context, req *models.QuoteRequest, meta RequestMeta) (*models.SubmitQuoteResponse, error)
	SubmitCalculatorQuote(ctx context.Context, req *models.CalculatorQuoteRequest, meta RequestMeta) (*models.SubmitQuoteResponse, error)
}

// InsightServiceInterface defines the interface for insight generation
type InsightServiceInterface interface {
	GenerateInsights(ctx context.Context, assessment models.Assessment) *models.Insight
}

// NotificationServiceInterface defines the interface for owner notifications
type NotificationServiceInterface interface {
	SendQuoteEmail(ctx context.Context, data *models.QuoteNotification) error
	NotifyNewLead(ctx context.Context, req *models.InsightRequest) error
	NotifyPackageSelected(ctx context.Context, req *models.PackageSelectionRequest) error
}

// Ensure services implement their interfaces
var _ QuoteServiceInterface = (*QuoteService)(nil)
var _ InsightServiceInterface = (*InsightService)(nil)
var _ NotificationServiceInterface = (*NotificationService)(nil)
