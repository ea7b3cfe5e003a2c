package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderscleaning/quotes-api/config"
	"github.com/alexanderscleaning/quotes-api/internal/models"
	"github.com/alexanderscleaning/quotes-api/internal/repository"
	apperrors "github.com/alexanderscleaning/quotes-api/pkg/errors"
	"github.com/alexanderscleaning/quotes-api/pkg/logger"
	"github.com/alexanderscleaning/quotes-api/pkg/metrics"
	"github.com/alexanderscleaning/quotes-api/pkg/trigger"
	"go.uber.org/zap"
)

const maxUserAgentLen = 500

// RequestMeta carries per-request attribution captured by the handler.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// QuoteService persists quote submissions and triggers the owner notification.
// Persistence is the only hard dependency: a failed email never fails the
// submission, but a missing store rejects it.
type QuoteService struct {
	quoteRepo repository.QuoteRepositoryInterface
	notifier  NotificationServiceInterface
	config    *config.Config
}

// NewQuoteService creates a new quote service instance
func NewQuoteService(
	quoteRepo repository.QuoteRepositoryInterface,
	notifier NotificationServiceInterface,
	cfg *config.Config,
) *QuoteService {
	return &QuoteService{
		quoteRepo: quoteRepo,
		notifier:  notifier,
		config:    cfg,
	}
}

// SubmitPlainQuote stores a contact-form submission.
func (s *QuoteService) SubmitPlainQuote(ctx context.Context, req *models.QuoteRequest, meta RequestMeta) (*models.SubmitQuoteResponse, error) {
	quote := &models.Quote{
		Name:      req.Name,
		Contact:   req.Contact,
		Service:   req.Service,
		Message:   optional(req.Message),
		IPAddress: meta.IPAddress,
		UserAgent: optional(truncate(meta.UserAgent, maxUserAgentLen)),
	}

	if err := s.persist(ctx, quote, "form"); err != nil {
		return nil, err
	}

	s.notifyAsync(&models.QuoteNotification{
		Name:      req.Name,
		Contact:   req.Contact,
		Service:   req.Service,
		Message:   req.Message,
		Timestamp: time.Now(),
	})

	metrics.QuoteSubmissions.WithLabelValues("form", "success").Inc()
	return &models.SubmitQuoteResponse{
		Success: true,
		Message: "Quote request received successfully. We'll contact you soon!",
	}, nil
}

// SubmitCalculatorQuote stores a calculator submission. The wizard answers,
// package choice, and any insight health score travel in a serialized blob
// alongside the lead.
func (s *QuoteService) SubmitCalculatorQuote(ctx context.Context, req *models.CalculatorQuoteRequest, meta RequestMeta) (*models.SubmitQuoteResponse, error) {
	var price float64
	if req.CalculatedPrice != nil {
		price = *req.CalculatedPrice
	}

	data := models.CalculatorData{
		ZipCode:         req.ZipCode,
		HomeSize:        req.HomeSize,
		Stories:         req.Stories,
		LastCleaned:     req.LastCleaned,
		TrackCondition:  req.TrackCondition,
		SelectedPackage: req.SelectedPackage,
		CalculatedPrice: price,
	}
	// A zero score means the insight payload never carried one; store null
	// rather than a literal 0.
	if req.AIInsights != nil && req.AIInsights.HealthScore != 0 {
		score := req.AIInsights.HealthScore
		data.HealthScore = &score
	}

	blob, err := json.Marshal(data)
	if err != nil {
		return nil, apperrors.PersistenceError(fmt.Errorf("failed to encode calculator data: %w", err))
	}
	blobStr := string(blob)

	quote := &models.Quote{
		Name:           req.Name,
		Contact:        req.Phone,
		Service:        models.CalculatorServiceLabel,
		Message:        optional(req.Message),
		IPAddress:      meta.IPAddress,
		UserAgent:      optional(truncate(meta.UserAgent, maxUserAgentLen)),
		CalculatorData: &blobStr,
	}

	if err := s.persist(ctx, quote, "calculator"); err != nil {
		return nil, err
	}

	healthScore := "N/A"
	if req.AIInsights != nil && req.AIInsights.HealthScore != 0 {
		healthScore = fmt.Sprintf("%d", req.AIInsights.HealthScore)
	}

	s.notifyAsync(&models.QuoteNotification{
		Name:    req.Name,
		Contact: req.Phone,
		Service: models.CalculatorServiceLabel,
		Message: fmt.Sprintf("Selected Package: %s\nEstimated Price: $%.0f\nProperty Health Score: %s",
			req.SelectedPackage, price, healthScore),
		Timestamp: time.Now(),
	})

	metrics.QuoteSubmissions.WithLabelValues("calculator", "success").Inc()
	return &models.SubmitQuoteResponse{
		Success: true,
		Message: "Quote request received successfully. We'll contact you soon!",
	}, nil
}

func (s *QuoteService) persist(ctx context.Context, quote *models.Quote, source string) error {
	if !s.quoteRepo.Available(ctx) {
		metrics.QuoteSubmissions.WithLabelValues(source, "unavailable").Inc()
		logger.Error("Quote store not available, rejecting submission",
			zap.String("source", source))
		return apperrors.ErrStoreUnavailable
	}

	id, err := s.quoteRepo.Create(ctx, quote)
	if err != nil {
		metrics.QuoteSubmissions.WithLabelValues(source, "error").Inc()
		logger.Error("Failed to save quote", zap.Error(err), zap.String("source", source))
		return apperrors.PersistenceError(err)
	}

	if s.config.IsDevelopment() {
		logger.Info("Quote saved",
			zap.String("id", id.String()),
			zap.String("source", source),
			zap.String("service", quote.Service))
	}
	return nil
}

func (s *QuoteService) notifyAsync(data *models.QuoteNotification) {
	trigger.Async("quote_email", func(ctx context.Context) error {
		return s.notifier.SendQuoteEmail(ctx, data)
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
