package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"

	"github.com/alexanderscleaning/quotes-api/config"
	"github.com/alexanderscleaning/quotes-api/internal/models"
	"github.com/alexanderscleaning/quotes-api/internal/pricing"
	apperrors "github.com/alexanderscleaning/quotes-api/pkg/errors"
	"github.com/alexanderscleaning/quotes-api/pkg/httpclient"
	"github.com/alexanderscleaning/quotes-api/pkg/logger"
	"github.com/alexanderscleaning/quotes-api/pkg/metrics"
	"go.uber.org/zap"
)

// serviceNames maps the form's service keys to human-readable labels used in
// notification emails.
var serviceNames = map[string]string{
	models.ServiceResidential:     "Residential Window Cleaning",
	models.ServiceCommercial:      "Commercial Window Cleaning",
	models.ServiceGutterCleaning:  "Gutter Cleaning",
	models.ServiceScreenRepair:    "Screen Repair",
	models.ServicePressureWashing: "Pressure Washing",
	models.ServiceOther:           "Other Service",
}

var lastCleanedLabels = map[string]string{
	"recent":  "Under 6 months",
	"1-2yr":   "6-12 months",
	"over2yr": "1-3 years",
	"never":   "3+ years",
}

var trackConditionLabels = map[string]string{
	"clean":     "Clean",
	"dusty":     "Light dust",
	"dirty":     "Moderate buildup",
	"neglected": "Heavy buildup",
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

// NotificationService sends best-effort notifications to the business owner:
// quote emails through the transactional email API and lead alerts through the
// form-relay webhook. Missing credentials degrade every send to a logged no-op.
type NotificationService struct {
	config     *config.Config
	httpClient httpclient.Client
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(cfg *config.Config, httpClient httpclient.Client) *NotificationService {
	if cfg.Notifier.EmailAPIKey == "" || cfg.Notifier.NotificationEmail == "" {
		logger.Warn("Email notifier not configured, quote emails disabled")
	}
	if cfg.Notifier.WebhookAccessKey == "" {
		logger.Warn("Lead webhook not configured, lead alerts disabled")
	}

	return &NotificationService{
		config:     cfg,
		httpClient: httpClient,
	}
}

type emailPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

type webhookPayload struct {
	AccessKey string `json:"access_key"`
	Subject   string `json:"subject"`
	FromName  string `json:"from_name"`
	Message   string `json:"message"`
}

// SendQuoteEmail emails the owner about a freshly persisted quote. Returns an
// error only for the caller's logging; sends are never retried.
func (s *NotificationService) SendQuoteEmail(ctx context.Context, data *models.QuoteNotification) error {
	if s.config.Notifier.EmailAPIKey == "" || s.config.Notifier.NotificationEmail == "" {
		logger.Warn("Email service not configured, skipping quote notification")
		metrics.NotificationSends.WithLabelValues("email", "skipped").Inc()
		return nil
	}

	serviceName := serviceNames[data.Service]
	if serviceName == "" {
		serviceName = data.Service
	}

	payload := emailPayload{
		From:    s.config.Notifier.EmailFrom,
		To:      []string{s.config.Notifier.NotificationEmail},
		Subject: fmt.Sprintf("New %s Quote from %s", serviceName, data.Name),
		HTML:    buildQuoteEmailHTML(data, serviceName),
		Text:    buildQuoteEmailText(data, serviceName),
	}

	err := s.postJSON(ctx, s.config.Notifier.EmailBaseURL+"/emails", payload, s.config.Notifier.EmailAPIKey)
	if err != nil {
		metrics.NotificationSends.WithLabelValues("email", "error").Inc()
		return apperrors.NotificationError("quote_email", err)
	}

	metrics.NotificationSends.WithLabelValues("email", "success").Inc()
	logger.Info("Quote notification email sent",
		zap.String("service", data.Service))
	return nil
}

// NotifyNewLead alerts the owner the moment a calculator user submits contact
// info, before any pricing is shown.
func (s *NotificationService) NotifyNewLead(ctx context.Context, req *models.InsightRequest) error {
	if s.config.Notifier.WebhookAccessKey == "" {
		logger.Warn("Lead webhook not configured, skipping new lead alert")
		metrics.NotificationSends.WithLabelValues("new_lead", "skipped").Inc()
		return nil
	}

	var b strings.Builder
	b.WriteString("NEW PRICING CALCULATOR LEAD\n\n")
	fmt.Fprintf(&b, "Name:  %s\n", req.Name)
	fmt.Fprintf(&b, "Phone: %s\n", req.Phone)
	if req.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", req.Email)
	}
	fmt.Fprintf(&b, "ZIP:   %s\n\n", req.ZipCode)
	fmt.Fprintf(&b, "Home Size: %s\n", req.HomeSize)
	if len(req.Services) > 0 {
		fmt.Fprintf(&b, "Requested Services: %s\n", strings.Join(req.Services, ", "))
	}
	b.WriteString("\nThey have NOT seen pricing yet. Call them now while they're hot!\n")

	payload := webhookPayload{
		AccessKey: s.config.Notifier.WebhookAccessKey,
		Subject:   fmt.Sprintf("NEW LEAD: %s - %s - %s", req.Name, req.ZipCode, strings.ToUpper(req.HomeSize)),
		FromName:  "Alexander's Pricing Calculator",
		Message:   b.String(),
	}

	err := s.postJSON(ctx, s.config.Notifier.WebhookURL, payload, "")
	if err != nil {
		metrics.NotificationSends.WithLabelValues("new_lead", "error").Inc()
		return apperrors.NotificationError("new_lead", err)
	}

	metrics.NotificationSends.WithLabelValues("new_lead", "success").Inc()
	logger.Info("New lead notification sent", zap.String("zip_code", req.ZipCode))
	return nil
}

// NotifyPackageSelected alerts the owner when a calculator user commits to a
// package. The price range comes from the server-side pricing table, never
// from the client.
func (s *NotificationService) NotifyPackageSelected(ctx context.Context, req *models.PackageSelectionRequest) error {
	if s.config.Notifier.WebhookAccessKey == "" {
		logger.Warn("Lead webhook not configured, skipping package selection alert")
		metrics.NotificationSends.WithLabelValues("package_selected", "skipped").Inc()
		return nil
	}

	packageName := pricing.PackageName(req.SelectedPackage)
	priceDisplay := "quoted on-site"
	if priceRange, err := pricing.RangeFor(req.HomeSize, req.SelectedPackage); err == nil {
		priceDisplay = priceRange.Display()
	}

	lastCleaned := lastCleanedLabels[req.LastCleaned]
	if lastCleaned == "" {
		lastCleaned = req.LastCleaned
	}
	condition := trackConditionLabels[req.TrackCondition]
	if condition == "" {
		condition = req.TrackCondition
	}

	var b strings.Builder
	b.WriteString("PACKAGE SELECTED - READY TO BOOK!\n\n")
	fmt.Fprintf(&b, "Name:  %s\n", req.Name)
	fmt.Fprintf(&b, "Phone: %s\n", req.Phone)
	fmt.Fprintf(&b, "ZIP:   %s\n\n", req.ZipCode)
	fmt.Fprintf(&b, "Home Size:         %s\n", titleCase(req.HomeSize))
	fmt.Fprintf(&b, "Last Cleaned:      %s\n", lastCleaned)
	fmt.Fprintf(&b, "Current Condition: %s\n\n", condition)
	fmt.Fprintf(&b, "Package: %s\n", packageName)
	fmt.Fprintf(&b, "Estimated Price: %s\n", priceDisplay)
	for _, feature := range pricing.Features(req.SelectedPackage) {
		fmt.Fprintf(&b, "  - %s\n", feature)
	}
	b.WriteString("\n")
	b.WriteString("They're ready to book. Call with quote confirmation!\n")

	payload := webhookPayload{
		AccessKey: s.config.Notifier.WebhookAccessKey,
		Subject:   fmt.Sprintf("PACKAGE SELECTED: %s - %s - %s", req.Name, packageName, priceDisplay),
		FromName:  "Alexander's Pricing Calculator",
		Message:   b.String(),
	}

	err := s.postJSON(ctx, s.config.Notifier.WebhookURL, payload, "")
	if err != nil {
		metrics.NotificationSends.WithLabelValues("package_selected", "error").Inc()
		return apperrors.NotificationError("package_selected", err)
	}

	metrics.NotificationSends.WithLabelValues("package_selected", "success").Inc()
	logger.Info("Package selection notification sent",
		zap.String("package", req.SelectedPackage),
		zap.String("zip_code", req.ZipCode))
	return nil
}

func (s *NotificationService) postJSON(ctx context.Context, url string, payload any, bearerToken string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notifier returned status %d", resp.StatusCode)
	}

	return nil
}

func buildQuoteEmailHTML(data *models.QuoteNotification, serviceName string) string {
	var b strings.Builder
	b.WriteString("<h1>New Quote Request</h1>")
	b.WriteString("<p><strong>You have received a new quote request from your website!</strong></p>")
	fmt.Fprintf(&b, "<p><strong>Customer Name:</strong> %s</p>", html.EscapeString(data.Name))
	fmt.Fprintf(&b, "<p><strong>Contact Information:</strong> %s</p>", html.EscapeString(data.Contact))
	fmt.Fprintf(&b, "<p><strong>Service Requested:</strong> %s</p>", html.EscapeString(serviceName))
	if data.Message != "" {
		fmt.Fprintf(&b, "<p><strong>Message:</strong> %s</p>", html.EscapeString(data.Message))
	}
	fmt.Fprintf(&b, "<p><strong>Submitted:</strong> %s</p>", data.Timestamp.Format("Monday, January 2, 2006 3:04 PM"))
	fmt.Fprintf(&b, `<p><a href="tel:%s">Call %s</a></p>`,
		nonDigits.ReplaceAllString(data.Contact, ""), html.EscapeString(data.Name))
	b.WriteString("<p><em>Customers who receive a response within 1 hour are 7x more likely to choose your service.</em></p>")
	return b.String()
}

func buildQuoteEmailText(data *models.QuoteNotification, serviceName string) string {
	var b strings.Builder
	b.WriteString("NEW QUOTE REQUEST\n\n")
	fmt.Fprintf(&b, "Customer: %s\n", data.Name)
	fmt.Fprintf(&b, "Contact: %s\n", data.Contact)
	fmt.Fprintf(&b, "Service: %s\n", serviceName)
	if data.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", data.Message)
	}
	fmt.Fprintf(&b, "Submitted: %s\n\n", data.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Call them at: %s\n", data.Contact)
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
