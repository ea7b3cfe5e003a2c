package handlers

import (
	"context"

	"github.com/alexanderscleaning/quotes-api/internal/models"
	"github.com/alexanderscleaning/quotes-api/internal/services"
	"github.com/alexanderscleaning/quotes-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

// MockQuoteService is a mock implementation of services.QuoteServiceInterface
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) SubmitPlainQuote(ctx context.Context, req *models.QuoteRequest, meta services.RequestMeta) (*models.SubmitQuoteResponse, error) {
	args := m.Called(ctx, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubmitQuoteResponse), args.Error(1)
}

func (m *MockQuoteService) SubmitCalculatorQuote(ctx context.Context, req *models.CalculatorQuoteRequest, meta services.RequestMeta) (*models.SubmitQuoteResponse, error) {
	args := m.Called(ctx, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubmitQuoteResponse), args.Error(1)
}

// MockInsightService is a mock implementation of services.InsightServiceInterface
type MockInsightService struct {
	mock.Mock
}

func (m *MockInsightService) GenerateInsights(ctx context.Context, assessment models.Assessment) *models.Insight {
	args := m.Called(ctx, assessment)
	return args.Get(0).(*models.Insight)
}

// recordingNotifier captures notification calls on channels so tests can wait
// for the async sends without races.
type recordingNotifier struct {
	emails   chan *models.QuoteNotification
	leads    chan *models.InsightRequest
	packages chan *models.PackageSelectionRequest
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		emails:   make(chan *models.QuoteNotification, 1),
		leads:    make(chan *models.InsightRequest, 1),
		packages: make(chan *models.PackageSelectionRequest, 1),
	}
}

func (n *recordingNotifier) SendQuoteEmail(ctx context.Context, data *models.QuoteNotification) error {
	n.emails <- data
	return nil
}

func (n *recordingNotifier) NotifyNewLead(ctx context.Context, req *models.InsightRequest) error {
	n.leads <- req
	return nil
}

func (n *recordingNotifier) NotifyPackageSelected(ctx context.Context, req *models.PackageSelectionRequest) error {
	n.packages <- req
	return nil
}
