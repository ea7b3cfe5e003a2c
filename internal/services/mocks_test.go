package services_test

import (
	"context"
	"io"
	"net/http"

	"github.com/alexanderscleaning/quotes-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockQuoteRepository is a mock implementation of QuoteRepositoryInterface
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Create(ctx context.Context, quote *models.Quote) (uuid.UUID, error) {
	args := m.Called(ctx, quote)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockQuoteRepository) Available(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// MockHTTPClient is a mock implementation of httpclient.Client
type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	args := m.Called(url, contentType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockHTTPClient) Get(url string) (*http.Response, error) {
	args := m.Called(url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
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
