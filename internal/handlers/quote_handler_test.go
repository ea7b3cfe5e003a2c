package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexanderscleaning/quotes-api/internal/models"
	"github.com/alexanderscleaning/quotes-api/internal/services"
	apperrors "github.com/alexanderscleaning/quotes-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newQuoteRouter(svc services.QuoteServiceInterface) *gin.Engine {
	return newQuoteRouterWithPhone(svc, "")
}

func newQuoteRouterWithPhone(svc services.QuoteServiceInterface, phone string) *gin.Engine {
	handler := NewQuoteHandler(svc, phone)
	router := gin.New()
	router.POST("/quote", handler.SubmitQuote)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestQuoteHandler_PlainQuote_Success(t *testing.T) {
	svc := new(MockQuoteService)
	svc.On("SubmitPlainQuote", mock.Anything, mock.AnythingOfType("*models.QuoteRequest"), mock.Anything).
		Return(&models.SubmitQuoteResponse{Success: true, Message: "Quote request received successfully. We'll contact you soon!"}, nil).Once()

	router := newQuoteRouter(svc)
	w := postJSON(router, "/quote", `{
		"name": "Jane Smith",
		"contact": "jane@example.com",
		"service": "residential",
		"message": "Front windows only"
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "received successfully")
	svc.AssertExpectations(t)
	svc.AssertNotCalled(t, "SubmitCalculatorQuote")
}

func TestQuoteHandler_CalculatorQuote_RoutedBySource(t *testing.T) {
	svc := new(MockQuoteService)
	var received *models.CalculatorQuoteRequest
	svc.On("SubmitCalculatorQuote", mock.Anything, mock.AnythingOfType("*models.CalculatorQuoteRequest"), mock.Anything).
		Run(func(args mock.Arguments) {
			received = args.Get(1).(*models.CalculatorQuoteRequest)
		}).
		Return(&models.SubmitQuoteResponse{Success: true}, nil).Once()

	router := newQuoteRouter(svc)
	w := postJSON(router, "/quote", `{
		"name": "Jane Smith",
		"phone": "(570) 555-0101",
		"zipCode": "18503",
		"homeSize": "medium",
		"stories": "2",
		"lastCleaned": "over2yr",
		"trackCondition": "dirty",
		"selectedPackage": "deluxe",
		"calculatedPrice": 645,
		"quoteSource": "calculator"
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, received)
	assert.Equal(t, "deluxe", received.SelectedPackage)
	svc.AssertNotCalled(t, "SubmitPlainQuote")
}

func TestQuoteHandler_MalformedJSON(t *testing.T) {
	svc := new(MockQuoteService)
	router := newQuoteRouter(svc)

	w := postJSON(router, "/quote", `{"name": "Jane`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Invalid request"}`, w.Body.String())
	svc.AssertNotCalled(t, "SubmitPlainQuote")
	svc.AssertNotCalled(t, "SubmitCalculatorQuote")
}

func TestQuoteHandler_ValidationFailure_ReportsAllFields(t *testing.T) {
	svc := new(MockQuoteService)
	router := newQuoteRouter(svc)

	// Bad name characters, invalid contact, unknown service
	w := postJSON(router, "/quote", `{
		"name": "J4ne!!",
		"contact": "not-a-contact",
		"service": "roofing"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error   string `json:"error"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Error)

	fields := make([]string, 0, len(resp.Details))
	for _, d := range resp.Details {
		fields = append(fields, d.Field)
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "contact")
	assert.Contains(t, fields, "service")
	svc.AssertNotCalled(t, "SubmitPlainQuote")
}

func TestQuoteHandler_ContactAcceptsPhone(t *testing.T) {
	svc := new(MockQuoteService)
	svc.On("SubmitPlainQuote", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.SubmitQuoteResponse{Success: true}, nil).Once()

	router := newQuoteRouter(svc)
	w := postJSON(router, "/quote", `{
		"name": "Jane Smith",
		"contact": "(570) 555-0101",
		"service": "gutter-cleaning"
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestQuoteHandler_StoreUnavailable(t *testing.T) {
	svc := new(MockQuoteService)
	svc.On("SubmitPlainQuote", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrStoreUnavailable).Once()

	router := newQuoteRouter(svc)
	w := postJSON(router, "/quote", `{
		"name": "Jane Smith",
		"contact": "jane@example.com",
		"service": "residential"
	}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error": "Service temporarily unavailable"}`, w.Body.String())
}

func TestQuoteHandler_PersistenceFailure(t *testing.T) {
	svc := new(MockQuoteService)
	svc.On("SubmitPlainQuote", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.PersistenceError(assert.AnError)).Once()

	router := newQuoteRouter(svc)
	w := postJSON(router, "/quote", `{
		"name": "Jane Smith",
		"contact": "jane@example.com",
		"service": "residential"
	}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Failed to save quote request"}`, w.Body.String())
}

func TestQuoteHandler_CalculatorQuote_PriceRequiredButZeroAllowed(t *testing.T) {
	svc := new(MockQuoteService)
	router := newQuoteRouter(svc)

	// Missing calculatedPrice key
	w := postJSON(router, "/quote", `{
		"name": "Jane Smith",
		"phone": "(570) 555-0101",
		"zipCode": "18503",
		"homeSize": "medium",
		"stories": "2",
		"lastCleaned": "over2yr",
		"trackCondition": "dirty",
		"selectedPackage": "deluxe",
		"quoteSource": "calculator"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"calculatedPrice"`)
	svc.AssertNotCalled(t, "SubmitCalculatorQuote")

	// An explicit $0 is a valid price
	svc.On("SubmitCalculatorQuote", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.SubmitQuoteResponse{Success: true}, nil).Once()
	w = postJSON(router, "/quote", `{
		"name": "Jane Smith",
		"phone": "(570) 555-0101",
		"zipCode": "18503",
		"homeSize": "medium",
		"stories": "2",
		"lastCleaned": "over2yr",
		"trackCondition": "dirty",
		"selectedPackage": "deluxe",
		"calculatedPrice": 0,
		"quoteSource": "calculator"
	}`)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestQuoteHandler_ErrorBodiesCarryBusinessPhone(t *testing.T) {
	svc := new(MockQuoteService)
	svc.On("SubmitPlainQuote", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrStoreUnavailable).Once()

	router := newQuoteRouterWithPhone(svc, "(570) 555-1234")

	// Persistence outage
	w := postJSON(router, "/quote", `{
		"name": "Jane Smith",
		"contact": "jane@example.com",
		"service": "residential"
	}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error": "Service temporarily unavailable", "phone": "(570) 555-1234"}`, w.Body.String())

	// Validation failure keeps the phone alongside the details
	w = postJSON(router, "/quote", `{"name": "Jane Smith"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"phone":"(570) 555-1234"`)
}

func TestQuoteHandler_CalculatorQuote_ValidationFailure(t *testing.T) {
	svc := new(MockQuoteService)
	router := newQuoteRouter(svc)

	// Calculator source with a bad zip and unknown package
	w := postJSON(router, "/quote", `{
		"name": "Jane Smith",
		"phone": "(570) 555-0101",
		"zipCode": "123",
		"homeSize": "medium",
		"stories": "2",
		"lastCleaned": "over2yr",
		"trackCondition": "dirty",
		"selectedPackage": "platinum",
		"calculatedPrice": 645,
		"quoteSource": "calculator"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Validation failed")
	svc.AssertNotCalled(t, "SubmitCalculatorQuote")
}
