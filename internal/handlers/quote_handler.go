package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/alexanderscleaning/quotes-api/internal/models"
	"github.com/alexanderscleaning/quotes-api/internal/services"
	apperrors "github.com/alexanderscleaning/quotes-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type QuoteHandler struct {
	errorResponder
	service  services.QuoteServiceInterface
	validate *validator.Validate
}

func NewQuoteHandler(service services.QuoteServiceInterface, businessPhone string) *QuoteHandler {
	return &QuoteHandler{
		errorResponder: errorResponder{phone: businessPhone},
		service:        service,
		validate:       newValidator(),
	}
}

// SubmitQuote accepts both contact-form and calculator submissions on one
// endpoint, discriminated by the quoteSource field in the body.
func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request", apperrors.ErrMalformedJSON)
		return
	}

	var probe struct {
		QuoteSource string `json:"quoteSource"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request", apperrors.ErrMalformedJSON)
		return
	}

	meta := services.RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	var resp *models.SubmitQuoteResponse
	if probe.QuoteSource == "calculator" {
		var req models.CalculatorQuoteRequest
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondError(c, http.StatusBadRequest, "Invalid request", apperrors.ErrMalformedJSON)
			return
		}
		if err := h.validate.Struct(&req); err != nil {
			h.respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed",
				ParseValidationErrors(err), apperrors.ErrValidationFailed)
			return
		}
		resp, err = h.service.SubmitCalculatorQuote(c.Request.Context(), &req, meta)
	} else {
		var req models.QuoteRequest
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondError(c, http.StatusBadRequest, "Invalid request", apperrors.ErrMalformedJSON)
			return
		}
		if err := h.validate.Struct(&req); err != nil {
			h.respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed",
				ParseValidationErrors(err), apperrors.ErrValidationFailed)
			return
		}
		resp, err = h.service.SubmitPlainQuote(c.Request.Context(), &req, meta)
	}

	if err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrStoreUnavailable):
			h.respondError(c, http.StatusServiceUnavailable, "Service temporarily unavailable", err)
		case apperrors.Is(err, apperrors.ErrPersistenceFailed):
			h.respondError(c, http.StatusInternalServerError, "Failed to save quote request", err)
		default:
			h.respondError(c, http.StatusInternalServerError, "Internal server error", err)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
