package handlers

import (
	"context"
	"net/http"

	"github.com/alexanderscleaning/quotes-api/internal/models"
	"github.com/alexanderscleaning/quotes-api/internal/services"
	apperrors "github.com/alexanderscleaning/quotes-api/pkg/errors"
	"github.com/alexanderscleaning/quotes-api/pkg/trigger"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type InsightHandler struct {
	errorResponder
	insights services.InsightServiceInterface
	notifier services.NotificationServiceInterface
	validate *validator.Validate
}

func NewInsightHandler(insights services.InsightServiceInterface, notifier services.NotificationServiceInterface, businessPhone string) *InsightHandler {
	return &InsightHandler{
		errorResponder: errorResponder{phone: businessPhone},
		insights:       insights,
		notifier:       notifier,
		validate:       newValidator(),
	}
}

// GenerateInsights handles the calculator's step 3 call: the new-lead alert
// fires immediately in the background while the response waits only on the
// insight itself.
func (h *InsightHandler) GenerateInsights(c *gin.Context) {
	var req models.InsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request", apperrors.ErrMalformedJSON)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed",
			ParseValidationErrors(err), apperrors.ErrValidationFailed)
		return
	}

	notifyReq := req
	trigger.Async("new_lead_notification", func(ctx context.Context) error {
		return h.notifier.NotifyNewLead(ctx, &notifyReq)
	})

	insight := h.insights.GenerateInsights(c.Request.Context(), req.Assessment())

	c.JSON(http.StatusOK, models.InsightResponse{
		Success: true,
		Insight: insight,
	})
}

// SelectPackage records a package choice. The response never waits on the
// notification send.
func (h *InsightHandler) SelectPackage(c *gin.Context) {
	var req models.PackageSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request", apperrors.ErrMalformedJSON)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed",
			ParseValidationErrors(err), apperrors.ErrValidationFailed)
		return
	}

	notifyReq := req
	trigger.Async("package_selected_notification", func(ctx context.Context) error {
		return h.notifier.NotifyPackageSelected(ctx, &notifyReq)
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}
