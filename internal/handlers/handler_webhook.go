package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/SscSPs/property_management_app/internal/dto"
	"github.com/SscSPs/property_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// webhookHandler receives asynchronous callbacks from the payment gateway.
type webhookHandler struct {
	paymentService portssvc.PaymentCollectionSvc
}

// registerWebhookRoutes registers the gateway callbacks. They carry no bearer
// token; the group is expected to verify the body signature.
func registerWebhookRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentCollectionSvc) {
	h := &webhookHandler{paymentService: paymentService}
	rg.POST("/payments/confirm", h.confirmPayment)
}

// confirmPayment godoc
// @Summary Payment gateway confirmation
// @Description Applies a confirmed mobile-money payment once per transaction reference. Repeated deliveries answer 200 with duplicate set.
// @Tags webhooks
// @Accept  json
// @Produce  json
// @Param   X-Signature header string true "Hex HMAC-SHA256 of the raw body"
// @Param   confirmation body dto.PaymentConfirmationRequest true "Gateway confirmation"
// @Success 200 {object} dto.PaymentConfirmationResponse
// @Failure 400 {object} errorResponse "Invalid payload"
// @Failure 401 {object} errorResponse "Invalid signature"
// @Failure 404 {object} errorResponse "No tenant matches the payer"
// @Failure 500 {object} errorResponse "Failed to apply confirmation"
// @Router /webhooks/payments/confirm [post]
func (h *webhookHandler) confirmPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PaymentConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "confirmation payload")
		return
	}

	logger = logger.With(slog.String("transaction_reference", req.TransactionReference))
	outcome, err := h.paymentService.ConfirmPayment(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to apply confirmation")
		return
	}

	resp := dto.PaymentConfirmationResponse{
		TransactionReference: req.TransactionReference,
		Duplicate:            outcome.Duplicate,
	}
	if outcome.Payment != nil {
		resp.PaymentID = outcome.Payment.PaymentID
		resp.Paid = outcome.Payment.Paid
	}
	logger.Info("Confirmation processed", slog.Bool("duplicate", outcome.Duplicate), slog.String("payment_id", resp.PaymentID))
	c.JSON(http.StatusOK, resp)
}
