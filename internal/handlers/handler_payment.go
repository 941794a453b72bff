package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/SscSPs/property_management_app/internal/dto"
	"github.com/SscSPs/property_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// paymentHandler handles HTTP requests related to rent payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
	lateFeeRate    decimal.Decimal
	now            func() time.Time
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade, lateFeeRate decimal.Decimal, now func() time.Time) *paymentHandler {
	return &paymentHandler{paymentService: ps, lateFeeRate: lateFeeRate, now: now}
}

// registerPaymentRoutes registers routes related to payments.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade, lateFeeRate decimal.Decimal, now func() time.Time) {
	h := newPaymentHandler(paymentService, lateFeeRate, now)

	payments := rg.Group("/payments")
	{
		payments.GET("", h.listPayments)
		payments.POST("", h.createPayment)
		payments.POST("/record", h.recordPayment)
		payments.POST("/initiate", h.initiatePayment)
		payments.GET("/:id", h.getPayment)
		payments.GET("/:id/history", h.listPaymentHistory)
	}
}

// listPayments godoc
// @Summary List payments
// @Description Pages through payments, newest due date first.
// @Tags payments
// @Produce  json
// @Param   tenant_id query string false "Only payments of this tenant"
// @Param   paid query bool false "Filter by paid flag"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} errorResponse "Invalid query parameters or token"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 500 {object} errorResponse "Failed to list payments"
// @Security BearerAuth
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	payments, nextToken, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ListPaymentsResponse{
		Payments:  dto.ToPaymentResponses(payments, h.now(), h.lateFeeRate),
		NextToken: nextToken,
	})
}

// createPayment godoc
// @Summary Open a month's billing record
// @Description Creates the payment of a tenant for a month. The amount defaults to the house rent.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} errorResponse "Invalid input"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Tenant not found"
// @Failure 409 {object} errorResponse "Month already billed"
// @Failure 422 {object} errorResponse "House has no rent configured"
// @Failure 500 {object} errorResponse "Failed to create payment"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("tenant_id", req.TenantID), slog.Int("month", req.Month))
	payment, err := h.paymentService.CreatePayment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create payment")
		return
	}

	logger.Info("Payment created", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment, h.now(), h.lateFeeRate))
}

// recordPayment godoc
// @Summary Record a payment
// @Description Applies a full or partial payment to a tenant's month, creating the record on first use.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.RecordPaymentRequest true "Payment received"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} errorResponse "Invalid input"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Tenant not found"
// @Failure 422 {object} errorResponse "House has no rent configured"
// @Failure 500 {object} errorResponse "Failed to record payment"
// @Security BearerAuth
// @Router /payments/record [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("tenant_id", req.TenantID), slog.Int("month", req.Month))
	payment, err := h.paymentService.RecordPayment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded", slog.String("payment_id", payment.PaymentID), slog.Bool("paid", payment.Paid))
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment, h.now(), h.lateFeeRate))
}

// initiatePayment godoc
// @Summary Start a mobile-money collection
// @Description Asks the payment gateway to prompt the tenant's phone. The amount defaults to what is left for the month, else the house rent.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   checkout body dto.InitiatePaymentRequest true "Checkout details"
// @Success 202 {object} dto.InitiatePaymentResponse
// @Failure 400 {object} errorResponse "Invalid input"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Tenant not found"
// @Failure 409 {object} errorResponse "Tenant inactive or month already paid"
// @Failure 422 {object} errorResponse "Gateway not configured"
// @Failure 502 {object} errorResponse "Gateway rejected the checkout"
// @Security BearerAuth
// @Router /payments/initiate [post]
func (h *paymentHandler) initiatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("tenant_id", req.TenantID), slog.Int("month", req.Month))
	checkout, err := h.paymentService.InitiatePayment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to initiate payment")
		return
	}

	logger.Info("Checkout initiated", slog.String("checkout_reference", checkout.CheckoutReference))
	c.JSON(http.StatusAccepted, dto.InitiatePaymentResponse{
		CheckoutReference: checkout.CheckoutReference,
		AccountReference:  checkout.AccountReference,
		Amount:            checkout.Amount,
		Status:            checkout.Status,
	})
}

// getPayment godoc
// @Summary Get a payment by ID
// @Description Includes late fee, grace and overdue state evaluated as of now.
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Payment not found"
// @Failure 500 {object} errorResponse "Failed to retrieve payment"
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment, h.now(), h.lateFeeRate))
}

// listPaymentHistory godoc
// @Summary List the instalments of a payment
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 200 {array} dto.PaymentHistoryResponse
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Payment not found"
// @Failure 500 {object} errorResponse "Failed to list payment history"
// @Security BearerAuth
// @Router /payments/{id}/history [get]
func (h *paymentHandler) listPaymentHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entries, err := h.paymentService.ListPaymentHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to list payment history")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentHistoryResponses(entries))
}
