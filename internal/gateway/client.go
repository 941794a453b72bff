package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/go-resty/resty/v2"
)

const checkoutPath = "/checkout"

// checkoutPayload is the body sent to the gateway to start a collection.
type checkoutPayload struct {
	Phone            string `json:"phone"`
	Amount           string `json:"amount"`
	AccountReference string `json:"accountReference"`
	Description      string `json:"description"`
}

type checkoutResponse struct {
	CheckoutReference string `json:"checkoutReference"`
	Status            string `json:"status"`
	Message           string `json:"message"`
}

// Client talks to the mobile-money gateway over HTTP.
type Client struct {
	httpClient *resty.Client
	logger     *slog.Logger
}

var _ services.PaymentGateway = (*Client)(nil)

// NewClient creates a gateway client authenticated with apiKey.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(apiKey)

	return &Client{httpClient: client, logger: logger}
}

// InitiateCheckout asks the gateway to push a payment prompt to the payer's phone.
func (c *Client) InitiateCheckout(ctx context.Context, req services.CheckoutRequest) (*services.CheckoutResult, error) {
	payload := checkoutPayload{
		Phone:            req.Phone,
		Amount:           req.Amount.StringFixed(2),
		AccountReference: req.AccountReference,
		Description:      req.Description,
	}

	var response checkoutResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&response).
		SetError(&response).
		Post(checkoutPath)
	if err != nil {
		c.logger.Error("Payment gateway call failed", slog.String("error", err.Error()), slog.String("account_reference", req.AccountReference))
		return nil, fmt.Errorf("failed to call payment gateway: %w", err)
	}

	if resp.IsError() {
		c.logger.Error("Payment gateway returned error",
			slog.Int("status_code", resp.StatusCode()),
			slog.String("msg", response.Message),
		)
		return nil, fmt.Errorf("payment gateway error: %s (status: %d)", response.Message, resp.StatusCode())
	}
	if response.CheckoutReference == "" {
		return nil, fmt.Errorf("payment gateway returned no checkout reference")
	}

	c.logger.Info("Payment gateway accepted checkout",
		slog.String("checkout_reference", response.CheckoutReference),
		slog.String("account_reference", req.AccountReference),
	)
	return &services.CheckoutResult{CheckoutReference: response.CheckoutReference, Status: response.Status}, nil
}
