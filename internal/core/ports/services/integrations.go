package services

import (
	"context"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Notifier delivers payment notifications to tenants.
type Notifier interface {
	NotifyPaymentRecorded(ctx context.Context, event domain.PaymentRecordedEvent) error
}

// CheckoutRequest is what the gateway needs to push a collection prompt.
type CheckoutRequest struct {
	Phone            string
	Amount           decimal.Decimal
	AccountReference string
	Description      string
}

// CheckoutResult is the gateway's acknowledgement of a checkout.
type CheckoutResult struct {
	CheckoutReference string
	Status            string
}

// PaymentGateway starts mobile-money collections.
type PaymentGateway interface {
	InitiateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
}

// ProcessedReferenceCache remembers transaction references that were already applied.
// It is a fast path only; the database stays the source of truth.
type ProcessedReferenceCache interface {
	Seen(ctx context.Context, reference string) (bool, error)
	MarkProcessed(ctx context.Context, reference string) error
}
