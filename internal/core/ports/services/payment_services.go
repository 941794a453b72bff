package services

import (
	"context"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/SscSPs/property_management_app/internal/dto"
)

// PaymentReaderSvc defines read operations for payment data
type PaymentReaderSvc interface {
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPayments returns a page of payments and the token for the next page.
	ListPayments(ctx context.Context, params dto.ListPaymentsParams) ([]domain.Payment, *string, error)

	ListPaymentHistory(ctx context.Context, paymentID string) ([]domain.PaymentHistory, error)
}

// PaymentWriterSvc defines write operations for payment data
type PaymentWriterSvc interface {
	// CreatePayment opens the billing record of a tenant for a month.
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error)

	// RecordPayment applies a (partial) payment to the tenant's month, creating the record on first use.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error)
}

// PaymentCollectionSvc covers the mobile-money gateway round trip.
type PaymentCollectionSvc interface {
	// InitiatePayment asks the gateway to collect rent from the tenant's phone.
	InitiatePayment(ctx context.Context, req dto.InitiatePaymentRequest, userID string) (*domain.PaymentCheckout, error)

	// ConfirmPayment applies a gateway confirmation exactly once per transaction reference.
	ConfirmPayment(ctx context.Context, req dto.PaymentConfirmationRequest) (*domain.ConfirmationOutcome, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
	PaymentCollectionSvc
}
