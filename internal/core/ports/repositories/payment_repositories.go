package repositories

import (
	"context"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PaymentFilter narrows a payment listing.
type PaymentFilter struct {
	TenantID  *string
	Paid      *bool
	Limit     int
	NextToken *string
}

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a payment by its unique identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPayments retrieves payments ordered by due date using token-based pagination.
	// It returns the payments, a token for the next page, and an error.
	ListPayments(ctx context.Context, filter PaymentFilter) ([]domain.Payment, *string, error)

	// ListPaymentsByTenant returns every payment of a tenant ordered by due date.
	ListPaymentsByTenant(ctx context.Context, tenantID string) ([]domain.Payment, error)

	// FindPaymentByTenantMonth retrieves the payment of a tenant for a month without locking it.
	FindPaymentByTenantMonth(ctx context.Context, tenantID string, month int) (*domain.Payment, error)

	// ListPaymentHistory returns the ledger entries of a payment in insertion order.
	ListPaymentHistory(ctx context.Context, paymentID string) ([]domain.PaymentHistory, error)

	// FindConfirmation retrieves a processed gateway confirmation by transaction reference.
	FindConfirmation(ctx context.Context, transactionReference string) (*domain.PaymentConfirmation, error)
}

// PaymentTransactionSupport defines payment operations that run inside a transaction
type PaymentTransactionSupport interface {
	// FindPaymentByTenantMonthForUpdate selects and locks the payment of a tenant for a month.
	// It returns apperrors.ErrNotFound when there is none.
	FindPaymentByTenantMonthForUpdate(ctx context.Context, tx pgx.Tx, tenantID string, month int) (*domain.Payment, error)

	// FindOldestUnpaidPaymentInTx returns the unpaid payment with the earliest due date.
	FindOldestUnpaidPaymentInTx(ctx context.Context, tx pgx.Tx, tenantID string) (*domain.Payment, error)

	// ListPaymentsByTenantInTx returns every payment of a tenant.
	ListPaymentsByTenantInTx(ctx context.Context, tx pgx.Tx, tenantID string) ([]domain.Payment, error)

	// SavePaymentInTx persists a new payment.
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error

	// UpdatePaymentProgressInTx stores partial amount, paid flag and confirmation state.
	UpdatePaymentProgressInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error

	// SavePaymentHistoryInTx appends a ledger entry.
	SavePaymentHistoryInTx(ctx context.Context, tx pgx.Tx, entry domain.PaymentHistory) error

	// SaveConfirmationInTx records a gateway confirmation. It reports false,
	// without error, when the transaction reference was already recorded.
	SaveConfirmationInTx(ctx context.Context, tx pgx.Tx, confirmation domain.PaymentConfirmation) (bool, error)
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentTransactionSupport
}
