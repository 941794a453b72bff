package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/property_management_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how a payment event was settled.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodMobileMoney  PaymentMethod = "mobile_money"
	MethodCheque       PaymentMethod = "cheque"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodMobileMoney, MethodCheque:
		return true
	}
	return false
}

// Payment is one rent-cycle billing record for a Tenant.
// Amount is fixed at creation; Paid holds iff PartialAmountPaid >= Amount.
type Payment struct {
	PaymentID            string          `json:"paymentID"`
	TenantID             string          `json:"tenantID"`
	Amount               decimal.Decimal `json:"amount"`
	Month                int             `json:"month"` // 1-12
	DueDate              time.Time       `json:"dueDate"`
	Paid                 bool            `json:"paid"`
	PartialAmountPaid    decimal.Decimal `json:"partialAmountPaid"`
	GracePeriodDays      int             `json:"gracePeriodDays"`
	ConfirmationReceived bool            `json:"confirmationReceived"`
	PaidAt               *time.Time      `json:"paidAt"` // Set when the payment first becomes paid
	AuditFields
}

// PaymentHistory is an append-only ledger entry for one payment event.
type PaymentHistory struct {
	HistoryID string          `json:"historyID"`
	PaymentID string          `json:"paymentID"`
	Amount    decimal.Decimal `json:"amount"`
	PaidOn    time.Time       `json:"paidOn"`
	Method    PaymentMethod   `json:"method"`
	Reference string          `json:"reference"`
	CreatedAt time.Time       `json:"createdAt"`
	CreatedBy string          `json:"createdBy"`
}

// PaymentConfirmation records a processed gateway callback, keyed by the
// gateway's transaction reference.
type PaymentConfirmation struct {
	TransactionReference string          `json:"transactionReference"`
	PaymentID            string          `json:"paymentID"`
	TenantID             string          `json:"tenantID"`
	Amount               decimal.Decimal `json:"amount"`
	Payer                string          `json:"payer"`
	ReceivedAt           time.Time       `json:"receivedAt"`
}

// ValidateMonth checks that month is a calendar month number.
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12, got %d", apperrors.ErrValidation, month)
	}
	return nil
}

// MonthName returns the English name of the payment's rent month.
func (p Payment) MonthName() string {
	if ValidateMonth(p.Month) != nil {
		return ""
	}
	return time.Month(p.Month).String()
}

// PaymentRecordedEvent is emitted after a payment event has been committed.
type PaymentRecordedEvent struct {
	PaymentID   string
	TenantID    string
	TenantName  string
	TenantEmail string
	TenantPhone string
	Month       int
	AmountPaid  decimal.Decimal
	Remaining   decimal.Decimal
	Paid        bool
	Method      PaymentMethod
	Reference   string
	RecordedAt  time.Time
}

// PaymentCheckout is a collection request accepted by the payment gateway.
type PaymentCheckout struct {
	CheckoutReference string
	AccountReference  string
	Amount            decimal.Decimal
	Status            string
}

// ConfirmationOutcome is the result of processing a gateway confirmation.
type ConfirmationOutcome struct {
	Payment   *Payment
	Duplicate bool
}
