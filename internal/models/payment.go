package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents a row of the payments table.
type Payment struct {
	PaymentID            string          `db:"payment_id"`
	TenantID             string          `db:"tenant_id"`
	Amount               decimal.Decimal `db:"amount"`
	Month                int             `db:"month"`
	DueDate              time.Time       `db:"due_date"`
	Paid                 bool            `db:"paid"`
	PartialAmountPaid    decimal.Decimal `db:"partial_amount_paid"`
	GracePeriodDays      int             `db:"grace_period_days"`
	ConfirmationReceived bool            `db:"confirmation_received"`
	PaidAt               *time.Time      `db:"paid_at"` // Nullable
	AuditFields
}

// PaymentHistory represents a row of the payment_history table.
type PaymentHistory struct {
	HistoryID string          `db:"history_id"`
	PaymentID string          `db:"payment_id"`
	Amount    decimal.Decimal `db:"amount"`
	PaidOn    time.Time       `db:"paid_on"`
	Method    string          `db:"method"`
	Reference string          `db:"reference"`
	CreatedAt time.Time       `db:"created_at"`
	CreatedBy string          `db:"created_by"`
}

// PaymentConfirmation represents a row of the payment_confirmations table.
type PaymentConfirmation struct {
	TransactionReference string          `db:"transaction_reference"`
	PaymentID            string          `db:"payment_id"`
	TenantID             string          `db:"tenant_id"`
	Amount               decimal.Decimal `db:"amount"`
	Payer                string          `db:"payer"`
	ReceivedAt           time.Time       `db:"received_at"`
}
