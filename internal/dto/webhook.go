package dto

import "github.com/shopspring/decimal"

// InitiatePaymentRequest asks the payment gateway to collect rent from a tenant's phone.
type InitiatePaymentRequest struct {
	TenantID string           `json:"tenantID" binding:"required"`
	Month    int              `json:"month" binding:"required,month"`
	Amount   *decimal.Decimal `json:"amount" binding:"omitempty,positive_decimal,money"`
}

// InitiatePaymentResponse is returned once the gateway accepted the checkout.
type InitiatePaymentResponse struct {
	CheckoutReference string          `json:"checkoutReference"`
	AccountReference  string          `json:"accountReference"`
	Amount            decimal.Decimal `json:"amount"`
	Status            string          `json:"status"`
}

// PaymentConfirmationRequest is the asynchronous callback sent by the gateway.
type PaymentConfirmationRequest struct {
	TransactionReference string          `json:"transactionReference" binding:"required,max=64"`
	Amount               decimal.Decimal `json:"amount" binding:"positive_decimal,money"`
	Payer                string          `json:"payer" binding:"required"`
	AccountReference     string          `json:"accountReference"`
}

// PaymentConfirmationResponse acknowledges a callback. Duplicate deliveries
// are acknowledged with Duplicate set and no state change.
type PaymentConfirmationResponse struct {
	TransactionReference string `json:"transactionReference"`
	PaymentID            string `json:"paymentID"`
	Paid                 bool   `json:"paid"`
	Duplicate            bool   `json:"duplicate"`
}
