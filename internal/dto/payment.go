package dto

import (
	"time"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest defines the data needed to open a rent-cycle billing record.
type CreatePaymentRequest struct {
	TenantID        string           `json:"tenantID" binding:"required"`
	Month           int              `json:"month" binding:"required,month"`
	Amount          *decimal.Decimal `json:"amount" binding:"omitempty,positive_decimal,money"` // Defaults to the house rent
	DueDate         *string          `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	GracePeriodDays *int             `json:"gracePeriodDays" binding:"omitempty,min=0,max=31"`
}

// RecordPaymentRequest defines a (partial) payment against a tenant's month.
type RecordPaymentRequest struct {
	TenantID   string           `json:"tenantID" binding:"required"`
	Month      int              `json:"month" binding:"required,month"`
	AmountPaid decimal.Decimal  `json:"amountPaid" binding:"positive_decimal,money"`
	Method     string           `json:"method" binding:"required,oneof=cash bank_transfer mobile_money cheque"`
	Amount     *decimal.Decimal `json:"amount" binding:"omitempty,positive_decimal,money"` // Used only when the month's record is created
	Reference  string           `json:"reference" binding:"max=64"`
}

// PaymentResponse defines the data returned for a payment.
// LateFee, WithinGrace and IsOverdue are evaluated as of the response time.
type PaymentResponse struct {
	PaymentID            string          `json:"paymentID"`
	TenantID             string          `json:"tenantID"`
	Amount               decimal.Decimal `json:"amount"`
	Month                int             `json:"month"`
	MonthName            string          `json:"monthName"`
	DueDate              string          `json:"dueDate"`
	Paid                 bool            `json:"paid"`
	PartialAmountPaid    decimal.Decimal `json:"partialAmountPaid"`
	RemainingAmount      decimal.Decimal `json:"remainingAmount"`
	GracePeriodDays      int             `json:"gracePeriodDays"`
	ConfirmationReceived bool            `json:"confirmationReceived"`
	PaidAt               *time.Time      `json:"paidAt,omitempty"`
	LateFee              decimal.Decimal `json:"lateFee"`
	WithinGrace          bool            `json:"withinGrace"`
	IsOverdue            bool            `json:"isOverdue"`
	CreatedAt            time.Time       `json:"createdAt"`
	LastUpdatedAt        time.Time       `json:"lastUpdatedAt"`
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	TenantID  string  `form:"tenant_id"`
	Paid      *bool   `form:"paid"`
	Limit     int     `form:"limit,default=20" binding:"min=0,max=200"`
	NextToken *string `form:"nextToken"`
}

// ListPaymentsResponse wraps a page of payments.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// PaymentHistoryResponse defines one ledger entry of a payment.
type PaymentHistoryResponse struct {
	HistoryID string          `json:"historyID"`
	Amount    decimal.Decimal `json:"amount"`
	PaidOn    string          `json:"paidOn"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO, evaluating
// the time-dependent fields as of asOf.
func ToPaymentResponse(p *domain.Payment, asOf time.Time, lateFeeRate decimal.Decimal) PaymentResponse {
	return PaymentResponse{
		PaymentID:            p.PaymentID,
		TenantID:             p.TenantID,
		Amount:               p.Amount,
		Month:                p.Month,
		MonthName:            p.MonthName(),
		DueDate:              p.DueDate.Format(time.DateOnly),
		Paid:                 p.Paid,
		PartialAmountPaid:    p.PartialAmountPaid,
		RemainingAmount:      p.RemainingAmount(),
		GracePeriodDays:      p.GracePeriodDays,
		ConfirmationReceived: p.ConfirmationReceived,
		PaidAt:               p.PaidAt,
		LateFee:              domain.LateFee(*p, asOf, lateFeeRate),
		WithinGrace:          domain.IsWithinGrace(*p, asOf),
		IsOverdue:            domain.IsOverdue(*p, asOf),
		CreatedAt:            p.CreatedAt,
		LastUpdatedAt:        p.LastUpdatedAt,
	}
}

// ToPaymentResponses converts a slice of domain.Payment to []PaymentResponse.
func ToPaymentResponses(payments []domain.Payment, asOf time.Time, lateFeeRate decimal.Decimal) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPaymentResponse(&payments[i], asOf, lateFeeRate)
	}
	return res
}

// ToPaymentHistoryResponses converts ledger entries to their DTOs.
func ToPaymentHistoryResponses(entries []domain.PaymentHistory) []PaymentHistoryResponse {
	res := make([]PaymentHistoryResponse, len(entries))
	for i, e := range entries {
		res[i] = PaymentHistoryResponse{
			HistoryID: e.HistoryID,
			Amount:    e.Amount,
			PaidOn:    e.PaidOn.Format(time.DateOnly),
			Method:    string(e.Method),
			Reference: e.Reference,
			CreatedAt: e.CreatedAt,
		}
	}
	return res
}
