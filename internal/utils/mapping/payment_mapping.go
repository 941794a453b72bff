package mapping

import (
	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/SscSPs/property_management_app/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:            d.PaymentID,
		TenantID:             d.TenantID,
		Amount:               d.Amount,
		Month:                d.Month,
		DueDate:              d.DueDate,
		Paid:                 d.Paid,
		PartialAmountPaid:    d.PartialAmountPaid,
		GracePeriodDays:      d.GracePeriodDays,
		ConfirmationReceived: d.ConfirmationReceived,
		PaidAt:               d.PaidAt,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:            m.PaymentID,
		TenantID:             m.TenantID,
		Amount:               m.Amount,
		Month:                m.Month,
		DueDate:              m.DueDate,
		Paid:                 m.Paid,
		PartialAmountPaid:    m.PartialAmountPaid,
		GracePeriodDays:      m.GracePeriodDays,
		ConfirmationReceived: m.ConfirmationReceived,
		PaidAt:               m.PaidAt,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to a slice of domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}

// ToModelPaymentHistory converts a domain PaymentHistory to a model PaymentHistory
func ToModelPaymentHistory(d domain.PaymentHistory) models.PaymentHistory {
	return models.PaymentHistory{
		HistoryID: d.HistoryID,
		PaymentID: d.PaymentID,
		Amount:    d.Amount,
		PaidOn:    d.PaidOn,
		Method:    string(d.Method),
		Reference: d.Reference,
		CreatedAt: d.CreatedAt,
		CreatedBy: d.CreatedBy,
	}
}

// ToDomainPaymentHistory converts a model PaymentHistory to a domain PaymentHistory
func ToDomainPaymentHistory(m models.PaymentHistory) domain.PaymentHistory {
	return domain.PaymentHistory{
		HistoryID: m.HistoryID,
		PaymentID: m.PaymentID,
		Amount:    m.Amount,
		PaidOn:    m.PaidOn,
		Method:    domain.PaymentMethod(m.Method),
		Reference: m.Reference,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}

// ToModelPaymentConfirmation converts a domain PaymentConfirmation to its model
func ToModelPaymentConfirmation(d domain.PaymentConfirmation) models.PaymentConfirmation {
	return models.PaymentConfirmation(d)
}

// ToDomainPaymentConfirmation converts a model PaymentConfirmation to its domain type
func ToDomainPaymentConfirmation(m models.PaymentConfirmation) domain.PaymentConfirmation {
	return domain.PaymentConfirmation(m)
}
