package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/property_management_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DefaultGracePeriodDays is the grace period given to new payments.
const DefaultGracePeriodDays = 5

// DefaultLateFeeRate is the fraction of the payment amount charged per day late.
var DefaultLateFeeRate = decimal.RequireFromString("0.05")

// MoneyPlaces is the number of decimal places stored for currency amounts.
const MoneyPlaces = 2

// ValidateMoney rejects amounts that carry fractions of a cent. Trailing
// zeros beyond MoneyPlaces are accepted.
func ValidateMoney(d decimal.Decimal, field string) error {
	if !d.Equal(d.Round(MoneyPlaces)) {
		return fmt.Errorf("%w: %s must have at most %d decimal places", apperrors.ErrValidation, field, MoneyPlaces)
	}
	return nil
}

// OutstandingRent sums the amounts of all unpaid payments. It returns zero,
// never an absent value, when there are none.
func OutstandingRent(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if !p.Paid {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// ResolvePaymentAmount picks the billed amount for a new payment: the explicit
// amount when given, otherwise a snapshot of the house rent.
func ResolvePaymentAmount(explicit *decimal.Decimal, house House) (decimal.Decimal, error) {
	if explicit != nil {
		if !explicit.IsPositive() {
			return decimal.Zero, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
		}
		if err := ValidateMoney(*explicit, "payment amount"); err != nil {
			return decimal.Zero, err
		}
		return *explicit, nil
	}
	if !house.HasRent() {
		return decimal.Zero, fmt.Errorf("%w: house %s has no rent amount set", apperrors.ErrConfiguration, house.UnitNumber)
	}
	return house.RentAmount, nil
}

// ApplyPartialPayment accumulates amountPaid and recomputes Paid.
// PaidAt is stamped the first time the payment becomes paid.
func (p *Payment) ApplyPartialPayment(amountPaid decimal.Decimal, at time.Time) error {
	if !amountPaid.IsPositive() {
		return fmt.Errorf("%w: amount paid must be positive", apperrors.ErrValidation)
	}
	if err := ValidateMoney(amountPaid, "amount paid"); err != nil {
		return err
	}
	p.PartialAmountPaid = p.PartialAmountPaid.Add(amountPaid)
	wasPaid := p.Paid
	p.Paid = p.PartialAmountPaid.GreaterThanOrEqual(p.Amount)
	if p.Paid && !wasPaid {
		paidAt := at
		p.PaidAt = &paidAt
	}
	return nil
}

// RemainingAmount is what is still owed on the payment, never negative.
func (p Payment) RemainingAmount() decimal.Decimal {
	remaining := p.Amount.Sub(p.PartialAmountPaid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// DaysLate is the number of whole calendar days from due to asOf.
// It is negative when asOf is before the due date.
func DaysLate(due, asOf time.Time) int {
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	a := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	return int(a.Sub(d).Hours() / 24)
}

// LateFee is amount * rate * days late, or zero when paid or not yet due.
func LateFee(p Payment, asOf time.Time, dailyRate decimal.Decimal) decimal.Decimal {
	if p.Paid {
		return decimal.Zero
	}
	days := DaysLate(p.DueDate, asOf)
	if days <= 0 {
		return decimal.Zero
	}
	return p.Amount.Mul(dailyRate).Mul(decimal.NewFromInt(int64(days)))
}

// IsWithinGrace reports whether an unpaid payment is still inside its grace period.
func IsWithinGrace(p Payment, asOf time.Time) bool {
	return !p.Paid && DaysLate(p.DueDate, asOf) <= p.GracePeriodDays
}

// IsOverdue reports whether an unpaid payment is past its due date.
func IsOverdue(p Payment, asOf time.Time) bool {
	return !p.Paid && DaysLate(p.DueDate, asOf) > 0
}

// DueDateFor returns the due date for month of year on dueDay, clamped to the
// month's last day.
func DueDateFor(year, month, dueDay int) time.Time {
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if dueDay < 1 {
		dueDay = 1
	}
	if dueDay > lastDay {
		dueDay = lastDay
	}
	return time.Date(year, time.Month(month), dueDay, 0, 0, 0, 0, time.UTC)
}
