package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/property_management_app/internal/apperrors"
	"github.com/SscSPs/property_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_management_app/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// balanceEngine owns payment status and the materialized tenant balance.
// Callers hold the tenant row lock for the whole transaction.
type balanceEngine struct {
	BaseService
	houses          portsrepo.HouseReader
	tenants         portsrepo.TenantRepositoryFacade
	payments        portsrepo.PaymentRepositoryFacade
	gracePeriodDays int
}

func newBalanceEngine(repos portsrepo.RepositoryProvider, gracePeriodDays int) *balanceEngine {
	return &balanceEngine{
		houses:          repos.HouseRepo,
		tenants:         repos.TenantRepo,
		payments:        repos.PaymentRepo,
		gracePeriodDays: gracePeriodDays,
	}
}

// billing describes a payment to open for a tenant's month.
type billing struct {
	Month           int
	Amount          *decimal.Decimal
	DueDate         *time.Time
	GracePeriodDays *int
}

// paymentEvent is one call to record_payment.
type paymentEvent struct {
	Month      int
	AmountPaid decimal.Decimal
	Method     domain.PaymentMethod
	Reference  string
	Confirmed  bool
	// Amount only applies when the month's record has to be created.
	Amount *decimal.Decimal
}

// newPayment builds the billing record of tenant for b. The amount is
// snapshotted from the house rent when not given explicitly.
func (e *balanceEngine) newPayment(ctx context.Context, tenant domain.Tenant, b billing, userID string, now time.Time) (domain.Payment, error) {
	if err := domain.ValidateMonth(b.Month); err != nil {
		return domain.Payment{}, err
	}
	house, err := e.houses.FindHouseByID(ctx, tenant.HouseID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("house of tenant %s: %w", tenant.TenantID, err)
	}
	amount, err := domain.ResolvePaymentAmount(b.Amount, *house)
	if err != nil {
		return domain.Payment{}, err
	}

	dueDate := domain.DueDateFor(now.Year(), b.Month, tenant.RentDueDay)
	if b.DueDate != nil {
		dueDate = *b.DueDate
	}
	grace := e.gracePeriodDays
	if b.GracePeriodDays != nil {
		grace = *b.GracePeriodDays
	}
	if grace < 0 {
		return domain.Payment{}, fmt.Errorf("%w: grace period must not be negative", apperrors.ErrValidation)
	}

	return domain.Payment{
		PaymentID:         uuid.NewString(),
		TenantID:          tenant.TenantID,
		Amount:            amount,
		Month:             b.Month,
		DueDate:           dueDate,
		PartialAmountPaid: decimal.Zero,
		GracePeriodDays:   grace,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}

// CreatePayment opens the billing record of tenant for a month. A second
// record for the same month is rejected by the store as a duplicate.
func (e *balanceEngine) CreatePayment(ctx context.Context, tx pgx.Tx, tenant domain.Tenant, b billing, userID string, now time.Time) (*domain.Payment, error) {
	p, err := e.newPayment(ctx, tenant, b, userID, now)
	if err != nil {
		return nil, err
	}
	if err := e.payments.SavePaymentInTx(ctx, tx, p); err != nil {
		return nil, err
	}
	if err := e.RefreshTenantBalance(ctx, tx, tenant.TenantID); err != nil {
		return nil, err
	}
	return &p, nil
}

// RecordPayment finds or creates the payment of (tenant, month), appends a
// ledger entry and re-derives Paid and the tenant balance.
func (e *balanceEngine) RecordPayment(ctx context.Context, tx pgx.Tx, tenant domain.Tenant, ev paymentEvent, userID string, now time.Time) (*domain.Payment, error) {
	if err := domain.ValidateMonth(ev.Month); err != nil {
		return nil, err
	}
	if !ev.Method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, ev.Method)
	}

	p, err := e.payments.FindPaymentByTenantMonthForUpdate(ctx, tx, tenant.TenantID, ev.Month)
	switch {
	case isNotFound(err):
		created, cerr := e.newPayment(ctx, tenant, billing{Month: ev.Month, Amount: ev.Amount}, userID, now)
		if cerr != nil {
			return nil, cerr
		}
		if cerr := e.payments.SavePaymentInTx(ctx, tx, created); cerr != nil {
			return nil, cerr
		}
		p = &created
	case err != nil:
		return nil, err
	}

	if err := p.ApplyPartialPayment(ev.AmountPaid, now); err != nil {
		return nil, err
	}
	if ev.Confirmed {
		p.ConfirmationReceived = true
	}
	p.LastUpdatedAt = now
	p.LastUpdatedBy = userID
	if err := e.payments.UpdatePaymentProgressInTx(ctx, tx, *p); err != nil {
		return nil, err
	}

	entry := domain.PaymentHistory{
		HistoryID: uuid.NewString(),
		PaymentID: p.PaymentID,
		Amount:    ev.AmountPaid,
		PaidOn:    now,
		Method:    ev.Method,
		Reference: ev.Reference,
		CreatedAt: now,
		CreatedBy: userID,
	}
	if err := e.payments.SavePaymentHistoryInTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := e.RefreshTenantBalance(ctx, tx, tenant.TenantID); err != nil {
		return nil, err
	}
	return p, nil
}

// RefreshTenantBalance stores OutstandingRent as the tenant's balance.
func (e *balanceEngine) RefreshTenantBalance(ctx context.Context, tx pgx.Tx, tenantID string) error {
	payments, err := e.payments.ListPaymentsByTenantInTx(ctx, tx, tenantID)
	if err != nil {
		return err
	}
	return e.tenants.UpdateTenantBalanceInTx(ctx, tx, tenantID, domain.OutstandingRent(payments))
}
