package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/property_management_app/internal/apperrors"
	"github.com/SscSPs/property_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/SscSPs/property_management_app/internal/dto"
	"github.com/SscSPs/property_management_app/internal/platform/metrics"
	"github.com/SscSPs/property_management_app/internal/utils"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// webhookUserID is recorded as the author of gateway-driven changes.
const webhookUserID = "payment-gateway"

// errConfirmationExists aborts the transaction of a confirmation that lost the insert race.
var errConfirmationExists = errors.New("confirmation already recorded")

// paymentService implements the PaymentSvcFacade interface
type paymentService struct {
	BaseService
	txm         portsrepo.TransactionManager
	tenants     portsrepo.TenantRepositoryFacade
	payments    portsrepo.PaymentRepositoryFacade
	balance     *balanceEngine
	phoneRegion string
	notifier    portssvc.Notifier
	gateway     portssvc.PaymentGateway
	cache       portssvc.ProcessedReferenceCache
	metrics     *metrics.Business
}

// NewPaymentService creates a new payment service.
func NewPaymentService(repos portsrepo.RepositoryProvider, settings PaymentSettings, integrations PaymentIntegrations, options ...Option) portssvc.PaymentSvcFacade {
	o := applyOptions(options)
	svc := &paymentService{
		BaseService: BaseService{Now: o.now},
		txm:         repos.TxManager,
		tenants:     repos.TenantRepo,
		payments:    repos.PaymentRepo,
		balance:     newBalanceEngine(repos, settings.GracePeriodDays),
		phoneRegion: settings.PhoneRegion,
		notifier:    integrations.Notifier,
		gateway:     integrations.Gateway,
		cache:       integrations.Cache,
		metrics:     o.metrics,
	}
	svc.balance.Now = o.now
	return svc
}

// Ensure paymentService implements the PaymentSvcFacade interface
var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	p, err := s.payments.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !isNotFound(err) {
			s.LogError(ctx, err, "Failed to find payment by ID", slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return p, nil
}

func (s *paymentService) ListPayments(ctx context.Context, params dto.ListPaymentsParams) ([]domain.Payment, *string, error) {
	filter := portsrepo.PaymentFilter{
		Paid:      params.Paid,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if params.TenantID != "" {
		filter.TenantID = &params.TenantID
	}

	payments, next, err := s.payments.ListPayments(ctx, filter)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list payments")
		}
		return nil, nil, err
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, next, nil
}

func (s *paymentService) ListPaymentHistory(ctx context.Context, paymentID string) ([]domain.PaymentHistory, error) {
	if _, err := s.payments.FindPaymentByID(ctx, paymentID); err != nil {
		return nil, err
	}
	entries, err := s.payments.ListPaymentHistory(ctx, paymentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payment history", slog.String("payment_id", paymentID))
		return nil, err
	}
	if entries == nil {
		return []domain.PaymentHistory{}, nil
	}
	return entries, nil
}

func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error) {
	b := billing{
		Month:           req.Month,
		Amount:          req.Amount,
		GracePeriodDays: req.GracePeriodDays,
	}
	if req.DueDate != nil {
		due, err := time.Parse(time.DateOnly, *req.DueDate)
		if err != nil {
			return nil, validationf("due date must be formatted as YYYY-MM-DD")
		}
		b.DueDate = &due
	}

	now := s.CurrentTime()
	var created *domain.Payment
	err := s.WithTransaction(ctx, s.txm, func(tx pgx.Tx) error {
		tenant, err := s.tenants.FindTenantByIDForUpdate(ctx, tx, req.TenantID)
		if err != nil {
			return err
		}
		created, err = s.balance.CreatePayment(ctx, tx, *tenant, b, userID, now)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create payment",
			slog.String("tenant_id", req.TenantID),
			slog.Int("month", req.Month))
		return nil, err
	}

	s.LogInfo(ctx, "Payment created successfully",
		slog.String("payment_id", created.PaymentID),
		slog.String("tenant_id", created.TenantID),
		slog.String("amount", created.Amount.String()))
	return created, nil
}

func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error) {
	ev := paymentEvent{
		Month:      req.Month,
		AmountPaid: req.AmountPaid,
		Method:     domain.PaymentMethod(req.Method),
		Reference:  strings.TrimSpace(req.Reference),
		Amount:     req.Amount,
	}

	now := s.CurrentTime()
	var (
		recorded *domain.Payment
		tenant   *domain.Tenant
	)
	err := s.WithTransaction(ctx, s.txm, func(tx pgx.Tx) error {
		var err error
		tenant, err = s.tenants.FindTenantByIDForUpdate(ctx, tx, req.TenantID)
		if err != nil {
			return err
		}
		recorded, err = s.balance.RecordPayment(ctx, tx, *tenant, ev, userID, now)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record payment",
			slog.String("tenant_id", req.TenantID),
			slog.Int("month", req.Month))
		return nil, err
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", recorded.PaymentID),
		slog.String("amount_paid", ev.AmountPaid.String()),
		slog.Bool("paid", recorded.Paid))
	s.afterRecorded(ctx, *tenant, *recorded, ev, now)
	return recorded, nil
}

// InitiatePayment pushes a collection prompt to the tenant's phone. The
// account reference lets the confirmation find the tenant and month again.
func (s *paymentService) InitiatePayment(ctx context.Context, req dto.InitiatePaymentRequest, userID string) (*domain.PaymentCheckout, error) {
	if s.gateway == nil {
		return nil, fmt.Errorf("%w: no payment gateway configured", apperrors.ErrConfiguration)
	}
	if err := domain.ValidateMonth(req.Month); err != nil {
		return nil, err
	}

	tenant, err := s.tenants.FindTenantByID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive {
		return nil, fmt.Errorf("%w: tenant %s is not active", apperrors.ErrConflict, tenant.TenantID)
	}

	amount, err := s.checkoutAmount(ctx, *tenant, req)
	if err != nil {
		return nil, err
	}

	accountRef := accountReference(tenant.TenantID, req.Month)
	result, err := s.gateway.InitiateCheckout(ctx, portssvc.CheckoutRequest{
		Phone:            tenant.Phone,
		Amount:           amount,
		AccountReference: accountRef,
		Description:      fmt.Sprintf("Rent for %s", time.Month(req.Month)),
	})
	if err != nil {
		s.LogError(ctx, err, "Payment gateway rejected checkout", slog.String("tenant_id", tenant.TenantID))
		return nil, apperrors.NewAppError(http.StatusBadGateway, "payment gateway request failed", err)
	}

	s.LogInfo(ctx, "Payment checkout initiated",
		slog.String("tenant_id", tenant.TenantID),
		slog.String("checkout_reference", result.CheckoutReference),
		slog.String("initiated_by", userID))
	return &domain.PaymentCheckout{
		CheckoutReference: result.CheckoutReference,
		AccountReference:  accountRef,
		Amount:            amount,
		Status:            result.Status,
	}, nil
}

// checkoutAmount is the explicit amount, else what remains on the month, else the house rent.
func (s *paymentService) checkoutAmount(ctx context.Context, tenant domain.Tenant, req dto.InitiatePaymentRequest) (decimal.Decimal, error) {
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return decimal.Zero, validationf("amount must be positive")
		}
		if err := domain.ValidateMoney(*req.Amount, "amount"); err != nil {
			return decimal.Zero, err
		}
		return *req.Amount, nil
	}

	existing, err := s.payments.FindPaymentByTenantMonth(ctx, tenant.TenantID, req.Month)
	switch {
	case err == nil:
		if existing.Paid {
			return decimal.Zero, fmt.Errorf("%w: %s rent is already paid", apperrors.ErrConflict, existing.MonthName())
		}
		return existing.RemainingAmount(), nil
	case !isNotFound(err):
		return decimal.Zero, err
	}

	house, err := s.balance.houses.FindHouseByID(ctx, tenant.HouseID)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.ResolvePaymentAmount(nil, *house)
}

// ConfirmPayment applies a gateway confirmation. Redelivered transaction
// references are acknowledged as duplicates without touching any balance.
func (s *paymentService) ConfirmPayment(ctx context.Context, req dto.PaymentConfirmationRequest) (*domain.ConfirmationOutcome, error) {
	ref := strings.TrimSpace(req.TransactionReference)
	if ref == "" {
		return nil, validationf("transaction reference is required")
	}
	if !req.Amount.IsPositive() {
		return nil, validationf("amount must be positive")
	}
	if err := domain.ValidateMoney(req.Amount, "amount"); err != nil {
		return nil, err
	}

	if s.maybeProcessed(ctx, ref) {
		if outcome, ok := s.knownConfirmation(ctx, ref); ok {
			return outcome, nil
		}
	}

	tenantID, month, err := s.resolveConfirmationTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	now := s.CurrentTime()
	var (
		recorded *domain.Payment
		tenant   *domain.Tenant
		ev       paymentEvent
	)
	err = s.WithTransaction(ctx, s.txm, func(tx pgx.Tx) error {
		var err error
		tenant, err = s.tenants.FindTenantByIDForUpdate(ctx, tx, tenantID)
		if err != nil {
			return err
		}
		if month == 0 {
			month, err = s.oldestUnpaidMonth(ctx, tx, tenantID, now)
			if err != nil {
				return err
			}
		}
		ev = paymentEvent{
			Month:      month,
			AmountPaid: req.Amount,
			Method:     domain.MethodMobileMoney,
			Reference:  ref,
			Confirmed:  true,
		}
		recorded, err = s.balance.RecordPayment(ctx, tx, *tenant, ev, webhookUserID, now)
		if err != nil {
			return err
		}
		inserted, err := s.payments.SaveConfirmationInTx(ctx, tx, domain.PaymentConfirmation{
			TransactionReference: ref,
			PaymentID:            recorded.PaymentID,
			TenantID:             tenantID,
			Amount:               req.Amount,
			Payer:                req.Payer,
			ReceivedAt:           now,
		})
		if err != nil {
			return err
		}
		if !inserted {
			return errConfirmationExists
		}
		return nil
	})
	if errors.Is(err, errConfirmationExists) {
		if outcome, ok := s.knownConfirmation(ctx, ref); ok {
			return outcome, nil
		}
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrConflict, ref)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to apply payment confirmation", slog.String("transaction_reference", ref))
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.MarkProcessed(ctx, ref); err != nil {
			s.LogError(ctx, err, "Failed to cache processed reference", slog.String("transaction_reference", ref))
		}
	}
	s.metrics.WebhookConfirmation(false)
	s.LogInfo(ctx, "Payment confirmation applied",
		slog.String("transaction_reference", ref),
		slog.String("payment_id", recorded.PaymentID),
		slog.Bool("paid", recorded.Paid))
	s.afterRecorded(ctx, *tenant, *recorded, ev, now)
	return &domain.ConfirmationOutcome{Payment: recorded}, nil
}

// maybeProcessed consults the reference cache. A miss is trusted; hits and
// cache failures fall through to the stored confirmations.
func (s *paymentService) maybeProcessed(ctx context.Context, ref string) bool {
	if s.cache == nil {
		return true
	}
	seen, err := s.cache.Seen(ctx, ref)
	if err != nil {
		s.LogError(ctx, err, "Reference cache lookup failed", slog.String("transaction_reference", ref))
		return true
	}
	return seen
}

// knownConfirmation returns the outcome of an already processed reference.
func (s *paymentService) knownConfirmation(ctx context.Context, ref string) (*domain.ConfirmationOutcome, bool) {
	confirmation, err := s.payments.FindConfirmation(ctx, ref)
	if err != nil {
		if !isNotFound(err) {
			s.LogError(ctx, err, "Failed to look up confirmation", slog.String("transaction_reference", ref))
		}
		return nil, false
	}
	p, err := s.payments.FindPaymentByID(ctx, confirmation.PaymentID)
	if err != nil {
		s.LogError(ctx, err, "Confirmation points at a missing payment", slog.String("payment_id", confirmation.PaymentID))
		return nil, false
	}

	s.metrics.WebhookConfirmation(true)
	s.LogInfo(ctx, "Duplicate payment confirmation ignored", slog.String("transaction_reference", ref))
	return &domain.ConfirmationOutcome{Payment: p, Duplicate: true}, true
}

// resolveConfirmationTarget finds the tenant, and the month when the account
// reference carries one. Month 0 means the month is decided in the transaction.
func (s *paymentService) resolveConfirmationTarget(ctx context.Context, req dto.PaymentConfirmationRequest) (string, int, error) {
	if tenantID, month, ok := parseAccountReference(req.AccountReference); ok {
		return tenantID, month, nil
	}

	phone, err := utils.NormalizePhone(req.Payer, s.phoneRegion)
	if err != nil {
		return "", 0, err
	}
	tenant, err := s.tenants.FindTenantByPhone(ctx, phone)
	if err != nil {
		return "", 0, fmt.Errorf("payer %s: %w", phone, err)
	}
	return tenant.TenantID, 0, nil
}

// oldestUnpaidMonth picks the earliest unpaid month, or the current month when everything is settled.
func (s *paymentService) oldestUnpaidMonth(ctx context.Context, tx pgx.Tx, tenantID string, now time.Time) (int, error) {
	p, err := s.payments.FindOldestUnpaidPaymentInTx(ctx, tx, tenantID)
	switch {
	case err == nil:
		return p.Month, nil
	case isNotFound(err):
		return int(now.Month()), nil
	default:
		return 0, err
	}
}

// afterRecorded runs the post-commit side effects of a payment event.
func (s *paymentService) afterRecorded(ctx context.Context, tenant domain.Tenant, p domain.Payment, ev paymentEvent, now time.Time) {
	s.metrics.PaymentRecorded(string(ev.Method), ev.AmountPaid.InexactFloat64())
	if s.notifier == nil {
		return
	}
	event := domain.PaymentRecordedEvent{
		PaymentID:   p.PaymentID,
		TenantID:    tenant.TenantID,
		TenantName:  tenant.Name,
		TenantEmail: tenant.Email,
		TenantPhone: tenant.Phone,
		Month:       p.Month,
		AmountPaid:  ev.AmountPaid,
		Remaining:   p.RemainingAmount(),
		Paid:        p.Paid,
		Method:      ev.Method,
		Reference:   ev.Reference,
		RecordedAt:  now,
	}
	if err := s.notifier.NotifyPaymentRecorded(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to send payment notification", slog.String("payment_id", p.PaymentID))
	}
}

func accountReference(tenantID string, month int) string {
	return fmt.Sprintf("%s:%d", tenantID, month)
}

// parseAccountReference splits "<tenantID>:<month>".
func parseAccountReference(ref string) (string, int, bool) {
	idx := strings.LastIndex(ref, ":")
	if idx <= 0 {
		return "", 0, false
	}
	month, err := strconv.Atoi(ref[idx+1:])
	if err != nil || domain.ValidateMonth(month) != nil {
		return "", 0, false
	}
	return ref[:idx], month, true
}
