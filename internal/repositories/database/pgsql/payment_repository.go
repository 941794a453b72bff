package pgsql

import (
	"context"
	"net/http"

	"github.com/SscSPs/property_management_app/internal/apperrors"
	"github.com/SscSPs/property_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/property_management_app/internal/models"
	"github.com/SscSPs/property_management_app/internal/utils/mapping"
	"github.com/SscSPs/property_management_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `payment_id, tenant_id, amount, month, due_date, paid, partial_amount_paid, grace_period_days,
	confirmation_received, paid_at, created_at, created_by, last_updated_at, last_updated_by`

// paymentOrder is the stable order used by listings and their cursors.
const paymentOrder = ` ORDER BY due_date DESC, created_at DESC, payment_id DESC`

// PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) *PgxPaymentRepository {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func collectPayments(rows pgx.Rows, action string) ([]domain.Payment, error) {
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Payment])
	if err != nil {
		return nil, mapError(err, action)
	}
	return mapping.ToDomainPaymentSlice(ms), nil
}

func (r *PgxPaymentRepository) findPayment(ctx context.Context, q dbtx, action, query string, args ...any) (*domain.Payment, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, action)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Payment])
	if err != nil {
		return nil, mapError(err, action)
	}
	p := mapping.ToDomainPayment(m)
	return &p, nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return r.findPayment(ctx, r.Pool, "find payment "+paymentID,
		`SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1`, paymentID)
}

// FindPaymentByTenantMonth retrieves the payment of a tenant for a month.
func (r *PgxPaymentRepository) FindPaymentByTenantMonth(ctx context.Context, tenantID string, month int) (*domain.Payment, error) {
	return r.findPayment(ctx, r.Pool, "find payment of tenant "+tenantID,
		`SELECT `+paymentColumns+` FROM payments WHERE tenant_id = $1 AND month = $2`, tenantID, month)
}

// FindPaymentByTenantMonthForUpdate retrieves and locks the payment of a tenant for a month.
func (r *PgxPaymentRepository) FindPaymentByTenantMonthForUpdate(ctx context.Context, tx pgx.Tx, tenantID string, month int) (*domain.Payment, error) {
	return r.findPayment(ctx, tx, "lock payment of tenant "+tenantID,
		`SELECT `+paymentColumns+` FROM payments WHERE tenant_id = $1 AND month = $2 FOR UPDATE`, tenantID, month)
}

// FindOldestUnpaidPaymentInTx retrieves and locks the unpaid payment with the earliest due date.
func (r *PgxPaymentRepository) FindOldestUnpaidPaymentInTx(ctx context.Context, tx pgx.Tx, tenantID string) (*domain.Payment, error) {
	return r.findPayment(ctx, tx, "find oldest unpaid payment of tenant "+tenantID,
		`SELECT `+paymentColumns+` FROM payments WHERE tenant_id = $1 AND NOT paid
		 ORDER BY due_date ASC, created_at ASC LIMIT 1 FOR UPDATE`, tenantID)
}

// ListPayments retrieves a page of payments using token-based pagination.
// The token points at the last row of the previous page.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, filter portsrepo.PaymentFilter) ([]domain.Payment, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells whether there is a next page.
	fetchLimit := limit + 1

	var p placeholders
	if filter.TenantID != nil {
		p.add("tenant_id = ?", *filter.TenantID)
	}
	if filter.Paid != nil {
		p.add("paid = ?", *filter.Paid)
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursor, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", validationError(err))
		}
		p.conds = append(p.conds, "(due_date, created_at, payment_id) < ("+
			p.next(cursor.DueDate)+"::date, "+p.next(cursor.CreatedAt)+", "+p.next(cursor.ID)+")")
	}
	query := `SELECT ` + paymentColumns + ` FROM payments` + p.where() + paymentOrder + ` LIMIT ` + p.next(fetchLimit)

	rows, err := r.Pool.Query(ctx, query, p.args...)
	if err != nil {
		return nil, nil, mapError(err, "list payments")
	}
	payments, err := collectPayments(rows, "scan payments")
	if err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(payments) > limit {
		last := payments[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{DueDate: last.DueDate, CreatedAt: last.CreatedAt, ID: last.PaymentID})
		nextToken = &token
		payments = payments[:limit]
	}
	return payments, nextToken, nil
}

// ListPaymentsByTenant returns every payment of a tenant.
func (r *PgxPaymentRepository) ListPaymentsByTenant(ctx context.Context, tenantID string) ([]domain.Payment, error) {
	return r.listByTenant(ctx, r.Pool, tenantID)
}

// ListPaymentsByTenantInTx returns every payment of a tenant as seen by tx.
func (r *PgxPaymentRepository) ListPaymentsByTenantInTx(ctx context.Context, tx pgx.Tx, tenantID string) ([]domain.Payment, error) {
	return r.listByTenant(ctx, tx, tenantID)
}

func (r *PgxPaymentRepository) listByTenant(ctx context.Context, q dbtx, tenantID string) ([]domain.Payment, error) {
	rows, err := q.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE tenant_id = $1`+paymentOrder, tenantID)
	if err != nil {
		return nil, mapError(err, "list payments of tenant "+tenantID)
	}
	return collectPayments(rows, "scan payments")
}

// SavePaymentInTx inserts a new payment.
func (r *PgxPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := tx.Exec(ctx, query,
		m.PaymentID, m.TenantID, m.Amount, m.Month, m.DueDate, m.Paid, m.PartialAmountPaid, m.GracePeriodDays,
		m.ConfirmationReceived, m.PaidAt, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save payment")
}

// UpdatePaymentProgressInTx stores the accumulated amount and derived status.
// Amount is immutable after creation and is not written.
func (r *PgxPaymentRepository) UpdatePaymentProgressInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		UPDATE payments
		SET partial_amount_paid = $2, paid = $3, paid_at = $4, confirmation_received = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE payment_id = $1`
	tag, err := tx.Exec(ctx, query,
		m.PaymentID, m.PartialAmountPaid, m.Paid, m.PaidAt, m.ConfirmationReceived, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return expectOne(tag, err, "update payment "+m.PaymentID)
}

// SavePaymentHistoryInTx appends a ledger entry.
func (r *PgxPaymentRepository) SavePaymentHistoryInTx(ctx context.Context, tx pgx.Tx, entry domain.PaymentHistory) error {
	m := mapping.ToModelPaymentHistory(entry)
	query := `
		INSERT INTO payment_history (history_id, payment_id, amount, paid_on, method, reference, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := tx.Exec(ctx, query, m.HistoryID, m.PaymentID, m.Amount, m.PaidOn, m.Method, m.Reference, m.CreatedAt, m.CreatedBy)
	return mapError(err, "save payment history")
}

// ListPaymentHistory returns the ledger entries of a payment in insertion order.
func (r *PgxPaymentRepository) ListPaymentHistory(ctx context.Context, paymentID string) ([]domain.PaymentHistory, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT history_id, payment_id, amount, paid_on, method, reference, created_at, created_by
		FROM payment_history WHERE payment_id = $1 ORDER BY created_at, history_id`, paymentID)
	if err != nil {
		return nil, mapError(err, "list history of payment "+paymentID)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PaymentHistory])
	if err != nil {
		return nil, mapError(err, "scan payment history")
	}
	entries := make([]domain.PaymentHistory, len(ms))
	for i, m := range ms {
		entries[i] = mapping.ToDomainPaymentHistory(m)
	}
	return entries, nil
}

// SaveConfirmationInTx records a gateway confirmation, reporting false when
// the transaction reference is already known.
func (r *PgxPaymentRepository) SaveConfirmationInTx(ctx context.Context, tx pgx.Tx, confirmation domain.PaymentConfirmation) (bool, error) {
	m := mapping.ToModelPaymentConfirmation(confirmation)
	tag, err := tx.Exec(ctx, `
		INSERT INTO payment_confirmations (transaction_reference, payment_id, tenant_id, amount, payer, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (transaction_reference) DO NOTHING`,
		m.TransactionReference, m.PaymentID, m.TenantID, m.Amount, m.Payer, m.ReceivedAt,
	)
	if err != nil {
		return false, mapError(err, "save confirmation "+m.TransactionReference)
	}
	return tag.RowsAffected() == 1, nil
}

// FindConfirmation retrieves a processed confirmation by transaction reference.
func (r *PgxPaymentRepository) FindConfirmation(ctx context.Context, transactionReference string) (*domain.PaymentConfirmation, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT transaction_reference, payment_id, tenant_id, amount, payer, received_at
		FROM payment_confirmations WHERE transaction_reference = $1`, transactionReference)
	if err != nil {
		return nil, mapError(err, "find confirmation "+transactionReference)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.PaymentConfirmation])
	if err != nil {
		return nil, mapError(err, "find confirmation "+transactionReference)
	}
	c := mapping.ToDomainPaymentConfirmation(m)
	return &c, nil
}
