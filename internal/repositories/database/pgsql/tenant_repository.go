package pgsql

import (
	"context"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/property_management_app/internal/models"
	"github.com/SscSPs/property_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const tenantColumns = `tenant_id, name, phone, email, id_number, house_id, is_active, balance, rent_due_day,
	created_at, created_by, last_updated_at, last_updated_by`

// tenantOrderings whitelists the ORDER BY clauses a caller may request.
var tenantOrderings = map[string]string{
	"":            "name ASC, tenant_id",
	"name":        "name ASC, tenant_id",
	"-name":       "name DESC, tenant_id",
	"created_at":  "created_at ASC, tenant_id",
	"-created_at": "created_at DESC, tenant_id",
}

// PgxTenantRepository implements portsrepo.TenantRepositoryFacade
type PgxTenantRepository struct {
	BaseRepository
}

func newPgxTenantRepository(pool *pgxpool.Pool) *PgxTenantRepository {
	return &PgxTenantRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTenantRepository implements portsrepo.TenantRepositoryFacade
var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

func (r *PgxTenantRepository) findTenant(ctx context.Context, q dbtx, query string, arg string) (*domain.Tenant, error) {
	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		return nil, mapError(err, "find tenant "+arg)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Tenant])
	if err != nil {
		return nil, mapError(err, "find tenant "+arg)
	}
	t := mapping.ToDomainTenant(m)
	return &t, nil
}

// FindTenantByID retrieves a tenant by ID.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	return r.findTenant(ctx, r.Pool, `SELECT `+tenantColumns+` FROM tenants WHERE tenant_id = $1`, tenantID)
}

// FindTenantByPhone retrieves a tenant by normalized phone.
func (r *PgxTenantRepository) FindTenantByPhone(ctx context.Context, phone string) (*domain.Tenant, error) {
	return r.findTenant(ctx, r.Pool, `SELECT `+tenantColumns+` FROM tenants WHERE phone = $1`, phone)
}

// FindTenantByIDForUpdate retrieves and locks a tenant row.
func (r *PgxTenantRepository) FindTenantByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID string) (*domain.Tenant, error) {
	return r.findTenant(ctx, tx, `SELECT `+tenantColumns+` FROM tenants WHERE tenant_id = $1 FOR UPDATE`, tenantID)
}

// ListTenants retrieves tenants matching the filter.
func (r *PgxTenantRepository) ListTenants(ctx context.Context, filter portsrepo.TenantFilter) ([]domain.Tenant, error) {
	orderBy, ok := tenantOrderings[filter.OrderBy]
	if !ok {
		orderBy = tenantOrderings[""]
	}

	var p placeholders
	if filter.IsActive != nil {
		p.add("is_active = ?", *filter.IsActive)
	}
	if filter.HouseID != nil {
		p.add("house_id = ?", *filter.HouseID)
	}
	if filter.Name != nil {
		p.add("name ILIKE '%' || ? || '%'", *filter.Name)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + tenantColumns + ` FROM tenants` + p.where() +
		` ORDER BY ` + orderBy + ` LIMIT ` + p.next(limit) + ` OFFSET ` + p.next(filter.Offset)

	rows, err := r.Pool.Query(ctx, query, p.args...)
	if err != nil {
		return nil, mapError(err, "list tenants")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Tenant])
	if err != nil {
		return nil, mapError(err, "scan tenants")
	}
	tenants := make([]domain.Tenant, len(ms))
	for i, m := range ms {
		tenants[i] = mapping.ToDomainTenant(m)
	}
	return tenants, nil
}

// CountActiveTenantsInTx counts active tenants of a house, optionally excluding one tenant.
func (r *PgxTenantRepository) CountActiveTenantsInTx(ctx context.Context, tx pgx.Tx, houseID string, excludeTenantID string) (int, error) {
	var n int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM tenants WHERE house_id = $1 AND is_active AND tenant_id <> $2`,
		houseID, excludeTenantID,
	).Scan(&n)
	if err != nil {
		return 0, mapError(err, "count active tenants of house "+houseID)
	}
	return n, nil
}

// SaveTenantInTx inserts a new tenant.
func (r *PgxTenantRepository) SaveTenantInTx(ctx context.Context, tx pgx.Tx, tenant domain.Tenant) error {
	m := mapping.ToModelTenant(tenant)
	query := `INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := tx.Exec(ctx, query,
		m.TenantID, m.Name, m.Phone, m.Email, m.IDNumber, m.HouseID, m.IsActive, m.Balance, m.RentDueDay,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save tenant")
}

// UpdateTenantInTx updates editable fields, house and active flag. The
// balance is owned by UpdateTenantBalanceInTx.
func (r *PgxTenantRepository) UpdateTenantInTx(ctx context.Context, tx pgx.Tx, tenant domain.Tenant) error {
	m := mapping.ToModelTenant(tenant)
	query := `
		UPDATE tenants
		SET name = $2, phone = $3, email = $4, id_number = $5, house_id = $6, is_active = $7, rent_due_day = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE tenant_id = $1`
	tag, err := tx.Exec(ctx, query,
		m.TenantID, m.Name, m.Phone, m.Email, m.IDNumber, m.HouseID, m.IsActive, m.RentDueDay,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return expectOne(tag, err, "update tenant "+m.TenantID)
}

// UpdateTenantBalanceInTx stores the recomputed outstanding rent.
func (r *PgxTenantRepository) UpdateTenantBalanceInTx(ctx context.Context, tx pgx.Tx, tenantID string, balance decimal.Decimal) error {
	tag, err := tx.Exec(ctx, `UPDATE tenants SET balance = $2 WHERE tenant_id = $1`, tenantID, balance)
	return expectOne(tag, err, "update balance of tenant "+tenantID)
}

// DeleteTenantInTx removes a tenant; payments cascade.
func (r *PgxTenantRepository) DeleteTenantInTx(ctx context.Context, tx pgx.Tx, tenantID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM tenants WHERE tenant_id = $1`, tenantID)
	return expectOne(tag, err, "delete tenant "+tenantID)
}
