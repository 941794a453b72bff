package repositories

import (
	"context"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TenantFilter narrows and orders a tenant listing.
type TenantFilter struct {
	IsActive *bool
	HouseID  *string
	Name     *string
	// OrderBy is one of name, -name, created_at, -created_at.
	OrderBy string
	Limit   int
	Offset  int
}

// TenantReader defines read operations for tenant data
type TenantReader interface {
	// FindTenantByID retrieves a tenant by its unique identifier.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// FindTenantByPhone retrieves a tenant by normalized phone number.
	FindTenantByPhone(ctx context.Context, phone string) (*domain.Tenant, error)

	// ListTenants retrieves tenants matching the filter.
	ListTenants(ctx context.Context, filter TenantFilter) ([]domain.Tenant, error)
}

// TenantTransactionSupport defines tenant operations that run inside a transaction
type TenantTransactionSupport interface {
	// FindTenantByIDForUpdate selects a tenant and locks its row.
	FindTenantByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID string) (*domain.Tenant, error)

	// CountActiveTenantsInTx counts active tenants of a house, excluding excludeTenantID when non-empty.
	CountActiveTenantsInTx(ctx context.Context, tx pgx.Tx, houseID string, excludeTenantID string) (int, error)

	// SaveTenantInTx persists a new tenant.
	SaveTenantInTx(ctx context.Context, tx pgx.Tx, tenant domain.Tenant) error

	// UpdateTenantInTx updates a tenant's editable fields, house and active flag.
	UpdateTenantInTx(ctx context.Context, tx pgx.Tx, tenant domain.Tenant) error

	// UpdateTenantBalanceInTx stores the recomputed outstanding balance.
	UpdateTenantBalanceInTx(ctx context.Context, tx pgx.Tx, tenantID string, balance decimal.Decimal) error

	// DeleteTenantInTx removes a tenant; payments cascade.
	DeleteTenantInTx(ctx context.Context, tx pgx.Tx, tenantID string) error
}

// TenantRepositoryFacade combines all tenant-related repository interfaces
type TenantRepositoryFacade interface {
	TenantReader
	TenantTransactionSupport
}
