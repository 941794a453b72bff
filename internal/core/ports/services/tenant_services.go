package services

import (
	"context"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/SscSPs/property_management_app/internal/dto"
	"github.com/shopspring/decimal"
)

// TenantReaderSvc defines read operations for tenant data
type TenantReaderSvc interface {
	GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// ListTenants filters by active flag, house and name, with the requested ordering.
	ListTenants(ctx context.Context, params dto.ListTenantsParams) ([]domain.Tenant, error)
}

// TenantWriterSvc defines write operations for tenant data.
// Every write recomputes the affected houses and buildings in the same transaction.
type TenantWriterSvc interface {
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, userID string) (*domain.Tenant, error)
	UpdateTenant(ctx context.Context, tenantID string, req dto.UpdateTenantRequest, userID string) (*domain.Tenant, error)
	DeleteTenant(ctx context.Context, tenantID string, userID string) error
}

// TenantCalculatorSvc defines calculation operations for tenant data
type TenantCalculatorSvc interface {
	// GetOutstandingRent sums the amounts of the tenant's unpaid payments.
	GetOutstandingRent(ctx context.Context, tenantID string) (decimal.Decimal, error)
}

// TenantSvcFacade combines all tenant-related service interfaces
type TenantSvcFacade interface {
	TenantReaderSvc
	TenantWriterSvc
	TenantCalculatorSvc
}
