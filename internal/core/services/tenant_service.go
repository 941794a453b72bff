package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/SscSPs/property_management_app/internal/dto"
	"github.com/SscSPs/property_management_app/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// tenantService implements the TenantSvcFacade interface
type tenantService struct {
	BaseService
	txm         portsrepo.TransactionManager
	tenants     portsrepo.TenantRepositoryFacade
	payments    portsrepo.PaymentReader
	occupancy   *occupancyEngine
	phoneRegion string
}

// NewTenantService creates a new tenant service. Phones are normalized in
// the context of phoneRegion.
func NewTenantService(repos portsrepo.RepositoryProvider, policy domain.OccupancyPolicy, phoneRegion string, options ...Option) portssvc.TenantSvcFacade {
	o := applyOptions(options)
	return &tenantService{
		BaseService: BaseService{Now: o.now},
		txm:         repos.TxManager,
		tenants:     repos.TenantRepo,
		payments:    repos.PaymentRepo,
		occupancy:   newOccupancyEngine(policy, repos, o.metrics),
		phoneRegion: phoneRegion,
	}
}

// Ensure tenantService implements the TenantSvcFacade interface
var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

func (s *tenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, userID string) (*domain.Tenant, error) {
	phone, err := utils.NormalizePhone(req.Phone, s.phoneRegion)
	if err != nil {
		return nil, err
	}

	now := s.CurrentTime()
	tenant := domain.Tenant{
		TenantID:   uuid.NewString(),
		Name:       strings.TrimSpace(req.Name),
		Phone:      phone,
		Email:      strings.TrimSpace(req.Email),
		IDNumber:   strings.TrimSpace(req.IDNumber),
		HouseID:    req.HouseID,
		IsActive:   true,
		Balance:    decimal.Zero,
		RentDueDay: 1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.IsActive != nil {
		tenant.IsActive = *req.IsActive
	}
	if req.RentDueDay != nil {
		tenant.RentDueDay = *req.RentDueDay
	}
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	err = s.WithTransaction(ctx, s.txm, func(tx pgx.Tx) error {
		return s.occupancy.OnTenantCreated(ctx, tx, tenant, userID, now)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create tenant", slog.String("house_id", tenant.HouseID))
		return nil, err
	}

	s.LogInfo(ctx, "Tenant created successfully",
		slog.String("tenant_id", tenant.TenantID),
		slog.String("house_id", tenant.HouseID))
	return &tenant, nil
}

func (s *tenantService) GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	tenant, err := s.tenants.FindTenantByID(ctx, tenantID)
	if err != nil {
		if !isNotFound(err) {
			s.LogError(ctx, err, "Failed to find tenant by ID", slog.String("tenant_id", tenantID))
		}
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) ListTenants(ctx context.Context, params dto.ListTenantsParams) ([]domain.Tenant, error) {
	filter := portsrepo.TenantFilter{
		IsActive: params.Active,
		OrderBy:  params.Ordering,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}
	if params.HouseID != "" {
		filter.HouseID = &params.HouseID
	}
	if name := strings.TrimSpace(params.Name); name != "" {
		filter.Name = &name
	}

	tenants, err := s.tenants.ListTenants(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tenants")
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	if tenants == nil {
		return []domain.Tenant{}, nil
	}
	return tenants, nil
}

// UpdateTenant applies field edits, activation changes and house moves as one
// occupancy change, so both the old and the new house are recomputed.
func (s *tenantService) UpdateTenant(ctx context.Context, tenantID string, req dto.UpdateTenantRequest, userID string) (*domain.Tenant, error) {
	before, err := s.tenants.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	after := *before
	if req.Name != nil {
		after.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		phone, err := utils.NormalizePhone(*req.Phone, s.phoneRegion)
		if err != nil {
			return nil, err
		}
		after.Phone = phone
	}
	if req.Email != nil {
		after.Email = strings.TrimSpace(*req.Email)
	}
	if req.IDNumber != nil {
		after.IDNumber = strings.TrimSpace(*req.IDNumber)
	}
	if req.HouseID != nil {
		after.HouseID = *req.HouseID
	}
	if req.IsActive != nil {
		after.IsActive = *req.IsActive
	}
	if req.RentDueDay != nil {
		after.RentDueDay = *req.RentDueDay
	}
	if err := after.Validate(); err != nil {
		return nil, err
	}

	now := s.CurrentTime()
	after.LastUpdatedAt = now
	after.LastUpdatedBy = userID

	err = s.WithTransaction(ctx, s.txm, func(tx pgx.Tx) error {
		return s.occupancy.OnTenantUpdated(ctx, tx, *before, after, userID, now)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update tenant", slog.String("tenant_id", tenantID))
		return nil, err
	}

	s.LogInfo(ctx, "Tenant updated successfully",
		slog.String("tenant_id", tenantID),
		slog.Bool("is_active", after.IsActive),
		slog.String("house_id", after.HouseID))
	return &after, nil
}

func (s *tenantService) DeleteTenant(ctx context.Context, tenantID string, userID string) error {
	tenant, err := s.tenants.FindTenantByID(ctx, tenantID)
	if err != nil {
		return err
	}

	err = s.WithTransaction(ctx, s.txm, func(tx pgx.Tx) error {
		return s.occupancy.OnTenantRemoved(ctx, tx, *tenant, userID, s.CurrentTime())
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete tenant", slog.String("tenant_id", tenantID))
		return err
	}

	s.LogInfo(ctx, "Tenant deleted", slog.String("tenant_id", tenantID), slog.String("house_id", tenant.HouseID))
	return nil
}

func (s *tenantService) GetOutstandingRent(ctx context.Context, tenantID string) (decimal.Decimal, error) {
	if _, err := s.tenants.FindTenantByID(ctx, tenantID); err != nil {
		return decimal.Zero, err
	}
	payments, err := s.payments.ListPaymentsByTenant(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tenant payments", slog.String("tenant_id", tenantID))
		return decimal.Zero, err
	}
	return domain.OutstandingRent(payments), nil
}
