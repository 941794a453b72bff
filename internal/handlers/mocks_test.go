package handlers_test

import (
	"context"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/SscSPs/property_management_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock BuildingService ---
type MockBuildingService struct {
	mock.Mock
}

func (m *MockBuildingService) GetBuildingByID(ctx context.Context, buildingID string) (*domain.Building, error) {
	args := m.Called(ctx, buildingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Building), args.Error(1)
}
func (m *MockBuildingService) ListBuildings(ctx context.Context, limit int, offset int) ([]domain.Building, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Building), args.Error(1)
}
func (m *MockBuildingService) CreateBuilding(ctx context.Context, req dto.CreateBuildingRequest, userID string) (*domain.Building, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Building), args.Error(1)
}
func (m *MockBuildingService) UpdateBuilding(ctx context.Context, buildingID string, req dto.UpdateBuildingRequest, userID string) (*domain.Building, error) {
	args := m.Called(ctx, buildingID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Building), args.Error(1)
}
func (m *MockBuildingService) DeleteBuilding(ctx context.Context, buildingID string, userID string) error {
	return m.Called(ctx, buildingID, userID).Error(0)
}
func (m *MockBuildingService) RecomputeBuilding(ctx context.Context, buildingID string, userID string) (*domain.Building, error) {
	args := m.Called(ctx, buildingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Building), args.Error(1)
}

var _ portssvc.BuildingSvcFacade = (*MockBuildingService)(nil)

// --- Mock HouseService ---
type MockHouseService struct {
	mock.Mock
}

func (m *MockHouseService) GetHouseByID(ctx context.Context, houseID string) (*domain.House, error) {
	args := m.Called(ctx, houseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.House), args.Error(1)
}
func (m *MockHouseService) ListHouses(ctx context.Context, params dto.ListHousesParams) ([]domain.House, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.House), args.Error(1)
}
func (m *MockHouseService) CreateHouse(ctx context.Context, req dto.CreateHouseRequest, userID string) (*domain.House, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.House), args.Error(1)
}
func (m *MockHouseService) UpdateHouse(ctx context.Context, houseID string, req dto.UpdateHouseRequest, userID string) (*domain.House, error) {
	args := m.Called(ctx, houseID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.House), args.Error(1)
}
func (m *MockHouseService) DeleteHouse(ctx context.Context, houseID string, userID string) error {
	return m.Called(ctx, houseID, userID).Error(0)
}

var _ portssvc.HouseSvcFacade = (*MockHouseService)(nil)

// --- Mock TenantService ---
type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}
func (m *MockTenantService) ListTenants(ctx context.Context, params dto.ListTenantsParams) ([]domain.Tenant, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenant), args.Error(1)
}
func (m *MockTenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, userID string) (*domain.Tenant, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}
func (m *MockTenantService) UpdateTenant(ctx context.Context, tenantID string, req dto.UpdateTenantRequest, userID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}
func (m *MockTenantService) DeleteTenant(ctx context.Context, tenantID string, userID string) error {
	return m.Called(ctx, tenantID, userID).Error(0)
}
func (m *MockTenantService) GetOutstandingRent(ctx context.Context, tenantID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.TenantSvcFacade = (*MockTenantService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) ListPayments(ctx context.Context, params dto.ListPaymentsParams) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, params)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Payment), next, args.Error(2)
}
func (m *MockPaymentService) ListPaymentHistory(ctx context.Context, paymentID string) ([]domain.PaymentHistory, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentHistory), args.Error(1)
}
func (m *MockPaymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) InitiatePayment(ctx context.Context, req dto.InitiatePaymentRequest, userID string) (*domain.PaymentCheckout, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentCheckout), args.Error(1)
}
func (m *MockPaymentService) ConfirmPayment(ctx context.Context, req dto.PaymentConfirmationRequest) (*domain.ConfirmationOutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConfirmationOutcome), args.Error(1)
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetPortfolioSummary(ctx context.Context) (*domain.PortfolioSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PortfolioSummary), args.Error(1)
}
func (m *MockReportingService) GetRentRoll(ctx context.Context) ([]domain.RentRollEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentRollEntry), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)
