package services

import (
	"github.com/SscSPs/property_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/SscSPs/property_management_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, integrations PaymentIntegrations, options ...Option) *portssvc.ServiceContainer {
	policy := domain.OccupancyPolicy{AllowSharedHouses: cfg.AllowSharedHouses}

	return &portssvc.ServiceContainer{
		Building: NewBuildingService(repos, policy, options...),
		House:    NewHouseService(repos, policy, options...),
		Tenant:   NewTenantService(repos, policy, cfg.PhoneDefaultRegion, options...),
		Payment: NewPaymentService(repos, PaymentSettings{
			GracePeriodDays: cfg.DefaultGracePeriodDays,
			PhoneRegion:     cfg.PhoneDefaultRegion,
		}, integrations, options...),
		Reporting: NewReportingService(repos.ReportingRepo, options...),
	}
}
