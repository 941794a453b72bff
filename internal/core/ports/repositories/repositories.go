package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager     TransactionManager
	BuildingRepo  BuildingRepositoryFacade
	HouseRepo     HouseRepositoryFacade
	TenantRepo    TenantRepositoryFacade
	PaymentRepo   PaymentRepositoryFacade
	ReportingRepo ReportingRepository
}
