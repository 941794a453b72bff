package pgsql

import (
	portsrepo "github.com/SscSPs/property_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository to the same pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     &BaseRepository{Pool: dbPool},
		BuildingRepo:  newPgxBuildingRepository(dbPool),
		HouseRepo:     newPgxHouseRepository(dbPool),
		TenantRepo:    newPgxTenantRepository(dbPool),
		PaymentRepo:   newPgxPaymentRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
