package repositories

import (
	"context"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// BuildingReader defines read operations for building data
type BuildingReader interface {
	// FindBuildingByID retrieves a building by its unique identifier.
	FindBuildingByID(ctx context.Context, buildingID string) (*domain.Building, error)

	// ListBuildings retrieves a paginated list of buildings ordered by name.
	ListBuildings(ctx context.Context, limit int, offset int) ([]domain.Building, error)
}

// BuildingTransactionSupport defines building operations that run inside a transaction
type BuildingTransactionSupport interface {
	// SaveBuildingInTx persists a new building.
	SaveBuildingInTx(ctx context.Context, tx pgx.Tx, building domain.Building) error

	// FindBuildingByIDForUpdate selects a building and locks its row. All
	// mutations of the building's houses serialize on this lock.
	FindBuildingByIDForUpdate(ctx context.Context, tx pgx.Tx, buildingID string) (*domain.Building, error)

	// UpdateBuildingInTx writes the operator fields and the derived counters.
	UpdateBuildingInTx(ctx context.Context, tx pgx.Tx, building domain.Building) error

	// DeleteBuildingInTx removes a building; houses, tenants and payments cascade.
	DeleteBuildingInTx(ctx context.Context, tx pgx.Tx, buildingID string) error
}

// BuildingRepositoryFacade combines all building-related repository interfaces
type BuildingRepositoryFacade interface {
	BuildingReader
	BuildingTransactionSupport
}
