package repositories

import (
	"context"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// HouseFilter narrows a house listing. Nil fields are not applied.
type HouseFilter struct {
	BuildingID *string
	Occupied   *bool
	Limit      int
	Offset     int
}

// HouseReader defines read operations for house data
type HouseReader interface {
	// FindHouseByID retrieves a house, including its tenant count.
	FindHouseByID(ctx context.Context, houseID string) (*domain.House, error)

	// ListHouses retrieves houses matching the filter ordered by unit number.
	ListHouses(ctx context.Context, filter HouseFilter) ([]domain.House, error)
}

// HouseTransactionSupport defines house operations that run inside a transaction
type HouseTransactionSupport interface {
	// FindHouseByIDForUpdate selects a house and locks its row.
	FindHouseByIDForUpdate(ctx context.Context, tx pgx.Tx, houseID string) (*domain.House, error)

	// ListHousesByBuildingInTx returns every house of a building as currently stored.
	ListHousesByBuildingInTx(ctx context.Context, tx pgx.Tx, buildingID string) ([]domain.House, error)

	// SaveHouseInTx persists a new house.
	SaveHouseInTx(ctx context.Context, tx pgx.Tx, house domain.House) error

	// UpdateHouseInTx updates unit number, size, rent and the occupation flag.
	UpdateHouseInTx(ctx context.Context, tx pgx.Tx, house domain.House) error

	// DeleteHouseInTx removes a house; tenants and payments cascade.
	DeleteHouseInTx(ctx context.Context, tx pgx.Tx, houseID string) error
}

// HouseRepositoryFacade combines all house-related repository interfaces
type HouseRepositoryFacade interface {
	HouseReader
	HouseTransactionSupport
}
