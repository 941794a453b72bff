package services

import (
	"context"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/SscSPs/property_management_app/internal/dto"
)

// HouseReaderSvc defines read operations for house data
type HouseReaderSvc interface {
	GetHouseByID(ctx context.Context, houseID string) (*domain.House, error)
	ListHouses(ctx context.Context, params dto.ListHousesParams) ([]domain.House, error)
}

// HouseWriterSvc defines write operations for house data
type HouseWriterSvc interface {
	// CreateHouse registers a house, rejecting it when the building is at capacity.
	CreateHouse(ctx context.Context, req dto.CreateHouseRequest, userID string) (*domain.House, error)

	// UpdateHouse changes unit number, size or rent. Moving a house between buildings is rejected.
	UpdateHouse(ctx context.Context, houseID string, req dto.UpdateHouseRequest, userID string) (*domain.House, error)

	// DeleteHouse removes a house with its tenants and recomputes the building.
	DeleteHouse(ctx context.Context, houseID string, userID string) error
}

// HouseSvcFacade combines all house-related service interfaces
type HouseSvcFacade interface {
	HouseReaderSvc
	HouseWriterSvc
}
