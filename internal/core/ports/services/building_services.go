package services

import (
	"context"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/SscSPs/property_management_app/internal/dto"
)

// BuildingReaderSvc defines read operations for building data
type BuildingReaderSvc interface {
	// GetBuildingByID retrieves a building with its maintained occupancy counters.
	GetBuildingByID(ctx context.Context, buildingID string) (*domain.Building, error)

	// ListBuildings retrieves a paginated list of buildings.
	ListBuildings(ctx context.Context, limit int, offset int) ([]domain.Building, error)
}

// BuildingWriterSvc defines write operations for building data
type BuildingWriterSvc interface {
	CreateBuilding(ctx context.Context, req dto.CreateBuildingRequest, userID string) (*domain.Building, error)
	UpdateBuilding(ctx context.Context, buildingID string, req dto.UpdateBuildingRequest, userID string) (*domain.Building, error)

	// DeleteBuilding removes a building together with its houses, their tenants and payments.
	DeleteBuilding(ctx context.Context, buildingID string, userID string) error

	// RecomputeBuilding re-derives the occupancy counters from the building's houses.
	RecomputeBuilding(ctx context.Context, buildingID string, userID string) (*domain.Building, error)
}

// BuildingSvcFacade combines all building-related service interfaces
type BuildingSvcFacade interface {
	BuildingReaderSvc
	BuildingWriterSvc
}
