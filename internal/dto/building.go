package dto

import (
	"time"

	"github.com/SscSPs/property_management_app/internal/core/domain"
)

// CreateBuildingRequest defines the data needed to register a building.
type CreateBuildingRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	Address  string `json:"address" binding:"max=50"`
	Capacity int    `json:"capacity" binding:"min=0"` // Declared number of houses; 0 leaves it open
}

// UpdateBuildingRequest defines the data allowed for updating a building.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateBuildingRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=50"`
	Address  *string `json:"address" binding:"omitempty,max=50"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=0"`
}

// BuildingResponse defines the data returned for a building.
type BuildingResponse struct {
	BuildingID    string    `json:"buildingID"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Capacity      int       `json:"capacity"`
	OccupiedCount int       `json:"occupiedCount"`
	VacantCount   int       `json:"vacantCount"`
	HouseCount    int       `json:"houseCount"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ListBuildingsParams defines query parameters for listing buildings.
type ListBuildingsParams struct {
	Limit  int `form:"limit,default=20" binding:"min=0,max=200"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListBuildingsResponse wraps the list of buildings.
type ListBuildingsResponse struct {
	Buildings []BuildingResponse `json:"buildings"`
}

// ToBuildingResponse converts a domain.Building to BuildingResponse DTO
func ToBuildingResponse(b *domain.Building) BuildingResponse {
	return BuildingResponse{
		BuildingID:    b.BuildingID,
		Name:          b.Name,
		Address:       b.Address,
		Capacity:      b.Capacity,
		OccupiedCount: b.OccupiedCount,
		VacantCount:   b.VacantCount,
		HouseCount:    b.HouseCount,
		CreatedAt:     b.CreatedAt,
		CreatedBy:     b.CreatedBy,
		LastUpdatedAt: b.LastUpdatedAt,
		LastUpdatedBy: b.LastUpdatedBy,
	}
}

// ToListBuildingsResponse converts a slice of domain.Building to the list response
func ToListBuildingsResponse(buildings []domain.Building) ListBuildingsResponse {
	res := make([]BuildingResponse, len(buildings))
	for i := range buildings {
		res[i] = ToBuildingResponse(&buildings[i])
	}
	return ListBuildingsResponse{Buildings: res}
}
