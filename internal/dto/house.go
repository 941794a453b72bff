package dto

import (
	"time"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateHouseRequest defines the data needed to register a house in a building.
type CreateHouseRequest struct {
	BuildingID string          `json:"buildingID" binding:"required"`
	UnitNumber string          `json:"unitNumber" binding:"required,max=5"`
	SizeLabel  string          `json:"sizeLabel" binding:"max=10"`
	RentAmount decimal.Decimal `json:"rentAmount" binding:"non_negative_decimal,money"`
}

// UpdateHouseRequest defines the data allowed for updating a house.
// BuildingID is accepted only to reject moves between buildings explicitly.
type UpdateHouseRequest struct {
	BuildingID *string          `json:"buildingID"`
	UnitNumber *string          `json:"unitNumber" binding:"omitempty,max=5"`
	SizeLabel  *string          `json:"sizeLabel" binding:"omitempty,max=10"`
	RentAmount *decimal.Decimal `json:"rentAmount" binding:"omitempty,non_negative_decimal,money"`
}

// HouseResponse defines the data returned for a house.
type HouseResponse struct {
	HouseID       string          `json:"houseID"`
	BuildingID    string          `json:"buildingID"`
	UnitNumber    string          `json:"unitNumber"`
	SizeLabel     string          `json:"sizeLabel"`
	RentAmount    decimal.Decimal `json:"rentAmount"`
	Occupied      bool            `json:"occupied"`
	TenantCount   int             `json:"tenantCount"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ListHousesParams defines query parameters for listing houses.
type ListHousesParams struct {
	BuildingID string `form:"building_id"`
	Occupied   *bool  `form:"occupied"`
	Limit      int    `form:"limit,default=50" binding:"min=0,max=200"`
	Offset     int    `form:"offset,default=0" binding:"min=0"`
}

// ListHousesResponse wraps the list of houses.
type ListHousesResponse struct {
	Houses []HouseResponse `json:"houses"`
}

// ToHouseResponse converts a domain.House to HouseResponse DTO
func ToHouseResponse(h *domain.House) HouseResponse {
	return HouseResponse{
		HouseID:       h.HouseID,
		BuildingID:    h.BuildingID,
		UnitNumber:    h.UnitNumber,
		SizeLabel:     h.SizeLabel,
		RentAmount:    h.RentAmount,
		Occupied:      h.Occupied,
		TenantCount:   h.TenantCount,
		CreatedAt:     h.CreatedAt,
		LastUpdatedAt: h.LastUpdatedAt,
	}
}

// ToListHousesResponse converts a slice of domain.House to the list response
func ToListHousesResponse(houses []domain.House) ListHousesResponse {
	res := make([]HouseResponse, len(houses))
	for i := range houses {
		res[i] = ToHouseResponse(&houses[i])
	}
	return ListHousesResponse{Houses: res}
}
