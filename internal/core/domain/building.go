package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/property_management_app/internal/apperrors"
)

// Building is a managed property containing a declared number of rental units.
// OccupiedCount, VacantCount and HouseCount are derived from the building's
// houses by RecomputeBuilding and are never set independently.
type Building struct {
	BuildingID    string `json:"buildingID"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	Capacity      int    `json:"capacity"` // Declared number of houses; 0 means undeclared
	OccupiedCount int    `json:"occupiedCount"`
	VacantCount   int    `json:"vacantCount"`
	HouseCount    int    `json:"houseCount"`
	AuditFields
}

// Validate checks the operator-supplied fields of a building.
func (b Building) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("%w: building name is required", apperrors.ErrValidation)
	}
	if b.Capacity < 0 {
		return fmt.Errorf("%w: capacity cannot be negative", apperrors.ErrValidation)
	}
	return nil
}
