package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/property_management_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DefaultHouseSize mirrors the size label used when none is supplied.
const DefaultHouseSize = "1 bedroom"

// House is a rentable unit within a Building.
type House struct {
	HouseID     string          `json:"houseID"`
	BuildingID  string          `json:"buildingID"`
	UnitNumber  string          `json:"unitNumber"` // Unique across the portfolio
	SizeLabel   string          `json:"sizeLabel"`
	RentAmount  decimal.Decimal `json:"rentAmount"`
	Occupied    bool            `json:"occupied"`    // Derived from active tenancy
	TenantCount int             `json:"tenantCount"` // Read-side only, not persisted
	AuditFields
}

// Validate checks the operator-supplied fields of a house.
func (h House) Validate() error {
	if h.BuildingID == "" {
		return fmt.Errorf("%w: building is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(h.UnitNumber) == "" {
		return fmt.Errorf("%w: unit number is required", apperrors.ErrValidation)
	}
	if len(h.UnitNumber) > 5 {
		return fmt.Errorf("%w: unit number must be at most 5 characters", apperrors.ErrValidation)
	}
	if h.RentAmount.IsNegative() {
		return fmt.Errorf("%w: rent amount cannot be negative", apperrors.ErrValidation)
	}
	return ValidateMoney(h.RentAmount, "rent amount")
}

// HasRent reports whether a rent amount has been configured for the house.
func (h House) HasRent() bool {
	return h.RentAmount.IsPositive()
}
