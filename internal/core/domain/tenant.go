package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/property_management_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Tenant is a person occupying a House under an active or inactive lease.
type Tenant struct {
	TenantID   string          `json:"tenantID"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"` // Normalized international format
	Email      string          `json:"email"`
	IDNumber   string          `json:"idNumber"`
	HouseID    string          `json:"houseID"`
	IsActive   bool            `json:"isActive"`
	Balance    decimal.Decimal `json:"balance"`    // Materialized OutstandingRent
	RentDueDay int             `json:"rentDueDay"` // Day of month rent falls due
	AuditFields
}

// Validate checks the required tenant fields.
func (t Tenant) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: tenant name is required", apperrors.ErrValidation)
	}
	if len(t.Name) > 50 {
		return fmt.Errorf("%w: tenant name must be at most 50 characters", apperrors.ErrValidation)
	}
	if t.HouseID == "" {
		return fmt.Errorf("%w: house is required", apperrors.ErrValidation)
	}
	if t.Phone == "" {
		return fmt.Errorf("%w: phone is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(t.IDNumber) == "" || len(t.IDNumber) > 10 {
		return fmt.Errorf("%w: id number is required and must be at most 10 characters", apperrors.ErrValidation)
	}
	if t.RentDueDay < 1 || t.RentDueDay > 31 {
		return fmt.Errorf("%w: rent due day must be between 1 and 31", apperrors.ErrValidation)
	}
	return nil
}
