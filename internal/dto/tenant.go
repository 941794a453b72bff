package dto

import (
	"time"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTenantRequest defines the data needed to start a lease.
type CreateTenantRequest struct {
	Name       string `json:"name" binding:"required,max=50"`
	Phone      string `json:"phone" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	IDNumber   string `json:"idNumber" binding:"required,max=10"`
	HouseID    string `json:"houseID" binding:"required"`
	IsActive   *bool  `json:"isActive"`                                       // Defaults to true
	RentDueDay *int   `json:"rentDueDay" binding:"omitempty,min=1,max=31"` // Defaults to 1
}

// UpdateTenantRequest defines the data allowed for updating a tenant.
type UpdateTenantRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=50"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email" binding:"omitempty,email"`
	IDNumber   *string `json:"idNumber" binding:"omitempty,max=10"`
	HouseID    *string `json:"houseID"`
	IsActive   *bool   `json:"isActive"`
	RentDueDay *int    `json:"rentDueDay" binding:"omitempty,min=1,max=31"`
}

// TenantResponse defines the data returned for a tenant.
type TenantResponse struct {
	TenantID      string          `json:"tenantID"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email,omitempty"`
	IDNumber      string          `json:"idNumber"`
	HouseID       string          `json:"houseID"`
	IsActive      bool            `json:"isActive"`
	Balance       decimal.Decimal `json:"balance"`
	RentDueDay    int             `json:"rentDueDay"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ListTenantsParams defines query parameters for listing tenants.
type ListTenantsParams struct {
	Active   *bool  `form:"active"`
	HouseID  string `form:"house_id"`
	Name     string `form:"name"`
	Ordering string `form:"ordering" binding:"omitempty,oneof=name -name created_at -created_at"`
	Limit    int    `form:"limit,default=50" binding:"min=0,max=200"`
	Offset   int    `form:"offset,default=0" binding:"min=0"`
}

// ListTenantsResponse wraps the list of tenants.
type ListTenantsResponse struct {
	Tenants []TenantResponse `json:"tenants"`
}

// TenantBalanceResponse defines the data returned for an outstanding rent query.
type TenantBalanceResponse struct {
	TenantID        string          `json:"tenantID"`
	OutstandingRent decimal.Decimal `json:"outstandingRent"`
}

// ToTenantResponse converts a domain.Tenant to TenantResponse DTO
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:      t.TenantID,
		Name:          t.Name,
		Phone:         t.Phone,
		Email:         t.Email,
		IDNumber:      t.IDNumber,
		HouseID:       t.HouseID,
		IsActive:      t.IsActive,
		Balance:       t.Balance,
		RentDueDay:    t.RentDueDay,
		CreatedAt:     t.CreatedAt,
		LastUpdatedAt: t.LastUpdatedAt,
	}
}

// ToListTenantsResponse converts a slice of domain.Tenant to the list response
func ToListTenantsResponse(tenants []domain.Tenant) ListTenantsResponse {
	res := make([]TenantResponse, len(tenants))
	for i := range tenants {
		res[i] = ToTenantResponse(&tenants[i])
	}
	return ListTenantsResponse{Tenants: res}
}
