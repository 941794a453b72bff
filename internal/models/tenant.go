package models

import "github.com/shopspring/decimal"

// Tenant represents a row of the tenants table.
type Tenant struct {
	TenantID   string          `db:"tenant_id"`
	Name       string          `db:"name"`
	Phone      string          `db:"phone"`
	Email      string          `db:"email"`
	IDNumber   string          `db:"id_number"`
	HouseID    string          `db:"house_id"`
	IsActive   bool            `db:"is_active"`
	Balance    decimal.Decimal `db:"balance"`
	RentDueDay int             `db:"rent_due_day"`
	AuditFields
}
