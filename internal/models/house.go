package models

import "github.com/shopspring/decimal"

// House represents a row of the houses table.
type House struct {
	HouseID     string          `db:"house_id"`
	BuildingID  string          `db:"building_id"`
	UnitNumber  string          `db:"unit_number"`
	SizeLabel   string          `db:"size_label"`
	RentAmount  decimal.Decimal `db:"rent_amount"`
	Occupied    bool            `db:"occupied"`
	TenantCount int             `db:"tenant_count"` // Computed in list/detail queries, not stored
	AuditFields
}
