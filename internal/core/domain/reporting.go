package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioSummary aggregates occupancy and collection figures across all buildings.
type PortfolioSummary struct {
	Buildings          int             `json:"buildings"`
	Houses             int             `json:"houses"`
	OccupiedHouses     int             `json:"occupiedHouses"`
	VacantHouses       int             `json:"vacantHouses"`
	ActiveTenants      int             `json:"activeTenants"`
	TotalOutstanding   decimal.Decimal `json:"totalOutstanding"`
	CollectedThisMonth decimal.Decimal `json:"collectedThisMonth"`
	AsOf               time.Time       `json:"asOf"`
}

// RentRollEntry is one tenant line of the rent roll.
type RentRollEntry struct {
	BuildingName string
	UnitNumber   string
	TenantName   string
	Phone        string
	RentAmount   decimal.Decimal
	Balance      decimal.Decimal
	IsActive     bool
}
