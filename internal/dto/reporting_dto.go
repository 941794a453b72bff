package dto

import (
	"time"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PortfolioSummaryResponse is the dashboard summary.
type PortfolioSummaryResponse struct {
	Buildings          int             `json:"buildings"`
	Houses             int             `json:"houses"`
	OccupiedHouses     int             `json:"occupiedHouses"`
	VacantHouses       int             `json:"vacantHouses"`
	ActiveTenants      int             `json:"activeTenants"`
	TotalOutstanding   decimal.Decimal `json:"totalOutstanding"`
	CollectedThisMonth decimal.Decimal `json:"collectedThisMonth"`
	AsOf               string          `json:"asOf"`
}

// ToPortfolioSummaryResponse converts a domain.PortfolioSummary to its DTO.
func ToPortfolioSummaryResponse(s *domain.PortfolioSummary) PortfolioSummaryResponse {
	return PortfolioSummaryResponse{
		Buildings:          s.Buildings,
		Houses:             s.Houses,
		OccupiedHouses:     s.OccupiedHouses,
		VacantHouses:       s.VacantHouses,
		ActiveTenants:      s.ActiveTenants,
		TotalOutstanding:   s.TotalOutstanding,
		CollectedThisMonth: s.CollectedThisMonth,
		AsOf:               s.AsOf.Format(time.RFC3339),
	}
}
