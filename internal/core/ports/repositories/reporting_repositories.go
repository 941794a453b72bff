package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/property_management_app/internal/core/domain"
)

// ReportingRepository defines read-only aggregate queries.
type ReportingRepository interface {
	// GetPortfolioSummary aggregates occupancy and collections; collections are
	// counted from payment history dated in the month containing asOf.
	GetPortfolioSummary(ctx context.Context, asOf time.Time) (*domain.PortfolioSummary, error)

	// ListRentRoll returns one entry per tenant ordered by building and unit.
	ListRentRoll(ctx context.Context) ([]domain.RentRollEntry, error)
}
