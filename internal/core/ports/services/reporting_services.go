package services

import (
	"context"

	"github.com/SscSPs/property_management_app/internal/core/domain"
)

// ReportingService defines the interface for portfolio reporting.
type ReportingService interface {
	// GetPortfolioSummary aggregates occupancy and collection figures as of now.
	GetPortfolioSummary(ctx context.Context) (*domain.PortfolioSummary, error)

	// GetRentRoll lists every tenant with their unit, rent and balance.
	GetRentRoll(ctx context.Context) ([]domain.RentRollEntry, error)
}
