package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_management_app/internal/core/ports/services"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...Option) portssvc.ReportingService {
	o := applyOptions(options)
	return &reportingService{
		BaseService:   BaseService{Now: o.now},
		reportingRepo: repo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// GetPortfolioSummary aggregates the portfolio as of the current time
func (s *reportingService) GetPortfolioSummary(ctx context.Context) (*domain.PortfolioSummary, error) {
	asOf := s.CurrentTime()
	summary, err := s.reportingRepo.GetPortfolioSummary(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve portfolio summary",
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve portfolio summary: %w", err)
	}
	summary.AsOf = asOf

	s.LogInfo(ctx, "Portfolio summary generated successfully",
		slog.Int("buildings", summary.Buildings),
		slog.Int("occupied_houses", summary.OccupiedHouses))
	return summary, nil
}

// GetRentRoll lists every tenant with their unit and balance
func (s *reportingService) GetRentRoll(ctx context.Context) ([]domain.RentRollEntry, error) {
	entries, err := s.reportingRepo.ListRentRoll(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve rent roll")
		return nil, fmt.Errorf("failed to retrieve rent roll: %w", err)
	}

	s.LogInfo(ctx, "Rent roll generated successfully", slog.Int("row_count", len(entries)))
	return entries, nil
}
