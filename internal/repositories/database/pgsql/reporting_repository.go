package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetPortfolioSummary aggregates occupancy and collections. Vacancies come
// from the stored building counters so they agree with the building views.
func (r *reportingRepository) GetPortfolioSummary(ctx context.Context, asOf time.Time) (*domain.PortfolioSummary, error) {
	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	query := `
		SELECT
			(SELECT COUNT(*) FROM buildings),
			(SELECT COUNT(*) FROM houses),
			(SELECT COUNT(*) FROM houses WHERE occupied),
			(SELECT COALESCE(SUM(vacant_count), 0) FROM buildings),
			(SELECT COUNT(*) FROM tenants WHERE is_active),
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE NOT paid),
			(SELECT COALESCE(SUM(amount), 0) FROM payment_history WHERE paid_on >= $1 AND paid_on < $2)
	`

	var s domain.PortfolioSummary
	err := r.Pool.QueryRow(ctx, query, monthStart, monthEnd).Scan(
		&s.Buildings,
		&s.Houses,
		&s.OccupiedHouses,
		&s.VacantHouses,
		&s.ActiveTenants,
		&s.TotalOutstanding,
		&s.CollectedThisMonth,
	)
	if err != nil {
		return nil, mapError(err, "query portfolio summary")
	}
	return &s, nil
}

// ListRentRoll returns one row per tenant ordered by building and unit.
func (r *reportingRepository) ListRentRoll(ctx context.Context) ([]domain.RentRollEntry, error) {
	query := `
		SELECT b.name, h.unit_number, t.name, t.phone, h.rent_amount, t.balance, t.is_active
		FROM tenants t
		JOIN houses h ON h.house_id = t.house_id
		JOIN buildings b ON b.building_id = h.building_id
		ORDER BY b.name, h.unit_number, t.name
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, mapError(err, "query rent roll")
	}
	defer rows.Close()

	result := []domain.RentRollEntry{}
	for rows.Next() {
		var e domain.RentRollEntry
		if err := rows.Scan(&e.BuildingName, &e.UnitNumber, &e.TenantName, &e.Phone, &e.RentAmount, &e.Balance, &e.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning rent roll row: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate rent roll")
	}
	return result, nil
}
