package pgsql

import (
	"context"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/property_management_app/internal/models"
	"github.com/SscSPs/property_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// tenant_count is derived per row from the active tenants of the house.
const houseSelect = `
	SELECT h.house_id, h.building_id, h.unit_number, h.size_label, h.rent_amount, h.occupied,
	       (SELECT COUNT(*) FROM tenants t WHERE t.house_id = h.house_id AND t.is_active) AS tenant_count,
	       h.created_at, h.created_by, h.last_updated_at, h.last_updated_by
	FROM houses h`

// PgxHouseRepository implements portsrepo.HouseRepositoryFacade
type PgxHouseRepository struct {
	BaseRepository
}

func newPgxHouseRepository(pool *pgxpool.Pool) *PgxHouseRepository {
	return &PgxHouseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxHouseRepository implements portsrepo.HouseRepositoryFacade
var _ portsrepo.HouseRepositoryFacade = (*PgxHouseRepository)(nil)

func collectHouses(rows pgx.Rows, action string) ([]domain.House, error) {
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.House])
	if err != nil {
		return nil, mapError(err, action)
	}
	houses := make([]domain.House, len(ms))
	for i, m := range ms {
		houses[i] = mapping.ToDomainHouse(m)
	}
	return houses, nil
}

func (r *PgxHouseRepository) findHouse(ctx context.Context, q dbtx, query, houseID string) (*domain.House, error) {
	rows, err := q.Query(ctx, query, houseID)
	if err != nil {
		return nil, mapError(err, "find house "+houseID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.House])
	if err != nil {
		return nil, mapError(err, "find house "+houseID)
	}
	h := mapping.ToDomainHouse(m)
	return &h, nil
}

// FindHouseByID retrieves a house with its active tenant count.
func (r *PgxHouseRepository) FindHouseByID(ctx context.Context, houseID string) (*domain.House, error) {
	return r.findHouse(ctx, r.Pool, houseSelect+` WHERE h.house_id = $1`, houseID)
}

// FindHouseByIDForUpdate retrieves and locks a house row.
func (r *PgxHouseRepository) FindHouseByIDForUpdate(ctx context.Context, tx pgx.Tx, houseID string) (*domain.House, error) {
	return r.findHouse(ctx, tx, houseSelect+` WHERE h.house_id = $1 FOR UPDATE OF h`, houseID)
}

// ListHouses retrieves houses matching the filter ordered by unit number.
func (r *PgxHouseRepository) ListHouses(ctx context.Context, filter portsrepo.HouseFilter) ([]domain.House, error) {
	var p placeholders
	if filter.BuildingID != nil {
		p.add("h.building_id = ?", *filter.BuildingID)
	}
	if filter.Occupied != nil {
		p.add("h.occupied = ?", *filter.Occupied)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query := houseSelect + p.where() + ` ORDER BY h.unit_number LIMIT ` + p.next(limit) + ` OFFSET ` + p.next(filter.Offset)

	rows, err := r.Pool.Query(ctx, query, p.args...)
	if err != nil {
		return nil, mapError(err, "list houses")
	}
	return collectHouses(rows, "scan houses")
}

// ListHousesByBuildingInTx returns every house of a building as seen by tx.
func (r *PgxHouseRepository) ListHousesByBuildingInTx(ctx context.Context, tx pgx.Tx, buildingID string) ([]domain.House, error) {
	rows, err := tx.Query(ctx, houseSelect+` WHERE h.building_id = $1 ORDER BY h.unit_number`, buildingID)
	if err != nil {
		return nil, mapError(err, "list houses of building "+buildingID)
	}
	return collectHouses(rows, "scan houses")
}

// SaveHouseInTx inserts a new house.
func (r *PgxHouseRepository) SaveHouseInTx(ctx context.Context, tx pgx.Tx, house domain.House) error {
	m := mapping.ToModelHouse(house)
	query := `
		INSERT INTO houses (house_id, building_id, unit_number, size_label, rent_amount, occupied,
		                    created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := tx.Exec(ctx, query,
		m.HouseID, m.BuildingID, m.UnitNumber, m.SizeLabel, m.RentAmount, m.Occupied,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save house")
}

// UpdateHouseInTx updates a house. building_id is never rewritten.
func (r *PgxHouseRepository) UpdateHouseInTx(ctx context.Context, tx pgx.Tx, house domain.House) error {
	m := mapping.ToModelHouse(house)
	query := `
		UPDATE houses
		SET unit_number = $2, size_label = $3, rent_amount = $4, occupied = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE house_id = $1`
	tag, err := tx.Exec(ctx, query,
		m.HouseID, m.UnitNumber, m.SizeLabel, m.RentAmount, m.Occupied, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return expectOne(tag, err, "update house "+m.HouseID)
}

// DeleteHouseInTx removes a house; tenants and payments cascade.
func (r *PgxHouseRepository) DeleteHouseInTx(ctx context.Context, tx pgx.Tx, houseID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM houses WHERE house_id = $1`, houseID)
	return expectOne(tag, err, "delete house "+houseID)
}
