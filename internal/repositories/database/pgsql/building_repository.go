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

const buildingColumns = `building_id, name, address, capacity, occupied_count, vacant_count, house_count,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxBuildingRepository implements portsrepo.BuildingRepositoryFacade
type PgxBuildingRepository struct {
	BaseRepository
}

func newPgxBuildingRepository(pool *pgxpool.Pool) *PgxBuildingRepository {
	return &PgxBuildingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBuildingRepository implements portsrepo.BuildingRepositoryFacade
var _ portsrepo.BuildingRepositoryFacade = (*PgxBuildingRepository)(nil)

func (r *PgxBuildingRepository) findBuilding(ctx context.Context, q dbtx, query, buildingID string) (*domain.Building, error) {
	rows, err := q.Query(ctx, query, buildingID)
	if err != nil {
		return nil, mapError(err, "find building "+buildingID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Building])
	if err != nil {
		return nil, mapError(err, "find building "+buildingID)
	}
	b := mapping.ToDomainBuilding(m)
	return &b, nil
}

// FindBuildingByID retrieves a building by its ID.
func (r *PgxBuildingRepository) FindBuildingByID(ctx context.Context, buildingID string) (*domain.Building, error) {
	return r.findBuilding(ctx, r.Pool, `SELECT `+buildingColumns+` FROM buildings WHERE building_id = $1`, buildingID)
}

// FindBuildingByIDForUpdate retrieves and locks a building row.
func (r *PgxBuildingRepository) FindBuildingByIDForUpdate(ctx context.Context, tx pgx.Tx, buildingID string) (*domain.Building, error) {
	return r.findBuilding(ctx, tx, `SELECT `+buildingColumns+` FROM buildings WHERE building_id = $1 FOR UPDATE`, buildingID)
}

// ListBuildings retrieves buildings ordered by name.
func (r *PgxBuildingRepository) ListBuildings(ctx context.Context, limit int, offset int) ([]domain.Building, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + buildingColumns + ` FROM buildings ORDER BY name, building_id LIMIT $1 OFFSET $2`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapError(err, "list buildings")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Building])
	if err != nil {
		return nil, mapError(err, "scan buildings")
	}

	buildings := make([]domain.Building, len(ms))
	for i, m := range ms {
		buildings[i] = mapping.ToDomainBuilding(m)
	}
	return buildings, nil
}

// SaveBuildingInTx inserts a new building.
func (r *PgxBuildingRepository) SaveBuildingInTx(ctx context.Context, tx pgx.Tx, building domain.Building) error {
	m := mapping.ToModelBuilding(building)
	query := `
		INSERT INTO buildings (` + buildingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := tx.Exec(ctx, query,
		m.BuildingID, m.Name, m.Address, m.Capacity, m.OccupiedCount, m.VacantCount, m.HouseCount,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save building")
}

// UpdateBuildingInTx writes operator fields and derived counters.
func (r *PgxBuildingRepository) UpdateBuildingInTx(ctx context.Context, tx pgx.Tx, building domain.Building) error {
	m := mapping.ToModelBuilding(building)
	query := `
		UPDATE buildings
		SET name = $2, address = $3, capacity = $4, occupied_count = $5, vacant_count = $6, house_count = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE building_id = $1`
	tag, err := tx.Exec(ctx, query,
		m.BuildingID, m.Name, m.Address, m.Capacity, m.OccupiedCount, m.VacantCount, m.HouseCount,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return expectOne(tag, err, "update building "+m.BuildingID)
}

// DeleteBuildingInTx removes a building; houses, tenants and payments cascade.
func (r *PgxBuildingRepository) DeleteBuildingInTx(ctx context.Context, tx pgx.Tx, buildingID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM buildings WHERE building_id = $1`, buildingID)
	return expectOne(tag, err, "delete building "+buildingID)
}
