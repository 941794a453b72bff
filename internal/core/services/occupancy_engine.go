package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/property_management_app/internal/apperrors"
	"github.com/SscSPs/property_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/property_management_app/internal/platform/metrics"
	"github.com/jackc/pgx/v5"
)

// occupancyEngine keeps House.Occupied and the Building counters derived from
// the current rows. Every method runs inside the caller's transaction and
// locks rows in the order buildings, houses, tenants.
type occupancyEngine struct {
	BaseService
	policy    domain.OccupancyPolicy
	buildings portsrepo.BuildingRepositoryFacade
	houses    portsrepo.HouseRepositoryFacade
	tenants   portsrepo.TenantRepositoryFacade
	metrics   *metrics.Business
}

func newOccupancyEngine(policy domain.OccupancyPolicy, repos portsrepo.RepositoryProvider, m *metrics.Business) *occupancyEngine {
	return &occupancyEngine{
		policy:    policy,
		buildings: repos.BuildingRepo,
		houses:    repos.HouseRepo,
		tenants:   repos.TenantRepo,
		metrics:   m,
	}
}

// OnHouseCreated persists h after checking the building's capacity and recomputes the building.
func (e *occupancyEngine) OnHouseCreated(ctx context.Context, tx pgx.Tx, h domain.House, userID string, now time.Time) (*domain.Building, error) {
	b, err := e.buildings.FindBuildingByIDForUpdate(ctx, tx, h.BuildingID)
	if err != nil {
		return nil, err
	}
	existing, err := e.houses.ListHousesByBuildingInTx(ctx, tx, b.BuildingID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckHouseCapacity(*b, len(existing)); err != nil {
		e.metrics.OccupancyRejected("capacity_exceeded")
		return nil, fmt.Errorf("building %s: %w", b.Name, err)
	}
	if err := e.houses.SaveHouseInTx(ctx, tx, h); err != nil {
		return nil, err
	}
	if err := e.recompute(ctx, tx, b, userID, now); err != nil {
		return nil, err
	}
	return b, nil
}

// OnHouseRemoved deletes a house (its tenants and payments cascade) and recomputes its building.
func (e *occupancyEngine) OnHouseRemoved(ctx context.Context, tx pgx.Tx, h domain.House, userID string, now time.Time) error {
	b, err := e.buildings.FindBuildingByIDForUpdate(ctx, tx, h.BuildingID)
	if err != nil {
		return err
	}
	if _, err := e.houses.FindHouseByIDForUpdate(ctx, tx, h.HouseID); err != nil {
		return err
	}
	if err := e.houses.DeleteHouseInTx(ctx, tx, h.HouseID); err != nil {
		return err
	}
	return e.recompute(ctx, tx, b, userID, now)
}

// OnTenantCreated persists a new tenant, rejecting it when its house is taken, and recomputes occupancy.
func (e *occupancyEngine) OnTenantCreated(ctx context.Context, tx pgx.Tx, t domain.Tenant, userID string, now time.Time) error {
	return e.applyTenantChange(ctx, tx, nil, &t, userID, now)
}

// OnTenantUpdated persists an edited tenant. Activation and house moves are
// checked against the target house like a creation.
func (e *occupancyEngine) OnTenantUpdated(ctx context.Context, tx pgx.Tx, before, after domain.Tenant, userID string, now time.Time) error {
	return e.applyTenantChange(ctx, tx, &before, &after, userID, now)
}

// OnTenantRemoved deletes a tenant and recomputes its house and building.
func (e *occupancyEngine) OnTenantRemoved(ctx context.Context, tx pgx.Tx, t domain.Tenant, userID string, now time.Time) error {
	return e.applyTenantChange(ctx, tx, &t, nil, userID, now)
}

// RecomputeBuilding locks a building and re-derives its counters.
func (e *occupancyEngine) RecomputeBuilding(ctx context.Context, tx pgx.Tx, buildingID string, userID string, now time.Time) (*domain.Building, error) {
	b, err := e.buildings.FindBuildingByIDForUpdate(ctx, tx, buildingID)
	if err != nil {
		return nil, err
	}
	if err := e.recompute(ctx, tx, b, userID, now); err != nil {
		return nil, err
	}
	return b, nil
}

// applyTenantChange is the single write path for tenants. before is nil on
// creation, after is nil on deletion.
func (e *occupancyEngine) applyTenantChange(ctx context.Context, tx pgx.Tx, before, after *domain.Tenant, userID string, now time.Time) error {
	houseIDs := affectedHouseIDs(before, after)

	// A house never changes building (UpdateHouse rejects it), so an
	// unlocked read is enough to learn the lock set.
	buildingIDs := make([]string, 0, len(houseIDs))
	for _, id := range houseIDs {
		h, err := e.houses.FindHouseByID(ctx, id)
		if err != nil {
			return fmt.Errorf("house %s: %w", id, err)
		}
		buildingIDs = append(buildingIDs, h.BuildingID)
	}
	buildings, err := e.lockBuildings(ctx, tx, buildingIDs)
	if err != nil {
		return err
	}

	houses := make(map[string]*domain.House, len(houseIDs))
	for _, id := range houseIDs {
		h, err := e.houses.FindHouseByIDForUpdate(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("house %s: %w", id, err)
		}
		houses[id] = h
	}

	if before != nil {
		current, err := e.tenants.FindTenantByIDForUpdate(ctx, tx, before.TenantID)
		if err != nil {
			return err
		}
		if current.HouseID != before.HouseID || current.IsActive != before.IsActive {
			return fmt.Errorf("%w: tenant %s was modified concurrently", apperrors.ErrConflict, before.TenantID)
		}
	}

	if movesIn(before, after) {
		others, err := e.tenants.CountActiveTenantsInTx(ctx, tx, after.HouseID, after.TenantID)
		if err != nil {
			return err
		}
		if err := e.policy.CheckMoveIn(*houses[after.HouseID], others); err != nil {
			e.metrics.OccupancyRejected("house_occupied")
			return err
		}
	}

	switch {
	case before == nil:
		err = e.tenants.SaveTenantInTx(ctx, tx, *after)
	case after == nil:
		err = e.tenants.DeleteTenantInTx(ctx, tx, before.TenantID)
	default:
		err = e.tenants.UpdateTenantInTx(ctx, tx, *after)
	}
	if err != nil {
		return err
	}

	for _, id := range houseIDs {
		if err := e.refreshHouse(ctx, tx, houses[id], userID, now); err != nil {
			return err
		}
	}
	for _, id := range sortedKeys(buildings) {
		if err := e.recompute(ctx, tx, buildings[id], userID, now); err != nil {
			return err
		}
	}
	return nil
}

// lockBuildings takes FOR UPDATE locks in ID order so concurrent moves cannot deadlock.
func (e *occupancyEngine) lockBuildings(ctx context.Context, tx pgx.Tx, ids []string) (map[string]*domain.Building, error) {
	locked := make(map[string]*domain.Building, len(ids))
	for _, id := range uniqueSorted(ids) {
		b, err := e.buildings.FindBuildingByIDForUpdate(ctx, tx, id)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", id, err)
		}
		locked[id] = b
	}
	return locked, nil
}

// refreshHouse sets Occupied from the number of active tenants now in the house.
func (e *occupancyEngine) refreshHouse(ctx context.Context, tx pgx.Tx, h *domain.House, userID string, now time.Time) error {
	active, err := e.tenants.CountActiveTenantsInTx(ctx, tx, h.HouseID, "")
	if err != nil {
		return err
	}
	occupied := domain.IsOccupied(active)
	if occupied == h.Occupied {
		return nil
	}
	h.Occupied = occupied
	h.LastUpdatedAt = now
	h.LastUpdatedBy = userID
	return e.houses.UpdateHouseInTx(ctx, tx, *h)
}

// recompute re-reads every house of b and stores the derived counters.
func (e *occupancyEngine) recompute(ctx context.Context, tx pgx.Tx, b *domain.Building, userID string, now time.Time) error {
	houses, err := e.houses.ListHousesByBuildingInTx(ctx, tx, b.BuildingID)
	if err != nil {
		return err
	}
	domain.RecomputeBuilding(b, houses)
	b.LastUpdatedAt = now
	b.LastUpdatedBy = userID
	if err := e.buildings.UpdateBuildingInTx(ctx, tx, *b); err != nil {
		return err
	}
	e.LogDebug(ctx, "Building recomputed",
		slog.String("building_id", b.BuildingID),
		slog.Int("occupied", b.OccupiedCount),
		slog.Int("vacant", b.VacantCount))
	return nil
}

// movesIn reports whether after starts occupying a house it did not occupy before.
func movesIn(before, after *domain.Tenant) bool {
	if after == nil || !after.IsActive {
		return false
	}
	return before == nil || !before.IsActive || before.HouseID != after.HouseID
}

func affectedHouseIDs(before, after *domain.Tenant) []string {
	var ids []string
	if before != nil {
		ids = append(ids, before.HouseID)
	}
	if after != nil {
		ids = append(ids, after.HouseID)
	}
	return uniqueSorted(ids)
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string]*domain.Building) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// isNotFound is shared by the services to skip logging expected misses.
func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
