package domain_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/SscSPs/property_management_app/internal/apperrors"
	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func houses(buildingID string, occupied ...bool) []domain.House {
	hs := make([]domain.House, len(occupied))
	for i, occ := range occupied {
		hs[i] = domain.House{
			HouseID:    fmt.Sprintf("%s-h%d", buildingID, i+1),
			BuildingID: buildingID,
			UnitNumber: fmt.Sprintf("U%d", i+1),
			Occupied:   occ,
		}
	}
	return hs
}

func TestRecomputeBuilding(t *testing.T) {
	tests := []struct {
		name         string
		capacity     int
		houses       []domain.House
		wantOccupied int
		wantVacant   int
		wantHouses   int
	}{
		{"empty building", 3, nil, 0, 3, 0},
		{"all vacant", 3, houses("b1", false, false, false), 0, 3, 3},
		{"one occupied", 3, houses("b1", true, false, false), 1, 2, 3},
		{"partially built", 5, houses("b1", true, true), 2, 3, 2},
		{"full", 2, houses("b1", true, true), 2, 0, 2},
		{"undeclared capacity", 0, houses("b1", true, false, false), 1, 2, 3},
		{"ignores other buildings", 3, append(houses("b1", true), houses("b2", true, true)...), 1, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := domain.Building{BuildingID: "b1", Capacity: tt.capacity}
			domain.RecomputeBuilding(&b, tt.houses)
			assert.Equal(t, tt.wantOccupied, b.OccupiedCount)
			assert.Equal(t, tt.wantVacant, b.VacantCount)
			assert.Equal(t, tt.wantHouses, b.HouseCount)
		})
	}
}

func TestRecomputeBuilding_Idempotent(t *testing.T) {
	b := domain.Building{BuildingID: "b1", Capacity: 4, OccupiedCount: 9, VacantCount: -5}
	hs := houses("b1", true, false, true)

	domain.RecomputeBuilding(&b, hs)
	first := b
	domain.RecomputeBuilding(&b, hs)

	assert.Equal(t, first, b)
	assert.Equal(t, 2, b.OccupiedCount)
	assert.Equal(t, 2, b.VacantCount)
}

func TestCheckHouseCapacity(t *testing.T) {
	b := domain.Building{Name: "Blue Sky Towers", Capacity: 3}

	assert.NoError(t, domain.CheckHouseCapacity(b, 0))
	assert.NoError(t, domain.CheckHouseCapacity(b, 2))

	err := domain.CheckHouseCapacity(b, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
	assert.Contains(t, err.Error(), "Blue Sky Towers")

	unbounded := domain.Building{Name: "Annex", Capacity: 0}
	assert.NoError(t, domain.CheckHouseCapacity(unbounded, 100))
}

func TestCheckCapacityChange(t *testing.T) {
	assert.NoError(t, domain.CheckCapacityChange(5, 5))
	assert.NoError(t, domain.CheckCapacityChange(0, 7))
	assert.ErrorIs(t, domain.CheckCapacityChange(2, 3), apperrors.ErrConflict)
	assert.ErrorIs(t, domain.CheckCapacityChange(-1, 0), apperrors.ErrValidation)
}

func TestCheckMoveIn(t *testing.T) {
	h := domain.House{UnitNumber: "A1"}
	single := domain.OccupancyPolicy{}
	shared := domain.OccupancyPolicy{AllowSharedHouses: true}

	assert.NoError(t, single.CheckMoveIn(h, 0))
	assert.ErrorIs(t, single.CheckMoveIn(h, 1), apperrors.ErrHouseOccupied)
	assert.ErrorIs(t, single.CheckMoveIn(domain.House{UnitNumber: "A2", Occupied: true}, 0), apperrors.ErrHouseOccupied)
	assert.NoError(t, shared.CheckMoveIn(h, 1))
}

func TestCountActiveTenants(t *testing.T) {
	tenants := []domain.Tenant{
		{HouseID: "h1", IsActive: true},
		{HouseID: "h1", IsActive: false},
		{HouseID: "h2", IsActive: true},
	}
	assert.Equal(t, 1, domain.CountActiveTenants(tenants, "h1"))
	assert.Equal(t, 0, domain.CountActiveTenants(tenants, "h3"))
	assert.True(t, domain.IsOccupied(1))
	assert.False(t, domain.IsOccupied(0))
}

// portfolio applies mutations through the occupancy rules the same way the
// services do: write, then re-derive house and building state from rows.
type portfolio struct {
	policy    domain.OccupancyPolicy
	buildings map[string]*domain.Building
	houses    []domain.House
	tenants   []domain.Tenant
	seq       int
}

func (p *portfolio) nextID(prefix string) string {
	p.seq++
	return fmt.Sprintf("%s%d", prefix, p.seq)
}

func (p *portfolio) housesOf(buildingID string) []domain.House {
	var out []domain.House
	for _, h := range p.houses {
		if h.BuildingID == buildingID {
			out = append(out, h)
		}
	}
	return out
}

func (p *portfolio) refresh(houseID string) {
	for i := range p.houses {
		if p.houses[i].HouseID == houseID {
			p.houses[i].Occupied = domain.IsOccupied(domain.CountActiveTenants(p.tenants, houseID))
			b := p.buildings[p.houses[i].BuildingID]
			domain.RecomputeBuilding(b, p.housesOf(b.BuildingID))
			return
		}
	}
}

func (p *portfolio) addHouse(buildingID string) error {
	b := p.buildings[buildingID]
	if err := domain.CheckHouseCapacity(*b, len(p.housesOf(buildingID))); err != nil {
		return err
	}
	h := domain.House{HouseID: p.nextID("h"), BuildingID: buildingID}
	p.houses = append(p.houses, h)
	p.refresh(h.HouseID)
	return nil
}

func (p *portfolio) addTenant(h domain.House) error {
	if err := p.policy.CheckMoveIn(h, domain.CountActiveTenants(p.tenants, h.HouseID)); err != nil {
		return err
	}
	p.tenants = append(p.tenants, domain.Tenant{TenantID: p.nextID("t"), HouseID: h.HouseID, IsActive: true})
	p.refresh(h.HouseID)
	return nil
}

func (p *portfolio) removeTenant(i int) {
	houseID := p.tenants[i].HouseID
	p.tenants = append(p.tenants[:i], p.tenants[i+1:]...)
	p.refresh(houseID)
}

func (p *portfolio) deactivateTenant(i int) {
	p.tenants[i].IsActive = false
	p.refresh(p.tenants[i].HouseID)
}

func TestOccupancyInvariant_RandomMutations(t *testing.T) {
	for _, shared := range []bool{false, true} {
		t.Run(fmt.Sprintf("shared=%v", shared), func(t *testing.T) {
			rng := rand.New(rand.NewSource(20250131))
			p := &portfolio{
				policy: domain.OccupancyPolicy{AllowSharedHouses: shared},
				buildings: map[string]*domain.Building{
					"b1": {BuildingID: "b1", Capacity: 5},
					"b2": {BuildingID: "b2", Capacity: 3},
				},
			}
			for _, b := range p.buildings {
				domain.RecomputeBuilding(b, nil)
			}

			for step := 0; step < 2000; step++ {
				switch op := rng.Intn(4); {
				case op == 0:
					id := []string{"b1", "b2"}[rng.Intn(2)]
					err := p.addHouse(id)
					if err != nil {
						assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
						assert.Len(t, p.housesOf(id), p.buildings[id].Capacity)
					}
				case op == 1 && len(p.houses) > 0:
					h := p.houses[rng.Intn(len(p.houses))]
					err := p.addTenant(h)
					if err != nil {
						assert.False(t, shared)
						assert.ErrorIs(t, err, apperrors.ErrHouseOccupied)
					}
				case op == 2 && len(p.tenants) > 0:
					p.removeTenant(rng.Intn(len(p.tenants)))
				case op == 3 && len(p.tenants) > 0:
					p.deactivateTenant(rng.Intn(len(p.tenants)))
				}

				for _, b := range p.buildings {
					require.Equal(t, b.Capacity, b.OccupiedCount+b.VacantCount, "step %d building %s", step, b.BuildingID)
					require.LessOrEqual(t, b.HouseCount, b.Capacity)
				}
				for _, h := range p.houses {
					require.Equal(t, domain.CountActiveTenants(p.tenants, h.HouseID) > 0, h.Occupied)
					if !shared {
						require.LessOrEqual(t, domain.CountActiveTenants(p.tenants, h.HouseID), 1)
					}
				}
			}
		})
	}
}

func TestOccupancyScenario_MoveInAndOut(t *testing.T) {
	p := &portfolio{buildings: map[string]*domain.Building{"b1": {BuildingID: "b1", Capacity: 3}}}
	for i := 0; i < 3; i++ {
		require.NoError(t, p.addHouse("b1"))
	}
	b := p.buildings["b1"]
	assert.Equal(t, 0, b.OccupiedCount)
	assert.Equal(t, 3, b.VacantCount)

	require.ErrorIs(t, p.addHouse("b1"), apperrors.ErrCapacityExceeded)

	require.NoError(t, p.addTenant(p.houses[0]))
	assert.True(t, p.houses[0].Occupied)
	assert.Equal(t, 1, b.OccupiedCount)
	assert.Equal(t, 2, b.VacantCount)

	require.ErrorIs(t, p.addTenant(p.houses[0]), apperrors.ErrHouseOccupied)

	p.removeTenant(0)
	assert.False(t, p.houses[0].Occupied)
	assert.Equal(t, 0, b.OccupiedCount)
	assert.Equal(t, 3, b.VacantCount)
}
