package domain

import (
	"fmt"

	"github.com/SscSPs/property_management_app/internal/apperrors"
)

// OccupancyPolicy holds the business switches of the occupancy rules.
type OccupancyPolicy struct {
	// AllowSharedHouses lets more than one active tenant live in a house.
	AllowSharedHouses bool
}

// RecomputeBuilding derives the building's counters from the full set of its
// houses. Houses belonging to other buildings are ignored. The result depends
// only on the current rows, so calling it repeatedly is safe.
//
// With a declared capacity the vacant count is capacity minus occupied, so
// OccupiedCount+VacantCount == Capacity. Without one, vacant is the number of
// registered but unoccupied houses.
func RecomputeBuilding(b *Building, houses []House) {
	registered, occupied := 0, 0
	for _, h := range houses {
		if h.BuildingID != b.BuildingID {
			continue
		}
		registered++
		if h.Occupied {
			occupied++
		}
	}

	b.HouseCount = registered
	b.OccupiedCount = occupied
	if b.Capacity > 0 {
		b.VacantCount = b.Capacity - occupied
	} else {
		b.VacantCount = registered - occupied
	}
}

// CheckHouseCapacity rejects adding a house to a building that already holds
// as many houses as its declared capacity.
func CheckHouseCapacity(b Building, existingHouses int) error {
	if b.Capacity > 0 && existingHouses >= b.Capacity {
		return fmt.Errorf("%w: building %s has %d of %d houses", apperrors.ErrCapacityExceeded, b.Name, existingHouses, b.Capacity)
	}
	return nil
}

// CheckCapacityChange rejects shrinking a building below its registered houses.
func CheckCapacityChange(newCapacity, existingHouses int) error {
	if newCapacity < 0 {
		return fmt.Errorf("%w: capacity cannot be negative", apperrors.ErrValidation)
	}
	if newCapacity > 0 && newCapacity < existingHouses {
		return fmt.Errorf("%w: capacity %d is below the %d registered houses", apperrors.ErrConflict, newCapacity, existingHouses)
	}
	return nil
}

// CheckMoveIn decides whether a tenant may become active in h, given the
// number of other active tenants already living there.
func (p OccupancyPolicy) CheckMoveIn(h House, otherActiveTenants int) error {
	if p.AllowSharedHouses {
		return nil
	}
	if h.Occupied || otherActiveTenants > 0 {
		return fmt.Errorf("%w: house %s", apperrors.ErrHouseOccupied, h.UnitNumber)
	}
	return nil
}

// IsOccupied derives a house's occupation flag from its active tenant count.
func IsOccupied(activeTenants int) bool {
	return activeTenants > 0
}

// CountActiveTenants counts active tenants of the given house.
func CountActiveTenants(tenants []Tenant, houseID string) int {
	n := 0
	for _, t := range tenants {
		if t.HouseID == houseID && t.IsActive {
			n++
		}
	}
	return n
}
