package seed

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/SscSPs/property_management_app/internal/dto"
	"github.com/shopspring/decimal"
)

// SeedUserID is recorded as creator of the demo data.
const SeedUserID = "seed"

type houseSeed struct {
	unit string
	size string
	rent string
}

type buildingSeed struct {
	name     string
	address  string
	capacity int
	houses   []houseSeed
}

var demoPortfolio = []buildingSeed{
	{
		name: "Green View Apartments", address: "123 Green Street", capacity: 5,
		houses: []houseSeed{
			{"A1", "2 bedroom", "1500.00"},
			{"A2", "1 bedroom", "1200.00"},
			{"A3", "1 bedroom", "1100.00"},
			{"A4", "3 bedroom", "2500.00"},
			{"A5", "2 bedroom", "1800.00"},
		},
	},
	{
		name: "Blue Sky Towers", address: "456 Blue Avenue", capacity: 3,
		houses: []houseSeed{
			{"B1", "1 bedroom", "1000.00"},
			{"B2", "2 bedroom", "2000.00"},
			{"B3", "3 bedroom", "3000.00"},
		},
	},
}

// Result summarises a seeding run.
type Result struct {
	Buildings int
	Houses    int
	Skipped   []string
}

// Run creates the demo buildings and houses through the services, so the
// occupancy counters are derived exactly as for user-created data. Buildings
// whose name already exists are skipped.
func Run(ctx context.Context, buildings portssvc.BuildingSvcFacade, houses portssvc.HouseSvcFacade, logger *slog.Logger) (*Result, error) {
	existing, err := buildings.ListBuildings(ctx, 200, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}
	names := make(map[string]bool, len(existing))
	for _, b := range existing {
		names[b.Name] = true
	}

	res := &Result{}
	for _, bs := range demoPortfolio {
		if names[bs.name] {
			logger.Info("Building already present, skipping", slog.String("name", bs.name))
			res.Skipped = append(res.Skipped, bs.name)
			continue
		}

		building, err := buildings.CreateBuilding(ctx, dto.CreateBuildingRequest{
			Name:     bs.name,
			Address:  bs.address,
			Capacity: bs.capacity,
		}, SeedUserID)
		if err != nil {
			return res, fmt.Errorf("failed to create building %q: %w", bs.name, err)
		}
		res.Buildings++

		for _, hs := range bs.houses {
			_, err := houses.CreateHouse(ctx, dto.CreateHouseRequest{
				BuildingID: building.BuildingID,
				UnitNumber: hs.unit,
				SizeLabel:  hs.size,
				RentAmount: decimal.RequireFromString(hs.rent),
			}, SeedUserID)
			if err != nil {
				return res, fmt.Errorf("failed to create house %s in %q: %w", hs.unit, bs.name, err)
			}
			res.Houses++
		}
		logger.Info("Seeded building", slog.String("building_id", building.BuildingID), slog.String("name", bs.name), slog.Int("houses", len(bs.houses)))
	}
	return res, nil
}
