package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/SscSPs/property_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// buildingService implements the BuildingSvcFacade interface
type buildingService struct {
	BaseService
	txm       portsrepo.TransactionManager
	buildings portsrepo.BuildingRepositoryFacade
	houses    portsrepo.HouseRepositoryFacade
	occupancy *occupancyEngine
}

// NewBuildingService creates a new building service.
func NewBuildingService(repos portsrepo.RepositoryProvider, policy domain.OccupancyPolicy, options ...Option) portssvc.BuildingSvcFacade {
	o := applyOptions(options)
	svc := &buildingService{
		BaseService: BaseService{Now: o.now},
		txm:         repos.TxManager,
		buildings:   repos.BuildingRepo,
		houses:      repos.HouseRepo,
		occupancy:   newOccupancyEngine(policy, repos, o.metrics),
	}
	svc.occupancy.Now = o.now
	return svc
}

// Ensure buildingService implements the BuildingSvcFacade interface
var _ portssvc.BuildingSvcFacade = (*buildingService)(nil)

func (s *buildingService) CreateBuilding(ctx context.Context, req dto.CreateBuildingRequest, userID string) (*domain.Building, error) {
	now := s.CurrentTime()
	building := domain.Building{
		BuildingID: uuid.NewString(),
		Name:       req.Name,
		Address:    req.Address,
		Capacity:   req.Capacity,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := building.Validate(); err != nil {
		return nil, err
	}
	// No houses yet: every declared slot is vacant.
	domain.RecomputeBuilding(&building, nil)

	err := s.WithTransaction(ctx, s.txm, func(tx pgx.Tx) error {
		return s.buildings.SaveBuildingInTx(ctx, tx, building)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save building", slog.String("name", building.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Building created successfully", slog.String("building_id", building.BuildingID))
	return &building, nil
}

func (s *buildingService) GetBuildingByID(ctx context.Context, buildingID string) (*domain.Building, error) {
	building, err := s.buildings.FindBuildingByID(ctx, buildingID)
	if err != nil {
		if !isNotFound(err) {
			s.LogError(ctx, err, "Failed to find building by ID", slog.String("building_id", buildingID))
		}
		return nil, err
	}
	return building, nil
}

func (s *buildingService) ListBuildings(ctx context.Context, limit int, offset int) ([]domain.Building, error) {
	buildings, err := s.buildings.ListBuildings(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list buildings", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}
	if buildings == nil {
		return []domain.Building{}, nil
	}
	return buildings, nil
}

func (s *buildingService) UpdateBuilding(ctx context.Context, buildingID string, req dto.UpdateBuildingRequest, userID string) (*domain.Building, error) {
	now := s.CurrentTime()
	var updated *domain.Building

	err := s.WithTransaction(ctx, s.txm, func(tx pgx.Tx) error {
		building, err := s.buildings.FindBuildingByIDForUpdate(ctx, tx, buildingID)
		if err != nil {
			return err
		}
		if req.Name != nil {
			building.Name = *req.Name
		}
		if req.Address != nil {
			building.Address = *req.Address
		}
		if req.Capacity != nil && *req.Capacity != building.Capacity {
			houses, err := s.houses.ListHousesByBuildingInTx(ctx, tx, buildingID)
			if err != nil {
				return err
			}
			if err := domain.CheckCapacityChange(*req.Capacity, len(houses)); err != nil {
				return fmt.Errorf("building %s: %w", building.Name, err)
			}
			building.Capacity = *req.Capacity
		}
		if err := building.Validate(); err != nil {
			return err
		}
		if err := s.occupancy.recompute(ctx, tx, building, userID, now); err != nil {
			return err
		}
		updated = building
		return nil
	})
	if err != nil {
		if !isNotFound(err) {
			s.LogError(ctx, err, "Failed to update building", slog.String("building_id", buildingID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Building updated successfully", slog.String("building_id", buildingID))
	return updated, nil
}

func (s *buildingService) DeleteBuilding(ctx context.Context, buildingID string, userID string) error {
	err := s.WithTransaction(ctx, s.txm, func(tx pgx.Tx) error {
		if _, err := s.buildings.FindBuildingByIDForUpdate(ctx, tx, buildingID); err != nil {
			return err
		}
		return s.buildings.DeleteBuildingInTx(ctx, tx, buildingID)
	})
	if err != nil {
		if !isNotFound(err) {
			s.LogError(ctx, err, "Failed to delete building", slog.String("building_id", buildingID))
		}
		return err
	}

	s.LogInfo(ctx, "Building deleted", slog.String("building_id", buildingID), slog.String("user_id", userID))
	return nil
}

func (s *buildingService) RecomputeBuilding(ctx context.Context, buildingID string, userID string) (*domain.Building, error) {
	var building *domain.Building
	err := s.WithTransaction(ctx, s.txm, func(tx pgx.Tx) error {
		var err error
		building, err = s.occupancy.RecomputeBuilding(ctx, tx, buildingID, userID, s.CurrentTime())
		return err
	})
	if err != nil {
		if !isNotFound(err) {
			s.LogError(ctx, err, "Failed to recompute building", slog.String("building_id", buildingID))
		}
		return nil, err
	}
	return building, nil
}
