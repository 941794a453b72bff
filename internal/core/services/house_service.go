package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/SscSPs/property_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// houseService implements the HouseSvcFacade interface
type houseService struct {
	BaseService
	txm       portsrepo.TransactionManager
	houses    portsrepo.HouseRepositoryFacade
	occupancy *occupancyEngine
}

// NewHouseService creates a new house service.
func NewHouseService(repos portsrepo.RepositoryProvider, policy domain.OccupancyPolicy, options ...Option) portssvc.HouseSvcFacade {
	o := applyOptions(options)
	return &houseService{
		BaseService: BaseService{Now: o.now},
		txm:         repos.TxManager,
		houses:      repos.HouseRepo,
		occupancy:   newOccupancyEngine(policy, repos, o.metrics),
	}
}

// Ensure houseService implements the HouseSvcFacade interface
var _ portssvc.HouseSvcFacade = (*houseService)(nil)

func (s *houseService) CreateHouse(ctx context.Context, req dto.CreateHouseRequest, userID string) (*domain.House, error) {
	now := s.CurrentTime()
	house := domain.House{
		HouseID:    uuid.NewString(),
		BuildingID: req.BuildingID,
		UnitNumber: strings.TrimSpace(req.UnitNumber),
		SizeLabel:  req.SizeLabel,
		RentAmount: req.RentAmount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if house.SizeLabel == "" {
		house.SizeLabel = domain.DefaultHouseSize
	}
	if err := house.Validate(); err != nil {
		return nil, err
	}

	err := s.WithTransaction(ctx, s.txm, func(tx pgx.Tx) error {
		_, err := s.occupancy.OnHouseCreated(ctx, tx, house, userID, now)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create house",
			slog.String("building_id", house.BuildingID),
			slog.String("unit_number", house.UnitNumber))
		return nil, err
	}

	s.LogInfo(ctx, "House created successfully",
		slog.String("house_id", house.HouseID),
		slog.String("building_id", house.BuildingID))
	return &house, nil
}

func (s *houseService) GetHouseByID(ctx context.Context, houseID string) (*domain.House, error) {
	house, err := s.houses.FindHouseByID(ctx, houseID)
	if err != nil {
		if !isNotFound(err) {
			s.LogError(ctx, err, "Failed to find house by ID", slog.String("house_id", houseID))
		}
		return nil, err
	}
	return house, nil
}

func (s *houseService) ListHouses(ctx context.Context, params dto.ListHousesParams) ([]domain.House, error) {
	filter := portsrepo.HouseFilter{
		Occupied: params.Occupied,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}
	if params.BuildingID != "" {
		filter.BuildingID = &params.BuildingID
	}

	houses, err := s.houses.ListHouses(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list houses")
		return nil, fmt.Errorf("failed to list houses: %w", err)
	}
	if houses == nil {
		return []domain.House{}, nil
	}
	return houses, nil
}

func (s *houseService) UpdateHouse(ctx context.Context, houseID string, req dto.UpdateHouseRequest, userID string) (*domain.House, error) {
	now := s.CurrentTime()
	var updated *domain.House

	err := s.WithTransaction(ctx, s.txm, func(tx pgx.Tx) error {
		house, err := s.houses.FindHouseByIDForUpdate(ctx, tx, houseID)
		if err != nil {
			return err
		}
		if req.BuildingID != nil && *req.BuildingID != house.BuildingID {
			return validationf("a house cannot be moved to another building")
		}
		if req.UnitNumber != nil {
			house.UnitNumber = strings.TrimSpace(*req.UnitNumber)
		}
		if req.SizeLabel != nil {
			house.SizeLabel = *req.SizeLabel
		}
		// Existing payments keep the amount they were created with.
		if req.RentAmount != nil {
			house.RentAmount = *req.RentAmount
		}
		if err := house.Validate(); err != nil {
			return err
		}
		house.LastUpdatedAt = now
		house.LastUpdatedBy = userID
		if err := s.houses.UpdateHouseInTx(ctx, tx, *house); err != nil {
			return err
		}
		updated = house
		return nil
	})
	if err != nil {
		if !isNotFound(err) {
			s.LogError(ctx, err, "Failed to update house", slog.String("house_id", houseID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "House updated successfully", slog.String("house_id", houseID))
	return updated, nil
}

func (s *houseService) DeleteHouse(ctx context.Context, houseID string, userID string) error {
	house, err := s.houses.FindHouseByID(ctx, houseID)
	if err != nil {
		return err
	}

	err = s.WithTransaction(ctx, s.txm, func(tx pgx.Tx) error {
		return s.occupancy.OnHouseRemoved(ctx, tx, *house, userID, s.CurrentTime())
	})
	if err != nil {
		if !isNotFound(err) {
			s.LogError(ctx, err, "Failed to delete house", slog.String("house_id", houseID))
		}
		return err
	}

	s.LogInfo(ctx, "House deleted", slog.String("house_id", houseID), slog.String("building_id", house.BuildingID))
	return nil
}
