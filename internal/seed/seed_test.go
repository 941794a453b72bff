package seed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/SscSPs/property_management_app/internal/apperrors"
	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/SscSPs/property_management_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBuildings struct {
	mock.Mock
}

func (m *mockBuildings) GetBuildingByID(ctx context.Context, id string) (*domain.Building, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Building), args.Error(1)
}
func (m *mockBuildings) ListBuildings(ctx context.Context, limit int, offset int) ([]domain.Building, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Building), args.Error(1)
}
func (m *mockBuildings) CreateBuilding(ctx context.Context, req dto.CreateBuildingRequest, userID string) (*domain.Building, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Building), args.Error(1)
}
func (m *mockBuildings) UpdateBuilding(ctx context.Context, id string, req dto.UpdateBuildingRequest, userID string) (*domain.Building, error) {
	args := m.Called(ctx, id, req, userID)
	return args.Get(0).(*domain.Building), args.Error(1)
}
func (m *mockBuildings) DeleteBuilding(ctx context.Context, id string, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}
func (m *mockBuildings) RecomputeBuilding(ctx context.Context, id string, userID string) (*domain.Building, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(*domain.Building), args.Error(1)
}

type mockHouses struct {
	mock.Mock
}

func (m *mockHouses) GetHouseByID(ctx context.Context, id string) (*domain.House, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.House), args.Error(1)
}
func (m *mockHouses) ListHouses(ctx context.Context, params dto.ListHousesParams) ([]domain.House, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.House), args.Error(1)
}
func (m *mockHouses) CreateHouse(ctx context.Context, req dto.CreateHouseRequest, userID string) (*domain.House, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.House), args.Error(1)
}
func (m *mockHouses) UpdateHouse(ctx context.Context, id string, req dto.UpdateHouseRequest, userID string) (*domain.House, error) {
	args := m.Called(ctx, id, req, userID)
	return args.Get(0).(*domain.House), args.Error(1)
}
func (m *mockHouses) DeleteHouse(ctx context.Context, id string, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunCreatesDemoPortfolio(t *testing.T) {
	buildings := new(mockBuildings)
	houses := new(mockHouses)

	buildings.On("ListBuildings", mock.Anything, 200, 0).Return([]domain.Building{}, nil)
	buildings.On("CreateBuilding", mock.Anything, mock.MatchedBy(func(r dto.CreateBuildingRequest) bool {
		return r.Name == "Green View Apartments" && r.Capacity == 5
	}), SeedUserID).Return(&domain.Building{BuildingID: "b-green"}, nil).Once()
	buildings.On("CreateBuilding", mock.Anything, mock.MatchedBy(func(r dto.CreateBuildingRequest) bool {
		return r.Name == "Blue Sky Towers" && r.Capacity == 3
	}), SeedUserID).Return(&domain.Building{BuildingID: "b-blue"}, nil).Once()

	var units []string
	houses.On("CreateHouse", mock.Anything, mock.Anything, SeedUserID).
		Run(func(args mock.Arguments) {
			req := args.Get(1).(dto.CreateHouseRequest)
			units = append(units, req.BuildingID+"/"+req.UnitNumber)
		}).
		Return(&domain.House{}, nil)

	res, err := Run(context.Background(), buildings, houses, quietLogger())

	require.NoError(t, err)
	assert.Equal(t, 2, res.Buildings)
	assert.Equal(t, 8, res.Houses)
	assert.Equal(t, []string{
		"b-green/A1", "b-green/A2", "b-green/A3", "b-green/A4", "b-green/A5",
		"b-blue/B1", "b-blue/B2", "b-blue/B3",
	}, units)
	buildings.AssertExpectations(t)
}

func TestRunSkipsExistingBuildings(t *testing.T) {
	buildings := new(mockBuildings)
	houses := new(mockHouses)

	buildings.On("ListBuildings", mock.Anything, 200, 0).Return([]domain.Building{
		{BuildingID: "b-green", Name: "Green View Apartments"},
	}, nil)
	buildings.On("CreateBuilding", mock.Anything, mock.MatchedBy(func(r dto.CreateBuildingRequest) bool {
		return r.Name == "Blue Sky Towers"
	}), SeedUserID).Return(&domain.Building{BuildingID: "b-blue"}, nil).Once()
	houses.On("CreateHouse", mock.Anything, mock.Anything, SeedUserID).Return(&domain.House{}, nil).Times(3)

	res, err := Run(context.Background(), buildings, houses, quietLogger())

	require.NoError(t, err)
	assert.Equal(t, []string{"Green View Apartments"}, res.Skipped)
	assert.Equal(t, 3, res.Houses)
	houses.AssertExpectations(t)
}

func TestRunStopsOnServiceError(t *testing.T) {
	buildings := new(mockBuildings)
	houses := new(mockHouses)

	buildings.On("ListBuildings", mock.Anything, 200, 0).Return([]domain.Building{}, nil)
	buildings.On("CreateBuilding", mock.Anything, mock.Anything, SeedUserID).Return(&domain.Building{BuildingID: "b-green"}, nil).Once()
	houses.On("CreateHouse", mock.Anything, mock.Anything, SeedUserID).Return(nil, apperrors.ErrCapacityExceeded).Once()

	res, err := Run(context.Background(), buildings, houses, quietLogger())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCapacityExceeded))
	assert.Equal(t, 1, res.Buildings)
	assert.Equal(t, 0, res.Houses)
}
