package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/SscSPs/property_management_app/internal/dto"
	"github.com/SscSPs/property_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// houseHandler handles HTTP requests related to houses.
type houseHandler struct {
	houseService portssvc.HouseSvcFacade
}

func newHouseHandler(hs portssvc.HouseSvcFacade) *houseHandler {
	return &houseHandler{houseService: hs}
}

// registerHouseRoutes registers routes related to houses.
func registerHouseRoutes(rg *gin.RouterGroup, houseService portssvc.HouseSvcFacade) {
	h := newHouseHandler(houseService)

	houses := rg.Group("/houses")
	{
		houses.POST("", h.createHouse)
		houses.GET("", h.listHouses)
		houses.GET("/:id", h.getHouse)
		houses.PUT("/:id", h.updateHouse)
		houses.DELETE("/:id", h.deleteHouse)
	}
}

// createHouse godoc
// @Summary Register a house
// @Description Adds a house to a building. Fails with 409 when the building is at capacity.
// @Tags houses
// @Accept  json
// @Produce  json
// @Param   house body dto.CreateHouseRequest true "House details"
// @Success 201 {object} dto.HouseResponse
// @Failure 400 {object} errorResponse "Invalid input"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Building not found"
// @Failure 409 {object} errorResponse "Building is full or unit number taken"
// @Failure 500 {object} errorResponse "Failed to create house"
// @Security BearerAuth
// @Router /houses [post]
func (h *houseHandler) createHouse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("building_id", req.BuildingID), slog.String("unit_number", req.UnitNumber))
	house, err := h.houseService.CreateHouse(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create house")
		return
	}

	logger.Info("House created", slog.String("house_id", house.HouseID))
	c.JSON(http.StatusCreated, dto.ToHouseResponse(house))
}

// listHouses godoc
// @Summary List houses
// @Tags houses
// @Produce  json
// @Param   building_id query string false "Only houses of this building"
// @Param   occupied query bool false "Filter by occupation"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListHousesResponse
// @Failure 400 {object} errorResponse "Invalid query parameters"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 500 {object} errorResponse "Failed to list houses"
// @Security BearerAuth
// @Router /houses [get]
func (h *houseHandler) listHouses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListHousesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	houses, err := h.houseService.ListHouses(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list houses")
		return
	}
	c.JSON(http.StatusOK, dto.ToListHousesResponse(houses))
}

// getHouse godoc
// @Summary Get a house by ID
// @Tags houses
// @Produce  json
// @Param   id path string true "House ID"
// @Success 200 {object} dto.HouseResponse
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "House not found"
// @Failure 500 {object} errorResponse "Failed to retrieve house"
// @Security BearerAuth
// @Router /houses/{id} [get]
func (h *houseHandler) getHouse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	house, err := h.houseService.GetHouseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve house")
		return
	}
	c.JSON(http.StatusOK, dto.ToHouseResponse(house))
}

// updateHouse godoc
// @Summary Update a house
// @Description Changes unit number, size or rent. Moving a house to another building is rejected.
// @Tags houses
// @Accept  json
// @Produce  json
// @Param   id path string true "House ID"
// @Param   house body dto.UpdateHouseRequest true "Fields to update"
// @Success 200 {object} dto.HouseResponse
// @Failure 400 {object} errorResponse "Invalid input"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "House not found"
// @Failure 409 {object} errorResponse "Unit number taken"
// @Failure 500 {object} errorResponse "Failed to update house"
// @Security BearerAuth
// @Router /houses/{id} [put]
func (h *houseHandler) updateHouse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	houseID := c.Param("id")
	var req dto.UpdateHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	house, err := h.houseService.UpdateHouse(c.Request.Context(), houseID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("house_id", houseID)), err, "Failed to update house")
		return
	}
	c.JSON(http.StatusOK, dto.ToHouseResponse(house))
}

// deleteHouse godoc
// @Summary Delete a house
// @Description Removes the house with its tenants and payments and recomputes the building.
// @Tags houses
// @Param   id path string true "House ID"
// @Success 204 "No Content"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "House not found"
// @Failure 500 {object} errorResponse "Failed to delete house"
// @Security BearerAuth
// @Router /houses/{id} [delete]
func (h *houseHandler) deleteHouse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	houseID := c.Param("id")
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	if err := h.houseService.DeleteHouse(c.Request.Context(), houseID, userID); err != nil {
		respondError(c, logger.With(slog.String("house_id", houseID)), err, "Failed to delete house")
		return
	}

	logger.Info("House deleted", slog.String("house_id", houseID))
	c.Status(http.StatusNoContent)
}
