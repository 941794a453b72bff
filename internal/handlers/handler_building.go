package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/SscSPs/property_management_app/internal/dto"
	"github.com/SscSPs/property_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// buildingHandler handles HTTP requests related to buildings.
type buildingHandler struct {
	buildingService portssvc.BuildingSvcFacade
}

func newBuildingHandler(bs portssvc.BuildingSvcFacade) *buildingHandler {
	return &buildingHandler{buildingService: bs}
}

// registerBuildingRoutes registers routes related to buildings.
func registerBuildingRoutes(rg *gin.RouterGroup, buildingService portssvc.BuildingSvcFacade) {
	h := newBuildingHandler(buildingService)

	buildings := rg.Group("/buildings")
	{
		buildings.POST("", h.createBuilding)
		buildings.GET("", h.listBuildings)
		buildings.GET("/:id", h.getBuilding)
		buildings.PUT("/:id", h.updateBuilding)
		buildings.DELETE("/:id", h.deleteBuilding)
		buildings.POST("/:id/recompute", h.recomputeBuilding)
	}
}

// createBuilding godoc
// @Summary Register a building
// @Description Creates a building with an optional declared capacity. Counters start at zero.
// @Tags buildings
// @Accept  json
// @Produce  json
// @Param   building body dto.CreateBuildingRequest true "Building details"
// @Success 201 {object} dto.BuildingResponse
// @Failure 400 {object} errorResponse "Invalid input"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 500 {object} errorResponse "Failed to create building"
// @Security BearerAuth
// @Router /buildings [post]
func (h *buildingHandler) createBuilding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	building, err := h.buildingService.CreateBuilding(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create building")
		return
	}

	logger.Info("Building created", slog.String("building_id", building.BuildingID))
	c.JSON(http.StatusCreated, dto.ToBuildingResponse(building))
}

// listBuildings godoc
// @Summary List buildings
// @Tags buildings
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListBuildingsResponse
// @Failure 400 {object} errorResponse "Invalid query parameters"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 500 {object} errorResponse "Failed to list buildings"
// @Security BearerAuth
// @Router /buildings [get]
func (h *buildingHandler) listBuildings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListBuildingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	buildings, err := h.buildingService.ListBuildings(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list buildings")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBuildingsResponse(buildings))
}

// getBuilding godoc
// @Summary Get a building by ID
// @Description Returns the building with its occupied, vacant and house counters.
// @Tags buildings
// @Produce  json
// @Param   id path string true "Building ID"
// @Success 200 {object} dto.BuildingResponse
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Building not found"
// @Failure 500 {object} errorResponse "Failed to retrieve building"
// @Security BearerAuth
// @Router /buildings/{id} [get]
func (h *buildingHandler) getBuilding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	building, err := h.buildingService.GetBuildingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve building")
		return
	}
	c.JSON(http.StatusOK, dto.ToBuildingResponse(building))
}

// updateBuilding godoc
// @Summary Update a building
// @Description Changes name, address or capacity. Capacity cannot drop below the number of houses.
// @Tags buildings
// @Accept  json
// @Produce  json
// @Param   id path string true "Building ID"
// @Param   building body dto.UpdateBuildingRequest true "Fields to update"
// @Success 200 {object} dto.BuildingResponse
// @Failure 400 {object} errorResponse "Invalid input"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Building not found"
// @Failure 409 {object} errorResponse "Capacity below current house count"
// @Failure 500 {object} errorResponse "Failed to update building"
// @Security BearerAuth
// @Router /buildings/{id} [put]
func (h *buildingHandler) updateBuilding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	buildingID := c.Param("id")
	var req dto.UpdateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	building, err := h.buildingService.UpdateBuilding(c.Request.Context(), buildingID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("building_id", buildingID)), err, "Failed to update building")
		return
	}
	c.JSON(http.StatusOK, dto.ToBuildingResponse(building))
}

// deleteBuilding godoc
// @Summary Delete a building
// @Description Removes the building with its houses, tenants and payments.
// @Tags buildings
// @Param   id path string true "Building ID"
// @Success 204 "No Content"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Building not found"
// @Failure 500 {object} errorResponse "Failed to delete building"
// @Security BearerAuth
// @Router /buildings/{id} [delete]
func (h *buildingHandler) deleteBuilding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	buildingID := c.Param("id")
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	if err := h.buildingService.DeleteBuilding(c.Request.Context(), buildingID, userID); err != nil {
		respondError(c, logger.With(slog.String("building_id", buildingID)), err, "Failed to delete building")
		return
	}

	logger.Info("Building deleted", slog.String("building_id", buildingID))
	c.Status(http.StatusNoContent)
}

// recomputeBuilding godoc
// @Summary Recompute building counters
// @Description Re-derives occupied, vacant and house counts from the building's houses.
// @Tags buildings
// @Produce  json
// @Param   id path string true "Building ID"
// @Success 200 {object} dto.BuildingResponse
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Building not found"
// @Failure 500 {object} errorResponse "Failed to recompute building"
// @Security BearerAuth
// @Router /buildings/{id}/recompute [post]
func (h *buildingHandler) recomputeBuilding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	buildingID := c.Param("id")
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	building, err := h.buildingService.RecomputeBuilding(c.Request.Context(), buildingID, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("building_id", buildingID)), err, "Failed to recompute building")
		return
	}
	c.JSON(http.StatusOK, dto.ToBuildingResponse(building))
}
