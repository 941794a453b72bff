package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/SscSPs/property_management_app/internal/dto"
	"github.com/SscSPs/property_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tenantHandler handles HTTP requests related to tenants.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
}

func newTenantHandler(ts portssvc.TenantSvcFacade) *tenantHandler {
	return &tenantHandler{tenantService: ts}
}

// registerTenantRoutes registers routes related to tenants.
func registerTenantRoutes(rg *gin.RouterGroup, tenantService portssvc.TenantSvcFacade) {
	h := newTenantHandler(tenantService)

	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.createTenant)
		tenants.GET("", h.listTenants)
		tenants.GET("/:id", h.getTenant)
		tenants.PUT("/:id", h.updateTenant)
		tenants.DELETE("/:id", h.deleteTenant)
		tenants.GET("/:id/balance", h.getTenantBalance)
	}
}

// createTenant godoc
// @Summary Move a tenant in
// @Description Creates a tenant in a house. Fails with 409 when the house already has an active tenant.
// @Tags tenants
// @Accept  json
// @Produce  json
// @Param   tenant body dto.CreateTenantRequest true "Tenant details"
// @Success 201 {object} dto.TenantResponse
// @Failure 400 {object} errorResponse "Invalid input or phone number"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "House not found"
// @Failure 409 {object} errorResponse "House occupied or phone/ID number taken"
// @Failure 500 {object} errorResponse "Failed to create tenant"
// @Security BearerAuth
// @Router /tenants [post]
func (h *tenantHandler) createTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("house_id", req.HouseID))
	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create tenant")
		return
	}

	logger.Info("Tenant created", slog.String("tenant_id", tenant.TenantID))
	c.JSON(http.StatusCreated, dto.ToTenantResponse(tenant))
}

// listTenants godoc
// @Summary List tenants
// @Tags tenants
// @Produce  json
// @Param   active query bool false "Filter by active flag"
// @Param   house_id query string false "Only tenants of this house"
// @Param   name query string false "Case-insensitive name match"
// @Param   ordering query string false "name, -name, created_at or -created_at"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListTenantsResponse
// @Failure 400 {object} errorResponse "Invalid query parameters"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 500 {object} errorResponse "Failed to list tenants"
// @Security BearerAuth
// @Router /tenants [get]
func (h *tenantHandler) listTenants(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTenantsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	tenants, err := h.tenantService.ListTenants(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list tenants")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTenantsResponse(tenants))
}

// getTenant godoc
// @Summary Get a tenant by ID
// @Tags tenants
// @Produce  json
// @Param   id path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Tenant not found"
// @Failure 500 {object} errorResponse "Failed to retrieve tenant"
// @Security BearerAuth
// @Router /tenants/{id} [get]
func (h *tenantHandler) getTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, err := h.tenantService.GetTenantByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve tenant")
		return
	}
	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// updateTenant godoc
// @Summary Update a tenant
// @Description Edits tenant fields. Deactivating frees the house, reactivating or moving checks the target house for vacancy.
// @Tags tenants
// @Accept  json
// @Produce  json
// @Param   id path string true "Tenant ID"
// @Param   tenant body dto.UpdateTenantRequest true "Fields to update"
// @Success 200 {object} dto.TenantResponse
// @Failure 400 {object} errorResponse "Invalid input"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Tenant or house not found"
// @Failure 409 {object} errorResponse "Target house occupied"
// @Failure 500 {object} errorResponse "Failed to update tenant"
// @Security BearerAuth
// @Router /tenants/{id} [put]
func (h *tenantHandler) updateTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("id")
	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("tenant_id", tenantID)), err, "Failed to update tenant")
		return
	}
	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// deleteTenant godoc
// @Summary Delete a tenant
// @Description Removes the tenant with their payments and frees the house.
// @Tags tenants
// @Param   id path string true "Tenant ID"
// @Success 204 "No Content"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Tenant not found"
// @Failure 500 {object} errorResponse "Failed to delete tenant"
// @Security BearerAuth
// @Router /tenants/{id} [delete]
func (h *tenantHandler) deleteTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("id")
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	if err := h.tenantService.DeleteTenant(c.Request.Context(), tenantID, userID); err != nil {
		respondError(c, logger.With(slog.String("tenant_id", tenantID)), err, "Failed to delete tenant")
		return
	}

	logger.Info("Tenant deleted", slog.String("tenant_id", tenantID))
	c.Status(http.StatusNoContent)
}

// getTenantBalance godoc
// @Summary Get outstanding rent
// @Description Sums the amounts of the tenant's unpaid payments.
// @Tags tenants
// @Produce  json
// @Param   id path string true "Tenant ID"
// @Success 200 {object} dto.TenantBalanceResponse
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Tenant not found"
// @Failure 500 {object} errorResponse "Failed to calculate balance"
// @Security BearerAuth
// @Router /tenants/{id}/balance [get]
func (h *tenantHandler) getTenantBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("id")

	outstanding, err := h.tenantService.GetOutstandingRent(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, logger.With(slog.String("tenant_id", tenantID)), err, "Failed to calculate balance")
		return
	}
	c.JSON(http.StatusOK, dto.TenantBalanceResponse{TenantID: tenantID, OutstandingRent: outstanding})
}
