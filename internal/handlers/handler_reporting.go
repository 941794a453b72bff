package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/SscSPs/property_management_app/internal/dto"
	"github.com/SscSPs/property_management_app/internal/middleware"
	"github.com/SscSPs/property_management_app/internal/reports"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to portfolio reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	now              func() time.Time
}

func newReportingHandler(rs portssvc.ReportingService, now func() time.Time) *reportingHandler {
	return &reportingHandler{reportingService: rs, now: now}
}

// registerReportingRoutes registers the dashboard and report downloads
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, now func() time.Time) {
	h := newReportingHandler(reportingService, now)

	rg.GET("/dashboard/summary", h.getSummary)
	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/rent-roll.xlsx", h.getRentRoll)
	}
}

// getSummary godoc
// @Summary Portfolio summary
// @Description Building, house and tenant counts with outstanding rent and this month's collections.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.PortfolioSummaryResponse
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 500 {object} errorResponse "Failed to generate summary"
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	summary, err := h.reportingService.GetPortfolioSummary(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to generate summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToPortfolioSummaryResponse(summary))
}

// getRentRoll godoc
// @Summary Rent roll workbook
// @Description Downloads an xlsx workbook with one row per tenant.
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 500 {object} errorResponse "Failed to generate rent roll"
// @Security BearerAuth
// @Router /reports/rent-roll.xlsx [get]
func (h *reportingHandler) getRentRoll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entries, err := h.reportingService.GetRentRoll(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to generate rent roll")
		return
	}

	data, err := reports.GenerateRentRoll(entries)
	if err != nil {
		respondError(c, logger, err, "Failed to generate rent roll")
		return
	}

	logger.Info("Rent roll generated", slog.Int("rows", len(entries)))
	filename := fmt.Sprintf("rent-roll-%s.xlsx", h.now().Format(time.DateOnly))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, reports.RentRollContentType, data)
}
