package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/nonprofit_ledger/internal/core/ports/services"
	"github.com/SscSPs/nonprofit_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to activity reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := &reportingHandler{reportingService: reportingService}

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/activity", h.getActivity)
	}
}

// getActivity godoc
// @Summary Summarize a tenant's activity
// @Description Groups expenses and income by category and movements by report bucket
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} domain.ActivityReport
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /tenants/{tenantID}/reports/activity [get]
func (h *reportingHandler) getActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.SummarizeActivity(c.Request.Context(), c.Param("tenantID"))
	if err != nil {
		respondError(c, logger, err, "Failed to generate report")
		return
	}

	logger.Info("Activity report generated",
		slog.Int("expense_categories", len(report.ExpensesByCategory)),
		slog.Int("movement_buckets", len(report.MovementsByBucket)))
	c.JSON(http.StatusOK, report)
}
