package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/nonprofit_ledger/internal/core/ports/services"
	"github.com/SscSPs/nonprofit_ledger/internal/dto"
	"github.com/SscSPs/nonprofit_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maintenanceHandler exposes the balance replay, its audit trail and the
// legacy cleanup. The mutating routes are expected behind a rate limiter.
type maintenanceHandler struct {
	replayService  portssvc.BalanceReplaySvc
	cleanupService portssvc.LegacyCleanupSvc
}

func newMaintenanceHandler(rs portssvc.BalanceReplaySvc, cs portssvc.LegacyCleanupSvc) *maintenanceHandler {
	return &maintenanceHandler{replayService: rs, cleanupService: cs}
}

// registerMaintenanceRoutes registers the per-tenant maintenance routes.
// limit guards the replay and cleanup routes.
func registerMaintenanceRoutes(rg *gin.RouterGroup, h *maintenanceHandler, limit gin.HandlerFunc) {
	maintenance := rg.Group("/maintenance", limit)
	{
		maintenance.POST("/replay", h.runReplay)
		maintenance.POST("/cleanup-legacy", h.cleanupLegacy)
	}
	rg.GET("/balances", h.getBalances)
	rg.GET("/audit", h.listAudit)
}

// runReplay godoc
// @Summary Replay a tenant's balances
// @Description Recomputes running cash and bank balances over the full history, stamps every record and writes an audit trail
// @Tags maintenance
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param request body dto.ReplayRequest false "Opening balances"
// @Success 200 {object} domain.ReplaySummary
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Balance replay failed"
// @Security BearerAuth
// @Router /tenants/{tenantID}/maintenance/replay [post]
func (h *maintenanceHandler) runReplay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.ReplayRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Failed to bind JSON for RunReplay", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	opening, err := h.openingBalances(c, tenantID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to read latest balances")
		return
	}

	summary, err := h.replayService.RunBalanceReplay(c.Request.Context(), tenantID, opening)
	if err != nil {
		respondError(c, logger, err, "Balance replay failed")
		return
	}

	logger.Info("Balance replay finished",
		slog.String("run_id", summary.RunID),
		slog.Int("updated", summary.UpdatedCount),
		slog.Int("failed", summary.Failed))
	c.JSON(http.StatusOK, summary)
}

func (h *maintenanceHandler) openingBalances(c *gin.Context, tenantID string, req dto.ReplayRequest) (domain.OpeningBalances, error) {
	var opening domain.OpeningBalances
	if req.UseLatestSnapshot && (req.OpeningCash == nil || req.OpeningBank == nil) {
		latest, err := h.replayService.LatestBalances(c.Request.Context(), tenantID)
		if err != nil {
			return opening, err
		}
		opening.Cash = latest[domain.Cash].Balance
		opening.Bank = latest[domain.Bank].Balance
	}
	if req.OpeningCash != nil {
		opening.Cash = *req.OpeningCash
	}
	if req.OpeningBank != nil {
		opening.Bank = *req.OpeningBank
	}
	return opening, nil
}

// runReplayForTenants godoc
// @Summary Replay several tenants
// @Description Replays independent tenants concurrently. A failed tenant is reported in its own summary.
// @Tags maintenance
// @Accept json
// @Produce json
// @Param request body dto.BatchReplayRequest true "Tenants and opening balances"
// @Success 200 {array} domain.ReplaySummary
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Balance replay failed"
// @Security BearerAuth
// @Router /maintenance/replay-all [post]
func (h *maintenanceHandler) runReplayForTenants(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BatchReplayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RunReplayForTenants", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	summaries, err := h.replayService.RunBalanceReplayForTenants(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, logger, err, "Balance replay failed")
		return
	}

	failed := 0
	for _, s := range summaries {
		if s.Error != "" {
			failed++
		}
	}
	logger.Info("Multi-tenant balance replay finished", slog.Int("tenants", len(summaries)), slog.Int("failed_tenants", failed))
	c.JSON(http.StatusOK, summaries)
}

// cleanupLegacy godoc
// @Summary Remove legacy cash-expense movements
// @Description Deletes mirrored cash-expense movements. Safe to run repeatedly.
// @Tags maintenance
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} domain.CleanupSummary
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Legacy cleanup failed"
// @Security BearerAuth
// @Router /tenants/{tenantID}/maintenance/cleanup-legacy [post]
func (h *maintenanceHandler) cleanupLegacy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.cleanupService.CleanupLegacyCashExpenses(c.Request.Context(), c.Param("tenantID"))
	if err != nil {
		respondError(c, logger, err, "Legacy cleanup failed")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getBalances godoc
// @Summary Latest cash and bank balances
// @Description Returns the newest balance snapshot per money account. Accounts never replayed are omitted.
// @Tags maintenance
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} dto.BalancesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to read balances"
// @Security BearerAuth
// @Router /tenants/{tenantID}/balances [get]
func (h *maintenanceHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	latest, err := h.replayService.LatestBalances(c.Request.Context(), c.Param("tenantID"))
	if err != nil {
		respondError(c, logger, err, "Failed to read balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalancesResponse(latest))
}

// listAudit godoc
// @Summary List balance audit entries
// @Description Returns the newest audit entries first
// @Tags maintenance
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param limit query int false "Maximum number of entries" default(50)
// @Success 200 {object} dto.AuditLogResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list audit entries"
// @Security BearerAuth
// @Router /tenants/{tenantID}/audit [get]
func (h *maintenanceHandler) listAudit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAuditParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListAudit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.replayService.ListAuditEntries(c.Request.Context(), c.Param("tenantID"), params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to list audit entries")
		return
	}
	c.JSON(http.StatusOK, dto.AuditLogResponse{Entries: entries})
}
