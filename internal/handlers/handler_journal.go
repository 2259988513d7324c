package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/nonprofit_ledger/internal/apperrors"
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/nonprofit_ledger/internal/core/ports/services"
	"github.com/SscSPs/nonprofit_ledger/internal/dto"
	"github.com/SscSPs/nonprofit_ledger/internal/middleware"
	"github.com/SscSPs/nonprofit_ledger/internal/utils/accounting"
	"github.com/gin-gonic/gin"
)

type journalHandler struct {
	journalService portssvc.JournalBuilderSvc
	accountService portssvc.AccountSvcFacade
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalBuilderSvc, accountService portssvc.AccountSvcFacade) {
	h := &journalHandler{journalService: journalService, accountService: accountService}
	rg.POST("/journal/preview", h.previewJournal)
}

// previewJournal godoc
// @Summary Preview the journal entries of a transaction
// @Description Generates the balanced postings for a transaction without persisting anything, with each posting's effect on its account
// @Tags journal
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param transaction body dto.JournalPreviewRequest true "Transaction"
// @Success 200 {object} dto.JournalPreviewResponse
// @Failure 400 {object} map[string]string "Invalid transaction"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build journal entries"
// @Security BearerAuth
// @Router /tenants/{tenantID}/journal/preview [post]
func (h *journalHandler) previewJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	var req dto.JournalPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entries, err := h.journalService.BuildJournalEntries(c.Request.Context(), tenantID, req.ToTransaction(tenantID))
	if err != nil {
		respondError(c, logger, err, "Failed to build journal entries")
		return
	}

	effects, err := h.postingEffects(c.Request.Context(), logger, tenantID, entries)
	if err != nil {
		respondError(c, logger, err, "Failed to look up posting accounts")
		return
	}

	debit, credit := accounting.SumPostings(entries)
	c.JSON(http.StatusOK, dto.JournalPreviewResponse{Entries: entries, Effects: effects, TotalDebit: debit, TotalCredit: credit})
}

func (h *journalHandler) postingEffects(ctx context.Context, logger *slog.Logger, tenantID string, entries []domain.JournalEntry) ([]dto.PostingEffect, error) {
	effects := make([]dto.PostingEffect, 0, len(entries))
	for _, e := range entries {
		account, err := h.accountService.GetAccount(ctx, tenantID, e.AccountCode)
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Posting account not in chart", slog.String("code", e.AccountCode))
			continue
		}
		if err != nil {
			return nil, err
		}
		change, err := accounting.SignedBalanceChange(e, account.Type)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrInternal, "account has an invalid type", err)
		}
		effects = append(effects, dto.PostingEffect{AccountCode: e.AccountCode, AccountType: account.Type, Change: change})
	}
	return effects, nil
}
