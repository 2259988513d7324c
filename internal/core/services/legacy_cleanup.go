package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/nonprofit_ledger/internal/apperrors"
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/nonprofit_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/nonprofit_ledger/internal/core/ports/services"
)

// legacyCleanup implements the LegacyCleanupSvc interface
type legacyCleanup struct {
	BaseService
	movements portsrepo.MovementRepositoryFacade
	loader    historyLoader
}

// LegacyCleanupOption is a functional option for configuring the cleanup pass
type LegacyCleanupOption func(*legacyCleanup)

// WithCleanupPaging sets the page size and record cap of the movement scan.
func WithCleanupPaging(pageSize, maxRecords int) LegacyCleanupOption {
	return func(s *legacyCleanup) {
		s.loader = newHistoryLoader(nil, s.movements, pageSize, maxRecords)
	}
}

// NewLegacyCleanup creates the cleanup pass over the movement store.
func NewLegacyCleanup(movs portsrepo.MovementRepositoryFacade, options ...LegacyCleanupOption) portssvc.LegacyCleanupSvc {
	svc := &legacyCleanup{
		movements: movs,
		loader:    newHistoryLoader(nil, movs, 0, 0),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LegacyCleanupSvc = (*legacyCleanup)(nil)

// CleanupLegacyCashExpenses deletes every cash-expense movement of the tenant.
// A record that disappeared between the scan and the delete is neither removed
// nor failed, so a second run reports zero removals.
func (s *legacyCleanup) CleanupLegacyCashExpenses(ctx context.Context, tenantID string) (*domain.CleanupSummary, error) {
	movs, truncated, err := s.loader.loadMovements(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Legacy cleanup aborted: movement scan failed", slog.String("tenant_id", tenantID))
		return nil, apperrors.NewAppError(apperrors.ErrInternal, "failed to load movements", err)
	}
	if truncated {
		s.LogWarn(ctx, "Movement scan hit the record cap; remaining records are cleaned on the next run",
			slog.String("tenant_id", tenantID))
	}

	summary := &domain.CleanupSummary{Checked: len(movs)}
	for _, m := range movs {
		if domain.ClassifyMovement(m) != domain.KindLegacyCashExpense {
			continue
		}
		err := s.movements.DeleteMovement(ctx, tenantID, m.ID)
		switch {
		case err == nil:
			summary.Removed++
		case errors.Is(err, apperrors.ErrNotFound):
			s.LogDebug(ctx, "Legacy movement already gone", slog.String("movement_id", m.ID))
		default:
			summary.Failed++
			s.LogError(ctx, err, "Failed to delete legacy movement",
				slog.String("tenant_id", tenantID),
				slog.String("movement_id", m.ID))
		}
	}

	s.LogInfo(ctx, "Legacy cleanup finished",
		slog.String("tenant_id", tenantID),
		slog.Int("checked", summary.Checked),
		slog.Int("removed", summary.Removed),
		slog.Int("failed", summary.Failed))
	return summary, nil
}
