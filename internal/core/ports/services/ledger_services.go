package services

import (
	"context"

	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
)

// JournalBuilderSvc generates balanced postings for a transaction.
type JournalBuilderSvc interface {
	BuildJournalEntries(ctx context.Context, tenantID string, txn domain.Transaction) ([]domain.JournalEntry, error)
}

// BalanceReplaySvc rebuilds running cash and bank balances from the full history.
type BalanceReplaySvc interface {
	// RunBalanceReplay replays one tenant from the given opening balances.
	// Per-record write failures are counted in the summary, not returned.
	RunBalanceReplay(ctx context.Context, tenantID string, opening domain.OpeningBalances) (*domain.ReplaySummary, error)

	// RunBalanceReplayForTenants replays independent tenants concurrently.
	RunBalanceReplayForTenants(ctx context.Context, reqs []domain.TenantReplayRequest) ([]domain.ReplaySummary, error)

	// LatestBalances returns the newest snapshot per money account.
	LatestBalances(ctx context.Context, tenantID string) (map[domain.BalanceAccount]domain.BalanceSnapshot, error)

	// ListAuditEntries returns the newest audit entries first.
	ListAuditEntries(ctx context.Context, tenantID string, limit int) ([]domain.AuditLogEntry, error)
}

// LegacyCleanupSvc removes obsolete mirrored cash-expense movements.
type LegacyCleanupSvc interface {
	CleanupLegacyCashExpenses(ctx context.Context, tenantID string) (*domain.CleanupSummary, error)
}

// ReportingSvc summarizes a tenant's history.
type ReportingSvc interface {
	SummarizeActivity(ctx context.Context, tenantID string) (*domain.ActivityReport, error)
}
