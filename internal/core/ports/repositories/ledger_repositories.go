package repositories

import (
	"context"

	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
)

// TransactionReader pages through a tenant's transaction log by ID.
type TransactionReader interface {
	// ListTransactions returns up to limit records after cursor, plus the cursor
	// of the next page. An empty next cursor marks the last page.
	ListTransactions(ctx context.Context, tenantID string, limit int, cursor string) ([]domain.Transaction, string, error)
}

// TransactionWriter writes replay results back onto transactions.
type TransactionWriter interface {
	// PatchTransactionBalances updates only the balance fields. Stores that cannot
	// do field-level updates return apperrors.ErrPatchUnsupported.
	PatchTransactionBalances(ctx context.Context, tenantID string, id string, stamp domain.BalanceStamp) error

	// OverwriteTransaction upserts the full record.
	OverwriteTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// MovementReader pages through a tenant's cash movements by ID.
type MovementReader interface {
	ListMovements(ctx context.Context, tenantID string, limit int, cursor string) ([]domain.Movement, string, error)
}

// MovementWriter writes and deletes cash movements.
type MovementWriter interface {
	PatchMovementBalances(ctx context.Context, tenantID string, id string, stamp domain.BalanceStamp) error
	OverwriteMovement(ctx context.Context, movement domain.Movement) error
	// DeleteMovement removes a movement. Returns apperrors.ErrNotFound when absent.
	DeleteMovement(ctx context.Context, tenantID string, id string) error
}

// MovementRepositoryFacade combines all movement-related repository interfaces
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}

// BalanceLogRepository stores the audit trail and balance snapshots of replay runs.
type BalanceLogRepository interface {
	SaveAuditEntries(ctx context.Context, tenantID string, entries []domain.AuditLogEntry) error
	SaveSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error
	// LatestSnapshots returns the newest snapshot per money account. Accounts
	// without a snapshot are absent from the map.
	LatestSnapshots(ctx context.Context, tenantID string) (map[domain.BalanceAccount]domain.BalanceSnapshot, error)
	// ListAuditEntries returns the newest entries first.
	ListAuditEntries(ctx context.Context, tenantID string, limit int) ([]domain.AuditLogEntry, error)
}
