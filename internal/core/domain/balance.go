package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReplayStrategy identifies the replay algorithm that produced a set of
// audit entries and snapshots. It doubles as the snapshot sentinel.
const ReplayStrategy = "balance-replay/v2"

// Stream is the log a replayed record came from.
type Stream string

const (
	TransactionStream Stream = "transaction"
	MovementStream    Stream = "movement"
)

// AuditLogEntry is an immutable record of a single balance change.
type AuditLogEntry struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"tenantID"`
	RunID           string          `json:"runID"`
	TransactionID   string          `json:"transactionID"`
	TransactionType string          `json:"transactionType"`
	Stream          Stream          `json:"stream"`
	Account         BalanceAccount  `json:"account"`
	BalanceBefore   decimal.Decimal `json:"balanceBefore"`
	BalanceAfter    decimal.Decimal `json:"balanceAfter"`
	ChangeAmount    decimal.Decimal `json:"changeAmount"`
	Description     string          `json:"description"`
	Date            time.Time       `json:"date"`
	IsMigration     bool            `json:"isMigration"`
	CreatedAt       time.Time       `json:"createdAt"`
	// Ordinal is the entry's position in its run's walk. Entries of one run
	// share CreatedAt, so listings order by (CreatedAt, Ordinal).
	Ordinal int64 `json:"ordinal"`
}

// BalanceSnapshot is a persisted point-in-time balance of one money account.
type BalanceSnapshot struct {
	ID            string          `json:"id"`
	TenantID      string          `json:"tenantID"`
	Account       BalanceAccount  `json:"account"`
	Balance       decimal.Decimal `json:"balance"`
	TransactionID string          `json:"transactionID"`
	RunID         string          `json:"runID"`
	Timestamp     time.Time       `json:"timestamp"`
}

// OpeningBalances are the caller-supplied starting point of a replay.
type OpeningBalances struct {
	Cash decimal.Decimal `json:"cash"`
	Bank decimal.Decimal `json:"bank"`
}

// ReplaySummary reports the outcome of one replay run. A run with failed
// records still returns a summary; callers decide whether it was acceptable.
type ReplaySummary struct {
	TenantID         string          `json:"tenantID"`
	RunID            string          `json:"runID"`
	Strategy         string          `json:"strategy"`
	UpdatedCount     int             `json:"updatedCount"`
	AuditCount       int             `json:"auditCount"`
	FinalCashBalance decimal.Decimal `json:"finalCashBalance"`
	FinalBankBalance decimal.Decimal `json:"finalBankBalance"`
	Attempted        int             `json:"attempted"`
	Patched          int             `json:"patched"`
	Overwritten      int             `json:"overwritten"`
	Failed           int             `json:"failed"`
	SkippedSnapshots int             `json:"skippedSnapshots"`
	Truncated        bool            `json:"truncated"`
	// Error is set when a tenant of a multi-tenant run could not be replayed.
	Error string `json:"error,omitempty"`
}

// CleanupSummary reports the outcome of a legacy cleanup pass.
type CleanupSummary struct {
	Checked int `json:"checked"`
	Removed int `json:"removed"`
	Failed  int `json:"failed"`
}

// TenantReplayRequest asks for one tenant's replay within a multi-tenant run.
type TenantReplayRequest struct {
	TenantID string          `json:"tenantID"`
	Opening  OpeningBalances `json:"opening"`
}
