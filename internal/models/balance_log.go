package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceAuditEntry is one immutable balance-change row.
type BalanceAuditEntry struct {
	ID              string          `db:"id" json:"id"`
	TenantID        string          `db:"tenant_id" json:"tenantID"`
	RunID           string          `db:"run_id" json:"runID"`
	TransactionID   string          `db:"transaction_id" json:"transactionID"`
	TransactionType string          `db:"transaction_type" json:"transactionType"`
	Stream          string          `db:"stream" json:"stream"`
	Account         string          `db:"account" json:"account"`
	BalanceBefore   decimal.Decimal `db:"balance_before" json:"balanceBefore"`
	BalanceAfter    decimal.Decimal `db:"balance_after" json:"balanceAfter"`
	ChangeAmount    decimal.Decimal `db:"change_amount" json:"changeAmount"`
	Description     string          `db:"description" json:"description"`
	Date            time.Time       `db:"date" json:"date"`
	IsMigration     bool            `db:"is_migration" json:"isMigration"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
	Ordinal         int64           `db:"ordinal" json:"ordinal"`
}

// BalanceSnapshot is a point-in-time balance row.
type BalanceSnapshot struct {
	ID            string          `db:"id" json:"id"`
	TenantID      string          `db:"tenant_id" json:"tenantID"`
	Account       string          `db:"account" json:"account"`
	Balance       decimal.Decimal `db:"balance" json:"balance"`
	TransactionID string          `db:"transaction_id" json:"transactionID"`
	RunID         string          `db:"run_id" json:"runID"`
	Timestamp     time.Time       `db:"timestamp" json:"timestamp"`
}
