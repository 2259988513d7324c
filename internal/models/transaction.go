package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerTransaction is the stored form of a client-recorded expense, income or transfer.
type LedgerTransaction struct {
	ID               string           `db:"id" json:"id"`
	TenantID         string           `db:"tenant_id" json:"tenantID"`
	Date             time.Time        `db:"date" json:"date"`
	CreatedAt        *time.Time       `db:"created_at" json:"createdAt,omitempty"`
	Sequence         int64            `db:"sequence" json:"sequence"`
	Type             string           `db:"type" json:"type"`
	Subtype          string           `db:"subtype" json:"subtype,omitempty"`
	Amount           decimal.Decimal  `db:"amount" json:"amount"`
	Category         string           `db:"category" json:"category"`
	Subcategory      string           `db:"subcategory" json:"subcategory,omitempty"`
	Account          string           `db:"account" json:"account,omitempty"`
	PaymentMethod    string           `db:"payment_method" json:"paymentMethod,omitempty"`
	FromAccount      string           `db:"from_account" json:"fromAccount,omitempty"`
	ToAccount        string           `db:"to_account" json:"toAccount,omitempty"`
	Description      string           `db:"description" json:"description,omitempty"`
	Metadata         map[string]any   `db:"metadata" json:"metadata,omitempty"`
	CashBalanceAfter *decimal.Decimal `db:"cash_balance_after" json:"cashBalanceAfter,omitempty"`
	BankBalanceAfter *decimal.Decimal `db:"bank_balance_after" json:"bankBalanceAfter,omitempty"`
}

// CashMovement is the stored form of an operational cash movement.
type CashMovement struct {
	ID               string           `db:"id" json:"id"`
	TenantID         string           `db:"tenant_id" json:"tenantID"`
	Date             time.Time        `db:"date" json:"date"`
	CreatedAt        *time.Time       `db:"created_at" json:"createdAt,omitempty"`
	Sequence         int64            `db:"sequence" json:"sequence"`
	Type             string           `db:"type" json:"type"`
	Amount           decimal.Decimal  `db:"amount" json:"amount"`
	Description      string           `db:"description" json:"description,omitempty"`
	ToBank           bool             `db:"to_bank" json:"toBank,omitempty"`
	Metadata         map[string]any   `db:"metadata" json:"metadata,omitempty"`
	CashBalanceAfter *decimal.Decimal `db:"cash_balance_after" json:"cashBalanceAfter,omitempty"`
	BankBalanceAfter *decimal.Decimal `db:"bank_balance_after" json:"bankBalanceAfter,omitempty"`
}
