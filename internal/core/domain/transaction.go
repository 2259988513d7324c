package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the declared type of a client-recorded financial event.
type TransactionType string

const (
	ExpenseTransaction  TransactionType = "expense"
	IncomeTransaction   TransactionType = "income"
	TransferTransaction TransactionType = "transfer"
)

// Transfer subtypes, named from the point of view of the bank account.
const (
	TransferWithdrawal = "withdrawal"
	TransferDeposit    = "deposit"
)

// BalanceAccount names one of the two tracked money accounts.
type BalanceAccount string

const (
	Cash BalanceAccount = "cash"
	Bank BalanceAccount = "bank"
)

// LedgerCode maps a money account to its chart-of-accounts code.
func (a BalanceAccount) LedgerCode() string {
	if a == Bank {
		return BankAccountCode
	}
	return CashAccountCode
}

// BalanceStamp carries the running balances written back by a replay.
type BalanceStamp struct {
	CashBalanceAfter *decimal.Decimal `json:"cashBalanceAfter,omitempty"`
	BankBalanceAfter *decimal.Decimal `json:"bankBalanceAfter,omitempty"`
}

// IsEmpty reports whether neither balance is stamped.
func (s BalanceStamp) IsEmpty() bool {
	return s.CashBalanceAfter == nil && s.BankBalanceAfter == nil
}

// Transaction is an expense, income or transfer owned by a tenant.
// Amount is always a non-negative magnitude; direction comes from Type and the accounts.
type Transaction struct {
	ID            string          `json:"id"`
	TenantID      string          `json:"tenantID"`
	Date          time.Time       `json:"date"`
	CreatedAt     *time.Time      `json:"createdAt,omitempty"`
	Sequence      int64           `json:"sequence"`
	Type          TransactionType `json:"type"`
	Subtype       string          `json:"subtype,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Subcategory   string          `json:"subcategory,omitempty"`
	Account       BalanceAccount  `json:"account,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	FromAccount   BalanceAccount  `json:"fromAccount,omitempty"`
	ToAccount     BalanceAccount  `json:"toAccount,omitempty"`
	Description   string          `json:"description,omitempty"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
	BalanceStamp
}

// FundingAccount returns the money account an expense is paid from, or an
// income lands in. An explicit payment method wins over the account field;
// "cash" pays from cash, any other method (card, bank transfer) from the bank.
func (t Transaction) FundingAccount() BalanceAccount {
	if t.PaymentMethod != "" {
		if strings.EqualFold(strings.TrimSpace(t.PaymentMethod), string(Cash)) {
			return Cash
		}
		return Bank
	}
	if t.Account == Bank {
		return Bank
	}
	return Cash
}

// TransferAccounts returns the source and destination of a transfer. Missing
// endpoints are derived from the subtype: a withdrawal moves bank to cash, a
// deposit cash to bank.
func (t Transaction) TransferAccounts() (from BalanceAccount, to BalanceAccount) {
	from, to = t.FromAccount, t.ToAccount
	if from == "" || to == "" {
		switch t.Subtype {
		case TransferWithdrawal:
			from, to = Bank, Cash
		case TransferDeposit:
			from, to = Cash, Bank
		}
	}
	if from == "" {
		from = Cash
	}
	if to == "" {
		to = Bank
	}
	return from, to
}

// Validate checks the fields a journal entry or replay depends on.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return errors.New("transaction ID is required")
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("transaction %s: amount must not be negative", t.ID)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction %s: date is required", t.ID)
	}
	return nil
}
