package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType is the declared type of an operational cash movement.
type MovementType string

const (
	MovementDeposit    MovementType = "deposit"
	MovementWithdrawal MovementType = "withdrawal"
	MovementDonation   MovementType = "donation"
	// MovementLegacyCashExpense mirrors a cash expense already present in the
	// transaction log. A migrated history contains none of these.
	MovementLegacyCashExpense MovementType = "cash-expense"
)

// Movement is an operational cash flow event, maintained independently of the
// transaction log but stamped with the same running balances.
type Movement struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenantID"`
	Date        time.Time       `json:"date"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
	Sequence    int64           `json:"sequence"`
	Type        MovementType    `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	ToBank      bool            `json:"toBank,omitempty"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
	BalanceStamp
}

// DonationTarget returns the account a donation is credited to.
func (m Movement) DonationTarget() BalanceAccount {
	if m.ToBank {
		return Bank
	}
	return Cash
}
