package dto

import (
	"time"

	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalPreviewRequest describes a transaction whose postings should be generated.
type JournalPreviewRequest struct {
	ID            string                 `json:"id"`
	Date          time.Time              `json:"date" binding:"required"`
	Type          domain.TransactionType `json:"type" binding:"required"`
	Subtype       string                 `json:"subtype"`
	Amount        decimal.Decimal        `json:"amount"`
	Category      string                 `json:"category"`
	Subcategory   string                 `json:"subcategory"`
	Account       domain.BalanceAccount  `json:"account" binding:"omitempty,oneof=cash bank"`
	PaymentMethod string                 `json:"paymentMethod"`
	FromAccount   domain.BalanceAccount  `json:"fromAccount" binding:"omitempty,oneof=cash bank"`
	ToAccount     domain.BalanceAccount  `json:"toAccount" binding:"omitempty,oneof=cash bank"`
	Description   string                 `json:"description"`
}

// ToTransaction converts the request into a domain.Transaction.
func (r JournalPreviewRequest) ToTransaction(tenantID string) domain.Transaction {
	return domain.Transaction{
		ID:            r.ID,
		TenantID:      tenantID,
		Date:          r.Date,
		Type:          r.Type,
		Subtype:       r.Subtype,
		Amount:        r.Amount,
		Category:      r.Category,
		Subcategory:   r.Subcategory,
		Account:       r.Account,
		PaymentMethod: r.PaymentMethod,
		FromAccount:   r.FromAccount,
		ToAccount:     r.ToAccount,
		Description:   r.Description,
	}
}

// PostingEffect is the change one posting makes to its account, measured on
// the account's normal side.
type PostingEffect struct {
	AccountCode string             `json:"accountCode"`
	AccountType domain.AccountType `json:"accountType"`
	Change      decimal.Decimal    `json:"change"`
}

// JournalPreviewResponse lists the generated postings and their totals.
// Effects skips postings whose account is not in the tenant's chart.
type JournalPreviewResponse struct {
	Entries     []domain.JournalEntry `json:"entries"`
	Effects     []PostingEffect       `json:"effects"`
	TotalDebit  decimal.Decimal       `json:"totalDebit"`
	TotalCredit decimal.Decimal       `json:"totalCredit"`
}
