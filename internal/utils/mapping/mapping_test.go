package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	"github.com/SscSPs/nonprofit_ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToDomainAccount_RecomputesDerivedFields(t *testing.T) {
	m := models.Account{
		Code:               "2000",
		AccountType:        string(domain.Liability),
		NormalBalance:      "debit",
		FinancialStatement: "income_statement",
	}

	d := ToDomainAccount(m)

	assert.Equal(t, domain.CreditNormal, d.NormalBalance)
	assert.Equal(t, domain.BalanceSheet, d.FinancialStatement)
}

func TestToDomainTransaction_CarriesStamp(t *testing.T) {
	cash := decimal.NewFromInt(14950)
	m := models.LedgerTransaction{
		ID:               "t1",
		Date:             time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Type:             "expense",
		Account:          "bank",
		Amount:           decimal.NewFromInt(50),
		CashBalanceAfter: &cash,
	}

	d := ToDomainTransaction(m)

	assert.Equal(t, domain.ExpenseTransaction, d.Type)
	assert.Equal(t, domain.Bank, d.Account)
	assert.Equal(t, &cash, d.CashBalanceAfter)
	assert.Nil(t, d.BankBalanceAfter)
	assert.Equal(t, m, ToModelTransaction(d))
}
