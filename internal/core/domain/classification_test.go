package domain_test

import (
	"testing"

	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectTableCoversEveryKind(t *testing.T) {
	for _, k := range domain.AllKinds {
		assert.True(t, domain.HasEffect(k), "kind %s has no effect entry", k)
	}
}

func TestClassifyMovement(t *testing.T) {
	tests := []struct {
		movementType domain.MovementType
		want         domain.Kind
	}{
		{domain.MovementDeposit, domain.KindDeposit},
		{domain.MovementWithdrawal, domain.KindWithdrawal},
		{domain.MovementDonation, domain.KindDonation},
		{domain.MovementLegacyCashExpense, domain.KindLegacyCashExpense},
		{"refund", domain.KindUnknown},
		{"", domain.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.movementType), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyMovement(domain.Movement{Type: tt.movementType}))
		})
	}
}

func TestClassifyTransaction(t *testing.T) {
	tests := []struct {
		name string
		tx   domain.Transaction
		want domain.Kind
	}{
		{"expense", domain.Transaction{Type: domain.ExpenseTransaction}, domain.KindExpense},
		{"income", domain.Transaction{Type: domain.IncomeTransaction}, domain.KindIncome},
		{"withdrawal subtype", domain.Transaction{Type: domain.TransferTransaction, Subtype: domain.TransferWithdrawal}, domain.KindWithdrawal},
		{"deposit by endpoints", domain.Transaction{Type: domain.TransferTransaction, FromAccount: domain.Cash, ToAccount: domain.Bank}, domain.KindDeposit},
		{"transfer without direction", domain.Transaction{Type: domain.TransferTransaction}, domain.KindUnknown},
		{"unrecognized type", domain.Transaction{Type: "adjustment"}, domain.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyTransaction(tt.tx))
		})
	}
}

func TestEffect_Deltas(t *testing.T) {
	amount := decimal.NewFromInt(200)

	tests := []struct {
		name     string
		kind     domain.Kind
		target   domain.BalanceAccount
		wantCash string
		wantBank string
	}{
		{"expense from cash", domain.KindExpense, domain.Cash, "-200", "0"},
		{"expense from bank", domain.KindExpense, domain.Bank, "0", "-200"},
		{"income to bank", domain.KindIncome, domain.Bank, "0", "200"},
		{"withdrawal", domain.KindWithdrawal, domain.Cash, "200", "-200"},
		{"deposit", domain.KindDeposit, domain.Cash, "-200", "200"},
		{"donation to bank", domain.KindDonation, domain.Bank, "0", "200"},
		{"donation to cash", domain.KindDonation, domain.Cash, "200", "0"},
		{"legacy cash expense ignores target", domain.KindLegacyCashExpense, domain.Bank, "-200", "0"},
		{"unknown is a cash outflow", domain.KindUnknown, domain.Bank, "-200", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cash, bank := domain.EffectOf(tt.kind).Deltas(amount, tt.target)
			assert.True(t, decimal.RequireFromString(tt.wantCash).Equal(cash), "cash: got %s", cash)
			assert.True(t, decimal.RequireFromString(tt.wantBank).Equal(bank), "bank: got %s", bank)
		})
	}
}

func TestEffect_DeltasUseMagnitude(t *testing.T) {
	cash, bank := domain.EffectOf(domain.KindExpense).Deltas(decimal.NewFromInt(-50), domain.Cash)
	assert.True(t, decimal.NewFromInt(-50).Equal(cash))
	assert.True(t, bank.IsZero())
}

func TestEffect_ResolveBucket(t *testing.T) {
	unknown := domain.EffectOf(domain.KindUnknown)
	assert.Equal(t, domain.BucketOtherInflow, unknown.ResolveBucket(decimal.NewFromInt(30)))
	assert.Equal(t, domain.BucketOtherOutflow, unknown.ResolveBucket(decimal.NewFromInt(-30)))
	assert.Equal(t, domain.BucketOtherOutflow, unknown.ResolveBucket(decimal.Zero))
	assert.Equal(t, domain.BucketDonation, domain.EffectOf(domain.KindDonation).ResolveBucket(decimal.NewFromInt(-1)))
}

func TestEffect_Affects(t *testing.T) {
	cash, bank := domain.EffectOf(domain.KindWithdrawal).Affects(domain.Cash)
	assert.True(t, cash)
	assert.True(t, bank)

	cash, bank = domain.EffectOf(domain.KindDonation).Affects(domain.Bank)
	assert.False(t, cash)
	assert.True(t, bank)

	cash, bank = domain.EffectOf(domain.KindUnknown).Affects(domain.Bank)
	assert.True(t, cash)
	assert.False(t, bank)
}
