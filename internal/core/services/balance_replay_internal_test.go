package services

import (
	"testing"
	"time"

	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got *decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	require.NotNil(t, got, msgAndArgs...)
	assert.True(t, dec(want).Equal(*got), "want %s, got %s", want, got.String())
}

func exampleHistory() *history {
	return &history{
		transactions: []domain.Transaction{
			{ID: "exp-1", Date: day(1), Sequence: 1, Type: domain.ExpenseTransaction, PaymentMethod: "Cash", Amount: dec("50"), Category: "Programs"},
		},
		movements: []domain.Movement{
			{ID: "mov-2", Date: day(3), Sequence: 3, Type: "refund", Amount: dec("30")},
			{ID: "mov-1", Date: day(2), Sequence: 2, Type: domain.MovementWithdrawal, Amount: dec("200")},
		},
	}
}

func replayExample(h *history) ([]*replayRecord, walkResult) {
	records := mergeHistory(h)
	orderRecords(records)
	res := walkBalances(records, domain.OpeningBalances{Cash: dec("15000"), Bank: dec("50000")}, auditMeta{tenantID: "t1", runID: "run-1", now: day(9)})
	return records, res
}

func TestWalkBalances_Example(t *testing.T) {
	h := exampleHistory()
	records, res := replayExample(h)

	require.Len(t, records, 3)
	assert.Equal(t, []string{"exp-1", "mov-1", "mov-2"}, []string{records[0].id, records[1].id, records[2].id})

	expense := h.transactions[0]
	assertDecimal(t, "14950", expense.CashBalanceAfter)
	assert.Nil(t, expense.BankBalanceAfter)

	var withdrawal, unknown domain.Movement
	for _, m := range h.movements {
		switch m.ID {
		case "mov-1":
			withdrawal = m
		case "mov-2":
			unknown = m
		}
	}
	assertDecimal(t, "49800", withdrawal.BankBalanceAfter)
	assertDecimal(t, "15150", withdrawal.CashBalanceAfter)
	assertDecimal(t, "15120", unknown.CashBalanceAfter)
	assert.Nil(t, unknown.BankBalanceAfter)

	assert.True(t, dec("15120").Equal(res.cash))
	assert.True(t, dec("49800").Equal(res.bank))
}

func TestWalkBalances_AuditEntries(t *testing.T) {
	_, res := replayExample(exampleHistory())

	// expense: cash; withdrawal: cash and bank; unknown: cash
	require.Len(t, res.audit, 4)
	for i, e := range res.audit {
		assert.Equal(t, int64(i), e.Ordinal)
		assert.True(t, e.IsMigration)
		assert.Equal(t, "run-1", e.RunID)
		assert.True(t, e.BalanceBefore.Add(e.ChangeAmount).Equal(e.BalanceAfter))
	}

	first := res.audit[0]
	assert.Equal(t, "exp-1", first.TransactionID)
	assert.Equal(t, "expense", first.TransactionType)
	assert.Equal(t, domain.Cash, first.Account)
	assert.True(t, dec("15000").Equal(first.BalanceBefore))
	assert.True(t, dec("-50").Equal(first.ChangeAmount))
	assert.Equal(t, day(1), first.Date)

	last := res.audit[3]
	assert.Equal(t, "refund", last.TransactionType)
	assert.Equal(t, domain.MovementStream, last.Stream)
}

func TestWalkBalances_ZeroAmountStampsWithoutAudit(t *testing.T) {
	h := &history{movements: []domain.Movement{{ID: "m", Date: day(1), Type: domain.MovementDonation, ToBank: true, Amount: decimal.Zero}}}
	records := mergeHistory(h)
	res := walkBalances(records, domain.OpeningBalances{Cash: dec("1"), Bank: dec("2")}, auditMeta{})

	assert.Empty(t, res.audit)
	assertDecimal(t, "2", h.movements[0].BankBalanceAfter)
	assert.Nil(t, h.movements[0].CashBalanceAfter)
}

func TestWalkBalances_Deterministic(t *testing.T) {
	build := func(reverse bool) *history {
		txns := []domain.Transaction{
			{ID: "a", Date: day(1), Sequence: 5, Type: domain.IncomeTransaction, Account: domain.Bank, Amount: dec("100")},
			{ID: "b", Date: day(1), Sequence: 2, Type: domain.ExpenseTransaction, PaymentMethod: "Card", Amount: dec("40")},
			{ID: "c", Date: day(1), Sequence: 9, Type: domain.TransferTransaction, Subtype: domain.TransferWithdrawal, Amount: dec("60")},
		}
		movs := []domain.Movement{
			{ID: "d", Date: day(1), Sequence: 7, Type: domain.MovementDonation, Amount: dec("15")},
			{ID: "e", Date: day(1), Sequence: 1, Type: domain.MovementDeposit, Amount: dec("25")},
		}
		if reverse {
			for i, j := 0, len(txns)-1; i < j; i, j = i+1, j-1 {
				txns[i], txns[j] = txns[j], txns[i]
			}
			movs[0], movs[1] = movs[1], movs[0]
		}
		return &history{transactions: txns, movements: movs}
	}

	run := func(h *history) ([]string, walkResult) {
		records := mergeHistory(h)
		orderRecords(records)
		res := walkBalances(records, domain.OpeningBalances{Cash: dec("10"), Bank: dec("1000")}, auditMeta{runID: "r"})
		var stamps []string
		for _, r := range records {
			s := r.stamp()
			line := r.id
			if s.CashBalanceAfter != nil {
				line += " cash=" + s.CashBalanceAfter.String()
			}
			if s.BankBalanceAfter != nil {
				line += " bank=" + s.BankBalanceAfter.String()
			}
			stamps = append(stamps, line)
		}
		return stamps, res
	}

	stampsA, resA := run(build(false))
	stampsB, resB := run(build(true))

	assert.Equal(t, stampsA, stampsB)
	assert.True(t, resA.cash.Equal(resB.cash))
	assert.True(t, resA.bank.Equal(resB.bank))
	assert.Equal(t, []string{
		"e cash=-15 bank=1025",
		"b bank=985",
		"a bank=1085",
		"d cash=0",
		"c cash=60 bank=1025",
	}, stampsA)
}

func TestOrderRecords_TieBreaks(t *testing.T) {
	created := day(1).Add(3 * time.Hour)
	records := []*replayRecord{
		{id: "late-created", date: day(1), createdAt: &created},
		{id: "next-day", date: day(2)},
		{id: "mov-seq1", date: day(1), sequence: 1, stream: domain.MovementStream},
		{id: "txn-seq1", date: day(1), sequence: 1, stream: domain.TransactionStream},
		{id: "seq0", date: day(1), sequence: 0, stream: domain.MovementStream},
	}

	orderRecords(records)

	got := make([]string, len(records))
	for i, r := range records {
		got[i] = r.id
	}
	assert.Equal(t, []string{"seq0", "txn-seq1", "mov-seq1", "late-created", "next-day"}, got)
}
