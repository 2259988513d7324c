package accounting

import (
	"fmt"

	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SumPostings totals the debit and credit sides of a posting set.
func SumPostings(entries []domain.JournalEntry) (debit decimal.Decimal, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, e := range entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	return debit, credit
}

// ValidateJournalBalance checks that a posting set is well formed and balanced.
// An empty set is valid; it records nothing.
func ValidateJournalBalance(entries []domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if len(entries) < 2 {
		return fmt.Errorf("journal must have at least two posting lines")
	}

	for _, e := range entries {
		if e.AccountCode == "" {
			return fmt.Errorf("posting line is missing an account code")
		}
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return fmt.Errorf("posting amounts must not be negative for account %s", e.AccountCode)
		}
		if !e.Debit.IsZero() && !e.Credit.IsZero() {
			return fmt.Errorf("posting for account %s has both a debit and a credit", e.AccountCode)
		}
	}

	debit, credit := SumPostings(entries)
	if !debit.Equal(credit) {
		return fmt.Errorf("journal entries do not balance: debit %s, credit %s", debit.String(), credit.String())
	}
	return nil
}

// SignedBalanceChange returns the change a posting makes to an account's
// balance measured on its normal side.
// DEBIT to ASSET/EXPENSE -> Positive (+), CREDIT -> Negative (-)
// CREDIT to LIABILITY/EQUITY/INCOME -> Positive (+), DEBIT -> Negative (-)
func SignedBalanceChange(entry domain.JournalEntry, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account %s", accountType, entry.AccountCode)
	}
	net := entry.Debit.Sub(entry.Credit)
	if domain.NormalBalanceFor(accountType) == domain.CreditNormal {
		net = net.Neg()
	}
	return net, nil
}
