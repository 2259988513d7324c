package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/nonprofit_ledger/internal/apperrors"
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/nonprofit_ledger/internal/core/ports/services"
	"github.com/SscSPs/nonprofit_ledger/internal/utils/accounting"
)

// journalBuilder implements the JournalBuilderSvc interface
type journalBuilder struct {
	BaseService
	resolver portssvc.AccountResolverSvc
}

// NewJournalBuilder creates a journal builder that resolves expense accounts through resolver.
func NewJournalBuilder(resolver portssvc.AccountResolverSvc) portssvc.JournalBuilderSvc {
	return &journalBuilder{resolver: resolver}
}

var _ portssvc.JournalBuilderSvc = (*journalBuilder)(nil)

func (s *journalBuilder) BuildJournalEntries(ctx context.Context, tenantID string, txn domain.Transaction) ([]domain.JournalEntry, error) {
	expenseCode := ""
	if txn.Type == domain.ExpenseTransaction {
		code, err := s.resolveExpenseAccount(ctx, tenantID, txn)
		if err != nil {
			return nil, err
		}
		expenseCode = code
	}

	entries := BuildPostings(txn, expenseCode)
	if len(entries) == 0 {
		// TODO: route unrecognized transaction types to a suspense account once one is added to the default chart.
		s.LogWarn(ctx, "Unrecognized transaction type; no postings generated",
			slog.String("transaction_id", txn.ID),
			slog.String("type", string(txn.Type)))
		return entries, nil
	}

	if err := accounting.ValidateJournalBalance(entries); err != nil {
		s.LogError(ctx, err, "Generated postings do not balance", slog.String("transaction_id", txn.ID))
		return nil, apperrors.NewAppError(apperrors.ErrInternal, "generated postings do not balance", err)
	}
	return entries, nil
}

// resolveExpenseAccount tries the subcategory, then the category alone, then
// falls back to the uncategorized expense account.
func (s *journalBuilder) resolveExpenseAccount(ctx context.Context, tenantID string, txn domain.Transaction) (string, error) {
	if txn.Subcategory != "" {
		sub := txn.Subcategory
		code, found, err := s.resolver.ResolveByCategory(ctx, tenantID, txn.Category, &sub)
		if err != nil {
			return "", err
		}
		if found {
			return code, nil
		}
	}

	code, found, err := s.resolver.ResolveByCategory(ctx, tenantID, txn.Category, nil)
	if err != nil {
		return "", err
	}
	if found {
		return code, nil
	}

	s.LogInfo(ctx, "Expense category not found; posting as uncategorized",
		slog.String("transaction_id", txn.ID),
		slog.String("category", txn.Category),
		slog.String("subcategory", txn.Subcategory))
	return domain.UncategorizedExpenseCode, nil
}

// BuildPostings generates the balanced posting set for txn. expenseCode is the
// resolved expense account and is only used for expenses. An unrecognized
// transaction type yields an empty set.
func BuildPostings(txn domain.Transaction, expenseCode string) []domain.JournalEntry {
	amount := txn.Amount.Abs()

	switch txn.Type {
	case domain.ExpenseTransaction:
		source := txn.FundingAccount()
		desc := describe(txn, fmt.Sprintf("Expense: %s", txn.Category))
		return []domain.JournalEntry{
			domain.DebitLine(expenseCode, amount, desc),
			domain.CreditLine(source.LedgerCode(), amount, desc),
		}
	case domain.IncomeTransaction:
		destination := domain.TransactionTarget(txn)
		desc := describe(txn, fmt.Sprintf("Income: %s", txn.Category))
		return []domain.JournalEntry{
			domain.DebitLine(destination.LedgerCode(), amount, desc),
			domain.CreditLine(domain.DonationsAccountCode, amount, desc),
		}
	case domain.TransferTransaction:
		from, to := txn.TransferAccounts()
		desc := describe(txn, fmt.Sprintf("Transfer: %s to %s", from, to))
		return []domain.JournalEntry{
			domain.DebitLine(to.LedgerCode(), amount, desc),
			domain.CreditLine(from.LedgerCode(), amount, desc),
		}
	default:
		return []domain.JournalEntry{}
	}
}

func describe(txn domain.Transaction, fallback string) string {
	if txn.Description != "" {
		return txn.Description
	}
	return fallback
}
