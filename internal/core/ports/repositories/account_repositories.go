package repositories

import (
	"context"

	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
)

// AccountReader defines read operations for a tenant's chart of accounts.
type AccountReader interface {
	// FindAccountByCode retrieves an account by its code. Returns apperrors.ErrNotFound when absent.
	FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error)

	// FindAccounts runs a filtered scan. Results are ordered by code, byte-wise.
	FindAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account keyed by its code. Returns apperrors.ErrDuplicate when the code exists.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount writes the mutable fields of an existing account
	// (name, category and subcategory labels, budgets, active flag, audit fields).
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
