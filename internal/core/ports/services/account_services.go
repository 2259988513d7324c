package services

import (
	"context"

	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	"github.com/SscSPs/nonprofit_ledger/internal/dto"
)

// AccountResolverSvc translates category labels and legacy identifiers into account codes.
// A miss is reported through the boolean, never as an error.
type AccountResolverSvc interface {
	// ResolveByCategory looks up the account for a category name and optional subcategory name.
	ResolveByCategory(ctx context.Context, tenantID string, categoryName string, subcategoryName *string) (string, bool, error)

	// ResolveByLegacyID looks up the account for a legacy category ID and optional subcategory ID.
	ResolveByLegacyID(ctx context.Context, tenantID string, categoryID string, subcategoryID *string) (string, bool, error)
}

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves a specific account by its code.
	GetAccount(ctx context.Context, tenantID string, code string) (*domain.Account, error)

	// ListCategoriesFromAccounts assembles the visible category tree, ordered by code byte-wise.
	ListCategoriesFromAccounts(ctx context.Context, tenantID string) ([]domain.Category, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account and returns its code.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, operatorID string) (string, error)

	// UpdateAccount applies the whitelisted fields of req.
	UpdateAccount(ctx context.Context, tenantID string, code string, req dto.UpdateAccountRequest, operatorID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive. Accounts are never hard-deleted.
	DeactivateAccount(ctx context.Context, tenantID string, code string, operatorID string) error

	// SeedDefaultChart creates the missing accounts of the default chart.
	SeedDefaultChart(ctx context.Context, tenantID string, operatorID string) (*domain.SeedSummary, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountResolverSvc
	AccountReaderSvc
	AccountWriterSvc
}
