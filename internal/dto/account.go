package dto

import (
	"time"

	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code                string             `json:"code" binding:"required,max=16"`
	AccountName         string             `json:"accountName" binding:"required"`
	CategoryName        string             `json:"categoryName"`
	SubcategoryName     string             `json:"subcategoryName"`
	Type                domain.AccountType `json:"type" binding:"required,account_type"`
	DisplayAs           domain.DisplayAs   `json:"displayAs" binding:"omitempty,display_as"` // Defaults to hidden
	ParentCode          *string            `json:"parentCode"`
	LegacyCategoryID    *string            `json:"legacyCategoryID"`
	LegacySubcategoryID *string            `json:"legacySubcategoryID"`
	BudgetMonthly       *decimal.Decimal   `json:"budgetMonthly"`
	BudgetAnnual        *decimal.Decimal   `json:"budgetAnnual"`
}

// UpdateAccountRequest carries the whitelisted mutable fields of an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	AccountName     *string          `json:"accountName"`
	CategoryName    *string          `json:"categoryName"`
	SubcategoryName *string          `json:"subcategoryName"`
	BudgetMonthly   *decimal.Decimal `json:"budgetMonthly"`
	BudgetAnnual    *decimal.Decimal `json:"budgetAnnual"`
	IsActive        *bool            `json:"isActive"`
}

// IsEmpty reports whether the request changes nothing.
func (r UpdateAccountRequest) IsEmpty() bool {
	return r.AccountName == nil && r.CategoryName == nil && r.SubcategoryName == nil &&
		r.BudgetMonthly == nil && r.BudgetAnnual == nil && r.IsActive == nil
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	Code                string                    `json:"code"`
	AccountName         string                    `json:"accountName"`
	CategoryName        string                    `json:"categoryName"`
	SubcategoryName     string                    `json:"subcategoryName"`
	Type                domain.AccountType        `json:"type"`
	DisplayAs           domain.DisplayAs          `json:"displayAs"`
	ParentCode          *string                   `json:"parentCode,omitempty"`
	LegacyCategoryID    *string                   `json:"legacyCategoryID,omitempty"`
	LegacySubcategoryID *string                   `json:"legacySubcategoryID,omitempty"`
	NormalBalance       domain.NormalBalance      `json:"normalBalance"`
	FinancialStatement  domain.FinancialStatement `json:"financialStatement"`
	BudgetMonthly       decimal.Decimal           `json:"budgetMonthly"`
	BudgetAnnual        decimal.Decimal           `json:"budgetAnnual"`
	IsActive            bool                      `json:"isActive"`
	CreatedAt           time.Time                 `json:"createdAt"`
	CreatedBy           string                    `json:"createdBy"`
	LastUpdatedAt       time.Time                 `json:"lastUpdatedAt"`
	LastUpdatedBy       string                    `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		Code:                acc.Code,
		AccountName:         acc.AccountName,
		CategoryName:        acc.CategoryName,
		SubcategoryName:     acc.SubcategoryName,
		Type:                acc.Type,
		DisplayAs:           acc.DisplayAs,
		ParentCode:          acc.ParentCode,
		LegacyCategoryID:    acc.LegacyCategoryID,
		LegacySubcategoryID: acc.LegacySubcategoryID,
		NormalBalance:       acc.NormalBalance,
		FinancialStatement:  acc.FinancialStatement,
		BudgetMonthly:       acc.BudgetMonthly,
		BudgetAnnual:        acc.BudgetAnnual,
		IsActive:            acc.IsActive,
		CreatedAt:           acc.CreatedAt,
		CreatedBy:           acc.CreatedBy,
		LastUpdatedAt:       acc.LastUpdatedAt,
		LastUpdatedBy:       acc.LastUpdatedBy,
	}
}

// CreateAccountResponse returns the code of a newly created account.
type CreateAccountResponse struct {
	Code string `json:"code"`
}

// ResolveAccountParams are the query parameters of a name lookup.
type ResolveAccountParams struct {
	Category    string  `form:"category" binding:"required"`
	Subcategory *string `form:"subcategory"`
}

// ResolveLegacyAccountParams are the query parameters of a legacy-ID lookup.
type ResolveLegacyAccountParams struct {
	CategoryID    string  `form:"categoryId" binding:"required"`
	SubcategoryID *string `form:"subcategoryId"`
}

// ResolveAccountResponse is the result of a lookup. Found is false for an
// uncategorized label; that is not an error.
type ResolveAccountResponse struct {
	Code  *string `json:"code"`
	Found bool    `json:"found"`
}

// ListCategoriesResponse wraps the category tree.
type ListCategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}
