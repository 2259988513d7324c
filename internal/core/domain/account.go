package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Income    AccountType = "income"
	Expense   AccountType = "expense"
)

// IsValid reports whether t is one of the five accounting types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// NormalBalance is the side on which an account's increases are recorded.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "debit"
	CreditNormal NormalBalance = "credit"
)

// FinancialStatement is the report an account rolls up into.
type FinancialStatement string

const (
	BalanceSheet    FinancialStatement = "balance_sheet"
	IncomeStatement FinancialStatement = "income_statement"
)

// DisplayAs controls whether an account shows up in category listings.
type DisplayAs string

const (
	DisplayCategory    DisplayAs = "category"
	DisplaySubcategory DisplayAs = "subcategory"
	DisplayHidden      DisplayAs = "hidden"
)

// IsValid reports whether d is a known display mode.
func (d DisplayAs) IsValid() bool {
	switch d {
	case DisplayCategory, DisplaySubcategory, DisplayHidden:
		return true
	}
	return false
}

// Well-known account codes used by the journal builder and the default chart.
const (
	CashAccountCode          = "1000"
	BankAccountCode          = "1100"
	IncomeRootAccountCode    = "4000"
	DonationsAccountCode     = "4010"
	GeneralExpenseCode       = "5000"
	UncategorizedExpenseCode = GeneralExpenseCode
)

// NormalBalanceFor derives the normal balance side from the account type.
// Asset and expense accounts are debit-normal, everything else credit-normal.
func NormalBalanceFor(t AccountType) NormalBalance {
	if t == Asset || t == Expense {
		return DebitNormal
	}
	return CreditNormal
}

// FinancialStatementFor derives the statement an account type belongs to.
func FinancialStatementFor(t AccountType) FinancialStatement {
	switch t {
	case Asset, Liability, Equity:
		return BalanceSheet
	default:
		return IncomeStatement
	}
}

// Account is a canonical ledger account in a tenant's chart of accounts.
// Code is unique per tenant and compared byte-wise, never numerically.
type Account struct {
	TenantID            string             `json:"tenantID"`
	Code                string             `json:"code"`
	AccountName         string             `json:"accountName"`
	CategoryName        string             `json:"categoryName"`
	SubcategoryName     string             `json:"subcategoryName"`
	Type                AccountType        `json:"type"`
	DisplayAs           DisplayAs          `json:"displayAs"`
	ParentCode          *string            `json:"parentCode,omitempty"`
	LegacyCategoryID    *string            `json:"legacyCategoryID,omitempty"`
	LegacySubcategoryID *string            `json:"legacySubcategoryID,omitempty"`
	NormalBalance       NormalBalance      `json:"normalBalance"`
	FinancialStatement  FinancialStatement `json:"financialStatement"`
	BudgetMonthly       decimal.Decimal    `json:"budgetMonthly"`
	BudgetAnnual        decimal.Decimal    `json:"budgetAnnual"`
	IsActive            bool               `json:"isActive"`
	AuditFields
}

// ApplyDerivedFields recomputes the fields that follow deterministically from Type.
func (a *Account) ApplyDerivedFields() {
	a.NormalBalance = NormalBalanceFor(a.Type)
	a.FinancialStatement = FinancialStatementFor(a.Type)
}

// AccountFilter holds equality predicates for a filtered account scan.
// Nil fields are not constrained.
type AccountFilter struct {
	CategoryName        *string
	SubcategoryName     *string
	DisplayAs           *DisplayAs
	ParentCode          *string
	LegacyCategoryID    *string
	LegacySubcategoryID *string
	IsActive            *bool
}

// Matches reports whether the account satisfies every set predicate.
func (f AccountFilter) Matches(a Account) bool {
	if f.CategoryName != nil && a.CategoryName != *f.CategoryName {
		return false
	}
	if f.SubcategoryName != nil && a.SubcategoryName != *f.SubcategoryName {
		return false
	}
	if f.DisplayAs != nil && a.DisplayAs != *f.DisplayAs {
		return false
	}
	if f.ParentCode != nil && (a.ParentCode == nil || *a.ParentCode != *f.ParentCode) {
		return false
	}
	if f.LegacyCategoryID != nil && (a.LegacyCategoryID == nil || *a.LegacyCategoryID != *f.LegacyCategoryID) {
		return false
	}
	if f.LegacySubcategoryID != nil && (a.LegacySubcategoryID == nil || *a.LegacySubcategoryID != *f.LegacySubcategoryID) {
		return false
	}
	if f.IsActive != nil && a.IsActive != *f.IsActive {
		return false
	}
	return true
}

// Category is a visible category account with its flattened subcategories,
// the shape consumed by the client-facing category pickers.
type Category struct {
	ID            string        `json:"id"`
	LegacyID      *string       `json:"legacyId,omitempty"`
	Code          string        `json:"code"`
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategories"`
	Active        bool          `json:"active"`
}

// Subcategory is an {id, name} pair under a Category.
type Subcategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SeedSummary reports the outcome of seeding a chart of accounts.
type SeedSummary struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}
