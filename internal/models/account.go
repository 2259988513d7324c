package models

import (
	"github.com/shopspring/decimal"
)

// Account represents a row of a tenant's chart of accounts.
// Nullable references use pointers.
type Account struct {
	TenantID            string          `db:"tenant_id" json:"tenantID"`
	Code                string          `db:"code" json:"code"`
	AccountName         string          `db:"account_name" json:"accountName"`
	CategoryName        string          `db:"category_name" json:"categoryName"`
	SubcategoryName     string          `db:"subcategory_name" json:"subcategoryName"`
	AccountType         string          `db:"account_type" json:"accountType"`
	DisplayAs           string          `db:"display_as" json:"displayAs"`
	ParentCode          *string         `db:"parent_code" json:"parentCode,omitempty"`
	LegacyCategoryID    *string         `db:"legacy_category_id" json:"legacyCategoryID,omitempty"`
	LegacySubcategoryID *string         `db:"legacy_subcategory_id" json:"legacySubcategoryID,omitempty"`
	NormalBalance       string          `db:"normal_balance" json:"normalBalance"`
	FinancialStatement  string          `db:"financial_statement" json:"financialStatement"`
	BudgetMonthly       decimal.Decimal `db:"budget_monthly" json:"budgetMonthly"`
	BudgetAnnual        decimal.Decimal `db:"budget_annual" json:"budgetAnnual"`
	IsActive            bool            `db:"is_active" json:"isActive"`
	AuditFields
}
