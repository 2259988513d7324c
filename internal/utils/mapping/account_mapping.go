package mapping

import (
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	"github.com/SscSPs/nonprofit_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		TenantID:            d.TenantID,
		Code:                d.Code,
		AccountName:         d.AccountName,
		CategoryName:        d.CategoryName,
		SubcategoryName:     d.SubcategoryName,
		AccountType:         string(d.Type),
		DisplayAs:           string(d.DisplayAs),
		ParentCode:          d.ParentCode,
		LegacyCategoryID:    d.LegacyCategoryID,
		LegacySubcategoryID: d.LegacySubcategoryID,
		NormalBalance:       string(d.NormalBalance),
		FinancialStatement:  string(d.FinancialStatement),
		BudgetMonthly:       d.BudgetMonthly,
		BudgetAnnual:        d.BudgetAnnual,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
// The derived fields are recomputed from the type rather than trusted.
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		TenantID:            m.TenantID,
		Code:                m.Code,
		AccountName:         m.AccountName,
		CategoryName:        m.CategoryName,
		SubcategoryName:     m.SubcategoryName,
		Type:                domain.AccountType(m.AccountType),
		DisplayAs:           domain.DisplayAs(m.DisplayAs),
		ParentCode:          m.ParentCode,
		LegacyCategoryID:    m.LegacyCategoryID,
		LegacySubcategoryID: m.LegacySubcategoryID,
		BudgetMonthly:       m.BudgetMonthly,
		BudgetAnnual:        m.BudgetAnnual,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
	d.ApplyDerivedFields()
	return d
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
