package mapping

import (
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	"github.com/SscSPs/nonprofit_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to its stored form
func ToModelTransaction(d domain.Transaction) models.LedgerTransaction {
	return models.LedgerTransaction{
		ID:               d.ID,
		TenantID:         d.TenantID,
		Date:             d.Date,
		CreatedAt:        d.CreatedAt,
		Sequence:         d.Sequence,
		Type:             string(d.Type),
		Subtype:          d.Subtype,
		Amount:           d.Amount,
		Category:         d.Category,
		Subcategory:      d.Subcategory,
		Account:          string(d.Account),
		PaymentMethod:    d.PaymentMethod,
		FromAccount:      string(d.FromAccount),
		ToAccount:        string(d.ToAccount),
		Description:      d.Description,
		Metadata:         d.Metadata,
		CashBalanceAfter: d.CashBalanceAfter,
		BankBalanceAfter: d.BankBalanceAfter,
	}
}

// ToDomainTransaction converts a stored transaction to a domain Transaction
func ToDomainTransaction(m models.LedgerTransaction) domain.Transaction {
	return domain.Transaction{
		ID:            m.ID,
		TenantID:      m.TenantID,
		Date:          m.Date,
		CreatedAt:     m.CreatedAt,
		Sequence:      m.Sequence,
		Type:          domain.TransactionType(m.Type),
		Subtype:       m.Subtype,
		Amount:        m.Amount,
		Category:      m.Category,
		Subcategory:   m.Subcategory,
		Account:       domain.BalanceAccount(m.Account),
		PaymentMethod: m.PaymentMethod,
		FromAccount:   domain.BalanceAccount(m.FromAccount),
		ToAccount:     domain.BalanceAccount(m.ToAccount),
		Description:   m.Description,
		Metadata:      m.Metadata,
		BalanceStamp: domain.BalanceStamp{
			CashBalanceAfter: m.CashBalanceAfter,
			BankBalanceAfter: m.BankBalanceAfter,
		},
	}
}

// ToDomainTransactionSlice converts stored transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.LedgerTransaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToModelMovement converts a domain Movement to its stored form
func ToModelMovement(d domain.Movement) models.CashMovement {
	return models.CashMovement{
		ID:               d.ID,
		TenantID:         d.TenantID,
		Date:             d.Date,
		CreatedAt:        d.CreatedAt,
		Sequence:         d.Sequence,
		Type:             string(d.Type),
		Amount:           d.Amount,
		Description:      d.Description,
		ToBank:           d.ToBank,
		Metadata:         d.Metadata,
		CashBalanceAfter: d.CashBalanceAfter,
		BankBalanceAfter: d.BankBalanceAfter,
	}
}

// ToDomainMovement converts a stored movement to a domain Movement
func ToDomainMovement(m models.CashMovement) domain.Movement {
	return domain.Movement{
		ID:          m.ID,
		TenantID:    m.TenantID,
		Date:        m.Date,
		CreatedAt:   m.CreatedAt,
		Sequence:    m.Sequence,
		Type:        domain.MovementType(m.Type),
		Amount:      m.Amount,
		Description: m.Description,
		ToBank:      m.ToBank,
		Metadata:    m.Metadata,
		BalanceStamp: domain.BalanceStamp{
			CashBalanceAfter: m.CashBalanceAfter,
			BankBalanceAfter: m.BankBalanceAfter,
		},
	}
}

// ToDomainMovementSlice converts stored movements to domain Movements
func ToDomainMovementSlice(ms []models.CashMovement) []domain.Movement {
	ds := make([]domain.Movement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMovement(m)
	}
	return ds
}
