package mapping

import (
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	"github.com/SscSPs/nonprofit_ledger/internal/models"
)

// ToModelAuditEntry converts a domain AuditLogEntry to its stored form
func ToModelAuditEntry(d domain.AuditLogEntry) models.BalanceAuditEntry {
	return models.BalanceAuditEntry{
		ID:              d.ID,
		TenantID:        d.TenantID,
		RunID:           d.RunID,
		TransactionID:   d.TransactionID,
		TransactionType: d.TransactionType,
		Stream:          string(d.Stream),
		Account:         string(d.Account),
		BalanceBefore:   d.BalanceBefore,
		BalanceAfter:    d.BalanceAfter,
		ChangeAmount:    d.ChangeAmount,
		Description:     d.Description,
		Date:            d.Date,
		IsMigration:     d.IsMigration,
		CreatedAt:       d.CreatedAt,
		Ordinal:         d.Ordinal,
	}
}

// ToDomainAuditEntry converts a stored audit entry to a domain AuditLogEntry
func ToDomainAuditEntry(m models.BalanceAuditEntry) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		ID:              m.ID,
		TenantID:        m.TenantID,
		RunID:           m.RunID,
		TransactionID:   m.TransactionID,
		TransactionType: m.TransactionType,
		Stream:          domain.Stream(m.Stream),
		Account:         domain.BalanceAccount(m.Account),
		BalanceBefore:   m.BalanceBefore,
		BalanceAfter:    m.BalanceAfter,
		ChangeAmount:    m.ChangeAmount,
		Description:     m.Description,
		Date:            m.Date,
		IsMigration:     m.IsMigration,
		CreatedAt:       m.CreatedAt,
		Ordinal:         m.Ordinal,
	}
}

// ToDomainAuditEntrySlice converts stored audit entries to domain entries
func ToDomainAuditEntrySlice(ms []models.BalanceAuditEntry) []domain.AuditLogEntry {
	ds := make([]domain.AuditLogEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditEntry(m)
	}
	return ds
}

// ToModelSnapshot converts a domain BalanceSnapshot to its stored form
func ToModelSnapshot(d domain.BalanceSnapshot) models.BalanceSnapshot {
	return models.BalanceSnapshot{
		ID:            d.ID,
		TenantID:      d.TenantID,
		Account:       string(d.Account),
		Balance:       d.Balance,
		TransactionID: d.TransactionID,
		RunID:         d.RunID,
		Timestamp:     d.Timestamp,
	}
}

// ToDomainSnapshot converts a stored snapshot to a domain BalanceSnapshot
func ToDomainSnapshot(m models.BalanceSnapshot) domain.BalanceSnapshot {
	return domain.BalanceSnapshot{
		ID:            m.ID,
		TenantID:      m.TenantID,
		Account:       domain.BalanceAccount(m.Account),
		Balance:       m.Balance,
		TransactionID: m.TransactionID,
		RunID:         m.RunID,
		Timestamp:     m.Timestamp,
	}
}
