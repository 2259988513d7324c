package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/nonprofit_ledger/internal/apperrors"
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/nonprofit_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/nonprofit_ledger/internal/models"
	"github.com/SscSPs/nonprofit_ledger/internal/utils/mapping"
	bbolt "go.etcd.io/bbolt"
)

// timeKey orders entries by timestamp, then ID.
func timeKey(t time.Time, id string) []byte {
	key := make([]byte, 8, 8+len(id))
	binary.BigEndian.PutUint64(key, uint64(t.UnixNano()))
	return append(key, id...)
}

// auditKey orders audit entries by run timestamp, then walk position.
func auditKey(t time.Time, ordinal int64, id string) []byte {
	key := make([]byte, 16, 16+len(id))
	binary.BigEndian.PutUint64(key, uint64(t.UnixNano()))
	binary.BigEndian.PutUint64(key[8:], uint64(ordinal))
	return append(key, id...)
}

// BalanceLogRepository keeps audit entries and snapshots in time-ordered keys.
type BalanceLogRepository struct {
	store *Store
}

var _ portsrepo.BalanceLogRepository = (*BalanceLogRepository)(nil)

// SaveAuditEntries writes a batch in one transaction. Entries already present
// under the same key are left as they are.
func (r *BalanceLogRepository) SaveAuditEntries(ctx context.Context, tenantID string, entries []domain.AuditLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.store.db.Update(func(tx *bbolt.Tx) error {
		b, err := tenantBucket(tx, BucketAuditLog, tenantID)
		if err != nil {
			return err
		}
		for _, e := range entries {
			m := mapping.ToModelAuditEntry(e)
			m.TenantID = tenantID
			key := auditKey(m.CreatedAt, m.Ordinal, m.ID)
			if b.Get(key) != nil {
				continue
			}
			if err := putJSON(b, key, m); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *BalanceLogRepository) SaveSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error {
	m := mapping.ToModelSnapshot(snapshot)
	return r.store.db.Update(func(tx *bbolt.Tx) error {
		b, err := tenantBucket(tx, BucketSnapshots, m.TenantID)
		if err != nil {
			return err
		}
		key := timeKey(m.Timestamp, m.ID)
		if b.Get(key) != nil {
			return fmt.Errorf("%w: snapshot %s already exists", apperrors.ErrDuplicate, m.ID)
		}
		return putJSON(b, key, m)
	})
}

// LatestSnapshots walks the snapshots newest first and keeps the first per account.
func (r *BalanceLogRepository) LatestSnapshots(ctx context.Context, tenantID string) (map[domain.BalanceAccount]domain.BalanceSnapshot, error) {
	out := make(map[domain.BalanceAccount]domain.BalanceSnapshot)
	err := r.store.db.View(func(tx *bbolt.Tx) error {
		b, err := tenantBucket(tx, BucketSnapshots, tenantID)
		if err != nil || b == nil {
			return err
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var m models.BalanceSnapshot
			if err := json.Unmarshal(v, &m); err != nil {
				return fmt.Errorf("failed to unmarshal snapshot: %w", err)
			}
			account := domain.BalanceAccount(m.Account)
			if _, seen := out[account]; !seen {
				out[account] = mapping.ToDomainSnapshot(m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshots: %w", err)
	}
	return out, nil
}

// ListAuditEntries returns up to limit entries, newest first.
func (r *BalanceLogRepository) ListAuditEntries(ctx context.Context, tenantID string, limit int) ([]domain.AuditLogEntry, error) {
	var results []models.BalanceAuditEntry
	err := r.store.db.View(func(tx *bbolt.Tx) error {
		b, err := tenantBucket(tx, BucketAuditLog, tenantID)
		if err != nil || b == nil {
			return err
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil && len(results) < limit; k, v = c.Prev() {
			var m models.BalanceAuditEntry
			if err := json.Unmarshal(v, &m); err != nil {
				return fmt.Errorf("failed to unmarshal audit entry: %w", err)
			}
			results = append(results, m)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read audit entries: %w", err)
	}
	return mapping.ToDomainAuditEntrySlice(results), nil
}
