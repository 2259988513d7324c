package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/nonprofit_ledger/internal/apperrors"
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/nonprofit_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/nonprofit_ledger/internal/models"
	"github.com/SscSPs/nonprofit_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBalanceLogRepository struct {
	BaseRepository
}

func newPgxBalanceLogRepository(pool *pgxpool.Pool) portsrepo.BalanceLogRepository {
	return &PgxBalanceLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceLogRepository = (*PgxBalanceLogRepository)(nil)

// SaveAuditEntries inserts a batch of audit entries in one transaction.
// Entry IDs are deterministic per run, so a retried batch is a no-op.
func (r *PgxBalanceLogRepository) SaveAuditEntries(ctx context.Context, tenantID string, entries []domain.AuditLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO balance_audit_log (id, tenant_id, run_id, transaction_id, transaction_type, stream, account,
			balance_before, balance_after, change_amount, description, date, is_migration, created_at, ordinal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		m := mapping.ToModelAuditEntry(e)
		batch.Queue(query,
			m.ID,
			tenantID,
			m.RunID,
			m.TransactionID,
			m.TransactionType,
			m.Stream,
			m.Account,
			m.BalanceBefore,
			m.BalanceAfter,
			m.ChangeAmount,
			m.Description,
			m.Date,
			m.IsMigration,
			m.CreatedAt,
			m.Ordinal,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range entries {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert audit entry %d of batch: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close audit batch: %w", err)
	}
	return r.Commit(ctx, tx)
}

// SaveSnapshot inserts one balance snapshot.
func (r *PgxBalanceLogRepository) SaveSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error {
	m := mapping.ToModelSnapshot(snapshot)
	query := `
		INSERT INTO balance_snapshots (id, tenant_id, account, balance, transaction_id, run_id, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query, m.ID, m.TenantID, m.Account, m.Balance, m.TransactionID, m.RunID, m.Timestamp)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: snapshot %s already exists", apperrors.ErrDuplicate, m.ID)
		}
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LatestSnapshots returns the newest snapshot per account.
func (r *PgxBalanceLogRepository) LatestSnapshots(ctx context.Context, tenantID string) (map[domain.BalanceAccount]domain.BalanceSnapshot, error) {
	query := `
		SELECT DISTINCT ON (account) id, tenant_id, account, balance, transaction_id, run_id, timestamp
		FROM balance_snapshots
		WHERE tenant_id = $1
		ORDER BY account, timestamp DESC, id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.BalanceAccount]domain.BalanceSnapshot)
	for rows.Next() {
		var m models.BalanceSnapshot
		if err := rows.Scan(&m.ID, &m.TenantID, &m.Account, &m.Balance, &m.TransactionID, &m.RunID, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		snap := mapping.ToDomainSnapshot(m)
		out[snap.Account] = snap
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}
	return out, nil
}

// ListAuditEntries returns the newest entries first.
func (r *PgxBalanceLogRepository) ListAuditEntries(ctx context.Context, tenantID string, limit int) ([]domain.AuditLogEntry, error) {
	query := `
		SELECT id, tenant_id, run_id, transaction_id, transaction_type, stream, account,
		       balance_before, balance_after, change_amount, description, date, is_migration, created_at, ordinal
		FROM balance_audit_log
		WHERE tenant_id = $1
		ORDER BY created_at DESC, ordinal DESC, id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var results []models.BalanceAuditEntry
	for rows.Next() {
		var m models.BalanceAuditEntry
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.RunID,
			&m.TransactionID,
			&m.TransactionType,
			&m.Stream,
			&m.Account,
			&m.BalanceBefore,
			&m.BalanceAfter,
			&m.ChangeAmount,
			&m.Description,
			&m.Date,
			&m.IsMigration,
			&m.CreatedAt,
			&m.Ordinal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit rows: %w", err)
	}
	return mapping.ToDomainAuditEntrySlice(results), nil
}
