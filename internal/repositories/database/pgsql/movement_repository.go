package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/nonprofit_ledger/internal/apperrors"
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/nonprofit_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/nonprofit_ledger/internal/models"
	"github.com/SscSPs/nonprofit_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

const movementColumns = `tenant_id, id, date, created_at, sequence, type, amount, description, to_bank, metadata,
	cash_balance_after, bank_balance_after`

type PgxMovementRepository struct {
	BaseRepository
}

func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryFacade {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

// ListMovements pages through the tenant's movements by ID ascending.
func (r *PgxMovementRepository) ListMovements(ctx context.Context, tenantID string, limit int, cursor string) ([]domain.Movement, string, error) {
	afterID, fetch, err := pageBounds(cursor, limit)
	if err != nil {
		return nil, "", err
	}

	query := `SELECT ` + movementColumns + ` FROM cash_movements
		WHERE tenant_id = $1 AND id COLLATE "C" > $2
		ORDER BY id COLLATE "C"
		LIMIT $3;`
	rows, err := r.Pool.Query(ctx, query, tenantID, afterID, fetch)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()

	var results []models.CashMovement
	for rows.Next() {
		var m models.CashMovement
		if err := rows.Scan(
			&m.TenantID,
			&m.ID,
			&m.Date,
			&m.CreatedAt,
			&m.Sequence,
			&m.Type,
			&m.Amount,
			&m.Description,
			&m.ToBank,
			&m.Metadata,
			&m.CashBalanceAfter,
			&m.BankBalanceAfter,
		); err != nil {
			return nil, "", fmt.Errorf("failed to scan movement row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("error iterating movement rows: %w", err)
	}

	page, next := trimPage(results, fetch-1, func(m models.CashMovement) string { return m.ID })
	return mapping.ToDomainMovementSlice(page), next, nil
}

// PatchMovementBalances updates the two balance columns only.
func (r *PgxMovementRepository) PatchMovementBalances(ctx context.Context, tenantID string, id string, stamp domain.BalanceStamp) error {
	query := `UPDATE cash_movements SET cash_balance_after = $3, bank_balance_after = $4
		WHERE tenant_id = $1 AND id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, tenantID, id, stamp.CashBalanceAfter, stamp.BankBalanceAfter)
	if err != nil {
		return fmt.Errorf("failed to patch movement %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// OverwriteMovement upserts the full row.
func (r *PgxMovementRepository) OverwriteMovement(ctx context.Context, movement domain.Movement) error {
	m := mapping.ToModelMovement(movement)
	query := `INSERT INTO cash_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (tenant_id, id) DO UPDATE SET
			date = EXCLUDED.date, created_at = EXCLUDED.created_at, sequence = EXCLUDED.sequence,
			type = EXCLUDED.type, amount = EXCLUDED.amount, description = EXCLUDED.description,
			to_bank = EXCLUDED.to_bank, metadata = EXCLUDED.metadata,
			cash_balance_after = EXCLUDED.cash_balance_after, bank_balance_after = EXCLUDED.bank_balance_after;`

	_, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.ID,
		m.Date,
		m.CreatedAt,
		m.Sequence,
		m.Type,
		m.Amount,
		m.Description,
		m.ToBank,
		m.Metadata,
		m.CashBalanceAfter,
		m.BankBalanceAfter,
	)
	if err != nil {
		return fmt.Errorf("failed to overwrite movement %s: %w", m.ID, err)
	}
	return nil
}

// DeleteMovement removes a movement row.
func (r *PgxMovementRepository) DeleteMovement(ctx context.Context, tenantID string, id string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM cash_movements WHERE tenant_id = $1 AND id = $2;`, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to delete movement %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
