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

const transactionColumns = `tenant_id, id, date, created_at, sequence, type, subtype, amount, category, subcategory,
	account, payment_method, from_account, to_account, description, metadata, cash_balance_after, bank_balance_after`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// ListTransactions pages through the tenant's transactions by ID ascending.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, tenantID string, limit int, cursor string) ([]domain.Transaction, string, error) {
	afterID, fetch, err := pageBounds(cursor, limit)
	if err != nil {
		return nil, "", err
	}

	query := `SELECT ` + transactionColumns + ` FROM ledger_transactions
		WHERE tenant_id = $1 AND id COLLATE "C" > $2
		ORDER BY id COLLATE "C"
		LIMIT $3;`
	rows, err := r.Pool.Query(ctx, query, tenantID, afterID, fetch)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var results []models.LedgerTransaction
	for rows.Next() {
		var m models.LedgerTransaction
		if err := rows.Scan(
			&m.TenantID,
			&m.ID,
			&m.Date,
			&m.CreatedAt,
			&m.Sequence,
			&m.Type,
			&m.Subtype,
			&m.Amount,
			&m.Category,
			&m.Subcategory,
			&m.Account,
			&m.PaymentMethod,
			&m.FromAccount,
			&m.ToAccount,
			&m.Description,
			&m.Metadata,
			&m.CashBalanceAfter,
			&m.BankBalanceAfter,
		); err != nil {
			return nil, "", fmt.Errorf("failed to scan transaction row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("error iterating transaction rows: %w", err)
	}

	page, next := trimPage(results, fetch-1, func(m models.LedgerTransaction) string { return m.ID })
	return mapping.ToDomainTransactionSlice(page), next, nil
}

// PatchTransactionBalances updates the two balance columns only.
func (r *PgxTransactionRepository) PatchTransactionBalances(ctx context.Context, tenantID string, id string, stamp domain.BalanceStamp) error {
	query := `UPDATE ledger_transactions SET cash_balance_after = $3, bank_balance_after = $4
		WHERE tenant_id = $1 AND id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, tenantID, id, stamp.CashBalanceAfter, stamp.BankBalanceAfter)
	if err != nil {
		return fmt.Errorf("failed to patch transaction %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// OverwriteTransaction upserts the full row.
func (r *PgxTransactionRepository) OverwriteTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `INSERT INTO ledger_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (tenant_id, id) DO UPDATE SET
			date = EXCLUDED.date, created_at = EXCLUDED.created_at, sequence = EXCLUDED.sequence,
			type = EXCLUDED.type, subtype = EXCLUDED.subtype, amount = EXCLUDED.amount,
			category = EXCLUDED.category, subcategory = EXCLUDED.subcategory, account = EXCLUDED.account,
			payment_method = EXCLUDED.payment_method, from_account = EXCLUDED.from_account,
			to_account = EXCLUDED.to_account, description = EXCLUDED.description, metadata = EXCLUDED.metadata,
			cash_balance_after = EXCLUDED.cash_balance_after, bank_balance_after = EXCLUDED.bank_balance_after;`

	_, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.ID,
		m.Date,
		m.CreatedAt,
		m.Sequence,
		m.Type,
		m.Subtype,
		m.Amount,
		m.Category,
		m.Subcategory,
		m.Account,
		m.PaymentMethod,
		m.FromAccount,
		m.ToAccount,
		m.Description,
		m.Metadata,
		m.CashBalanceAfter,
		m.BankBalanceAfter,
	)
	if err != nil {
		return fmt.Errorf("failed to overwrite transaction %s: %w", m.ID, err)
	}
	return nil
}
