package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/nonprofit_ledger/internal/apperrors"
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/nonprofit_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/nonprofit_ledger/internal/models"
	"github.com/SscSPs/nonprofit_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `tenant_id, code, account_name, category_name, subcategory_name, account_type, display_as,
	parent_code, legacy_category_id, legacy_subcategory_id, normal_balance, financial_statement,
	budget_monthly, budget_annual, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.TenantID,
		&m.Code,
		&m.AccountName,
		&m.CategoryName,
		&m.SubcategoryName,
		&m.AccountType,
		&m.DisplayAs,
		&m.ParentCode,
		&m.LegacyCategoryID,
		&m.LegacySubcategoryID,
		&m.NormalBalance,
		&m.FinancialStatement,
		&m.BudgetMonthly,
		&m.BudgetAnnual,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);`

	_, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.Code,
		m.AccountName,
		m.CategoryName,
		m.SubcategoryName,
		m.AccountType,
		m.DisplayAs,
		m.ParentCode,
		m.LegacyCategoryID,
		m.LegacySubcategoryID,
		m.NormalBalance,
		m.FinancialStatement,
		m.BudgetMonthly,
		m.BudgetAnnual,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.Code, err)
	}
	return nil
}

// FindAccountByCode retrieves an account by its code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND code = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccounts runs an equality-filtered scan ordered by code. The "C"
// collation compares codes byte-wise regardless of the database locale.
func (r *PgxAccountRepository) FindAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error) {
	conditions := []string{"tenant_id = $1"}
	args := []any{tenantID}
	addCondition := func(column string, value any) {
		args = append(args, value)
		conditions = append(conditions, column+" = $"+strconv.Itoa(len(args)))
	}

	if filter.CategoryName != nil {
		addCondition("category_name", *filter.CategoryName)
	}
	if filter.SubcategoryName != nil {
		addCondition("subcategory_name", *filter.SubcategoryName)
	}
	if filter.DisplayAs != nil {
		addCondition("display_as", string(*filter.DisplayAs))
	}
	if filter.ParentCode != nil {
		addCondition("parent_code", *filter.ParentCode)
	}
	if filter.LegacyCategoryID != nil {
		addCondition("legacy_category_id", *filter.LegacyCategoryID)
	}
	if filter.LegacySubcategoryID != nil {
		addCondition("legacy_subcategory_id", *filter.LegacySubcategoryID)
	}
	if filter.IsActive != nil {
		addCondition("is_active", *filter.IsActive)
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY code COLLATE "C";`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var results []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(results), nil
}

// UpdateAccount writes the mutable columns only; type, display mode and the
// parent and legacy references are fixed at creation.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET account_name = $3, category_name = $4, subcategory_name = $5,
		    budget_monthly = $6, budget_annual = $7, is_active = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE tenant_id = $1 AND code = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.Code,
		m.AccountName,
		m.CategoryName,
		m.SubcategoryName,
		m.BudgetMonthly,
		m.BudgetAnnual,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.Code, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
