package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SscSPs/nonprofit_ledger/internal/apperrors"
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/nonprofit_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/nonprofit_ledger/internal/models"
	"github.com/SscSPs/nonprofit_ledger/internal/utils/mapping"
	bbolt "go.etcd.io/bbolt"
)

// AccountRepository keeps accounts keyed by code, so a bucket scan is
// already in byte-wise code order.
type AccountRepository struct {
	store *Store
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

func (r *AccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	return r.store.db.Update(func(tx *bbolt.Tx) error {
		b, err := tenantBucket(tx, BucketAccounts, m.TenantID)
		if err != nil {
			return err
		}
		if b.Get([]byte(m.Code)) != nil {
			return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return putJSON(b, []byte(m.Code), m)
	})
}

func (r *AccountRepository) FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	var m models.Account
	err := r.store.db.View(func(tx *bbolt.Tx) error {
		b, err := tenantBucket(tx, BucketAccounts, tenantID)
		if err != nil {
			return err
		}
		return getJSON(b, []byte(code), &m)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

func (r *AccountRepository) FindAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error) {
	var out []domain.Account
	err := r.store.db.View(func(tx *bbolt.Tx) error {
		b, err := tenantBucket(tx, BucketAccounts, tenantID)
		if err != nil || b == nil {
			return err
		}
		return b.ForEach(func(k, v []byte) error {
			var m models.Account
			if err := json.Unmarshal(v, &m); err != nil {
				return fmt.Errorf("failed to unmarshal account %s: %w", k, err)
			}
			if d := mapping.ToDomainAccount(m); filter.Matches(d) {
				out = append(out, d)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return out, nil
}

// UpdateAccount rewrites the mutable fields of a stored account.
func (r *AccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return r.store.db.Update(func(tx *bbolt.Tx) error {
		b, err := tenantBucket(tx, BucketAccounts, account.TenantID)
		if err != nil {
			return err
		}
		var m models.Account
		if err := getJSON(b, []byte(account.Code), &m); err != nil {
			return err
		}
		m.AccountName = account.AccountName
		m.CategoryName = account.CategoryName
		m.SubcategoryName = account.SubcategoryName
		m.BudgetMonthly = account.BudgetMonthly
		m.BudgetAnnual = account.BudgetAnnual
		m.IsActive = account.IsActive
		m.LastUpdatedAt = account.LastUpdatedAt
		m.LastUpdatedBy = account.LastUpdatedBy
		return putJSON(b, []byte(m.Code), m)
	})
}
