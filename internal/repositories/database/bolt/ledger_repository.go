package bolt

import (
	"context"
	"fmt"

	"github.com/SscSPs/nonprofit_ledger/internal/apperrors"
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/nonprofit_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/nonprofit_ledger/internal/models"
	"github.com/SscSPs/nonprofit_ledger/internal/utils/mapping"
	"github.com/SscSPs/nonprofit_ledger/internal/utils/pagination"
	bbolt "go.etcd.io/bbolt"
)

const defaultPageSize = 100

// listPage reads one cursor page of a tenant collection keyed by record ID.
func listPage[T any](s *Store, collection, tenantID string, limit int, cursor string, idOf func(T) string) ([]T, string, error) {
	afterID, err := pagination.DecodeCursor(cursor)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if limit <= 0 {
		limit = defaultPageSize
	}

	var page []T
	var more bool
	err = s.db.View(func(tx *bbolt.Tx) error {
		b, err := tenantBucket(tx, collection, tenantID)
		if err != nil {
			return err
		}
		page, more, err = scanAfter[T](b, afterID, limit)
		return err
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to list %s: %w", collection, err)
	}
	if !more || len(page) == 0 {
		return page, "", nil
	}
	return page, pagination.EncodeCursor(idOf(page[len(page)-1])), nil
}

// patchStamp rewrites the balance fields of a stored record in place.
func patchStamp[T any](s *Store, collection, tenantID, id string, apply func(*T)) error {
	if !s.patchEnabled {
		return apperrors.ErrPatchUnsupported
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tenantBucket(tx, collection, tenantID)
		if err != nil {
			return err
		}
		var record T
		if err := getJSON(b, []byte(id), &record); err != nil {
			return err
		}
		apply(&record)
		return putJSON(b, []byte(id), record)
	})
}

func overwrite(s *Store, collection, tenantID, id string, record any) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tenantBucket(tx, collection, tenantID)
		if err != nil {
			return err
		}
		return putJSON(b, []byte(id), record)
	})
}

// TransactionRepository stores transactions as JSON documents keyed by ID.
type TransactionRepository struct {
	store *Store
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func (r *TransactionRepository) ListTransactions(ctx context.Context, tenantID string, limit int, cursor string) ([]domain.Transaction, string, error) {
	page, next, err := listPage(r.store, BucketTransactions, tenantID, limit, cursor,
		func(m models.LedgerTransaction) string { return m.ID })
	if err != nil {
		return nil, "", err
	}
	return mapping.ToDomainTransactionSlice(page), next, nil
}

func (r *TransactionRepository) PatchTransactionBalances(ctx context.Context, tenantID string, id string, stamp domain.BalanceStamp) error {
	return patchStamp(r.store, BucketTransactions, tenantID, id, func(m *models.LedgerTransaction) {
		m.CashBalanceAfter = stamp.CashBalanceAfter
		m.BankBalanceAfter = stamp.BankBalanceAfter
	})
}

func (r *TransactionRepository) OverwriteTransaction(ctx context.Context, txn domain.Transaction) error {
	return overwrite(r.store, BucketTransactions, txn.TenantID, txn.ID, mapping.ToModelTransaction(txn))
}

// MovementRepository stores cash movements as JSON documents keyed by ID.
type MovementRepository struct {
	store *Store
}

var _ portsrepo.MovementRepositoryFacade = (*MovementRepository)(nil)

func (r *MovementRepository) ListMovements(ctx context.Context, tenantID string, limit int, cursor string) ([]domain.Movement, string, error) {
	page, next, err := listPage(r.store, BucketMovements, tenantID, limit, cursor,
		func(m models.CashMovement) string { return m.ID })
	if err != nil {
		return nil, "", err
	}
	return mapping.ToDomainMovementSlice(page), next, nil
}

func (r *MovementRepository) PatchMovementBalances(ctx context.Context, tenantID string, id string, stamp domain.BalanceStamp) error {
	return patchStamp(r.store, BucketMovements, tenantID, id, func(m *models.CashMovement) {
		m.CashBalanceAfter = stamp.CashBalanceAfter
		m.BankBalanceAfter = stamp.BankBalanceAfter
	})
}

func (r *MovementRepository) OverwriteMovement(ctx context.Context, movement domain.Movement) error {
	return overwrite(r.store, BucketMovements, movement.TenantID, movement.ID, mapping.ToModelMovement(movement))
}

func (r *MovementRepository) DeleteMovement(ctx context.Context, tenantID string, id string) error {
	return r.store.db.Update(func(tx *bbolt.Tx) error {
		b, err := tenantBucket(tx, BucketMovements, tenantID)
		if err != nil {
			return err
		}
		if b.Get([]byte(id)) == nil {
			return apperrors.ErrNotFound
		}
		return b.Delete([]byte(id))
	})
}
