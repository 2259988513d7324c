package bolt

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/nonprofit_ledger/internal/apperrors"
	bbolt "go.etcd.io/bbolt"
)

// Top-level buckets. Each holds one nested bucket per tenant.
const (
	BucketAccounts     = "accounts"
	BucketTransactions = "ledger_transactions"
	BucketMovements    = "cash_movements"
	BucketAuditLog     = "balance_audit_log"
	BucketSnapshots    = "balance_snapshots"
)

var collections = []string{BucketAccounts, BucketTransactions, BucketMovements, BucketAuditLog, BucketSnapshots}

// Store represents the bbolt database wrapper.
type Store struct {
	db           *bbolt.DB
	patchEnabled bool
}

// Option configures a Store.
type Option func(*Store)

// WithPatchSupport controls whether balance patches are applied in place.
// A store without patch support returns apperrors.ErrPatchUnsupported and
// callers fall back to a full overwrite.
func WithPatchSupport(enabled bool) Option {
	return func(s *Store) {
		s.patchEnabled = enabled
	}
}

// Open opens (or creates) the database file and initializes the collections.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range collections {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db, patchEnabled: true}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// tenantBucket returns the tenant's bucket inside a collection. In a read-only
// transaction a missing tenant yields nil.
func tenantBucket(tx *bbolt.Tx, collection, tenantID string) (*bbolt.Bucket, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenant ID is required", apperrors.ErrValidation)
	}
	root := tx.Bucket([]byte(collection))
	if root == nil {
		return nil, fmt.Errorf("bucket %s not found", collection)
	}
	if !tx.Writable() {
		return root.Bucket([]byte(tenantID)), nil
	}
	b, err := root.CreateBucketIfNotExists([]byte(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to create tenant bucket %s/%s: %w", collection, tenantID, err)
	}
	return b, nil
}

func putJSON(b *bbolt.Bucket, key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return b.Put(key, data)
}

// getJSON decodes the value under key. A missing key is apperrors.ErrNotFound.
func getJSON(b *bbolt.Bucket, key []byte, value any) error {
	if b == nil {
		return apperrors.ErrNotFound
	}
	data := b.Get(key)
	if data == nil {
		return apperrors.ErrNotFound
	}
	return json.Unmarshal(data, value)
}

// scanAfter decodes up to limit values whose keys sort strictly after afterKey.
// It reports whether more keys follow.
func scanAfter[T any](b *bbolt.Bucket, afterKey string, limit int) ([]T, bool, error) {
	var out []T
	if b == nil {
		return out, false, nil
	}
	c := b.Cursor()
	var k, v []byte
	if afterKey == "" {
		k, v = c.First()
	} else {
		k, v = c.Seek([]byte(afterKey))
		if k != nil && string(k) == afterKey {
			k, v = c.Next()
		}
	}
	for ; k != nil; k, v = c.Next() {
		if len(out) == limit {
			return out, true, nil
		}
		var item T
		if err := json.Unmarshal(v, &item); err != nil {
			return nil, false, fmt.Errorf("failed to unmarshal record %s: %w", k, err)
		}
		out = append(out, item)
	}
	return out, false, nil
}
