package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/nonprofit_ledger/internal/core/ports/repositories"
)

// WriteOutcome is the result of persisting one stamped record.
type WriteOutcome int

const (
	WriteFailed WriteOutcome = iota
	WritePatched
	WriteOverwritten
)

func (o WriteOutcome) String() string {
	switch o {
	case WritePatched:
		return "patched"
	case WriteOverwritten:
		return "overwritten"
	default:
		return "failed"
	}
}

// PersistencePolicy writes replay balances back onto records: a field-level
// patch first, then a full overwrite, then give up. A failure is returned to
// the caller to be counted; it never aborts a pass.
type PersistencePolicy struct {
	BaseService
	transactions portsrepo.TransactionWriter
	movements    portsrepo.MovementWriter
}

// NewPersistencePolicy creates a policy over the two record writers.
func NewPersistencePolicy(txns portsrepo.TransactionWriter, movs portsrepo.MovementWriter) *PersistencePolicy {
	return &PersistencePolicy{transactions: txns, movements: movs}
}

// PersistTransaction writes txn.BalanceStamp.
func (p *PersistencePolicy) PersistTransaction(ctx context.Context, txn domain.Transaction) (WriteOutcome, error) {
	return p.persist(ctx, domain.TransactionStream, txn.ID,
		func() error {
			return p.transactions.PatchTransactionBalances(ctx, txn.TenantID, txn.ID, txn.BalanceStamp)
		},
		func() error { return p.transactions.OverwriteTransaction(ctx, txn) },
	)
}

// PersistMovement writes m.BalanceStamp.
func (p *PersistencePolicy) PersistMovement(ctx context.Context, m domain.Movement) (WriteOutcome, error) {
	return p.persist(ctx, domain.MovementStream, m.ID,
		func() error { return p.movements.PatchMovementBalances(ctx, m.TenantID, m.ID, m.BalanceStamp) },
		func() error { return p.movements.OverwriteMovement(ctx, m) },
	)
}

func (p *PersistencePolicy) persist(ctx context.Context, stream domain.Stream, id string, patch, overwrite func() error) (WriteOutcome, error) {
	patchErr := patch()
	if patchErr == nil {
		return WritePatched, nil
	}
	p.LogDebug(ctx, "Patch rejected; overwriting record",
		slog.String("stream", string(stream)),
		slog.String("record_id", id),
		slog.String("error", patchErr.Error()))

	overwriteErr := overwrite()
	if overwriteErr == nil {
		return WriteOverwritten, nil
	}
	err := errors.Join(patchErr, overwriteErr)
	p.LogError(ctx, err, "Failed to persist replayed balances; skipping record",
		slog.String("stream", string(stream)),
		slog.String("record_id", id))
	return WriteFailed, err
}
