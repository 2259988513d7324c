package bolt

import (
	portsrepo "github.com/SscSPs/nonprofit_ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     &AccountRepository{store: store},
		TransactionRepo: &TransactionRepository{store: store},
		MovementRepo:    &MovementRepository{store: store},
		BalanceLogRepo:  &BalanceLogRepository{store: store},
	}
}
