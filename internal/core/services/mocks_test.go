package services_test

import (
	"context"

	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, tenantID string, limit int, cursor string) ([]domain.Transaction, string, error) {
	args := m.Called(ctx, tenantID, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.String(1), args.Error(2)
}

func (m *MockTransactionRepository) PatchTransactionBalances(ctx context.Context, tenantID string, id string, stamp domain.BalanceStamp) error {
	args := m.Called(ctx, tenantID, id, stamp)
	return args.Error(0)
}

func (m *MockTransactionRepository) OverwriteTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

// MockMovementRepository is a mock type for the MovementRepositoryFacade interface
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) ListMovements(ctx context.Context, tenantID string, limit int, cursor string) ([]domain.Movement, string, error) {
	args := m.Called(ctx, tenantID, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Movement), args.String(1), args.Error(2)
}

func (m *MockMovementRepository) PatchMovementBalances(ctx context.Context, tenantID string, id string, stamp domain.BalanceStamp) error {
	args := m.Called(ctx, tenantID, id, stamp)
	return args.Error(0)
}

func (m *MockMovementRepository) OverwriteMovement(ctx context.Context, movement domain.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) DeleteMovement(ctx context.Context, tenantID string, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockBalanceLogRepository is a mock type for the BalanceLogRepository interface
type MockBalanceLogRepository struct {
	mock.Mock
}

func (m *MockBalanceLogRepository) SaveAuditEntries(ctx context.Context, tenantID string, entries []domain.AuditLogEntry) error {
	args := m.Called(ctx, tenantID, entries)
	return args.Error(0)
}

func (m *MockBalanceLogRepository) SaveSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockBalanceLogRepository) LatestSnapshots(ctx context.Context, tenantID string) (map[domain.BalanceAccount]domain.BalanceSnapshot, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.BalanceAccount]domain.BalanceSnapshot), args.Error(1)
}

func (m *MockBalanceLogRepository) ListAuditEntries(ctx context.Context, tenantID string, limit int) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, tenantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

// MockAccountResolver is a mock type for the AccountResolverSvc interface
type MockAccountResolver struct {
	mock.Mock
}

func (m *MockAccountResolver) ResolveByCategory(ctx context.Context, tenantID string, categoryName string, subcategoryName *string) (string, bool, error) {
	args := m.Called(ctx, tenantID, categoryName, subcategoryName)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockAccountResolver) ResolveByLegacyID(ctx context.Context, tenantID string, categoryID string, subcategoryID *string) (string, bool, error) {
	args := m.Called(ctx, tenantID, categoryID, subcategoryID)
	return args.String(0), args.Bool(1), args.Error(2)
}
