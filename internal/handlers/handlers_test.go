package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/nonprofit_ledger/internal/apperrors"
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/nonprofit_ledger/internal/core/ports/services"
	"github.com/SscSPs/nonprofit_ledger/internal/dto"
	"github.com/SscSPs/nonprofit_ledger/internal/handlers"
	"github.com/SscSPs/nonprofit_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock services ---

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ResolveByCategory(ctx context.Context, tenantID string, categoryName string, subcategoryName *string) (string, bool, error) {
	args := m.Called(ctx, tenantID, categoryName, subcategoryName)
	return args.String(0), args.Bool(1), args.Error(2)
}
func (m *MockAccountService) ResolveByLegacyID(ctx context.Context, tenantID string, categoryID string, subcategoryID *string) (string, bool, error) {
	args := m.Called(ctx, tenantID, categoryID, subcategoryID)
	return args.String(0), args.Bool(1), args.Error(2)
}
func (m *MockAccountService) GetAccount(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListCategoriesFromAccounts(ctx context.Context, tenantID string) ([]domain.Category, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, operatorID string) (string, error) {
	args := m.Called(ctx, tenantID, req, operatorID)
	return args.String(0), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, tenantID string, code string, req dto.UpdateAccountRequest, operatorID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code, req, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, tenantID string, code string, operatorID string) error {
	return m.Called(ctx, tenantID, code, operatorID).Error(0)
}
func (m *MockAccountService) SeedDefaultChart(ctx context.Context, tenantID string, operatorID string) (*domain.SeedSummary, error) {
	args := m.Called(ctx, tenantID, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeedSummary), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) BuildJournalEntries(ctx context.Context, tenantID string, txn domain.Transaction) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

var _ portssvc.JournalBuilderSvc = (*MockJournalService)(nil)

type MockReplayService struct {
	mock.Mock
}

func (m *MockReplayService) RunBalanceReplay(ctx context.Context, tenantID string, opening domain.OpeningBalances) (*domain.ReplaySummary, error) {
	args := m.Called(ctx, tenantID, opening)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReplaySummary), args.Error(1)
}
func (m *MockReplayService) RunBalanceReplayForTenants(ctx context.Context, reqs []domain.TenantReplayRequest) ([]domain.ReplaySummary, error) {
	args := m.Called(ctx, reqs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReplaySummary), args.Error(1)
}
func (m *MockReplayService) LatestBalances(ctx context.Context, tenantID string) (map[domain.BalanceAccount]domain.BalanceSnapshot, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.BalanceAccount]domain.BalanceSnapshot), args.Error(1)
}
func (m *MockReplayService) ListAuditEntries(ctx context.Context, tenantID string, limit int) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, tenantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

var _ portssvc.BalanceReplaySvc = (*MockReplayService)(nil)

type MockCleanupService struct {
	mock.Mock
}

func (m *MockCleanupService) CleanupLegacyCashExpenses(ctx context.Context, tenantID string) (*domain.CleanupSummary, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CleanupSummary), args.Error(1)
}

type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) SummarizeActivity(ctx context.Context, tenantID string) (*domain.ActivityReport, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityReport), args.Error(1)
}

// --- Test Suite ---

const (
	tenantID   = "tenant-1"
	operatorID = "op-1"
)

type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	accounts  *MockAccountService
	journal   *MockJournalService
	replay    *MockReplayService
	cleanup   *MockCleanupService
	reporting *MockReportingService
	jwtSecret string
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(dto.RegisterValidations())
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.accounts = new(MockAccountService)
	suite.journal = new(MockJournalService)
	suite.replay = new(MockReplayService)
	suite.cleanup = new(MockCleanupService)
	suite.reporting = new(MockReportingService)

	lim, err := middleware.NewMemoryLimiter("2-M")
	suite.Require().NoError(err)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterAPIV1Routes(v1, &portssvc.ServiceContainer{
		Account:   suite.accounts,
		Journal:   suite.journal,
		Replay:    suite.replay,
		Cleanup:   suite.cleanup,
		Reporting: suite.reporting,
	}, middleware.RateLimit(lim))
}

func (suite *HandlerTestSuite) generateTestToken(subject string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ledger-test",
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(operatorID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) TestGetAccount() {
	suite.accounts.On("GetAccount", mock.Anything, tenantID, "5100").
		Return(&domain.Account{TenantID: tenantID, Code: "5100", AccountName: "Programs", Type: domain.Expense}, nil).Once()
	suite.accounts.On("GetAccount", mock.Anything, tenantID, "9999").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/tenants/tenant-1/accounts/5100", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Programs", resp.AccountName)

	w = suite.do(http.MethodGet, "/tenants/tenant-1/accounts/9999", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.accounts.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestResolveAccount_MissIsNotAnError() {
	suite.accounts.On("ResolveByCategory", mock.Anything, tenantID, "Misc", (*string)(nil)).
		Return("", false, nil).Once()

	w := suite.do(http.MethodGet, "/tenants/tenant-1/accounts/resolve?category=Misc", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"code":null,"found":false}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestResolveLegacyAccount() {
	suite.accounts.On("ResolveByLegacyID", mock.Anything, tenantID, "cat-9", mock.MatchedBy(func(s *string) bool {
		return s != nil && *s == "sub-2"
	})).Return("5110", true, nil).Once()

	w := suite.do(http.MethodGet, "/tenants/tenant-1/accounts/resolve-legacy?categoryId=cat-9&subcategoryId=sub-2", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"code":"5110","found":true}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestCreateAccount() {
	req := dto.CreateAccountRequest{Code: "5100", AccountName: "Programs", Type: domain.Expense, DisplayAs: domain.DisplayCategory}
	suite.accounts.On("CreateAccount", mock.Anything, tenantID, req, operatorID).Return("5100", nil).Once()

	w := suite.do(http.MethodPost, "/tenants/tenant-1/accounts", req)
	suite.Equal(http.StatusCreated, w.Code)
	suite.JSONEq(`{"code":"5100"}`, w.Body.String())

	suite.accounts.On("CreateAccount", mock.Anything, tenantID, req, operatorID).
		Return("", apperrors.ErrDuplicate).Once()
	w = suite.do(http.MethodPost, "/tenants/tenant-1/accounts", req)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestCreateAccount_InvalidType() {
	w := suite.do(http.MethodPost, "/tenants/tenant-1/accounts", map[string]any{
		"code": "5100", "accountName": "Programs", "type": "EXPENSE",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.accounts.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRequiresToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenants/tenant-1/categories", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.accounts.AssertNotCalled(suite.T(), "ListCategoriesFromAccounts", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestDeactivateAccount() {
	suite.accounts.On("DeactivateAccount", mock.Anything, tenantID, "5100", operatorID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/tenants/tenant-1/accounts/5100", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.accounts.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestPreviewJournal() {
	amount := decimal.NewFromInt(25)
	entries := []domain.JournalEntry{
		domain.DebitLine("5100", amount, "Supplies"),
		domain.CreditLine(domain.CashAccountCode, amount, "Supplies"),
	}
	suite.journal.On("BuildJournalEntries", mock.Anything, tenantID, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.TenantID == tenantID && t.Type == domain.ExpenseTransaction && t.Amount.Equal(amount)
	})).Return(entries, nil).Once()
	suite.accounts.On("GetAccount", mock.Anything, tenantID, "5100").Return(&domain.Account{Code: "5100", Type: domain.Expense}, nil).Once()
	suite.accounts.On("GetAccount", mock.Anything, tenantID, domain.CashAccountCode).Return(&domain.Account{Code: domain.CashAccountCode, Type: domain.Asset}, nil).Once()

	w := suite.do(http.MethodPost, "/tenants/tenant-1/journal/preview", map[string]any{
		"date": "2024-01-05T00:00:00Z", "type": "expense", "amount": "25", "category": "Programs", "paymentMethod": "cash",
	})

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.JournalPreviewResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 2)
	suite.True(resp.TotalDebit.Equal(amount))
	suite.True(resp.TotalCredit.Equal(amount))

	suite.Require().Len(resp.Effects, 2)
	suite.Equal("5100", resp.Effects[0].AccountCode)
	suite.True(resp.Effects[0].Change.Equal(amount))
	suite.Equal(domain.Asset, resp.Effects[1].AccountType)
	suite.True(resp.Effects[1].Change.Equal(amount.Neg()))
}

func (suite *HandlerTestSuite) TestPreviewJournal_IncomeEffectsSkipUnknownAccount() {
	amount := decimal.NewFromInt(300)
	entries := []domain.JournalEntry{
		domain.DebitLine(domain.BankAccountCode, amount, "Gift"),
		domain.CreditLine(domain.DonationsAccountCode, amount, "Gift"),
	}
	suite.journal.On("BuildJournalEntries", mock.Anything, tenantID, mock.Anything).Return(entries, nil).Once()
	suite.accounts.On("GetAccount", mock.Anything, tenantID, domain.BankAccountCode).Return(nil, apperrors.ErrNotFound).Once()
	suite.accounts.On("GetAccount", mock.Anything, tenantID, domain.DonationsAccountCode).Return(&domain.Account{Code: domain.DonationsAccountCode, Type: domain.Income}, nil).Once()

	w := suite.do(http.MethodPost, "/tenants/tenant-1/journal/preview", map[string]any{
		"date": "2024-01-05T00:00:00Z", "type": "income", "amount": "300", "account": "bank",
	})

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.JournalPreviewResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 2)
	suite.Require().Len(resp.Effects, 1)
	suite.Equal(domain.DonationsAccountCode, resp.Effects[0].AccountCode)
	suite.True(resp.Effects[0].Change.Equal(amount))
}

func (suite *HandlerTestSuite) TestPreviewJournal_ValidationError() {
	suite.journal.On("BuildJournalEntries", mock.Anything, tenantID, mock.Anything).
		Return(nil, apperrors.NewAppError(apperrors.ErrValidation, "amount must be positive", nil)).Once()

	w := suite.do(http.MethodPost, "/tenants/tenant-1/journal/preview", map[string]any{
		"date": "2024-01-05T00:00:00Z", "type": "expense", "amount": "-1",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestRunReplay_UsesLatestSnapshot() {
	suite.replay.On("LatestBalances", mock.Anything, tenantID).Return(map[domain.BalanceAccount]domain.BalanceSnapshot{
		domain.Cash: {Account: domain.Cash, Balance: decimal.NewFromInt(100)},
		domain.Bank: {Account: domain.Bank, Balance: decimal.NewFromInt(900)},
	}, nil).Once()
	suite.replay.On("RunBalanceReplay", mock.Anything, tenantID, mock.MatchedBy(func(o domain.OpeningBalances) bool {
		return o.Cash.Equal(decimal.NewFromInt(100)) && o.Bank.Equal(decimal.NewFromInt(5))
	})).Return(&domain.ReplaySummary{TenantID: tenantID, RunID: "run-1", UpdatedCount: 3}, nil).Once()

	w := suite.do(http.MethodPost, "/tenants/tenant-1/maintenance/replay", map[string]any{
		"openingBank": "5", "useLatestSnapshot": true,
	})

	suite.Require().Equal(http.StatusOK, w.Code)
	var summary domain.ReplaySummary
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &summary))
	suite.Equal(3, summary.UpdatedCount)
	suite.replay.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestRunReplay_EmptyBodyAndRateLimit() {
	suite.replay.On("RunBalanceReplay", mock.Anything, tenantID, mock.MatchedBy(func(o domain.OpeningBalances) bool {
		return o.Cash.IsZero() && o.Bank.IsZero()
	})).Return(&domain.ReplaySummary{TenantID: tenantID}, nil).Twice()

	suite.Equal(http.StatusOK, suite.do(http.MethodPost, "/tenants/tenant-1/maintenance/replay", nil).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodPost, "/tenants/tenant-1/maintenance/replay", nil).Code)
	w := suite.do(http.MethodPost, "/tenants/tenant-1/maintenance/replay", nil)

	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.replay.AssertNumberOfCalls(suite.T(), "RunBalanceReplay", 2)
}

func (suite *HandlerTestSuite) TestRunReplayForTenants() {
	suite.replay.On("RunBalanceReplayForTenants", mock.Anything, mock.MatchedBy(func(reqs []domain.TenantReplayRequest) bool {
		return len(reqs) == 2 && reqs[0].TenantID == "a" && reqs[1].Opening.Cash.Equal(decimal.NewFromInt(7))
	})).Return([]domain.ReplaySummary{{TenantID: "a"}, {TenantID: "b", Error: "failed to load history"}}, nil).Once()

	w := suite.do(http.MethodPost, "/maintenance/replay-all", map[string]any{
		"tenants": []map[string]any{{"tenantID": "a"}, {"tenantID": "b", "openingCash": "7"}},
	})

	suite.Require().Equal(http.StatusOK, w.Code)
	var summaries []domain.ReplaySummary
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &summaries))
	suite.Len(summaries, 2)
	suite.Equal("failed to load history", summaries[1].Error)

	w = suite.do(http.MethodPost, "/maintenance/replay-all", map[string]any{"tenants": []any{}})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCleanupLegacy_InternalError() {
	suite.cleanup.On("CleanupLegacyCashExpenses", mock.Anything, tenantID).
		Return(nil, apperrors.NewAppError(apperrors.ErrInternal, "failed to load movements", nil)).Once()

	w := suite.do(http.MethodPost, "/tenants/tenant-1/maintenance/cleanup-legacy", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.JSONEq(`{"error":"Legacy cleanup failed"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestGetBalances_OmitsMissingAccounts() {
	suite.replay.On("LatestBalances", mock.Anything, tenantID).Return(map[domain.BalanceAccount]domain.BalanceSnapshot{
		domain.Cash: {Account: domain.Cash, Balance: decimal.NewFromInt(42), TransactionID: domain.ReplayStrategy},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/tenants/tenant-1/balances", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.BalancesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.Cash)
	suite.Nil(resp.Bank)
	suite.Equal(domain.ReplayStrategy, resp.Cash.TransactionID)
}

func (suite *HandlerTestSuite) TestListAudit() {
	suite.replay.On("ListAuditEntries", mock.Anything, tenantID, 50).
		Return([]domain.AuditLogEntry{{ID: "a1"}}, nil).Once()

	w := suite.do(http.MethodGet, "/tenants/tenant-1/audit", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/tenants/tenant-1/audit?limit=0", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.replay.AssertNumberOfCalls(suite.T(), "ListAuditEntries", 1)
}

func (suite *HandlerTestSuite) TestActivityReport() {
	suite.reporting.On("SummarizeActivity", mock.Anything, tenantID).Return(&domain.ActivityReport{
		TenantID:          tenantID,
		MovementsByBucket: []domain.BucketTotal{{Key: "donation", Count: 2, Total: decimal.NewFromInt(40)}},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/tenants/tenant-1/reports/activity", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var report domain.ActivityReport
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &report))
	suite.Len(report.MovementsByBucket, 1)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
