package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/nonprofit_ledger/internal/apperrors"
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/nonprofit_ledger/internal/core/ports/services"
	"github.com/SscSPs/nonprofit_ledger/internal/core/services"
	"github.com/SscSPs/nonprofit_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testTenant = "tenant-1"

type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *steppingClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func categoryFilter() mock.AnythingOfTypeArgument {
	return mock.AnythingOfType("domain.AccountFilter")
}

func displayIs(d domain.DisplayAs) func(domain.AccountFilter) bool {
	return func(f domain.AccountFilter) bool {
		return f.DisplayAs != nil && *f.DisplayAs == d
	}
}

func strIs(p *string, v string) bool {
	return p != nil && *p == v
}

// --- Test Suite Setup ---

type AccountDirectoryTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	clock    *steppingClock
	service  portssvc.AccountSvcFacade
}

func (suite *AccountDirectoryTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.clock = &steppingClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	suite.service = services.NewAccountDirectory(
		suite.mockRepo,
		services.WithLookupCache(services.NewLookupCache(time.Minute, suite.clock.Now)),
		services.WithDirectoryClock(suite.clock.Now),
	)
}

// --- Resolution ---

func (suite *AccountDirectoryTestSuite) TestResolveByCategory_CategoryOnly() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccounts", ctx, testTenant, mock.MatchedBy(func(f domain.AccountFilter) bool {
		return strIs(f.CategoryName, "Programs") && f.SubcategoryName == nil && displayIs(domain.DisplayCategory)(f)
	})).Return([]domain.Account{{Code: "5200"}, {Code: "5100"}}, nil).Once()

	code, found, err := suite.service.ResolveByCategory(ctx, testTenant, "Programs", nil)

	suite.NoError(err)
	suite.True(found)
	suite.Equal("5100", code)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountDirectoryTestSuite) TestResolveByCategory_WithSubcategory() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccounts", ctx, testTenant, mock.MatchedBy(func(f domain.AccountFilter) bool {
		return strIs(f.CategoryName, "Programs") && strIs(f.SubcategoryName, "Supplies") &&
			displayIs(domain.DisplaySubcategory)(f)
	})).Return([]domain.Account{{Code: "5110"}}, nil).Once()

	code, found, err := suite.service.ResolveByCategory(ctx, testTenant, "Programs", domain.StrPtr("Supplies"))

	suite.NoError(err)
	suite.True(found)
	suite.Equal("5110", code)
}

func (suite *AccountDirectoryTestSuite) TestResolveByCategory_MissIsCachedAndNotAnError() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccounts", ctx, testTenant, categoryFilter()).Return([]domain.Account{}, nil).Once()

	for i := 0; i < 3; i++ {
		code, found, err := suite.service.ResolveByCategory(ctx, testTenant, "Nope", nil)
		suite.NoError(err)
		suite.False(found)
		suite.Empty(code)
	}
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "FindAccounts", 1)
}

func (suite *AccountDirectoryTestSuite) TestResolveByCategory_StaleWithinTTL() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccounts", ctx, testTenant, categoryFilter()).Return([]domain.Account{{Code: "5100"}}, nil).Once()

	code, _, err := suite.service.ResolveByCategory(ctx, testTenant, "Programs", nil)
	suite.NoError(err)
	suite.Equal("5100", code)

	// The account is renamed in the store; the cached answer keeps being served.
	suite.mockRepo.On("FindAccounts", ctx, testTenant, categoryFilter()).Return([]domain.Account{}, nil).Once()
	suite.clock.Advance(30 * time.Second)
	code, found, err := suite.service.ResolveByCategory(ctx, testTenant, "Programs", nil)
	suite.NoError(err)
	suite.True(found)
	suite.Equal("5100", code)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "FindAccounts", 1)

	// After the TTL boundary the whole cache is dropped and the rename becomes visible.
	suite.clock.Advance(31 * time.Second)
	_, found, err = suite.service.ResolveByCategory(ctx, testTenant, "Programs", nil)
	suite.NoError(err)
	suite.False(found)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "FindAccounts", 2)
}

func (suite *AccountDirectoryTestSuite) TestResolveByCategory_StoreErrorNotCached() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccounts", ctx, testTenant, categoryFilter()).Return(nil, errors.New("db down")).Once()
	suite.mockRepo.On("FindAccounts", ctx, testTenant, categoryFilter()).Return([]domain.Account{{Code: "5100"}}, nil).Once()

	_, _, err := suite.service.ResolveByCategory(ctx, testTenant, "Programs", nil)
	suite.ErrorIs(err, apperrors.ErrInternal)

	code, found, err := suite.service.ResolveByCategory(ctx, testTenant, "Programs", nil)
	suite.NoError(err)
	suite.True(found)
	suite.Equal("5100", code)
}

func (suite *AccountDirectoryTestSuite) TestResolveByLegacyID() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccounts", ctx, testTenant, mock.MatchedBy(func(f domain.AccountFilter) bool {
		return strIs(f.LegacyCategoryID, "cat-7") && strIs(f.LegacySubcategoryID, "sub-2") && displayIs(domain.DisplaySubcategory)(f)
	})).Return([]domain.Account{{Code: "5120"}}, nil).Once()

	code, found, err := suite.service.ResolveByLegacyID(ctx, testTenant, "cat-7", domain.StrPtr("sub-2"))
	suite.NoError(err)
	suite.True(found)
	suite.Equal("5120", code)

	// Same IDs resolved by name are a different cache entry.
	suite.mockRepo.On("FindAccounts", ctx, testTenant, categoryFilter()).Return([]domain.Account{}, nil).Once()
	_, found, err = suite.service.ResolveByCategory(ctx, testTenant, "cat-7", domain.StrPtr("sub-2"))
	suite.NoError(err)
	suite.False(found)
}

// --- Categories ---

func (suite *AccountDirectoryTestSuite) expectCategories(codes ...string) {
	accounts := make([]domain.Account, 0, len(codes))
	for _, c := range codes {
		accounts = append(accounts, domain.Account{Code: c, AccountName: "Account " + c, CategoryName: "Category " + c, IsActive: true})
	}
	suite.mockRepo.On("FindAccounts", mock.Anything, testTenant, mock.MatchedBy(displayIs(domain.DisplayCategory))).Return(accounts, nil).Once()
}

func (suite *AccountDirectoryTestSuite) TestListCategoriesFromAccounts_LexicographicOrder() {
	tests := []struct {
		codes []string
		want  []string
	}{
		{[]string{"5100", "1000", "4010"}, []string{"1000", "4010", "5100"}},
		{[]string{"900", "1000"}, []string{"1000", "900"}},
	}

	for _, tt := range tests {
		suite.SetupTest()
		suite.expectCategories(tt.codes...)
		suite.mockRepo.On("FindAccounts", mock.Anything, testTenant, mock.MatchedBy(displayIs(domain.DisplaySubcategory))).Return([]domain.Account{}, nil)

		categories, err := suite.service.ListCategoriesFromAccounts(context.Background(), testTenant)
		suite.NoError(err)

		got := make([]string, len(categories))
		for i, c := range categories {
			got[i] = c.Code
		}
		suite.Equal(tt.want, got)
	}
}

func (suite *AccountDirectoryTestSuite) TestListCategoriesFromAccounts_Subcategories() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccounts", ctx, testTenant, mock.MatchedBy(displayIs(domain.DisplayCategory))).Return([]domain.Account{
		{Code: "5100", AccountName: "Programs", CategoryName: "Programs", LegacyCategoryID: domain.StrPtr("cat-1"), IsActive: true},
	}, nil).Once()
	suite.mockRepo.On("FindAccounts", ctx, testTenant, mock.MatchedBy(func(f domain.AccountFilter) bool {
		return strIs(f.ParentCode, "5100") && displayIs(domain.DisplaySubcategory)(f)
	})).Return([]domain.Account{
		{Code: "5120", AccountName: "Travel"},
		{Code: "5110", AccountName: "Supplies"},
	}, nil).Once()

	categories, err := suite.service.ListCategoriesFromAccounts(ctx, testTenant)

	suite.NoError(err)
	suite.Require().Len(categories, 1)
	suite.Equal("5100", categories[0].ID)
	suite.Equal("cat-1", *categories[0].LegacyID)
	suite.Equal("Programs", categories[0].Name)
	suite.True(categories[0].Active)
	suite.Equal([]domain.Subcategory{{ID: "5110", Name: "Supplies"}, {ID: "5120", Name: "Travel"}}, categories[0].Subcategories)
}

// --- Writes ---

func (suite *AccountDirectoryTestSuite) TestCreateAccount_DerivesFieldsAndDefaultsHidden() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "2100", AccountName: "Payables", Type: domain.Liability}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "2100" && a.TenantID == testTenant &&
			a.DisplayAs == domain.DisplayHidden &&
			a.NormalBalance == domain.CreditNormal &&
			a.FinancialStatement == domain.BalanceSheet &&
			a.IsActive && a.CreatedBy == "op-1" && a.BudgetMonthly.IsZero()
	})).Return(nil).Once()

	code, err := suite.service.CreateAccount(ctx, testTenant, req, "op-1")

	suite.NoError(err)
	suite.Equal("2100", code)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountDirectoryTestSuite) TestCreateAccount_InvalidType() {
	_, err := suite.service.CreateAccount(context.Background(), testTenant, dto.CreateAccountRequest{Code: "1", AccountName: "x", Type: "revenue"}, "op-1")
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountDirectoryTestSuite) TestCreateAccount_UnknownParent() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByCode", ctx, testTenant, "5100").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, testTenant, dto.CreateAccountRequest{
		Code: "5110", AccountName: "Supplies", Type: domain.Expense, DisplayAs: domain.DisplaySubcategory, ParentCode: domain.StrPtr("5100"),
	}, "op-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountDirectoryTestSuite) TestCreateAccount_Duplicate() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAccount", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, testTenant, dto.CreateAccountRequest{Code: "1000", AccountName: "Cash", Type: domain.Asset}, "op-1")
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountDirectoryTestSuite) TestUpdateAccount_OnlyWhitelistedFields() {
	ctx := context.Background()
	existing := &domain.Account{
		TenantID: testTenant, Code: "5100", AccountName: "Programs", Type: domain.Expense,
		DisplayAs: domain.DisplayCategory, NormalBalance: domain.DebitNormal, IsActive: true,
	}
	suite.mockRepo.On("FindAccountByCode", ctx, testTenant, "5100").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountName == "Program Services" &&
			a.BudgetAnnual.Equal(decimal.NewFromInt(12000)) &&
			a.Type == domain.Expense && a.DisplayAs == domain.DisplayCategory &&
			a.LastUpdatedBy == "op-2"
	})).Return(nil).Once()

	annual := decimal.NewFromInt(12000)
	updated, err := suite.service.UpdateAccount(ctx, testTenant, "5100", dto.UpdateAccountRequest{
		AccountName:  domain.StrPtr("Program Services"),
		BudgetAnnual: &annual,
	}, "op-2")

	suite.NoError(err)
	suite.Equal("Program Services", updated.AccountName)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountDirectoryTestSuite) TestUpdateAccount_NoChanges() {
	_, err := suite.service.UpdateAccount(context.Background(), testTenant, "5100", dto.UpdateAccountRequest{}, "op-1")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountDirectoryTestSuite) TestUpdateAccount_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByCode", ctx, testTenant, "9999").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateAccount(ctx, testTenant, "9999", dto.UpdateAccountRequest{AccountName: domain.StrPtr("x")}, "op-1")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountDirectoryTestSuite) TestDeactivateAccount() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByCode", ctx, testTenant, "5100").Return(&domain.Account{Code: "5100", IsActive: true}, nil).Twice()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool { return !a.IsActive })).Return(nil).Once()

	suite.NoError(suite.service.DeactivateAccount(ctx, testTenant, "5100", "op-1"))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountDirectoryTestSuite) TestDeactivateAccount_AlreadyInactive() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByCode", ctx, testTenant, "5100").Return(&domain.Account{Code: "5100", IsActive: false}, nil).Once()

	suite.NoError(suite.service.DeactivateAccount(ctx, testTenant, "5100", "op-1"))
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountDirectoryTestSuite) TestSeedDefaultChart_SkipsExisting() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByCode", ctx, testTenant, domain.CashAccountCode).Return(&domain.Account{Code: domain.CashAccountCode}, nil).Once()
	suite.mockRepo.On("FindAccountByCode", ctx, testTenant, mock.Anything).Return(nil, apperrors.ErrNotFound)
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool { return a.Code == domain.BankAccountCode })).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.Anything).Return(nil)

	summary, err := suite.service.SeedDefaultChart(ctx, testTenant, "op-1")

	suite.NoError(err)
	suite.Equal([]string{domain.IncomeRootAccountCode, domain.DonationsAccountCode, domain.GeneralExpenseCode}, summary.Created)
	suite.Equal([]string{domain.CashAccountCode, domain.BankAccountCode}, summary.Skipped)
}

func (suite *AccountDirectoryTestSuite) TestSeedDefaultChart_StoreError() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByCode", ctx, testTenant, mock.Anything).Return(nil, errors.New("timeout")).Once()

	_, err := suite.service.SeedDefaultChart(ctx, testTenant, "op-1")
	suite.Error(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestAccountDirectory(t *testing.T) {
	suite.Run(t, new(AccountDirectoryTestSuite))
}

func TestAccountDirectory_ConcurrentResolve(t *testing.T) {
	repo := new(MockAccountRepository)
	repo.On("FindAccounts", mock.Anything, testTenant, mock.Anything).Return([]domain.Account{{Code: "5100"}}, nil)
	svc := services.NewAccountDirectory(repo)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, found, err := svc.ResolveByCategory(context.Background(), testTenant, "Programs", nil)
			assert.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "5100", code)
		}()
	}
	wg.Wait()
}
