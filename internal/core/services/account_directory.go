package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/nonprofit_ledger/internal/apperrors"
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/nonprofit_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/nonprofit_ledger/internal/core/ports/services"
	"github.com/SscSPs/nonprofit_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// accountDirectory implements the AccountSvcFacade interface
type accountDirectory struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	cache       *LookupCache
	seed        *ChartSeed
	now         Clock
}

// AccountDirectoryOption is a functional option for configuring the account directory
type AccountDirectoryOption func(*accountDirectory)

// WithLookupCache replaces the default resolution cache.
func WithLookupCache(cache *LookupCache) AccountDirectoryOption {
	return func(s *accountDirectory) {
		s.cache = cache
	}
}

// WithChartSeed replaces the built-in default chart.
func WithChartSeed(seed *ChartSeed) AccountDirectoryOption {
	return func(s *accountDirectory) {
		s.seed = seed
	}
}

// WithDirectoryClock sets the clock used for audit timestamps.
func WithDirectoryClock(now Clock) AccountDirectoryOption {
	return func(s *accountDirectory) {
		s.now = now
	}
}

// NewAccountDirectory creates the account directory with the provided options
func NewAccountDirectory(repo portsrepo.AccountRepositoryFacade, options ...AccountDirectoryOption) portssvc.AccountSvcFacade {
	svc := &accountDirectory{
		accountRepo: repo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.cache == nil {
		svc.cache = NewLookupCache(DefaultLookupTTL, svc.now)
	}
	return svc
}

// Ensure accountDirectory implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountDirectory)(nil)

func (s *accountDirectory) ResolveByCategory(ctx context.Context, tenantID string, categoryName string, subcategoryName *string) (string, bool, error) {
	key := CategoryCacheKey(tenantID, categoryName, subcategoryName)
	if code, found, hit := s.cache.Get(key); hit {
		return code, found, nil
	}

	display := domain.DisplayCategory
	filter := domain.AccountFilter{CategoryName: &categoryName}
	if subcategoryName != nil {
		display = domain.DisplaySubcategory
		filter.SubcategoryName = subcategoryName
	}
	filter.DisplayAs = &display

	return s.resolve(ctx, tenantID, key, filter, slog.String("category", categoryName))
}

func (s *accountDirectory) ResolveByLegacyID(ctx context.Context, tenantID string, categoryID string, subcategoryID *string) (string, bool, error) {
	key := LegacyCacheKey(tenantID, categoryID, subcategoryID)
	if code, found, hit := s.cache.Get(key); hit {
		return code, found, nil
	}

	display := domain.DisplayCategory
	filter := domain.AccountFilter{LegacyCategoryID: &categoryID}
	if subcategoryID != nil {
		display = domain.DisplaySubcategory
		filter.LegacySubcategoryID = subcategoryID
	}
	filter.DisplayAs = &display

	return s.resolve(ctx, tenantID, key, filter, slog.String("legacy_category_id", categoryID))
}

// resolve runs the filtered scan behind a cache miss and caches the outcome.
// Store errors are returned and not cached.
func (s *accountDirectory) resolve(ctx context.Context, tenantID, key string, filter domain.AccountFilter, label slog.Attr) (string, bool, error) {
	accounts, err := s.accountRepo.FindAccounts(ctx, tenantID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve account", slog.String("tenant_id", tenantID), label)
		return "", false, apperrors.NewAppError(apperrors.ErrInternal, "failed to resolve account", err)
	}
	if len(accounts) == 0 {
		s.cache.Set(key, "", false)
		s.LogInfo(ctx, "No account matches; treating as uncategorized", slog.String("tenant_id", tenantID), label)
		return "", false, nil
	}

	sortAccountsByCode(accounts)
	code := accounts[0].Code
	s.cache.Set(key, code, true)
	s.LogDebug(ctx, "Resolved account", slog.String("tenant_id", tenantID), label, slog.String("code", code))
	return code, true, nil
}

func (s *accountDirectory) GetAccount(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, tenantID, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account", slog.String("tenant_id", tenantID), slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountDirectory) ListCategoriesFromAccounts(ctx context.Context, tenantID string) ([]domain.Category, error) {
	categoryDisplay := domain.DisplayCategory
	accounts, err := s.accountRepo.FindAccounts(ctx, tenantID, domain.AccountFilter{DisplayAs: &categoryDisplay})
	if err != nil {
		s.LogError(ctx, err, "Failed to list category accounts", slog.String("tenant_id", tenantID))
		return nil, apperrors.NewAppError(apperrors.ErrInternal, "failed to list categories", err)
	}
	sortAccountsByCode(accounts)

	subDisplay := domain.DisplaySubcategory
	categories := make([]domain.Category, 0, len(accounts))
	for _, account := range accounts {
		parent := account.Code
		children, err := s.accountRepo.FindAccounts(ctx, tenantID, domain.AccountFilter{ParentCode: &parent, DisplayAs: &subDisplay})
		if err != nil {
			s.LogError(ctx, err, "Failed to list subcategory accounts", slog.String("tenant_id", tenantID), slog.String("parent_code", parent))
			return nil, apperrors.NewAppError(apperrors.ErrInternal, "failed to list subcategories", err)
		}
		sortAccountsByCode(children)

		subcategories := make([]domain.Subcategory, 0, len(children))
		for _, child := range children {
			subcategories = append(subcategories, domain.Subcategory{ID: child.Code, Name: child.AccountName})
		}

		name := account.CategoryName
		if name == "" {
			name = account.AccountName
		}
		categories = append(categories, domain.Category{
			ID:            account.Code,
			LegacyID:      account.LegacyCategoryID,
			Code:          account.Code,
			Name:          name,
			Subcategories: subcategories,
			Active:        account.IsActive,
		})
	}
	return categories, nil
}

func (s *accountDirectory) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, operatorID string) (string, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return "", fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	if !req.Type.IsValid() {
		return "", fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, req.Type)
	}
	display := req.DisplayAs
	if display == "" {
		display = domain.DisplayHidden
	}
	if !display.IsValid() {
		return "", fmt.Errorf("%w: invalid display_as %q", apperrors.ErrValidation, display)
	}

	if req.ParentCode != nil {
		if _, err := s.accountRepo.FindAccountByCode(ctx, tenantID, *req.ParentCode); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return "", fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrValidation, *req.ParentCode)
			}
			s.LogError(ctx, err, "Failed to find parent account", slog.String("parent_code", *req.ParentCode))
			return "", err
		}
	}

	now := s.now()
	account := domain.Account{
		TenantID:            tenantID,
		Code:                code,
		AccountName:         req.AccountName,
		CategoryName:        req.CategoryName,
		SubcategoryName:     req.SubcategoryName,
		Type:                req.Type,
		DisplayAs:           display,
		ParentCode:          req.ParentCode,
		LegacyCategoryID:    req.LegacyCategoryID,
		LegacySubcategoryID: req.LegacySubcategoryID,
		BudgetMonthly:       decimalOrZero(req.BudgetMonthly),
		BudgetAnnual:        decimalOrZero(req.BudgetAnnual),
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorID,
		},
	}
	account.ApplyDerivedFields()

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("code", code),
			slog.String("tenant_id", tenantID))
		return "", err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("code", code),
		slog.String("tenant_id", tenantID))
	return code, nil
}

func (s *accountDirectory) UpdateAccount(ctx context.Context, tenantID string, code string, req dto.UpdateAccountRequest, operatorID string) (*domain.Account, error) {
	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: no updatable fields provided", apperrors.ErrValidation)
	}

	account, err := s.GetAccount(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}

	if req.AccountName != nil {
		account.AccountName = *req.AccountName
	}
	if req.CategoryName != nil {
		account.CategoryName = *req.CategoryName
	}
	if req.SubcategoryName != nil {
		account.SubcategoryName = *req.SubcategoryName
	}
	if req.BudgetMonthly != nil {
		account.BudgetMonthly = *req.BudgetMonthly
	}
	if req.BudgetAnnual != nil {
		account.BudgetAnnual = *req.BudgetAnnual
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = s.now()
	account.LastUpdatedBy = operatorID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("code", code),
			slog.String("tenant_id", tenantID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("code", code), slog.String("tenant_id", tenantID))
	return account, nil
}

func (s *accountDirectory) DeactivateAccount(ctx context.Context, tenantID string, code string, operatorID string) error {
	account, err := s.GetAccount(ctx, tenantID, code)
	if err != nil {
		return err
	}
	if !account.IsActive {
		s.LogDebug(ctx, "Account already inactive", slog.String("code", code))
		return nil
	}
	inactive := false
	_, err = s.UpdateAccount(ctx, tenantID, code, dto.UpdateAccountRequest{IsActive: &inactive}, operatorID)
	return err
}

func (s *accountDirectory) SeedDefaultChart(ctx context.Context, tenantID string, operatorID string) (*domain.SeedSummary, error) {
	seed := s.seed
	if seed == nil {
		var err error
		if seed, err = DefaultChartSeed(); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrInternal, "invalid built-in chart", err)
		}
	}

	summary := &domain.SeedSummary{Created: []string{}, Skipped: []string{}}
	for _, account := range seed.toAccounts(tenantID, operatorID, s.now()) {
		_, err := s.accountRepo.FindAccountByCode(ctx, tenantID, account.Code)
		switch {
		case err == nil:
			summary.Skipped = append(summary.Skipped, account.Code)
			continue
		case !errors.Is(err, apperrors.ErrNotFound):
			s.LogError(ctx, err, "Failed to check seed account", slog.String("code", account.Code))
			return summary, err
		}

		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				summary.Skipped = append(summary.Skipped, account.Code)
				continue
			}
			s.LogError(ctx, err, "Failed to save seed account", slog.String("code", account.Code))
			return summary, err
		}
		summary.Created = append(summary.Created, account.Code)
	}

	s.LogInfo(ctx, "Default chart seeded",
		slog.String("tenant_id", tenantID),
		slog.Int("created", len(summary.Created)),
		slog.Int("skipped", len(summary.Skipped)))
	return summary, nil
}

// sortAccountsByCode orders accounts by code using byte-wise string comparison,
// so "1000" sorts before "900".
func sortAccountsByCode(accounts []domain.Account) {
	slices.SortStableFunc(accounts, func(a, b domain.Account) int {
		return strings.Compare(a.Code, b.Code)
	})
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
