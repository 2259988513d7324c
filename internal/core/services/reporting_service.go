package services

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/nonprofit_ledger/internal/apperrors"
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/nonprofit_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/nonprofit_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

const uncategorizedLabel = "Uncategorized"

// reportingService implements the ReportingSvc interface
type reportingService struct {
	BaseService
	loader historyLoader
	now    Clock
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingPaging sets the page size and record cap of the history scan.
func WithReportingPaging(pageSize, maxRecords int) ReportingServiceOption {
	return func(s *reportingService) {
		s.loader = newHistoryLoader(s.loader.transactions, s.loader.movements, pageSize, maxRecords)
	}
}

// WithReportingClock sets the clock used to stamp generated reports.
func WithReportingClock(now Clock) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(txns portsrepo.TransactionReader, movs portsrepo.MovementReader, options ...ReportingServiceOption) portssvc.ReportingSvc {
	svc := &reportingService{
		loader: newHistoryLoader(txns, movs, 0, 0),
		now:    time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// bucketer accumulates totals under string keys.
type bucketer map[string]*domain.BucketTotal

func (b bucketer) add(key string, amount decimal.Decimal) {
	t, ok := b[key]
	if !ok {
		t = &domain.BucketTotal{Key: key}
		b[key] = t
	}
	t.Count++
	t.Total = t.Total.Add(amount)
}

func (b bucketer) sorted() []domain.BucketTotal {
	out := make([]domain.BucketTotal, 0, len(b))
	for _, t := range b {
		out = append(out, *t)
	}
	slices.SortFunc(out, func(x, y domain.BucketTotal) int {
		return strings.Compare(x.Key, y.Key)
	})
	return out
}

// SummarizeActivity buckets expense and income transactions by category and
// movements by type. A movement of unknown type is bucketed by the sign of its
// amount, not by its declared type.
func (s *reportingService) SummarizeActivity(ctx context.Context, tenantID string) (*domain.ActivityReport, error) {
	h, err := s.loader.load(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load history for activity report", slog.String("tenant_id", tenantID))
		return nil, apperrors.NewAppError(apperrors.ErrInternal, "failed to load history", err)
	}
	if h.truncated {
		s.LogWarn(ctx, "Activity report built from a truncated history", slog.String("tenant_id", tenantID))
	}

	expenses, income, movements := bucketer{}, bucketer{}, bucketer{}
	report := &domain.ActivityReport{
		TenantID:      tenantID,
		TotalExpenses: decimal.Zero,
		TotalIncome:   decimal.Zero,
		GeneratedAt:   s.now(),
	}

	for _, t := range h.transactions {
		category := strings.TrimSpace(t.Category)
		if category == "" {
			category = uncategorizedLabel
		}
		switch domain.ClassifyTransaction(t) {
		case domain.KindExpense:
			expenses.add(category, t.Amount.Abs())
			report.TotalExpenses = report.TotalExpenses.Add(t.Amount.Abs())
		case domain.KindIncome:
			income.add(category, t.Amount.Abs())
			report.TotalIncome = report.TotalIncome.Add(t.Amount.Abs())
		}
	}

	for _, m := range h.movements {
		kind := domain.ClassifyMovement(m)
		effect := domain.EffectOf(kind)
		key := kind.String()
		if effect.Bucket == domain.BucketBySign {
			key = string(effect.ResolveBucket(m.Amount))
		}
		movements.add(key, m.Amount)
	}

	report.ExpensesByCategory = expenses.sorted()
	report.IncomeByCategory = income.sorted()
	report.MovementsByBucket = movements.sorted()
	return report, nil
}
