package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/SscSPs/nonprofit_ledger/internal/apperrors"
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/nonprofit_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/nonprofit_ledger/internal/core/ports/services"
	"github.com/SscSPs/nonprofit_ledger/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWriteConcurrency  = 8
	DefaultTenantConcurrency = 4
	auditBatchSize           = 500
	defaultAuditListLimit    = 50
)

// replayRecord is one entry of the merged, ordered history. The classification
// and target live here and are never written back.
type replayRecord struct {
	stream    domain.Stream
	id        string
	date      time.Time
	createdAt *time.Time
	sequence  int64
	kind      domain.Kind
	rawType   string
	amount    decimal.Decimal
	target    domain.BalanceAccount
	desc      string
	txn       *domain.Transaction
	mov       *domain.Movement
}

func (r *replayRecord) setStamp(stamp domain.BalanceStamp) {
	if r.txn != nil {
		r.txn.BalanceStamp = stamp
	}
	if r.mov != nil {
		r.mov.BalanceStamp = stamp
	}
}

func (r *replayRecord) stamp() domain.BalanceStamp {
	if r.txn != nil {
		return r.txn.BalanceStamp
	}
	if r.mov != nil {
		return r.mov.BalanceStamp
	}
	return domain.BalanceStamp{}
}

// mergeHistory tags every record with its stream and classification.
func mergeHistory(h *history) []*replayRecord {
	records := make([]*replayRecord, 0, len(h.transactions)+len(h.movements))
	for i := range h.transactions {
		t := &h.transactions[i]
		records = append(records, &replayRecord{
			stream:    domain.TransactionStream,
			id:        t.ID,
			date:      t.Date,
			createdAt: t.CreatedAt,
			sequence:  t.Sequence,
			kind:      domain.ClassifyTransaction(*t),
			rawType:   string(t.Type),
			amount:    t.Amount,
			target:    domain.TransactionTarget(*t),
			desc:      t.Description,
			txn:       t,
		})
	}
	for i := range h.movements {
		m := &h.movements[i]
		records = append(records, &replayRecord{
			stream:    domain.MovementStream,
			id:        m.ID,
			date:      m.Date,
			createdAt: m.CreatedAt,
			sequence:  m.Sequence,
			kind:      domain.ClassifyMovement(*m),
			rawType:   string(m.Type),
			amount:    m.Amount,
			target:    domain.MovementTarget(*m),
			desc:      m.Description,
			mov:       m,
		})
	}
	return records
}

// orderRecords sorts by date, then creation time (records without one first),
// then ingestion sequence, then stream and ID. The full key makes the order
// independent of the store's scan order.
func orderRecords(records []*replayRecord) {
	slices.SortStableFunc(records, func(a, b *replayRecord) int {
		if c := a.date.Compare(b.date); c != 0 {
			return c
		}
		switch {
		case a.createdAt == nil && b.createdAt != nil:
			return -1
		case a.createdAt != nil && b.createdAt == nil:
			return 1
		case a.createdAt != nil && b.createdAt != nil:
			if c := a.createdAt.Compare(*b.createdAt); c != 0 {
				return c
			}
		}
		if a.sequence != b.sequence {
			if a.sequence < b.sequence {
				return -1
			}
			return 1
		}
		if a.stream != b.stream {
			// transactions first
			if a.stream == domain.TransactionStream {
				return -1
			}
			return 1
		}
		return strings.Compare(a.id, b.id)
	})
}

type auditMeta struct {
	tenantID string
	runID    string
	now      time.Time
}

type walkResult struct {
	audit []domain.AuditLogEntry
	cash  decimal.Decimal
	bank  decimal.Decimal
}

// addAudit appends e numbered by its position in the walk.
func (r *walkResult) addAudit(e domain.AuditLogEntry) {
	e.Ordinal = int64(len(r.audit))
	r.audit = append(r.audit, e)
}

// walkBalances replays the ordered records from the opening balances, stamps
// each record and emits one audit entry per balance that changed.
func walkBalances(records []*replayRecord, opening domain.OpeningBalances, meta auditMeta) walkResult {
	res := walkResult{cash: opening.Cash, bank: opening.Bank}

	for _, rec := range records {
		effect := domain.EffectOf(rec.kind)
		dCash, dBank := effect.Deltas(rec.amount, rec.target)
		touchesCash, touchesBank := effect.Affects(rec.target)

		var stamp domain.BalanceStamp
		if touchesCash {
			before := res.cash
			res.cash = res.cash.Add(dCash)
			after := res.cash
			stamp.CashBalanceAfter = &after
			if !dCash.IsZero() {
				res.addAudit(newAuditEntry(rec, domain.Cash, before, after, dCash, meta))
			}
		}
		if touchesBank {
			before := res.bank
			res.bank = res.bank.Add(dBank)
			after := res.bank
			stamp.BankBalanceAfter = &after
			if !dBank.IsZero() {
				res.addAudit(newAuditEntry(rec, domain.Bank, before, after, dBank, meta))
			}
		}
		rec.setStamp(stamp)
	}
	return res
}

func newAuditEntry(rec *replayRecord, account domain.BalanceAccount, before, after, change decimal.Decimal, meta auditMeta) domain.AuditLogEntry {
	name := fmt.Sprintf("%s|%s|%s|%s", meta.runID, rec.stream, rec.id, account)
	desc := rec.desc
	if desc == "" {
		desc = fmt.Sprintf("%s %s", rec.kind, utils.FormatMoney(rec.amount.Abs()))
	}
	return domain.AuditLogEntry{
		ID:              uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String(),
		TenantID:        meta.tenantID,
		RunID:           meta.runID,
		TransactionID:   rec.id,
		TransactionType: rec.rawType,
		Stream:          rec.stream,
		Account:         account,
		BalanceBefore:   before,
		BalanceAfter:    after,
		ChangeAmount:    change,
		Description:     fmt.Sprintf("Balance replay: %s (%s %s to %s)", desc, account, utils.FormatMoney(before), utils.FormatMoney(after)),
		Date:            rec.date,
		IsMigration:     true,
		CreatedAt:       meta.now,
	}
}

// balanceReplay implements the BalanceReplaySvc interface
type balanceReplay struct {
	BaseService
	loader            historyLoader
	policy            *PersistencePolicy
	balanceLog        portsrepo.BalanceLogRepository
	writeConcurrency  int
	tenantConcurrency int
	now               Clock
	pageSize          int
	maxRecords        int
}

// BalanceReplayOption is a functional option for configuring the replay engine
type BalanceReplayOption func(*balanceReplay)

// WithReplayPaging sets the page size and record cap of the history fetch.
func WithReplayPaging(pageSize, maxRecords int) BalanceReplayOption {
	return func(s *balanceReplay) {
		s.pageSize = pageSize
		s.maxRecords = maxRecords
	}
}

// WithWriteConcurrency bounds the number of concurrent record writes.
func WithWriteConcurrency(n int) BalanceReplayOption {
	return func(s *balanceReplay) {
		s.writeConcurrency = n
	}
}

// WithTenantConcurrency bounds the number of tenants replayed at once.
func WithTenantConcurrency(n int) BalanceReplayOption {
	return func(s *balanceReplay) {
		s.tenantConcurrency = n
	}
}

// WithReplayClock sets the clock used for audit and snapshot timestamps.
func WithReplayClock(now Clock) BalanceReplayOption {
	return func(s *balanceReplay) {
		s.now = now
	}
}

// NewBalanceReplay creates the replay engine over the store ports.
func NewBalanceReplay(
	txns portsrepo.TransactionRepositoryFacade,
	movs portsrepo.MovementRepositoryFacade,
	balanceLog portsrepo.BalanceLogRepository,
	options ...BalanceReplayOption,
) portssvc.BalanceReplaySvc {
	svc := &balanceReplay{
		policy:            NewPersistencePolicy(txns, movs),
		balanceLog:        balanceLog,
		writeConcurrency:  DefaultWriteConcurrency,
		tenantConcurrency: DefaultTenantConcurrency,
		now:               time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	svc.loader = newHistoryLoader(txns, movs, svc.pageSize, svc.maxRecords)
	if svc.writeConcurrency <= 0 {
		svc.writeConcurrency = DefaultWriteConcurrency
	}
	if svc.tenantConcurrency <= 0 {
		svc.tenantConcurrency = DefaultTenantConcurrency
	}
	return svc
}

var _ portssvc.BalanceReplaySvc = (*balanceReplay)(nil)

func (s *balanceReplay) RunBalanceReplay(ctx context.Context, tenantID string, opening domain.OpeningBalances) (*domain.ReplaySummary, error) {
	runID := uuid.NewString()
	logger := s.GetLogger(ctx).With(slog.String("tenant_id", tenantID), slog.String("run_id", runID))

	h, err := s.loader.load(ctx, tenantID)
	if err != nil {
		logger.Error("Balance replay aborted: history fetch failed", slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(apperrors.ErrInternal, "failed to load history", err)
	}
	if h.truncated {
		logger.Warn("History exceeds the replay record cap; replaying a truncated history",
			slog.Int("max_records", s.loader.maxRecords))
	}

	records := mergeHistory(h)
	orderRecords(records)
	meta := auditMeta{tenantID: tenantID, runID: runID, now: s.now()}
	walk := walkBalances(records, opening, meta)

	summary := &domain.ReplaySummary{
		TenantID:         tenantID,
		RunID:            runID,
		Strategy:         domain.ReplayStrategy,
		FinalCashBalance: walk.cash,
		FinalBankBalance: walk.bank,
		Attempted:        len(records),
		Truncated:        h.truncated,
	}

	s.writeRecords(ctx, records, summary)
	summary.AuditCount = s.writeAudit(ctx, tenantID, walk.audit)
	summary.SkippedSnapshots = s.writeSnapshots(ctx, tenantID, runID, walk)

	logger.Info("Balance replay finished",
		slog.Int("attempted", summary.Attempted),
		slog.Int("updated", summary.UpdatedCount),
		slog.Int("failed", summary.Failed),
		slog.Int("audit_entries", summary.AuditCount),
		slog.String("final_cash", walk.cash.String()),
		slog.String("final_bank", walk.bank.String()))
	return summary, nil
}

// writeRecords persists every stamp after the walk has finished, with bounded concurrency.
func (s *balanceReplay) writeRecords(ctx context.Context, records []*replayRecord, summary *domain.ReplaySummary) {
	var patched, overwritten, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.writeConcurrency)

	for _, rec := range records {
		g.Go(func() error {
			if ctx.Err() != nil {
				failed.Add(1)
				return nil
			}
			var outcome WriteOutcome
			if rec.txn != nil {
				outcome, _ = s.policy.PersistTransaction(ctx, *rec.txn)
			} else {
				outcome, _ = s.policy.PersistMovement(ctx, *rec.mov)
			}
			switch outcome {
			case WritePatched:
				patched.Add(1)
			case WriteOverwritten:
				overwritten.Add(1)
			default:
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	summary.Patched = int(patched.Load())
	summary.Overwritten = int(overwritten.Load())
	summary.Failed = int(failed.Load())
	summary.UpdatedCount = summary.Patched + summary.Overwritten
}

// writeAudit saves audit entries in batches and returns how many were stored.
func (s *balanceReplay) writeAudit(ctx context.Context, tenantID string, entries []domain.AuditLogEntry) int {
	saved := 0
	for start := 0; start < len(entries); start += auditBatchSize {
		end := min(start+auditBatchSize, len(entries))
		if err := s.balanceLog.SaveAuditEntries(ctx, tenantID, entries[start:end]); err != nil {
			s.LogError(ctx, err, "Failed to save audit entries",
				slog.String("tenant_id", tenantID),
				slog.Int("batch_start", start),
				slog.Int("batch_size", end-start))
			continue
		}
		saved += end - start
	}
	return saved
}

// writeSnapshots stores the terminal cash and bank balances and returns how many failed.
func (s *balanceReplay) writeSnapshots(ctx context.Context, tenantID, runID string, walk walkResult) int {
	now := s.now()
	skipped := 0
	for _, snap := range []domain.BalanceSnapshot{
		{Account: domain.Cash, Balance: walk.cash},
		{Account: domain.Bank, Balance: walk.bank},
	} {
		snap.ID = uuid.NewString()
		snap.TenantID = tenantID
		snap.TransactionID = domain.ReplayStrategy
		snap.RunID = runID
		snap.Timestamp = now
		if err := s.balanceLog.SaveSnapshot(ctx, snap); err != nil {
			s.LogError(ctx, err, "Failed to save balance snapshot",
				slog.String("tenant_id", tenantID),
				slog.String("account", string(snap.Account)))
			skipped++
		}
	}
	return skipped
}

func (s *balanceReplay) RunBalanceReplayForTenants(ctx context.Context, reqs []domain.TenantReplayRequest) ([]domain.ReplaySummary, error) {
	seen := make(map[string]bool, len(reqs))
	for _, r := range reqs {
		if r.TenantID == "" {
			return nil, fmt.Errorf("%w: tenant ID is required", apperrors.ErrValidation)
		}
		if seen[r.TenantID] {
			return nil, fmt.Errorf("%w: tenant %s requested twice", apperrors.ErrValidation, r.TenantID)
		}
		seen[r.TenantID] = true
	}

	results := make([]domain.ReplaySummary, len(reqs))
	var g errgroup.Group
	g.SetLimit(s.tenantConcurrency)

	for i, r := range reqs {
		g.Go(func() error {
			summary, err := s.RunBalanceReplay(ctx, r.TenantID, r.Opening)
			if err != nil {
				results[i] = domain.ReplaySummary{TenantID: r.TenantID, Strategy: domain.ReplayStrategy, Error: err.Error()}
				return nil
			}
			results[i] = *summary
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (s *balanceReplay) LatestBalances(ctx context.Context, tenantID string) (map[domain.BalanceAccount]domain.BalanceSnapshot, error) {
	snapshots, err := s.balanceLog.LatestSnapshots(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load latest snapshots", slog.String("tenant_id", tenantID))
		return nil, apperrors.NewAppError(apperrors.ErrInternal, "failed to load balances", err)
	}
	return snapshots, nil
}

func (s *balanceReplay) ListAuditEntries(ctx context.Context, tenantID string, limit int) ([]domain.AuditLogEntry, error) {
	if limit <= 0 {
		limit = defaultAuditListLimit
	}
	entries, err := s.balanceLog.ListAuditEntries(ctx, tenantID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit entries", slog.String("tenant_id", tenantID))
		return nil, apperrors.NewAppError(apperrors.ErrInternal, "failed to list audit entries", err)
	}
	return entries, nil
}
