package services

import (
	"fmt"

	portsrepo "github.com/SscSPs/nonprofit_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/nonprofit_ledger/internal/core/ports/services"
	"github.com/SscSPs/nonprofit_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	container := &portssvc.ServiceContainer{}

	directoryOpts := []AccountDirectoryOption{
		WithLookupCache(NewLookupCache(cfg.AccountCacheTTL, nil)),
	}
	if cfg.ChartSeedFile != "" {
		seed, err := LoadChartSeed(cfg.ChartSeedFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load chart seed: %w", err)
		}
		directoryOpts = append(directoryOpts, WithChartSeed(seed))
	}
	container.Account = NewAccountDirectory(repos.AccountRepo, directoryOpts...)

	// The journal builder only needs resolution, not the full directory
	container.Journal = NewJournalBuilder(container.Account)

	container.Replay = NewBalanceReplay(
		repos.TransactionRepo,
		repos.MovementRepo,
		repos.BalanceLogRepo,
		WithReplayPaging(cfg.ReplayPageSize, cfg.ReplayMaxRecords),
		WithWriteConcurrency(cfg.ReplayWriteConcurrency),
		WithTenantConcurrency(cfg.ReplayTenantConcurrency),
	)
	container.Cleanup = NewLegacyCleanup(repos.MovementRepo, WithCleanupPaging(cfg.ReplayPageSize, cfg.ReplayMaxRecords))
	container.Reporting = NewReportingService(repos.TransactionRepo, repos.MovementRepo,
		WithReportingPaging(cfg.ReplayPageSize, cfg.ReplayMaxRecords))

	return container, nil
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade  = (*accountDirectory)(nil)
	_ portssvc.BalanceReplaySvc  = (*balanceReplay)(nil)
	_ portssvc.LegacyCleanupSvc  = (*legacyCleanup)(nil)
	_ portssvc.ReportingSvc      = (*reportingService)(nil)
	_ portssvc.JournalBuilderSvc = (*journalBuilder)(nil)
)
