package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/nonprofit_ledger/internal/core/ports/repositories"
)

const (
	DefaultReplayPageSize   = 500
	DefaultReplayMaxRecords = 10000
)

type pageFunc[T any] func(ctx context.Context, limit int, cursor string) ([]T, string, error)

// fetchAll pages through a log until it is exhausted or maxRecords is reached.
// The boolean reports whether records were left behind.
func fetchAll[T any](ctx context.Context, pageSize, maxRecords int, list pageFunc[T]) ([]T, bool, error) {
	var out []T
	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		limit := pageSize
		if remaining := maxRecords - len(out); remaining < limit {
			limit = remaining
		}
		page, next, err := list(ctx, limit, cursor)
		if err != nil {
			return nil, false, err
		}
		out = append(out, page...)
		if next == "" || len(page) == 0 {
			return out, false, nil
		}
		if len(out) >= maxRecords {
			return out, true, nil
		}
		cursor = next
	}
}

// history is the complete record set of one tenant as seen by a replay or report.
type history struct {
	transactions []domain.Transaction
	movements    []domain.Movement
	truncated    bool
}

// historyLoader reads both logs of a tenant through the paged store ports.
type historyLoader struct {
	transactions portsrepo.TransactionReader
	movements    portsrepo.MovementReader
	pageSize     int
	maxRecords   int
}

func newHistoryLoader(txns portsrepo.TransactionReader, movs portsrepo.MovementReader, pageSize, maxRecords int) historyLoader {
	if pageSize <= 0 {
		pageSize = DefaultReplayPageSize
	}
	if maxRecords <= 0 {
		maxRecords = DefaultReplayMaxRecords
	}
	return historyLoader{transactions: txns, movements: movs, pageSize: pageSize, maxRecords: maxRecords}
}

func (l historyLoader) load(ctx context.Context, tenantID string) (*history, error) {
	txns, txnTruncated, err := l.loadTransactions(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	movs, movTruncated, err := l.loadMovements(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &history{transactions: txns, movements: movs, truncated: txnTruncated || movTruncated}, nil
}

func (l historyLoader) loadTransactions(ctx context.Context, tenantID string) ([]domain.Transaction, bool, error) {
	txns, truncated, err := fetchAll(ctx, l.pageSize, l.maxRecords, func(ctx context.Context, limit int, cursor string) ([]domain.Transaction, string, error) {
		return l.transactions.ListTransactions(ctx, tenantID, limit, cursor)
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return txns, truncated, nil
}

func (l historyLoader) loadMovements(ctx context.Context, tenantID string) ([]domain.Movement, bool, error) {
	movs, truncated, err := fetchAll(ctx, l.pageSize, l.maxRecords, func(ctx context.Context, limit int, cursor string) ([]domain.Movement, string, error) {
		return l.movements.ListMovements(ctx, tenantID, limit, cursor)
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch movements: %w", err)
	}
	return movs, truncated, nil
}
