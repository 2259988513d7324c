package dto

import (
	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReplayRequest carries the opening balances of a replay. When
// UseLatestSnapshot is set, missing opening balances are taken from the
// newest stored snapshots instead.
type ReplayRequest struct {
	OpeningCash       *decimal.Decimal `json:"openingCash"`
	OpeningBank       *decimal.Decimal `json:"openingBank"`
	UseLatestSnapshot bool             `json:"useLatestSnapshot"`
}

// BatchReplayRequest replays several tenants in one call.
type BatchReplayRequest struct {
	Tenants []TenantReplayItem `json:"tenants" binding:"required,min=1,dive"`
}

// TenantReplayItem is one tenant of a batch replay.
type TenantReplayItem struct {
	TenantID    string          `json:"tenantID" binding:"required"`
	OpeningCash decimal.Decimal `json:"openingCash"`
	OpeningBank decimal.Decimal `json:"openingBank"`
}

// ToDomain converts the batch into replay requests.
func (r BatchReplayRequest) ToDomain() []domain.TenantReplayRequest {
	out := make([]domain.TenantReplayRequest, len(r.Tenants))
	for i, t := range r.Tenants {
		out[i] = domain.TenantReplayRequest{
			TenantID: t.TenantID,
			Opening:  domain.OpeningBalances{Cash: t.OpeningCash, Bank: t.OpeningBank},
		}
	}
	return out
}

// BalancesResponse holds the latest snapshot per money account.
type BalancesResponse struct {
	Cash *domain.BalanceSnapshot `json:"cash,omitempty"`
	Bank *domain.BalanceSnapshot `json:"bank,omitempty"`
}

// ToBalancesResponse converts a snapshot map into a BalancesResponse.
func ToBalancesResponse(snapshots map[domain.BalanceAccount]domain.BalanceSnapshot) BalancesResponse {
	var res BalancesResponse
	if s, ok := snapshots[domain.Cash]; ok {
		res.Cash = &s
	}
	if s, ok := snapshots[domain.Bank]; ok {
		res.Bank = &s
	}
	return res
}

// AuditLogResponse lists recent audit entries.
type AuditLogResponse struct {
	Entries []domain.AuditLogEntry `json:"entries"`
}

// ListAuditParams are the query parameters of the audit listing.
type ListAuditParams struct {
	Limit int `form:"limit,default=50" binding:"min=1,max=1000"`
}
