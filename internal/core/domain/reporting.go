package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BucketTotal is a count and amount rolled up under one key.
type BucketTotal struct {
	Key   string          `json:"key"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// ActivityReport buckets a tenant's history for reporting. Transactions are
// grouped by category, movements by report bucket.
type ActivityReport struct {
	TenantID           string          `json:"tenantID"`
	ExpensesByCategory []BucketTotal   `json:"expensesByCategory"`
	IncomeByCategory   []BucketTotal   `json:"incomeByCategory"`
	MovementsByBucket  []BucketTotal   `json:"movementsByBucket"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	GeneratedAt        time.Time       `json:"generatedAt"`
}
