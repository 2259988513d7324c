package utils

import (
	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of decimal places shown for ledger amounts.
const MoneyPrecision = 2

// FormatMoney formats an amount with the ledger precision.
// Example: 14950 returns "14950.00", -0.005 returns "-0.01"
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyPrecision)
}

// FormatWithPrecision formats an amount with the given precision
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
