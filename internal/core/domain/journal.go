package domain

import "github.com/shopspring/decimal"

// JournalEntry is one posting line of a generated double-entry set.
// Entries are derived per transaction and never stored as the system of record.
type JournalEntry struct {
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// DebitLine builds a posting that debits code.
func DebitLine(code string, amount decimal.Decimal, description string) JournalEntry {
	return JournalEntry{AccountCode: code, Debit: amount, Credit: decimal.Zero, Description: description}
}

// CreditLine builds a posting that credits code.
func CreditLine(code string, amount decimal.Decimal, description string) JournalEntry {
	return JournalEntry{AccountCode: code, Debit: decimal.Zero, Credit: amount, Description: description}
}
