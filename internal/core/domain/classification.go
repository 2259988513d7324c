package domain

import "github.com/shopspring/decimal"

// Kind is the closed classification of every record a replay or report sees.
type Kind int

const (
	KindUnknown Kind = iota
	KindExpense
	KindIncome
	KindWithdrawal
	KindDeposit
	KindDonation
	KindLegacyCashExpense
)

// AllKinds lists every Kind, KindUnknown included.
var AllKinds = []Kind{
	KindUnknown,
	KindExpense,
	KindIncome,
	KindWithdrawal,
	KindDeposit,
	KindDonation,
	KindLegacyCashExpense,
}

func (k Kind) String() string {
	switch k {
	case KindExpense:
		return "expense"
	case KindIncome:
		return "income"
	case KindWithdrawal:
		return "withdrawal"
	case KindDeposit:
		return "deposit"
	case KindDonation:
		return "donation"
	case KindLegacyCashExpense:
		return "cash-expense"
	default:
		return "unknown"
	}
}

// ReportBucket is the reporting line a Kind rolls up into.
type ReportBucket string

const (
	BucketExpense      ReportBucket = "expense"
	BucketIncome       ReportBucket = "income"
	BucketTransfer     ReportBucket = "transfer"
	BucketDonation     ReportBucket = "donation"
	BucketOtherInflow  ReportBucket = "other_inflow"
	BucketOtherOutflow ReportBucket = "other_outflow"
	// BucketBySign defers to the sign of the amount: positive is an inflow.
	BucketBySign ReportBucket = "by_sign"
)

// Effect describes how a Kind moves the cash and bank balances.
// CashSign and BankSign apply unconditionally; TargetSign applies to the
// record's own target account (payment method, destination, toBank flag).
type Effect struct {
	CashSign   int
	BankSign   int
	TargetSign int
	Bucket     ReportBucket
}

// effects is the single source of truth for replay and reporting.
// Unknown records are treated as cash outflows during replay.
var effects = map[Kind]Effect{
	KindExpense:           {TargetSign: -1, Bucket: BucketExpense},
	KindIncome:            {TargetSign: 1, Bucket: BucketIncome},
	KindWithdrawal:        {CashSign: 1, BankSign: -1, Bucket: BucketTransfer},
	KindDeposit:           {CashSign: -1, BankSign: 1, Bucket: BucketTransfer},
	KindDonation:          {TargetSign: 1, Bucket: BucketDonation},
	KindLegacyCashExpense: {CashSign: -1, Bucket: BucketExpense},
	KindUnknown:           {CashSign: -1, Bucket: BucketBySign},
}

// EffectOf returns the balance effect of k.
func EffectOf(k Kind) Effect {
	if e, ok := effects[k]; ok {
		return e
	}
	return effects[KindUnknown]
}

// HasEffect reports whether k has its own entry in the effect table.
func HasEffect(k Kind) bool {
	_, ok := effects[k]
	return ok
}

// Deltas returns the cash and bank changes for a record of this effect.
// Only the magnitude of amount is used.
func (e Effect) Deltas(amount decimal.Decimal, target BalanceAccount) (cash, bank decimal.Decimal) {
	magnitude := amount.Abs()
	cash = magnitude.Mul(decimal.NewFromInt(int64(e.CashSign)))
	bank = magnitude.Mul(decimal.NewFromInt(int64(e.BankSign)))
	if e.TargetSign != 0 {
		signed := magnitude.Mul(decimal.NewFromInt(int64(e.TargetSign)))
		if target == Bank {
			bank = bank.Add(signed)
		} else {
			cash = cash.Add(signed)
		}
	}
	return cash, bank
}

// Affects reports which balances a record of this effect touches, whether or
// not the amount changes them.
func (e Effect) Affects(target BalanceAccount) (cash, bank bool) {
	cash = e.CashSign != 0
	bank = e.BankSign != 0
	if e.TargetSign != 0 {
		if target == Bank {
			bank = true
		} else {
			cash = true
		}
	}
	return cash, bank
}

// ResolveBucket returns the report bucket for an amount, resolving BucketBySign.
func (e Effect) ResolveBucket(amount decimal.Decimal) ReportBucket {
	if e.Bucket != BucketBySign {
		return e.Bucket
	}
	if amount.IsPositive() {
		return BucketOtherInflow
	}
	return BucketOtherOutflow
}

// ClassifyTransaction maps a transaction onto its Kind. Transfers are split
// by direction; a transfer whose direction cannot be told is Unknown.
func ClassifyTransaction(t Transaction) Kind {
	switch t.Type {
	case ExpenseTransaction:
		return KindExpense
	case IncomeTransaction:
		return KindIncome
	case TransferTransaction:
		switch t.Subtype {
		case TransferWithdrawal:
			return KindWithdrawal
		case TransferDeposit:
			return KindDeposit
		}
		switch {
		case t.FromAccount == Bank && t.ToAccount == Cash:
			return KindWithdrawal
		case t.FromAccount == Cash && t.ToAccount == Bank:
			return KindDeposit
		}
	}
	return KindUnknown
}

// ClassifyMovement maps a cash movement onto its Kind.
func ClassifyMovement(m Movement) Kind {
	switch m.Type {
	case MovementDeposit:
		return KindDeposit
	case MovementWithdrawal:
		return KindWithdrawal
	case MovementDonation:
		return KindDonation
	case MovementLegacyCashExpense:
		return KindLegacyCashExpense
	default:
		return KindUnknown
	}
}

// TransactionTarget returns the account a targeted transaction effect lands on.
func TransactionTarget(t Transaction) BalanceAccount {
	if t.Type == IncomeTransaction {
		if t.Account == Bank || t.ToAccount == Bank {
			return Bank
		}
		if t.Account == "" && t.ToAccount == "" && t.PaymentMethod != "" {
			return t.FundingAccount()
		}
		return Cash
	}
	return t.FundingAccount()
}

// MovementTarget returns the account a targeted movement effect lands on.
func MovementTarget(m Movement) BalanceAccount {
	return m.DonationTarget()
}
