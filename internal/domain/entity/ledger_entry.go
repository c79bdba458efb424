package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account types for ledger entries.
const (
	AccountAssets          = "ASSETS"
	AccountLiabilities     = "LIABILITIES"
	AccountIncome          = "INCOME"
	AccountExpenses        = "EXPENSES"
	AccountEquity          = "EQUITY"
	AccountCash            = "CASH"
	AccountBank            = "BANK"
	AccountSundryDebtors   = "SUNDRY_DEBTORS"
	AccountSundryCreditors = "SUNDRY_CREDITORS"
	AccountSales           = "SALES"
	AccountPurchase        = "PURCHASE"
	AccountCapital         = "CAPITAL"
)

// LedgerEntry is one append-only debit/credit row against a named account.
// Entries are never mutated after creation; for a given account the order
// (EntryDate ascending, Seq ascending) defines the total order used for
// running-balance computation.
type LedgerEntry struct {
	ID          string
	Seq         int64 // monotonic insertion sequence, tiebreaker for same-day entries
	FirmID      string
	AccountName string
	AccountType string // see Account* constants
	EntryDate   time.Time
	Debit       decimal.Decimal // >= 0
	Credit      decimal.Decimal // >= 0
	Reference   string          // bill no, voucher no, free text
	CreatedAt   time.Time
}
