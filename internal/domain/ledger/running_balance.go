// Package ledger implements the running-balance arithmetic shared by account
// statements, party ledgers and the trial balance (domain service, no I/O).
package ledger

import (
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Balance side labels, Indian bookkeeping convention:
// Dr = the account owes the firm (positive accumulator), Cr = the firm owes.
const (
	SideDr = "Dr"
	SideCr = "Cr"
)

// Line is one statement row: the source entry plus the cumulative balance after it.
type Line struct {
	Entry       entity.LedgerEntry
	Balance     decimal.Decimal // absolute value of the accumulator
	BalanceType string          // SideDr or SideCr
}

// Closing is the statement's final position.
type Closing struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balance     decimal.Decimal // absolute value
	BalanceType string
}

// Statement folds a chronologically ordered entry slice into statement lines
// carrying a running balance. The accumulator starts at 0 and each entry adds
// debit-credit; a non-negative accumulator reads Dr, a negative one Cr, and the
// displayed balance is the absolute value.
//
// Entries must already be ordered by (entry_date, insertion seq); callers get
// that ordering from the repository query. Reordering changes every downstream
// balance.
func Statement(entries []entity.LedgerEntry) ([]Line, Closing) {
	lines := make([]Line, 0, len(entries))
	acc := decimal.Zero
	closing := Closing{
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Balance:     decimal.Zero,
		BalanceType: SideDr,
	}

	for _, e := range entries {
		acc = acc.Add(e.Debit).Sub(e.Credit)
		closing.TotalDebit = closing.TotalDebit.Add(e.Debit)
		closing.TotalCredit = closing.TotalCredit.Add(e.Credit)
		lines = append(lines, Line{
			Entry:       e,
			Balance:     acc.Abs(),
			BalanceType: side(acc),
		})
	}

	closing.Balance = acc.Abs()
	closing.BalanceType = side(acc)
	return lines, closing
}

func side(acc decimal.Decimal) string {
	if acc.IsNegative() {
		return SideCr
	}
	return SideDr
}
