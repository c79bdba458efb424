package ledger_test

import (
	"testing"
	"time"

	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(date string, debit, credit int64) entity.LedgerEntry {
	d, _ := time.Parse("2006-01-02", date)
	return entity.LedgerEntry{
		EntryDate: d,
		Debit:     decimal.NewFromInt(debit),
		Credit:    decimal.NewFromInt(credit),
	}
}

func TestStatement_EmptyInput(t *testing.T) {
	lines, closing := ledger.Statement(nil)

	assert.Empty(t, lines)
	assert.True(t, closing.Balance.IsZero(), "closing balance of an empty statement must be 0")
	assert.Equal(t, ledger.SideDr, closing.BalanceType, "zero balance reads Dr")
}

func TestStatement_RunningBalanceRecurrence(t *testing.T) {
	entries := []entity.LedgerEntry{
		entry("2024-04-01", 1000, 0),
		entry("2024-04-02", 0, 300),
		entry("2024-04-02", 250, 0),
		entry("2024-04-10", 0, 1200),
	}

	lines, closing := ledger.Statement(entries)
	require.Len(t, lines, 4)

	// balance[0] = debit[0] - credit[0]
	assert.True(t, lines[0].Balance.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, ledger.SideDr, lines[0].BalanceType)

	// balance[i] = balance[i-1] + debit[i] - credit[i], tracked on the signed accumulator
	assert.True(t, lines[1].Balance.Equal(decimal.NewFromInt(700)))
	assert.True(t, lines[2].Balance.Equal(decimal.NewFromInt(950)))

	// crossing zero flips the side and the displayed value is the absolute balance
	assert.True(t, lines[3].Balance.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, ledger.SideCr, lines[3].BalanceType)

	assert.True(t, closing.TotalDebit.Equal(decimal.NewFromInt(1250)))
	assert.True(t, closing.TotalCredit.Equal(decimal.NewFromInt(1500)))
	assert.True(t, closing.Balance.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, ledger.SideCr, closing.BalanceType)
}

func TestStatement_OrderSensitivity(t *testing.T) {
	a := []entity.LedgerEntry{entry("2024-04-01", 0, 100), entry("2024-04-01", 100, 0)}
	b := []entity.LedgerEntry{entry("2024-04-01", 100, 0), entry("2024-04-01", 0, 100)}

	linesA, _ := ledger.Statement(a)
	linesB, _ := ledger.Statement(b)

	// intermediate balances differ even though the closing matches:
	// input order is the contract, tie-breaking happens upstream
	assert.Equal(t, ledger.SideCr, linesA[0].BalanceType)
	assert.Equal(t, ledger.SideDr, linesB[0].BalanceType)
	assert.True(t, linesA[1].Balance.Equal(linesB[1].Balance))
}

func TestStatement_ZeroAccumulatorReadsDr(t *testing.T) {
	entries := []entity.LedgerEntry{
		entry("2024-04-01", 500, 0),
		entry("2024-04-05", 0, 500),
	}

	lines, closing := ledger.Statement(entries)
	require.Len(t, lines, 2)
	assert.True(t, lines[1].Balance.IsZero())
	assert.Equal(t, ledger.SideDr, lines[1].BalanceType)
	assert.Equal(t, ledger.SideDr, closing.BalanceType)
}
