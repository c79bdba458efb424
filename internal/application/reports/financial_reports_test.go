package reports

import (
	"testing"

	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestBuildTrialBalance_BalancedBooks(t *testing.T) {
	totals := []repository.AccountTotals{
		{AccountName: "Gupta Enterprises", AccountType: entity.AccountSundryDebtors, TotalDebit: d(4720), TotalCredit: d(0)},
		{AccountName: "SALES", AccountType: entity.AccountIncome, TotalDebit: d(0), TotalCredit: d(4000)},
		{AccountName: "GST_OUTPUT", AccountType: entity.AccountLiabilities, TotalDebit: d(0), TotalCredit: d(720)},
	}
	tb := buildTrialBalance(totals)

	require.Len(t, tb.Rows, 3)
	assert.True(t, tb.TotalDebit.Equal(d(4720)))
	assert.True(t, tb.TotalCredit.Equal(d(4720)))
	assert.True(t, tb.Difference.IsZero(), "balanced books must show zero difference")

	// each row carries exactly one side
	for _, row := range tb.Rows {
		assert.True(t, row.Debit.IsZero() || row.Credit.IsZero())
	}
}

func TestBuildTrialBalance_ReportsImbalance(t *testing.T) {
	totals := []repository.AccountTotals{
		{AccountName: "CASH", AccountType: entity.AccountCash, TotalDebit: d(1000), TotalCredit: d(0)},
		{AccountName: "SALES", AccountType: entity.AccountIncome, TotalDebit: d(0), TotalCredit: d(900)},
	}
	tb := buildTrialBalance(totals)
	assert.True(t, tb.Difference.Equal(d(100)), "imbalance must be surfaced, not hidden")
}

func TestBuildTrialBalance_SkipsSettledAccounts(t *testing.T) {
	totals := []repository.AccountTotals{
		{AccountName: "CASH", AccountType: entity.AccountCash, TotalDebit: d(500), TotalCredit: d(500)},
		{AccountName: "SALES", AccountType: entity.AccountIncome, TotalDebit: d(0), TotalCredit: d(300)},
	}
	tb := buildTrialBalance(totals)
	require.Len(t, tb.Rows, 1)
	assert.Equal(t, "SALES", tb.Rows[0].AccountName)
}

func TestBuildProfitLoss(t *testing.T) {
	totals := []repository.AccountTotals{
		{AccountName: "SALES", AccountType: entity.AccountIncome, TotalDebit: d(200), TotalCredit: d(5000)},
		{AccountName: "PURCHASE", AccountType: entity.AccountExpenses, TotalDebit: d(3000), TotalCredit: d(0)},
		{AccountName: "CASH", AccountType: entity.AccountCash, TotalDebit: d(999), TotalCredit: d(0)},
	}
	pl := buildProfitLoss(totals)

	require.Len(t, pl.Income, 1)
	require.Len(t, pl.Expenses, 1)
	assert.True(t, pl.TotalIncome.Equal(d(4800)))
	assert.True(t, pl.TotalExpense.Equal(d(3000)))
	assert.True(t, pl.NetProfit.Equal(d(1800)))
}

func TestBuildProfitLoss_LossIsNegative(t *testing.T) {
	totals := []repository.AccountTotals{
		{AccountName: "SALES", AccountType: entity.AccountIncome, TotalDebit: d(0), TotalCredit: d(1000)},
		{AccountName: "PURCHASE", AccountType: entity.AccountExpenses, TotalDebit: d(1500), TotalCredit: d(0)},
	}
	pl := buildProfitLoss(totals)
	assert.True(t, pl.NetProfit.Equal(d(-500)))
}

func TestBuildBalanceSheet_LiabilityAbsConvention(t *testing.T) {
	totals := []repository.AccountTotals{
		{AccountName: "Gupta Enterprises", AccountType: entity.AccountSundryDebtors, TotalDebit: d(4720), TotalCredit: d(0)},
		{AccountName: "GST_OUTPUT", AccountType: entity.AccountLiabilities, TotalDebit: d(0), TotalCredit: d(720)},
		// debit-heavy liability account: abs value is displayed
		{AccountName: "Mehta Suppliers", AccountType: entity.AccountSundryCreditors, TotalDebit: d(900), TotalCredit: d(400)},
	}
	bs := buildBalanceSheet(totals)

	require.Len(t, bs.Assets, 1)
	require.Len(t, bs.Liabilities, 2)
	assert.True(t, bs.TotalAssets.Equal(d(4720)))
	// 720 + |400-900| = 720 + 500
	assert.True(t, bs.TotalLiabilities.Equal(d(1220)))
	for _, l := range bs.Liabilities {
		assert.False(t, l.Amount.IsNegative(), "liability side always displays absolute values")
	}
}

func TestBuildBalanceSheet_IgnoresPnLAccounts(t *testing.T) {
	totals := []repository.AccountTotals{
		{AccountName: "SALES", AccountType: entity.AccountIncome, TotalDebit: d(0), TotalCredit: d(4000)},
		{AccountName: "CASH", AccountType: entity.AccountCash, TotalDebit: d(4000), TotalCredit: d(0)},
	}
	bs := buildBalanceSheet(totals)
	require.Len(t, bs.Assets, 1)
	assert.Empty(t, bs.Liabilities)
}
