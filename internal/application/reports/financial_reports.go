package reports

import (
	"context"

	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TrialBalance lists every account's net position as a single debit or credit
// column. Difference should read zero when the books balance; it is reported
// rather than hidden so data problems surface immediately.
func (uc *ReportsUseCase) TrialBalance(ctx context.Context, firmID string, r repository.DateRange) (*dto.TrialBalanceResponse, error) {
	totals, err := uc.repo.GetAccountTotals(ctx, firmID, r)
	if err != nil {
		return nil, err
	}
	return buildTrialBalance(totals), nil
}

// ProfitLoss income vs expenses over the range.
func (uc *ReportsUseCase) ProfitLoss(ctx context.Context, firmID string, r repository.DateRange) (*dto.ProfitLossResponse, error) {
	totals, err := uc.repo.GetAccountTotals(ctx, firmID, r)
	if err != nil {
		return nil, err
	}
	return buildProfitLoss(totals), nil
}

// BalanceSheet assets vs liabilities as of the range end.
func (uc *ReportsUseCase) BalanceSheet(ctx context.Context, firmID string, r repository.DateRange) (*dto.BalanceSheetResponse, error) {
	totals, err := uc.repo.GetAccountTotals(ctx, firmID, r)
	if err != nil {
		return nil, err
	}
	return buildBalanceSheet(totals), nil
}

// CashFlow monthly in/out movement through the cash and bank accounts.
func (uc *ReportsUseCase) CashFlow(ctx context.Context, firmID string, r repository.DateRange) (*dto.CashFlowResponse, error) {
	rows, err := uc.repo.GetMonthlyCashFlow(ctx, firmID, r)
	if err != nil {
		return nil, err
	}
	resp := &dto.CashFlowResponse{
		Months:       make([]dto.CashFlowMonthDTO, 0, len(rows)),
		TotalInflow:  decimal.Zero,
		TotalOutflow: decimal.Zero,
		NetCashFlow:  decimal.Zero,
	}
	for _, row := range rows {
		net := row.Inflow.Sub(row.Outflow)
		resp.Months = append(resp.Months, dto.CashFlowMonthDTO{
			Year:    row.Year,
			Month:   row.Month,
			Inflow:  row.Inflow,
			Outflow: row.Outflow,
			Net:     net,
		})
		resp.TotalInflow = resp.TotalInflow.Add(row.Inflow)
		resp.TotalOutflow = resp.TotalOutflow.Add(row.Outflow)
	}
	resp.NetCashFlow = resp.TotalInflow.Sub(resp.TotalOutflow)
	return resp, nil
}

func buildTrialBalance(totals []repository.AccountTotals) *dto.TrialBalanceResponse {
	resp := &dto.TrialBalanceResponse{
		Rows:        make([]dto.TrialBalanceRowDTO, 0, len(totals)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, t := range totals {
		net := t.TotalDebit.Sub(t.TotalCredit)
		if net.IsZero() {
			continue
		}
		row := dto.TrialBalanceRowDTO{
			AccountName: t.AccountName,
			AccountType: t.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if net.IsPositive() {
			row.Debit = net
			resp.TotalDebit = resp.TotalDebit.Add(net)
		} else {
			row.Credit = net.Neg()
			resp.TotalCredit = resp.TotalCredit.Add(net.Neg())
		}
		resp.Rows = append(resp.Rows, row)
	}
	resp.Difference = resp.TotalDebit.Sub(resp.TotalCredit)
	return resp
}

func buildProfitLoss(totals []repository.AccountTotals) *dto.ProfitLossResponse {
	resp := &dto.ProfitLossResponse{
		Income:       make([]dto.AccountAmountDTO, 0),
		Expenses:     make([]dto.AccountAmountDTO, 0),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, t := range totals {
		switch t.AccountType {
		case entity.AccountIncome, entity.AccountSales:
			amount := t.TotalCredit.Sub(t.TotalDebit)
			resp.Income = append(resp.Income, dto.AccountAmountDTO{AccountName: t.AccountName, Amount: amount})
			resp.TotalIncome = resp.TotalIncome.Add(amount)
		case entity.AccountExpenses, entity.AccountPurchase:
			amount := t.TotalDebit.Sub(t.TotalCredit)
			resp.Expenses = append(resp.Expenses, dto.AccountAmountDTO{AccountName: t.AccountName, Amount: amount})
			resp.TotalExpense = resp.TotalExpense.Add(amount)
		}
	}
	resp.NetProfit = resp.TotalIncome.Sub(resp.TotalExpense)
	return resp
}

// buildBalanceSheet keeps the established display convention: asset amounts
// are the signed debit-minus-credit, liability-side amounts are shown as
// absolute values regardless of sign.
func buildBalanceSheet(totals []repository.AccountTotals) *dto.BalanceSheetResponse {
	resp := &dto.BalanceSheetResponse{
		Assets:           make([]dto.AccountAmountDTO, 0),
		Liabilities:      make([]dto.AccountAmountDTO, 0),
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
	}
	for _, t := range totals {
		switch t.AccountType {
		case entity.AccountAssets, entity.AccountCash, entity.AccountBank, entity.AccountSundryDebtors:
			amount := t.TotalDebit.Sub(t.TotalCredit)
			resp.Assets = append(resp.Assets, dto.AccountAmountDTO{AccountName: t.AccountName, Amount: amount})
			resp.TotalAssets = resp.TotalAssets.Add(amount)
		case entity.AccountLiabilities, entity.AccountSundryCreditors, entity.AccountCapital, entity.AccountEquity:
			amount := t.TotalCredit.Sub(t.TotalDebit).Abs()
			resp.Liabilities = append(resp.Liabilities, dto.AccountAmountDTO{AccountName: t.AccountName, Amount: amount})
			resp.TotalLiabilities = resp.TotalLiabilities.Add(amount)
		}
	}
	resp.Difference = resp.TotalAssets.Sub(resp.TotalLiabilities)
	return resp
}
