package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/repository"
)

// DashboardOverview the headline widgets: today's and this month's sales,
// receivable/payable totals and the low stock count.
func (uc *ReportsUseCase) DashboardOverview(ctx context.Context, firmID string) (*dto.DashboardOverviewResponse, error) {
	now := time.Now()
	counts, err := uc.repo.GetDashboardCounts(ctx, firmID, now)
	if err != nil {
		return nil, fmt.Errorf("dashboard: counts: %w", err)
	}
	return &dto.DashboardOverviewResponse{
		TodaySales:      counts.TodaySales,
		MonthSales:      counts.MonthSales,
		MonthPurchase:   counts.MonthPurchase,
		TotalReceivable: counts.TotalReceivable,
		TotalPayable:    counts.TotalPayable,
		LowStockItems:   counts.LowStockCount,
		TotalParties:    counts.PartyCount,
		TotalStockItems: counts.StockItemCount,
		MonthBills:      counts.MonthBillCount,
		DateLabel:       now.Format("January 2006"),
	}, nil
}

// DashboardCharts the chart series: monthly sales and purchases for the
// current year plus the top billed items of the last 12 months.
// The three queries run in parallel.
func (uc *ReportsUseCase) DashboardCharts(ctx context.Context, firmID string) (*dto.DashboardChartsResponse, error) {
	now := time.Now()
	year := now.Year()
	yearAgo := now.AddDate(-1, 0, 0)
	itemRange := repository.DateRange{From: &yearAgo, To: &now}

	type monthsResult struct {
		rows []repository.MonthBillTotal
		err  error
	}
	type itemsResult struct {
		rows []repository.ItemBillTotal
		err  error
	}

	salesCh := make(chan monthsResult, 1)
	purchaseCh := make(chan monthsResult, 1)
	topCh := make(chan itemsResult, 1)

	go func() {
		rows, err := uc.repo.GetBillsByMonth(ctx, firmID, entity.BillTypeSales, year)
		salesCh <- monthsResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.GetBillsByMonth(ctx, firmID, entity.BillTypePurchase, year)
		purchaseCh <- monthsResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.GetBillsByItem(ctx, firmID, entity.BillTypeSales, itemRange)
		topCh <- itemsResult{rows, err}
	}()

	sales := <-salesCh
	purchase := <-purchaseCh
	top := <-topCh

	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: monthly sales: %w", sales.err)
	}
	if purchase.err != nil {
		return nil, fmt.Errorf("dashboard: monthly purchases: %w", purchase.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top items: %w", top.err)
	}

	topItems := toItemTotals(top.rows)
	if len(topItems) > dashboardTopItems {
		topItems = topItems[:dashboardTopItems]
	}
	return &dto.DashboardChartsResponse{
		SalesByMonth:    toMonthTotals(sales.rows),
		PurchaseByMonth: toMonthTotals(purchase.rows),
		TopItems:        topItems,
	}, nil
}

const dashboardTopItems = 5 // items shown in the dashboard widget
