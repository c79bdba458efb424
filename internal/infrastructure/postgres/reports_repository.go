package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/khatapro/khata-api/internal/domain/gst"
	"github.com/khatapro/khata-api/internal/domain/repository"
)

var _ repository.ReportsRepository = (*ReportsRepo)(nil)

// ReportsRepo read-only aggregation queries over bills, stock and the ledger.
// Every bill query excludes CANCELLED bills and coerces empty-set SUMs to zero.
type ReportsRepo struct {
	q Querier
}

// NewReportsRepository builds the adapter. Reports never run in transactions,
// so this is always handed the pool.
func NewReportsRepository(q Querier) *ReportsRepo {
	return &ReportsRepo{q: q}
}

// appendDateRange adds inclusive bounds on col for the non-nil ends of r.
// Positional placeholders continue from len(args).
func appendDateRange(query string, args []any, col string, r repository.DateRange) (string, []any) {
	if r.From != nil {
		query += fmt.Sprintf(" AND %s >= $%d", col, len(args)+1)
		args = append(args, *r.From)
	}
	if r.To != nil {
		query += fmt.Sprintf(" AND %s <= $%d", col, len(args)+1)
		args = append(args, *r.To)
	}
	return query, args
}

// GetBillSummary aggregates the firm's bills of one type into a single record.
func (r *ReportsRepo) GetBillSummary(ctx context.Context, firmID, billType string, dr repository.DateRange) (*repository.BillSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(gross_total), 0),
		       COALESCE(SUM(cgst), 0),
		       COALESCE(SUM(sgst), 0),
		       COALESCE(SUM(igst), 0),
		       COALESCE(SUM(net_total), 0),
		       COALESCE(SUM(paid_amount), 0),
		       COALESCE(SUM(net_total - paid_amount), 0)
		FROM bills
		WHERE firm_id = $1 AND bill_type = $2 AND status <> 'CANCELLED'`
	args := []any{firmID, billType}
	query, args = appendDateRange(query, args, "bill_date", dr)

	var s repository.BillSummary
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.BillCount, &s.GrossTotal, &s.CGST, &s.SGST, &s.IGST,
		&s.NetTotal, &s.PaidAmount, &s.Outstanding,
	)
	if err != nil {
		return nil, fmt.Errorf("bill summary: %w", err)
	}
	return &s, nil
}

// GetBillsByParty groups bill totals per party, biggest first.
func (r *ReportsRepo) GetBillsByParty(ctx context.Context, firmID, billType string, dr repository.DateRange) ([]repository.PartyBillTotal, error) {
	query := `
		SELECT party_id, party_name, COUNT(*),
		       COALESCE(SUM(net_total), 0),
		       COALESCE(SUM(paid_amount), 0),
		       COALESCE(SUM(net_total - paid_amount), 0)
		FROM bills
		WHERE firm_id = $1 AND bill_type = $2 AND status <> 'CANCELLED'`
	args := []any{firmID, billType}
	query, args = appendDateRange(query, args, "bill_date", dr)
	query += `
		GROUP BY party_id, party_name
		ORDER BY SUM(net_total) DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("bills by party: %w", err)
	}
	defer rows.Close()
	var list []repository.PartyBillTotal
	for rows.Next() {
		var t repository.PartyBillTotal
		if err := rows.Scan(&t.PartyID, &t.PartyName, &t.BillCount,
			&t.NetTotal, &t.PaidAmount, &t.Outstanding); err != nil {
			return nil, fmt.Errorf("scan party total: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetBillsByItem groups bill-line totals per stock item, biggest first.
func (r *ReportsRepo) GetBillsByItem(ctx context.Context, firmID, billType string, dr repository.DateRange) ([]repository.ItemBillTotal, error) {
	query := `
		SELECT bi.stock_item_id, si.name, COALESCE(bi.hsn_code, ''),
		       COALESCE(SUM(bi.quantity), 0),
		       COALESCE(SUM(bi.amount), 0)
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		JOIN stock_items si ON si.id = bi.stock_item_id
		WHERE b.firm_id = $1 AND b.bill_type = $2 AND b.status <> 'CANCELLED'`
	args := []any{firmID, billType}
	query, args = appendDateRange(query, args, "b.bill_date", dr)
	query += `
		GROUP BY bi.stock_item_id, si.name, COALESCE(bi.hsn_code, '')
		ORDER BY SUM(bi.amount) DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("bills by item: %w", err)
	}
	defer rows.Close()
	var list []repository.ItemBillTotal
	for rows.Next() {
		var t repository.ItemBillTotal
		if err := rows.Scan(&t.StockItemID, &t.ItemName, &t.HSNCode, &t.Quantity, &t.Amount); err != nil {
			return nil, fmt.Errorf("scan item total: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetBillsByMonth groups one year's bill totals by calendar month.
func (r *ReportsRepo) GetBillsByMonth(ctx context.Context, firmID, billType string, year int) ([]repository.MonthBillTotal, error) {
	query := `
		SELECT EXTRACT(MONTH FROM bill_date)::int, COUNT(*),
		       COALESCE(SUM(net_total), 0),
		       COALESCE(SUM(cgst + sgst + igst), 0)
		FROM bills
		WHERE firm_id = $1 AND bill_type = $2 AND status <> 'CANCELLED'
		  AND EXTRACT(YEAR FROM bill_date) = $3
		GROUP BY EXTRACT(MONTH FROM bill_date)
		ORDER BY 1`
	rows, err := r.q.Query(ctx, query, firmID, billType, year)
	if err != nil {
		return nil, fmt.Errorf("bills by month: %w", err)
	}
	defer rows.Close()
	var list []repository.MonthBillTotal
	for rows.Next() {
		t := repository.MonthBillTotal{Year: year}
		if err := rows.Scan(&t.Month, &t.BillCount, &t.NetTotal, &t.TaxTotal); err != nil {
			return nil, fmt.Errorf("scan month total: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetOutstandingBills lists unpaid bills, oldest first.
func (r *ReportsRepo) GetOutstandingBills(ctx context.Context, firmID, billType string) ([]repository.OutstandingBill, error) {
	query := `
		SELECT id, bill_no, bill_date, due_date, party_id, party_name,
		       net_total, paid_amount, net_total - paid_amount,
		       (CURRENT_DATE - bill_date::date)::int
		FROM bills
		WHERE firm_id = $1 AND bill_type = $2 AND status <> 'CANCELLED'
		  AND net_total > paid_amount
		ORDER BY bill_date ASC`
	rows, err := r.q.Query(ctx, query, firmID, billType)
	if err != nil {
		return nil, fmt.Errorf("outstanding bills: %w", err)
	}
	defer rows.Close()
	var list []repository.OutstandingBill
	for rows.Next() {
		var b repository.OutstandingBill
		if err := rows.Scan(&b.BillID, &b.BillNo, &b.BillDate, &b.DueDate,
			&b.PartyID, &b.PartyName, &b.NetTotal, &b.PaidAmount,
			&b.Outstanding, &b.AgeDays); err != nil {
			return nil, fmt.Errorf("scan outstanding bill: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// GetStockSummary returns the firm's headline inventory numbers.
// Quantity and value totals only count active items.
func (r *ReportsRepo) GetStockSummary(ctx context.Context, firmID string) (*repository.StockSummary, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE active),
		       COALESCE(SUM(current_stock) FILTER (WHERE active), 0),
		       COALESCE(SUM(current_stock * purchase_rate) FILTER (WHERE active), 0),
		       COALESCE(SUM(current_stock * sale_rate) FILTER (WHERE active), 0),
		       COUNT(*) FILTER (WHERE active AND min_stock > 0 AND current_stock <= min_stock),
		       COUNT(*) FILTER (WHERE active AND current_stock <= 0)
		FROM stock_items
		WHERE firm_id = $1`
	var s repository.StockSummary
	err := r.q.QueryRow(ctx, query, firmID).Scan(
		&s.ItemCount, &s.ActiveCount, &s.TotalQty,
		&s.PurchaseValue, &s.SaleValue, &s.LowStockCount, &s.OutOfStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	return &s, nil
}

// GetStockValuation returns per-item valuation for active items.
func (r *ReportsRepo) GetStockValuation(ctx context.Context, firmID string) ([]repository.StockValuationRow, error) {
	query := `
		SELECT id, name, COALESCE(code, ''), unit, current_stock,
		       purchase_rate, sale_rate,
		       current_stock * purchase_rate,
		       current_stock * sale_rate
		FROM stock_items
		WHERE firm_id = $1 AND active = true
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, firmID)
	if err != nil {
		return nil, fmt.Errorf("stock valuation: %w", err)
	}
	defer rows.Close()
	var list []repository.StockValuationRow
	for rows.Next() {
		var v repository.StockValuationRow
		if err := rows.Scan(&v.StockItemID, &v.Name, &v.Code, &v.Unit, &v.CurrentStock,
			&v.PurchaseRate, &v.SaleRate, &v.PurchaseValue, &v.SaleValue); err != nil {
			return nil, fmt.Errorf("scan valuation row: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// GetLowStock lists active items at or below their minimum, worst first.
func (r *ReportsRepo) GetLowStock(ctx context.Context, firmID string) ([]repository.LowStockRow, error) {
	query := `
		SELECT id, name, COALESCE(code, ''), unit, current_stock, min_stock,
		       min_stock - current_stock
		FROM stock_items
		WHERE firm_id = $1 AND active = true AND min_stock > 0 AND current_stock <= min_stock
		ORDER BY min_stock - current_stock DESC`
	rows, err := r.q.Query(ctx, query, firmID)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockRow
	for rows.Next() {
		var l repository.LowStockRow
		if err := rows.Scan(&l.StockItemID, &l.Name, &l.Code, &l.Unit,
			&l.CurrentStock, &l.MinStock, &l.Shortfall); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// GetStockAging reports days since each active item last moved out.
// Items that never moved out age from their creation date.
func (r *ReportsRepo) GetStockAging(ctx context.Context, firmID string) ([]repository.StockAgingRow, error) {
	query := `
		SELECT si.id, si.name, si.current_stock,
		       mo.last_out, mi.last_in,
		       (CURRENT_DATE - COALESCE(mo.last_out, si.created_at)::date)::int
		FROM stock_items si
		LEFT JOIN (
			SELECT stock_item_id, MAX(movement_date) AS last_out
			FROM stock_movements WHERE movement_type = 'OUT'
			GROUP BY stock_item_id
		) mo ON mo.stock_item_id = si.id
		LEFT JOIN (
			SELECT stock_item_id, MAX(movement_date) AS last_in
			FROM stock_movements WHERE movement_type = 'IN'
			GROUP BY stock_item_id
		) mi ON mi.stock_item_id = si.id
		WHERE si.firm_id = $1 AND si.active = true AND si.current_stock > 0
		ORDER BY 6 DESC`
	rows, err := r.q.Query(ctx, query, firmID)
	if err != nil {
		return nil, fmt.Errorf("stock aging: %w", err)
	}
	defer rows.Close()
	var list []repository.StockAgingRow
	for rows.Next() {
		var a repository.StockAgingRow
		if err := rows.Scan(&a.StockItemID, &a.Name, &a.CurrentStock,
			&a.LastOutDate, &a.LastInDate, &a.IdleDays); err != nil {
			return nil, fmt.Errorf("scan aging row: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// GetPartyOutstanding sums the open position per party, biggest first.
func (r *ReportsRepo) GetPartyOutstanding(ctx context.Context, firmID, billType string) ([]repository.PartyOutstanding, error) {
	query := `
		SELECT b.party_id, b.party_name,
		       COALESCE(p.gstin, ''), COALESCE(p.phone, ''),
		       COUNT(*),
		       COALESCE(SUM(b.net_total - b.paid_amount), 0)
		FROM bills b
		JOIN parties p ON p.id = b.party_id
		WHERE b.firm_id = $1 AND b.bill_type = $2 AND b.status <> 'CANCELLED'
		  AND b.net_total > b.paid_amount
		GROUP BY b.party_id, b.party_name, p.gstin, p.phone
		ORDER BY SUM(b.net_total - b.paid_amount) DESC`
	rows, err := r.q.Query(ctx, query, firmID, billType)
	if err != nil {
		return nil, fmt.Errorf("party outstanding: %w", err)
	}
	defer rows.Close()
	var list []repository.PartyOutstanding
	for rows.Next() {
		var o repository.PartyOutstanding
		if err := rows.Scan(&o.PartyID, &o.PartyName, &o.GSTIN, &o.Phone,
			&o.BillCount, &o.Outstanding); err != nil {
			return nil, fmt.Errorf("scan party outstanding: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// GetPartyAging buckets each party's open bills by age as of the given date.
func (r *ReportsRepo) GetPartyAging(ctx context.Context, firmID, billType string, asOf time.Time) ([]repository.PartyAgingRow, error) {
	query := `
		SELECT party_id, party_name,
		       COALESCE(SUM(CASE WHEN ($3::date - bill_date::date) <= 30 THEN net_total - paid_amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN ($3::date - bill_date::date) BETWEEN 31 AND 60 THEN net_total - paid_amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN ($3::date - bill_date::date) BETWEEN 61 AND 90 THEN net_total - paid_amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN ($3::date - bill_date::date) > 90 THEN net_total - paid_amount ELSE 0 END), 0),
		       COALESCE(SUM(net_total - paid_amount), 0)
		FROM bills
		WHERE firm_id = $1 AND bill_type = $2 AND status <> 'CANCELLED'
		  AND net_total > paid_amount AND bill_date <= $3
		GROUP BY party_id, party_name
		ORDER BY SUM(net_total - paid_amount) DESC`
	rows, err := r.q.Query(ctx, query, firmID, billType, asOf)
	if err != nil {
		return nil, fmt.Errorf("party aging: %w", err)
	}
	defer rows.Close()
	var list []repository.PartyAgingRow
	for rows.Next() {
		var a repository.PartyAgingRow
		if err := rows.Scan(&a.PartyID, &a.PartyName,
			&a.Current, &a.Days31to60, &a.Days61to90, &a.Over90, &a.Total); err != nil {
			return nil, fmt.Errorf("scan party aging: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// ListGSTBills returns per-bill tax detail for the GST register and GSTR-1.
func (r *ReportsRepo) ListGSTBills(ctx context.Context, firmID, billType string, dr repository.DateRange) ([]repository.GSTBillRow, error) {
	query := `
		SELECT id, bill_no, bill_date, party_name, COALESCE(gstin, ''),
		       gross_total, cgst, sgst, igst, net_total
		FROM bills
		WHERE firm_id = $1 AND bill_type = $2 AND status <> 'CANCELLED'`
	args := []any{firmID, billType}
	query, args = appendDateRange(query, args, "bill_date", dr)
	query += " ORDER BY bill_date ASC, bill_no ASC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("gst bills: %w", err)
	}
	defer rows.Close()
	var list []repository.GSTBillRow
	for rows.Next() {
		var g repository.GSTBillRow
		if err := rows.Scan(&g.BillID, &g.BillNo, &g.BillDate, &g.PartyName, &g.GSTIN,
			&g.Taxable, &g.CGST, &g.SGST, &g.IGST, &g.NetTotal); err != nil {
			return nil, fmt.Errorf("scan gst bill: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// GetB2CSByRate aggregates unregistered small sales by GST rate.
// Line tax splits per bill: bills carrying IGST are inter-state, the rest
// split the tax into equal CGST/SGST halves.
func (r *ReportsRepo) GetB2CSByRate(ctx context.Context, firmID string, dr repository.DateRange) ([]repository.B2CSRateRow, error) {
	query := `
		SELECT bi.gst_rate,
		       COALESCE(SUM(bi.amount), 0),
		       COALESCE(SUM(CASE WHEN b.igst = 0 THEN bi.amount * bi.gst_rate / 200 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN b.igst = 0 THEN bi.amount * bi.gst_rate / 200 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN b.igst > 0 THEN bi.amount * bi.gst_rate / 100 ELSE 0 END), 0)
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		WHERE b.firm_id = $1 AND b.bill_type = 'SALES' AND b.status <> 'CANCELLED'
		  AND COALESCE(b.gstin, '') = '' AND b.net_total <= $2`
	args := []any{firmID, gst.B2CLargeThreshold}
	query, args = appendDateRange(query, args, "b.bill_date", dr)
	query += `
		GROUP BY bi.gst_rate
		ORDER BY bi.gst_rate`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("b2cs by rate: %w", err)
	}
	defer rows.Close()
	var list []repository.B2CSRateRow
	for rows.Next() {
		var b repository.B2CSRateRow
		if err := rows.Scan(&b.GSTRate, &b.Taxable, &b.CGST, &b.SGST, &b.IGST); err != nil {
			return nil, fmt.Errorf("scan b2cs row: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// GetAccountTotals sums ledger debits and credits per account.
func (r *ReportsRepo) GetAccountTotals(ctx context.Context, firmID string, dr repository.DateRange) ([]repository.AccountTotals, error) {
	query := `
		SELECT account_name, account_type,
		       COALESCE(SUM(debit), 0),
		       COALESCE(SUM(credit), 0)
		FROM ledger_entries
		WHERE firm_id = $1`
	args := []any{firmID}
	query, args = appendDateRange(query, args, "entry_date", dr)
	query += `
		GROUP BY account_name, account_type
		ORDER BY account_name`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("account totals: %w", err)
	}
	defer rows.Close()
	var list []repository.AccountTotals
	for rows.Next() {
		var t repository.AccountTotals
		if err := rows.Scan(&t.AccountName, &t.AccountType, &t.TotalDebit, &t.TotalCredit); err != nil {
			return nil, fmt.Errorf("scan account totals: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetMonthlyCashFlow sums CASH/BANK ledger movement per calendar month.
func (r *ReportsRepo) GetMonthlyCashFlow(ctx context.Context, firmID string, dr repository.DateRange) ([]repository.MonthlyCashFlow, error) {
	query := `
		SELECT EXTRACT(YEAR FROM entry_date)::int, EXTRACT(MONTH FROM entry_date)::int,
		       COALESCE(SUM(debit), 0),
		       COALESCE(SUM(credit), 0)
		FROM ledger_entries
		WHERE firm_id = $1 AND account_type IN ('CASH', 'BANK')`
	args := []any{firmID}
	query, args = appendDateRange(query, args, "entry_date", dr)
	query += `
		GROUP BY 1, 2
		ORDER BY 1, 2`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("monthly cash flow: %w", err)
	}
	defer rows.Close()
	var list []repository.MonthlyCashFlow
	for rows.Next() {
		var m repository.MonthlyCashFlow
		if err := rows.Scan(&m.Year, &m.Month, &m.Inflow, &m.Outflow); err != nil {
			return nil, fmt.Errorf("scan cash flow: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// GetDashboardCounts gathers the overview widget numbers in one round trip.
func (r *ReportsRepo) GetDashboardCounts(ctx context.Context, firmID string, now time.Time) (*repository.DashboardCounts, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(net_total) FROM bills
				WHERE firm_id = $1 AND bill_type = 'SALES' AND status <> 'CANCELLED'
				  AND bill_date::date = $2::date), 0),
			COALESCE((SELECT SUM(net_total) FROM bills
				WHERE firm_id = $1 AND bill_type = 'SALES' AND status <> 'CANCELLED'
				  AND bill_date >= date_trunc('month', $2::timestamptz)), 0),
			COALESCE((SELECT SUM(net_total) FROM bills
				WHERE firm_id = $1 AND bill_type = 'PURCHASE' AND status <> 'CANCELLED'
				  AND bill_date >= date_trunc('month', $2::timestamptz)), 0),
			COALESCE((SELECT SUM(net_total - paid_amount) FROM bills
				WHERE firm_id = $1 AND bill_type = 'SALES' AND status <> 'CANCELLED'
				  AND net_total > paid_amount), 0),
			COALESCE((SELECT SUM(net_total - paid_amount) FROM bills
				WHERE firm_id = $1 AND bill_type = 'PURCHASE' AND status <> 'CANCELLED'
				  AND net_total > paid_amount), 0),
			(SELECT COUNT(*) FROM stock_items
				WHERE firm_id = $1 AND active = true AND min_stock > 0 AND current_stock <= min_stock),
			(SELECT COUNT(*) FROM parties WHERE firm_id = $1),
			(SELECT COUNT(*) FROM stock_items WHERE firm_id = $1 AND active = true),
			(SELECT COUNT(*) FROM bills
				WHERE firm_id = $1 AND status <> 'CANCELLED'
				  AND bill_date >= date_trunc('month', $2::timestamptz))`
	var c repository.DashboardCounts
	err := r.q.QueryRow(ctx, query, firmID, now).Scan(
		&c.TodaySales, &c.MonthSales, &c.MonthPurchase,
		&c.TotalReceivable, &c.TotalPayable,
		&c.LowStockCount, &c.PartyCount, &c.StockItemCount, &c.MonthBillCount,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	return &c, nil
}
