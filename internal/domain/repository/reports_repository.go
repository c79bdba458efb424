package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DateRange optional inclusive bounds applied to the report queries.
// Nil fields are skipped; filters are strictly additive (AND-combined).
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// BillSummary single-record aggregate over non-cancelled bills.
// Every SUM is coerced to zero when the filtered set is empty.
type BillSummary struct {
	BillCount   int
	GrossTotal  decimal.Decimal
	CGST        decimal.Decimal
	SGST        decimal.Decimal
	IGST        decimal.Decimal
	NetTotal    decimal.Decimal
	PaidAmount  decimal.Decimal
	Outstanding decimal.Decimal // SUM(net_total - paid_amount)
}

// PartyBillTotal grouped bill totals per party, ordered by amount descending.
type PartyBillTotal struct {
	PartyID     string
	PartyName   string
	BillCount   int
	NetTotal    decimal.Decimal
	PaidAmount  decimal.Decimal
	Outstanding decimal.Decimal
}

// ItemBillTotal grouped bill-line totals per stock item.
type ItemBillTotal struct {
	StockItemID string
	ItemName    string
	HSNCode     string
	Quantity    decimal.Decimal
	Amount      decimal.Decimal
}

// MonthBillTotal bill totals for one calendar month, chronological.
type MonthBillTotal struct {
	Year      int
	Month     int
	BillCount int
	NetTotal  decimal.Decimal
	TaxTotal  decimal.Decimal
}

// OutstandingBill one unpaid, non-cancelled bill.
type OutstandingBill struct {
	BillID      string
	BillNo      string
	BillDate    time.Time
	DueDate     *time.Time
	PartyID     string
	PartyName   string
	NetTotal    decimal.Decimal
	PaidAmount  decimal.Decimal
	Outstanding decimal.Decimal
	AgeDays     int
}

// StockSummary headline inventory numbers for the firm.
type StockSummary struct {
	ItemCount       int
	ActiveCount     int
	TotalQty        decimal.Decimal
	PurchaseValue   decimal.Decimal // qty * purchase_rate
	SaleValue       decimal.Decimal // qty * sale_rate
	LowStockCount   int
	OutOfStockCount int
}

// StockValuationRow per-item valuation at purchase and sale rates.
type StockValuationRow struct {
	StockItemID   string
	Name          string
	Code          string
	Unit          string
	CurrentStock  decimal.Decimal
	PurchaseRate  decimal.Decimal
	SaleRate      decimal.Decimal
	PurchaseValue decimal.Decimal
	SaleValue     decimal.Decimal
}

// LowStockRow items at or below their minimum stock threshold.
type LowStockRow struct {
	StockItemID  string
	Name         string
	Code         string
	Unit         string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	Shortfall    decimal.Decimal
}

// StockAgingRow days since an item last moved out.
type StockAgingRow struct {
	StockItemID  string
	Name         string
	CurrentStock decimal.Decimal
	LastOutDate  *time.Time
	LastInDate   *time.Time
	IdleDays     int
}

// PartyOutstanding receivable/payable position per party.
type PartyOutstanding struct {
	PartyID     string
	PartyName   string
	GSTIN       string
	Phone       string
	BillCount   int
	Outstanding decimal.Decimal
}

// PartyAgingRow outstanding bucketed by bill age per party.
type PartyAgingRow struct {
	PartyID    string
	PartyName  string
	Current    decimal.Decimal // 0-30 days
	Days31to60 decimal.Decimal
	Days61to90 decimal.Decimal
	Over90     decimal.Decimal
	Total      decimal.Decimal
}

// GSTBillRow per-bill tax detail feeding the GST registers and GSTR-1 b2b/b2cl sections.
type GSTBillRow struct {
	BillID    string
	BillNo    string
	BillDate  time.Time
	PartyName string
	GSTIN     string
	Taxable   decimal.Decimal // gross_total
	CGST      decimal.Decimal
	SGST      decimal.Decimal
	IGST      decimal.Decimal
	NetTotal  decimal.Decimal
}

// B2CSRateRow B2C-Small sales aggregated by GST rate (GSTR-1 b2cs section).
type B2CSRateRow struct {
	GSTRate decimal.Decimal
	Taxable decimal.Decimal
	CGST    decimal.Decimal
	SGST    decimal.Decimal
	IGST    decimal.Decimal
}

// AccountTotals ledger debit/credit sums per account, the raw input to the
// trial balance, P&L and balance sheet shaping.
type AccountTotals struct {
	AccountName string
	AccountType string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// MonthlyCashFlow net cash/bank movement for one calendar month.
type MonthlyCashFlow struct {
	Year    int
	Month   int
	Inflow  decimal.Decimal // debits into CASH/BANK
	Outflow decimal.Decimal // credits out of CASH/BANK
}

// DashboardCounts headline numbers for the overview widgets.
type DashboardCounts struct {
	TodaySales      decimal.Decimal
	MonthSales      decimal.Decimal
	MonthPurchase   decimal.Decimal
	TotalReceivable decimal.Decimal
	TotalPayable    decimal.Decimal
	LowStockCount   int
	PartyCount      int
	StockItemCount  int
	MonthBillCount  int
}

// ReportsRepository is the read-only aggregation port. Implementations filter
// by firm and the optional range, always exclude CANCELLED bills, and coerce
// empty-set SUMs to zero.
type ReportsRepository interface {
	// Bills (billType SALES or PURCHASE)
	GetBillSummary(ctx context.Context, firmID, billType string, r DateRange) (*BillSummary, error)
	GetBillsByParty(ctx context.Context, firmID, billType string, r DateRange) ([]PartyBillTotal, error)
	GetBillsByItem(ctx context.Context, firmID, billType string, r DateRange) ([]ItemBillTotal, error)
	GetBillsByMonth(ctx context.Context, firmID, billType string, year int) ([]MonthBillTotal, error)
	GetOutstandingBills(ctx context.Context, firmID, billType string) ([]OutstandingBill, error)

	// Stock
	GetStockSummary(ctx context.Context, firmID string) (*StockSummary, error)
	GetStockValuation(ctx context.Context, firmID string) ([]StockValuationRow, error)
	GetLowStock(ctx context.Context, firmID string) ([]LowStockRow, error)
	GetStockAging(ctx context.Context, firmID string) ([]StockAgingRow, error)

	// Parties
	GetPartyOutstanding(ctx context.Context, firmID, billType string) ([]PartyOutstanding, error)
	GetPartyAging(ctx context.Context, firmID, billType string, asOf time.Time) ([]PartyAgingRow, error)

	// GST
	ListGSTBills(ctx context.Context, firmID, billType string, r DateRange) ([]GSTBillRow, error)
	GetB2CSByRate(ctx context.Context, firmID string, r DateRange) ([]B2CSRateRow, error)

	// Ledger
	GetAccountTotals(ctx context.Context, firmID string, r DateRange) ([]AccountTotals, error)
	GetMonthlyCashFlow(ctx context.Context, firmID string, r DateRange) ([]MonthlyCashFlow, error)

	// Dashboard
	GetDashboardCounts(ctx context.Context, firmID string, now time.Time) (*DashboardCounts, error)
}
