package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillSummaryResponse single-record aggregate for /sales/summary and
// /purchase/summary. Zero-valued fields are real zeros, never omitted.
type BillSummaryResponse struct {
	TotalBills       int             `json:"total_bills"`
	GrossTotal       decimal.Decimal `json:"gross_total"`
	CGST             decimal.Decimal `json:"cgst"`
	SGST             decimal.Decimal `json:"sgst"`
	IGST             decimal.Decimal `json:"igst"`
	NetTotal         decimal.Decimal `json:"net_total"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}

// PartyTotalDTO grouped totals per party, ordered by net total descending.
type PartyTotalDTO struct {
	PartyID     string          `json:"party_id"`
	PartyName   string          `json:"party_name"`
	TotalBills  int             `json:"total_bills"`
	NetTotal    decimal.Decimal `json:"net_total"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// ItemTotalDTO grouped bill-line totals per stock item.
type ItemTotalDTO struct {
	StockItemID string          `json:"stock_item_id"`
	ItemName    string          `json:"item_name"`
	HSNCode     string          `json:"hsn_code,omitempty"`
	Quantity    decimal.Decimal `json:"qty"`
	Amount      decimal.Decimal `json:"amount"`
}

// MonthTotalDTO one calendar month's totals, chronological.
type MonthTotalDTO struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	TotalBills int             `json:"total_bills"`
	NetTotal   decimal.Decimal `json:"net_total"`
	TaxTotal   decimal.Decimal `json:"tax_total"`
}

// OutstandingBillDTO one unpaid bill with its age in days.
type OutstandingBillDTO struct {
	BillID      string          `json:"bill_id"`
	BillNo      string          `json:"bill_no"`
	BillDate    time.Time       `json:"bill_date"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	PartyID     string          `json:"party_id"`
	PartyName   string          `json:"party_name"`
	NetTotal    decimal.Decimal `json:"net_total"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Outstanding decimal.Decimal `json:"outstanding"`
	AgeDays     int             `json:"age_days"`
}

// StockSummaryResponse headline inventory numbers.
type StockSummaryResponse struct {
	TotalItems      int             `json:"total_items"`
	ActiveItems     int             `json:"active_items"`
	TotalQty        decimal.Decimal `json:"total_qty"`
	PurchaseValue   decimal.Decimal `json:"purchase_value"`
	SaleValue       decimal.Decimal `json:"sale_value"`
	LowStockItems   int             `json:"low_stock_items"`
	OutOfStockItems int             `json:"out_of_stock_items"`
}

// StockValuationDTO per-item valuation row.
type StockValuationDTO struct {
	StockItemID   string          `json:"stock_item_id"`
	ItemName      string          `json:"item_name"`
	Code          string          `json:"item_code,omitempty"`
	Unit          string          `json:"unit"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	PurchaseRate  decimal.Decimal `json:"purchase_rate"`
	SaleRate      decimal.Decimal `json:"sale_rate"`
	PurchaseValue decimal.Decimal `json:"purchase_value"`
	SaleValue     decimal.Decimal `json:"sale_value"`
}

// LowStockDTO item at or below its minimum threshold.
type LowStockDTO struct {
	StockItemID  string          `json:"stock_item_id"`
	ItemName     string          `json:"item_name"`
	Code         string          `json:"item_code,omitempty"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Shortfall    decimal.Decimal `json:"shortfall"`
}

// StockAgingDTO idle-stock row.
type StockAgingDTO struct {
	StockItemID  string          `json:"stock_item_id"`
	ItemName     string          `json:"item_name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	LastOutDate  *time.Time      `json:"last_out_date,omitempty"`
	LastInDate   *time.Time      `json:"last_in_date,omitempty"`
	IdleDays     int             `json:"idle_days"`
}

// PartyOutstandingDTO receivable/payable per party.
type PartyOutstandingDTO struct {
	PartyID     string          `json:"party_id"`
	PartyName   string          `json:"party_name"`
	GSTIN       string          `json:"gstin,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	TotalBills  int             `json:"total_bills"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// PartyAgingDTO aging buckets per party.
type PartyAgingDTO struct {
	PartyID    string          `json:"party_id"`
	PartyName  string          `json:"party_name"`
	Current    decimal.Decimal `json:"current"`
	Days31to60 decimal.Decimal `json:"days_31_60"`
	Days61to90 decimal.Decimal `json:"days_61_90"`
	Over90     decimal.Decimal `json:"over_90"`
	Total      decimal.Decimal `json:"total"`
}

// GSTSummaryResponse output tax vs input tax for the period.
type GSTSummaryResponse struct {
	OutputCGST   decimal.Decimal `json:"output_cgst"`
	OutputSGST   decimal.Decimal `json:"output_sgst"`
	OutputIGST   decimal.Decimal `json:"output_igst"`
	InputCGST    decimal.Decimal `json:"input_cgst"`
	InputSGST    decimal.Decimal `json:"input_sgst"`
	InputIGST    decimal.Decimal `json:"input_igst"`
	NetPayable   decimal.Decimal `json:"net_payable"`
	FilingDueDay int             `json:"filing_due_day"`
}

// GSTBillDTO per-bill register row for /gst/sales and /gst/purchase.
type GSTBillDTO struct {
	BillID    string          `json:"bill_id"`
	BillNo    string          `json:"bill_no"`
	BillDate  time.Time       `json:"bill_date"`
	PartyName string          `json:"party_name"`
	GSTIN     string          `json:"gstin,omitempty"`
	Taxable   decimal.Decimal `json:"taxable_value"`
	CGST      decimal.Decimal `json:"cgst"`
	SGST      decimal.Decimal `json:"sgst"`
	IGST      decimal.Decimal `json:"igst"`
	NetTotal  decimal.Decimal `json:"net_total"`
}

// B2CSRateDTO B2C-Small aggregate by GST rate.
type B2CSRateDTO struct {
	GSTRate decimal.Decimal `json:"gst_rate"`
	Taxable decimal.Decimal `json:"taxable_value"`
	CGST    decimal.Decimal `json:"cgst"`
	SGST    decimal.Decimal `json:"sgst"`
	IGST    decimal.Decimal `json:"igst"`
}

// GSTR1Response statutory GSTR-1 aggregate for one filing period.
type GSTR1Response struct {
	Period   string         `json:"period"` // MM-YYYY
	FromDate string         `json:"from_date"`
	ToDate   string         `json:"to_date"`
	B2B      []GSTBillDTO   `json:"b2b"`
	B2CL     []GSTBillDTO   `json:"b2cl"`
	B2CS     []B2CSRateDTO  `json:"b2cs"`
	Totals   GSTR1TotalsDTO `json:"totals"`
}

// GSTR1TotalsDTO section totals of a GSTR-1.
type GSTR1TotalsDTO struct {
	InvoiceCount int             `json:"invoice_count"`
	Taxable      decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
}

// GSTR3BResponse statutory GSTR-3B summary for one filing period.
type GSTR3BResponse struct {
	Period         string          `json:"period"`
	OutwardTaxable decimal.Decimal `json:"outward_taxable_value"`
	OutputCGST     decimal.Decimal `json:"output_cgst"`
	OutputSGST     decimal.Decimal `json:"output_sgst"`
	OutputIGST     decimal.Decimal `json:"output_igst"`
	InwardTaxable  decimal.Decimal `json:"inward_taxable_value"`
	InputCGST      decimal.Decimal `json:"input_cgst"`
	InputSGST      decimal.Decimal `json:"input_sgst"`
	InputIGST      decimal.Decimal `json:"input_igst"`
	NetPayable     decimal.Decimal `json:"net_payable"`
}

// TrialBalanceRowDTO one account with exactly one of Debit/Credit non-zero.
type TrialBalanceRowDTO struct {
	AccountName string          `json:"account_name"`
	AccountType string          `json:"account_type"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse rows plus totals; Difference is always present and
// should be zero for balanced books.
type TrialBalanceResponse struct {
	Rows        []TrialBalanceRowDTO `json:"rows"`
	TotalDebit  decimal.Decimal      `json:"total_debit"`
	TotalCredit decimal.Decimal      `json:"total_credit"`
	Difference  decimal.Decimal      `json:"difference"`
}

// AccountAmountDTO a named account with its report amount.
type AccountAmountDTO struct {
	AccountName string          `json:"account_name"`
	Amount      decimal.Decimal `json:"amount"`
}

// ProfitLossResponse income vs expense statement.
type ProfitLossResponse struct {
	Income       []AccountAmountDTO `json:"income"`
	Expenses     []AccountAmountDTO `json:"expenses"`
	TotalIncome  decimal.Decimal    `json:"total_income"`
	TotalExpense decimal.Decimal    `json:"total_expense"`
	NetProfit    decimal.Decimal    `json:"net_profit"` // negative = loss
}

// BalanceSheetResponse assets vs liabilities as of the period end.
type BalanceSheetResponse struct {
	Assets           []AccountAmountDTO `json:"assets"`
	Liabilities      []AccountAmountDTO `json:"liabilities"`
	TotalAssets      decimal.Decimal    `json:"total_assets"`
	TotalLiabilities decimal.Decimal    `json:"total_liabilities"`
	Difference       decimal.Decimal    `json:"difference"`
}

// CashFlowMonthDTO net cash movement for one month.
type CashFlowMonthDTO struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Net     decimal.Decimal `json:"net"`
}

// CashFlowResponse monthly series plus totals.
type CashFlowResponse struct {
	Months       []CashFlowMonthDTO `json:"months"`
	TotalInflow  decimal.Decimal    `json:"total_inflow"`
	TotalOutflow decimal.Decimal    `json:"total_outflow"`
	NetCashFlow  decimal.Decimal    `json:"net_cash_flow"`
}

// DashboardOverviewResponse headline widgets for the landing page.
type DashboardOverviewResponse struct {
	TodaySales      decimal.Decimal `json:"today_sales"`
	MonthSales      decimal.Decimal `json:"month_sales"`
	MonthPurchase   decimal.Decimal `json:"month_purchase"`
	TotalReceivable decimal.Decimal `json:"total_receivable"`
	TotalPayable    decimal.Decimal `json:"total_payable"`
	LowStockItems   int             `json:"low_stock_items"`
	TotalParties    int             `json:"total_parties"`
	TotalStockItems int             `json:"total_stock_items"`
	MonthBills      int             `json:"month_bills"`
	DateLabel       string          `json:"date_label"` // e.g. "August 2026"
}

// DashboardChartsResponse series for the dashboard charts.
type DashboardChartsResponse struct {
	SalesByMonth    []MonthTotalDTO `json:"sales_by_month"`
	PurchaseByMonth []MonthTotalDTO `json:"purchase_by_month"`
	TopItems        []ItemTotalDTO  `json:"top_items"`
}
