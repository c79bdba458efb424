package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBillItemRequest one bill line. Rate zero falls back to the item's
// sale rate (SALES) or purchase rate (PURCHASE).
type CreateBillItemRequest struct {
	StockItemID string          `json:"stock_item_id" validate:"required"`
	Quantity    decimal.Decimal `json:"qty" validate:"required"`
	Rate        decimal.Decimal `json:"rate"`
}

// CreateBillRequest body for POST /api/bills. Posting a bill writes the stock
// movements and ledger entries in the same transaction.
type CreateBillRequest struct {
	BillType string                  `json:"bill_type" validate:"required"` // SALES | PURCHASE
	BillNo   string                  `json:"bill_no"`
	BillDate *time.Time              `json:"bill_date"`
	DueDate  *time.Time              `json:"due_date"`
	PartyID  string                  `json:"party_id" validate:"required"`
	Items    []CreateBillItemRequest `json:"items" validate:"required,min=1"`
}

// BillItemResponse one bill line output.
type BillItemResponse struct {
	ID          string          `json:"id"`
	StockItemID string          `json:"stock_item_id"`
	Description string          `json:"description"`
	HSNCode     string          `json:"hsn_code,omitempty"`
	Quantity    decimal.Decimal `json:"qty"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
}

// BillResponse bill header plus lines.
type BillResponse struct {
	ID          string             `json:"id"`
	FirmID      string             `json:"firm_id"`
	BillType    string             `json:"bill_type"`
	BillNo      string             `json:"bill_no"`
	BillDate    time.Time          `json:"bill_date"`
	DueDate     *time.Time         `json:"due_date,omitempty"`
	PartyID     string             `json:"party_id"`
	PartyName   string             `json:"party_name"`
	GSTIN       string             `json:"gstin,omitempty"`
	GrossTotal  decimal.Decimal    `json:"gross_total"`
	CGST        decimal.Decimal    `json:"cgst"`
	SGST        decimal.Decimal    `json:"sgst"`
	IGST        decimal.Decimal    `json:"igst"`
	NetTotal    decimal.Decimal    `json:"net_total"`
	PaidAmount  decimal.Decimal    `json:"paid_amount"`
	Outstanding decimal.Decimal    `json:"outstanding"`
	Status      string             `json:"status"`
	Items       []BillItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// BillListResponse paginated bill list.
type BillListResponse struct {
	Items []BillResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
