package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockItemRequest body for POST /api/stocks.
// OpeningStock > 0 creates the item's OPENING movement in the same transaction.
type CreateStockItemRequest struct {
	Name         string          `json:"item_name" validate:"required,min=1,max=200"`
	Code         string          `json:"item_code"`
	HSNCode      string          `json:"hsn_code"`
	Unit         string          `json:"unit"`
	Category     string          `json:"category"`
	OpeningStock decimal.Decimal `json:"opening_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	MaxStock     decimal.Decimal `json:"max_stock"`
	PurchaseRate decimal.Decimal `json:"purchase_rate"`
	SaleRate     decimal.Decimal `json:"sale_rate"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
}

// UpdateStockItemRequest partial update; current_stock is never editable here,
// it only changes through movements.
type UpdateStockItemRequest struct {
	Name         *string          `json:"item_name"`
	Code         *string          `json:"item_code"`
	HSNCode      *string          `json:"hsn_code"`
	Unit         *string          `json:"unit"`
	Category     *string          `json:"category"`
	MinStock     *decimal.Decimal `json:"min_stock"`
	MaxStock     *decimal.Decimal `json:"max_stock"`
	PurchaseRate *decimal.Decimal `json:"purchase_rate"`
	SaleRate     *decimal.Decimal `json:"sale_rate"`
	GSTRate      *decimal.Decimal `json:"gst_rate"`
}

// StockItemResponse stock item output.
type StockItemResponse struct {
	ID           string          `json:"id"`
	FirmID       string          `json:"firm_id"`
	Name         string          `json:"item_name"`
	Code         string          `json:"item_code,omitempty"`
	HSNCode      string          `json:"hsn_code,omitempty"`
	Unit         string          `json:"unit"`
	Category     string          `json:"category,omitempty"`
	OpeningStock decimal.Decimal `json:"opening_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	MaxStock     decimal.Decimal `json:"max_stock"`
	PurchaseRate decimal.Decimal `json:"purchase_rate"`
	SaleRate     decimal.Decimal `json:"sale_rate"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StockItemListResponse paginated item list.
type StockItemListResponse struct {
	Items []StockItemResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// PostMovementRequest body for POST /api/stocks/:id/movements.
type PostMovementRequest struct {
	MovementType string          `json:"movement_type" validate:"required"` // IN | OUT
	Quantity     decimal.Decimal `json:"qty" validate:"required"`
	Rate         decimal.Decimal `json:"rate"`
	Remarks      string          `json:"remarks"`
}

// AdjustStockRequest body for POST /api/stocks/:id/adjust: set the stock to an
// absolute quantity; the use case synthesizes the IN/OUT delta.
type AdjustStockRequest struct {
	NewQty  decimal.Decimal `json:"new_qty" validate:"required"`
	Remarks string          `json:"remarks"`
}

// AdjustStockResponse outcome of an adjustment.
type AdjustStockResponse struct {
	Adjusted     bool              `json:"adjusted"`
	Message      string            `json:"message"`
	Movement     *MovementResponse `json:"movement,omitempty"`
	CurrentStock decimal.Decimal   `json:"current_stock"`
}

// MovementResponse one stock register row.
type MovementResponse struct {
	ID           string          `json:"id"`
	StockItemID  string          `json:"stock_item_id"`
	RefType      string          `json:"ref_type"`
	RefID        string          `json:"ref_id,omitempty"`
	MovementDate time.Time       `json:"movement_date"`
	MovementType string          `json:"movement_type"`
	Quantity     decimal.Decimal `json:"qty"`
	Rate         decimal.Decimal `json:"rate"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceQty   decimal.Decimal `json:"balance_qty"`
	Remarks      string          `json:"remarks,omitempty"`
}

// StockRegisterResponse the item's movement history plus the cached balance.
type StockRegisterResponse struct {
	Item      StockItemResponse  `json:"item"`
	Movements []MovementResponse `json:"movements"`
}

// BulkImportRequest body for POST /api/stocks/bulk/import.
type BulkImportRequest struct {
	Items []CreateStockItemRequest `json:"items" validate:"required"`
}

// BulkImportResponse per-row outcome: the import continues past row failures
// and reports up to 10 sample errors.
type BulkImportResponse struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}
