package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem represents an inventory item. CurrentStock is a cached denormalization
// of the movement ledger: it must always equal the balance_qty of the item's most
// recent StockMovement, and the two are updated inside one transaction.
type StockItem struct {
	ID           string
	FirmID       string
	Name         string
	Code         string // unique per firm when non-empty
	HSNCode      string
	Unit         string // PCS, KG, LTR, ...
	Category     string
	OpeningStock decimal.Decimal
	MinStock     decimal.Decimal
	MaxStock     decimal.Decimal
	PurchaseRate decimal.Decimal
	SaleRate     decimal.Decimal
	GSTRate      decimal.Decimal // percent: 0, 5, 12, 18, 28
	CurrentStock decimal.Decimal
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
