package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement directions.
const (
	MovementTypeIN  = "IN"
	MovementTypeOUT = "OUT"
)

// Movement reference types (what caused the movement).
const (
	RefTypeOpening    = "OPENING"
	RefTypePurchase   = "PURCHASE"
	RefTypeSale       = "SALE"
	RefTypeAdjustment = "ADJUSTMENT"
)

// StockMovement is one append-only row in an item's movement register.
// BalanceQty carries the item's running stock after this movement; it is computed
// under a row lock on the item so the register never goes negative.
type StockMovement struct {
	ID           string
	FirmID       string
	StockItemID  string
	RefType      string // OPENING, PURCHASE, SALE, ADJUSTMENT
	RefID        string // bill id for PURCHASE/SALE, empty otherwise
	MovementDate time.Time
	MovementType string          // IN, OUT
	Quantity     decimal.Decimal // always positive; direction is MovementType
	Rate         decimal.Decimal
	Amount       decimal.Decimal // Quantity * Rate
	BalanceQty   decimal.Decimal // running stock after this movement
	Remarks      string
	CreatedAt    time.Time
	CreatedBy    string // UserID
}
