package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill types.
const (
	BillTypeSales    = "SALES"
	BillTypePurchase = "PURCHASE"
)

// Bill statuses. CANCELLED bills are excluded from every financial aggregate.
const (
	BillStatusDraft     = "DRAFT"
	BillStatusApproved  = "APPROVED"
	BillStatusCancelled = "CANCELLED"
)

// Bill represents a sales or purchase bill header.
// NetTotal - PaidAmount is the outstanding balance used by aging and
// debtor/creditor reports.
type Bill struct {
	ID         string
	FirmID     string
	BillType   string // SALES, PURCHASE
	BillNo     string
	BillDate   time.Time
	DueDate    *time.Time
	PartyID    string
	PartyName  string // denormalized for reporting; parties can be edited later
	GSTIN      string // party GSTIN at billing time; empty = B2C
	GrossTotal decimal.Decimal
	CGST       decimal.Decimal
	SGST       decimal.Decimal
	IGST       decimal.Decimal
	NetTotal   decimal.Decimal
	PaidAmount decimal.Decimal
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Outstanding returns the unpaid portion of the bill.
func (b *Bill) Outstanding() decimal.Decimal {
	return b.NetTotal.Sub(b.PaidAmount)
}

// BillItem is one line of a bill.
type BillItem struct {
	ID          string
	BillID      string
	StockItemID string
	Description string
	HSNCode     string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal // Quantity * Rate, before tax
	GSTRate     decimal.Decimal // percent
}
