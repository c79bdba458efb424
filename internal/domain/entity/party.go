package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Party types.
const (
	PartyTypeCustomer = "CUSTOMER"
	PartyTypeSupplier = "SUPPLIER"
	PartyTypeBoth     = "BOTH"
)

// Party represents a customer or supplier of the firm.
type Party struct {
	ID             string
	FirmID         string
	Name           string
	PartyType      string // CUSTOMER, SUPPLIER, BOTH
	GSTIN          string // empty for unregistered (B2C) parties
	StateCode      string // two-digit GST state code
	Phone          string
	Email          string
	Address        string
	OpeningBalance decimal.Decimal // positive = party owes the firm (Dr)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
