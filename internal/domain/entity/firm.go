package entity

import "time"

// Firm represents an organization/tenant of the system. Every query is scoped to one firm.
type Firm struct {
	ID        string
	Name      string
	GSTIN     string // 15-char GST identification number; empty for unregistered firms
	StateCode string // two-digit GST state code, drives CGST/SGST vs IGST split
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
