package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartyRequest body for POST /api/parties.
type CreatePartyRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	PartyType      string          `json:"party_type" validate:"required"`
	GSTIN          string          `json:"gstin"`
	StateCode      string          `json:"state_code"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Address        string          `json:"address"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// UpdatePartyRequest partial update for a party.
type UpdatePartyRequest struct {
	Name      *string `json:"name"`
	PartyType *string `json:"party_type"`
	GSTIN     *string `json:"gstin"`
	StateCode *string `json:"state_code"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
}

// PartyResponse party output.
type PartyResponse struct {
	ID             string          `json:"id"`
	FirmID         string          `json:"firm_id"`
	Name           string          `json:"name"`
	PartyType      string          `json:"party_type"`
	GSTIN          string          `json:"gstin,omitempty"`
	StateCode      string          `json:"state_code,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Email          string          `json:"email,omitempty"`
	Address        string          `json:"address,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PartyListResponse paginated party list.
type PartyListResponse struct {
	Items []PartyResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// LedgerLineDTO one statement row with the running balance after it.
type LedgerLineDTO struct {
	EntryDate   time.Time       `json:"entry_date"`
	AccountName string          `json:"account_name"`
	Reference   string          `json:"reference,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	BalanceType string          `json:"balance_type"` // Dr | Cr
}

// PartyLedgerResponse statement of one party's account.
type PartyLedgerResponse struct {
	PartyID        string          `json:"party_id"`
	PartyName      string          `json:"party_name"`
	Lines          []LedgerLineDTO `json:"lines"`
	TotalDebit     decimal.Decimal `json:"total_debit"`
	TotalCredit    decimal.Decimal `json:"total_credit"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	BalanceType    string          `json:"balance_type"`
}
