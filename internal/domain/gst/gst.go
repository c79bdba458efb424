// Package gst holds the GST return arithmetic: filing period bounds, the
// B2B/B2C-Large/B2C-Small invoice classification and the intra/inter-state
// tax split. Pure domain code, shared by the report use cases.
package gst

import (
	"time"

	"github.com/khatapro/khata-api/internal/domain"
	"github.com/shopspring/decimal"
)

// B2CLargeThreshold is the statutory invoice-value cutoff separating B2C-Large
// (itemized in GSTR-1) from B2C-Small (aggregated by rate). Fixed by the GST
// regime, not configurable.
var B2CLargeThreshold = decimal.NewFromInt(250000)

// Invoice classification buckets for GSTR-1.
const (
	BucketB2B  = "b2b"  // registered buyer (GSTIN present)
	BucketB2CL = "b2cl" // unregistered, invoice value above threshold
	BucketB2CS = "b2cs" // unregistered, at or below threshold
)

// Classify places a bill into its GSTR-1 bucket from the buyer GSTIN and the
// invoice net total.
func Classify(gstin string, netTotal decimal.Decimal) string {
	if gstin != "" {
		return BucketB2B
	}
	if netTotal.GreaterThan(B2CLargeThreshold) {
		return BucketB2CL
	}
	return BucketB2CS
}

// Period returns the inclusive [from, to] bounds of a GSTR filing period.
// to is the last day of the month (AddDate normalizes the day-of-month).
func Period(month, year int) (from, to time.Time, err error) {
	if month < 1 || month > 12 || year < 2017 {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	from = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, -1)
	return from, to, nil
}

// SplitTax divides a tax amount between CGST/SGST (intra-state supply) and
// IGST (inter-state), comparing the buyer's state code against the firm's.
// An empty buyer state counts as intra-state, matching the treatment of
// unregistered walk-in customers.
func SplitTax(total decimal.Decimal, firmState, partyState string) (cgst, sgst, igst decimal.Decimal) {
	if partyState != "" && partyState != firmState {
		return decimal.Zero, decimal.Zero, total
	}
	half := total.Div(decimal.NewFromInt(2))
	return half, half, decimal.Zero
}
