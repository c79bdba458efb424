package tally

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khatapro/khata-api/internal/domain/entity"
)

func entry(seq int64, day int, account, reference string, debit, credit int64) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:          "e",
		Seq:         seq,
		FirmID:      "f1",
		AccountName: account,
		AccountType: entity.AccountIncome,
		EntryDate:   time.Date(2025, 7, day, 0, 0, 0, 0, time.UTC),
		Debit:       decimal.NewFromInt(debit),
		Credit:      decimal.NewFromInt(credit),
		Reference:   reference,
	}
}

func TestBuildDayBook_GroupsLegsByDateAndReference(t *testing.T) {
	firm := &entity.Firm{Name: "Sharma Traders"}
	entries := []*entity.LedgerEntry{
		entry(1, 1, "Gupta Enterprises", "SAL-1", 1180, 0),
		entry(2, 1, "SALES", "SAL-1", 0, 1000),
		entry(3, 1, "GST_OUTPUT", "SAL-1", 0, 180),
		entry(4, 2, "PURCHASE", "PUR-7", 500, 0),
		entry(5, 2, "Mehta Supplies", "PUR-7", 0, 500),
	}

	out, err := NewDayBookExporter().BuildDayBook(firm, entries)
	require.NoError(t, err)
	xml := string(out)

	assert.Contains(t, xml, "<TALLYREQUEST>Import Data</TALLYREQUEST>")
	assert.Contains(t, xml, "<SVCURRENTCOMPANY>Sharma Traders</SVCURRENTCOMPANY>")

	// one voucher per (date, reference) group
	assert.Equal(t, 2, strings.Count(xml, `VCHTYPE="Journal"`))
	assert.Equal(t, 2, strings.Count(xml, "<NARRATION>"))
	assert.Contains(t, xml, "<NARRATION>SAL-1</NARRATION>")
	assert.Contains(t, xml, "<NARRATION>PUR-7</NARRATION>")
	assert.Equal(t, 5, strings.Count(xml, "<ALLLEDGERENTRIES.LIST>"))
	assert.Contains(t, xml, "<DATE>20250701</DATE>")
	assert.Contains(t, xml, "<DATE>20250702</DATE>")
}

func TestBuildDayBook_SignConvention(t *testing.T) {
	firm := &entity.Firm{Name: "Sharma Traders"}
	entries := []*entity.LedgerEntry{
		entry(1, 5, "Gupta Enterprises", "SAL-9", 1180, 0),
		entry(2, 5, "SALES", "SAL-9", 0, 1180),
	}

	out, err := NewDayBookExporter().BuildDayBook(firm, entries)
	require.NoError(t, err)
	xml := string(out)

	// debit leg: deemed positive, negative amount
	assert.Contains(t, xml, "<ISDEEMEDPOSITIVE>Yes</ISDEEMEDPOSITIVE>")
	assert.Contains(t, xml, "<AMOUNT>-1180.00</AMOUNT>")
	// credit leg: not deemed positive, positive amount
	assert.Contains(t, xml, "<ISDEEMEDPOSITIVE>No</ISDEEMEDPOSITIVE>")
	assert.Contains(t, xml, "<AMOUNT>1180.00</AMOUNT>")
}

func TestBuildDayBook_EmptyLedgerStillValidEnvelope(t *testing.T) {
	out, err := NewDayBookExporter().BuildDayBook(&entity.Firm{Name: "Empty & Co"}, nil)
	require.NoError(t, err)
	xml := string(out)

	assert.Contains(t, xml, "<REQUESTDATA/>")
	// firm name must be XML-escaped
	assert.Contains(t, xml, "Empty &amp; Co")
}
