// Package tally builds Tally-importable voucher XML from the ledger.
// The output is the Import Data envelope Tally ERP 9 / TallyPrime accept
// on Gateway of Tally > Import Data > Vouchers.
package tally

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/khatapro/khata-api/internal/domain/entity"
)

// DayBookExporter renders ledger entries as Tally journal vouchers.
type DayBookExporter struct{}

// NewDayBookExporter builds the exporter.
func NewDayBookExporter() *DayBookExporter { return &DayBookExporter{} }

// voucher is one journal voucher: the ledger legs sharing a date and reference.
type voucher struct {
	date      string // YYYYMMDD
	reference string
	entries   []*entity.LedgerEntry
}

// BuildDayBook groups entries into vouchers by (date, reference) and renders
// the envelope. Entries must arrive in (entry_date, seq) order so legs of one
// posting stay together.
func (e *DayBookExporter) BuildDayBook(firm *entity.Firm, entries []*entity.LedgerEntry) ([]byte, error) {
	vouchers := groupVouchers(entries)

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	envelope := doc.CreateElement("ENVELOPE")
	header := envelope.CreateElement("HEADER")
	header.CreateElement("TALLYREQUEST").SetText("Import Data")

	body := envelope.CreateElement("BODY")
	importData := body.CreateElement("IMPORTDATA")

	desc := importData.CreateElement("REQUESTDESC")
	desc.CreateElement("REPORTNAME").SetText("Vouchers")
	staticVars := desc.CreateElement("STATICVARIABLES")
	staticVars.CreateElement("SVCURRENTCOMPANY").SetText(firm.Name)

	reqData := importData.CreateElement("REQUESTDATA")
	for i, v := range vouchers {
		msg := reqData.CreateElement("TALLYMESSAGE")
		msg.CreateAttr("xmlns:UDF", "TallyUDF")

		vch := msg.CreateElement("VOUCHER")
		vch.CreateAttr("VCHTYPE", "Journal")
		vch.CreateAttr("ACTION", "Create")
		vch.CreateElement("DATE").SetText(v.date)
		vch.CreateElement("VOUCHERTYPENAME").SetText("Journal")
		vch.CreateElement("VOUCHERNUMBER").SetText(fmt.Sprintf("%d", i+1))
		vch.CreateElement("NARRATION").SetText(v.reference)

		for _, le := range v.entries {
			leg := vch.CreateElement("ALLLEDGERENTRIES.LIST")
			leg.CreateElement("LEDGERNAME").SetText(le.AccountName)
			// Tally convention: debits are deemed positive and carry a
			// negative amount, credits the opposite.
			if le.Debit.IsPositive() {
				leg.CreateElement("ISDEEMEDPOSITIVE").SetText("Yes")
				leg.CreateElement("AMOUNT").SetText(tallyAmount(le.Debit.Neg()))
			} else {
				leg.CreateElement("ISDEEMEDPOSITIVE").SetText("No")
				leg.CreateElement("AMOUNT").SetText(tallyAmount(le.Credit))
			}
		}
	}

	doc.Indent(1)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("tally: serialize envelope: %w", err)
	}
	return out, nil
}

func groupVouchers(entries []*entity.LedgerEntry) []voucher {
	var vouchers []voucher
	for _, le := range entries {
		date := le.EntryDate.Format("20060102")
		n := len(vouchers)
		if n > 0 && vouchers[n-1].date == date && vouchers[n-1].reference == le.Reference {
			vouchers[n-1].entries = append(vouchers[n-1].entries, le)
			continue
		}
		vouchers = append(vouchers, voucher{date: date, reference: le.Reference, entries: []*entity.LedgerEntry{le}})
	}
	return vouchers
}

func tallyAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
