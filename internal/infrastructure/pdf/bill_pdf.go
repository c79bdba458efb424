// Package pdf renders the printable GST tax invoice / purchase bill.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Firm name + GSTIN  │  TAX INVOICE + No + Date      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SELLER: address / phone / email                            │
//	│  BUYER: party name + GSTIN + contact                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Item | HSN | Qty | Rate | GST% | Amount             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Taxable / CGST / SGST / IGST / NET TOTAL           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: outstanding + legal line                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/khatapro/khata-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 161}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Indian digit grouping (1,00,000) for all printed amounts.
var inr = message.NewPrinter(language.MustParse("en-IN"))

// BillPDFGenerator renders bills with Maroto v2.
type BillPDFGenerator struct{}

// NewBillPDFGenerator builds the generator.
func NewBillPDFGenerator() *BillPDFGenerator { return &BillPDFGenerator{} }

// GenerateBillPDF renders the bill and returns its bytes.
func (g *BillPDFGenerator) GenerateBillPDF(
	_ context.Context,
	bill *entity.Bill,
	firm *entity.Firm,
	party *entity.Party,
	items []*entity.BillItem,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(billTitle(bill)+" "+bill.BillNo, true).
		WithAuthor(firm.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(bill, firm))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sellerRow(firm))
	m.AddRows(buyerRow(bill, party))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(bill))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(bill)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func billTitle(bill *entity.Bill) string {
	if bill.BillType == entity.BillTypePurchase {
		return "PURCHASE BILL"
	}
	return "TAX INVOICE"
}

// headerRow: firm name + GSTIN (left) and bill number + date (right).
func headerRow(bill *entity.Bill, firm *entity.Firm) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(firm.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("GSTIN: "+nonEmpty(firm.GSTIN, "UNREGISTERED"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(billTitle(bill), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(bill.BillNo, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+bill.BillDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func sellerRow(firm *entity.Firm) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("SELLER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Address: %s   |   Phone: %s   |   Email: %s",
				nonEmpty(firm.Address, "-"),
				nonEmpty(firm.Phone, "-"),
				nonEmpty(firm.Email, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func buyerRow(bill *entity.Bill, party *entity.Party) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("BUYER / PARTY", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(bill.PartyName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("GSTIN: %s   |   Phone: %s   |   State: %s",
				nonEmpty(bill.GSTIN, "UNREGISTERED"),
				nonEmpty(party.Phone, "-"),
				nonEmpty(party.StateCode, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Item", 4, align.Left),
		h("HSN", 2, align.Center),
		h("Qty", 1, align.Right),
		h("Rate", 2, align.Right),
		h("GST%", 1, align.Center),
		h("Amount", 2, align.Right),
	)
}

func tableItemRows(items []*entity.BillItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(it.HSNCode, "-"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(2).Add(text.New(
				formatAmount(it.Rate),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				it.GSTRate.StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				formatAmount(it.Amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: right-aligned totals block. Only the tax lines that apply to the
// bill (CGST/SGST intra-state, IGST inter-state) are printed.
func totalsRow(bill *entity.Bill) core.Row {
	type totalLine struct {
		label string
		value decimal.Decimal
	}
	lines := []totalLine{{"Taxable Value:", bill.GrossTotal}}
	if bill.IGST.IsPositive() {
		lines = append(lines, totalLine{"IGST:", bill.IGST})
	} else if bill.CGST.IsPositive() || bill.SGST.IsPositive() {
		lines = append(lines,
			totalLine{"CGST:", bill.CGST},
			totalLine{"SGST:", bill.SGST},
		)
	}

	labels := make([]core.Component, 0, len(lines)+1)
	values := make([]core.Component, 0, len(lines)+1)
	for i, l := range lines {
		top := float64(i * 5)
		labels = append(labels, text.New(l.label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		}))
		values = append(values, text.New("Rs. "+formatAmount(l.value), props.Text{
			Size: 9, Align: align.Right, Right: 1, Top: top,
		}))
	}
	grandTop := float64(len(lines)*5 + 2)
	labels = append(labels, text.New("NET TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 2, Top: grandTop,
	}))
	values = append(values, text.New("Rs. "+formatAmount(bill.NetTotal), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 1, Top: grandTop,
	}))

	return row.New(30).Add(
		col.New(4),
		col.New(4).Add(labels...),
		col.New(4).Add(values...),
	)
}

func footerRows(bill *entity.Bill) []core.Row {
	rows := []core.Row{}
	if out := bill.Outstanding(); out.IsPositive() {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Balance due: Rs. "+formatAmount(out), props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1,
			}),
		)))
	}
	if bill.Status == entity.BillStatusCancelled {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("*** CANCELLED ***", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 1,
			}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"This is a computer generated document. "+
				"Goods once sold will not be taken back. E. & O.E.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatAmount prints with Indian digit grouping and two decimals,
// e.g. 123456.5 -> "1,23,456.50".
func formatAmount(d decimal.Decimal) string {
	f, _ := d.Float64()
	return inr.Sprintf("%v", number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
