package reports

import (
	"context"
	"fmt"

	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/gst"
	"github.com/khatapro/khata-api/internal/domain/repository"
)

// GSTSummary output tax vs input tax for the range.
func (uc *ReportsUseCase) GSTSummary(ctx context.Context, firmID string, r repository.DateRange) (*dto.GSTSummaryResponse, error) {
	sales, err := uc.repo.GetBillSummary(ctx, firmID, entity.BillTypeSales, r)
	if err != nil {
		return nil, err
	}
	purchase, err := uc.repo.GetBillSummary(ctx, firmID, entity.BillTypePurchase, r)
	if err != nil {
		return nil, err
	}
	output := sales.CGST.Add(sales.SGST).Add(sales.IGST)
	input := purchase.CGST.Add(purchase.SGST).Add(purchase.IGST)
	return &dto.GSTSummaryResponse{
		OutputCGST:   sales.CGST,
		OutputSGST:   sales.SGST,
		OutputIGST:   sales.IGST,
		InputCGST:    purchase.CGST,
		InputSGST:    purchase.SGST,
		InputIGST:    purchase.IGST,
		NetPayable:   output.Sub(input),
		FilingDueDay: uc.cfg.FilingDueDay,
	}, nil
}

// GSTRegister the per-bill tax register for sales or purchases.
func (uc *ReportsUseCase) GSTRegister(ctx context.Context, firmID, billType string, r repository.DateRange) ([]dto.GSTBillDTO, error) {
	if err := validBillType(billType); err != nil {
		return nil, err
	}
	rows, err := uc.repo.ListGSTBills(ctx, firmID, billType, r)
	if err != nil {
		return nil, err
	}
	return toGSTBillDTOs(rows), nil
}

// GSTR1 builds the GSTR-1 return for one filing period: B2B and B2C-Large
// bills itemized, B2C-Small aggregated by GST rate.
func (uc *ReportsUseCase) GSTR1(ctx context.Context, firmID string, month, year int) (*dto.GSTR1Response, error) {
	from, to, err := gst.Period(month, year)
	if err != nil {
		return nil, err
	}
	r := repository.DateRange{From: &from, To: &to}

	rows, err := uc.repo.ListGSTBills(ctx, firmID, entity.BillTypeSales, r)
	if err != nil {
		return nil, err
	}
	b2b, b2cl := partitionGSTBills(rows)

	b2csRows, err := uc.repo.GetB2CSByRate(ctx, firmID, r)
	if err != nil {
		return nil, err
	}
	b2cs := make([]dto.B2CSRateDTO, 0, len(b2csRows))
	for _, row := range b2csRows {
		b2cs = append(b2cs, dto.B2CSRateDTO{
			GSTRate: row.GSTRate,
			Taxable: row.Taxable,
			CGST:    row.CGST,
			SGST:    row.SGST,
			IGST:    row.IGST,
		})
	}

	totals := dto.GSTR1TotalsDTO{InvoiceCount: len(rows)}
	for _, row := range rows {
		totals.Taxable = totals.Taxable.Add(row.Taxable)
		totals.CGST = totals.CGST.Add(row.CGST)
		totals.SGST = totals.SGST.Add(row.SGST)
		totals.IGST = totals.IGST.Add(row.IGST)
	}

	return &dto.GSTR1Response{
		Period:   fmt.Sprintf("%02d-%d", month, year),
		FromDate: from.Format("2006-01-02"),
		ToDate:   to.Format("2006-01-02"),
		B2B:      b2b,
		B2CL:     b2cl,
		B2CS:     b2cs,
		Totals:   totals,
	}, nil
}

// GSTR3B builds the GSTR-3B summary return for one filing period.
func (uc *ReportsUseCase) GSTR3B(ctx context.Context, firmID string, month, year int) (*dto.GSTR3BResponse, error) {
	from, to, err := gst.Period(month, year)
	if err != nil {
		return nil, err
	}
	r := repository.DateRange{From: &from, To: &to}

	sales, err := uc.repo.GetBillSummary(ctx, firmID, entity.BillTypeSales, r)
	if err != nil {
		return nil, err
	}
	purchase, err := uc.repo.GetBillSummary(ctx, firmID, entity.BillTypePurchase, r)
	if err != nil {
		return nil, err
	}
	output := sales.CGST.Add(sales.SGST).Add(sales.IGST)
	input := purchase.CGST.Add(purchase.SGST).Add(purchase.IGST)
	return &dto.GSTR3BResponse{
		Period:         fmt.Sprintf("%02d-%d", month, year),
		OutwardTaxable: sales.GrossTotal,
		OutputCGST:     sales.CGST,
		OutputSGST:     sales.SGST,
		OutputIGST:     sales.IGST,
		InwardTaxable:  purchase.GrossTotal,
		InputCGST:      purchase.CGST,
		InputSGST:      purchase.SGST,
		InputIGST:      purchase.IGST,
		NetPayable:     output.Sub(input),
	}, nil
}

// partitionGSTBills splits per-bill rows into the itemized GSTR-1 sections.
// B2C-Small rows are dropped here; they arrive pre-aggregated by rate.
func partitionGSTBills(rows []repository.GSTBillRow) (b2b, b2cl []dto.GSTBillDTO) {
	b2b = make([]dto.GSTBillDTO, 0)
	b2cl = make([]dto.GSTBillDTO, 0)
	for _, row := range rows {
		switch gst.Classify(row.GSTIN, row.NetTotal) {
		case gst.BucketB2B:
			b2b = append(b2b, toGSTBillDTO(row))
		case gst.BucketB2CL:
			b2cl = append(b2cl, toGSTBillDTO(row))
		}
	}
	return b2b, b2cl
}

func toGSTBillDTO(row repository.GSTBillRow) dto.GSTBillDTO {
	return dto.GSTBillDTO{
		BillID:    row.BillID,
		BillNo:    row.BillNo,
		BillDate:  row.BillDate,
		PartyName: row.PartyName,
		GSTIN:     row.GSTIN,
		Taxable:   row.Taxable,
		CGST:      row.CGST,
		SGST:      row.SGST,
		IGST:      row.IGST,
		NetTotal:  row.NetTotal,
	}
}

func toGSTBillDTOs(rows []repository.GSTBillRow) []dto.GSTBillDTO {
	out := make([]dto.GSTBillDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toGSTBillDTO(row))
	}
	return out
}
