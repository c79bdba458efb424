package bills

import (
	"context"
	"fmt"

	"github.com/khatapro/khata-api/internal/domain"
	"github.com/khatapro/khata-api/internal/domain/repository"
)

// PrintUseCase renders bills for download.
type PrintUseCase struct {
	billRepo  repository.BillRepository
	firmRepo  repository.FirmRepository
	partyRepo repository.PartyRepository
	gen       PDFGenerator
}

// NewPrintUseCase wires the print flow.
func NewPrintUseCase(
	billRepo repository.BillRepository,
	firmRepo repository.FirmRepository,
	partyRepo repository.PartyRepository,
	gen PDFGenerator,
) *PrintUseCase {
	return &PrintUseCase{billRepo: billRepo, firmRepo: firmRepo, partyRepo: partyRepo, gen: gen}
}

// RenderBillPDF returns the bill's PDF bytes and a download filename.
// Cancelled bills still render, watermarked by the generator.
func (uc *PrintUseCase) RenderBillPDF(ctx context.Context, firmID, billID string) ([]byte, string, error) {
	bill, err := uc.billRepo.GetByID(billID)
	if err != nil {
		return nil, "", err
	}
	if bill == nil {
		return nil, "", domain.ErrNotFound
	}
	if bill.FirmID != firmID {
		return nil, "", domain.ErrForbidden
	}

	firm, err := uc.firmRepo.GetByID(bill.FirmID)
	if err != nil {
		return nil, "", err
	}
	if firm == nil {
		return nil, "", domain.ErrNotFound
	}
	party, err := uc.partyRepo.GetByID(bill.PartyID)
	if err != nil {
		return nil, "", err
	}
	if party == nil {
		return nil, "", domain.ErrNotFound
	}
	items, err := uc.billRepo.GetItems(bill.ID)
	if err != nil {
		return nil, "", err
	}

	data, err := uc.gen.GenerateBillPDF(ctx, bill, firm, party, items)
	if err != nil {
		return nil, "", fmt.Errorf("render bill %s: %w", bill.BillNo, err)
	}
	return data, bill.BillNo + ".pdf", nil
}
