// Package reports contains the read-only reporting use cases: bill and stock
// aggregates, party outstanding/aging, the GST returns and the financial
// statements. All heavy lifting happens in SQL behind ReportsRepository;
// this layer shapes rows into response DTOs.
package reports

import (
	"context"
	"time"

	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/domain"
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/repository"
)

// Config reporting parameters from the environment.
type Config struct {
	FilingDueDay int // day of month GST returns fall due
}

// ReportsUseCase the aggregation layer facade.
type ReportsUseCase struct {
	repo repository.ReportsRepository
	cfg  Config
}

// NewReportsUseCase builds the use case.
func NewReportsUseCase(repo repository.ReportsRepository, cfg Config) *ReportsUseCase {
	return &ReportsUseCase{repo: repo, cfg: cfg}
}

func validBillType(billType string) error {
	if billType != entity.BillTypeSales && billType != entity.BillTypePurchase {
		return domain.ErrInvalidInput
	}
	return nil
}

// BillSummary single-record totals for sales or purchase over the range.
func (uc *ReportsUseCase) BillSummary(ctx context.Context, firmID, billType string, r repository.DateRange) (*dto.BillSummaryResponse, error) {
	if err := validBillType(billType); err != nil {
		return nil, err
	}
	s, err := uc.repo.GetBillSummary(ctx, firmID, billType, r)
	if err != nil {
		return nil, err
	}
	return &dto.BillSummaryResponse{
		TotalBills:       s.BillCount,
		GrossTotal:       s.GrossTotal,
		CGST:             s.CGST,
		SGST:             s.SGST,
		IGST:             s.IGST,
		NetTotal:         s.NetTotal,
		TotalPaid:        s.PaidAmount,
		TotalOutstanding: s.Outstanding,
	}, nil
}

// BillsByParty party-wise totals, largest first.
func (uc *ReportsUseCase) BillsByParty(ctx context.Context, firmID, billType string, r repository.DateRange) ([]dto.PartyTotalDTO, error) {
	if err := validBillType(billType); err != nil {
		return nil, err
	}
	rows, err := uc.repo.GetBillsByParty(ctx, firmID, billType, r)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartyTotalDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.PartyTotalDTO{
			PartyID:     row.PartyID,
			PartyName:   row.PartyName,
			TotalBills:  row.BillCount,
			NetTotal:    row.NetTotal,
			TotalPaid:   row.PaidAmount,
			Outstanding: row.Outstanding,
		})
	}
	return out, nil
}

// BillsByItem item-wise billed quantity and amount.
func (uc *ReportsUseCase) BillsByItem(ctx context.Context, firmID, billType string, r repository.DateRange) ([]dto.ItemTotalDTO, error) {
	if err := validBillType(billType); err != nil {
		return nil, err
	}
	rows, err := uc.repo.GetBillsByItem(ctx, firmID, billType, r)
	if err != nil {
		return nil, err
	}
	return toItemTotals(rows), nil
}

// BillsByMonth monthly totals for one calendar year.
func (uc *ReportsUseCase) BillsByMonth(ctx context.Context, firmID, billType string, year int) ([]dto.MonthTotalDTO, error) {
	if err := validBillType(billType); err != nil {
		return nil, err
	}
	if year < 2000 {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.repo.GetBillsByMonth(ctx, firmID, billType, year)
	if err != nil {
		return nil, err
	}
	return toMonthTotals(rows), nil
}

// OutstandingBills unpaid bills with age, receivables or payables by type.
func (uc *ReportsUseCase) OutstandingBills(ctx context.Context, firmID, billType string) ([]dto.OutstandingBillDTO, error) {
	if err := validBillType(billType); err != nil {
		return nil, err
	}
	rows, err := uc.repo.GetOutstandingBills(ctx, firmID, billType)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OutstandingBillDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.OutstandingBillDTO{
			BillID:      row.BillID,
			BillNo:      row.BillNo,
			BillDate:    row.BillDate,
			DueDate:     row.DueDate,
			PartyID:     row.PartyID,
			PartyName:   row.PartyName,
			NetTotal:    row.NetTotal,
			PaidAmount:  row.PaidAmount,
			Outstanding: row.Outstanding,
			AgeDays:     row.AgeDays,
		})
	}
	return out, nil
}

// StockSummary headline inventory numbers.
func (uc *ReportsUseCase) StockSummary(ctx context.Context, firmID string) (*dto.StockSummaryResponse, error) {
	s, err := uc.repo.GetStockSummary(ctx, firmID)
	if err != nil {
		return nil, err
	}
	return &dto.StockSummaryResponse{
		TotalItems:      s.ItemCount,
		ActiveItems:     s.ActiveCount,
		TotalQty:        s.TotalQty,
		PurchaseValue:   s.PurchaseValue,
		SaleValue:       s.SaleValue,
		LowStockItems:   s.LowStockCount,
		OutOfStockItems: s.OutOfStockCount,
	}, nil
}

// StockValuation per-item value at purchase and sale rates.
func (uc *ReportsUseCase) StockValuation(ctx context.Context, firmID string) ([]dto.StockValuationDTO, error) {
	rows, err := uc.repo.GetStockValuation(ctx, firmID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockValuationDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.StockValuationDTO{
			StockItemID:   row.StockItemID,
			ItemName:      row.Name,
			Code:          row.Code,
			Unit:          row.Unit,
			CurrentStock:  row.CurrentStock,
			PurchaseRate:  row.PurchaseRate,
			SaleRate:      row.SaleRate,
			PurchaseValue: row.PurchaseValue,
			SaleValue:     row.SaleValue,
		})
	}
	return out, nil
}

// LowStock items at or below min_stock.
func (uc *ReportsUseCase) LowStock(ctx context.Context, firmID string) ([]dto.LowStockDTO, error) {
	rows, err := uc.repo.GetLowStock(ctx, firmID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.LowStockDTO{
			StockItemID:  row.StockItemID,
			ItemName:     row.Name,
			Code:         row.Code,
			Unit:         row.Unit,
			CurrentStock: row.CurrentStock,
			MinStock:     row.MinStock,
			Shortfall:    row.Shortfall,
		})
	}
	return out, nil
}

// StockAging items by days since their last outward movement.
func (uc *ReportsUseCase) StockAging(ctx context.Context, firmID string) ([]dto.StockAgingDTO, error) {
	rows, err := uc.repo.GetStockAging(ctx, firmID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAgingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.StockAgingDTO{
			StockItemID:  row.StockItemID,
			ItemName:     row.Name,
			CurrentStock: row.CurrentStock,
			LastOutDate:  row.LastOutDate,
			LastInDate:   row.LastInDate,
			IdleDays:     row.IdleDays,
		})
	}
	return out, nil
}

// PartyOutstanding receivables (SALES) or payables (PURCHASE) per party.
func (uc *ReportsUseCase) PartyOutstanding(ctx context.Context, firmID, billType string) ([]dto.PartyOutstandingDTO, error) {
	if err := validBillType(billType); err != nil {
		return nil, err
	}
	rows, err := uc.repo.GetPartyOutstanding(ctx, firmID, billType)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartyOutstandingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.PartyOutstandingDTO{
			PartyID:     row.PartyID,
			PartyName:   row.PartyName,
			GSTIN:       row.GSTIN,
			Phone:       row.Phone,
			TotalBills:  row.BillCount,
			Outstanding: row.Outstanding,
		})
	}
	return out, nil
}

// PartyAging outstanding bucketed by bill age (0-30/31-60/61-90/90+).
func (uc *ReportsUseCase) PartyAging(ctx context.Context, firmID, billType string, asOf time.Time) ([]dto.PartyAgingDTO, error) {
	if err := validBillType(billType); err != nil {
		return nil, err
	}
	rows, err := uc.repo.GetPartyAging(ctx, firmID, billType, asOf)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartyAgingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.PartyAgingDTO{
			PartyID:    row.PartyID,
			PartyName:  row.PartyName,
			Current:    row.Current,
			Days31to60: row.Days31to60,
			Days61to90: row.Days61to90,
			Over90:     row.Over90,
			Total:      row.Total,
		})
	}
	return out, nil
}

func toItemTotals(rows []repository.ItemBillTotal) []dto.ItemTotalDTO {
	out := make([]dto.ItemTotalDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.ItemTotalDTO{
			StockItemID: row.StockItemID,
			ItemName:    row.ItemName,
			HSNCode:     row.HSNCode,
			Quantity:    row.Quantity,
			Amount:      row.Amount,
		})
	}
	return out
}

func toMonthTotals(rows []repository.MonthBillTotal) []dto.MonthTotalDTO {
	out := make([]dto.MonthTotalDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.MonthTotalDTO{
			Year:       row.Year,
			Month:      row.Month,
			TotalBills: row.BillCount,
			NetTotal:   row.NetTotal,
			TaxTotal:   row.TaxTotal,
		})
	}
	return out
}
