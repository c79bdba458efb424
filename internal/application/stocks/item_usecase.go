package stocks

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/domain"
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const bulkImportErrorSamples = 10 // error messages returned per bulk import

// StockItemUseCase CRUD for stock items. current_stock only moves through
// the register: creation posts an OPENING movement, everything after that
// goes through PostMovementUseCase.
type StockItemUseCase struct {
	txRunner TxRunner
	itemRepo repository.StockItemRepository
	movRepo  repository.StockMovementRepository
	poster   *PostMovementUseCase
}

// NewStockItemUseCase builds the use case.
func NewStockItemUseCase(
	txRunner TxRunner,
	itemRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
	poster *PostMovementUseCase,
) *StockItemUseCase {
	return &StockItemUseCase{txRunner: txRunner, itemRepo: itemRepo, movRepo: movRepo, poster: poster}
}

// Create registers a stock item; an opening_stock above zero writes the
// OPENING register row in the same transaction.
func (uc *StockItemUseCase) Create(ctx context.Context, firmID, userID string, in dto.CreateStockItemRequest) (*dto.StockItemResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.OpeningStock.LessThan(decimal.Zero) || in.PurchaseRate.LessThan(decimal.Zero) || in.SaleRate.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.GSTRate.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Code != "" {
		existing, _ := uc.itemRepo.GetByFirmAndCode(firmID, in.Code)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	unit := in.Unit
	if unit == "" {
		unit = "PCS"
	}
	now := time.Now()
	item := &entity.StockItem{
		ID:           uuid.New().String(),
		FirmID:       firmID,
		Name:         in.Name,
		Code:         in.Code,
		HSNCode:      in.HSNCode,
		Unit:         unit,
		Category:     in.Category,
		OpeningStock: in.OpeningStock,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
		PurchaseRate: in.PurchaseRate,
		SaleRate:     in.SaleRate,
		GSTRate:      in.GSTRate,
		CurrentStock: decimal.Zero,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
		_ repository.LedgerRepository,
	) error {
		if err := itemRepo.Create(item); err != nil {
			return err
		}
		if !in.OpeningStock.GreaterThan(decimal.Zero) {
			return nil
		}
		_, err := uc.poster.postLocked(movRepo, itemRepo, item, PostInput{
			FirmID:       firmID,
			UserID:       userID,
			StockItemID:  item.ID,
			MovementType: entity.MovementTypeIN,
			RefType:      entity.RefTypeOpening,
			Quantity:     in.OpeningStock,
			Rate:         in.PurchaseRate,
			Remarks:      "opening stock",
			When:         now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return toStockItemResponse(item), nil
}

// GetByID fetches one item, enforcing firm ownership.
func (uc *StockItemUseCase) GetByID(firmID, id string) (*dto.StockItemResponse, error) {
	item, err := uc.getOwned(firmID, id)
	if err != nil {
		return nil, err
	}
	return toStockItemResponse(item), nil
}

// Update edits item master fields; current_stock is untouchable here.
func (uc *StockItemUseCase) Update(firmID, id string, in dto.UpdateStockItemRequest) (*dto.StockItemResponse, error) {
	item, err := uc.getOwned(firmID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
	}
	if in.Code != nil && *in.Code != item.Code {
		if *in.Code != "" {
			existing, _ := uc.itemRepo.GetByFirmAndCode(firmID, *in.Code)
			if existing != nil && existing.ID != id {
				return nil, domain.ErrDuplicate
			}
		}
		item.Code = *in.Code
	}
	if in.HSNCode != nil {
		item.HSNCode = *in.HSNCode
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.MinStock != nil {
		item.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		item.MaxStock = *in.MaxStock
	}
	if in.PurchaseRate != nil {
		if in.PurchaseRate.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item.PurchaseRate = *in.PurchaseRate
	}
	if in.SaleRate != nil {
		if in.SaleRate.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item.SaleRate = *in.SaleRate
	}
	if in.GSTRate != nil {
		if in.GSTRate.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item.GSTRate = *in.GSTRate
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return toStockItemResponse(item), nil
}

// Delete removes an item that has no movements beyond its OPENING row;
// items with history are deactivated instead so the register stays intact.
func (uc *StockItemUseCase) Delete(firmID, id string) (deleted bool, err error) {
	if _, err := uc.getOwned(firmID, id); err != nil {
		return false, err
	}
	count, err := uc.movRepo.CountNonOpening(id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		if err := uc.itemRepo.SetActive(id, false); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := uc.itemRepo.Delete(id); err != nil {
		return false, err
	}
	return true, nil
}

// List pages through the firm's items, optionally by category.
func (uc *StockItemUseCase) List(firmID, category string, includeInactive bool, limit, offset int) (*dto.StockItemListResponse, error) {
	list, err := uc.itemRepo.ListByFirm(firmID, category, includeInactive, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toStockItemResponse(it))
	}
	return &dto.StockItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Search finds items by name or code prefix.
func (uc *StockItemUseCase) Search(firmID, query string, limit int) ([]dto.StockItemResponse, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.itemRepo.Search(firmID, query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *toStockItemResponse(it))
	}
	return out, nil
}

// GetRegister returns the item's movement history with the running balance
// each row carried at posting time.
func (uc *StockItemUseCase) GetRegister(firmID, id string, from, to *time.Time, limit, offset int) (*dto.StockRegisterResponse, error) {
	item, err := uc.getOwned(firmID, id)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movRepo.ListByItem(id, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, *ToMovementResponse(m))
	}
	return &dto.StockRegisterResponse{
		Item:      *toStockItemResponse(item),
		Movements: out,
	}, nil
}

// BulkImport creates items row by row. A failing row is counted and skipped,
// never aborting the rest; up to 10 row errors come back as samples.
func (uc *StockItemUseCase) BulkImport(ctx context.Context, firmID, userID string, in dto.BulkImportRequest) (*dto.BulkImportResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	resp := &dto.BulkImportResponse{}
	for i, row := range in.Items {
		if _, err := uc.Create(ctx, firmID, userID, row); err != nil {
			resp.Failed++
			if len(resp.Errors) < bulkImportErrorSamples {
				resp.Errors = append(resp.Errors, fmt.Sprintf("row %d (%s): %v", i+1, row.Name, err))
			}
			continue
		}
		resp.Imported++
	}
	return resp, nil
}

// Export returns every item of the firm, inactive ones included.
func (uc *StockItemUseCase) Export(firmID string) ([]dto.StockItemResponse, error) {
	list, err := uc.itemRepo.ListByFirm(firmID, "", true, exportPageSize, 0)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *toStockItemResponse(it))
	}
	return out, nil
}

const exportPageSize = 10000

// ExportCSV renders the export as CSV with a header row.
func (uc *StockItemUseCase) ExportCSV(firmID string) ([]byte, error) {
	items, err := uc.Export(firmID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"item_name", "item_code", "hsn_code", "unit", "category", "current_stock", "min_stock", "max_stock", "purchase_rate", "sale_rate", "gst_rate", "active"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, it := range items {
		rec := []string{
			it.Name,
			it.Code,
			it.HSNCode,
			it.Unit,
			it.Category,
			it.CurrentStock.String(),
			it.MinStock.String(),
			it.MaxStock.String(),
			it.PurchaseRate.String(),
			it.SaleRate.String(),
			it.GSTRate.String(),
			fmt.Sprintf("%t", it.Active),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (uc *StockItemUseCase) getOwned(firmID, id string) (*entity.StockItem, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.FirmID != firmID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func toStockItemResponse(it *entity.StockItem) *dto.StockItemResponse {
	if it == nil {
		return nil
	}
	return &dto.StockItemResponse{
		ID:           it.ID,
		FirmID:       it.FirmID,
		Name:         it.Name,
		Code:         it.Code,
		HSNCode:      it.HSNCode,
		Unit:         it.Unit,
		Category:     it.Category,
		OpeningStock: it.OpeningStock,
		MinStock:     it.MinStock,
		MaxStock:     it.MaxStock,
		PurchaseRate: it.PurchaseRate,
		SaleRate:     it.SaleRate,
		GSTRate:      it.GSTRate,
		CurrentStock: it.CurrentStock,
		Active:       it.Active,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}
