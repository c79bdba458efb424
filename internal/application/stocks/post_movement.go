package stocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/domain"
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// PostMovementUseCase posts stock movements transactionally: the register row
// and the item's cached current_stock are written under one row lock
// (SELECT FOR UPDATE) so concurrent posts against the same item serialize and
// the balance never goes negative.
type PostMovementUseCase struct {
	txRunner TxRunner
	itemRepo repository.StockItemRepository
}

// NewPostMovementUseCase builds the use case.
func NewPostMovementUseCase(txRunner TxRunner, itemRepo repository.StockItemRepository) *PostMovementUseCase {
	return &PostMovementUseCase{txRunner: txRunner, itemRepo: itemRepo}
}

// PostMovement records a manual IN/OUT movement against an item.
// OUT beyond the current balance fails with ErrInsufficientStock and rolls back.
func (uc *PostMovementUseCase) PostMovement(ctx context.Context, firmID, userID, itemID string, in dto.PostMovementRequest) (*dto.MovementResponse, error) {
	if in.MovementType != entity.MovementTypeIN && in.MovementType != entity.MovementTypeOUT {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Rate.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.FirmID != firmID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	var mov *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
		_ repository.LedgerRepository,
	) error {
		var txErr error
		mov, txErr = uc.PostInTx(movRepo, itemRepo, PostInput{
			FirmID:       firmID,
			UserID:       userID,
			StockItemID:  itemID,
			MovementType: in.MovementType,
			RefType:      entity.RefTypeAdjustment,
			Quantity:     in.Quantity,
			Rate:         in.Rate,
			Remarks:      in.Remarks,
			When:         now,
		})
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(mov), nil
}

// AdjustStock sets the item's stock to an absolute quantity by synthesizing
// the IN/OUT delta. A zero delta posts nothing.
func (uc *PostMovementUseCase) AdjustStock(ctx context.Context, firmID, userID, itemID string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if in.NewQty.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.FirmID != firmID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	var mov *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
		_ repository.LedgerRepository,
	) error {
		locked, txErr := itemRepo.GetForUpdate(itemID)
		if txErr != nil {
			return txErr
		}
		if locked == nil {
			// deleted between the ownership check and the lock
			return domain.ErrNotFound
		}
		delta := in.NewQty.Sub(locked.CurrentStock)
		if delta.IsZero() {
			return nil
		}
		movementType := entity.MovementTypeIN
		qty := delta
		if delta.IsNegative() {
			movementType = entity.MovementTypeOUT
			qty = delta.Neg()
		}
		mov, txErr = uc.postLocked(movRepo, itemRepo, locked, PostInput{
			FirmID:       firmID,
			UserID:       userID,
			StockItemID:  itemID,
			MovementType: movementType,
			RefType:      entity.RefTypeAdjustment,
			Quantity:     qty,
			Rate:         locked.PurchaseRate,
			Remarks:      in.Remarks,
			When:         now,
		})
		return txErr
	})
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return &dto.AdjustStockResponse{
			Adjusted:     false,
			Message:      "no adjustment needed",
			CurrentStock: in.NewQty,
		}, nil
	}
	return &dto.AdjustStockResponse{
		Adjusted:     true,
		Message:      "stock adjusted",
		Movement:     ToMovementResponse(mov),
		CurrentStock: mov.BalanceQty,
	}, nil
}

// PostInput parameters for a single movement post inside a transaction.
type PostInput struct {
	FirmID       string
	UserID       string
	StockItemID  string
	MovementType string // IN, OUT
	RefType      string // OPENING, PURCHASE, SALE, ADJUSTMENT
	RefID        string
	Quantity     decimal.Decimal
	Rate         decimal.Decimal
	Remarks      string
	When         time.Time
}

// PostInTx posts one movement using repositories bound to the caller's
// transaction: locks the item row, checks the balance, appends the register
// row and refreshes the cached current_stock. Used by bill posting to share
// the billing transaction.
func (uc *PostMovementUseCase) PostInTx(
	movRepo repository.StockMovementRepository,
	itemRepo repository.StockItemRepository,
	in PostInput,
) (*entity.StockMovement, error) {
	locked, err := itemRepo.GetForUpdate(in.StockItemID)
	if err != nil {
		return nil, err
	}
	if locked == nil {
		return nil, domain.ErrNotFound
	}
	return uc.postLocked(movRepo, itemRepo, locked, in)
}

func (uc *PostMovementUseCase) postLocked(
	movRepo repository.StockMovementRepository,
	itemRepo repository.StockItemRepository,
	item *entity.StockItem,
	in PostInput,
) (*entity.StockMovement, error) {
	var balance decimal.Decimal
	switch in.MovementType {
	case entity.MovementTypeIN:
		balance = item.CurrentStock.Add(in.Quantity)
	case entity.MovementTypeOUT:
		if item.CurrentStock.LessThan(in.Quantity) {
			return nil, domain.ErrInsufficientStock
		}
		balance = item.CurrentStock.Sub(in.Quantity)
	default:
		return nil, domain.ErrInvalidInput
	}

	rate := in.Rate
	if rate.IsZero() {
		rate = item.PurchaseRate
	}
	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		FirmID:       in.FirmID,
		StockItemID:  in.StockItemID,
		RefType:      in.RefType,
		RefID:        in.RefID,
		MovementDate: in.When,
		MovementType: in.MovementType,
		Quantity:     in.Quantity,
		Rate:         rate,
		Amount:       in.Quantity.Mul(rate),
		BalanceQty:   balance,
		Remarks:      in.Remarks,
		CreatedAt:    in.When,
		CreatedBy:    in.UserID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	if err := itemRepo.UpdateCurrentStock(in.StockItemID, balance); err != nil {
		return nil, err
	}
	item.CurrentStock = balance
	return mov, nil
}

// ToMovementResponse maps a register row to its response DTO.
func ToMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:           m.ID,
		StockItemID:  m.StockItemID,
		RefType:      m.RefType,
		RefID:        m.RefID,
		MovementDate: m.MovementDate,
		MovementType: m.MovementType,
		Quantity:     m.Quantity,
		Rate:         m.Rate,
		Amount:       m.Amount,
		BalanceQty:   m.BalanceQty,
		Remarks:      m.Remarks,
	}
}
