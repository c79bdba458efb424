package repository

import (
	"time"

	"github.com/khatapro/khata-api/internal/domain/entity"
)

// StockMovementRepository defines the persistence port for the append-only
// stock register.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByItem(stockItemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// CountNonOpening counts movements other than the OPENING row; items with
	// any are soft-disabled instead of deleted.
	CountNonOpening(stockItemID string) (int, error)
}
