package repository

import (
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockItemRepository defines the persistence port for StockItem.
// GetForUpdate is used inside transactions to serialize movement posting
// against the same item (SELECT FOR UPDATE).
type StockItemRepository interface {
	Create(item *entity.StockItem) error
	GetByID(id string) (*entity.StockItem, error)
	GetByFirmAndCode(firmID, code string) (*entity.StockItem, error)
	GetForUpdate(id string) (*entity.StockItem, error)
	Update(item *entity.StockItem) error
	// UpdateCurrentStock refreshes only the cached current_stock column.
	UpdateCurrentStock(id string, qty decimal.Decimal) error
	SetActive(id string, active bool) error
	ListByFirm(firmID, category string, includeInactive bool, limit, offset int) ([]*entity.StockItem, error)
	Search(firmID, query string, limit int) ([]*entity.StockItem, error)
	Delete(id string) error
}
