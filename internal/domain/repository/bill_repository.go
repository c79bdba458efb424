package repository

import (
	"time"

	"github.com/khatapro/khata-api/internal/domain/entity"
)

// BillFilter optional, additive filters for bill listings.
type BillFilter struct {
	BillType string
	Status   string
	PartyID  string
	From     *time.Time
	To       *time.Time
}

// BillRepository defines the persistence port for bills.
type BillRepository interface {
	Create(bill *entity.Bill, items []*entity.BillItem) error
	GetByID(id string) (*entity.Bill, error)
	GetItems(billID string) ([]*entity.BillItem, error)
	GetByFirmTypeAndNo(firmID, billType, billNo string) (*entity.Bill, error)
	ListByFirm(firmID string, f BillFilter, limit, offset int) ([]*entity.Bill, error)
	UpdateStatus(id, status string) error
}
