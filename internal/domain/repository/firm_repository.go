package repository

import "github.com/khatapro/khata-api/internal/domain/entity"

// FirmRepository defines the persistence port for Firm (DIP).
type FirmRepository interface {
	Create(firm *entity.Firm) error
	GetByID(id string) (*entity.Firm, error)
	List(limit, offset int) ([]*entity.Firm, error)
	Update(firm *entity.Firm) error
}
