package repository

import "github.com/khatapro/khata-api/internal/domain/entity"

// PartyRepository defines the persistence port for Party.
type PartyRepository interface {
	Create(party *entity.Party) error
	GetByID(id string) (*entity.Party, error)
	ListByFirm(firmID, partyType string, limit, offset int) ([]*entity.Party, error)
	Update(party *entity.Party) error
	Delete(id string) error
}
