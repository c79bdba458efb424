package repository

import "github.com/khatapro/khata-api/internal/domain/entity"

// UserRepository defines the persistence port for User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// AssignFirm sets the user's firm (admin approval workflow). Empty firmID detaches.
	AssignFirm(userID, firmID string) error
	ListPendingApproval(limit, offset int) ([]*entity.User, error)
	Update(user *entity.User) error
}
