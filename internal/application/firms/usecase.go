package firms

import (
	"time"

	"github.com/google/uuid"
	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/domain"
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/repository"
)

// FirmUseCase CRUD for firms (tenants). Creation and listing are super-admin
// operations; a firm's own admin can read and update it.
type FirmUseCase struct {
	repo repository.FirmRepository
}

// NewFirmUseCase builds the use case.
func NewFirmUseCase(repo repository.FirmRepository) *FirmUseCase {
	return &FirmUseCase{repo: repo}
}

// Create registers a new firm. GSTIN, when present, must be 15 characters and
// its first two digits become the default state code.
func (uc *FirmUseCase) Create(in dto.CreateFirmRequest) (*dto.FirmResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.GSTIN != "" && len(in.GSTIN) != 15 {
		return nil, domain.ErrInvalidInput
	}
	stateCode := in.StateCode
	if stateCode == "" && in.GSTIN != "" {
		stateCode = in.GSTIN[:2]
	}
	now := time.Now()
	firm := &entity.Firm{
		ID:        uuid.New().String(),
		Name:      in.Name,
		GSTIN:     in.GSTIN,
		StateCode: stateCode,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(firm); err != nil {
		return nil, err
	}
	return toFirmResponse(firm), nil
}

// GetByID fetches one firm.
func (uc *FirmUseCase) GetByID(id string) (*dto.FirmResponse, error) {
	firm, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if firm == nil {
		return nil, domain.ErrNotFound
	}
	return toFirmResponse(firm), nil
}

// List pages through all firms.
func (uc *FirmUseCase) List(limit, offset int) ([]dto.FirmResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FirmResponse, 0, len(list))
	for _, f := range list {
		out = append(out, *toFirmResponse(f))
	}
	return out, nil
}

// Update edits the firm profile fields.
func (uc *FirmUseCase) Update(id string, in dto.CreateFirmRequest) (*dto.FirmResponse, error) {
	firm, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if firm == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		firm.Name = in.Name
	}
	if in.GSTIN != "" {
		if len(in.GSTIN) != 15 {
			return nil, domain.ErrInvalidInput
		}
		firm.GSTIN = in.GSTIN
	}
	if in.StateCode != "" {
		firm.StateCode = in.StateCode
	}
	if in.Address != "" {
		firm.Address = in.Address
	}
	if in.Phone != "" {
		firm.Phone = in.Phone
	}
	if in.Email != "" {
		firm.Email = in.Email
	}
	firm.UpdatedAt = time.Now()
	if err := uc.repo.Update(firm); err != nil {
		return nil, err
	}
	return toFirmResponse(firm), nil
}

func toFirmResponse(f *entity.Firm) *dto.FirmResponse {
	if f == nil {
		return nil
	}
	return &dto.FirmResponse{
		ID:        f.ID,
		Name:      f.Name,
		GSTIN:     f.GSTIN,
		StateCode: f.StateCode,
		Address:   f.Address,
		Phone:     f.Phone,
		Email:     f.Email,
		Status:    f.Status,
		CreatedAt: f.CreatedAt,
	}
}
