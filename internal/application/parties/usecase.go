package parties

import (
	"time"

	"github.com/google/uuid"
	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/domain"
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/ledger"
	"github.com/khatapro/khata-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// PartyUseCase CRUD for customers/suppliers plus the party ledger statement.
type PartyUseCase struct {
	partyRepo  repository.PartyRepository
	ledgerRepo repository.LedgerRepository
}

// NewPartyUseCase builds the use case.
func NewPartyUseCase(partyRepo repository.PartyRepository, ledgerRepo repository.LedgerRepository) *PartyUseCase {
	return &PartyUseCase{partyRepo: partyRepo, ledgerRepo: ledgerRepo}
}

// Create registers a party. A positive opening balance means the party owes
// the firm (debit side).
func (uc *PartyUseCase) Create(firmID string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.PartyType {
	case entity.PartyTypeCustomer, entity.PartyTypeSupplier, entity.PartyTypeBoth:
	default:
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
	party := &entity.Party{
		ID:             uuid.New().String(),
		FirmID:         firmID,
		Name:           in.Name,
		PartyType:      in.PartyType,
		GSTIN:          in.GSTIN,
		StateCode:      stateCode,
		Phone:          in.Phone,
		Email:          in.Email,
		Address:        in.Address,
		OpeningBalance: in.OpeningBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.partyRepo.Create(party); err != nil {
		return nil, err
	}
	return toPartyResponse(party), nil
}

// GetByID fetches one party, enforcing firm ownership.
func (uc *PartyUseCase) GetByID(firmID, id string) (*dto.PartyResponse, error) {
	party, err := uc.getOwned(firmID, id)
	if err != nil {
		return nil, err
	}
	return toPartyResponse(party), nil
}

// List pages through the firm's parties, optionally by type.
func (uc *PartyUseCase) List(firmID, partyType string, limit, offset int) (*dto.PartyListResponse, error) {
	if partyType != "" {
		switch partyType {
		case entity.PartyTypeCustomer, entity.PartyTypeSupplier, entity.PartyTypeBoth:
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	list, err := uc.partyRepo.ListByFirm(firmID, partyType, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartyResponse(p))
	}
	return &dto.PartyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update edits party fields.
func (uc *PartyUseCase) Update(firmID, id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	party, err := uc.getOwned(firmID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		party.Name = *in.Name
	}
	if in.PartyType != nil {
		switch *in.PartyType {
		case entity.PartyTypeCustomer, entity.PartyTypeSupplier, entity.PartyTypeBoth:
		default:
			return nil, domain.ErrInvalidInput
		}
		party.PartyType = *in.PartyType
	}
	if in.GSTIN != nil {
		if *in.GSTIN != "" && len(*in.GSTIN) != 15 {
			return nil, domain.ErrInvalidInput
		}
		party.GSTIN = *in.GSTIN
	}
	if in.StateCode != nil {
		party.StateCode = *in.StateCode
	}
	if in.Phone != nil {
		party.Phone = *in.Phone
	}
	if in.Email != nil {
		party.Email = *in.Email
	}
	if in.Address != nil {
		party.Address = *in.Address
	}
	party.UpdatedAt = time.Now()
	if err := uc.partyRepo.Update(party); err != nil {
		return nil, err
	}
	return toPartyResponse(party), nil
}

// Delete removes a party.
func (uc *PartyUseCase) Delete(firmID, id string) error {
	if _, err := uc.getOwned(firmID, id); err != nil {
		return err
	}
	return uc.partyRepo.Delete(id)
}

// GetLedger builds the party's account statement: opening balance first, then
// every ledger entry in (entry_date, seq) order with the running balance.
func (uc *PartyUseCase) GetLedger(firmID, id string, from, to *time.Time) (*dto.PartyLedgerResponse, error) {
	party, err := uc.getOwned(firmID, id)
	if err != nil {
		return nil, err
	}
	rows, err := uc.ledgerRepo.ListByAccount(firmID, party.Name, from, to)
	if err != nil {
		return nil, err
	}

	entries := make([]entity.LedgerEntry, 0, len(rows)+1)
	if !party.OpeningBalance.IsZero() {
		opening := entity.LedgerEntry{
			FirmID:      firmID,
			AccountName: party.Name,
			EntryDate:   party.CreatedAt,
			Reference:   "OPENING BALANCE",
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if party.OpeningBalance.IsPositive() {
			opening.Debit = party.OpeningBalance
		} else {
			opening.Credit = party.OpeningBalance.Neg()
		}
		entries = append(entries, opening)
	}
	for _, r := range rows {
		entries = append(entries, *r)
	}

	lines, closing := ledger.Statement(entries)
	resp := &dto.PartyLedgerResponse{
		PartyID:        party.ID,
		PartyName:      party.Name,
		Lines:          make([]dto.LedgerLineDTO, 0, len(lines)),
		TotalDebit:     closing.TotalDebit,
		TotalCredit:    closing.TotalCredit,
		ClosingBalance: closing.Balance,
		BalanceType:    closing.BalanceType,
	}
	for _, ln := range lines {
		resp.Lines = append(resp.Lines, dto.LedgerLineDTO{
			EntryDate:   ln.Entry.EntryDate,
			AccountName: ln.Entry.AccountName,
			Reference:   ln.Entry.Reference,
			Debit:       ln.Entry.Debit,
			Credit:      ln.Entry.Credit,
			Balance:     ln.Balance,
			BalanceType: ln.BalanceType,
		})
	}
	return resp, nil
}

func (uc *PartyUseCase) getOwned(firmID, id string) (*entity.Party, error) {
	party, err := uc.partyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	if party.FirmID != firmID {
		return nil, domain.ErrForbidden
	}
	return party, nil
}

func toPartyResponse(p *entity.Party) *dto.PartyResponse {
	if p == nil {
		return nil
	}
	return &dto.PartyResponse{
		ID:             p.ID,
		FirmID:         p.FirmID,
		Name:           p.Name,
		PartyType:      p.PartyType,
		GSTIN:          p.GSTIN,
		StateCode:      p.StateCode,
		Phone:          p.Phone,
		Email:          p.Email,
		Address:        p.Address,
		OpeningBalance: p.OpeningBalance,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
