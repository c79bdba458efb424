package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/khatapro/khata-api/internal/domain"
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

// PartyRepo PartyRepository implementation over PostgreSQL.
type PartyRepo struct {
	q Querier
}

// NewPartyRepository builds the adapter. Accepts pool or tx (Querier).
func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

const partyColumns = `id, firm_id, name, party_type, COALESCE(gstin, ''), COALESCE(state_code, ''),
	COALESCE(phone, ''), COALESCE(email, ''), COALESCE(address, ''), opening_balance, created_at, updated_at`

// Create persists a new party.
func (r *PartyRepo) Create(party *entity.Party) error {
	query := `
		INSERT INTO parties (id, firm_id, name, party_type, gstin, state_code, phone, email, address, opening_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		party.ID, party.FirmID, party.Name, party.PartyType,
		nullIfEmpty(party.GSTIN), nullIfEmpty(party.StateCode),
		nullIfEmpty(party.Phone), nullIfEmpty(party.Email), nullIfEmpty(party.Address),
		party.OpeningBalance, party.CreatedAt, party.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert party: %w", err)
	}
	return nil
}

// GetByID fetches one party; nil when missing.
func (r *PartyRepo) GetByID(id string) (*entity.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE id = $1`
	var p entity.Party
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.FirmID, &p.Name, &p.PartyType, &p.GSTIN, &p.StateCode,
		&p.Phone, &p.Email, &p.Address, &p.OpeningBalance, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get party: %w", err)
	}
	return &p, nil
}

// ListByFirm pages through the firm's parties, optionally filtered by type
// (BOTH parties match CUSTOMER and SUPPLIER filters).
func (r *PartyRepo) ListByFirm(firmID, partyType string, limit, offset int) ([]*entity.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE firm_id = $1`
	args := []any{firmID}
	pos := 2
	if partyType != "" {
		query += fmt.Sprintf(" AND (party_type = $%d OR party_type = 'BOTH')", pos)
		args = append(args, partyType)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()
	var list []*entity.Party
	for rows.Next() {
		var p entity.Party
		if err := rows.Scan(&p.ID, &p.FirmID, &p.Name, &p.PartyType, &p.GSTIN, &p.StateCode,
			&p.Phone, &p.Email, &p.Address, &p.OpeningBalance, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan party: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update persists party fields.
func (r *PartyRepo) Update(party *entity.Party) error {
	query := `
		UPDATE parties
		SET name = $2, party_type = $3, gstin = $4, state_code = $5,
		    phone = $6, email = $7, address = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		party.ID, party.Name, party.PartyType,
		nullIfEmpty(party.GSTIN), nullIfEmpty(party.StateCode),
		nullIfEmpty(party.Phone), nullIfEmpty(party.Email), nullIfEmpty(party.Address),
		party.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update party: %w", err)
	}
	return nil
}

// Delete removes a party.
func (r *PartyRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM parties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete party: %w", err)
	}
	return nil
}
