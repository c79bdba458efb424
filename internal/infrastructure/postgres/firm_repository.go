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

var _ repository.FirmRepository = (*FirmRepo)(nil)

// FirmRepo FirmRepository implementation over PostgreSQL.
type FirmRepo struct {
	q Querier
}

// NewFirmRepository builds the adapter. Accepts pool or tx (Querier).
func NewFirmRepository(q Querier) *FirmRepo {
	return &FirmRepo{q: q}
}

// Create persists a new firm.
func (r *FirmRepo) Create(firm *entity.Firm) error {
	query := `
		INSERT INTO firms (id, name, gstin, state_code, address, phone, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		firm.ID, firm.Name, nullIfEmpty(firm.GSTIN), nullIfEmpty(firm.StateCode),
		nullIfEmpty(firm.Address), nullIfEmpty(firm.Phone), nullIfEmpty(firm.Email),
		firm.Status, firm.CreatedAt, firm.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert firm: %w", err)
	}
	return nil
}

// GetByID fetches one firm; nil when missing.
func (r *FirmRepo) GetByID(id string) (*entity.Firm, error) {
	query := `
		SELECT id, name, COALESCE(gstin, ''), COALESCE(state_code, ''),
		       COALESCE(address, ''), COALESCE(phone, ''), COALESCE(email, ''),
		       status, created_at, updated_at
		FROM firms WHERE id = $1`
	var f entity.Firm
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.Name, &f.GSTIN, &f.StateCode,
		&f.Address, &f.Phone, &f.Email,
		&f.Status, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get firm: %w", err)
	}
	return &f, nil
}

// List pages through all firms.
func (r *FirmRepo) List(limit, offset int) ([]*entity.Firm, error) {
	query := `
		SELECT id, name, COALESCE(gstin, ''), COALESCE(state_code, ''),
		       COALESCE(address, ''), COALESCE(phone, ''), COALESCE(email, ''),
		       status, created_at, updated_at
		FROM firms ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list firms: %w", err)
	}
	defer rows.Close()
	var list []*entity.Firm
	for rows.Next() {
		var f entity.Firm
		if err := rows.Scan(&f.ID, &f.Name, &f.GSTIN, &f.StateCode,
			&f.Address, &f.Phone, &f.Email, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan firm: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Update persists the firm profile fields.
func (r *FirmRepo) Update(firm *entity.Firm) error {
	query := `
		UPDATE firms
		SET name = $2, gstin = $3, state_code = $4, address = $5,
		    phone = $6, email = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		firm.ID, firm.Name, nullIfEmpty(firm.GSTIN), nullIfEmpty(firm.StateCode),
		nullIfEmpty(firm.Address), nullIfEmpty(firm.Phone), nullIfEmpty(firm.Email),
		firm.Status, firm.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update firm: %w", err)
	}
	return nil
}
