package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo StockMovementRepository implementation over PostgreSQL.
// The register is append-only: there is no Update or Delete.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository builds the adapter. Accepts pool or tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create appends one movement row.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, firm_id, stock_item_id, ref_type, ref_id,
			movement_date, movement_type, quantity, rate, amount, balance_qty,
			remarks, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.FirmID, m.StockItemID, m.RefType, nullIfEmpty(m.RefID),
		m.MovementDate, m.MovementType, m.Quantity, m.Rate, m.Amount, m.BalanceQty,
		nullIfEmpty(m.Remarks), m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByItem pages through one item's register, newest first, optionally
// bounded by movement date.
func (r *StockMovementRepo) ListByItem(stockItemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, firm_id, stock_item_id, ref_type, COALESCE(ref_id, ''),
		       movement_date, movement_type, quantity, rate, amount, balance_qty,
		       COALESCE(remarks, ''), created_at, created_by
		FROM stock_movements WHERE stock_item_id = $1`
	args := []any{stockItemID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND movement_date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND movement_date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY movement_date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.FirmID, &m.StockItemID, &m.RefType, &m.RefID,
			&m.MovementDate, &m.MovementType, &m.Quantity, &m.Rate, &m.Amount, &m.BalanceQty,
			&m.Remarks, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountNonOpening counts the item's movements beyond its opening row.
func (r *StockMovementRepo) CountNonOpening(stockItemID string) (int, error) {
	query := `SELECT COUNT(*) FROM stock_movements WHERE stock_item_id = $1 AND ref_type <> 'OPENING'`
	var n int
	if err := r.q.QueryRow(context.Background(), query, stockItemID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock movements: %w", err)
	}
	return n, nil
}
