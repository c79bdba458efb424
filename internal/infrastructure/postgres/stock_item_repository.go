package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/khatapro/khata-api/internal/domain"
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo StockItemRepository implementation over PostgreSQL.
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository builds the adapter. Accepts pool or tx (Querier),
// so the same repo works standalone and inside transactions.
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, firm_id, name, COALESCE(code, ''), COALESCE(hsn_code, ''), unit,
	COALESCE(category, ''), opening_stock, min_stock, max_stock,
	purchase_rate, sale_rate, gst_rate, current_stock, active, created_at, updated_at`

// Create persists a new stock item.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (id, firm_id, name, code, hsn_code, unit, category,
			opening_stock, min_stock, max_stock, purchase_rate, sale_rate, gst_rate,
			current_stock, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.FirmID, item.Name, nullIfEmpty(item.Code), nullIfEmpty(item.HSNCode),
		item.Unit, nullIfEmpty(item.Category),
		item.OpeningStock, item.MinStock, item.MaxStock,
		item.PurchaseRate, item.SaleRate, item.GSTRate,
		item.CurrentStock, item.Active, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetByID fetches one item; nil when missing.
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByFirmAndCode fetches one item by its per-firm code; nil when missing.
func (r *StockItemRepo) GetByFirmAndCode(firmID, code string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE firm_id = $1 AND code = $2`
	var item entity.StockItem
	err := r.q.QueryRow(context.Background(), query, firmID, code).Scan(itemFields(&item)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item by code: %w", err)
	}
	return &item, nil
}

// GetForUpdate fetches one item holding a row lock until the surrounding
// transaction ends. Movement posting relies on this to serialize balance math.
func (r *StockItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// Update persists item master fields.
func (r *StockItemRepo) Update(item *entity.StockItem) error {
	query := `
		UPDATE stock_items
		SET name = $2, code = $3, hsn_code = $4, unit = $5, category = $6,
		    min_stock = $7, max_stock = $8, purchase_rate = $9, sale_rate = $10,
		    gst_rate = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, nullIfEmpty(item.Code), nullIfEmpty(item.HSNCode),
		item.Unit, nullIfEmpty(item.Category),
		item.MinStock, item.MaxStock, item.PurchaseRate, item.SaleRate,
		item.GSTRate, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update stock item: %w", err)
	}
	return nil
}

// UpdateCurrentStock refreshes only the cached current_stock column.
func (r *StockItemRepo) UpdateCurrentStock(id string, qty decimal.Decimal) error {
	query := `UPDATE stock_items SET current_stock = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, qty)
	if err != nil {
		return fmt.Errorf("update current stock: %w", err)
	}
	return nil
}

// SetActive toggles the item's active flag.
func (r *StockItemRepo) SetActive(id string, active bool) error {
	query := `UPDATE stock_items SET active = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, active)
	if err != nil {
		return fmt.Errorf("set stock item active: %w", err)
	}
	return nil
}

// ListByFirm pages through the firm's items, optionally by category.
// Inactive items are hidden unless includeInactive is set.
func (r *StockItemRepo) ListByFirm(firmID, category string, includeInactive bool, limit, offset int) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE firm_id = $1`
	args := []any{firmID}
	pos := 2
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, category)
		pos++
	}
	if !includeInactive {
		query += " AND active = true"
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.scanMany(query, args...)
}

// Search matches active items by name or code, case-insensitively.
func (r *StockItemRepo) Search(firmID, q string, limit int) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + `
		FROM stock_items
		WHERE firm_id = $1 AND active = true
		  AND (name ILIKE $2 OR code ILIKE $2)
		ORDER BY name LIMIT $3`
	return r.scanMany(query, firmID, "%"+q+"%", limit)
}

// Delete removes an item with its movements in one statement, so the item
// can never survive with its opening row gone. Callers only reach this when
// the item has no movements beyond its opening row.
func (r *StockItemRepo) Delete(id string) error {
	query := `WITH purged AS (
			DELETE FROM stock_movements WHERE stock_item_id = $1
		)
		DELETE FROM stock_items WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id); err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	return nil
}

func (r *StockItemRepo) scanOne(query string, arg any) (*entity.StockItem, error) {
	var item entity.StockItem
	err := r.q.QueryRow(context.Background(), query, arg).Scan(itemFields(&item)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return &item, nil
}

func (r *StockItemRepo) scanMany(query string, args ...any) ([]*entity.StockItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		var item entity.StockItem
		if err := rows.Scan(itemFields(&item)...); err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

func itemFields(item *entity.StockItem) []any {
	return []any{
		&item.ID, &item.FirmID, &item.Name, &item.Code, &item.HSNCode, &item.Unit,
		&item.Category, &item.OpeningStock, &item.MinStock, &item.MaxStock,
		&item.PurchaseRate, &item.SaleRate, &item.GSTRate,
		&item.CurrentStock, &item.Active, &item.CreatedAt, &item.UpdatedAt,
	}
}
