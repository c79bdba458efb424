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

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo BillRepository implementation over PostgreSQL.
type BillRepo struct {
	q Querier
}

// NewBillRepository builds the adapter. Accepts pool or tx (Querier);
// bill posting always runs it inside the billing transaction.
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

const billColumns = `id, firm_id, bill_type, bill_no, bill_date, due_date, party_id,
	party_name, COALESCE(gstin, ''), gross_total, cgst, sgst, igst, net_total,
	paid_amount, status, created_at, updated_at`

// Create persists a bill header with its lines.
func (r *BillRepo) Create(bill *entity.Bill, items []*entity.BillItem) error {
	ctx := context.Background()
	headerQuery := `
		INSERT INTO bills (id, firm_id, bill_type, bill_no, bill_date, due_date,
			party_id, party_name, gstin, gross_total, cgst, sgst, igst, net_total,
			paid_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, headerQuery,
		bill.ID, bill.FirmID, bill.BillType, bill.BillNo, bill.BillDate, bill.DueDate,
		bill.PartyID, bill.PartyName, nullIfEmpty(bill.GSTIN),
		bill.GrossTotal, bill.CGST, bill.SGST, bill.IGST, bill.NetTotal,
		bill.PaidAmount, bill.Status, bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bill: %w", err)
	}

	itemQuery := `
		INSERT INTO bill_items (id, bill_id, stock_item_id, description, hsn_code,
			quantity, rate, amount, gst_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, it := range items {
		_, err := r.q.Exec(ctx, itemQuery,
			it.ID, it.BillID, it.StockItemID, it.Description, nullIfEmpty(it.HSNCode),
			it.Quantity, it.Rate, it.Amount, it.GSTRate,
		)
		if err != nil {
			return fmt.Errorf("insert bill item: %w", err)
		}
	}
	return nil
}

// GetByID fetches one bill header; nil when missing.
func (r *BillRepo) GetByID(id string) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`
	var b entity.Bill
	err := r.q.QueryRow(context.Background(), query, id).Scan(billFields(&b)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return &b, nil
}

// GetItems fetches a bill's lines.
func (r *BillRepo) GetItems(billID string) ([]*entity.BillItem, error) {
	query := `
		SELECT id, bill_id, stock_item_id, description, COALESCE(hsn_code, ''),
		       quantity, rate, amount, gst_rate
		FROM bill_items WHERE bill_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, billID)
	if err != nil {
		return nil, fmt.Errorf("list bill items: %w", err)
	}
	defer rows.Close()
	var list []*entity.BillItem
	for rows.Next() {
		var it entity.BillItem
		if err := rows.Scan(&it.ID, &it.BillID, &it.StockItemID, &it.Description, &it.HSNCode,
			&it.Quantity, &it.Rate, &it.Amount, &it.GSTRate); err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// GetByFirmTypeAndNo fetches a bill by its per-firm, per-type number; nil when missing.
func (r *BillRepo) GetByFirmTypeAndNo(firmID, billType, billNo string) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE firm_id = $1 AND bill_type = $2 AND bill_no = $3`
	var b entity.Bill
	err := r.q.QueryRow(context.Background(), query, firmID, billType, billNo).Scan(billFields(&b)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill by number: %w", err)
	}
	return &b, nil
}

// ListByFirm pages through the firm's bills with additive filters, newest first.
func (r *BillRepo) ListByFirm(firmID string, f repository.BillFilter, limit, offset int) ([]*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE firm_id = $1`
	args := []any{firmID}
	pos := 2
	if f.BillType != "" {
		query += fmt.Sprintf(" AND bill_type = $%d", pos)
		args = append(args, f.BillType)
		pos++
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, f.Status)
		pos++
	}
	if f.PartyID != "" {
		query += fmt.Sprintf(" AND party_id = $%d", pos)
		args = append(args, f.PartyID)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND bill_date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND bill_date <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY bill_date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bill
	for rows.Next() {
		var b entity.Bill
		if err := rows.Scan(billFields(&b)...); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// UpdateStatus sets a bill's status.
func (r *BillRepo) UpdateStatus(id, status string) error {
	query := `UPDATE bills SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update bill status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func billFields(b *entity.Bill) []any {
	return []any{
		&b.ID, &b.FirmID, &b.BillType, &b.BillNo, &b.BillDate, &b.DueDate, &b.PartyID,
		&b.PartyName, &b.GSTIN, &b.GrossTotal, &b.CGST, &b.SGST, &b.IGST, &b.NetTotal,
		&b.PaidAmount, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	}
}
