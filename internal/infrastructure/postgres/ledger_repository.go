package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo LedgerRepository implementation over PostgreSQL.
// seq is a bigserial; inserts never set it, reads order by it.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository builds the adapter. Accepts pool or tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create appends one ledger entry. Entries are immutable after insert.
func (r *LedgerRepo) Create(e *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, firm_id, account_name, account_type,
			entry_date, debit, credit, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.FirmID, e.AccountName, e.AccountType,
		e.EntryDate, e.Debit, e.Credit, nullIfEmpty(e.Reference), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// ListByAccount returns one account's entries ordered by (entry_date, seq),
// the order running-balance computation depends on.
func (r *LedgerRepo) ListByAccount(firmID, accountName string, from, to *time.Time) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, seq, firm_id, account_name, account_type, entry_date,
		       debit, credit, COALESCE(reference, ''), created_at
		FROM ledger_entries WHERE firm_id = $1 AND account_name = $2`
	args := []any{firmID, accountName}
	pos := 3
	if from != nil {
		query += fmt.Sprintf(" AND entry_date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND entry_date <= $%d", pos)
		args = append(args, *to)
	}
	query += " ORDER BY entry_date ASC, seq ASC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.Seq, &e.FirmID, &e.AccountName, &e.AccountType,
			&e.EntryDate, &e.Debit, &e.Credit, &e.Reference, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ListAccountNames returns the firm's distinct account names, sorted.
func (r *LedgerRepo) ListAccountNames(firmID string) ([]string, error) {
	query := `SELECT DISTINCT account_name FROM ledger_entries WHERE firm_id = $1 ORDER BY account_name`
	rows, err := r.q.Query(context.Background(), query, firmID)
	if err != nil {
		return nil, fmt.Errorf("list account names: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan account name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
