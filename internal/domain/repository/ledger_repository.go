package repository

import (
	"time"

	"github.com/khatapro/khata-api/internal/domain/entity"
)

// LedgerRepository defines the persistence port for the append-only ledger.
// The reporting layer never updates or deletes entries.
type LedgerRepository interface {
	Create(entry *entity.LedgerEntry) error
	// ListByAccount returns entries for one (firm, account) pair ordered by
	// (entry_date ASC, seq ASC), the total order the running-balance
	// calculator depends on.
	ListByAccount(firmID, accountName string, from, to *time.Time) ([]*entity.LedgerEntry, error)
	ListAccountNames(firmID string) ([]string, error)
}
