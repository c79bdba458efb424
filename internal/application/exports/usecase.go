// Package exports hands ledger data to external accounting tools.
package exports

import (
	"context"
	"sort"
	"time"

	"github.com/khatapro/khata-api/internal/domain"
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/repository"
)

// TallyBuilder renders ledger entries as Tally import XML.
// Implemented by tally.DayBookExporter.
type TallyBuilder interface {
	BuildDayBook(firm *entity.Firm, entries []*entity.LedgerEntry) ([]byte, error)
}

// ExportUseCase drives the export flows.
type ExportUseCase struct {
	firmRepo   repository.FirmRepository
	ledgerRepo repository.LedgerRepository
	builder    TallyBuilder
}

// NewExportUseCase wires the export flows.
func NewExportUseCase(
	firmRepo repository.FirmRepository,
	ledgerRepo repository.LedgerRepository,
	builder TallyBuilder,
) *ExportUseCase {
	return &ExportUseCase{firmRepo: firmRepo, ledgerRepo: ledgerRepo, builder: builder}
}

// ExportTally collects the firm's ledger entries in the range, restores the
// global (entry_date, seq) order across accounts and renders the Tally XML.
func (uc *ExportUseCase) ExportTally(ctx context.Context, firmID string, from, to *time.Time) ([]byte, error) {
	firm, err := uc.firmRepo.GetByID(firmID)
	if err != nil {
		return nil, err
	}
	if firm == nil {
		return nil, domain.ErrNotFound
	}

	names, err := uc.ledgerRepo.ListAccountNames(firmID)
	if err != nil {
		return nil, err
	}
	var all []*entity.LedgerEntry
	for _, name := range names {
		entries, err := uc.ledgerRepo.ListByAccount(firmID, name, from, to)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].EntryDate.Equal(all[j].EntryDate) {
			return all[i].EntryDate.Before(all[j].EntryDate)
		}
		return all[i].Seq < all[j].Seq
	})

	return uc.builder.BuildDayBook(firm, all)
}
