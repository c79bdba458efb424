package bills

import (
	"context"

	"github.com/khatapro/khata-api/internal/application/stocks"
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/repository"
)

// BillingTxRunner runs a function inside one DB transaction with every
// repository bill posting touches. Stock movements, ledger entries and the
// bill itself commit or roll back together.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
		ledgerRepo repository.LedgerRepository,
		billRepo repository.BillRepository,
	) error) error
}

// StockPoster posts one stock movement inside the caller's transaction.
// Implemented by stocks.PostMovementUseCase.
type StockPoster interface {
	PostInTx(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
		in stocks.PostInput,
	) (*entity.StockMovement, error)
}

// PDFGenerator renders one bill as a printable document.
// Implemented by pdf.BillPDFGenerator.
type PDFGenerator interface {
	GenerateBillPDF(
		ctx context.Context,
		bill *entity.Bill,
		firm *entity.Firm,
		party *entity.Party,
		items []*entity.BillItem,
	) ([]byte, error)
}
