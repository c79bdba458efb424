package stocks

import (
	"context"

	"github.com/khatapro/khata-api/internal/domain/repository"
)

// TxRunner runs a function inside one DB transaction, handing it repositories
// bound to that transaction. Guarantees the register row and the cached
// current_stock move together.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}
