package stocks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/domain"
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes. The fake runner hands the shared stores to the callback,
// so state written inside the "transaction" is visible to assertions.

type fakeItemRepo struct {
	items map[string]*entity.StockItem
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[string]*entity.StockItem{}}
}

func (r *fakeItemRepo) Create(item *entity.StockItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.StockItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetByFirmAndCode(firmID, code string) (*entity.StockItem, error) {
	for _, it := range r.items {
		if it.FirmID == firmID && it.Code == code {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	// like the pgx repo: a missing row is (nil, nil), not an error
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

// vanishingItemRepo drops the row at lock time, simulating a delete that lands
// between the ownership check and the transaction.
type vanishingItemRepo struct {
	*fakeItemRepo
}

func (r *vanishingItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	delete(r.items, id)
	return r.fakeItemRepo.GetForUpdate(id)
}

func (r *fakeItemRepo) Update(item *entity.StockItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) UpdateCurrentStock(id string, qty decimal.Decimal) error {
	it, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.CurrentStock = qty
	return nil
}

func (r *fakeItemRepo) SetActive(id string, active bool) error {
	it, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Active = active
	return nil
}

func (r *fakeItemRepo) ListByFirm(firmID, category string, includeInactive bool, limit, offset int) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, it := range r.items {
		if it.FirmID != firmID {
			continue
		}
		if !includeInactive && !it.Active {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeItemRepo) Search(firmID, query string, limit int) ([]*entity.StockItem, error) {
	return nil, nil
}

func (r *fakeItemRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

type fakeMovRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovRepo) ListByItem(stockItemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.StockItemID == stockItemID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMovRepo) CountNonOpening(stockItemID string) (int, error) {
	n := 0
	for _, m := range r.movements {
		if m.StockItemID == stockItemID && m.RefType != entity.RefTypeOpening {
			n++
		}
	}
	return n, nil
}

type fakeLedgerRepo struct {
	entries []*entity.LedgerEntry
}

func (r *fakeLedgerRepo) Create(e *entity.LedgerEntry) error {
	cp := *e
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeLedgerRepo) ListByAccount(firmID, accountName string, from, to *time.Time) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.entries {
		if e.FirmID == firmID && e.AccountName == accountName {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) ListAccountNames(firmID string) ([]string, error) {
	return nil, nil
}

type fakeTxRunner struct {
	movRepo    *fakeMovRepo
	itemRepo   *fakeItemRepo
	ledgerRepo *fakeLedgerRepo

	// when set, handed to the callback instead of itemRepo
	txItemRepo repository.StockItemRepository
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	itemRepo repository.StockItemRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	var itemRepo repository.StockItemRepository = r.itemRepo
	if r.txItemRepo != nil {
		itemRepo = r.txItemRepo
	}
	return fn(r.movRepo, itemRepo, r.ledgerRepo)
}

func seedItem(itemRepo *fakeItemRepo, firmID string, stock decimal.Decimal) *entity.StockItem {
	item := &entity.StockItem{
		ID:           uuid.New().String(),
		FirmID:       firmID,
		Name:         "Copper Wire 2mm",
		Unit:         "KG",
		PurchaseRate: decimal.NewFromInt(300),
		SaleRate:     decimal.NewFromInt(380),
		GSTRate:      decimal.NewFromInt(18),
		CurrentStock: stock,
		Active:       true,
	}
	itemRepo.items[item.ID] = item
	return item
}

func newPosterFixture() (*PostMovementUseCase, *fakeTxRunner) {
	runner := &fakeTxRunner{
		movRepo:    &fakeMovRepo{},
		itemRepo:   newFakeItemRepo(),
		ledgerRepo: &fakeLedgerRepo{},
	}
	return NewPostMovementUseCase(runner, runner.itemRepo), runner
}

func TestPostMovement_INIncrementsBalance(t *testing.T) {
	uc, runner := newPosterFixture()
	item := seedItem(runner.itemRepo, "firm-1", decimal.NewFromInt(10))

	resp, err := uc.PostMovement(context.Background(), "firm-1", "user-1", item.ID, dto.PostMovementRequest{
		MovementType: entity.MovementTypeIN,
		Quantity:     decimal.NewFromInt(5),
		Rate:         decimal.NewFromInt(290),
	})
	require.NoError(t, err)
	assert.True(t, resp.BalanceQty.Equal(decimal.NewFromInt(15)))
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(1450)))

	stored, _ := runner.itemRepo.GetByID(item.ID)
	assert.True(t, stored.CurrentStock.Equal(decimal.NewFromInt(15)), "cached current_stock must follow the register")
	require.Len(t, runner.movRepo.movements, 1)
	assert.Equal(t, entity.RefTypeAdjustment, runner.movRepo.movements[0].RefType)
}

func TestPostMovement_OUTBeyondBalanceFails(t *testing.T) {
	uc, runner := newPosterFixture()
	item := seedItem(runner.itemRepo, "firm-1", decimal.NewFromInt(3))

	_, err := uc.PostMovement(context.Background(), "firm-1", "user-1", item.ID, dto.PostMovementRequest{
		MovementType: entity.MovementTypeOUT,
		Quantity:     decimal.NewFromInt(4),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, _ := runner.itemRepo.GetByID(item.ID)
	assert.True(t, stored.CurrentStock.Equal(decimal.NewFromInt(3)), "failed post must not touch the balance")
	assert.Empty(t, runner.movRepo.movements)
}

func TestPostMovement_OUTToExactlyZero(t *testing.T) {
	uc, runner := newPosterFixture()
	item := seedItem(runner.itemRepo, "firm-1", decimal.NewFromInt(4))

	resp, err := uc.PostMovement(context.Background(), "firm-1", "user-1", item.ID, dto.PostMovementRequest{
		MovementType: entity.MovementTypeOUT,
		Quantity:     decimal.NewFromInt(4),
	})
	require.NoError(t, err)
	assert.True(t, resp.BalanceQty.IsZero())
}

func TestPostMovement_RejectsBadInput(t *testing.T) {
	uc, runner := newPosterFixture()
	item := seedItem(runner.itemRepo, "firm-1", decimal.NewFromInt(10))

	cases := []dto.PostMovementRequest{
		{MovementType: "TRANSFER", Quantity: decimal.NewFromInt(1)},
		{MovementType: entity.MovementTypeIN, Quantity: decimal.Zero},
		{MovementType: entity.MovementTypeIN, Quantity: decimal.NewFromInt(-2)},
		{MovementType: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(-1)},
	}
	for _, in := range cases {
		_, err := uc.PostMovement(context.Background(), "firm-1", "user-1", item.ID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestPostMovement_ForeignFirmForbidden(t *testing.T) {
	uc, runner := newPosterFixture()
	item := seedItem(runner.itemRepo, "firm-1", decimal.NewFromInt(10))

	_, err := uc.PostMovement(context.Background(), "firm-2", "user-1", item.ID, dto.PostMovementRequest{
		MovementType: entity.MovementTypeIN,
		Quantity:     decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.PostMovement(context.Background(), "firm-1", "user-1", "missing", dto.PostMovementRequest{
		MovementType: entity.MovementTypeIN,
		Quantity:     decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustStock_SynthesizesDelta(t *testing.T) {
	uc, runner := newPosterFixture()
	item := seedItem(runner.itemRepo, "firm-1", decimal.NewFromInt(10))

	up, err := uc.AdjustStock(context.Background(), "firm-1", "user-1", item.ID, dto.AdjustStockRequest{
		NewQty: decimal.NewFromInt(16),
	})
	require.NoError(t, err)
	assert.True(t, up.Adjusted)
	require.NotNil(t, up.Movement)
	assert.Equal(t, entity.MovementTypeIN, up.Movement.MovementType)
	assert.True(t, up.Movement.Quantity.Equal(decimal.NewFromInt(6)))
	assert.True(t, up.CurrentStock.Equal(decimal.NewFromInt(16)))

	down, err := uc.AdjustStock(context.Background(), "firm-1", "user-1", item.ID, dto.AdjustStockRequest{
		NewQty: decimal.NewFromInt(9),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeOUT, down.Movement.MovementType)
	assert.True(t, down.Movement.Quantity.Equal(decimal.NewFromInt(7)))
	assert.True(t, down.CurrentStock.Equal(decimal.NewFromInt(9)))
}

func TestAdjustStock_NoOpWhenAlreadyAtTarget(t *testing.T) {
	uc, runner := newPosterFixture()
	item := seedItem(runner.itemRepo, "firm-1", decimal.NewFromInt(10))

	resp, err := uc.AdjustStock(context.Background(), "firm-1", "user-1", item.ID, dto.AdjustStockRequest{
		NewQty: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.False(t, resp.Adjusted)
	assert.Equal(t, "no adjustment needed", resp.Message)
	assert.Nil(t, resp.Movement)
	assert.Empty(t, runner.movRepo.movements)
}

func TestAdjustStock_NegativeTargetRejected(t *testing.T) {
	uc, runner := newPosterFixture()
	item := seedItem(runner.itemRepo, "firm-1", decimal.NewFromInt(10))

	_, err := uc.AdjustStock(context.Background(), "firm-1", "user-1", item.ID, dto.AdjustStockRequest{
		NewQty: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustStock_ItemDeletedBeforeLock(t *testing.T) {
	uc, runner := newPosterFixture()
	item := seedItem(runner.itemRepo, "firm-1", decimal.NewFromInt(10))
	runner.txItemRepo = &vanishingItemRepo{fakeItemRepo: runner.itemRepo}

	_, err := uc.AdjustStock(context.Background(), "firm-1", "user-1", item.ID, dto.AdjustStockRequest{
		NewQty: decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, runner.movRepo.movements)
}

func TestPostInTx_MissingItemIsNotFound(t *testing.T) {
	uc, runner := newPosterFixture()

	_, err := uc.PostInTx(runner.movRepo, runner.itemRepo, PostInput{
		FirmID:       "firm-1",
		UserID:       "user-1",
		StockItemID:  uuid.New().String(),
		MovementType: entity.MovementTypeOUT,
		RefType:      entity.RefTypeSale,
		Quantity:     decimal.NewFromInt(1),
		Rate:         decimal.NewFromInt(100),
		When:         time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, runner.movRepo.movements)
}

func TestCreateItem_PostsOpeningMovement(t *testing.T) {
	runner := &fakeTxRunner{movRepo: &fakeMovRepo{}, itemRepo: newFakeItemRepo(), ledgerRepo: &fakeLedgerRepo{}}
	poster := NewPostMovementUseCase(runner, runner.itemRepo)
	uc := NewStockItemUseCase(runner, runner.itemRepo, runner.movRepo, poster)

	resp, err := uc.Create(context.Background(), "firm-1", "user-1", dto.CreateStockItemRequest{
		Name:         "PVC Pipe 1in",
		Code:         "PVC-1",
		Unit:         "PCS",
		OpeningStock: decimal.NewFromInt(50),
		PurchaseRate: decimal.NewFromInt(120),
		SaleRate:     decimal.NewFromInt(150),
		GSTRate:      decimal.NewFromInt(18),
	})
	require.NoError(t, err)
	assert.True(t, resp.CurrentStock.Equal(decimal.NewFromInt(50)))

	require.Len(t, runner.movRepo.movements, 1)
	mov := runner.movRepo.movements[0]
	assert.Equal(t, entity.RefTypeOpening, mov.RefType)
	assert.Equal(t, entity.MovementTypeIN, mov.MovementType)
	assert.True(t, mov.BalanceQty.Equal(decimal.NewFromInt(50)))
}

func TestCreateItem_DuplicateCodeRejected(t *testing.T) {
	runner := &fakeTxRunner{movRepo: &fakeMovRepo{}, itemRepo: newFakeItemRepo(), ledgerRepo: &fakeLedgerRepo{}}
	poster := NewPostMovementUseCase(runner, runner.itemRepo)
	uc := NewStockItemUseCase(runner, runner.itemRepo, runner.movRepo, poster)

	in := dto.CreateStockItemRequest{Name: "PVC Pipe 1in", Code: "PVC-1"}
	_, err := uc.Create(context.Background(), "firm-1", "user-1", in)
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), "firm-1", "user-1", in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestDeleteItem_SoftDisableWhenMoved(t *testing.T) {
	runner := &fakeTxRunner{movRepo: &fakeMovRepo{}, itemRepo: newFakeItemRepo(), ledgerRepo: &fakeLedgerRepo{}}
	poster := NewPostMovementUseCase(runner, runner.itemRepo)
	uc := NewStockItemUseCase(runner, runner.itemRepo, runner.movRepo, poster)
	item := seedItem(runner.itemRepo, "firm-1", decimal.NewFromInt(5))

	// no movements yet: hard delete
	deleted, err := uc.Delete("firm-1", item.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// with history: deactivate instead
	item2 := seedItem(runner.itemRepo, "firm-1", decimal.NewFromInt(5))
	_, err = poster.PostMovement(context.Background(), "firm-1", "user-1", item2.ID, dto.PostMovementRequest{
		MovementType: entity.MovementTypeOUT,
		Quantity:     decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	deleted, err = uc.Delete("firm-1", item2.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	stored, _ := runner.itemRepo.GetByID(item2.ID)
	require.NotNil(t, stored)
	assert.False(t, stored.Active)
}

func TestBulkImport_ContinuesPastFailures(t *testing.T) {
	runner := &fakeTxRunner{movRepo: &fakeMovRepo{}, itemRepo: newFakeItemRepo(), ledgerRepo: &fakeLedgerRepo{}}
	poster := NewPostMovementUseCase(runner, runner.itemRepo)
	uc := NewStockItemUseCase(runner, runner.itemRepo, runner.movRepo, poster)

	resp, err := uc.BulkImport(context.Background(), "firm-1", "user-1", dto.BulkImportRequest{
		Items: []dto.CreateStockItemRequest{
			{Name: "Good A", Code: "A-1"},
			{Name: ""}, // invalid: missing name
			{Name: "Good B", Code: "B-1"},
			{Name: "Dup", Code: "A-1"}, // duplicate code
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 2, resp.Failed)
	assert.Len(t, resp.Errors, 2)
	assert.Contains(t, resp.Errors[0], "row 2")
}
