package bills

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/application/stocks"
	"github.com/khatapro/khata-api/internal/domain"
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes sharing one store, so "transactional" writes are visible
// to assertions. Rollback is not modeled; error paths assert on ordering
// (stock check precedes any write).

type memStore struct {
	firms   map[string]*entity.Firm
	parties map[string]*entity.Party
	items   map[string]*entity.StockItem
	movs    []*entity.StockMovement
	entries []*entity.LedgerEntry
	bills   map[string]*entity.Bill
	lines   map[string][]*entity.BillItem
}

func newMemStore() *memStore {
	return &memStore{
		firms:   map[string]*entity.Firm{},
		parties: map[string]*entity.Party{},
		items:   map[string]*entity.StockItem{},
		bills:   map[string]*entity.Bill{},
		lines:   map[string][]*entity.BillItem{},
	}
}

type memFirmRepo struct{ s *memStore }

func (r *memFirmRepo) Create(f *entity.Firm) error { r.s.firms[f.ID] = f; return nil }
func (r *memFirmRepo) GetByID(id string) (*entity.Firm, error) {
	return r.s.firms[id], nil
}
func (r *memFirmRepo) List(limit, offset int) ([]*entity.Firm, error) { return nil, nil }
func (r *memFirmRepo) Update(f *entity.Firm) error                    { r.s.firms[f.ID] = f; return nil }

type memPartyRepo struct{ s *memStore }

func (r *memPartyRepo) Create(p *entity.Party) error { r.s.parties[p.ID] = p; return nil }
func (r *memPartyRepo) GetByID(id string) (*entity.Party, error) {
	return r.s.parties[id], nil
}
func (r *memPartyRepo) ListByFirm(firmID, partyType string, limit, offset int) ([]*entity.Party, error) {
	return nil, nil
}
func (r *memPartyRepo) Update(p *entity.Party) error { r.s.parties[p.ID] = p; return nil }
func (r *memPartyRepo) Delete(id string) error       { delete(r.s.parties, id); return nil }

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(it *entity.StockItem) error { r.s.items[it.ID] = it; return nil }
func (r *memItemRepo) GetByID(id string) (*entity.StockItem, error) {
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}
func (r *memItemRepo) GetByFirmAndCode(firmID, code string) (*entity.StockItem, error) {
	return nil, nil
}
func (r *memItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	it, ok := r.s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *it
	return &cp, nil
}
func (r *memItemRepo) Update(it *entity.StockItem) error { r.s.items[it.ID] = it; return nil }
func (r *memItemRepo) UpdateCurrentStock(id string, qty decimal.Decimal) error {
	r.s.items[id].CurrentStock = qty
	return nil
}
func (r *memItemRepo) SetActive(id string, active bool) error { return nil }
func (r *memItemRepo) ListByFirm(firmID, category string, includeInactive bool, limit, offset int) ([]*entity.StockItem, error) {
	return nil, nil
}
func (r *memItemRepo) Search(firmID, query string, limit int) ([]*entity.StockItem, error) {
	return nil, nil
}
func (r *memItemRepo) Delete(id string) error { return nil }

type memMovRepo struct{ s *memStore }

func (r *memMovRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.s.movs = append(r.s.movs, &cp)
	return nil
}
func (r *memMovRepo) ListByItem(stockItemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *memMovRepo) CountNonOpening(stockItemID string) (int, error) { return 0, nil }

type memLedgerRepo struct{ s *memStore }

func (r *memLedgerRepo) Create(e *entity.LedgerEntry) error {
	cp := *e
	r.s.entries = append(r.s.entries, &cp)
	return nil
}
func (r *memLedgerRepo) ListByAccount(firmID, accountName string, from, to *time.Time) ([]*entity.LedgerEntry, error) {
	return nil, nil
}
func (r *memLedgerRepo) ListAccountNames(firmID string) ([]string, error) { return nil, nil }

type memBillRepo struct{ s *memStore }

func (r *memBillRepo) Create(b *entity.Bill, items []*entity.BillItem) error {
	r.s.bills[b.ID] = b
	r.s.lines[b.ID] = items
	return nil
}
func (r *memBillRepo) GetByID(id string) (*entity.Bill, error) { return r.s.bills[id], nil }
func (r *memBillRepo) GetItems(billID string) ([]*entity.BillItem, error) {
	return r.s.lines[billID], nil
}
func (r *memBillRepo) GetByFirmTypeAndNo(firmID, billType, billNo string) (*entity.Bill, error) {
	for _, b := range r.s.bills {
		if b.FirmID == firmID && b.BillType == billType && b.BillNo == billNo {
			return b, nil
		}
	}
	return nil, nil
}
func (r *memBillRepo) ListByFirm(firmID string, f repository.BillFilter, limit, offset int) ([]*entity.Bill, error) {
	return nil, nil
}
func (r *memBillRepo) UpdateStatus(id, status string) error {
	r.s.bills[id].Status = status
	return nil
}

type memBillingRunner struct{ s *memStore }

func (r *memBillingRunner) RunBilling(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	itemRepo repository.StockItemRepository,
	ledgerRepo repository.LedgerRepository,
	billRepo repository.BillRepository,
) error) error {
	return fn(&memMovRepo{r.s}, &memItemRepo{r.s}, &memLedgerRepo{r.s}, &memBillRepo{r.s})
}

type fixture struct {
	uc    *BillUseCase
	store *memStore
	firm  *entity.Firm
	party *entity.Party
	item  *entity.StockItem
}

func newFixture(t *testing.T, partyState string, stock int64) *fixture {
	t.Helper()
	s := newMemStore()
	firm := &entity.Firm{ID: uuid.New().String(), Name: "Sharma Traders", GSTIN: "29AAAAA0000A1Z5", StateCode: "29"}
	party := &entity.Party{
		ID:        uuid.New().String(),
		FirmID:    firm.ID,
		Name:      "Gupta Enterprises",
		PartyType: entity.PartyTypeBoth,
		GSTIN:     "27BBBBB1111B1Z4",
		StateCode: partyState,
	}
	item := &entity.StockItem{
		ID:           uuid.New().String(),
		FirmID:       firm.ID,
		Name:         "Copper Wire 2mm",
		Unit:         "KG",
		PurchaseRate: decimal.NewFromInt(300),
		SaleRate:     decimal.NewFromInt(400),
		GSTRate:      decimal.NewFromInt(18),
		CurrentStock: decimal.NewFromInt(stock),
		Active:       true,
	}
	s.firms[firm.ID] = firm
	s.parties[party.ID] = party
	s.items[item.ID] = item

	itemRepo := &memItemRepo{s}
	poster := stocks.NewPostMovementUseCase(nil, itemRepo)
	uc := NewBillUseCase(&memBillingRunner{s}, poster, &memFirmRepo{s}, &memPartyRepo{s}, itemRepo, &memBillRepo{s})
	return &fixture{uc: uc, store: s, firm: firm, party: party, item: item}
}

func TestCreateBill_SalesIntraState(t *testing.T) {
	fx := newFixture(t, "29", 100)

	resp, err := fx.uc.Create(context.Background(), fx.firm.ID, "user-1", dto.CreateBillRequest{
		BillType: entity.BillTypeSales,
		PartyID:  fx.party.ID,
		Items: []dto.CreateBillItemRequest{
			{StockItemID: fx.item.ID, Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(400)},
		},
	})
	require.NoError(t, err)

	// 10 * 400 = 4000 gross, 18% = 720 tax split in halves intra-state
	assert.True(t, resp.GrossTotal.Equal(decimal.NewFromInt(4000)))
	assert.True(t, resp.CGST.Equal(decimal.NewFromInt(360)))
	assert.True(t, resp.SGST.Equal(decimal.NewFromInt(360)))
	assert.True(t, resp.IGST.IsZero())
	assert.True(t, resp.NetTotal.Equal(decimal.NewFromInt(4720)))
	assert.Equal(t, entity.BillStatusApproved, resp.Status)
	assert.NotEmpty(t, resp.BillNo)

	// stock moved out
	assert.True(t, fx.store.items[fx.item.ID].CurrentStock.Equal(decimal.NewFromInt(90)))
	require.Len(t, fx.store.movs, 1)
	assert.Equal(t, entity.MovementTypeOUT, fx.store.movs[0].MovementType)
	assert.Equal(t, entity.RefTypeSale, fx.store.movs[0].RefType)
	assert.Equal(t, resp.ID, fx.store.movs[0].RefID)

	// double entry: Dr party 4720, Cr SALES 4000, Cr GST_OUTPUT 720
	require.Len(t, fx.store.entries, 3)
	var totalDr, totalCr decimal.Decimal
	for _, e := range fx.store.entries {
		totalDr = totalDr.Add(e.Debit)
		totalCr = totalCr.Add(e.Credit)
	}
	assert.True(t, totalDr.Equal(totalCr), "ledger must balance")
	assert.Equal(t, fx.party.Name, fx.store.entries[0].AccountName)
	assert.True(t, fx.store.entries[0].Debit.Equal(decimal.NewFromInt(4720)))
}

func TestCreateBill_SalesInterStateUsesIGST(t *testing.T) {
	fx := newFixture(t, "27", 100)

	resp, err := fx.uc.Create(context.Background(), fx.firm.ID, "user-1", dto.CreateBillRequest{
		BillType: entity.BillTypeSales,
		PartyID:  fx.party.ID,
		Items: []dto.CreateBillItemRequest{
			{StockItemID: fx.item.ID, Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(400)},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.CGST.IsZero())
	assert.True(t, resp.SGST.IsZero())
	assert.True(t, resp.IGST.Equal(decimal.NewFromInt(720)))
}

func TestCreateBill_RateFallsBackToItemRate(t *testing.T) {
	fx := newFixture(t, "29", 100)

	resp, err := fx.uc.Create(context.Background(), fx.firm.ID, "user-1", dto.CreateBillRequest{
		BillType: entity.BillTypeSales,
		PartyID:  fx.party.ID,
		Items: []dto.CreateBillItemRequest{
			{StockItemID: fx.item.ID, Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)
	// sale rate 400
	assert.True(t, resp.GrossTotal.Equal(decimal.NewFromInt(800)))

	resp2, err := fx.uc.Create(context.Background(), fx.firm.ID, "user-1", dto.CreateBillRequest{
		BillType: entity.BillTypePurchase,
		PartyID:  fx.party.ID,
		Items: []dto.CreateBillItemRequest{
			{StockItemID: fx.item.ID, Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)
	// purchase rate 300
	assert.True(t, resp2.GrossTotal.Equal(decimal.NewFromInt(600)))
}

func TestCreateBill_OversellFailsBeforeAnyWrite(t *testing.T) {
	fx := newFixture(t, "29", 5)

	_, err := fx.uc.Create(context.Background(), fx.firm.ID, "user-1", dto.CreateBillRequest{
		BillType: entity.BillTypeSales,
		PartyID:  fx.party.ID,
		Items: []dto.CreateBillItemRequest{
			{StockItemID: fx.item.ID, Quantity: decimal.NewFromInt(6)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, fx.store.movs)
	assert.Empty(t, fx.store.entries)
	assert.Empty(t, fx.store.bills)
}

func TestCreateBill_PurchaseAddsStockAndCreditsParty(t *testing.T) {
	fx := newFixture(t, "29", 10)

	resp, err := fx.uc.Create(context.Background(), fx.firm.ID, "user-1", dto.CreateBillRequest{
		BillType: entity.BillTypePurchase,
		PartyID:  fx.party.ID,
		Items: []dto.CreateBillItemRequest{
			{StockItemID: fx.item.ID, Quantity: decimal.NewFromInt(20), Rate: decimal.NewFromInt(300)},
		},
	})
	require.NoError(t, err)
	assert.True(t, fx.store.items[fx.item.ID].CurrentStock.Equal(decimal.NewFromInt(30)))

	// Dr PURCHASE 6000, Dr GST_INPUT 1080, Cr party 7080
	require.Len(t, fx.store.entries, 3)
	byAccount := map[string]*entity.LedgerEntry{}
	for _, e := range fx.store.entries {
		byAccount[e.AccountName] = e
	}
	require.Contains(t, byAccount, accountPurchase)
	require.Contains(t, byAccount, accountGSTInput)
	require.Contains(t, byAccount, fx.party.Name)
	assert.True(t, byAccount[accountPurchase].Debit.Equal(decimal.NewFromInt(6000)))
	assert.True(t, byAccount[accountGSTInput].Debit.Equal(decimal.NewFromInt(1080)))
	assert.True(t, byAccount[fx.party.Name].Credit.Equal(resp.NetTotal))
	assert.Equal(t, entity.AccountSundryCreditors, byAccount[fx.party.Name].AccountType)
}

func TestCreateBill_DuplicateBillNoRejected(t *testing.T) {
	fx := newFixture(t, "29", 100)

	in := dto.CreateBillRequest{
		BillType: entity.BillTypeSales,
		BillNo:   "INV-001",
		PartyID:  fx.party.ID,
		Items: []dto.CreateBillItemRequest{
			{StockItemID: fx.item.ID, Quantity: decimal.NewFromInt(1)},
		},
	}
	_, err := fx.uc.Create(context.Background(), fx.firm.ID, "user-1", in)
	require.NoError(t, err)
	_, err = fx.uc.Create(context.Background(), fx.firm.ID, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCancelBill_ReversesStockAndLedger(t *testing.T) {
	fx := newFixture(t, "29", 100)

	created, err := fx.uc.Create(context.Background(), fx.firm.ID, "user-1", dto.CreateBillRequest{
		BillType: entity.BillTypeSales,
		PartyID:  fx.party.ID,
		Items: []dto.CreateBillItemRequest{
			{StockItemID: fx.item.ID, Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(400)},
		},
	})
	require.NoError(t, err)
	require.True(t, fx.store.items[fx.item.ID].CurrentStock.Equal(decimal.NewFromInt(90)))

	cancelled, err := fx.uc.Cancel(context.Background(), fx.firm.ID, "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusCancelled, cancelled.Status)

	// stock restored
	assert.True(t, fx.store.items[fx.item.ID].CurrentStock.Equal(decimal.NewFromInt(100)))

	// reversal entries mirror the originals; whole ledger still balances
	require.Len(t, fx.store.entries, 6)
	var totalDr, totalCr decimal.Decimal
	for _, e := range fx.store.entries {
		totalDr = totalDr.Add(e.Debit)
		totalCr = totalCr.Add(e.Credit)
	}
	assert.True(t, totalDr.Equal(totalCr))
	assert.Equal(t, "CANCEL "+created.BillNo, fx.store.entries[5].Reference)

	// cancelling twice conflicts
	_, err = fx.uc.Cancel(context.Background(), fx.firm.ID, "user-1", created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateBill_PartyTypeMismatchRejected(t *testing.T) {
	fx := newFixture(t, "29", 100)
	fx.party.PartyType = entity.PartyTypeSupplier

	_, err := fx.uc.Create(context.Background(), fx.firm.ID, "user-1", dto.CreateBillRequest{
		BillType: entity.BillTypeSales,
		PartyID:  fx.party.ID,
		Items: []dto.CreateBillItemRequest{
			{StockItemID: fx.item.ID, Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
