package bills

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/application/stocks"
	"github.com/khatapro/khata-api/internal/domain"
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/gst"
	"github.com/khatapro/khata-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Ledger account names written by bill posting.
const (
	accountSales     = "SALES"
	accountPurchase  = "PURCHASE"
	accountGSTOutput = "GST_OUTPUT"
	accountGSTInput  = "GST_INPUT"
)

// BillUseCase creates, cancels and reads bills. Posting a bill writes its
// stock movements and double-entry ledger rows in the same transaction, so a
// failed line (for example an oversell) rolls everything back.
type BillUseCase struct {
	txRunner  BillingTxRunner
	poster    StockPoster
	firmRepo  repository.FirmRepository
	partyRepo repository.PartyRepository
	itemRepo  repository.StockItemRepository
	billRepo  repository.BillRepository
}

// NewBillUseCase builds the use case.
func NewBillUseCase(
	txRunner BillingTxRunner,
	poster StockPoster,
	firmRepo repository.FirmRepository,
	partyRepo repository.PartyRepository,
	itemRepo repository.StockItemRepository,
	billRepo repository.BillRepository,
) *BillUseCase {
	return &BillUseCase{
		txRunner:  txRunner,
		poster:    poster,
		firmRepo:  firmRepo,
		partyRepo: partyRepo,
		itemRepo:  itemRepo,
		billRepo:  billRepo,
	}
}

// Create posts a SALES or PURCHASE bill: validates the party and lines,
// moves stock per line (OUT for sales, IN for purchases), splits GST between
// CGST/SGST and IGST by state, and appends the double-entry ledger rows.
func (uc *BillUseCase) Create(ctx context.Context, firmID, userID string, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	if in.BillType != entity.BillTypeSales && in.BillType != entity.BillTypePurchase {
		return nil, domain.ErrInvalidInput
	}
	if in.PartyID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	firm, err := uc.firmRepo.GetByID(firmID)
	if err != nil || firm == nil {
		return nil, domain.ErrNotFound
	}
	party, err := uc.partyRepo.GetByID(in.PartyID)
	if err != nil || party == nil {
		return nil, domain.ErrNotFound
	}
	if party.FirmID != firmID {
		return nil, domain.ErrForbidden
	}
	if in.BillType == entity.BillTypeSales && party.PartyType == entity.PartyTypeSupplier {
		return nil, domain.ErrInvalidInput
	}
	if in.BillType == entity.BillTypePurchase && party.PartyType == entity.PartyTypeCustomer {
		return nil, domain.ErrInvalidInput
	}

	// Validate lines outside the transaction (read only). Zero rate falls
	// back to the item's sale or purchase rate by bill type.
	itemsByID := make(map[string]*entity.StockItem)
	for i := range in.Items {
		line := &in.Items[i]
		if line.StockItemID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if line.Rate.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(line.StockItemID)
		if err != nil || item == nil {
			return nil, domain.ErrNotFound
		}
		if item.FirmID != firmID {
			return nil, domain.ErrForbidden
		}
		itemsByID[line.StockItemID] = item
		if line.Rate.IsZero() {
			if in.BillType == entity.BillTypeSales {
				line.Rate = item.SaleRate
			} else {
				line.Rate = item.PurchaseRate
			}
		}
	}

	now := time.Now()
	billDate := now
	if in.BillDate != nil {
		billDate = *in.BillDate
	}
	billNo := in.BillNo
	if billNo == "" {
		billNo = autoBillNo(in.BillType, now)
	} else {
		existing, _ := uc.billRepo.GetByFirmTypeAndNo(firmID, in.BillType, billNo)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	billID := uuid.New().String()
	var bill *entity.Bill
	var billItems []*entity.BillItem

	err = uc.txRunner.RunBilling(ctx, func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
		ledgerRepo repository.LedgerRepository,
		billRepo repository.BillRepository,
	) error {
		movementType := entity.MovementTypeOUT
		refType := entity.RefTypeSale
		if in.BillType == entity.BillTypePurchase {
			movementType = entity.MovementTypeIN
			refType = entity.RefTypePurchase
		}

		var grossTotal, taxTotal decimal.Decimal
		for _, line := range in.Items {
			item := itemsByID[line.StockItemID]
			if _, err := uc.poster.PostInTx(movRepo, itemRepo, stocks.PostInput{
				FirmID:       firmID,
				UserID:       userID,
				StockItemID:  line.StockItemID,
				MovementType: movementType,
				RefType:      refType,
				RefID:        billID,
				Quantity:     line.Quantity,
				Rate:         line.Rate,
				When:         now,
			}); err != nil {
				return err
			}

			amount := line.Quantity.Mul(line.Rate)
			grossTotal = grossTotal.Add(amount)
			taxTotal = taxTotal.Add(amount.Mul(item.GSTRate).Div(oneHundred))
			billItems = append(billItems, &entity.BillItem{
				ID:          uuid.New().String(),
				BillID:      billID,
				StockItemID: line.StockItemID,
				Description: item.Name,
				HSNCode:     item.HSNCode,
				Quantity:    line.Quantity,
				Rate:        line.Rate,
				Amount:      amount,
				GSTRate:     item.GSTRate,
			})
		}

		cgst, sgst, igst := gst.SplitTax(taxTotal, firm.StateCode, party.StateCode)
		netTotal := grossTotal.Add(taxTotal)

		bill = &entity.Bill{
			ID:         billID,
			FirmID:     firmID,
			BillType:   in.BillType,
			BillNo:     billNo,
			BillDate:   billDate,
			DueDate:    in.DueDate,
			PartyID:    party.ID,
			PartyName:  party.Name,
			GSTIN:      party.GSTIN,
			GrossTotal: grossTotal,
			CGST:       cgst,
			SGST:       sgst,
			IGST:       igst,
			NetTotal:   netTotal,
			PaidAmount: decimal.Zero,
			Status:     entity.BillStatusApproved,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := billRepo.Create(bill, billItems); err != nil {
			return err
		}
		return uc.postLedger(ledgerRepo, bill, party, false)
	})
	if err != nil {
		return nil, err
	}
	return toBillResponse(bill, billItems), nil
}

// Cancel marks a bill CANCELLED, reverses its stock movements and appends
// reversal ledger rows. Cancelled bills drop out of every report.
func (uc *BillUseCase) Cancel(ctx context.Context, firmID, userID, billID string) (*dto.BillResponse, error) {
	bill, err := uc.billRepo.GetByID(billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	if bill.FirmID != firmID {
		return nil, domain.ErrForbidden
	}
	if bill.Status == entity.BillStatusCancelled {
		return nil, domain.ErrConflict
	}
	party, err := uc.partyRepo.GetByID(bill.PartyID)
	if err != nil || party == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.billRepo.GetItems(billID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = uc.txRunner.RunBilling(ctx, func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
		ledgerRepo repository.LedgerRepository,
		billRepo repository.BillRepository,
	) error {
		// Reversal direction: cancelling a sale returns stock, cancelling a
		// purchase removes it (and can itself hit insufficient stock).
		movementType := entity.MovementTypeIN
		if bill.BillType == entity.BillTypePurchase {
			movementType = entity.MovementTypeOUT
		}
		for _, line := range items {
			if _, err := uc.poster.PostInTx(movRepo, itemRepo, stocks.PostInput{
				FirmID:       firmID,
				UserID:       userID,
				StockItemID:  line.StockItemID,
				MovementType: movementType,
				RefType:      entity.RefTypeAdjustment,
				RefID:        bill.ID,
				Quantity:     line.Quantity,
				Rate:         line.Rate,
				Remarks:      "cancel " + bill.BillNo,
				When:         now,
			}); err != nil {
				return err
			}
		}
		if err := uc.postLedger(ledgerRepo, bill, party, true); err != nil {
			return err
		}
		return billRepo.UpdateStatus(bill.ID, entity.BillStatusCancelled)
	})
	if err != nil {
		return nil, err
	}
	bill.Status = entity.BillStatusCancelled
	return toBillResponse(bill, items), nil
}

// GetByID fetches a bill with its lines.
func (uc *BillUseCase) GetByID(firmID, id string) (*dto.BillResponse, error) {
	bill, err := uc.billRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	if bill.FirmID != firmID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.billRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	return toBillResponse(bill, items), nil
}

// List pages through the firm's bills with optional additive filters.
func (uc *BillUseCase) List(firmID string, f repository.BillFilter, limit, offset int) (*dto.BillListResponse, error) {
	list, err := uc.billRepo.ListByFirm(firmID, f, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BillResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBillResponse(b, nil))
	}
	return &dto.BillListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// postLedger appends the double-entry rows for a bill. reverse swaps every
// debit and credit, producing the cancellation contra entries.
func (uc *BillUseCase) postLedger(ledgerRepo repository.LedgerRepository, bill *entity.Bill, party *entity.Party, reverse bool) error {
	taxTotal := bill.CGST.Add(bill.SGST).Add(bill.IGST)
	reference := bill.BillNo
	if reverse {
		reference = "CANCEL " + bill.BillNo
	}

	type row struct {
		account     string
		accountType string
		debit       decimal.Decimal
		credit      decimal.Decimal
	}
	var rows []row
	if bill.BillType == entity.BillTypeSales {
		rows = []row{
			{party.Name, entity.AccountSundryDebtors, bill.NetTotal, decimal.Zero},
			{accountSales, entity.AccountIncome, decimal.Zero, bill.GrossTotal},
		}
		if taxTotal.GreaterThan(decimal.Zero) {
			rows = append(rows, row{accountGSTOutput, entity.AccountLiabilities, decimal.Zero, taxTotal})
		}
	} else {
		rows = []row{
			{accountPurchase, entity.AccountExpenses, bill.GrossTotal, decimal.Zero},
			{party.Name, entity.AccountSundryCreditors, decimal.Zero, bill.NetTotal},
		}
		if taxTotal.GreaterThan(decimal.Zero) {
			rows = append(rows, row{accountGSTInput, entity.AccountAssets, taxTotal, decimal.Zero})
		}
	}

	now := time.Now()
	for _, r := range rows {
		debit, credit := r.debit, r.credit
		if reverse {
			debit, credit = credit, debit
		}
		entry := &entity.LedgerEntry{
			ID:          uuid.New().String(),
			FirmID:      bill.FirmID,
			AccountName: r.account,
			AccountType: r.accountType,
			EntryDate:   now,
			Debit:       debit,
			Credit:      credit,
			Reference:   reference,
			CreatedAt:   now,
		}
		if err := ledgerRepo.Create(entry); err != nil {
			return err
		}
	}
	return nil
}

func autoBillNo(billType string, now time.Time) string {
	prefix := "SAL"
	if billType == entity.BillTypePurchase {
		prefix = "PUR"
	}
	return fmt.Sprintf("%s-%d", prefix, now.UnixNano())
}

func toBillResponse(b *entity.Bill, items []*entity.BillItem) *dto.BillResponse {
	if b == nil {
		return nil
	}
	resp := &dto.BillResponse{
		ID:          b.ID,
		FirmID:      b.FirmID,
		BillType:    b.BillType,
		BillNo:      b.BillNo,
		BillDate:    b.BillDate,
		DueDate:     b.DueDate,
		PartyID:     b.PartyID,
		PartyName:   b.PartyName,
		GSTIN:       b.GSTIN,
		GrossTotal:  b.GrossTotal,
		CGST:        b.CGST,
		SGST:        b.SGST,
		IGST:        b.IGST,
		NetTotal:    b.NetTotal,
		PaidAmount:  b.PaidAmount,
		Outstanding: b.Outstanding(),
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.BillItemResponse{
			ID:          it.ID,
			StockItemID: it.StockItemID,
			Description: it.Description,
			HSNCode:     it.HSNCode,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Amount:      it.Amount,
			GSTRate:     it.GSTRate,
		})
	}
	return resp
}
