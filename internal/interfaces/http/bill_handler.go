package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/khatapro/khata-api/internal/application/bills"
	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/domain/repository"
)

// BillHandler sales/purchase bill posting, listing, cancellation and print.
type BillHandler struct {
	uc      *bills.BillUseCase
	printUC *bills.PrintUseCase
}

// NewBillHandler builds the handler.
func NewBillHandler(uc *bills.BillUseCase, printUC *bills.PrintUseCase) *BillHandler {
	return &BillHandler{uc: uc, printUC: printUC}
}

// Create godoc
// @Summary      Post a sales or purchase bill
// @Description  Moves stock, writes balanced ledger entries and stores the bill
//
//	in one transaction.
//
// @Tags         bills
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBillRequest  true  "bill_type, party_id, items"
// @Success      201   {object}  dto.BillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bills [post]
func (h *BillHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetFirmID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List pages the firm's bills; ?type=, ?status=, ?party_id=, ?from=, ?to= filter.
func (h *BillHandler) List(c *fiber.Ctx) error {
	r, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fromDate/toDate must be YYYY-MM-DD"})
	}
	limit, offset := parsePage(c)
	f := repository.BillFilter{
		BillType: c.Query("type"),
		Status:   c.Query("status"),
		PartyID:  c.Query("party_id"),
		From:     r.From,
		To:       r.To,
	}
	out, err := h.uc.List(GetFirmID(c), f, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID fetches one bill with its lines.
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetFirmID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancel a bill
// @Description  Reverses the stock movements and ledger entries; history stays intact.
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "bill id"
// @Success      200  {object}  dto.BillResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/cancel [post]
func (h *BillHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Context(), GetFirmID(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetPDF streams the bill as a printable PDF.
func (h *BillHandler) GetPDF(c *fiber.Ctx) error {
	data, filename, err := h.printUC.RenderBillPDF(c.Context(), GetFirmID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
