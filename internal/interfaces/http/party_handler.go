package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/application/parties"
)

// PartyHandler customer/supplier CRUD and the party ledger.
type PartyHandler struct {
	uc *parties.PartyUseCase
}

// NewPartyHandler builds the handler.
func NewPartyHandler(uc *parties.PartyUseCase) *PartyHandler {
	return &PartyHandler{uc: uc}
}

// Create godoc
// @Summary      Create a party (customer/supplier)
// @Tags         parties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartyRequest  true  "name, party_type, gstin, contact, opening balance"
// @Success      201   {object}  dto.PartyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/parties [post]
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(GetFirmID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List pages the firm's parties; ?type=CUSTOMER|SUPPLIER filters.
func (h *PartyHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.uc.List(GetFirmID(c), c.Query("type"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID fetches one party.
func (h *PartyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetFirmID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update updates party fields.
func (h *PartyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(GetFirmID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete removes a party.
func (h *PartyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetFirmID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}

// GetLedger godoc
// @Summary      Party ledger statement with running balance
// @Tags         parties
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "party id"
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {object}  dto.PartyLedgerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parties/{id}/ledger [get]
func (h *PartyHandler) GetLedger(c *fiber.Ctx) error {
	r, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fromDate/toDate must be YYYY-MM-DD"})
	}
	out, err := h.uc.GetLedger(GetFirmID(c), c.Params("id"), r.From, r.To)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
