package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/application/stocks"
)

// StockHandler stock item CRUD, movement posting and the item register.
type StockHandler struct {
	itemUC *stocks.StockItemUseCase
	postUC *stocks.PostMovementUseCase
}

// NewStockHandler builds the handler.
func NewStockHandler(itemUC *stocks.StockItemUseCase, postUC *stocks.PostMovementUseCase) *StockHandler {
	return &StockHandler{itemUC: itemUC, postUC: postUC}
}

// Create godoc
// @Summary      Create a stock item
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockItemRequest  true  "name, code, unit, rates, opening stock"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.itemUC.Create(c.Context(), GetFirmID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List pages the firm's items; ?category= and ?include_inactive=true filter.
func (h *StockHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.itemUC.List(GetFirmID(c), c.Query("category"), c.QueryBool("include_inactive"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID fetches one item.
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.itemUC.GetByID(GetFirmID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update updates item master fields.
func (h *StockHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.itemUC.Update(GetFirmID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete removes an item, or deactivates it when it already has movements.
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.itemUC.Delete(GetFirmID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return c.JSON(fiber.Map{"deleted": false, "message": "item has movements, deactivated instead"})
	}
	return c.JSON(fiber.Map{"deleted": true})
}

// Search matches items by name or code.
func (h *StockHandler) Search(c *fiber.Ctx) error {
	limit, _ := parsePage(c)
	out, err := h.itemUC.Search(GetFirmID(c), c.Params("query"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// PostMovement godoc
// @Summary      Post a stock movement (IN/OUT adjustment)
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "stock item id"
// @Param        body  body  dto.PostMovementRequest  true  "movement_type, quantity, rate, remarks"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks/{id}/movements [post]
func (h *StockHandler) PostMovement(c *fiber.Ctx) error {
	var in dto.PostMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.postUC.PostMovement(c.Context(), GetFirmID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Adjust sets the item's stock to a target quantity.
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.postUC.AdjustStock(c.Context(), GetFirmID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetRegister pages one item's movement register.
func (h *StockHandler) GetRegister(c *fiber.Ctx) error {
	r, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fromDate/toDate must be YYYY-MM-DD"})
	}
	limit, offset := parsePage(c)
	out, err := h.itemUC.GetRegister(GetFirmID(c), c.Params("id"), r.From, r.To, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StockMovements is the report-side view of the register, addressed by
// ?stock_id instead of a path param.
func (h *StockHandler) StockMovements(c *fiber.Ctx) error {
	stockID := c.Query("stock_id")
	if stockID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stock_id is required"})
	}
	r, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fromDate/toDate must be YYYY-MM-DD"})
	}
	limit, offset := parsePage(c)
	out, err := h.itemUC.GetRegister(GetFirmID(c), stockID, r.From, r.To, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BulkImport creates many items in one call; failures are reported per row.
func (h *StockHandler) BulkImport(c *fiber.Ctx) error {
	var in dto.BulkImportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.itemUC.BulkImport(c.Context(), GetFirmID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BulkExport dumps the firm's items; ?format=csv downloads a CSV file,
// anything else returns JSON.
func (h *StockHandler) BulkExport(c *fiber.Ctx) error {
	firmID := GetFirmID(c)
	if c.Query("format") == "csv" {
		data, err := h.itemUC.ExportCSV(firmID)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock_items.csv"`)
		return c.Send(data)
	}
	out, err := h.itemUC.Export(firmID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}
