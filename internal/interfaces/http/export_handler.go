package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/application/exports"
)

// ExportHandler hands ledger data to external accounting tools.
type ExportHandler struct {
	uc *exports.ExportUseCase
}

// NewExportHandler builds the handler.
func NewExportHandler(uc *exports.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Tally godoc
// @Summary      Export ledger vouchers as Tally import XML
// @Tags         exports
// @Security     Bearer
// @Produce      xml
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {string}  string  "Tally ENVELOPE XML"
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/exports/tally [get]
func (h *ExportHandler) Tally(c *fiber.Ctx) error {
	r, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fromDate/toDate must be YYYY-MM-DD"})
	}
	data, err := h.uc.ExportTally(c.Context(), GetFirmID(c), r.From, r.To)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="tally_vouchers.xml"`)
	return c.Send(data)
}
