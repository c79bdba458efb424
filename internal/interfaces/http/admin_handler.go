package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/khatapro/khata-api/internal/application/auth"
	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/application/firms"
)

// AdminHandler firm administration and user approval (super_admin only).
type AdminHandler struct {
	firmUC *firms.FirmUseCase
	authUC *auth.AuthUseCase
}

// NewAdminHandler builds the handler.
func NewAdminHandler(firmUC *firms.FirmUseCase, authUC *auth.AuthUseCase) *AdminHandler {
	return &AdminHandler{firmUC: firmUC, authUC: authUC}
}

// CreateFirm godoc
// @Summary      Create a firm
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFirmRequest  true  "name, gstin, state_code, contact"
// @Success      201   {object}  dto.FirmResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/firms [post]
func (h *AdminHandler) CreateFirm(c *fiber.Ctx) error {
	var in dto.CreateFirmRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.firmUC.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListFirms lists all firms.
func (h *AdminHandler) ListFirms(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.firmUC.List(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "firms": out})
}

// GetFirm fetches one firm.
func (h *AdminHandler) GetFirm(c *fiber.Ctx) error {
	out, err := h.firmUC.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateFirm updates firm profile fields.
func (h *AdminHandler) UpdateFirm(c *fiber.Ctx) error {
	var in dto.CreateFirmRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.firmUC.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListPendingUsers lists users awaiting firm assignment.
func (h *AdminHandler) ListPendingUsers(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.authUC.ListPendingApproval(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "users": out})
}

// AssignUserFirm godoc
// @Summary      Assign a user to a firm
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "user id"
// @Param        body  body  dto.AssignFirmRequest  true  "firm_id"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/firm [put]
func (h *AdminHandler) AssignUserFirm(c *fiber.Ctx) error {
	var in dto.AssignFirmRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.authUC.AssignFirm(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
