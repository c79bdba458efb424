package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/application/reports"
	"github.com/khatapro/khata-api/internal/domain/repository"
)

// ReportHandler every read-only report: bills, stock, parties, GST,
// financial statements and the dashboard.
type ReportHandler struct {
	uc *reports.ReportsUseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *reports.ReportsUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// withRange wraps a report that only needs the firm and an optional date range.
func (h *ReportHandler) withRange(fn func(c *fiber.Ctx, firmID string, r repository.DateRange) (any, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := parseDateRange(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fromDate/toDate must be YYYY-MM-DD"})
		}
		out, err := fn(c, GetFirmID(c), r)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// BillSummary aggregates one bill type over the range.
func (h *ReportHandler) BillSummary(billType string) fiber.Handler {
	return h.withRange(func(c *fiber.Ctx, firmID string, r repository.DateRange) (any, error) {
		return h.uc.BillSummary(c.Context(), firmID, billType, r)
	})
}

// BillsByParty groups bill totals per party.
func (h *ReportHandler) BillsByParty(billType string) fiber.Handler {
	return h.withRange(func(c *fiber.Ctx, firmID string, r repository.DateRange) (any, error) {
		out, err := h.uc.BillsByParty(c.Context(), firmID, billType, r)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"total": len(out), "parties": out}, nil
	})
}

// BillsByItem groups bill-line totals per stock item.
func (h *ReportHandler) BillsByItem(billType string) fiber.Handler {
	return h.withRange(func(c *fiber.Ctx, firmID string, r repository.DateRange) (any, error) {
		out, err := h.uc.BillsByItem(c.Context(), firmID, billType, r)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"total": len(out), "items": out}, nil
	})
}

// BillsByMonth groups one year's bills by month; ?year= defaults to the current year.
func (h *ReportHandler) BillsByMonth(billType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year := c.QueryInt("year", time.Now().Year())
		out, err := h.uc.BillsByMonth(c.Context(), GetFirmID(c), billType, year)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"year": year, "months": out})
	}
}

// OutstandingBills lists the unpaid bills of one type.
func (h *ReportHandler) OutstandingBills(billType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.uc.OutstandingBills(c.Context(), GetFirmID(c), billType)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"total": len(out), "bills": out})
	}
}

// StockSummary returns the headline inventory numbers.
func (h *ReportHandler) StockSummary(c *fiber.Ctx) error {
	out, err := h.uc.StockSummary(c.Context(), GetFirmID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StockValuation returns per-item stock valuation.
func (h *ReportHandler) StockValuation(c *fiber.Ctx) error {
	out, err := h.uc.StockValuation(c.Context(), GetFirmID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// LowStock lists items at or below their minimum.
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.Context(), GetFirmID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// StockAging reports days since items last moved.
func (h *ReportHandler) StockAging(c *fiber.Ctx) error {
	out, err := h.uc.StockAging(c.Context(), GetFirmID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// PartyOutstanding returns receivables (SALES) or payables (PURCHASE).
func (h *ReportHandler) PartyOutstanding(billType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.uc.PartyOutstanding(c.Context(), GetFirmID(c), billType)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"total": len(out), "parties": out})
	}
}

// PartyAging buckets outstanding by bill age; ?as_of= defaults to today.
func (h *ReportHandler) PartyAging(billType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		asOf := time.Now()
		if s := c.Query("as_of"); s != "" {
			t, err := time.Parse(dateLayout, s)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "as_of must be YYYY-MM-DD"})
			}
			asOf = t
		}
		out, err := h.uc.PartyAging(c.Context(), GetFirmID(c), billType, asOf)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"as_of": asOf.Format(dateLayout), "parties": out})
	}
}

// GSTSummary nets output tax against input credit for the range.
func (h *ReportHandler) GSTSummary(c *fiber.Ctx) error {
	return h.withRange(func(c *fiber.Ctx, firmID string, r repository.DateRange) (any, error) {
		return h.uc.GSTSummary(c.Context(), firmID, r)
	})(c)
}

// GSTRegister lists per-bill tax detail for one bill type.
func (h *ReportHandler) GSTRegister(billType string) fiber.Handler {
	return h.withRange(func(c *fiber.Ctx, firmID string, r repository.DateRange) (any, error) {
		out, err := h.uc.GSTRegister(c.Context(), firmID, billType, r)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"total": len(out), "bills": out}, nil
	})
}

// GSTR1 godoc
// @Summary      GSTR-1 outward supplies return (b2b / b2cl / b2cs)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        month  query  int  true  "1-12"
// @Param        year   query  int  true  "e.g. 2025"
// @Success      200    {object}  dto.GSTR1Response
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/gst/gstr1 [get]
func (h *ReportHandler) GSTR1(c *fiber.Ctx) error {
	month, year, err := monthYear(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month and year are required"})
	}
	out, err := h.uc.GSTR1(c.Context(), GetFirmID(c), month, year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GSTR3B returns the monthly summary return.
func (h *ReportHandler) GSTR3B(c *fiber.Ctx) error {
	month, year, err := monthYear(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month and year are required"})
	}
	out, err := h.uc.GSTR3B(c.Context(), GetFirmID(c), month, year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TrialBalance returns per-account net balances with the imbalance surfaced.
func (h *ReportHandler) TrialBalance(c *fiber.Ctx) error {
	return h.withRange(func(c *fiber.Ctx, firmID string, r repository.DateRange) (any, error) {
		return h.uc.TrialBalance(c.Context(), firmID, r)
	})(c)
}

// ProfitLoss returns income vs expenses for the range.
func (h *ReportHandler) ProfitLoss(c *fiber.Ctx) error {
	return h.withRange(func(c *fiber.Ctx, firmID string, r repository.DateRange) (any, error) {
		return h.uc.ProfitLoss(c.Context(), firmID, r)
	})(c)
}

// BalanceSheet returns assets vs liabilities as of the range end.
func (h *ReportHandler) BalanceSheet(c *fiber.Ctx) error {
	return h.withRange(func(c *fiber.Ctx, firmID string, r repository.DateRange) (any, error) {
		return h.uc.BalanceSheet(c.Context(), firmID, r)
	})(c)
}

// CashFlow returns monthly cash/bank movement.
func (h *ReportHandler) CashFlow(c *fiber.Ctx) error {
	return h.withRange(func(c *fiber.Ctx, firmID string, r repository.DateRange) (any, error) {
		return h.uc.CashFlow(c.Context(), firmID, r)
	})(c)
}

// DashboardOverview returns the headline widgets.
func (h *ReportHandler) DashboardOverview(c *fiber.Ctx) error {
	out, err := h.uc.DashboardOverview(c.Context(), GetFirmID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DashboardCharts returns the chart series.
func (h *ReportHandler) DashboardCharts(c *fiber.Ctx) error {
	out, err := h.uc.DashboardCharts(c.Context(), GetFirmID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func monthYear(c *fiber.Ctx) (month, year int, err error) {
	month = c.QueryInt("month")
	year = c.QueryInt("year")
	if month < 1 || month > 12 || year < 2000 {
		return 0, 0, fiber.ErrBadRequest
	}
	return month, year, nil
}
