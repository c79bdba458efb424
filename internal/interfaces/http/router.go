package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/khatapro/khata-api/internal/application/auth"
	"github.com/khatapro/khata-api/internal/application/bills"
	"github.com/khatapro/khata-api/internal/application/exports"
	"github.com/khatapro/khata-api/internal/application/firms"
	"github.com/khatapro/khata-api/internal/application/parties"
	"github.com/khatapro/khata-api/internal/application/reports"
	"github.com/khatapro/khata-api/internal/application/stocks"
	"github.com/khatapro/khata-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	FirmUC    *firms.FirmUseCase
	StockUC   *stocks.StockItemUseCase
	PostUC    *stocks.PostMovementUseCase
	PartyUC   *parties.PartyUseCase
	BillUC    *bills.BillUseCase
	PrintUC   *bills.PrintUseCase
	ReportsUC *reports.ReportsUseCase
	ExportUC  *exports.ExportUseCase
	JWTSecret string
}

// Router registers the API routes. Everything except /auth sits behind the
// JWT middleware; firm-scoped groups additionally require an assigned firm.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Admin: firm management and user approval
	admin := protected.Group("/admin", RequireRole(entity.RoleSuperAdmin))
	adminHandler := NewAdminHandler(deps.FirmUC, deps.AuthUC)
	admin.Post("/firms", adminHandler.CreateFirm)
	admin.Get("/firms", adminHandler.ListFirms)
	admin.Get("/firms/:id", adminHandler.GetFirm)
	admin.Put("/firms/:id", adminHandler.UpdateFirm)
	admin.Get("/users/pending", adminHandler.ListPendingUsers)
	admin.Put("/users/:id/firm", adminHandler.AssignUserFirm)

	// Everything below is firm-scoped
	firm := protected.Group("/", RequireFirm())

	stocksGroup := firm.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockUC, deps.PostUC)
	stocksGroup.Post("/", stockHandler.Create)
	stocksGroup.Get("/", stockHandler.List)
	stocksGroup.Post("/bulk/import", stockHandler.BulkImport)
	stocksGroup.Get("/bulk/export", stockHandler.BulkExport)
	stocksGroup.Get("/search/:query", stockHandler.Search)
	stocksGroup.Get("/:id", stockHandler.GetByID)
	stocksGroup.Put("/:id", stockHandler.Update)
	stocksGroup.Delete("/:id", RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin), stockHandler.Delete)
	stocksGroup.Post("/:id/movements", stockHandler.PostMovement)
	stocksGroup.Get("/:id/register", stockHandler.GetRegister)
	stocksGroup.Post("/:id/adjust", stockHandler.Adjust)

	partiesGroup := firm.Group("/parties")
	partyHandler := NewPartyHandler(deps.PartyUC)
	partiesGroup.Post("/", partyHandler.Create)
	partiesGroup.Get("/", partyHandler.List)
	partiesGroup.Get("/:id", partyHandler.GetByID)
	partiesGroup.Put("/:id", partyHandler.Update)
	partiesGroup.Delete("/:id", RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin), partyHandler.Delete)
	partiesGroup.Get("/:id/ledger", partyHandler.GetLedger)

	billsGroup := firm.Group("/bills")
	billHandler := NewBillHandler(deps.BillUC, deps.PrintUC)
	billsGroup.Post("/", billHandler.Create)
	billsGroup.Get("/", billHandler.List)
	billsGroup.Get("/:id", billHandler.GetByID)
	billsGroup.Post("/:id/cancel", RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleAccountant), billHandler.Cancel)
	billsGroup.Get("/:id/pdf", billHandler.GetPDF)

	reportsGroup := firm.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC)
	for _, bt := range []struct {
		prefix   string
		billType string
	}{
		{"/sales", entity.BillTypeSales},
		{"/purchase", entity.BillTypePurchase},
	} {
		g := reportsGroup.Group(bt.prefix)
		g.Get("/summary", reportHandler.BillSummary(bt.billType))
		g.Get("/by-party", reportHandler.BillsByParty(bt.billType))
		g.Get("/by-item", reportHandler.BillsByItem(bt.billType))
		g.Get("/by-month", reportHandler.BillsByMonth(bt.billType))
		g.Get("/outstanding", reportHandler.OutstandingBills(bt.billType))
	}

	stockReports := reportsGroup.Group("/stock")
	stockReports.Get("/summary", reportHandler.StockSummary)
	stockReports.Get("/valuation", reportHandler.StockValuation)
	stockReports.Get("/movements", stockHandler.StockMovements)
	stockReports.Get("/low-stock", reportHandler.LowStock)
	stockReports.Get("/aging", reportHandler.StockAging)

	partyReports := reportsGroup.Group("/party")
	partyReports.Get("/debtors", reportHandler.PartyOutstanding(entity.BillTypeSales))
	partyReports.Get("/creditors", reportHandler.PartyOutstanding(entity.BillTypePurchase))
	partyReports.Get("/debtors/aging", reportHandler.PartyAging(entity.BillTypeSales))
	partyReports.Get("/creditors/aging", reportHandler.PartyAging(entity.BillTypePurchase))

	gstReports := reportsGroup.Group("/gst")
	gstReports.Get("/summary", reportHandler.GSTSummary)
	gstReports.Get("/sales", reportHandler.GSTRegister(entity.BillTypeSales))
	gstReports.Get("/purchase", reportHandler.GSTRegister(entity.BillTypePurchase))
	gstReports.Get("/gstr1", reportHandler.GSTR1)
	gstReports.Get("/gstr3b", reportHandler.GSTR3B)

	financial := reportsGroup.Group("/financial")
	financial.Get("/trial-balance", reportHandler.TrialBalance)
	financial.Get("/profit-loss", reportHandler.ProfitLoss)
	financial.Get("/balance-sheet", reportHandler.BalanceSheet)
	financial.Get("/cash-flow", reportHandler.CashFlow)

	dashboard := reportsGroup.Group("/dashboard")
	dashboard.Get("/overview", reportHandler.DashboardOverview)
	dashboard.Get("/charts", reportHandler.DashboardCharts)

	exportsGroup := firm.Group("/exports")
	exportHandler := NewExportHandler(deps.ExportUC)
	exportsGroup.Get("/tally", exportHandler.Tally)
}
