package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/khatapro/khata-api/internal/application/auth"
	"github.com/khatapro/khata-api/internal/application/bills"
	"github.com/khatapro/khata-api/internal/application/exports"
	"github.com/khatapro/khata-api/internal/application/firms"
	"github.com/khatapro/khata-api/internal/application/parties"
	"github.com/khatapro/khata-api/internal/application/reports"
	"github.com/khatapro/khata-api/internal/application/stocks"
	infrapdf "github.com/khatapro/khata-api/internal/infrastructure/pdf"
	"github.com/khatapro/khata-api/internal/infrastructure/postgres"
	"github.com/khatapro/khata-api/internal/infrastructure/tally"
	httpRouter "github.com/khatapro/khata-api/internal/interfaces/http"
	"github.com/khatapro/khata-api/pkg/config"
	"github.com/khatapro/khata-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	firmRepo := postgres.NewFirmRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	partyRepo := postgres.NewPartyRepository(pool)
	itemRepo := postgres.NewStockItemRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	reportsRepo := postgres.NewReportsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, firmRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	firmUC := firms.NewFirmUseCase(firmRepo)
	postUC := stocks.NewPostMovementUseCase(txRunner, itemRepo)
	stockUC := stocks.NewStockItemUseCase(txRunner, itemRepo, movRepo, postUC)
	partyUC := parties.NewPartyUseCase(partyRepo, ledgerRepo)
	billUC := bills.NewBillUseCase(txRunner, postUC, firmRepo, partyRepo, itemRepo, billRepo)
	printUC := bills.NewPrintUseCase(billRepo, firmRepo, partyRepo, infrapdf.NewBillPDFGenerator())
	reportsUC := reports.NewReportsUseCase(reportsRepo, reports.Config{
		FilingDueDay: cfg.GST.FilingDueDay,
	})
	exportUC := exports.NewExportUseCase(firmRepo, ledgerRepo, tally.NewDayBookExporter())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Khata API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		FirmUC:    firmUC,
		StockUC:   stockUC,
		PostUC:    postUC,
		PartyUC:   partyUC,
		BillUC:    billUC,
		PrintUC:   printUC,
		ReportsUC: reportsUC,
		ExportUC:  exportUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
