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

	appledger "github.com/fikagroup/produccion-api/internal/application/ledger"
	"github.com/fikagroup/produccion-api/internal/infrastructure/backend"
	infrapdf "github.com/fikagroup/produccion-api/internal/infrastructure/pdf"
	httpRouter "github.com/fikagroup/produccion-api/internal/interfaces/http"
	"github.com/fikagroup/produccion-api/pkg/config"
	"github.com/fikagroup/produccion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Ledger.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	ledgerBackend, closeBackend, err := backend.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir backend del ledger")
	}
	defer closeBackend()

	// El ledger vive lo que vive el proceso y se comparte entre casos de uso.
	store := appledger.NewStore(ledgerBackend, log)
	registerUC := appledger.NewRegisterMovementUseCase(store, log)
	reportUC := appledger.NewReportUseCase(store, infrapdf.NewMarotoLedgerReport(), appledger.ReportOptions{
		Title:    cfg.Report.Title,
		Currency: cfg.Report.Currency,
	}, log)
	resetUC := appledger.NewResetLedgerUseCase(store, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestión de Producción API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "backend": store.Backend()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterMovement: registerUC,
		Reports:          reportUC,
		ResetLedger:      resetUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: rutas de escritura sin autenticación")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
