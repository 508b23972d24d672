package http

import (
	"github.com/gofiber/fiber/v2"

	appledger "github.com/fikagroup/produccion-api/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterMovement *appledger.RegisterMovementUseCase
	Reports          *appledger.ReportUseCase
	ResetLedger      *appledger.ResetLedgerUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	h := NewLedgerHandler(deps.RegisterMovement, deps.Reports, deps.ResetLedger)

	// Lectura (pública)
	api.Get("/catalog", h.Catalog)
	ledger := api.Group("/ledger")
	ledger.Get("/movements", h.ListMovements)
	ledger.Get("/stock", h.Stock)
	ledger.Get("/summary", h.Summary)
	ledger.Get("/report.pdf", h.ReportPDF)

	// Escritura (Bearer Token si JWT_SECRET está configurado)
	auth := AuthMiddleware(deps.JWTSecret)
	ledger.Post("/movements", auth, h.RegisterMovement)
	ledger.Post("/transformations", auth, h.RegisterTransformation)
	ledger.Delete("/", auth, h.Reset)
}
