package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fikagroup/produccion-api/internal/application/dto"
	appledger "github.com/fikagroup/produccion-api/internal/application/ledger"
	"github.com/fikagroup/produccion-api/internal/domain"
	"github.com/fikagroup/produccion-api/internal/domain/entity"
)

// LedgerHandler maneja las peticiones HTTP del ledger de producción y ventas.
type LedgerHandler struct {
	register *appledger.RegisterMovementUseCase
	reports  *appledger.ReportUseCase
	reset    *appledger.ResetLedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(register *appledger.RegisterMovementUseCase, reports *appledger.ReportUseCase, reset *appledger.ResetLedgerUseCase) *LedgerHandler {
	return &LedgerHandler{register: register, reports: reports, reset: reset}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "categoría, descripción, cantidad, tipo, costo unitario"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/ledger/movements [post]
func (h *LedgerHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	date, err := parseOptionalDate(in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida"})
	}
	rec, err := h.register.RegisterMovement(c.Context(), appledger.MovementInputDTO{
		Date:        date,
		Category:    in.Category,
		Description: in.Description,
		Lot:         in.Lot,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		Type:        in.Type,
		UnitCost:    in.UnitCost,
		Notes:       in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(*rec))
}

// RegisterTransformation godoc
// @Summary      Registrar transformación (insumo → producto)
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterTransformationRequest  true  "insumo consumido y producto obtenido"
// @Success      201   {object}  dto.TransformationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/ledger/transformations [post]
func (h *LedgerHandler) RegisterTransformation(c *fiber.Ctx) error {
	var in dto.RegisterTransformationRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	date, err := parseOptionalDate(in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida"})
	}
	res, err := h.register.RegisterTransformation(c.Context(), appledger.TransformationInputDTO{
		Date:                date,
		SourceCategory:      in.SourceCategory,
		ConsumedDescription: in.ConsumedDescription,
		ConsumedQuantity:    in.ConsumedQuantity,
		ConsumedUnit:        in.ConsumedUnit,
		TargetCategory:      in.TargetCategory,
		ProducedDescription: in.ProducedDescription,
		ProducedQuantity:    in.ProducedQuantity,
		ProducedUnit:        in.ProducedUnit,
		TotalCost:           in.TotalCost,
		Lot:                 in.Lot,
		Notes:               in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransformationResponse{
		TransactionID: res.TransactionID,
		Consumption:   dto.NewMovementResponse(res.Consumption),
		Production:    dto.NewMovementResponse(res.Production),
	})
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Tags         ledger
// @Produce      json
// @Param        category       query  string  false  "categorías separadas por coma"
// @Param        movement_type  query  string  false  "tipos separados por coma"
// @Param        sort           query  string  false  "date = ordenar por fecha"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ledger/movements [get]
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	var q appledger.MovementQuery
	for _, s := range splitQuery(c.Query("category")) {
		cat, ok := entity.ParseCategory(s)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "categoría desconocida: " + s})
		}
		q.Categories = append(q.Categories, cat)
	}
	for _, s := range splitQuery(c.Query("movement_type")) {
		t, ok := entity.ParseMovementType(s)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de movimiento desconocido: " + s})
		}
		q.Types = append(q.Types, t)
	}
	q.SortByDate = c.Query("sort") == "date"

	list, err := h.reports.ListMovements(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.NewMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{Total: len(out), Movements: out})
}

// Stock godoc
// @Summary      Stock neto por ítem
// @Tags         ledger
// @Produce      json
// @Success      200  {object}  dto.StockListResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ledger/stock [get]
func (h *LedgerHandler) Stock(c *fiber.Ctx) error {
	levels, err := h.reports.Stock(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.NewStockLevelResponse(l))
	}
	return c.JSON(dto.StockListResponse{Total: len(out), Items: out})
}

// Summary godoc
// @Summary      Resumen financiero
// @Tags         ledger
// @Produce      json
// @Success      200  {object}  dto.FinancialSummaryResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ledger/summary [get]
func (h *LedgerHandler) Summary(c *fiber.Ctx) error {
	s, err := h.reports.Summary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewFinancialSummaryResponse(s))
}

// ReportPDF godoc
// @Summary      Exportar reporte PDF
// @Tags         ledger
// @Produce      application/pdf
// @Success      200
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ledger/report.pdf [get]
func (h *LedgerHandler) ReportPDF(c *fiber.Ctx) error {
	doc, err := h.reports.ExportPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="ledger.pdf"`)
	return c.Send(doc)
}

// Reset godoc
// @Summary      Vaciar el ledger
// @Tags         ledger
// @Security     Bearer
// @Success      204
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ledger [delete]
func (h *LedgerHandler) Reset(c *fiber.Ctx) error {
	if err := h.reset.Reset(c.Context(), GetOperator(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Catalog godoc
// @Summary      Opciones del formulario
// @Tags         ledger
// @Produce      json
// @Success      200  {object}  dto.CatalogResponse
// @Router       /api/catalog [get]
func (h *LedgerHandler) Catalog(c *fiber.Ctx) error {
	return c.JSON(dto.NewCatalogResponse())
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case domain.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrPersistenceUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PERSISTENCE_UNAVAILABLE", Message: "no se pudo acceder al ledger, intente nuevamente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func splitQuery(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
