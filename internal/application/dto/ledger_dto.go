package dto

import (
	"github.com/shopspring/decimal"

	"github.com/fikagroup/produccion-api/internal/domain/entity"
	domledger "github.com/fikagroup/produccion-api/internal/domain/ledger"
)

// DateLayout formato de fecha calendario en requests y responses.
const DateLayout = "2006-01-02"

// RegisterMovementRequest body para POST /api/ledger/movements.
type RegisterMovementRequest struct {
	Date        string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description"`
	Lot         string          `json:"lot,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
	Type        string          `json:"movement_type" validate:"required"`
	UnitCost    decimal.Decimal `json:"unit_cost" validate:"gte=0"`
	Notes       string          `json:"notes,omitempty"`
}

// RegisterTransformationRequest body para POST /api/ledger/transformations.
type RegisterTransformationRequest struct {
	Date                string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	SourceCategory      string          `json:"source_category" validate:"required"`
	ConsumedDescription string          `json:"consumed_description"`
	ConsumedQuantity    decimal.Decimal `json:"consumed_quantity" validate:"gte=0"`
	ConsumedUnit        string          `json:"consumed_unit,omitempty"`
	TargetCategory      string          `json:"target_category" validate:"required"`
	ProducedDescription string          `json:"produced_description"`
	ProducedQuantity    decimal.Decimal `json:"produced_quantity" validate:"gte=0"`
	ProducedUnit        string          `json:"produced_unit,omitempty"`
	TotalCost           decimal.Decimal `json:"total_cost" validate:"gte=0"`
	Lot                 string          `json:"lot,omitempty"`
	Notes               string          `json:"notes,omitempty"`
}

// MovementResponse una fila del ledger.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	Date          string          `json:"date"`
	Category      string          `json:"category"`
	CategoryLabel string          `json:"category_label"`
	Description   string          `json:"description"`
	Lot           string          `json:"lot"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	MovementType  string          `json:"movement_type"`
	MovementLabel string          `json:"movement_label"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Total         decimal.Decimal `json:"total"`
	Notes         string          `json:"notes"`
}

// TransformationResponse respuesta de una transformación.
type TransformationResponse struct {
	TransactionID string           `json:"transaction_id"`
	Consumption   MovementResponse `json:"consumption"`
	Production    MovementResponse `json:"production"`
}

// StockLevelResponse stock neto de un ítem.
type StockLevelResponse struct {
	Category      string          `json:"category"`
	CategoryLabel string          `json:"category_label"`
	Description   string          `json:"description"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	Movements     int             `json:"movements"`
}

// MovementListResponse respuesta de GET /api/ledger/movements.
type MovementListResponse struct {
	Total     int                `json:"total"`
	Movements []MovementResponse `json:"movements"`
}

// StockListResponse respuesta de GET /api/ledger/stock.
type StockListResponse struct {
	Total int                  `json:"total"`
	Items []StockLevelResponse `json:"items"`
}

// FinancialSummaryResponse resumen financiero del ledger.
type FinancialSummaryResponse struct {
	SalesTotal       decimal.Decimal `json:"sales_total"`
	PurchasesTotal   decimal.Decimal `json:"purchases_total"`
	SamplesCostTotal decimal.Decimal `json:"samples_cost_total"`
	Balance          decimal.Decimal `json:"balance"`
}

// CatalogOption valor de una enumeración con su etiqueta.
type CatalogOption struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// CatalogResponse opciones para poblar el formulario.
type CatalogResponse struct {
	Categories    []CatalogOption `json:"categories"`
	MovementTypes []CatalogOption `json:"movement_types"`
	Units         []string        `json:"units"`
}

// NewMovementResponse convierte un registro en su representación JSON.
func NewMovementResponse(m entity.MovementRecord) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		Date:          m.Date.Format(DateLayout),
		Category:      string(m.Category),
		CategoryLabel: m.Category.Label(),
		Description:   m.Description,
		Lot:           m.Lot,
		Quantity:      m.Quantity,
		Unit:          m.Unit,
		MovementType:  string(m.Type),
		MovementLabel: m.Type.Label(),
		UnitCost:      m.UnitCost,
		Total:         m.Total,
		Notes:         m.Notes,
	}
}

// NewStockLevelResponse convierte una fila de stock.
func NewStockLevelResponse(l domledger.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		Category:      string(l.Category),
		CategoryLabel: l.Category.Label(),
		Description:   l.Description,
		Unit:          l.Unit,
		Quantity:      l.Quantity,
		Movements:     l.Movements,
	}
}

// NewFinancialSummaryResponse convierte el resumen financiero.
func NewFinancialSummaryResponse(s domledger.Summary) FinancialSummaryResponse {
	return FinancialSummaryResponse{
		SalesTotal:       s.SalesTotal,
		PurchasesTotal:   s.PurchasesTotal,
		SamplesCostTotal: s.SamplesCostTotal,
		Balance:          s.Balance,
	}
}

// NewCatalogResponse arma las opciones del formulario.
func NewCatalogResponse() CatalogResponse {
	out := CatalogResponse{Units: entity.Units}
	for _, c := range entity.Categories {
		out.Categories = append(out.Categories, CatalogOption{Code: string(c), Label: c.Label()})
	}
	for _, t := range entity.MovementTypes {
		out.MovementTypes = append(out.MovementTypes, CatalogOption{Code: string(t), Label: t.Label()})
	}
	return out
}
