package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category clasifica el ítem afectado por un movimiento.
type Category string

// Categorías de ítem.
const (
	CategoryRawMaterial    Category = "MATERIA_PRIMA"
	CategoryWorkInProgress Category = "PRODUCTO_EN_PROCESO"
	CategoryFinishedGood   Category = "PRODUCTO_TERMINADO"
	CategorySupplies       Category = "SUMINISTROS"
)

// Categories lista las categorías en el orden en que se muestran en el formulario.
var Categories = []Category{
	CategoryRawMaterial,
	CategoryWorkInProgress,
	CategoryFinishedGood,
	CategorySupplies,
}

var categoryLabels = map[Category]string{
	CategoryRawMaterial:    "Materia Prima",
	CategoryWorkInProgress: "Producto en Proceso",
	CategoryFinishedGood:   "Producto Terminado",
	CategorySupplies:       "Suministros",
}

// Label devuelve la etiqueta legible de la categoría.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid indica si la categoría pertenece a la enumeración.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseCategory acepta el código ("MATERIA_PRIMA") o la etiqueta ("Materia Prima"), sin distinguir mayúsculas.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, c.Label()) {
			return c, true
		}
	}
	return "", false
}

// MovementType indica qué ocurrió con el ítem.
type MovementType string

// Tipos de movimiento del ledger.
const (
	MovementTypePurchase            MovementType = "COMPRA"
	MovementTypeProduction          MovementType = "PRODUCCION"
	MovementTypeSale                MovementType = "VENTA"
	MovementTypeSample              MovementType = "MUESTRA"
	MovementTypeInternalConsumption MovementType = "CONSUMO_INTERNO"
	MovementTypeAdjustment          MovementType = "AJUSTE"
	MovementTypeInitialInventory    MovementType = "INVENTARIO_INICIAL"
)

// MovementTypes lista los tipos en el orden del formulario.
var MovementTypes = []MovementType{
	MovementTypePurchase,
	MovementTypeProduction,
	MovementTypeSale,
	MovementTypeSample,
	MovementTypeInternalConsumption,
	MovementTypeAdjustment,
	MovementTypeInitialInventory,
}

var movementTypeLabels = map[MovementType]string{
	MovementTypePurchase:            "Compra/Entrada",
	MovementTypeProduction:          "Producción (+)",
	MovementTypeSale:                "Venta (-)",
	MovementTypeSample:              "Muestra/Regalo (-)",
	MovementTypeInternalConsumption: "Consumo Interno (-)",
	MovementTypeAdjustment:          "Ajuste/Merma",
	MovementTypeInitialInventory:    "Inventario Inicial",
}

// Label devuelve la etiqueta legible del tipo de movimiento.
func (t MovementType) Label() string {
	if l, ok := movementTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Valid indica si el tipo pertenece a la enumeración.
func (t MovementType) Valid() bool {
	_, ok := movementTypeLabels[t]
	return ok
}

// Direction devuelve +1 para entradas, -1 para salidas y 0 cuando el signo lo decide quien registra (ajustes).
func (t MovementType) Direction() int {
	switch t {
	case MovementTypePurchase, MovementTypeProduction, MovementTypeInitialInventory:
		return 1
	case MovementTypeSale, MovementTypeSample, MovementTypeInternalConsumption:
		return -1
	default:
		return 0
	}
}

// SignedQuantity aplica la convención de signo del ledger: entradas positivas, salidas negativas,
// ajustes con el signo recibido.
func (t MovementType) SignedQuantity(q decimal.Decimal) decimal.Decimal {
	switch t.Direction() {
	case 1:
		return q.Abs()
	case -1:
		return q.Abs().Neg()
	default:
		return q
	}
}

// ParseMovementType acepta el código ("VENTA") o la etiqueta ("Venta (-)"), sin distinguir mayúsculas.
func ParseMovementType(s string) (MovementType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range MovementTypes {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, t.Label()) {
			return t, true
		}
	}
	return "", false
}

// Units sugeridas por el formulario; el ledger acepta cualquier texto.
var Units = []string{"kg", "g", "litros", "botellas", "cajas", "unidades"}

// ItemKey identifica un ítem para agregación: no existe maestro de ítems.
type ItemKey struct {
	Category    Category
	Description string
}

// MovementRecord es una fila del ledger. Nunca se modifica después de persistirse.
type MovementRecord struct {
	ID            string
	TransactionID string
	Date          time.Time // fecha calendario (00:00 UTC)
	Category      Category
	Description   string
	Lot           string
	Quantity      decimal.Decimal // positivo entrada, negativo salida
	Unit          string
	Type          MovementType
	UnitCost      decimal.Decimal
	Total         decimal.Decimal
	Notes         string
	CreatedAt     time.Time
}

// Item devuelve la identidad (categoría, descripción) del registro.
func (m MovementRecord) Item() ItemKey {
	return ItemKey{Category: m.Category, Description: m.Description}
}

// DateOf trunca t a fecha calendario en UTC conservando el día local.
func DateOf(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// DefaultLot construye la etiqueta de lote genérica del día ("GEN-MMDD").
func DefaultLot(date time.Time) string {
	return "GEN-" + date.Format("0102")
}
