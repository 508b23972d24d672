package ledger

import "github.com/shopspring/decimal"

// Escalas con las que se guardan los montos. Cantidades y costos ingresados llevan 2 decimales
// (formato del formulario); el costo unitario derivado de una transformación lleva 4. Con esas
// escalas ningún valor del ledger supera los 4 decimales de las columnas NUMERIC(18,4).
const (
	InputScale    int32 = 2
	UnitCostScale int32 = 4
)

// RoundInput redondea una cantidad o un costo ingresado a InputScale decimales.
func RoundInput(v decimal.Decimal) decimal.Decimal {
	return v.Round(InputScale)
}

// UnitCost reparte el costo total de una producción entre las unidades producidas,
// redondeado a UnitCostScale. Con cantidad cero (o negativa) devuelve cero en lugar de dividir.
func UnitCost(totalCost, quantity decimal.Decimal) decimal.Decimal {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return totalCost.Div(quantity).Round(UnitCostScale)
}

// LineTotal calcula el total de un movimiento simple: |cantidad| * costo unitario.
func LineTotal(quantity, unitCost decimal.Decimal) decimal.Decimal {
	return quantity.Abs().Mul(unitCost)
}
