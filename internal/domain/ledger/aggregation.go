// Package ledger agrupa los cálculos de dominio sobre el ledger de movimientos:
// filtros, sumas, stock por ítem y resumen financiero.
//
// Todas las funciones son puras: reciben la secuencia completa de registros y no
// guardan estado. El stock es la suma sin condiciones de las cantidades con signo.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fikagroup/produccion-api/internal/domain/entity"
)

// Predicate decide si un registro entra en una subsecuencia.
type Predicate func(entity.MovementRecord) bool

// ByMovementType acepta registros cuyo tipo esté en types. Sin tipos acepta todo.
func ByMovementType(types ...entity.MovementType) Predicate {
	return func(m entity.MovementRecord) bool {
		if len(types) == 0 {
			return true
		}
		for _, t := range types {
			if m.Type == t {
				return true
			}
		}
		return false
	}
}

// ByCategory acepta registros cuya categoría esté en cats. Sin categorías acepta todo.
func ByCategory(cats ...entity.Category) Predicate {
	return func(m entity.MovementRecord) bool {
		if len(cats) == 0 {
			return true
		}
		for _, c := range cats {
			if m.Category == c {
				return true
			}
		}
		return false
	}
}

// And combina predicados; todos deben cumplirse.
func And(preds ...Predicate) Predicate {
	return func(m entity.MovementRecord) bool {
		for _, p := range preds {
			if p != nil && !p(m) {
				return false
			}
		}
		return true
	}
}

// Filter devuelve la subsecuencia que cumple pred, en el orden original.
func Filter(records []entity.MovementRecord, pred Predicate) []entity.MovementRecord {
	out := make([]entity.MovementRecord, 0, len(records))
	for _, m := range records {
		if pred == nil || pred(m) {
			out = append(out, m)
		}
	}
	return out
}

// SumTotal suma el campo Total.
func SumTotal(records []entity.MovementRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range records {
		sum = sum.Add(m.Total)
	}
	return sum
}

// SumQuantity suma el campo Quantity (con signo).
func SumQuantity(records []entity.MovementRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range records {
		sum = sum.Add(m.Quantity)
	}
	return sum
}

// StockByItem agrupa por (categoría, descripción) y suma la cantidad con signo.
// Es la vista autoritativa del stock actual.
func StockByItem(records []entity.MovementRecord) map[entity.ItemKey]decimal.Decimal {
	stock := make(map[entity.ItemKey]decimal.Decimal)
	for _, m := range records {
		k := m.Item()
		stock[k] = stock[k].Add(m.Quantity)
	}
	return stock
}

// StockLevel es una fila de la vista de stock para presentación.
type StockLevel struct {
	Category    entity.Category
	Description string
	Unit        string // última unidad registrada; las unidades no se normalizan
	Quantity    decimal.Decimal
	Movements   int
}

// StockLevels devuelve StockByItem como lista ordenada por categoría y descripción.
func StockLevels(records []entity.MovementRecord) []StockLevel {
	idx := make(map[entity.ItemKey]int)
	var levels []StockLevel
	for _, m := range records {
		k := m.Item()
		i, ok := idx[k]
		if !ok {
			i = len(levels)
			idx[k] = i
			levels = append(levels, StockLevel{Category: k.Category, Description: k.Description, Quantity: decimal.Zero})
		}
		levels[i].Quantity = levels[i].Quantity.Add(m.Quantity)
		levels[i].Movements++
		if m.Unit != "" {
			levels[i].Unit = m.Unit
		}
	}
	sort.SliceStable(levels, func(a, b int) bool {
		if levels[a].Category != levels[b].Category {
			return categoryRank(levels[a].Category) < categoryRank(levels[b].Category)
		}
		return levels[a].Description < levels[b].Description
	})
	return levels
}

func categoryRank(c entity.Category) int {
	for i, x := range entity.Categories {
		if x == c {
			return i
		}
	}
	return len(entity.Categories)
}

// Summary es el resumen financiero del ledger.
type Summary struct {
	SalesTotal       decimal.Decimal
	PurchasesTotal   decimal.Decimal
	SamplesCostTotal decimal.Decimal
	Balance          decimal.Decimal // SalesTotal - PurchasesTotal
}

// FinancialSummary suma los totales de ventas, compras y muestras.
// Con ledger vacío todos los campos son cero.
func FinancialSummary(records []entity.MovementRecord) Summary {
	sales := SumTotal(Filter(records, ByMovementType(entity.MovementTypeSale)))
	purchases := SumTotal(Filter(records, ByMovementType(entity.MovementTypePurchase)))
	samples := SumTotal(Filter(records, ByMovementType(entity.MovementTypeSample)))
	return Summary{
		SalesTotal:       sales,
		PurchasesTotal:   purchases,
		SamplesCostTotal: samples,
		Balance:          sales.Sub(purchases),
	}
}

// SortByDate devuelve una copia ordenada por fecha; a igual fecha conserva el orden de inserción.
func SortByDate(records []entity.MovementRecord) []entity.MovementRecord {
	out := make([]entity.MovementRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Date.Before(out[b].Date)
	})
	return out
}
