package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/fikagroup/produccion-api/internal/application/ledger"
	"github.com/fikagroup/produccion-api/internal/domain"
	"github.com/fikagroup/produccion-api/internal/domain/entity"
	domledger "github.com/fikagroup/produccion-api/internal/domain/ledger"
	"github.com/fikagroup/produccion-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newRegister(t *testing.T) (*appledger.RegisterMovementUseCase, *appledger.Store, *memory.LedgerBackend) {
	t.Helper()
	backend := memory.NewLedgerBackend()
	store := appledger.NewStore(backend, nil)
	uc := appledger.NewRegisterMovementUseCase(store, nil).WithClock(func() time.Time { return fixedNow })
	return uc, store, backend
}

func TestRegisterMovement_PurchaseAndSaleScenario(t *testing.T) {
	ctx := context.Background()
	uc, store, _ := newRegister(t)

	purchase, err := uc.RegisterMovement(ctx, appledger.MovementInputDTO{
		Category: "Materia Prima", Description: "tomato", Quantity: dec("10"), Unit: "kg",
		Type: "COMPRA", UnitCost: dec("5"),
	})
	require.NoError(t, err)
	assert.True(t, purchase.Quantity.Equal(dec("10")))
	assert.True(t, purchase.Total.Equal(dec("50")))

	sale, err := uc.RegisterMovement(ctx, appledger.MovementInputDTO{
		Category: "MATERIA_PRIMA", Description: "tomato", Quantity: dec("3"), Unit: "kg",
		Type: "Venta (-)", UnitCost: dec("8"),
	})
	require.NoError(t, err)
	assert.True(t, sale.Quantity.Equal(dec("-3")), "la venta se guarda con signo negativo")
	assert.True(t, sale.Total.Equal(dec("24")))

	all, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	stock := domledger.StockByItem(all)
	assert.True(t, stock[entity.ItemKey{Category: entity.CategoryRawMaterial, Description: "tomato"}].Equal(dec("7")))

	s := domledger.FinancialSummary(all)
	assert.True(t, s.SalesTotal.Equal(dec("24")))
	assert.True(t, s.PurchasesTotal.Equal(dec("50")))
	assert.True(t, s.Balance.Equal(dec("-26")))
}

func TestRegisterMovement_Defaults(t *testing.T) {
	uc, _, _ := newRegister(t)

	rec, err := uc.RegisterMovement(context.Background(), appledger.MovementInputDTO{
		Category: "SUMINISTROS", Description: "  Frascos  ", Quantity: dec("24"), Type: "INVENTARIO_INICIAL",
	})
	require.NoError(t, err)
	assert.Equal(t, "Frascos", rec.Description)
	assert.Equal(t, "GEN-1015", rec.Lot)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, fixedNow, rec.CreatedAt)
	assert.NotEmpty(t, rec.ID)
	assert.NotEmpty(t, rec.TransactionID)
	assert.True(t, rec.Total.IsZero())
}

func TestRegisterMovement_BackdatedEntry(t *testing.T) {
	uc, _, _ := newRegister(t)
	past := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	rec, err := uc.RegisterMovement(context.Background(), appledger.MovementInputDTO{
		Date: &past, Category: "PRODUCTO_TERMINADO", Description: "Salsa", Quantity: dec("1"), Type: "VENTA", UnitCost: dec("20"),
	})
	require.NoError(t, err)
	assert.Equal(t, past, rec.Date)
	assert.Equal(t, "GEN-0901", rec.Lot)
}

func TestRegisterMovement_AdjustmentKeepsSign(t *testing.T) {
	uc, _, _ := newRegister(t)
	rec, err := uc.RegisterMovement(context.Background(), appledger.MovementInputDTO{
		Category: "MATERIA_PRIMA", Description: "Tomate", Quantity: dec("-1.5"), Type: "Ajuste/Merma", UnitCost: dec("5"),
	})
	require.NoError(t, err)
	assert.True(t, rec.Quantity.Equal(dec("-1.5")))
	assert.True(t, rec.Total.Equal(dec("7.5")))
}

func TestRegisterMovement_RejectedLeavesLedgerUnchanged(t *testing.T) {
	ctx := context.Background()
	uc, store, _ := newRegister(t)
	_, err := uc.RegisterMovement(ctx, appledger.MovementInputDTO{
		Category: "MATERIA_PRIMA", Description: "Tomate", Quantity: dec("1"), Type: "COMPRA", UnitCost: dec("1"),
	})
	require.NoError(t, err)

	cases := []struct {
		name string
		in   appledger.MovementInputDTO
	}{
		{"descripción vacía", appledger.MovementInputDTO{Category: "MATERIA_PRIMA", Description: "", Quantity: dec("1"), Type: "COMPRA"}},
		{"descripción en blanco", appledger.MovementInputDTO{Category: "MATERIA_PRIMA", Description: "   ", Quantity: dec("1"), Type: "COMPRA"}},
		{"cantidad cero", appledger.MovementInputDTO{Category: "MATERIA_PRIMA", Description: "Tomate", Quantity: dec("0"), Type: "COMPRA"}},
		{"costo negativo", appledger.MovementInputDTO{Category: "MATERIA_PRIMA", Description: "Tomate", Quantity: dec("1"), Type: "COMPRA", UnitCost: dec("-1")}},
		{"categoría desconocida", appledger.MovementInputDTO{Category: "Verduras", Description: "Tomate", Quantity: dec("1"), Type: "COMPRA"}},
		{"tipo desconocido", appledger.MovementInputDTO{Category: "MATERIA_PRIMA", Description: "Tomate", Quantity: dec("1"), Type: "REGALO"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := uc.RegisterMovement(ctx, tc.in)
			assert.Nil(t, rec)
			assert.True(t, domain.IsValidation(err), "err: %v", err)

			all, err := store.ReadAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestRegisterMovement_BackendDown(t *testing.T) {
	ctx := context.Background()
	uc, _, backend := newRegister(t)
	backend.SetFailure(errSheetDown)

	_, err := uc.RegisterMovement(ctx, appledger.MovementInputDTO{
		Category: "MATERIA_PRIMA", Description: "Tomate", Quantity: dec("1"), Type: "COMPRA",
	})
	assert.ErrorIs(t, err, domain.ErrPersistenceUnavailable)
}

func TestRegisterTransformation_TomatoToDehydrated(t *testing.T) {
	ctx := context.Background()
	uc, store, _ := newRegister(t)
	_, err := uc.RegisterMovement(ctx, appledger.MovementInputDTO{
		Category: "MATERIA_PRIMA", Description: "tomato", Quantity: dec("10"), Unit: "kg", Type: "COMPRA", UnitCost: dec("5"),
	})
	require.NoError(t, err)
	before, err := store.ReadAll(ctx)
	require.NoError(t, err)

	res, err := uc.RegisterTransformation(ctx, appledger.TransformationInputDTO{
		SourceCategory:      "MATERIA_PRIMA",
		ConsumedDescription: "tomato",
		ConsumedQuantity:    dec("10"),
		ConsumedUnit:        "kg",
		TargetCategory:      "PRODUCTO_TERMINADO",
		ProducedDescription: "dehydrated tomato",
		ProducedQuantity:    dec("2"),
		ProducedUnit:        "kg",
		TotalCost:           dec("40"),
	})
	require.NoError(t, err)

	c, p := res.Consumption, res.Production
	assert.Equal(t, entity.CategoryRawMaterial, c.Category)
	assert.Equal(t, entity.MovementTypeInternalConsumption, c.Type)
	assert.True(t, c.Quantity.Equal(dec("-10")))
	assert.True(t, c.Total.IsZero())
	assert.Contains(t, c.Notes, "dehydrated tomato")

	assert.Equal(t, entity.CategoryFinishedGood, p.Category)
	assert.Equal(t, entity.MovementTypeProduction, p.Type)
	assert.True(t, p.Quantity.Equal(dec("2")))
	assert.True(t, p.UnitCost.Equal(dec("20")))
	assert.True(t, p.Total.Equal(dec("40")))
	assert.Contains(t, p.Notes, "tomato")

	assert.Equal(t, res.TransactionID, c.TransactionID)
	assert.Equal(t, res.TransactionID, p.TransactionID)
	assert.Equal(t, c.CreatedAt, p.CreatedAt)
	assert.Equal(t, c.Date, p.Date)

	after, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+2)
	assert.Equal(t, before[0], after[0], "los registros previos no cambian")
	assert.Equal(t, c.ID, after[1].ID)
	assert.Equal(t, p.ID, after[2].ID)

	stock := domledger.StockByItem(after)
	assert.True(t, stock[entity.ItemKey{Category: entity.CategoryRawMaterial, Description: "tomato"}].IsZero())
	assert.True(t, stock[entity.ItemKey{Category: entity.CategoryFinishedGood, Description: "dehydrated tomato"}].Equal(dec("2")))
}

func TestRegisterTransformation_ZeroProducedGivesZeroUnitCost(t *testing.T) {
	uc, _, _ := newRegister(t)
	res, err := uc.RegisterTransformation(context.Background(), appledger.TransformationInputDTO{
		SourceCategory: "MATERIA_PRIMA", ConsumedDescription: "Ají", ConsumedQuantity: dec("3"),
		TargetCategory: "PRODUCTO_EN_PROCESO", ProducedDescription: "Pasta de ají", ProducedQuantity: dec("0"),
		TotalCost: dec("12"),
	})
	require.NoError(t, err)
	assert.True(t, res.Production.UnitCost.IsZero())
	assert.True(t, res.Production.Total.Equal(dec("12")))
}

// Lo que devuelve el registro es exactamente lo que se lee después, y nada pasa de 4 decimales.
func TestRegisterTransformation_UnitCostSurvivesReload(t *testing.T) {
	ctx := context.Background()
	uc, store, _ := newRegister(t)

	res, err := uc.RegisterTransformation(ctx, appledger.TransformationInputDTO{
		SourceCategory: "MATERIA_PRIMA", ConsumedDescription: "Tomate", ConsumedQuantity: dec("9"),
		TargetCategory: "PRODUCTO_TERMINADO", ProducedDescription: "Salsa", ProducedQuantity: dec("3"),
		TotalCost: dec("40"),
	})
	require.NoError(t, err)
	assert.Equal(t, "13.3333", res.Production.UnitCost.String())

	all, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[1].UnitCost.Equal(res.Production.UnitCost))
	assert.True(t, all[1].Total.Equal(res.Production.Total))
	for _, m := range all {
		for _, v := range []decimal.Decimal{m.Quantity, m.UnitCost, m.Total} {
			assert.True(t, v.Equal(v.Round(domledger.UnitCostScale)), "%s excede la escala guardada", v)
		}
	}
}

func TestRegisterMovement_RoundsToTwoDecimals(t *testing.T) {
	ctx := context.Background()
	uc, store, _ := newRegister(t)

	_, err := uc.RegisterMovement(ctx, appledger.MovementInputDTO{
		Category: "MATERIA_PRIMA", Description: "Sal", Quantity: dec("0.00001"), Type: "COMPRA", UnitCost: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "una cantidad que redondea a cero no se registra")

	rec, err := uc.RegisterMovement(ctx, appledger.MovementInputDTO{
		Category: "MATERIA_PRIMA", Description: "Sal", Quantity: dec("1.005"), Type: "COMPRA", UnitCost: dec("2.499"),
	})
	require.NoError(t, err)
	assert.Equal(t, "1.01", rec.Quantity.String())
	assert.Equal(t, "2.5", rec.UnitCost.String())
	assert.Equal(t, "2.525", rec.Total.String())

	all, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Total.Equal(rec.Total))
}

func TestRegisterTransformation_RejectedAsWhole(t *testing.T) {
	ctx := context.Background()
	uc, store, _ := newRegister(t)

	valid := appledger.TransformationInputDTO{
		SourceCategory: "MATERIA_PRIMA", ConsumedDescription: "Tomate", ConsumedQuantity: dec("10"),
		TargetCategory: "PRODUCTO_TERMINADO", ProducedDescription: "Salsa", ProducedQuantity: dec("4"),
		TotalCost: dec("40"),
	}
	mutate := func(f func(*appledger.TransformationInputDTO)) appledger.TransformationInputDTO {
		in := valid
		f(&in)
		return in
	}
	cases := map[string]appledger.TransformationInputDTO{
		"sin insumo":         mutate(func(in *appledger.TransformationInputDTO) { in.ConsumedDescription = "" }),
		"sin producto":       mutate(func(in *appledger.TransformationInputDTO) { in.ProducedDescription = " " }),
		"consumo cero":       mutate(func(in *appledger.TransformationInputDTO) { in.ConsumedQuantity = dec("0") }),
		"consumo negativo":   mutate(func(in *appledger.TransformationInputDTO) { in.ConsumedQuantity = dec("-2") }),
		"producido negativo": mutate(func(in *appledger.TransformationInputDTO) { in.ProducedQuantity = dec("-1") }),
		"destino inválido":   mutate(func(in *appledger.TransformationInputDTO) { in.TargetCategory = "X" }),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := uc.RegisterTransformation(ctx, in)
			assert.Nil(t, res)
			assert.True(t, domain.IsValidation(err), "err: %v", err)
		})
	}

	all, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRegisterTransformation_BackendFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	backend := &saveFailingBackend{LedgerBackend: memory.NewLedgerBackend(), failSave: true}
	store := appledger.NewStore(backend, nil)
	uc := appledger.NewRegisterMovementUseCase(store, nil)

	_, err := uc.RegisterTransformation(ctx, appledger.TransformationInputDTO{
		SourceCategory: "MATERIA_PRIMA", ConsumedDescription: "Tomate", ConsumedQuantity: dec("10"),
		TargetCategory: "PRODUCTO_TERMINADO", ProducedDescription: "Salsa", ProducedQuantity: dec("4"),
		TotalCost: dec("40"),
	})
	assert.ErrorIs(t, err, domain.ErrPersistenceUnavailable)

	all, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
