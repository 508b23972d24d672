package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/fikagroup/produccion-api/internal/application/ledger"
	"github.com/fikagroup/produccion-api/internal/domain/entity"
	domledger "github.com/fikagroup/produccion-api/internal/domain/ledger"
)

func TestMoneyFormat(t *testing.T) {
	g := NewMarotoLedgerReport()
	assert.Equal(t, "Bs 1,234.50", g.money("Bs", decimal.RequireFromString("1234.5")))
	assert.Equal(t, "Bs 0.00", g.money("Bs", decimal.Zero))
	assert.Equal(t, "Bs -26.00", g.money("Bs", decimal.NewFromInt(-26)))
	assert.Equal(t, "2.5", g.quantity(decimal.RequireFromString("2.5")))
}

func TestGenerateLedgerPDF(t *testing.T) {
	date := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	movs := []entity.MovementRecord{
		{Date: date, Category: entity.CategoryRawMaterial, Description: "Tomate", Lot: "GEN-1015",
			Quantity: decimal.NewFromInt(10), Unit: "kg", Type: entity.MovementTypePurchase,
			UnitCost: decimal.NewFromInt(5), Total: decimal.NewFromInt(50)},
		{Date: date, Category: entity.CategoryRawMaterial, Description: "Tomate", Lot: "GEN-1015",
			Quantity: decimal.NewFromInt(-3), Unit: "kg", Type: entity.MovementTypeSale,
			UnitCost: decimal.NewFromInt(8), Total: decimal.NewFromInt(24), Notes: "feria"},
	}
	report := appledger.Report{
		Title:       "Gestión de Producción y Ventas",
		Currency:    "Bs",
		GeneratedAt: date,
		Movements:   movs,
		Stock:       domledger.StockLevels(movs),
		Summary:     domledger.FinancialSummary(movs),
	}

	doc, err := NewMarotoLedgerReport().GenerateLedgerPDF(context.Background(), report)
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestGenerateLedgerPDF_EmptyLedger(t *testing.T) {
	doc, err := NewMarotoLedgerReport().GenerateLedgerPDF(context.Background(), appledger.Report{Title: "Vacío", Currency: "Bs"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(doc[:4]))
}
