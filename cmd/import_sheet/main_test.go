package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/fikagroup/produccion-api/internal/application/ledger"
	"github.com/fikagroup/produccion-api/internal/domain"
	"github.com/fikagroup/produccion-api/internal/domain/entity"
	"github.com/fikagroup/produccion-api/internal/infrastructure/memory"
	"github.com/fikagroup/produccion-api/internal/infrastructure/sheet"
	"github.com/fikagroup/produccion-api/pkg/logger"
)

func sheetRows() []sheet.Row {
	return []sheet.Row{
		{Line: 2, Category: "Materia Prima", Description: "Tomate", Quantity: decimal.RequireFromString("10"), Unit: "kg", Movement: "Compra/Entrada", UnitCost: decimal.RequireFromString("5")},
		{Line: 3, Category: "SUMINISTROS", Description: "Frascos", Quantity: decimal.RequireFromString("50")},
	}
}

func TestImportRows_WritesAllRows(t *testing.T) {
	ctx := context.Background()
	store := appledger.NewStore(memory.NewLedgerBackend(), nil)

	n, err := importRows(ctx, sheetRows(), store, false, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, entity.MovementTypeInitialInventory, all[1].Type, "sin movimiento se toma como inventario inicial")
	assert.True(t, all[0].Total.Equal(decimal.RequireFromString("50")))
}

func TestImportRows_InvalidRowWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := appledger.NewStore(memory.NewLedgerBackend(), nil)
	rows := append(sheetRows(), sheet.Row{Line: 4, Category: "Verduras", Description: "Cebolla", Quantity: decimal.RequireFromString("1")})

	_, err := importRows(ctx, rows, store, false, logger.Nop())
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
	assert.ErrorContains(t, err, "línea 4")

	all, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImportRows_DryRun(t *testing.T) {
	ctx := context.Background()
	store := appledger.NewStore(memory.NewLedgerBackend(), nil)

	n, err := importRows(ctx, sheetRows(), store, true, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRun_MissingFileReturnsError(t *testing.T) {
	err := run(context.Background(), nil, filepath.Join(t.TempDir(), "no-existe.csv"), "", false, logger.Nop())
	assert.ErrorContains(t, err, "abrir planilla")
}
