package redis

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fikagroup/produccion-api/internal/domain/entity"
)

func TestEncodeDecodeTable(t *testing.T) {
	created := time.Date(2026, 10, 15, 14, 5, 0, 0, time.UTC)
	in := []entity.MovementRecord{
		{
			ID: "a", TransactionID: "tx-1", Date: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
			Category: entity.CategoryRawMaterial, Description: "Tomate", Lot: "GEN-1015",
			Quantity: decimal.RequireFromString("-10"), Unit: "kg", Type: entity.MovementTypeInternalConsumption,
			UnitCost: decimal.Zero, Total: decimal.Zero, Notes: "Transformación → Salsa", CreatedAt: created,
		},
		{
			ID: "b", TransactionID: "tx-1", Date: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
			Category: entity.CategoryFinishedGood, Description: "Salsa", Lot: "GEN-1015",
			Quantity: decimal.RequireFromString("4"), Unit: "Frasco (Unidad)", Type: entity.MovementTypeProduction,
			UnitCost: decimal.RequireFromString("13.3333"), Total: decimal.RequireFromString("40"), CreatedAt: created,
		},
	}

	raw, err := encodeTable(in)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"date":"2026-10-15"`)
	assert.Contains(t, string(raw), `"quantity":"-10"`)

	out, err := decodeTable(raw)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for i := range in {
		assert.Equal(t, in[i].ID, out[i].ID)
		assert.Equal(t, in[i].Date, out[i].Date)
		assert.Equal(t, in[i].Type, out[i].Type)
		assert.Equal(t, in[i].Notes, out[i].Notes)
		assert.True(t, in[i].Quantity.Equal(out[i].Quantity))
		assert.True(t, in[i].UnitCost.Equal(out[i].UnitCost))
		assert.True(t, in[i].Total.Equal(out[i].Total))
		assert.True(t, in[i].CreatedAt.Equal(out[i].CreatedAt))
	}
}

func TestDecodeTable_Errors(t *testing.T) {
	_, err := decodeTable([]byte("no es json"))
	assert.Error(t, err)

	_, err = decodeTable([]byte(`[{"date":"15/10/2026"}]`))
	assert.ErrorContains(t, err, "fila 0")
}

func TestEncodeTable_Empty(t *testing.T) {
	raw, err := encodeTable(nil)
	require.NoError(t, err)
	out, err := decodeTable(raw)
	require.NoError(t, err)
	assert.Empty(t, out)
}
