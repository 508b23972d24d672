package repository

import (
	"context"

	"github.com/fikagroup/produccion-api/internal/domain/entity"
)

// LedgerBackend define el puerto de persistencia del ledger: lectura completa y reescritura completa.
// Save debe ser atómico: o queda la tabla nueva entera o queda la anterior.
type LedgerBackend interface {
	Load(ctx context.Context) ([]entity.MovementRecord, error)
	Save(ctx context.Context, records []entity.MovementRecord) error
	Name() string
}
