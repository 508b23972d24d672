// Package memory implementa el backend del ledger en memoria del proceso.
// La tabla se pierde al reiniciar el proceso.
package memory

import (
	"context"
	"sync"

	"github.com/fikagroup/produccion-api/internal/domain/entity"
	"github.com/fikagroup/produccion-api/internal/domain/repository"
)

var _ repository.LedgerBackend = (*LedgerBackend)(nil)

// LedgerBackend guarda la tabla como un slice; Save reemplaza el slice completo.
type LedgerBackend struct {
	mu      sync.RWMutex
	rows    []entity.MovementRecord
	failure error
}

// NewLedgerBackend crea un backend vacío.
func NewLedgerBackend() *LedgerBackend {
	return &LedgerBackend{rows: make([]entity.MovementRecord, 0)}
}

// Name identifica el backend en logs y /health.
func (b *LedgerBackend) Name() string { return "memory" }

// SetFailure hace que Load y Save devuelvan err hasta que se llame con nil.
// Simula un backend remoto caído.
func (b *LedgerBackend) SetFailure(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failure = err
}

// Load devuelve una copia de la tabla.
func (b *LedgerBackend) Load(_ context.Context) ([]entity.MovementRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.failure != nil {
		return nil, b.failure
	}
	out := make([]entity.MovementRecord, len(b.rows))
	copy(out, b.rows)
	return out, nil
}

// Save reemplaza la tabla por una copia de records.
func (b *LedgerBackend) Save(_ context.Context, records []entity.MovementRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failure != nil {
		return b.failure
	}
	rows := make([]entity.MovementRecord, len(records))
	copy(rows, records)
	b.rows = rows
	return nil
}
