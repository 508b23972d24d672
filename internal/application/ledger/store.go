package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/fikagroup/produccion-api/internal/domain"
	"github.com/fikagroup/produccion-api/internal/domain/entity"
	"github.com/fikagroup/produccion-api/internal/domain/repository"
	"github.com/fikagroup/produccion-api/pkg/logger"
)

// Store es el ledger append-only. Cada lectura recarga la tabla completa del backend y cada
// escritura la reescribe completa; si el backend falla la tabla queda como estaba.
//
// Una sola instancia vive durante todo el proceso y se inyecta en los casos de uso.
type Store struct {
	mu      sync.Mutex
	backend repository.LedgerBackend
	log     *logger.Logger
}

// NewStore construye el ledger sobre el backend indicado.
func NewStore(backend repository.LedgerBackend, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{backend: backend, log: log.Named("ledger_store")}
}

// Backend devuelve el nombre del backend activo.
func (s *Store) Backend() string {
	return s.backend.Name()
}

// Append agrega un registro al final del ledger y devuelve su ID.
func (s *Store) Append(ctx context.Context, record entity.MovementRecord) (string, error) {
	ids, err := s.AppendBatch(ctx, []entity.MovementRecord{record})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// AppendBatch agrega varios registros como una sola operación: aparecen todos o ninguno.
func (s *Store) AppendBatch(ctx context.Context, records []entity.MovementRecord) ([]string, error) {
	if len(records) == 0 {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.backend.Load(ctx)
	if err != nil {
		return nil, s.unavailable("append: leer ledger", err)
	}

	next := make([]entity.MovementRecord, 0, len(current)+len(records))
	next = append(next, current...)
	ids := make([]string, len(records))
	for i, r := range records {
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		ids[i] = r.ID
		next = append(next, r)
	}

	if err := s.backend.Save(ctx, next); err != nil {
		return nil, s.unavailable("append: guardar ledger", err)
	}
	s.log.Debug().Int("appended", len(records)).Int("rows", len(next)).Msg("ledger actualizado")
	return ids, nil
}

// ReadAll devuelve todos los registros en orden de inserción (no necesariamente por fecha).
func (s *Store) ReadAll(ctx context.Context) ([]entity.MovementRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.backend.Load(ctx)
	if err != nil {
		return nil, s.unavailable("leer ledger", err)
	}
	out := make([]entity.MovementRecord, len(rows))
	copy(out, rows)
	return out, nil
}

// Reset vacía el ledger por completo. Es irreversible.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Save(ctx, []entity.MovementRecord{}); err != nil {
		return s.unavailable("reset", err)
	}
	s.log.Warn().Str("backend", s.backend.Name()).Msg("ledger reiniciado")
	return nil
}

func (s *Store) unavailable(op string, err error) error {
	s.log.Error().Err(err).Str("backend", s.backend.Name()).Str("op", op).Msg("backend no disponible")
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistenceUnavailable, err)
}
