// Package backend elige la implementación de persistencia del ledger según LEDGER_BACKEND.
package backend

import (
	"context"
	"fmt"

	"github.com/fikagroup/produccion-api/internal/domain/repository"
	"github.com/fikagroup/produccion-api/internal/infrastructure/memory"
	"github.com/fikagroup/produccion-api/internal/infrastructure/postgres"
	infraredis "github.com/fikagroup/produccion-api/internal/infrastructure/redis"
	"github.com/fikagroup/produccion-api/pkg/config"
)

// Open abre el backend configurado. closeFn libera conexiones y es seguro llamarlo siempre.
func Open(ctx context.Context, cfg *config.Config) (b repository.LedgerBackend, closeFn func(), err error) {
	switch cfg.Ledger.Backend {
	case config.BackendMemory, "":
		return memory.NewLedgerBackend(), func() {}, nil

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		pg := postgres.NewLedgerBackend(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pg, pool.Close, nil

	case config.BackendRedis:
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		return infraredis.NewLedgerBackend(client, cfg.Redis.Key), func() { _ = client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("backend desconocido %q", cfg.Ledger.Backend)
	}
}
