package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fikagroup/produccion-api/internal/domain/entity"
	"github.com/fikagroup/produccion-api/internal/domain/repository"
)

var _ repository.LedgerBackend = (*LedgerBackend)(nil)

// Querier es lo mínimo que el backend necesita de un pool o una tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Los montos llegan redondeados por el dominio (2 decimales, costo unitario derivado 4),
// así que NUMERIC(18,4) los guarda sin pérdida.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS ledger_movements (
	seq            BIGSERIAL PRIMARY KEY,
	id             TEXT NOT NULL UNIQUE,
	transaction_id TEXT NOT NULL,
	date           DATE NOT NULL,
	category       TEXT NOT NULL,
	description    TEXT NOT NULL,
	lot            TEXT NOT NULL DEFAULT '',
	quantity       NUMERIC(18,4) NOT NULL,
	unit           TEXT NOT NULL DEFAULT '',
	movement_type  TEXT NOT NULL,
	unit_cost      NUMERIC(18,4) NOT NULL,
	total          NUMERIC(18,4) NOT NULL,
	notes          TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL
)`

var ledgerColumns = []string{
	"id", "transaction_id", "date", "category", "description", "lot",
	"quantity", "unit", "movement_type", "unit_cost", "total", "notes", "created_at",
}

// LedgerBackend guarda el ledger en la tabla ledger_movements.
// Save reescribe la tabla completa dentro de una transacción (DELETE + COPY); el orden de
// inserción se conserva en seq.
type LedgerBackend struct {
	pool *pgxpool.Pool
}

// NewLedgerBackend construye el adaptador sobre el pool.
func NewLedgerBackend(pool *pgxpool.Pool) *LedgerBackend {
	return &LedgerBackend{pool: pool}
}

// Name identifica el backend en logs y /health.
func (b *LedgerBackend) Name() string { return "postgres" }

// EnsureSchema crea la tabla si no existe.
func (b *LedgerBackend) EnsureSchema(ctx context.Context) error {
	if _, err := b.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear tabla ledger_movements: %w", err)
	}
	return nil
}

// Load lee la tabla completa en orden de inserción.
func (b *LedgerBackend) Load(ctx context.Context) ([]entity.MovementRecord, error) {
	return loadMovements(ctx, b.pool)
}

func loadMovements(ctx context.Context, q Querier) ([]entity.MovementRecord, error) {
	query := `
		SELECT id, transaction_id, date, category, description, lot, quantity, unit,
		       movement_type, unit_cost, total, notes, created_at
		FROM ledger_movements ORDER BY seq`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ledger movements: %w", err)
	}
	defer rows.Close()

	list := make([]entity.MovementRecord, 0)
	for rows.Next() {
		var m entity.MovementRecord
		var category, movementType string
		var date, createdAt time.Time
		var quantity, unitCost, total decimal.Decimal
		if err := rows.Scan(&m.ID, &m.TransactionID, &date, &category, &m.Description, &m.Lot,
			&quantity, &m.Unit, &movementType, &unitCost, &total, &m.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan ledger movement: %w", err)
		}
		m.Date = entity.DateOf(date)
		m.Category = entity.Category(category)
		m.Type = entity.MovementType(movementType)
		m.Quantity, m.UnitCost, m.Total = quantity, unitCost, total
		m.CreatedAt = createdAt
		list = append(list, m)
	}
	return list, rows.Err()
}

// Save reemplaza la tabla completa. Si algo falla se hace Rollback y la tabla anterior queda intacta.
func (b *LedgerBackend) Save(ctx context.Context, records []entity.MovementRecord) error {
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM ledger_movements`); err != nil {
		return fmt.Errorf("vaciar ledger_movements: %w", err)
	}
	if len(records) > 0 {
		_, err := tx.CopyFrom(ctx, pgx.Identifier{"ledger_movements"}, ledgerColumns,
			pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
				return movementRow(records[i]), nil
			}))
		if err != nil {
			return fmt.Errorf("copiar ledger_movements: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func movementRow(m entity.MovementRecord) []any {
	return []any{
		m.ID, m.TransactionID, m.Date, string(m.Category), m.Description, m.Lot,
		m.Quantity, m.Unit, string(m.Type), m.UnitCost, m.Total, m.Notes, m.CreatedAt,
	}
}
