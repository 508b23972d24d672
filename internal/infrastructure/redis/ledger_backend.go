// Package redis implementa el backend del ledger sobre una sola clave Redis que guarda
// la tabla completa como JSON. Cada Save es un único SET: último en escribir gana.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/fikagroup/produccion-api/internal/domain/entity"
	"github.com/fikagroup/produccion-api/internal/domain/repository"
	"github.com/fikagroup/produccion-api/pkg/config"
)

var _ repository.LedgerBackend = (*LedgerBackend)(nil)

const dateLayout = "2006-01-02"

// LedgerBackend guarda el ledger bajo key.
type LedgerBackend struct {
	client *goredis.Client
	key    string
}

// NewClient abre el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewLedgerBackend construye el adaptador.
func NewLedgerBackend(client *goredis.Client, key string) *LedgerBackend {
	return &LedgerBackend{client: client, key: key}
}

// Name identifica el backend en logs y /health.
func (b *LedgerBackend) Name() string { return "redis" }

// Load lee la tabla completa. Clave inexistente = ledger vacío.
func (b *LedgerBackend) Load(ctx context.Context) ([]entity.MovementRecord, error) {
	raw, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return []entity.MovementRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", b.key, err)
	}
	return decodeTable(raw)
}

// Save serializa y escribe la tabla completa.
func (b *LedgerBackend) Save(ctx context.Context, records []entity.MovementRecord) error {
	raw, err := encodeTable(records)
	if err != nil {
		return err
	}
	if err := b.client.Set(ctx, b.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", b.key, err)
	}
	return nil
}

// movementDoc es la forma serializada de una fila.
type movementDoc struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	Date          string          `json:"date"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Lot           string          `json:"lot"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	MovementType  string          `json:"movement_type"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Total         decimal.Decimal `json:"total"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
}

func encodeTable(records []entity.MovementRecord) ([]byte, error) {
	docs := make([]movementDoc, len(records))
	for i, m := range records {
		docs[i] = movementDoc{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			Date:          m.Date.Format(dateLayout),
			Category:      string(m.Category),
			Description:   m.Description,
			Lot:           m.Lot,
			Quantity:      m.Quantity,
			Unit:          m.Unit,
			MovementType:  string(m.Type),
			UnitCost:      m.UnitCost,
			Total:         m.Total,
			Notes:         m.Notes,
			CreatedAt:     m.CreatedAt,
		}
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("serializar ledger: %w", err)
	}
	return raw, nil
}

func decodeTable(raw []byte) ([]entity.MovementRecord, error) {
	var docs []movementDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("deserializar ledger: %w", err)
	}
	out := make([]entity.MovementRecord, len(docs))
	for i, d := range docs {
		date, err := time.Parse(dateLayout, d.Date)
		if err != nil {
			return nil, fmt.Errorf("fila %d: fecha %q: %w", i, d.Date, err)
		}
		out[i] = entity.MovementRecord{
			ID:            d.ID,
			TransactionID: d.TransactionID,
			Date:          date,
			Category:      entity.Category(d.Category),
			Description:   d.Description,
			Lot:           d.Lot,
			Quantity:      d.Quantity,
			Unit:          d.Unit,
			Type:          entity.MovementType(d.MovementType),
			UnitCost:      d.UnitCost,
			Total:         d.Total,
			Notes:         d.Notes,
			CreatedAt:     d.CreatedAt,
		}
	}
	return out, nil
}
