package ledger

import (
	"context"
	"time"

	"github.com/fikagroup/produccion-api/internal/domain/entity"
	domledger "github.com/fikagroup/produccion-api/internal/domain/ledger"
)

// Appender agrega registros al ledger de forma atómica. Lo implementa *Store.
type Appender interface {
	AppendBatch(ctx context.Context, records []entity.MovementRecord) ([]string, error)
}

// Reader lee el ledger completo en orden de inserción. Lo implementa *Store.
type Reader interface {
	ReadAll(ctx context.Context) ([]entity.MovementRecord, error)
}

// Resetter vacía el ledger. Lo implementa *Store.
type Resetter interface {
	Reset(ctx context.Context) error
}

// Report es la instantánea que se exporta a PDF.
type Report struct {
	Title       string
	Currency    string
	GeneratedAt time.Time
	Movements   []entity.MovementRecord // ordenados por fecha
	Stock       []domledger.StockLevel
	Summary     domledger.Summary
}

// ReportPDFGenerator genera la representación PDF del ledger.
type ReportPDFGenerator interface {
	GenerateLedgerPDF(ctx context.Context, report Report) ([]byte, error)
}
