package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/fikagroup/produccion-api/internal/domain/entity"
	domledger "github.com/fikagroup/produccion-api/internal/domain/ledger"
	"github.com/fikagroup/produccion-api/pkg/logger"
)

// ReportUseCase expone las vistas derivadas del ledger: listado filtrado, stock por ítem,
// resumen financiero y exportación PDF. Nada se cachea: cada llamada lee el ledger completo.
type ReportUseCase struct {
	ledger   Reader
	pdf      ReportPDFGenerator
	title    string
	currency string
	now      func() time.Time
	log      *logger.Logger
}

// ReportOptions textos del reporte exportado.
type ReportOptions struct {
	Title    string
	Currency string
}

// NewReportUseCase construye el caso de uso. pdf puede ser nil si no se exporta.
func NewReportUseCase(ledger Reader, pdf ReportPDFGenerator, opts ReportOptions, log *logger.Logger) *ReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportUseCase{
		ledger:   ledger,
		pdf:      pdf,
		title:    opts.Title,
		currency: opts.Currency,
		now:      time.Now,
		log:      log.Named("report"),
	}
}

// MovementQuery filtros del listado. Listas vacías = sin filtro.
type MovementQuery struct {
	Categories []entity.Category
	Types      []entity.MovementType
	SortByDate bool
}

// ListMovements devuelve los movimientos que cumplen q, en orden de inserción o por fecha.
func (uc *ReportUseCase) ListMovements(ctx context.Context, q MovementQuery) ([]entity.MovementRecord, error) {
	all, err := uc.ledger.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := domledger.Filter(all, domledger.And(
		domledger.ByCategory(q.Categories...),
		domledger.ByMovementType(q.Types...),
	))
	if q.SortByDate {
		out = domledger.SortByDate(out)
	}
	return out, nil
}

// Stock devuelve el stock neto por ítem.
func (uc *ReportUseCase) Stock(ctx context.Context) ([]domledger.StockLevel, error) {
	all, err := uc.ledger.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return domledger.StockLevels(all), nil
}

// Summary devuelve ventas, compras, costo de muestras y balance.
func (uc *ReportUseCase) Summary(ctx context.Context) (domledger.Summary, error) {
	all, err := uc.ledger.ReadAll(ctx)
	if err != nil {
		return domledger.Summary{}, err
	}
	return domledger.FinancialSummary(all), nil
}

// Snapshot arma el reporte completo a partir de una sola lectura del ledger.
func (uc *ReportUseCase) Snapshot(ctx context.Context) (Report, error) {
	all, err := uc.ledger.ReadAll(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Title:       uc.title,
		Currency:    uc.currency,
		GeneratedAt: uc.now(),
		Movements:   domledger.SortByDate(all),
		Stock:       domledger.StockLevels(all),
		Summary:     domledger.FinancialSummary(all),
	}, nil
}

// ExportPDF genera el PDF del reporte.
func (uc *ReportUseCase) ExportPDF(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("report: generador PDF no configurado")
	}
	report, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := uc.pdf.GenerateLedgerPDF(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	uc.log.Info().Int("movements", len(report.Movements)).Int("bytes", len(doc)).Msg("reporte PDF generado")
	return doc, nil
}
