// Package pdf genera el reporte del ledger de producción y ventas.
//
// Layout de la página A4 (horizontal):
//
//	┌───────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                          │  Fecha de emisión  │
//	│  RESUMEN: Ventas | Compras | Muestras | Balance               │
//	│  STOCK: Categoría | Descripción | Cantidad | Unidad           │
//	│  MOVIMIENTOS: Fecha | Cat. | Descripción | Lote | Cant | ...  │
//	└───────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appledger "github.com/fikagroup/produccion-api/internal/application/ledger"
	"github.com/fikagroup/produccion-api/internal/domain/entity"
	domledger "github.com/fikagroup/produccion-api/internal/domain/ledger"
)

var _ appledger.ReportPDFGenerator = (*MarotoLedgerReport)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 15, Green: 23, Blue: 42}
	colorPositive = &props.Color{Red: 5, Green: 150, Blue: 105}
	colorNegative = &props.Color{Red: 185, Green: 28, Blue: 28}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoLedgerReport implementa ledger.ReportPDFGenerator usando Maroto v2.
type MarotoLedgerReport struct {
	printer *message.Printer
}

// NewMarotoLedgerReport construye el generador. Los montos se formatean como "1,234.56".
func NewMarotoLedgerReport() *MarotoLedgerReport {
	return &MarotoLedgerReport{printer: message.NewPrinter(language.English)}
}

// GenerateLedgerPDF genera el PDF y devuelve sus bytes.
func (g *MarotoLedgerReport) GenerateLedgerPDF(_ context.Context, report appledger.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(report.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(report.Summary, report.Currency))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow("STOCK POR ÍTEM"))
	m.AddRows(stockHeaderRow())
	m.AddRows(g.stockRows(report.Stock)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionRow("MOVIMIENTOS"))
	m.AddRows(movementHeaderRow())
	m.AddRows(g.movementRows(report.Movements, report.Currency)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoLedgerReport) headerRow(report appledger.Report) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(report.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Fecha: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoLedgerReport) summaryRow(s domledger.Summary, currency string) core.Row {
	metric := func(label string, v decimal.Decimal, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(g.money(currency, v), props.Text{Style: fontstyle.Bold, Size: 12, Top: 6, Color: c}),
		)
	}
	balanceColor := colorPositive
	if s.Balance.IsNegative() {
		balanceColor = colorNegative
	}
	return row.New(16).Add(
		metric("Ventas Totales", s.SalesTotal, colorPrimary),
		metric("Gastos en Compras", s.PurchasesTotal, colorPrimary),
		metric("Costo de Muestras", s.SamplesCostTotal, colorPrimary),
		metric("Balance (Ventas - Compras)", s.Balance, balanceColor),
	)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 7, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func cell(s string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(s, props.Text{Size: 7, Align: a, Top: 1, Left: 1, Right: 1}))
}

func stockHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("Categoría", 3, align.Left),
		headerCell("Descripción", 5, align.Left),
		headerCell("Cantidad", 2, align.Right),
		headerCell("Unidad", 2, align.Left),
	)
}

func (g *MarotoLedgerReport) stockRows(levels []domledger.StockLevel) []core.Row {
	if len(levels) == 0 {
		return []core.Row{row.New(6).Add(cell("Sin movimientos registrados", 12, align.Center))}
	}
	rows := make([]core.Row, 0, len(levels))
	for _, l := range levels {
		rows = append(rows, row.New(5).Add(
			cell(l.Category.Label(), 3, align.Left),
			cell(l.Description, 5, align.Left),
			cell(g.quantity(l.Quantity), 2, align.Right),
			cell(l.Unit, 2, align.Left),
		))
	}
	return rows
}

func movementHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("Fecha", 1, align.Left),
		headerCell("Categoría", 2, align.Left),
		headerCell("Descripción", 2, align.Left),
		headerCell("Lote", 1, align.Left),
		headerCell("Cantidad", 1, align.Right),
		headerCell("Movimiento", 2, align.Left),
		headerCell("C. Unit.", 1, align.Right),
		headerCell("Total", 1, align.Right),
		headerCell("Obs.", 1, align.Left),
	)
}

func (g *MarotoLedgerReport) movementRows(movs []entity.MovementRecord, currency string) []core.Row {
	rows := make([]core.Row, 0, len(movs))
	for _, mv := range movs {
		rows = append(rows, row.New(5).Add(
			cell(mv.Date.Format("02/01/2006"), 1, align.Left),
			cell(mv.Category.Label(), 2, align.Left),
			cell(mv.Description, 2, align.Left),
			cell(mv.Lot, 1, align.Left),
			cell(g.quantity(mv.Quantity)+" "+mv.Unit, 1, align.Right),
			cell(mv.Type.Label(), 2, align.Left),
			cell(g.money(currency, mv.UnitCost), 1, align.Right),
			cell(g.money(currency, mv.Total), 1, align.Right),
			cell(mv.Notes, 1, align.Left),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea un monto con separador de miles y dos decimales: "Bs 1,234.50".
func (g *MarotoLedgerReport) money(currency string, v decimal.Decimal) string {
	return g.printer.Sprintf("%s %v", currency, number.Decimal(v.InexactFloat64(), number.Scale(2)))
}

func (g *MarotoLedgerReport) quantity(v decimal.Decimal) string {
	return g.printer.Sprintf("%v", number.Decimal(v.InexactFloat64(), number.MaxFractionDigits(3)))
}
