// import_sheet carga al ledger una exportación CSV de la planilla de movimientos.
//
// Uso: go run ./cmd/import_sheet [-encoding iso-8859-1] [-dry-run] planilla.csv
// Usa el mismo LEDGER_BACKEND que la API. Cada fila pasa por las mismas validaciones que el
// formulario; la primera fila inválida detiene la carga sin escribir nada.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	appledger "github.com/fikagroup/produccion-api/internal/application/ledger"
	"github.com/fikagroup/produccion-api/internal/domain/entity"
	"github.com/fikagroup/produccion-api/internal/infrastructure/backend"
	"github.com/fikagroup/produccion-api/internal/infrastructure/sheet"
	"github.com/fikagroup/produccion-api/pkg/config"
	"github.com/fikagroup/produccion-api/pkg/logger"
)

func main() {
	encoding := flag.String("encoding", sheet.EncodingUTF8, "utf-8 | iso-8859-1 | windows-1252")
	dryRun := flag.Bool("dry-run", false, "validar sin escribir en el ledger")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Uso: import_sheet [-encoding iso-8859-1] [-dry-run] planilla.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	// os.Exit fuera de run para que sus defer cierren archivo y backend.
	if err := run(context.Background(), cfg, flag.Arg(0), *encoding, *dryRun, log); err != nil {
		log.Error().Err(err).Msg("importación cancelada")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, path, encoding string, dryRun bool, log *logger.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir planilla: %w", err)
	}
	defer f.Close()

	rows, err := sheet.ReadRows(f, encoding)
	if err != nil {
		return fmt.Errorf("leer planilla: %w", err)
	}

	ledgerBackend, closeBackend, err := backend.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("abrir backend del ledger: %w", err)
	}
	defer closeBackend()

	_, err = importRows(ctx, rows, appledger.NewStore(ledgerBackend, log), dryRun, log)
	return err
}

// importRows valida todas las filas contra un ledger en staging y, salvo dry-run, las escribe
// de una vez. Devuelve cuántas filas quedaron listas.
func importRows(ctx context.Context, rows []sheet.Row, store *appledger.Store, dryRun bool, log *logger.Logger) (int, error) {
	staging := &stagingLedger{}
	uc := appledger.NewRegisterMovementUseCase(staging, log)
	for _, r := range rows {
		if _, err := uc.RegisterMovement(ctx, toInput(r)); err != nil {
			return 0, fmt.Errorf("línea %d: %w", r.Line, err)
		}
	}
	if dryRun {
		log.Info().Int("rows", len(staging.records)).Msg("validación completa (dry-run)")
		return len(staging.records), nil
	}

	if _, err := store.AppendBatch(ctx, staging.records); err != nil {
		return 0, fmt.Errorf("guardar movimientos: %w", err)
	}
	log.Info().Int("rows", len(staging.records)).Str("backend", store.Backend()).Msg("planilla importada")
	return len(staging.records), nil
}

func toInput(r sheet.Row) appledger.MovementInputDTO {
	typ := r.Movement
	if typ == "" {
		typ = string(entity.MovementTypeInitialInventory)
	}
	return appledger.MovementInputDTO{
		Date:        r.Date,
		Category:    r.Category,
		Description: r.Description,
		Lot:         r.Lot,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		Type:        typ,
		UnitCost:    r.UnitCost,
		Notes:       r.Notes,
	}
}

// stagingLedger acumula registros validados sin persistirlos.
type stagingLedger struct {
	records []entity.MovementRecord
}

func (s *stagingLedger) AppendBatch(_ context.Context, records []entity.MovementRecord) ([]string, error) {
	s.records = append(s.records, records...)
	return make([]string, len(records)), nil
}
