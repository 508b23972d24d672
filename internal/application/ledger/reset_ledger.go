package ledger

import (
	"context"

	"github.com/fikagroup/produccion-api/pkg/logger"
)

// ResetLedgerUseCase vacía el ledger ("Resetear Base de Datos").
type ResetLedgerUseCase struct {
	ledger Resetter
	log    *logger.Logger
}

// NewResetLedgerUseCase construye el caso de uso.
func NewResetLedgerUseCase(ledger Resetter, log *logger.Logger) *ResetLedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ResetLedgerUseCase{ledger: ledger, log: log.Named("reset_ledger")}
}

// Reset borra todos los movimientos. operator queda en el log para auditoría.
func (uc *ResetLedgerUseCase) Reset(ctx context.Context, operator string) error {
	if err := uc.ledger.Reset(ctx); err != nil {
		return err
	}
	uc.log.Warn().Str("operator", operator).Msg("ledger vaciado por el operador")
	return nil
}
