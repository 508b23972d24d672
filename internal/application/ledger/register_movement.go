package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fikagroup/produccion-api/internal/domain"
	"github.com/fikagroup/produccion-api/internal/domain/entity"
	domledger "github.com/fikagroup/produccion-api/internal/domain/ledger"
	"github.com/fikagroup/produccion-api/pkg/logger"
)

// RegisterMovementUseCase valida entradas del formulario y las agrega al ledger
// (movimientos simples y transformaciones materia prima → producto).
type RegisterMovementUseCase struct {
	ledger Appender
	now    func() time.Time
	log    *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(ledger Appender, log *logger.Logger) *RegisterMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{ledger: ledger, now: time.Now, log: log.Named("register_movement")}
}

// WithClock reemplaza el reloj (tests e importaciones con fecha fija).
func (uc *RegisterMovementUseCase) WithClock(now func() time.Time) *RegisterMovementUseCase {
	uc.now = now
	return uc
}

// MovementInputDTO entrada para un movimiento simple.
// Date nil = hoy. Lot vacío = "GEN-MMDD". La cantidad puede venir sin signo: el tipo lo decide
// (salvo AJUSTE, que conserva el signo recibido). Cantidad y costo se redondean a 2 decimales.
type MovementInputDTO struct {
	Date        *time.Time
	Category    string
	Description string
	Lot         string
	Quantity    decimal.Decimal
	Unit        string
	Type        string
	UnitCost    decimal.Decimal
	Notes       string
}

// RegisterMovement valida y agrega un movimiento simple. Devuelve el registro persistido.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.MovementRecord, error) {
	// Se valida sobre los valores ya redondeados: 0.001 es cantidad cero.
	input.Quantity = domledger.RoundInput(input.Quantity)
	input.UnitCost = domledger.RoundInput(input.UnitCost)
	desc := strings.TrimSpace(input.Description)
	if desc == "" {
		return nil, fmt.Errorf("%w: descripción vacía", domain.ErrValidation)
	}
	if input.Quantity.IsZero() {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrValidation)
	}
	if input.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: costo unitario negativo", domain.ErrValidation)
	}
	cat, ok := entity.ParseCategory(input.Category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, input.Category)
	}
	typ, ok := entity.ParseMovementType(input.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMovementType, input.Type)
	}

	now := uc.now()
	date := entity.DateOf(now)
	if input.Date != nil {
		date = entity.DateOf(*input.Date)
	}
	lot := strings.TrimSpace(input.Lot)
	if lot == "" {
		lot = entity.DefaultLot(date)
	}

	rec := entity.MovementRecord{
		TransactionID: uuid.New().String(),
		Date:          date,
		Category:      cat,
		Description:   desc,
		Lot:           lot,
		Quantity:      typ.SignedQuantity(input.Quantity),
		Unit:          strings.TrimSpace(input.Unit),
		Type:          typ,
		UnitCost:      input.UnitCost,
		Total:         domledger.LineTotal(input.Quantity, input.UnitCost),
		Notes:         strings.TrimSpace(input.Notes),
		CreatedAt:     now,
	}
	ids, err := uc.ledger.AppendBatch(ctx, []entity.MovementRecord{rec})
	if err != nil {
		return nil, err
	}
	rec.ID = ids[0]

	uc.log.Info().
		Str("id", rec.ID).
		Str("type", string(rec.Type)).
		Str("item", rec.Description).
		Str("quantity", rec.Quantity.String()).
		Msg("movimiento registrado")
	return &rec, nil
}

// TransformationInputDTO entrada para una transformación: se consume un ítem y se produce otro.
type TransformationInputDTO struct {
	Date                *time.Time
	SourceCategory      string
	ConsumedDescription string
	ConsumedQuantity    decimal.Decimal
	ConsumedUnit        string
	TargetCategory      string
	ProducedDescription string
	ProducedQuantity    decimal.Decimal
	ProducedUnit        string
	TotalCost           decimal.Decimal // costo total atribuido a lo producido
	Lot                 string
	Notes               string
}

// TransformationResult los dos registros enlazados que produce una transformación.
type TransformationResult struct {
	TransactionID string
	Consumption   entity.MovementRecord
	Production    entity.MovementRecord
}

// RegisterTransformation agrega el par consumo + producción en un solo AppendBatch.
// El consumo no lleva costo (total 0); todo el costo se atribuye a lo producido.
func (uc *RegisterMovementUseCase) RegisterTransformation(ctx context.Context, input TransformationInputDTO) (*TransformationResult, error) {
	input.ConsumedQuantity = domledger.RoundInput(input.ConsumedQuantity)
	input.ProducedQuantity = domledger.RoundInput(input.ProducedQuantity)
	input.TotalCost = domledger.RoundInput(input.TotalCost)
	consumed := strings.TrimSpace(input.ConsumedDescription)
	produced := strings.TrimSpace(input.ProducedDescription)
	if consumed == "" || produced == "" {
		return nil, fmt.Errorf("%w: descripción de insumo y producto requeridas", domain.ErrValidation)
	}
	if !input.ConsumedQuantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad consumida debe ser mayor que cero", domain.ErrValidation)
	}
	if input.ProducedQuantity.IsNegative() || input.TotalCost.IsNegative() {
		return nil, fmt.Errorf("%w: cantidad producida y costo total no pueden ser negativos", domain.ErrValidation)
	}
	src, ok := entity.ParseCategory(input.SourceCategory)
	if !ok {
		return nil, fmt.Errorf("%w: origen %q", domain.ErrUnknownCategory, input.SourceCategory)
	}
	dst, ok := entity.ParseCategory(input.TargetCategory)
	if !ok {
		return nil, fmt.Errorf("%w: destino %q", domain.ErrUnknownCategory, input.TargetCategory)
	}

	now := uc.now()
	date := entity.DateOf(now)
	if input.Date != nil {
		date = entity.DateOf(*input.Date)
	}
	lot := strings.TrimSpace(input.Lot)
	if lot == "" {
		lot = entity.DefaultLot(date)
	}
	txID := uuid.New().String()

	consumption := entity.MovementRecord{
		TransactionID: txID,
		Date:          date,
		Category:      src,
		Description:   consumed,
		Lot:           lot,
		Quantity:      entity.MovementTypeInternalConsumption.SignedQuantity(input.ConsumedQuantity),
		Unit:          strings.TrimSpace(input.ConsumedUnit),
		Type:          entity.MovementTypeInternalConsumption,
		UnitCost:      decimal.Zero,
		Total:         decimal.Zero,
		Notes:         crossReference("Transformación → "+produced, input.Notes),
		CreatedAt:     now,
	}
	production := entity.MovementRecord{
		TransactionID: txID,
		Date:          date,
		Category:      dst,
		Description:   produced,
		Lot:           lot,
		Quantity:      input.ProducedQuantity,
		Unit:          strings.TrimSpace(input.ProducedUnit),
		Type:          entity.MovementTypeProduction,
		UnitCost:      domledger.UnitCost(input.TotalCost, input.ProducedQuantity),
		Total:         input.TotalCost,
		Notes:         crossReference("Transformación ← "+consumed, input.Notes),
		CreatedAt:     now,
	}

	ids, err := uc.ledger.AppendBatch(ctx, []entity.MovementRecord{consumption, production})
	if err != nil {
		return nil, err
	}
	consumption.ID, production.ID = ids[0], ids[1]

	uc.log.Info().
		Str("transaction_id", txID).
		Str("consumed", consumed).
		Str("produced", produced).
		Str("unit_cost", production.UnitCost.String()).
		Msg("transformación registrada")
	return &TransformationResult{TransactionID: txID, Consumption: consumption, Production: production}, nil
}

func crossReference(ref, notes string) string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return ref
	}
	return ref + " | " + notes
}
