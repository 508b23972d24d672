package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation             = errors.New("datos inválidos")
	ErrUnknownCategory        = errors.New("categoría desconocida")
	ErrUnknownMovementType    = errors.New("tipo de movimiento desconocido")
	ErrPersistenceUnavailable = errors.New("persistencia no disponible")
)

// IsValidation indica si err proviene de una validación de entrada (incluye categoría o tipo desconocido).
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrUnknownCategory) ||
		errors.Is(err, ErrUnknownMovementType)
}
