package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrBarberNotFound        = errors.New("barbero no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrPhoneAlreadyExists    = errors.New("el número de teléfono ya está registrado")
	ErrUsernameAlreadyExists = errors.New("el nombre de usuario ya está registrado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")

	// Cola
	ErrNotInQueue    = errors.New("el usuario no está en ninguna cola")
	ErrNotQueueOwner = errors.New("no autorizado para retirar a este usuario")

	// Pagos
	ErrInvalidSignature     = errors.New("firma de pago inválida")
	ErrPaymentJoinFailed    = errors.New("pago capturado pero falló el ingreso a la cola")
	ErrPaymentGateway       = errors.New("procesador de pagos no disponible")
	ErrPaymentNotConfigured = errors.New("pasarela de pagos no configurada")
)

// ValidationError describe una entrada rechazada antes de tocar el almacenamiento.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye el error para el campo indicado.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
