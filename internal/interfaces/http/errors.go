package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nextcut-api/internal/application/dto"
	"github.com/jhoicas/nextcut-api/internal/domain"
	"github.com/jhoicas/nextcut-api/pkg/logger"
)

// respondError traduce errores de dominio a HTTP. Lo que no es de dominio se registra
// y se responde como INTERNAL sin detalles.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code, message := fiber.StatusInternalServerError, "INTERNAL", "error interno"

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		status, code, message = fiber.StatusBadRequest, "VALIDATION", verr.Error()
	case errors.Is(err, domain.ErrPaymentJoinFailed):
		// Antes que los not-found: la causa envuelta puede ser ErrBarberNotFound.
		status, code, message = fiber.StatusInternalServerError, "PAYMENT_JOIN_FAILED", err.Error()
		log.Error().Err(err).Str("path", c.Path()).Msg("pago capturado sin ingreso a la cola")
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, message = fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrBarberNotFound):
		status, code, message = fiber.StatusNotFound, "BARBER_NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		status, code, message = fiber.StatusNotFound, "USER_NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, code, message = fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrNotInQueue):
		status, code, message = fiber.StatusNotFound, "NOT_IN_QUEUE", err.Error()
	case errors.Is(err, domain.ErrNotQueueOwner):
		status, code, message = fiber.StatusForbidden, "FORBIDDEN", "no se pudo retirar al usuario de la cola"
	case errors.Is(err, domain.ErrPhoneAlreadyExists), errors.Is(err, domain.ErrUsernameAlreadyExists), errors.Is(err, domain.ErrDuplicate):
		status, code, message = fiber.StatusConflict, "DUPLICATE", err.Error()
	case errors.Is(err, domain.ErrConflict):
		status, code, message = fiber.StatusConflict, "CONFLICT", "la cola cambió mientras se procesaba, intenta de nuevo"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, message = fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"
	case errors.Is(err, domain.ErrForbidden):
		status, code, message = fiber.StatusForbidden, "FORBIDDEN", err.Error()
	case errors.Is(err, domain.ErrInvalidSignature):
		status, code, message = fiber.StatusBadRequest, "INVALID_SIGNATURE", err.Error()
	case errors.Is(err, domain.ErrPaymentNotConfigured):
		status, code, message = fiber.StatusServiceUnavailable, "PAYMENT_NOT_CONFIGURED", err.Error()
	case errors.Is(err, domain.ErrPaymentGateway):
		status, code, message = fiber.StatusBadGateway, "PAYMENT_GATEWAY", domain.ErrPaymentGateway.Error()
		log.Error().Err(err).Str("path", c.Path()).Msg("fallo del procesador de pagos")
	default:
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error interno")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
