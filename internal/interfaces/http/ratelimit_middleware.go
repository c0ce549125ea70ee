package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nextcut-api/internal/application/dto"
	"github.com/jhoicas/nextcut-api/internal/application/ports"
	"github.com/jhoicas/nextcut-api/pkg/logger"
)

// RateLimit limita por sujeto autenticado (o por IP si no hay token). Debe usarse
// DESPUÉS de AuthMiddleware para que la clave sea el rol + id.
//
// Comportamiento:
//   - 429 Too Many Requests → límite excedido en la ventana.
//   - Si el backend del limitador falla se deja pasar la petición y se registra un warning.
func RateLimit(scope string, limiter ports.RateLimiter, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}
		key := scope + ":ip:" + c.IP()
		if id := GetSubjectID(c); id > 0 {
			key = scope + ":" + GetRole(c) + ":" + strconv.FormatInt(id, 10)
		}
		ok, err := limiter.Allow(c.UserContext(), key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("limitador no disponible, se permite la petición")
			return c.Next()
		}
		if !ok {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas solicitudes, intenta de nuevo en un momento",
			})
		}
		return c.Next()
	}
}
