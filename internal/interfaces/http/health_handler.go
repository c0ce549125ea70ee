package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nextcut-api/pkg/logger"
)

// Pinger comprueba que el almacenamiento responde.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler liveness con ping al almacenamiento.
type HealthHandler struct {
	pinger Pinger
	log    *logger.Logger
}

// NewHealthHandler construye el handler. pinger puede ser nil.
func NewHealthHandler(pinger Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{pinger: pinger, log: log}
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			h.log.Warn().Err(err).Msg("health: almacenamiento no responde")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "storage": "down"})
		}
	}
	return c.JSON(fiber.Map{"status": "ok", "storage": "up"})
}
