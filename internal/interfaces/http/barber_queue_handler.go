package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nextcut-api/internal/application/dto"
	"github.com/jhoicas/nextcut-api/internal/application/queue"
	"github.com/jhoicas/nextcut-api/internal/domain"
	"github.com/jhoicas/nextcut-api/pkg/logger"
)

// BarberQueueHandler rutas del barbero sobre su propia cola.
type BarberQueueHandler struct {
	manager *queue.Manager
	walkIn  *queue.WalkInUseCase
	stats   *queue.StatsUseCase
	log     *logger.Logger
}

// NewBarberQueueHandler construye el handler.
func NewBarberQueueHandler(manager *queue.Manager, walkIn *queue.WalkInUseCase, stats *queue.StatsUseCase, log *logger.Logger) *BarberQueueHandler {
	return &BarberQueueHandler{manager: manager, walkIn: walkIn, stats: stats, log: log}
}

// Queue godoc
// @Summary      Cola del barbero
// @Tags         barbers
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.BarberQueueResponse
// @Router       /api/barbers/queue [get]
func (h *BarberQueueHandler) Queue(c *fiber.Ctx) error {
	out, err := h.manager.GetQueueForBarber(c.UserContext(), GetSubjectID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Marcar cliente como atendido
// @Description  Registra el servicio en el historial y retira al usuario. Si ya no estaba en la cola responde removed=false.
// @Tags         barbers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RemoveFromQueueRequest  true  "user_id"
// @Success      200   {object}  dto.RemoveFromQueueResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/barbers/queue/remove [post]
func (h *BarberQueueHandler) Remove(c *fiber.Ctx) error {
	var in dto.RemoveFromQueueRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	served, err := h.manager.RemoveFromQueue(c.UserContext(), GetSubjectID(c), in.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotInQueue) {
			return c.JSON(dto.RemoveFromQueueResponse{Removed: false, Message: err.Error()})
		}
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.RemoveFromQueueResponse{Removed: true, Message: "cliente atendido", Served: served})
}

// WalkIn godoc
// @Summary      Agregar cliente presencial
// @Description  Busca o crea el usuario por teléfono y lo ingresa en la cola del barbero autenticado.
// @Tags         barbers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.WalkInRequest  true  "name, phone_number, service"
// @Success      201   {object}  dto.QueueSlotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/barbers/queue/walk-in [post]
func (h *BarberQueueHandler) WalkIn(c *fiber.Ctx) error {
	var in dto.WalkInRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.walkIn.Add(c.UserContext(), GetSubjectID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Stats godoc
// @Summary      Estadísticas del barbero
// @Tags         barbers
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.BarberStatsResponse
// @Router       /api/barbers/stats [get]
func (h *BarberQueueHandler) Stats(c *fiber.Ctx) error {
	out, err := h.stats.GetBarberStats(c.UserContext(), GetSubjectID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
