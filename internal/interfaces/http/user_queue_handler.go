package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nextcut-api/internal/application/dto"
	"github.com/jhoicas/nextcut-api/internal/application/queue"
	"github.com/jhoicas/nextcut-api/internal/domain"
	"github.com/jhoicas/nextcut-api/internal/domain/geo"
	"github.com/jhoicas/nextcut-api/pkg/logger"
)

// UserQueueHandler rutas del cliente: buscar barberos, unirse, salir y consultar estado.
type UserQueueHandler struct {
	manager *queue.Manager
	nearby  *queue.NearbyUseCase
	log     *logger.Logger
}

// NewUserQueueHandler construye el handler.
func NewUserQueueHandler(manager *queue.Manager, nearby *queue.NearbyUseCase, log *logger.Logger) *UserQueueHandler {
	return &UserQueueHandler{manager: manager, nearby: nearby, log: log}
}

// Nearby godoc
// @Summary      Barberos cercanos
// @Description  Barberos dentro del radio (km) ordenados por distancia, con largo de cola y espera estimada.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.NearbyBarbersRequest  true  "lat, long, radius"
// @Success      200   {object}  dto.NearbyBarbersResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users/barbers/nearby [post]
func (h *UserQueueHandler) Nearby(c *fiber.Ctx) error {
	var in dto.NearbyBarbersRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Lat == nil || in.Long == nil {
		return respondError(c, h.log, domain.NewValidationError("location", "lat y long son requeridos"))
	}
	out, err := h.nearby.Find(c.UserContext(), geo.Point{Lat: *in.Lat, Long: *in.Long}, in.Radius)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Join godoc
// @Summary      Unirse a la cola (pago en efectivo)
// @Description  Reemplaza cualquier slot previo del usuario.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.JoinQueueRequest  true  "barber_id, service"
// @Success      201   {object}  dto.QueueSlotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/queue/join [post]
func (h *UserQueueHandler) Join(c *fiber.Ctx) error {
	var in dto.JoinQueueRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.manager.JoinQueue(c.UserContext(), in.BarberID, GetSubjectID(c), in.Service)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Leave godoc
// @Summary      Salir de la cola
// @Description  Si el usuario no estaba en ninguna cola responde left=false.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.LeaveQueueResponse
// @Router       /api/users/queue/leave [post]
func (h *UserQueueHandler) Leave(c *fiber.Ctx) error {
	out, err := h.manager.LeaveQueue(c.UserContext(), GetSubjectID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Status godoc
// @Summary      Estado en la cola
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.QueueStatusResponse
// @Router       /api/users/queue/status [get]
func (h *UserQueueHandler) Status(c *fiber.Ctx) error {
	out, err := h.manager.GetStatusForUser(c.UserContext(), GetSubjectID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
