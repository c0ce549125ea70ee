package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nextcut-api/internal/application/queue"
)

// CatalogHandler catálogo público de servicios.
type CatalogHandler struct {
	uc *queue.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *queue.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// List godoc
// @Summary      Servicios ofrecidos
// @Tags         services
// @Produce      json
// @Success      200   {array}  dto.ServiceResponse
// @Router       /api/services [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List())
}
