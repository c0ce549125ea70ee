package queue

import (
	"github.com/jhoicas/nextcut-api/internal/application/dto"
	"github.com/jhoicas/nextcut-api/internal/domain/catalog"
)

// CatalogUseCase expone el catálogo de servicios (solo lectura).
type CatalogUseCase struct {
	catalog *catalog.Catalog
}

// NewCatalogUseCase construye el caso de uso; nil usa el catálogo por defecto.
func NewCatalogUseCase(c *catalog.Catalog) *CatalogUseCase {
	if c == nil {
		c = catalog.Default()
	}
	return &CatalogUseCase{catalog: c}
}

// List devuelve los servicios en el orden del catálogo.
func (uc *CatalogUseCase) List() []dto.ServiceResponse {
	services := uc.catalog.List()
	out := make([]dto.ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, dto.ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
			Description:     s.Description,
			Category:        s.Category,
			PriceRange:      catalog.PriceRange(s),
		})
	}
	return out
}
