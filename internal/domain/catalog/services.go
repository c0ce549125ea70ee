// Package catalog expone el catálogo estático de servicios de barbería.
// Es dato de referencia de solo lectura: se consulta para mostrar precios y,
// en modo estricto, para validar el servicio al unirse a la cola.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/nextcut-api/internal/domain/entity"
)

// Categorías del catálogo.
const (
	CategoryHaircuts   = "Haircuts & Styling"
	CategoryShaves     = "Shaves & Grooming"
	CategoryTreatments = "Treatments"
	CategoryCombos     = "Combo Packs"
)

// Catalog catálogo inmutable indexado por id.
type Catalog struct {
	services []entity.Service
	byID     map[string]entity.Service
}

// New construye un catálogo a partir de las entradas dadas (se copian).
func New(services []entity.Service) *Catalog {
	c := &Catalog{
		services: make([]entity.Service, len(services)),
		byID:     make(map[string]entity.Service, len(services)),
	}
	copy(c.services, services)
	for _, s := range services {
		c.byID[s.ID] = s
	}
	return c
}

// Default devuelve el catálogo de servicios de la barbería.
func Default() *Catalog {
	return New(defaultServices)
}

// List devuelve una copia de todas las entradas en el orden de presentación.
func (c *Catalog) List() []entity.Service {
	out := make([]entity.Service, len(c.services))
	copy(out, c.services)
	return out
}

// Get busca por id (sin distinguir mayúsculas ni espacios laterales).
func (c *Catalog) Get(id string) (entity.Service, bool) {
	s, ok := c.byID[strings.ToLower(strings.TrimSpace(id))]
	return s, ok
}

// Contains informa si el id pertenece al catálogo.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.Get(id)
	return ok
}

var rupees = message.NewPrinter(language.English)

// FormatPrice formatea un monto en INR con separador de miles, ej. "₹2,050".
func FormatPrice(amount decimal.Decimal) string {
	return rupees.Sprintf("₹%d", amount.Round(0).IntPart())
}

// PriceRange devuelve el rango de precio para mostrar, ej. "₹2,050 - ₹3,280".
func PriceRange(s entity.Service) string {
	if s.PriceMin.IsZero() && s.PriceMax.IsZero() {
		return FormatPrice(s.Price)
	}
	return FormatPrice(s.PriceMin) + " - " + FormatPrice(s.PriceMax)
}

func svc(id, name string, price, min, max int64, minutes int, description, category string) entity.Service {
	return entity.Service{
		ID:              id,
		Name:            name,
		Price:           decimal.NewFromInt(price),
		PriceMin:        decimal.NewFromInt(min),
		PriceMax:        decimal.NewFromInt(max),
		DurationMinutes: minutes,
		Description:     description,
		Category:        category,
	}
}

var defaultServices = []entity.Service{
	svc("classic-haircut", "Classic Haircut", 2660, 2050, 3280, 20, "Basic haircut for men", CategoryHaircuts),
	svc("skin-fade", "Skin Fade / Taper Fade", 3080, 2460, 3690, 25, "Modern fade styles", CategoryHaircuts),
	svc("crew-buzz", "Crew Cut / Buzz Cut", 2050, 1640, 2460, 15, "Short crew/buzz cut", CategoryHaircuts),
	svc("scissor-cut", "Scissor Cut (Traditional)", 3080, 2460, 3690, 25, "Classic scissor haircut", CategoryHaircuts),
	svc("beard-trim", "Beard Trim", 1640, 1230, 2050, 10, "Beard trimming and shaping", CategoryHaircuts),
	svc("haircut-beard-combo", "Haircut + Beard Combo", 4100, 3280, 4920, 35, "Complete haircut and beard service", CategoryHaircuts),
	svc("styling-blowdry", "Styling / Blow-Dry", 1640, 1230, 2050, 10, "Hair styling and blow-dry", CategoryHaircuts),

	svc("hot-towel-shave", "Hot Towel Shave", 3080, 2460, 3690, 25, "Traditional hot towel shave", CategoryShaves),
	svc("head-shave", "Head Shave (Razor)", 2660, 2050, 3280, 20, "Clean razor head shave", CategoryShaves),
	svc("beard-shaping", "Beard Shaping + Line-Up", 2050, 1640, 2460, 15, "Detailed beard shaping", CategoryShaves),
	svc("mustache-trim", "Mustache Trim", 1020, 820, 1230, 5, "Mustache trimming", CategoryShaves),

	svc("scalp-massage", "Scalp Massage & Wash", 1640, 1230, 2050, 15, "Relaxing scalp massage & wash", CategoryTreatments),
	svc("hair-color", "Hair Color (Grey Coverage)", 4100, 3280, 4920, 40, "Grey coverage hair coloring", CategoryTreatments),
	svc("beard-dye", "Beard Dye", 2460, 2050, 2870, 20, "Beard dyeing", CategoryTreatments),
	svc("hair-spa", "Hair Spa / Deep Conditioning", 2260, 1640, 2870, 30, "Deep conditioning hair spa", CategoryTreatments),

	svc("gentlemans", "Gentleman's Package", 5740, 4920, 6560, 60, "Haircut + Beard Trim + Hot Towel Finish", CategoryCombos),
	svc("executive", "Executive Package", 6560, 5740, 7380, 70, "Haircut + Beard Shaping + Hair Wash + Styling", CategoryCombos),
	svc("royal-shave-package", "Royal Shave Package", 7180, 6150, 8200, 75, "Haircut + Hot Towel Shave + Scalp Massage", CategoryCombos),
	svc("kings-luxury", "King's Luxury Package", 8610, 7380, 9840, 90, "Haircut + Beard Trim + Hair Spa + Scalp Massage", CategoryCombos),
}
