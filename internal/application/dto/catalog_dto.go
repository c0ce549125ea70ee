package dto

import "github.com/shopspring/decimal"

// ServiceResponse entrada del catálogo para mostrar.
type ServiceResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	PriceRange      string          `json:"price_range"`
}
