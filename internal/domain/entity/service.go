package entity

import "github.com/shopspring/decimal"

// Service entrada del catálogo de servicios ofrecidos (dato de referencia inmutable).
type Service struct {
	ID              string
	Name            string
	Price           decimal.Decimal // INR
	PriceMin        decimal.Decimal
	PriceMax        decimal.Decimal
	DurationMinutes int
	Description     string
	Category        string
}
