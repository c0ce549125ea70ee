package entity

import "time"

// Barber representa una barbería con su ubicación. Es dueña de su cola activa
// y de un historial de servicios que solo crece.
type Barber struct {
	ID           int64
	Name         string
	Username     string
	PasswordHash string // bcrypt hash
	Lat          float64
	Long         float64
	CreatedAt    time.Time
}
