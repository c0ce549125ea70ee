package entity

import "time"

// ServiceHistory registro de un servicio completado. Se crea únicamente cuando
// el barbero retira a un usuario atendido.
type ServiceHistory struct {
	ID       int64
	BarberID int64
	UserID   int64
	Service  string
	ServedAt time.Time
}
