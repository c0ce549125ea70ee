package entity

import "time"

// QueueSlot es la espera activa de un usuario en la cola de un barbero.
// Un usuario tiene como máximo un slot; EnteredAt y BarberID no cambian nunca.
// No existe actualización: el slot se crea al unirse y se elimina al salir o ser atendido.
type QueueSlot struct {
	ID        int64
	BarberID  int64
	UserID    int64
	Service   string
	EnteredAt time.Time
}

// Before informa si el slot está antes que other en el orden FIFO (entered_at, id).
func (s *QueueSlot) Before(other *QueueSlot) bool {
	if s.EnteredAt.Equal(other.EnteredAt) {
		return s.ID < other.ID
	}
	return s.EnteredAt.Before(other.EnteredAt)
}
