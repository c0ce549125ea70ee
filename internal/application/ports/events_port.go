package ports

import (
	"context"
	"time"
)

// Tipos de evento de cola publicados tras confirmar la transacción.
const (
	EventQueueJoined           = "QUEUE_JOINED"
	EventQueueLeft             = "QUEUE_LEFT"
	EventQueueServed           = "QUEUE_SERVED"
	EventPaymentReconciliation = "PAYMENT_RECONCILIATION"
)

// QueueEvent evento de dominio de la cola. Los campos que no aplican quedan en cero.
type QueueEvent struct {
	Type       string    `json:"type"`
	BarberID   int64     `json:"barber_id"`
	UserID     int64     `json:"user_id"`
	SlotID     int64     `json:"slot_id,omitempty"`
	Service    string    `json:"service,omitempty"`
	OrderID    string    `json:"order_id,omitempty"`
	PaymentID  string    `json:"payment_id,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// QueueEventPublisher define el puerto de salida para notificar cambios en las colas.
// La publicación es best-effort: nunca forma parte de la transacción y un error solo se registra.
type QueueEventPublisher interface {
	Publish(ctx context.Context, event QueueEvent) error
}

// NopPublisher descarta los eventos (Kafka no configurado).
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, QueueEvent) error { return nil }
