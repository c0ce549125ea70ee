package payment

import (
	"context"

	"github.com/jhoicas/nextcut-api/internal/application/dto"
)

// Order orden creada en el procesador de pagos. Amount en la unidad mínima de la moneda.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

// OrderCreator define el puerto hacia el procesador de pagos externo.
type OrderCreator interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error)
}

// QueueJoiner es la única operación de cola que el pago puede autorizar.
type QueueJoiner interface {
	JoinQueue(ctx context.Context, barberID, userID int64, service string) (*dto.QueueSlotResponse, error)
}
