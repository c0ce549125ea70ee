package repository

import (
	"context"

	"github.com/jhoicas/nextcut-api/internal/domain/entity"
)

// QueueRepository define el puerto del almacén de slots de cola.
// La unicidad por UserID la garantiza el almacenamiento: un segundo Create para el mismo
// usuario falla con domain.ErrConflict. Solo el gestor de cola escribe a través de este puerto.
type QueueRepository interface {
	// Create inserta el slot y asigna su ID. EnteredAt lo fija el llamador.
	Create(ctx context.Context, slot *entity.QueueSlot) error
	// DeleteByUser elimina el slot del usuario si existe y devuelve cuántas filas borró.
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
	// GetByUser devuelve el slot activo del usuario o (nil, nil).
	GetByUser(ctx context.Context, userID int64) (*entity.QueueSlot, error)
	// GetByUserForUpdate igual que GetByUser pero bloquea la fila hasta el fin de la transacción.
	GetByUserForUpdate(ctx context.Context, userID int64) (*entity.QueueSlot, error)
	// ListByBarber devuelve los slots del barbero ordenados por (entered_at, id) ascendente.
	ListByBarber(ctx context.Context, barberID int64) ([]*entity.QueueSlot, error)
	// CountAhead cuenta los slots del mismo barbero que van antes que slot en orden FIFO.
	CountAhead(ctx context.Context, slot *entity.QueueSlot) (int, error)
	// CountByBarbers devuelve la cantidad de slots activos por barbero (los ausentes valen 0).
	CountByBarbers(ctx context.Context, barberIDs []int64) (map[int64]int, error)
}
