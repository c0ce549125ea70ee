package repository

import (
	"context"
	"time"

	"github.com/jhoicas/nextcut-api/internal/domain/entity"
)

// ServiceHistoryRepository define el puerto del historial de servicios (solo inserción y lectura).
type ServiceHistoryRepository interface {
	// Append inserta el registro y asigna su ID.
	Append(ctx context.Context, h *entity.ServiceHistory) error
	CountByBarber(ctx context.Context, barberID int64) (int, error)
	CountByBarberSince(ctx context.Context, barberID int64, since time.Time) (int, error)
	// ListRecentByBarber devuelve los últimos `limit` registros por served_at descendente.
	ListRecentByBarber(ctx context.Context, barberID int64, limit int) ([]*entity.ServiceHistory, error)
}
