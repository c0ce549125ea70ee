package repository

import (
	"context"

	"github.com/jhoicas/nextcut-api/internal/domain/entity"
)

// BarberRepository define el puerto de persistencia para Barber (DIP).
// Los métodos Get devuelven (nil, nil) cuando el registro no existe.
type BarberRepository interface {
	// Create persiste el barbero y asigna ID y CreatedAt. Username duplicado → domain.ErrUsernameAlreadyExists.
	Create(ctx context.Context, barber *entity.Barber) error
	GetByID(ctx context.Context, id int64) (*entity.Barber, error)
	GetByUsername(ctx context.Context, username string) (*entity.Barber, error)
	// ListAll devuelve todos los barberos ordenados por id.
	ListAll(ctx context.Context) ([]*entity.Barber, error)
}
