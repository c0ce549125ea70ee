package repository

import (
	"context"

	"github.com/jhoicas/nextcut-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create persiste el usuario y asigna ID y CreatedAt. Teléfono duplicado → domain.ErrPhoneAlreadyExists.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByPhone(ctx context.Context, phoneNumber string) (*entity.User, error)
	// GetByIDs devuelve los usuarios encontrados indexados por id (los ausentes se omiten).
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*entity.User, error)
}
