package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/nextcut-api/internal/application/dto"
	"github.com/jhoicas/nextcut-api/internal/application/ports"
	"github.com/jhoicas/nextcut-api/internal/domain"
	"github.com/jhoicas/nextcut-api/internal/domain/entity"
	"github.com/jhoicas/nextcut-api/internal/domain/phone"
	"github.com/jhoicas/nextcut-api/internal/domain/repository"
)

// WalkInUseCase permite al barbero agregar a su propia cola un cliente presencial.
// Si el teléfono no está registrado se crea el usuario con el nombre indicado.
type WalkInUseCase struct {
	users   repository.UserRepository
	manager *Manager
}

// NewWalkInUseCase construye el caso de uso.
func NewWalkInUseCase(users repository.UserRepository, manager *Manager) *WalkInUseCase {
	return &WalkInUseCase{users: users, manager: manager}
}

// Add busca o crea al usuario por teléfono y lo ingresa a la cola de barberID
// con las mismas reglas que JoinQueue (incluido el reemplazo de un slot previo).
func (uc *WalkInUseCase) Add(ctx context.Context, barberID int64, in dto.WalkInRequest) (*dto.QueueSlotResponse, error) {
	out, err := uc.add(ctx, barberID, in)
	if err != nil {
		uc.manager.observe("walk_in", err)
	}
	return out, err
}

func (uc *WalkInUseCase) add(ctx context.Context, barberID int64, in dto.WalkInRequest) (*dto.QueueSlotResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre es requerido")
	}
	number, err := phone.Normalize(in.PhoneNumber)
	if err != nil {
		return nil, err
	}

	user, err := uc.users.GetByPhone(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario por teléfono: %w", err)
	}
	if user == nil {
		user = &entity.User{Name: name, PhoneNumber: number}
		err = uc.users.Create(ctx, user)
		if errors.Is(err, domain.ErrPhoneAlreadyExists) {
			// Otro registro ganó la carrera con el mismo teléfono.
			user, err = uc.users.GetByPhone(ctx, number)
			if err == nil && user == nil {
				err = domain.ErrUserNotFound
			}
		}
		if err != nil {
			return nil, fmt.Errorf("crear usuario presencial: %w", err)
		}
		uc.manager.log.Info().Int64("barber_id", barberID).Int64("user_id", user.ID).Msg("usuario presencial creado")
	}

	out, err := uc.manager.JoinQueue(ctx, barberID, user.ID, in.Service)
	if err != nil {
		return nil, err
	}
	uc.manager.metrics.QueueOperation("walk_in", ports.StatusOK)
	return out, nil
}
