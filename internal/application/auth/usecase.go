package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/nextcut-api/internal/application/dto"
	"github.com/jhoicas/nextcut-api/internal/domain"
	"github.com/jhoicas/nextcut-api/internal/domain/entity"
	"github.com/jhoicas/nextcut-api/internal/domain/geo"
	"github.com/jhoicas/nextcut-api/internal/domain/phone"
	"github.com/jhoicas/nextcut-api/internal/domain/repository"
	"github.com/jhoicas/nextcut-api/pkg/jwt"
)

const (
	maxNameLength  = 200
	minPasswordLen = 8
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login de clientes y barberos.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	barberRepo repository.BarberRepository
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, barberRepo repository.BarberRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, barberRepo: barberRepo, jwtCfg: jwtCfg}
}

// SignupUser registra un cliente identificado por su teléfono. Devuelve ErrPhoneAlreadyExists si ya existe.
func (uc *AuthUseCase) SignupUser(ctx context.Context, in dto.UserSignupRequest) (*dto.UserAuthResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > maxNameLength {
		return nil, domain.NewValidationError("name", "el nombre es requerido (máximo 200 caracteres)")
	}
	number, err := phone.Normalize(in.PhoneNumber)
	if err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByPhone(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrPhoneAlreadyExists
	}
	user := &entity.User{Name: name, PhoneNumber: number}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrPhoneAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("crear usuario: %w", err)
	}
	return uc.userAuth(user)
}

// SigninUser inicia sesión de un cliente solo con el teléfono.
func (uc *AuthUseCase) SigninUser(ctx context.Context, in dto.UserSigninRequest) (*dto.UserAuthResponse, error) {
	number, err := phone.Normalize(in.PhoneNumber)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByPhone(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return uc.userAuth(user)
}

// SignupBarber registra una barbería: hashea password con bcrypt y persiste la ubicación.
func (uc *AuthUseCase) SignupBarber(ctx context.Context, in dto.BarberSignupRequest) (*dto.BarberAuthResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > maxNameLength {
		return nil, domain.NewValidationError("name", "el nombre es requerido (máximo 200 caracteres)")
	}
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" {
		return nil, domain.NewValidationError("username", "el nombre de usuario es requerido")
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.NewValidationError("password", "la contraseña debe tener al menos 8 caracteres")
	}
	if in.Lat == nil || in.Long == nil {
		return nil, domain.NewValidationError("location", "lat y long son requeridos")
	}
	loc := geo.Point{Lat: *in.Lat, Long: *in.Long}
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	existing, err := uc.barberRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("buscar barbero: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUsernameAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	barber := &entity.Barber{
		Name:         name,
		Username:     username,
		PasswordHash: string(hash),
		Lat:          loc.Lat,
		Long:         loc.Long,
	}
	if err := uc.barberRepo.Create(ctx, barber); err != nil {
		if errors.Is(err, domain.ErrUsernameAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("crear barbero: %w", err)
	}
	return uc.barberAuth(barber)
}

// SigninBarber verifica usuario/password. Usuario inexistente y password incorrecta
// devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) SigninBarber(ctx context.Context, in dto.BarberSigninRequest) (*dto.BarberAuthResponse, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" || in.Password == "" {
		return nil, domain.NewValidationError("username", "usuario y contraseña son requeridos")
	}
	barber, err := uc.barberRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("buscar barbero: %w", err)
	}
	if barber == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(barber.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.barberAuth(barber)
}

func (uc *AuthUseCase) userAuth(u *entity.User) (*dto.UserAuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, entity.RoleUser, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.UserAuthResponse{Token: token, User: toUserResponse(u)}, nil
}

func (uc *AuthUseCase) barberAuth(b *entity.Barber) (*dto.BarberAuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, b.ID, entity.RoleBarber, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.BarberAuthResponse{Token: token, Barber: toBarberResponse(b)}, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Name: u.Name, PhoneNumber: u.PhoneNumber, CreatedAt: u.CreatedAt}
}

func toBarberResponse(b *entity.Barber) dto.BarberResponse {
	return dto.BarberResponse{ID: b.ID, Name: b.Name, Username: b.Username, Lat: b.Lat, Long: b.Long}
}
