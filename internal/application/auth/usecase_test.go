package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nextcut-api/internal/application/auth"
	"github.com/jhoicas/nextcut-api/internal/application/dto"
	"github.com/jhoicas/nextcut-api/internal/domain"
	"github.com/jhoicas/nextcut-api/internal/domain/entity"
	"github.com/jhoicas/nextcut-api/internal/infrastructure/memory"
	"github.com/jhoicas/nextcut-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newUseCase() *auth.AuthUseCase {
	store := memory.NewStore()
	return auth.NewAuthUseCase(store.Users(), store.Barbers(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "nextcut-test"})
}

func ptr(f float64) *float64 { return &f }

func TestSignupUser_YSigninPorTelefono(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	out, err := uc.SignupUser(ctx, dto.UserSignupRequest{Name: " Priya ", PhoneNumber: "98765 43210"})
	require.NoError(t, err)
	assert.Equal(t, "Priya", out.User.Name)
	assert.Equal(t, "9876543210", out.User.PhoneNumber)

	id, role, err := jwt.Parse(testSecret, "nextcut-test", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, id)
	assert.Equal(t, entity.RoleUser, role)

	_, err = uc.SignupUser(ctx, dto.UserSignupRequest{Name: "Otra", PhoneNumber: "9876543210"})
	assert.ErrorIs(t, err, domain.ErrPhoneAlreadyExists)

	in, err := uc.SigninUser(ctx, dto.UserSigninRequest{PhoneNumber: "+91 9876543210"})
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, in.User.ID)

	_, err = uc.SigninUser(ctx, dto.UserSigninRequest{PhoneNumber: "9123456789"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSignupBarber_ValidaUbicacionYPassword(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.SignupBarber(ctx, dto.BarberSignupRequest{Name: "B", Username: "b", Password: "corta", Lat: ptr(1), Long: ptr(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SignupBarber(ctx, dto.BarberSignupRequest{Name: "B", Username: "b", Password: "suficiente", Lat: ptr(91), Long: ptr(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SignupBarber(ctx, dto.BarberSignupRequest{Name: "B", Username: "b", Password: "suficiente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSigninBarber_CredencialesIncorrectas(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	out, err := uc.SignupBarber(ctx, dto.BarberSignupRequest{
		Name: "Corte Real", Username: "CorteReal", Password: "secreta123", Lat: ptr(19.07), Long: ptr(72.87),
	})
	require.NoError(t, err)
	assert.Equal(t, "cortereal", out.Barber.Username)

	_, err = uc.SignupBarber(ctx, dto.BarberSignupRequest{
		Name: "Otro", Username: "cortereal", Password: "secreta123", Lat: ptr(0), Long: ptr(0),
	})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)

	_, err = uc.SigninBarber(ctx, dto.BarberSigninRequest{Username: "cortereal", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.SigninBarber(ctx, dto.BarberSigninRequest{Username: "nadie", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	in, err := uc.SigninBarber(ctx, dto.BarberSigninRequest{Username: "CorteReal", Password: "secreta123"})
	require.NoError(t, err)
	_, role, err := jwt.Parse(testSecret, "nextcut-test", in.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBarber, role)
}
