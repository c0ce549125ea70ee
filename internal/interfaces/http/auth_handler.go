package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nextcut-api/internal/application/auth"
	"github.com/jhoicas/nextcut-api/internal/application/dto"
	"github.com/jhoicas/nextcut-api/internal/domain"
	"github.com/jhoicas/nextcut-api/pkg/logger"
)

// AuthHandler maneja registro y login de clientes y barberos.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// SignupUser godoc
// @Summary      Registrar cliente
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UserSignupRequest  true  "name, phone_number"
// @Success      201   {object}  dto.UserAuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/signup [post]
func (h *AuthHandler) SignupUser(c *fiber.Ctx) error {
	var in dto.UserSignupRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SignupUser(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SigninUser godoc
// @Summary      Iniciar sesión como cliente
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UserSigninRequest  true  "phone_number"
// @Success      200   {object}  dto.UserAuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/users/signin [post]
func (h *AuthHandler) SigninUser(c *fiber.Ctx) error {
	var in dto.UserSigninRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SigninUser(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "teléfono no registrado, regístrate primero"})
		}
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// SignupBarber godoc
// @Summary      Registrar barbería
// @Tags         barbers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BarberSignupRequest  true  "name, username, password, lat, long"
// @Success      201   {object}  dto.BarberAuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/barbers/signup [post]
func (h *AuthHandler) SignupBarber(c *fiber.Ctx) error {
	var in dto.BarberSignupRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SignupBarber(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SigninBarber godoc
// @Summary      Iniciar sesión como barbero
// @Tags         barbers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BarberSigninRequest  true  "username, password"
// @Success      200   {object}  dto.BarberAuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/barbers/signin [post]
func (h *AuthHandler) SigninBarber(c *fiber.Ctx) error {
	var in dto.BarberSigninRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SigninBarber(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
