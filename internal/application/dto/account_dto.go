package dto

import "time"

// UserSignupRequest entrada para registrar un cliente.
type UserSignupRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// UserSigninRequest entrada para iniciar sesión como cliente (solo teléfono).
type UserSigninRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// UserResponse salida de un cliente.
type UserResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// UserAuthResponse cliente + token JWT.
type UserAuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// BarberSignupRequest entrada para registrar una barbería.
type BarberSignupRequest struct {
	Name     string   `json:"name" validate:"required"`
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required,min=8"`
	Lat      *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Long     *float64 `json:"long" validate:"required,min=-180,max=180"`
}

// BarberSigninRequest entrada para iniciar sesión como barbero.
type BarberSigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// BarberResponse salida de un barbero (sin hash de contraseña).
type BarberResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Lat      float64 `json:"lat"`
	Long     float64 `json:"long"`
}

// BarberAuthResponse barbero + token JWT.
type BarberAuthResponse struct {
	Token  string         `json:"token"`
	Barber BarberResponse `json:"barber"`
}
