package entity

// Roles de los sujetos autenticados.
const (
	RoleUser   = "USER"
	RoleBarber = "BARBER"
)
