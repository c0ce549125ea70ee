package entity

import "time"

// User representa un cliente. PhoneNumber es su identificador externo único
// (10 dígitos, primer dígito 6-9).
type User struct {
	ID          int64
	Name        string
	PhoneNumber string
	CreatedAt   time.Time
}
