// Package phone normaliza y valida números de teléfono móvil de India.
package phone

import (
	"strings"

	"github.com/jhoicas/nextcut-api/internal/domain"
)

// Normalize elimina todo lo que no sea dígito y valida el resultado:
// exactamente 10 dígitos (se descarta el prefijo de país 91) y primer dígito 6, 7, 8 o 9.
func Normalize(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		digits = digits[2:]
	}
	if digits == "" {
		return "", domain.NewValidationError("phone_number", "el número de teléfono es requerido")
	}
	if len(digits) != 10 {
		return "", domain.NewValidationError("phone_number", "el número de teléfono debe tener exactamente 10 dígitos")
	}
	if !strings.ContainsRune("6789", rune(digits[0])) {
		return "", domain.NewValidationError("phone_number", "el número de teléfono debe empezar con 6, 7, 8 o 9")
	}
	return digits, nil
}
