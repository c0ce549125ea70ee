package ports

import "context"

// RateLimiter decide si una petición identificada por key puede continuar.
// Un error indica que el backend no respondió; quien llama decide si deja pasar.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
