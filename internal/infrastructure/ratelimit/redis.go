// Package ratelimit limita peticiones por sujeto autenticado: ventana fija en Redis
// cuando hay varias réplicas, o token bucket en memoria en una sola instancia.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/nextcut-api/internal/application/ports"
)

var _ ports.RateLimiter = (*RedisLimiter)(nil)

// RedisLimiter ventana fija: INCR por clave y EXPIRE mientras la clave no tenga TTL.
type RedisLimiter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
	prefix string
}

// NewRedisLimiter permite limit peticiones por window.
func NewRedisLimiter(client redis.Cmdable, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: int64(limit), window: window, prefix: "ratelimit:"}
}

// Allow incrementa el contador de la clave. INCR y TTL viajan en un solo pipeline;
// si la clave quedó sin expiración (primer hit o un EXPIRE previo fallido) se le
// asigna la ventana.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.prefix + key
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	if _, err := l.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		ttl = p.TTL(ctx, k)
		return nil
	}); err != nil {
		return false, fmt.Errorf("redis incr: %w", err)
	}
	if ttl.Val() < 0 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("redis expire: %w", err)
		}
	}
	return incr.Val() <= l.limit, nil
}
