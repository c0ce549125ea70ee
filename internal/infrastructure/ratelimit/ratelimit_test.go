package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nextcut-api/internal/infrastructure/ratelimit"
)

func TestRedisLimiter_VentanaFija(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := ratelimit.NewRedisLimiter(db, 2, time.Minute)
	ctx := context.Background()

	mock.ExpectIncr("ratelimit:user:7").SetVal(1)
	mock.ExpectTTL("ratelimit:user:7").SetVal(time.Duration(-1))
	mock.ExpectExpire("ratelimit:user:7", time.Minute).SetVal(true)
	ok, err := l.Allow(ctx, "user:7")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectIncr("ratelimit:user:7").SetVal(2)
	mock.ExpectTTL("ratelimit:user:7").SetVal(50 * time.Second)
	ok, err = l.Allow(ctx, "user:7")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectIncr("ratelimit:user:7").SetVal(3)
	mock.ExpectTTL("ratelimit:user:7").SetVal(40 * time.Second)
	ok, err = l.Allow(ctx, "user:7")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLimiter_ReasignaTTLPerdido(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := ratelimit.NewRedisLimiter(db, 2, time.Minute)
	ctx := context.Background()

	// el EXPIRE del primer hit falla: la petición se rechaza con error
	mock.ExpectIncr("ratelimit:user:9").SetVal(1)
	mock.ExpectTTL("ratelimit:user:9").SetVal(time.Duration(-1))
	mock.ExpectExpire("ratelimit:user:9", time.Minute).SetErr(errors.New("timeout"))
	_, err := l.Allow(ctx, "user:9")
	require.Error(t, err)

	// la clave sigue sin TTL con el contador ya sobre el límite: se vuelve a asignar
	mock.ExpectIncr("ratelimit:user:9").SetVal(3)
	mock.ExpectTTL("ratelimit:user:9").SetVal(time.Duration(-1))
	mock.ExpectExpire("ratelimit:user:9", time.Minute).SetVal(true)
	ok, err := l.Allow(ctx, "user:9")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLimiter_ErrorDeRedis(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := ratelimit.NewRedisLimiter(db, 2, time.Minute)

	mock.ExpectIncr("ratelimit:user:1").SetErr(errors.New("connection refused"))
	_, err := l.Allow(context.Background(), "user:1")
	assert.Error(t, err)
}

func TestLocalLimiter_AgotaRafagaPorClave(t *testing.T) {
	l := ratelimit.NewLocalLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "user:1")
	assert.False(t, ok, "la cuarta petición en la ventana se rechaza")

	ok, _ = l.Allow(ctx, "user:2")
	assert.True(t, ok, "otra clave tiene su propio bucket")
}
