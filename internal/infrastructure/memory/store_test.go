package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nextcut-api/internal/domain"
	"github.com/jhoicas/nextcut-api/internal/domain/entity"
	"github.com/jhoicas/nextcut-api/internal/domain/repository"
	"github.com/jhoicas/nextcut-api/internal/infrastructure/memory"
)

func seed(t *testing.T, s *memory.Store) (barberID, userID int64) {
	t.Helper()
	ctx := context.Background()
	b := &entity.Barber{Name: "Corte Fino", Username: "cortefino", Lat: 19.07, Long: 72.87}
	require.NoError(t, s.Barbers().Create(ctx, b))
	u := &entity.User{Name: "Ana", PhoneNumber: "9876543210"}
	require.NoError(t, s.Users().Create(ctx, u))
	return b.ID, u.ID
}

func TestQueueRepo_UnSlotPorUsuario(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	barberID, userID := seed(t, s)

	require.NoError(t, s.Queue().Create(ctx, &entity.QueueSlot{BarberID: barberID, UserID: userID, Service: "haircut", EnteredAt: time.Now()}))
	err := s.Queue().Create(ctx, &entity.QueueSlot{BarberID: barberID, UserID: userID, Service: "beard", EnteredAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRunQueue_RollbackSiFnFalla(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	barberID, userID := seed(t, s)
	require.NoError(t, s.Queue().Create(ctx, &entity.QueueSlot{BarberID: barberID, UserID: userID, Service: "haircut", EnteredAt: time.Now()}))

	boom := errors.New("fallo simulado")
	err := s.RunQueue(ctx, func(q repository.QueueRepository, h repository.ServiceHistoryRepository) error {
		require.NoError(t, h.Append(ctx, &entity.ServiceHistory{BarberID: barberID, UserID: userID, Service: "haircut", ServedAt: time.Now()}))
		n, err := q.DeleteByUser(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, int64(1), n)
		return boom
	})
	require.ErrorIs(t, err, boom)

	slot, err := s.Queue().GetByUser(ctx, userID)
	require.NoError(t, err)
	assert.NotNil(t, slot, "el slot debe seguir existiendo tras el rollback")
	total, err := s.History().CountByBarber(ctx, barberID)
	require.NoError(t, err)
	assert.Zero(t, total, "el historial no debe conservar la inserción revertida")
}

func TestQueueRepo_OrdenFIFOConDesempatePorID(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	barberID, first := seed(t, s)
	second := &entity.User{Name: "Luis", PhoneNumber: "9123456780"}
	require.NoError(t, s.Users().Create(ctx, second))
	third := &entity.User{Name: "Eva", PhoneNumber: "8123456780"}
	require.NoError(t, s.Users().Create(ctx, third))

	t0 := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.Queue().Create(ctx, &entity.QueueSlot{BarberID: barberID, UserID: third.ID, Service: "x", EnteredAt: t0.Add(time.Minute)}))
	a := &entity.QueueSlot{BarberID: barberID, UserID: first, Service: "x", EnteredAt: t0}
	require.NoError(t, s.Queue().Create(ctx, a))
	b := &entity.QueueSlot{BarberID: barberID, UserID: second.ID, Service: "x", EnteredAt: t0}
	require.NoError(t, s.Queue().Create(ctx, b))

	list, err := s.Queue().ListByBarber(ctx, barberID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{first, second.ID, third.ID}, []int64{list[0].UserID, list[1].UserID, list[2].UserID})

	ahead, err := s.Queue().CountAhead(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, 1, ahead, "mismo entered_at: desempata el id menor")
}

func TestHistoryRepo_RecientesYDesdeFecha(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	barberID, userID := seed(t, s)
	t0 := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		require.NoError(t, s.History().Append(ctx, &entity.ServiceHistory{
			BarberID: barberID, UserID: userID, Service: "haircut", ServedAt: t0.Add(time.Duration(i) * time.Hour),
		}))
	}

	recent, err := s.History().ListRecentByBarber(ctx, barberID, 10)
	require.NoError(t, err)
	require.Len(t, recent, 10)
	assert.Equal(t, t0.Add(11*time.Hour), recent[0].ServedAt)

	since, err := s.History().CountByBarberSince(ctx, barberID, t0.Add(10*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, since)
}

func TestUserRepo_TelefonoDuplicado(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seed(t, s)
	err := s.Users().Create(ctx, &entity.User{Name: "Otra", PhoneNumber: "9876543210"})
	assert.ErrorIs(t, err, domain.ErrPhoneAlreadyExists)
}
