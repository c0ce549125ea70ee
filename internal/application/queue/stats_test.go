package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nextcut-api/internal/application/queue"
	"github.com/jhoicas/nextcut-api/internal/domain"
	"github.com/jhoicas/nextcut-api/internal/domain/entity"
)

func TestGetBarberStats_CuentaHoyTotalYRecientes(t *testing.T) {
	f := newFixture(t, defaultConfig())
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

	// Ayer: 11 servicios; hoy: 2.
	for i := 0; i < 11; i++ {
		require.NoError(t, f.store.History().Append(ctx, &entity.ServiceHistory{
			BarberID: f.barber.ID, UserID: f.users[0].ID, Service: "beard",
			ServedAt: now.Add(-24*time.Hour - time.Duration(i)*time.Minute),
		}))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, f.store.History().Append(ctx, &entity.ServiceHistory{
			BarberID: f.barber.ID, UserID: f.users[1].ID, Service: "haircut",
			ServedAt: now.Add(-time.Duration(i+1) * time.Hour),
		}))
	}
	_, err := f.manager.JoinQueue(ctx, f.barber.ID, f.users[2].ID, "haircut")
	require.NoError(t, err)

	uc := queue.NewStatsUseCase(f.store.Barbers(), f.store.Users(), f.store.Queue(), f.store.History(), 15,
		func() time.Time { return now })
	st, err := uc.GetBarberStats(ctx, f.barber.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, st.CurrentQueueLength)
	assert.Equal(t, 13, st.TotalCustomersServiced)
	assert.Equal(t, 2, st.TodayCustomersServiced)
	assert.Equal(t, 15, st.EstimatedWaitTime)
	require.Len(t, st.RecentServices, 10)
	assert.Equal(t, "haircut", st.RecentServices[0].Service)
	assert.Equal(t, f.users[1].Name, st.RecentServices[0].User.Name)

	_, err = uc.GetBarberStats(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrBarberNotFound)
}
