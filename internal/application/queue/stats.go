package queue

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/nextcut-api/internal/application/dto"
	"github.com/jhoicas/nextcut-api/internal/domain"
	"github.com/jhoicas/nextcut-api/internal/domain/entity"
	"github.com/jhoicas/nextcut-api/internal/domain/repository"
)

const recentServicesLimit = 10

// StatsUseCase arma el tablero del barbero: cola actual, atendidos totales y de hoy,
// espera estimada y últimos servicios.
type StatsUseCase struct {
	barbers           repository.BarberRepository
	users             repository.UserRepository
	queue             repository.QueueRepository
	history           repository.ServiceHistoryRepository
	avgServiceMinutes int
	clock             func() time.Time
}

// NewStatsUseCase construye el caso de uso. clock nil usa time.Now (hora local para "hoy").
func NewStatsUseCase(
	barbers repository.BarberRepository,
	users repository.UserRepository,
	queue repository.QueueRepository,
	history repository.ServiceHistoryRepository,
	avgServiceMinutes int,
	clock func() time.Time,
) *StatsUseCase {
	if clock == nil {
		clock = time.Now
	}
	if avgServiceMinutes <= 0 {
		avgServiceMinutes = 15
	}
	return &StatsUseCase{
		barbers:           barbers,
		users:             users,
		queue:             queue,
		history:           history,
		avgServiceMinutes: avgServiceMinutes,
		clock:             clock,
	}
}

// GetBarberStats ejecuta las consultas en paralelo; un error en cualquiera cancela el resto.
func (uc *StatsUseCase) GetBarberStats(ctx context.Context, barberID int64) (*dto.BarberStatsResponse, error) {
	barber, err := uc.barbers.GetByID(ctx, barberID)
	if err != nil {
		return nil, fmt.Errorf("buscar barbero: %w", err)
	}
	if barber == nil {
		return nil, domain.ErrBarberNotFound
	}

	now := uc.clock()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var (
		current, total, today int
		recent                []*entity.ServiceHistory
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := uc.queue.CountByBarbers(gctx, []int64{barberID})
		if err != nil {
			return fmt.Errorf("contar cola: %w", err)
		}
		current = counts[barberID]
		return nil
	})
	g.Go(func() error {
		n, err := uc.history.CountByBarber(gctx, barberID)
		if err != nil {
			return fmt.Errorf("contar atendidos: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.history.CountByBarberSince(gctx, barberID, midnight)
		if err != nil {
			return fmt.Errorf("contar atendidos hoy: %w", err)
		}
		today = n
		return nil
	})
	g.Go(func() error {
		rows, err := uc.history.ListRecentByBarber(gctx, barberID, recentServicesLimit)
		if err != nil {
			return fmt.Errorf("listar recientes: %w", err)
		}
		recent = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(recent))
	for _, h := range recent {
		ids = append(ids, h.UserID)
	}
	users, err := uc.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("leer usuarios atendidos: %w", err)
	}

	out := &dto.BarberStatsResponse{
		CurrentQueueLength:     current,
		TotalCustomersServiced: total,
		TodayCustomersServiced: today,
		EstimatedWaitTime:      current * uc.avgServiceMinutes,
		RecentServices:         make([]dto.ServiceHistoryResponse, 0, len(recent)),
	}
	for _, h := range recent {
		summary := dto.UserSummary{ID: h.UserID}
		if u, ok := users[h.UserID]; ok {
			summary = toUserSummary(u)
		}
		out.RecentServices = append(out.RecentServices, dto.ServiceHistoryResponse{
			ID:       h.ID,
			User:     summary,
			Service:  h.Service,
			ServedAt: h.ServedAt,
		})
	}
	return out, nil
}
