package queue

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/nextcut-api/internal/application/dto"
	"github.com/jhoicas/nextcut-api/internal/domain"
	"github.com/jhoicas/nextcut-api/internal/domain/geo"
	"github.com/jhoicas/nextcut-api/internal/domain/repository"
)

// NearbyConfig radios de búsqueda en km.
type NearbyConfig struct {
	DefaultRadiusKm   float64
	MaxRadiusKm       float64
	AvgServiceMinutes int
}

// NearbyUseCase busca barberos dentro de un radio y adjunta el largo de su cola.
// Es de solo lectura: la cantidad en cola es una foto del momento de la consulta.
type NearbyUseCase struct {
	barbers repository.BarberRepository
	queue   repository.QueueRepository
	cfg     NearbyConfig
}

// NewNearbyUseCase construye el caso de uso.
func NewNearbyUseCase(barbers repository.BarberRepository, queue repository.QueueRepository, cfg NearbyConfig) *NearbyUseCase {
	if cfg.DefaultRadiusKm <= 0 {
		cfg.DefaultRadiusKm = 10
	}
	if cfg.MaxRadiusKm < cfg.DefaultRadiusKm {
		cfg.MaxRadiusKm = cfg.DefaultRadiusKm
	}
	if cfg.AvgServiceMinutes <= 0 {
		cfg.AvgServiceMinutes = 15
	}
	return &NearbyUseCase{barbers: barbers, queue: queue, cfg: cfg}
}

// Find devuelve los barberos a distancia <= radio (haversine sobre la distancia sin redondear),
// ordenados por distancia ascendente y luego por id. radiusKm nil usa el radio por defecto.
func (uc *NearbyUseCase) Find(ctx context.Context, origin geo.Point, radiusKm *float64) (*dto.NearbyBarbersResponse, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	radius := uc.cfg.DefaultRadiusKm
	if radiusKm != nil {
		radius = *radiusKm
	}
	if radius <= 0 || radius > uc.cfg.MaxRadiusKm {
		return nil, domain.NewValidationError("radius", fmt.Sprintf("el radio debe estar entre 0 y %.0f km", uc.cfg.MaxRadiusKm))
	}

	all, err := uc.barbers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar barberos: %w", err)
	}

	type hit struct {
		dto.NearbyBarberResponse
		raw float64
	}
	hits := make([]hit, 0)
	ids := make([]int64, 0)
	for _, b := range all {
		d := geo.DistanceKm(origin, geo.Point{Lat: b.Lat, Long: b.Long})
		if d > radius {
			continue
		}
		hits = append(hits, hit{
			NearbyBarberResponse: dto.NearbyBarberResponse{
				ID:       b.ID,
				Name:     b.Name,
				Lat:      b.Lat,
				Long:     b.Long,
				Distance: geo.RoundKm(d),
			},
			raw: d,
		})
		ids = append(ids, b.ID)
	}

	counts := map[int64]int{}
	if len(ids) > 0 {
		counts, err = uc.queue.CountByBarbers(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("contar colas: %w", err)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].raw != hits[j].raw {
			return hits[i].raw < hits[j].raw
		}
		return hits[i].ID < hits[j].ID
	})

	out := &dto.NearbyBarbersResponse{RadiusKm: radius, Barbers: make([]dto.NearbyBarberResponse, 0, len(hits))}
	for _, h := range hits {
		r := h.NearbyBarberResponse
		r.QueueLength = counts[r.ID]
		r.EstimatedWaitTime = r.QueueLength * uc.cfg.AvgServiceMinutes
		out.Barbers = append(out.Barbers, r)
	}
	return out, nil
}
