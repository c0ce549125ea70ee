package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/nextcut-api/internal/domain"
	"github.com/jhoicas/nextcut-api/internal/domain/entity"
	"github.com/jhoicas/nextcut-api/internal/domain/repository"
)

var _ repository.ServiceHistoryRepository = (*ServiceHistoryRepo)(nil)

// ServiceHistoryRepo implementación del puerto ServiceHistoryRepository sobre PostgreSQL.
type ServiceHistoryRepo struct {
	q Querier
}

// NewServiceHistoryRepository construye el adaptador; q puede ser el pool o una tx.
func NewServiceHistoryRepository(q Querier) *ServiceHistoryRepo {
	return &ServiceHistoryRepo{q: q}
}

// Append inserta un servicio completado.
func (r *ServiceHistoryRepo) Append(ctx context.Context, h *entity.ServiceHistory) error {
	query := `
		INSERT INTO service_history (barber_id, user_id, service, served_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, h.BarberID, h.UserID, h.Service, h.ServedAt).Scan(&h.ID)
	if err != nil {
		if _, ok := foreignKeyConstraint(err); ok {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert service history: %w", err)
	}
	return nil
}

// CountByBarber total de clientes atendidos por el barbero.
func (r *ServiceHistoryRepo) CountByBarber(ctx context.Context, barberID int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM service_history WHERE barber_id = $1`, barberID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count service history: %w", err)
	}
	return n, nil
}

// CountByBarberSince clientes atendidos desde since (inclusive).
func (r *ServiceHistoryRepo) CountByBarberSince(ctx context.Context, barberID int64, since time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM service_history WHERE barber_id = $1 AND served_at >= $2`, barberID, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count service history since: %w", err)
	}
	return n, nil
}

// ListRecentByBarber últimos servicios del barbero, más reciente primero.
func (r *ServiceHistoryRepo) ListRecentByBarber(ctx context.Context, barberID int64, limit int) ([]*entity.ServiceHistory, error) {
	query := `
		SELECT id, barber_id, user_id, service, served_at
		FROM service_history
		WHERE barber_id = $1
		ORDER BY served_at DESC, id DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, barberID, limit)
	if err != nil {
		return nil, fmt.Errorf("list service history: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.ServiceHistory, 0, limit)
	for rows.Next() {
		var h entity.ServiceHistory
		if err := rows.Scan(&h.ID, &h.BarberID, &h.UserID, &h.Service, &h.ServedAt); err != nil {
			return nil, fmt.Errorf("scan service history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
