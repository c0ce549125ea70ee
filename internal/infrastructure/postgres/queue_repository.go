package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/nextcut-api/internal/domain"
	"github.com/jhoicas/nextcut-api/internal/domain/entity"
	"github.com/jhoicas/nextcut-api/internal/domain/repository"
)

var _ repository.QueueRepository = (*QueueRepo)(nil)

const (
	slotColumns          = `id, barber_id, user_id, service, entered_at`
	fkQueueSlotsBarberID = "queue_slots_barber_id_fkey"
	fkQueueSlotsUserID   = "queue_slots_user_id_fkey"
)

// QueueRepo implementación del puerto QueueRepository sobre PostgreSQL.
// La unicidad por usuario la impone el índice único queue_slots_user_id_key.
type QueueRepo struct {
	q Querier
}

// NewQueueRepository construye el adaptador; q puede ser el pool o una tx.
func NewQueueRepository(q Querier) *QueueRepo {
	return &QueueRepo{q: q}
}

// Create inserta el slot. Violación de unicidad de user_id -> domain.ErrConflict.
func (r *QueueRepo) Create(ctx context.Context, s *entity.QueueSlot) error {
	query := `
		INSERT INTO queue_slots (barber_id, user_id, service, entered_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, s.BarberID, s.UserID, s.Service, s.EnteredAt).Scan(&s.ID)
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	if constraint, ok := foreignKeyConstraint(err); ok {
		switch constraint {
		case fkQueueSlotsBarberID:
			return domain.ErrBarberNotFound
		case fkQueueSlotsUserID:
			return domain.ErrUserNotFound
		}
		return domain.ErrNotFound
	}
	return fmt.Errorf("insert queue slot: %w", err)
}

// DeleteByUser elimina el slot del usuario y devuelve las filas afectadas.
func (r *QueueRepo) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM queue_slots WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete queue slot: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetByUser obtiene el slot activo del usuario.
func (r *QueueRepo) GetByUser(ctx context.Context, userID int64) (*entity.QueueSlot, error) {
	return r.getOne(ctx, `SELECT `+slotColumns+` FROM queue_slots WHERE user_id = $1`, userID)
}

// GetByUserForUpdate igual que GetByUser con bloqueo de fila (solo tiene efecto dentro de una tx).
func (r *QueueRepo) GetByUserForUpdate(ctx context.Context, userID int64) (*entity.QueueSlot, error) {
	return r.getOne(ctx, `SELECT `+slotColumns+` FROM queue_slots WHERE user_id = $1 FOR UPDATE`, userID)
}

// ListByBarber lista la cola del barbero en orden FIFO (entered_at, id).
func (r *QueueRepo) ListByBarber(ctx context.Context, barberID int64) ([]*entity.QueueSlot, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+slotColumns+` FROM queue_slots WHERE barber_id = $1 ORDER BY entered_at, id`, barberID)
	if err != nil {
		return nil, fmt.Errorf("list queue: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.QueueSlot, 0)
	for rows.Next() {
		var s entity.QueueSlot
		if err := rows.Scan(&s.ID, &s.BarberID, &s.UserID, &s.Service, &s.EnteredAt); err != nil {
			return nil, fmt.Errorf("scan queue slot: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CountAhead cuenta los slots del mismo barbero anteriores en orden (entered_at, id).
func (r *QueueRepo) CountAhead(ctx context.Context, s *entity.QueueSlot) (int, error) {
	query := `
		SELECT COUNT(*) FROM queue_slots
		WHERE barber_id = $1 AND (entered_at, id) < ($2, $3)`
	var n int
	if err := r.q.QueryRow(ctx, query, s.BarberID, s.EnteredAt, s.ID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count ahead: %w", err)
	}
	return n, nil
}

// CountByBarbers cuenta los slots activos de cada barbero indicado.
func (r *QueueRepo) CountByBarbers(ctx context.Context, barberIDs []int64) (map[int64]int, error) {
	out := make(map[int64]int, len(barberIDs))
	if len(barberIDs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT barber_id, COUNT(*) FROM queue_slots WHERE barber_id = ANY($1) GROUP BY barber_id`, barberIDs)
	if err != nil {
		return nil, fmt.Errorf("count queues: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan queue count: %w", err)
		}
		out[id] = n
	}
	return out, rows.Err()
}

func (r *QueueRepo) getOne(ctx context.Context, query string, arg any) (*entity.QueueSlot, error) {
	var s entity.QueueSlot
	err := r.q.QueryRow(ctx, query, arg).Scan(&s.ID, &s.BarberID, &s.UserID, &s.Service, &s.EnteredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get queue slot: %w", err)
	}
	return &s, nil
}
