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

var _ repository.BarberRepository = (*BarberRepo)(nil)

const barberColumns = `id, name, username, password_hash, lat, long, created_at`

// BarberRepo implementación del puerto BarberRepository sobre PostgreSQL.
type BarberRepo struct {
	q Querier
}

// NewBarberRepository construye el adaptador de persistencia para barberos.
func NewBarberRepository(q Querier) *BarberRepo {
	return &BarberRepo{q: q}
}

// Create persiste un barbero y asigna ID y CreatedAt.
func (r *BarberRepo) Create(ctx context.Context, b *entity.Barber) error {
	query := `
		INSERT INTO barbers (name, username, password_hash, lat, long)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query, b.Name, b.Username, b.PasswordHash, b.Lat, b.Long).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("insert barber: %w", err)
	}
	return nil
}

// GetByID obtiene un barbero por ID.
func (r *BarberRepo) GetByID(ctx context.Context, id int64) (*entity.Barber, error) {
	return r.getOne(ctx, `SELECT `+barberColumns+` FROM barbers WHERE id = $1`, id)
}

// GetByUsername obtiene un barbero por nombre de usuario.
func (r *BarberRepo) GetByUsername(ctx context.Context, username string) (*entity.Barber, error) {
	return r.getOne(ctx, `SELECT `+barberColumns+` FROM barbers WHERE username = $1`, username)
}

// ListAll lista todos los barberos ordenados por id.
func (r *BarberRepo) ListAll(ctx context.Context) ([]*entity.Barber, error) {
	rows, err := r.q.Query(ctx, `SELECT `+barberColumns+` FROM barbers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list barbers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Barber
	for rows.Next() {
		var b entity.Barber
		if err := rows.Scan(&b.ID, &b.Name, &b.Username, &b.PasswordHash, &b.Lat, &b.Long, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan barber: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

func (r *BarberRepo) getOne(ctx context.Context, query string, arg any) (*entity.Barber, error) {
	var b entity.Barber
	err := r.q.QueryRow(ctx, query, arg).Scan(&b.ID, &b.Name, &b.Username, &b.PasswordHash, &b.Lat, &b.Long, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get barber: %w", err)
	}
	return &b, nil
}
