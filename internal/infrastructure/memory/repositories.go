package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/nextcut-api/internal/domain"
	"github.com/jhoicas/nextcut-api/internal/domain/entity"
	"github.com/jhoicas/nextcut-api/internal/domain/repository"
)

var (
	_ repository.BarberRepository         = (*BarberRepo)(nil)
	_ repository.UserRepository           = (*UserRepo)(nil)
	_ repository.QueueRepository          = (*QueueRepo)(nil)
	_ repository.ServiceHistoryRepository = (*HistoryRepo)(nil)
)

// BarberRepo implementa repository.BarberRepository.
type BarberRepo struct {
	store *Store
}

func (r *BarberRepo) Create(ctx context.Context, b *entity.Barber) error {
	return r.store.write(nil, func(s *state) error {
		for _, existing := range s.barbers {
			if existing.Username == b.Username {
				return domain.ErrUsernameAlreadyExists
			}
		}
		s.nextBarberID++
		b.ID = s.nextBarberID
		if b.CreatedAt.IsZero() {
			b.CreatedAt = time.Now().UTC()
		}
		s.barbers[b.ID] = *b
		return nil
	})
}

func (r *BarberRepo) GetByID(ctx context.Context, id int64) (*entity.Barber, error) {
	var out *entity.Barber
	r.store.read(nil, func(s *state) {
		if b, ok := s.barbers[id]; ok {
			out = &b
		}
	})
	return out, nil
}

func (r *BarberRepo) GetByUsername(ctx context.Context, username string) (*entity.Barber, error) {
	var out *entity.Barber
	r.store.read(nil, func(s *state) {
		for _, b := range s.barbers {
			if b.Username == username {
				b := b
				out = &b
				return
			}
		}
	})
	return out, nil
}

func (r *BarberRepo) ListAll(ctx context.Context) ([]*entity.Barber, error) {
	var out []*entity.Barber
	r.store.read(nil, func(s *state) {
		out = make([]*entity.Barber, 0, len(s.barbers))
		for _, b := range s.barbers {
			b := b
			out = append(out, &b)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UserRepo implementa repository.UserRepository.
type UserRepo struct {
	store *Store
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	return r.store.write(nil, func(s *state) error {
		for _, existing := range s.users {
			if existing.PhoneNumber == u.PhoneNumber {
				return domain.ErrPhoneAlreadyExists
			}
		}
		s.nextUserID++
		u.ID = s.nextUserID
		if u.CreatedAt.IsZero() {
			u.CreatedAt = time.Now().UTC()
		}
		s.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	r.store.read(nil, func(s *state) {
		if u, ok := s.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r *UserRepo) GetByPhone(ctx context.Context, phoneNumber string) (*entity.User, error) {
	var out *entity.User
	r.store.read(nil, func(s *state) {
		for _, u := range s.users {
			if u.PhoneNumber == phoneNumber {
				u := u
				out = &u
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]*entity.User, error) {
	out := make(map[int64]*entity.User, len(ids))
	r.store.read(nil, func(s *state) {
		for _, id := range ids {
			if u, ok := s.users[id]; ok {
				u := u
				out[id] = &u
			}
		}
	})
	return out, nil
}

// QueueRepo implementa repository.QueueRepository. Con tx != nil opera sobre la copia
// de una transacción en curso (el lock ya lo tiene RunQueue).
type QueueRepo struct {
	store *Store
	tx    *state
}

func (r *QueueRepo) Create(ctx context.Context, slot *entity.QueueSlot) error {
	return r.store.write(r.tx, func(s *state) error {
		if _, ok := s.slots[slot.UserID]; ok {
			return domain.ErrConflict
		}
		if _, ok := s.barbers[slot.BarberID]; !ok {
			return domain.ErrBarberNotFound
		}
		if _, ok := s.users[slot.UserID]; !ok {
			return domain.ErrUserNotFound
		}
		s.nextSlotID++
		slot.ID = s.nextSlotID
		s.slots[slot.UserID] = *slot
		return nil
	})
}

func (r *QueueRepo) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.store.write(r.tx, func(s *state) error {
		if _, ok := s.slots[userID]; ok {
			delete(s.slots, userID)
			n = 1
		}
		return nil
	})
	return n, err
}

func (r *QueueRepo) GetByUser(ctx context.Context, userID int64) (*entity.QueueSlot, error) {
	var out *entity.QueueSlot
	r.store.read(r.tx, func(s *state) {
		if slot, ok := s.slots[userID]; ok {
			out = &slot
		}
	})
	return out, nil
}

// GetByUserForUpdate dentro de RunQueue el lock de escritura ya serializa el acceso.
func (r *QueueRepo) GetByUserForUpdate(ctx context.Context, userID int64) (*entity.QueueSlot, error) {
	return r.GetByUser(ctx, userID)
}

func (r *QueueRepo) ListByBarber(ctx context.Context, barberID int64) ([]*entity.QueueSlot, error) {
	var out []*entity.QueueSlot
	r.store.read(r.tx, func(s *state) {
		out = make([]*entity.QueueSlot, 0)
		for _, slot := range s.slots {
			if slot.BarberID == barberID {
				slot := slot
				out = append(out, &slot)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

func (r *QueueRepo) CountAhead(ctx context.Context, slot *entity.QueueSlot) (int, error) {
	n := 0
	r.store.read(r.tx, func(s *state) {
		for _, other := range s.slots {
			other := other
			if other.BarberID == slot.BarberID && other.Before(slot) {
				n++
			}
		}
	})
	return n, nil
}

func (r *QueueRepo) CountByBarbers(ctx context.Context, barberIDs []int64) (map[int64]int, error) {
	out := make(map[int64]int, len(barberIDs))
	wanted := make(map[int64]struct{}, len(barberIDs))
	for _, id := range barberIDs {
		wanted[id] = struct{}{}
	}
	r.store.read(r.tx, func(s *state) {
		for _, slot := range s.slots {
			if _, ok := wanted[slot.BarberID]; ok {
				out[slot.BarberID]++
			}
		}
	})
	return out, nil
}

// HistoryRepo implementa repository.ServiceHistoryRepository.
type HistoryRepo struct {
	store *Store
	tx    *state
}

func (r *HistoryRepo) Append(ctx context.Context, h *entity.ServiceHistory) error {
	return r.store.write(r.tx, func(s *state) error {
		s.nextHistoryID++
		h.ID = s.nextHistoryID
		s.history = append(s.history, *h)
		return nil
	})
}

func (r *HistoryRepo) CountByBarber(ctx context.Context, barberID int64) (int, error) {
	n := 0
	r.store.read(r.tx, func(s *state) {
		for _, h := range s.history {
			if h.BarberID == barberID {
				n++
			}
		}
	})
	return n, nil
}

func (r *HistoryRepo) CountByBarberSince(ctx context.Context, barberID int64, since time.Time) (int, error) {
	n := 0
	r.store.read(r.tx, func(s *state) {
		for _, h := range s.history {
			if h.BarberID == barberID && !h.ServedAt.Before(since) {
				n++
			}
		}
	})
	return n, nil
}

func (r *HistoryRepo) ListRecentByBarber(ctx context.Context, barberID int64, limit int) ([]*entity.ServiceHistory, error) {
	var out []*entity.ServiceHistory
	r.store.read(r.tx, func(s *state) {
		for _, h := range s.history {
			if h.BarberID == barberID {
				h := h
				out = append(out, &h)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ServedAt.Equal(out[j].ServedAt) {
			return out[i].ServedAt.After(out[j].ServedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
