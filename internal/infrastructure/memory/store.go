// Package memory implementa los puertos de repositorio en memoria.
// Se usa con STORAGE_DRIVER=memory (desarrollo local) y en los tests de casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/nextcut-api/internal/application/queue"
	"github.com/jhoicas/nextcut-api/internal/domain/entity"
	"github.com/jhoicas/nextcut-api/internal/domain/repository"
)

var _ queue.TxRunner = (*Store)(nil)

type state struct {
	barbers map[int64]entity.Barber
	users   map[int64]entity.User
	slots   map[int64]entity.QueueSlot // por UserID: un solo slot por usuario
	history []entity.ServiceHistory

	nextBarberID  int64
	nextUserID    int64
	nextSlotID    int64
	nextHistoryID int64
}

func newState() *state {
	return &state{
		barbers: map[int64]entity.Barber{},
		users:   map[int64]entity.User{},
		slots:   map[int64]entity.QueueSlot{},
	}
}

func (s *state) clone() *state {
	c := &state{
		barbers:       make(map[int64]entity.Barber, len(s.barbers)),
		users:         make(map[int64]entity.User, len(s.users)),
		slots:         make(map[int64]entity.QueueSlot, len(s.slots)),
		history:       append([]entity.ServiceHistory(nil), s.history...),
		nextBarberID:  s.nextBarberID,
		nextUserID:    s.nextUserID,
		nextSlotID:    s.nextSlotID,
		nextHistoryID: s.nextHistoryID,
	}
	for k, v := range s.barbers {
		c.barbers[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.slots {
		c.slots[k] = v
	}
	return c
}

// Store guarda todas las tablas detrás de un único RWMutex.
// Las transacciones toman el lock de escritura, trabajan sobre una copia y la publican
// solo si fn no devuelve error, de modo que un fallo a mitad no deja cambios parciales.
type Store struct {
	mu   sync.RWMutex
	data *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Ping cumple con el health check; el almacén en memoria siempre está disponible.
func (s *Store) Ping(context.Context) error { return nil }

// Barbers repositorio de barberos fuera de transacción.
func (s *Store) Barbers() *BarberRepo { return &BarberRepo{store: s} }

// Users repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo { return &UserRepo{store: s} }

// Queue repositorio de slots fuera de transacción.
func (s *Store) Queue() *QueueRepo { return &QueueRepo{store: s} }

// History repositorio del historial fuera de transacción.
func (s *Store) History() *HistoryRepo { return &HistoryRepo{store: s} }

// RunQueue ejecuta fn con repositorios atados a una copia del estado.
func (s *Store) RunQueue(ctx context.Context, fn func(
	queueRepo repository.QueueRepository,
	historyRepo repository.ServiceHistoryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.data.clone()
	if err := fn(&QueueRepo{store: s, tx: tx}, &HistoryRepo{store: s, tx: tx}); err != nil {
		return err
	}
	s.data = tx
	return nil
}

// read ejecuta fn con el estado visible: la copia de la tx si existe, o el estado
// confirmado bajo lock de lectura.
func (s *Store) read(tx *state, fn func(*state)) {
	if tx != nil {
		fn(tx)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// write igual que read pero con lock de escritura fuera de transacción.
func (s *Store) write(tx *state, fn func(*state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}
