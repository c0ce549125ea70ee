// Package queue contiene el ciclo de vida de la cola de barbería: unirse, salir,
// ser atendido, listar la cola y consultar la posición de un usuario.
package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/nextcut-api/internal/application/dto"
	"github.com/jhoicas/nextcut-api/internal/application/ports"
	"github.com/jhoicas/nextcut-api/internal/domain"
	"github.com/jhoicas/nextcut-api/internal/domain/catalog"
	"github.com/jhoicas/nextcut-api/internal/domain/entity"
	"github.com/jhoicas/nextcut-api/internal/domain/repository"
	"github.com/jhoicas/nextcut-api/pkg/logger"
)

const maxServiceLength = 100

// Config parámetros del gestor de cola.
type Config struct {
	AvgServiceMinutes int  // minutos por cliente para estimar la espera
	StrictServices    bool // true: el servicio debe pertenecer al catálogo
	JoinRetries       int  // reintentos de la transacción de ingreso ante conflicto de unicidad
}

// ManagerDeps dependencias del gestor. Events, Metrics, Logger y Clock son opcionales.
type ManagerDeps struct {
	TxRunner TxRunner
	Barbers  repository.BarberRepository
	Users    repository.UserRepository
	Queue    repository.QueueRepository
	Catalog  *catalog.Catalog
	Events   ports.QueueEventPublisher
	Metrics  ports.Metrics
	Logger   *logger.Logger
	Clock    func() time.Time
}

// Manager es el único punto que modifica los slots de cola y el historial de servicios.
// La posición nunca se almacena: se recalcula en cada lectura a partir de (entered_at, id).
type Manager struct {
	tx      TxRunner
	barbers repository.BarberRepository
	users   repository.UserRepository
	queue   repository.QueueRepository
	catalog *catalog.Catalog
	events  ports.QueueEventPublisher
	metrics ports.Metrics
	log     *logger.Logger
	clock   func() time.Time
	cfg     Config
}

// NewManager construye el gestor de cola.
func NewManager(deps ManagerDeps, cfg Config) *Manager {
	if cfg.AvgServiceMinutes <= 0 {
		cfg.AvgServiceMinutes = 15
	}
	if cfg.JoinRetries < 0 {
		cfg.JoinRetries = 0
	}
	m := &Manager{
		tx:      deps.TxRunner,
		barbers: deps.Barbers,
		users:   deps.Users,
		queue:   deps.Queue,
		catalog: deps.Catalog,
		events:  deps.Events,
		metrics: deps.Metrics,
		log:     deps.Logger,
		clock:   deps.Clock,
		cfg:     cfg,
	}
	if m.catalog == nil {
		m.catalog = catalog.Default()
	}
	if m.events == nil {
		m.events = ports.NopPublisher{}
	}
	if m.metrics == nil {
		m.metrics = ports.NopMetrics{}
	}
	if m.log == nil {
		m.log = logger.NewNop()
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	return m
}

// AvgServiceMinutes minutos estimados por cliente.
func (m *Manager) AvgServiceMinutes() int { return m.cfg.AvgServiceMinutes }

// JoinQueue ingresa al usuario en la cola del barbero. Dentro de una sola transacción
// elimina cualquier slot previo del usuario (en cualquier barbero) e inserta uno nuevo
// con entered_at = ahora. Cambiar de barbero descarta la espera anterior.
// Si otra transacción gana la carrera por la unicidad del usuario se reintenta el
// delete + insert completo hasta JoinRetries veces.
func (m *Manager) JoinQueue(ctx context.Context, barberID, userID int64, service string) (*dto.QueueSlotResponse, error) {
	out, err := m.joinQueue(ctx, barberID, userID, service)
	m.observe("join", err)
	return out, err
}

func (m *Manager) joinQueue(ctx context.Context, barberID, userID int64, service string) (*dto.QueueSlotResponse, error) {
	if barberID <= 0 {
		return nil, domain.NewValidationError("barber_id", "barber_id es requerido")
	}
	if userID <= 0 {
		return nil, domain.NewValidationError("user_id", "user_id es requerido")
	}
	service, err := m.normalizeService(service)
	if err != nil {
		return nil, err
	}

	barber, err := m.barbers.GetByID(ctx, barberID)
	if err != nil {
		return nil, m.internal(err, "buscar barbero", barberID, userID)
	}
	if barber == nil {
		return nil, domain.ErrBarberNotFound
	}
	user, err := m.users.GetByID(ctx, userID)
	if err != nil {
		return nil, m.internal(err, "buscar usuario", barberID, userID)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	slot := &entity.QueueSlot{BarberID: barberID, UserID: userID, Service: service}
	var replaced int64
	for attempt := 0; ; attempt++ {
		slot.ID = 0
		slot.EnteredAt = m.now()
		err = m.tx.RunQueue(ctx, func(queueRepo repository.QueueRepository, _ repository.ServiceHistoryRepository) error {
			n, err := queueRepo.DeleteByUser(ctx, userID)
			if err != nil {
				return err
			}
			replaced = n
			return queueRepo.Create(ctx, slot)
		})
		if errors.Is(err, domain.ErrConflict) && attempt < m.cfg.JoinRetries {
			m.log.Debug().Int64("user_id", userID).Int("attempt", attempt+1).Msg("conflicto de unicidad al unirse, reintentando")
			continue
		}
		break
	}
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrConflict
		}
		return nil, m.internal(err, "unirse a la cola", barberID, userID)
	}

	m.log.Debug().
		Int64("barber_id", barberID).
		Int64("user_id", userID).
		Int64("slot_id", slot.ID).
		Str("service", service).
		Bool("replaced_previous", replaced > 0).
		Msg("usuario ingresó a la cola")

	m.publish(ctx, ports.QueueEvent{
		Type:     ports.EventQueueJoined,
		BarberID: barberID,
		UserID:   userID,
		SlotID:   slot.ID,
		Service:  service,
	})

	return &dto.QueueSlotResponse{
		ID:        slot.ID,
		BarberID:  slot.BarberID,
		UserID:    slot.UserID,
		Service:   slot.Service,
		EnteredAt: slot.EnteredAt,
		User:      toUserSummary(user),
		Barber:    dto.BarberSummary{ID: barber.ID, Name: barber.Name},
	}, nil
}

// LeaveQueue elimina el slot del usuario sin registrar historial.
// Si el usuario no está en ninguna cola devuelve Left=false y ningún error; llamarlo
// dos veces seguidas produce el mismo resultado.
func (m *Manager) LeaveQueue(ctx context.Context, userID int64) (*dto.LeaveQueueResponse, error) {
	out, err := m.leaveQueue(ctx, userID)
	m.observe("leave", err)
	return out, err
}

func (m *Manager) leaveQueue(ctx context.Context, userID int64) (*dto.LeaveQueueResponse, error) {
	if userID <= 0 {
		return nil, domain.NewValidationError("user_id", "user_id es requerido")
	}

	var left *entity.QueueSlot
	err := m.tx.RunQueue(ctx, func(queueRepo repository.QueueRepository, _ repository.ServiceHistoryRepository) error {
		slot, err := queueRepo.GetByUserForUpdate(ctx, userID)
		if err != nil || slot == nil {
			return err
		}
		n, err := queueRepo.DeleteByUser(ctx, userID)
		if err != nil {
			return err
		}
		if n > 0 {
			left = slot
		}
		return nil
	})
	if err != nil {
		return nil, m.internal(err, "salir de la cola", 0, userID)
	}
	if left == nil {
		return &dto.LeaveQueueResponse{Left: false, Message: domain.ErrNotInQueue.Error()}, nil
	}

	barberID := left.BarberID
	out := &dto.LeaveQueueResponse{Left: true, Message: "saliste de la cola", BarberID: &barberID}
	barber, err := m.barbers.GetByID(ctx, barberID)
	if err != nil {
		m.log.Warn().Err(err).Int64("barber_id", barberID).Msg("no se pudo leer el barbero tras salir de la cola")
	} else if barber != nil {
		out.BarberName = barber.Name
	}

	m.log.Debug().Int64("barber_id", barberID).Int64("user_id", userID).Msg("usuario salió de la cola")
	m.publish(ctx, ports.QueueEvent{
		Type:     ports.EventQueueLeft,
		BarberID: barberID,
		UserID:   userID,
		SlotID:   left.ID,
		Service:  left.Service,
		Reason:   "user_left",
	})
	return out, nil
}

// RemoveFromQueue marca al usuario como atendido por el barbero: en una sola transacción
// agrega un registro de historial y elimina el slot. El slot debe pertenecer a la cola del
// barbero que llama; si no, se rechaza sin modificar nada.
func (m *Manager) RemoveFromQueue(ctx context.Context, barberID, userID int64) (*dto.ServedResponse, error) {
	out, err := m.removeFromQueue(ctx, barberID, userID)
	m.observe("remove", err)
	return out, err
}

func (m *Manager) removeFromQueue(ctx context.Context, barberID, userID int64) (*dto.ServedResponse, error) {
	if barberID <= 0 {
		return nil, domain.NewValidationError("barber_id", "barber_id es requerido")
	}
	if userID <= 0 {
		return nil, domain.NewValidationError("user_id", "user_id es requerido")
	}

	var served entity.ServiceHistory
	err := m.tx.RunQueue(ctx, func(queueRepo repository.QueueRepository, historyRepo repository.ServiceHistoryRepository) error {
		slot, err := queueRepo.GetByUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if slot == nil {
			return domain.ErrNotInQueue
		}
		if slot.BarberID != barberID {
			return domain.ErrNotQueueOwner
		}
		served = entity.ServiceHistory{
			BarberID: barberID,
			UserID:   userID,
			Service:  slot.Service,
			ServedAt: m.now(),
		}
		if err := historyRepo.Append(ctx, &served); err != nil {
			return err
		}
		n, err := queueRepo.DeleteByUser(ctx, userID)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotInQueue
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotInQueue) || errors.Is(err, domain.ErrNotQueueOwner) {
			m.log.Debug().Err(err).Int64("barber_id", barberID).Int64("user_id", userID).Msg("retiro de cola rechazado")
			return nil, err
		}
		return nil, m.internal(err, "retirar de la cola", barberID, userID)
	}

	summary := dto.UserSummary{ID: userID}
	user, err := m.users.GetByID(ctx, userID)
	if err != nil {
		m.log.Warn().Err(err).Int64("user_id", userID).Msg("no se pudo leer el usuario atendido")
	} else if user != nil {
		summary = toUserSummary(user)
	}

	m.log.Debug().Int64("barber_id", barberID).Int64("user_id", userID).Str("service", served.Service).Msg("usuario atendido")
	m.publish(ctx, ports.QueueEvent{
		Type:     ports.EventQueueServed,
		BarberID: barberID,
		UserID:   userID,
		Service:  served.Service,
	})

	return &dto.ServedResponse{User: summary, Service: served.Service, ServedAt: served.ServedAt}, nil
}

// GetQueueForBarber devuelve los slots activos del barbero en orden FIFO; la posición
// es el índice + 1. Una cola vacía no es un error.
func (m *Manager) GetQueueForBarber(ctx context.Context, barberID int64) (*dto.BarberQueueResponse, error) {
	if barberID <= 0 {
		return nil, domain.NewValidationError("barber_id", "barber_id es requerido")
	}
	barber, err := m.barbers.GetByID(ctx, barberID)
	if err != nil {
		return nil, m.internal(err, "buscar barbero", barberID, 0)
	}
	if barber == nil {
		return nil, domain.ErrBarberNotFound
	}

	slots, err := m.queue.ListByBarber(ctx, barberID)
	if err != nil {
		return nil, m.internal(err, "listar cola", barberID, 0)
	}
	ids := make([]int64, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.UserID)
	}
	users, err := m.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, m.internal(err, "leer usuarios de la cola", barberID, 0)
	}

	entries := make([]dto.QueueEntryResponse, 0, len(slots))
	for i, s := range slots {
		summary := dto.UserSummary{ID: s.UserID}
		if u, ok := users[s.UserID]; ok {
			summary = toUserSummary(u)
		}
		entries = append(entries, dto.QueueEntryResponse{
			Position:  i + 1,
			QueueID:   s.ID,
			User:      summary,
			Service:   s.Service,
			EnteredAt: s.EnteredAt,
		})
	}
	return &dto.BarberQueueResponse{BarberID: barberID, QueueLength: len(entries), Queue: entries}, nil
}

// GetStatusForUser devuelve la posición y la espera estimada del usuario.
// Sin slot activo devuelve InQueue=false (no es un error).
// Posición = 1 + slots del mismo barbero que van antes en orden (entered_at, id).
func (m *Manager) GetStatusForUser(ctx context.Context, userID int64) (*dto.QueueStatusResponse, error) {
	if userID <= 0 {
		return nil, domain.NewValidationError("user_id", "user_id es requerido")
	}
	slot, err := m.queue.GetByUser(ctx, userID)
	if err != nil {
		return nil, m.internal(err, "leer slot del usuario", 0, userID)
	}
	if slot == nil {
		return &dto.QueueStatusResponse{InQueue: false}, nil
	}

	ahead, err := m.queue.CountAhead(ctx, slot)
	if err != nil {
		return nil, m.internal(err, "calcular posición", slot.BarberID, userID)
	}
	position := ahead + 1
	wait := m.EstimatedWait(position)

	barber := &dto.BarberSummary{ID: slot.BarberID}
	b, err := m.barbers.GetByID(ctx, slot.BarberID)
	if err != nil {
		return nil, m.internal(err, "buscar barbero", slot.BarberID, userID)
	}
	if b != nil {
		barber = &dto.BarberSummary{ID: b.ID, Name: b.Name, Lat: b.Lat, Long: b.Long}
	}

	enteredAt := slot.EnteredAt
	service := slot.Service
	return &dto.QueueStatusResponse{
		InQueue:           true,
		QueuePosition:     &position,
		Barber:            barber,
		EnteredAt:         &enteredAt,
		Service:           &service,
		EstimatedWaitTime: &wait,
	}, nil
}

// EstimatedWait minutos de espera para la posición dada: (posición − 1) × promedio.
func (m *Manager) EstimatedWait(position int) int {
	if position <= 1 {
		return 0
	}
	return (position - 1) * m.cfg.AvgServiceMinutes
}

// normalizeService aplica la política de validación de servicio: cualquier texto no vacío
// (recortado, hasta 100 caracteres) o, en modo estricto, un id del catálogo.
func (m *Manager) normalizeService(raw string) (string, error) {
	service := strings.TrimSpace(raw)
	if service == "" {
		return "", domain.NewValidationError("service", "el servicio es requerido")
	}
	if len(service) > maxServiceLength {
		return "", domain.NewValidationError("service", fmt.Sprintf("el servicio admite como máximo %d caracteres", maxServiceLength))
	}
	if m.cfg.StrictServices {
		s, ok := m.catalog.Get(service)
		if !ok {
			return "", domain.NewValidationError("service", fmt.Sprintf("servicio desconocido %q", service))
		}
		return s.ID, nil
	}
	return service, nil
}

func (m *Manager) now() time.Time {
	// PostgreSQL guarda microsegundos; se trunca para que lo devuelto coincida con lo leído.
	return m.clock().UTC().Truncate(time.Microsecond)
}

func (m *Manager) publish(ctx context.Context, ev ports.QueueEvent) {
	ev.OccurredAt = m.now()
	if err := m.events.Publish(ctx, ev); err != nil {
		m.log.Warn().Err(err).Str("event", ev.Type).Int64("barber_id", ev.BarberID).Int64("user_id", ev.UserID).
			Msg("no se pudo publicar el evento de cola")
	}
}

func (m *Manager) observe(operation string, err error) {
	status := ports.StatusOK
	if err != nil {
		status = ports.StatusError
	}
	m.metrics.QueueOperation(operation, status)
}

// internal registra el fallo de infraestructura con contexto y lo devuelve envuelto.
func (m *Manager) internal(err error, op string, barberID, userID int64) error {
	m.log.Error().Err(err).Str("op", op).Int64("barber_id", barberID).Int64("user_id", userID).Msg("fallo en el almacén de cola")
	return fmt.Errorf("%s: %w", op, err)
}

func toUserSummary(u *entity.User) dto.UserSummary {
	return dto.UserSummary{ID: u.ID, Name: u.Name, PhoneNumber: u.PhoneNumber}
}
