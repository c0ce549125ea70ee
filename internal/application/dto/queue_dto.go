package dto

import "time"

// JoinQueueRequest entrada para unirse a la cola de un barbero (pago en efectivo).
type JoinQueueRequest struct {
	BarberID int64  `json:"barber_id" validate:"required"`
	Service  string `json:"service" validate:"required"`
}

// RemoveFromQueueRequest entrada del barbero para marcar atendido a un usuario.
type RemoveFromQueueRequest struct {
	UserID int64 `json:"user_id" validate:"required"`
}

// WalkInRequest entrada del barbero para agregar un cliente presencial.
type WalkInRequest struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Service     string `json:"service" validate:"required"`
}

// UserSummary datos del usuario mostrados junto a un slot.
type UserSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

// BarberSummary datos del barbero mostrados junto a un slot.
type BarberSummary struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat,omitempty"`
	Long float64 `json:"long,omitempty"`
}

// QueueSlotResponse slot recién creado con resúmenes de usuario y barbero.
type QueueSlotResponse struct {
	ID        int64         `json:"id"`
	BarberID  int64         `json:"barber_id"`
	UserID    int64         `json:"user_id"`
	Service   string        `json:"service"`
	EnteredAt time.Time     `json:"entered_at"`
	User      UserSummary   `json:"user"`
	Barber    BarberSummary `json:"barber"`
}

// LeaveQueueResponse resultado de abandonar la cola.
// Left=false significa que el usuario no estaba en ninguna cola (no es un error).
type LeaveQueueResponse struct {
	Left       bool   `json:"left"`
	Message    string `json:"message"`
	BarberID   *int64 `json:"barber_id"`
	BarberName string `json:"barber_name,omitempty"`
}

// RemoveFromQueueResponse respuesta al barbero. Removed=false cuando el usuario ya no estaba en la cola.
type RemoveFromQueueResponse struct {
	Removed bool            `json:"removed"`
	Message string          `json:"message"`
	Served  *ServedResponse `json:"served,omitempty"`
}

// ServedResponse resultado de retirar (atender) a un usuario.
type ServedResponse struct {
	User     UserSummary `json:"user"`
	Service  string      `json:"service"`
	ServedAt time.Time   `json:"served_at"`
}

// QueueEntryResponse un slot dentro del listado de cola del barbero.
type QueueEntryResponse struct {
	Position  int         `json:"position"`
	QueueID   int64       `json:"queue_id"`
	User      UserSummary `json:"user"`
	Service   string      `json:"service"`
	EnteredAt time.Time   `json:"entered_at"`
}

// BarberQueueResponse cola completa de un barbero en orden FIFO.
type BarberQueueResponse struct {
	BarberID    int64                `json:"barber_id"`
	QueueLength int                  `json:"queue_length"`
	Queue       []QueueEntryResponse `json:"queue"`
}

// QueueStatusResponse estado del usuario en la cola.
// Si InQueue es false todos los demás campos son null.
type QueueStatusResponse struct {
	InQueue           bool           `json:"in_queue"`
	QueuePosition     *int           `json:"queue_position"`
	Barber            *BarberSummary `json:"barber"`
	EnteredAt         *time.Time     `json:"entered_at"`
	Service           *string        `json:"service"`
	EstimatedWaitTime *int           `json:"estimated_wait_time"` // minutos
}

// NearbyBarbersRequest búsqueda de barberos por ubicación. Radius en km (opcional).
type NearbyBarbersRequest struct {
	Lat    *float64 `json:"lat" validate:"required"`
	Long   *float64 `json:"long" validate:"required"`
	Radius *float64 `json:"radius"`
}

// NearbyBarberResponse barbero con distancia y largo de cola actual.
type NearbyBarberResponse struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Lat               float64 `json:"lat"`
	Long              float64 `json:"long"`
	Distance          float64 `json:"distance"` // km, un decimal
	QueueLength       int     `json:"queue_length"`
	EstimatedWaitTime int     `json:"estimated_wait_time"` // minutos
}

// NearbyBarbersResponse resultado de la búsqueda.
type NearbyBarbersResponse struct {
	RadiusKm float64                `json:"radius_km"`
	Barbers  []NearbyBarberResponse `json:"barbers"`
}

// ServiceHistoryResponse un servicio completado.
type ServiceHistoryResponse struct {
	ID       int64       `json:"id"`
	User     UserSummary `json:"user"`
	Service  string      `json:"service"`
	ServedAt time.Time   `json:"served_at"`
}

// BarberStatsResponse estadísticas del barbero.
type BarberStatsResponse struct {
	CurrentQueueLength     int                      `json:"current_queue_length"`
	TotalCustomersServiced int                      `json:"total_customers_serviced"`
	TodayCustomersServiced int                      `json:"today_customers_serviced"`
	EstimatedWaitTime      int                      `json:"estimated_wait_time"`
	RecentServices         []ServiceHistoryResponse `json:"recent_services"`
}
