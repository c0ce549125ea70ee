// Package payment conecta la confirmación de un pago externo con un único ingreso a la cola.
package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/nextcut-api/internal/application/dto"
	"github.com/jhoicas/nextcut-api/internal/application/ports"
	"github.com/jhoicas/nextcut-api/internal/domain"
	"github.com/jhoicas/nextcut-api/pkg/logger"
)

// Resultados de verificación reportados a métricas.
const (
	ResultVerified         = "verified"
	ResultInvalidSignature = "invalid_signature"
	ResultJoinFailed       = "join_failed"
	ResultNotConfigured    = "not_configured"
	ResultInvalidRequest   = "invalid_request"
	ResultCancelled        = "cancelled"
)

// JoinAfterCaptureError el pago fue verificado (el dinero ya se movió) pero el ingreso a la cola falló.
// Requiere conciliación manual; no se reintenta.
type JoinAfterCaptureError struct {
	OrderID   string
	PaymentID string
	BarberID  int64
	UserID    int64
	Err       error
}

func (e *JoinAfterCaptureError) Error() string {
	return fmt.Sprintf("%s (order %s, payment %s): %v", domain.ErrPaymentJoinFailed.Error(), e.OrderID, e.PaymentID, e.Err)
}

func (e *JoinAfterCaptureError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, domain.ErrPaymentJoinFailed).
func (e *JoinAfterCaptureError) Is(target error) bool {
	return target == domain.ErrPaymentJoinFailed
}

// Config secreto compartido, moneda y monto máximo de las órdenes.
type Config struct {
	KeySecret string
	Currency  string
	MaxAmount int64 // unidad mínima (paise); 0 = sin tope
}

// GateDeps dependencias de la pasarela. Orders puede ser nil si el procesador no está configurado.
type GateDeps struct {
	Orders  OrderCreator
	Joiner  QueueJoiner
	Events  ports.QueueEventPublisher
	Metrics ports.Metrics
	Logger  *logger.Logger
}

// Gate verifica aserciones de pago y autoriza exactamente una llamada a JoinQueue.
type Gate struct {
	orders  OrderCreator
	joiner  QueueJoiner
	events  ports.QueueEventPublisher
	metrics ports.Metrics
	log     *logger.Logger
	cfg     Config
}

// NewGate construye la pasarela.
func NewGate(deps GateDeps, cfg Config) *Gate {
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	g := &Gate{orders: deps.Orders, joiner: deps.Joiner, events: deps.Events, metrics: deps.Metrics, log: deps.Logger, cfg: cfg}
	if g.events == nil {
		g.events = ports.NopPublisher{}
	}
	if g.metrics == nil {
		g.metrics = ports.NopMetrics{}
	}
	if g.log == nil {
		g.log = logger.NewNop()
	}
	return g
}

// CreateOrder crea una orden en el procesador por amount (unidad mínima, p.ej. paise).
// No guarda estado local: el id devuelto es lo único que se necesita para verificar después.
func (g *Gate) CreateOrder(ctx context.Context, amount int64) (*dto.OrderResponse, error) {
	if g.orders == nil || g.cfg.KeySecret == "" {
		return nil, domain.ErrPaymentNotConfigured
	}
	if amount <= 0 {
		return nil, domain.NewValidationError("amount", "el monto debe ser mayor que cero")
	}
	if g.cfg.MaxAmount > 0 && amount > g.cfg.MaxAmount {
		return nil, domain.NewValidationError("amount", fmt.Sprintf("el monto excede el máximo permitido (%d)", g.cfg.MaxAmount))
	}
	receipt := "receipt_" + uuid.NewString()
	order, err := g.orders.CreateOrder(ctx, amount, g.cfg.Currency, receipt)
	if err != nil {
		g.log.Error().Err(err).Int64("amount", amount).Str("receipt", receipt).Msg("no se pudo crear la orden de pago")
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentGateway, err)
	}
	return &dto.OrderResponse{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
		Status:   order.Status,
	}, nil
}

// VerifyAndJoin recalcula la firma HMAC de "orderId|paymentId" y, solo si coincide,
// llama a JoinQueue una vez. Cualquier duda (firma, secreto ausente, contexto cancelado)
// se resuelve sin tocar la cola.
func (g *Gate) VerifyAndJoin(ctx context.Context, userID int64, in dto.VerifyPaymentRequest) (*dto.QueueSlotResponse, error) {
	orderID := strings.TrimSpace(in.OrderID)
	paymentID := strings.TrimSpace(in.PaymentID)

	if g.cfg.KeySecret == "" {
		g.metrics.PaymentVerification(ResultNotConfigured)
		return nil, domain.ErrPaymentNotConfigured
	}
	if orderID == "" || paymentID == "" || strings.TrimSpace(in.Signature) == "" {
		g.metrics.PaymentVerification(ResultInvalidRequest)
		return nil, domain.NewValidationError("payment", "order_id, payment_id y signature son requeridos")
	}
	if !VerifySignature(g.cfg.KeySecret, orderID, paymentID, in.Signature) {
		g.metrics.PaymentVerification(ResultInvalidSignature)
		g.log.Warn().Str("order_id", orderID).Str("payment_id", paymentID).Int64("user_id", userID).Msg("firma de pago inválida")
		return nil, domain.ErrInvalidSignature
	}
	if err := ctx.Err(); err != nil {
		g.metrics.PaymentVerification(ResultCancelled)
		return nil, err
	}

	slot, err := g.joiner.JoinQueue(ctx, in.BarberID, userID, in.Service)
	if err != nil {
		g.metrics.PaymentVerification(ResultJoinFailed)
		g.log.Error().Err(err).
			Str("event", "payment_reconciliation").
			Str("order_id", orderID).
			Str("payment_id", paymentID).
			Int64("barber_id", in.BarberID).
			Int64("user_id", userID).
			Str("service", in.Service).
			Msg("pago verificado pero falló el ingreso a la cola")
		if perr := g.events.Publish(ctx, ports.QueueEvent{
			Type:       ports.EventPaymentReconciliation,
			BarberID:   in.BarberID,
			UserID:     userID,
			Service:    in.Service,
			OrderID:    orderID,
			PaymentID:  paymentID,
			Reason:     err.Error(),
			OccurredAt: time.Now().UTC(),
		}); perr != nil {
			g.log.Warn().Err(perr).Str("order_id", orderID).Msg("no se pudo publicar el evento de conciliación")
		}
		return nil, &JoinAfterCaptureError{OrderID: orderID, PaymentID: paymentID, BarberID: in.BarberID, UserID: userID, Err: err}
	}

	g.metrics.PaymentVerification(ResultVerified)
	g.log.Info().Str("order_id", orderID).Str("payment_id", paymentID).Int64("barber_id", in.BarberID).Int64("user_id", userID).
		Msg("pago verificado, usuario en cola")
	return slot, nil
}
