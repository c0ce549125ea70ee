package http

import (
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/nextcut-api/internal/application/dto"
	"github.com/jhoicas/nextcut-api/internal/application/payment"
	"github.com/jhoicas/nextcut-api/internal/domain"
	"github.com/jhoicas/nextcut-api/pkg/logger"
)

// maxPaise mayor monto representable en la unidad mínima sin desbordar int64.
var maxPaise = decimal.NewFromInt(math.MaxInt64)

// PaymentHandler creación de órdenes y verificación de pagos online.
type PaymentHandler struct {
	gate *payment.Gate
	log  *logger.Logger
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(gate *payment.Gate, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{gate: gate, log: log}
}

// CreateOrder godoc
// @Summary      Crear orden de pago
// @Description  amount en rupias; se envía al procesador en paise.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateOrderRequest  true  "amount"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/payments/orders [post]
func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	paise := in.Amount.Shift(2).Round(0)
	if !paise.IsPositive() {
		return respondError(c, h.log, domain.NewValidationError("amount", "el monto debe ser de al menos 0.01"))
	}
	if paise.GreaterThan(maxPaise) {
		return respondError(c, h.log, domain.NewValidationError("amount", "el monto excede el máximo permitido"))
	}
	out, err := h.gate.CreateOrder(c.UserContext(), paise.IntPart())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Verify godoc
// @Summary      Verificar pago e ingresar a la cola
// @Description  Valida la firma HMAC del pago; solo si es válida ingresa al usuario en la cola.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.VerifyPaymentRequest  true  "order_id, payment_id, signature, barber_id, service"
// @Success      201   {object}  dto.QueueSlotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/payments/verify [post]
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	var in dto.VerifyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.gate.VerifyAndJoin(c.UserContext(), GetSubjectID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
