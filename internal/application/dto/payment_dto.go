package dto

import "github.com/shopspring/decimal"

// CreateOrderRequest monto en rupias; se convierte a paise antes de crear la orden.
type CreateOrderRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// OrderResponse orden creada en el procesador de pagos. Amount en la unidad mínima (paise).
type OrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
	Status   string `json:"status,omitempty"`
}

// VerifyPaymentRequest confirmación del cliente tras pagar: orden, pago, firma y la cola elegida.
type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
	BarberID  int64  `json:"barber_id" validate:"required"`
	Service   string `json:"service" validate:"required"`
}
