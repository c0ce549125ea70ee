// Package razorpay es el adaptador HTTP del procesador de pagos (solo creación de órdenes).
// La verificación de firmas es local y vive en la pasarela de pagos.
package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/nextcut-api/internal/application/payment"
)

// Verificar en tiempo de compilación que Client implementa OrderCreator.
var _ payment.OrderCreator = (*Client)(nil)

const (
	DefaultBaseURL = "https://api.razorpay.com/v1"
	requestTimeout = 15 * time.Second
	maxBodyBytes   = 64 * 1024
)

// Client llama a la API REST de Razorpay con autenticación básica (key id + secret).
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

// NewClient construye el adaptador. baseURL vacío usa la API pública.
func NewClient(baseURL, keyID, keySecret string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		keyID:      keyID,
		keySecret:  keySecret,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type orderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type errorResponse struct {
	Error *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder crea una orden con captura automática.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*payment.Order, error) {
	if c.keyID == "" || c.keySecret == "" {
		return nil, fmt.Errorf("razorpay: credenciales no configuradas")
	}
	body, err := json.Marshal(orderRequest{Amount: amount, Currency: currency, Receipt: receipt, PaymentCapture: 1})
	if err != nil {
		return nil, fmt.Errorf("razorpay: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("razorpay: crear HTTP request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("razorpay: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("razorpay: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("razorpay: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var er errorResponse
		if jsonErr := json.Unmarshal(raw, &er); jsonErr == nil && er.Error != nil {
			return nil, fmt.Errorf("razorpay: error %s: %s", er.Error.Code, er.Error.Description)
		}
		return nil, fmt.Errorf("razorpay: HTTP %d", resp.StatusCode)
	}

	var out orderResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("razorpay: parsear respuesta: %w", err)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("razorpay: respuesta sin id de orden")
	}
	return &payment.Order{
		ID:       out.ID,
		Amount:   out.Amount,
		Currency: out.Currency,
		Receipt:  out.Receipt,
		Status:   out.Status,
	}, nil
}
