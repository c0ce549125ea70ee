package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nextcut-api/internal/application/auth"
	"github.com/jhoicas/nextcut-api/internal/application/dto"
	"github.com/jhoicas/nextcut-api/internal/application/payment"
	"github.com/jhoicas/nextcut-api/internal/application/ports"
	"github.com/jhoicas/nextcut-api/internal/application/queue"
	"github.com/jhoicas/nextcut-api/internal/domain/catalog"
	"github.com/jhoicas/nextcut-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/nextcut-api/internal/interfaces/http"
)

const paymentSecret = "rzp-test-secret"

type fakeOrders struct {
	lastAmount int64
}

func (f *fakeOrders) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*payment.Order, error) {
	f.lastAmount = amount
	return &payment.Order{ID: "order_test", Amount: amount, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

// denyAfter deja pasar n peticiones por clave.
type denyAfter struct {
	n    int
	seen map[string]int
}

func (d *denyAfter) Allow(_ context.Context, key string) (bool, error) {
	if d.seen == nil {
		d.seen = map[string]int{}
	}
	d.seen[key]++
	return d.seen[key] <= d.n, nil
}

type server struct {
	app    *fiber.App
	orders *fakeOrders
}

func newServer(t *testing.T, limiter ports.RateLimiter) *server {
	t.Helper()
	store := memory.NewStore()
	manager := queue.NewManager(queue.ManagerDeps{
		TxRunner: store,
		Barbers:  store.Barbers(),
		Users:    store.Users(),
		Queue:    store.Queue(),
	}, queue.Config{AvgServiceMinutes: 15})
	orders := &fakeOrders{}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(store.Users(), store.Barbers(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		QueueManager: manager,
		NearbyUC:     queue.NewNearbyUseCase(store.Barbers(), store.Queue(), queue.NearbyConfig{DefaultRadiusKm: 10, MaxRadiusKm: 100, AvgServiceMinutes: 15}),
		WalkInUC:     queue.NewWalkInUseCase(store.Users(), manager),
		StatsUC:      queue.NewStatsUseCase(store.Barbers(), store.Users(), store.Queue(), store.History(), 15, time.Now),
		CatalogUC:    queue.NewCatalogUseCase(catalog.Default()),
		PaymentGate:  payment.NewGate(payment.GateDeps{Orders: orders, Joiner: manager}, payment.Config{KeySecret: paymentSecret, MaxAmount: 10000000}),
		JWTSecret:    testJWTSecret,
		JWTIssuer:    testIssuer,
		Limiter:      limiter,
		Pinger:       store,
	})
	return &server{app: app, orders: orders}
}

// call envía body como JSON y decodifica la respuesta en out (si no es nil).
func (s *server) call(t *testing.T, method, path, token string, body, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (s *server) signupBarber(t *testing.T, username string, lat, long float64) dto.BarberAuthResponse {
	t.Helper()
	var out dto.BarberAuthResponse
	code := s.call(t, http.MethodPost, "/api/barbers/signup", "", map[string]interface{}{
		"name": "Barbería " + username, "username": username, "password": "secreto123", "lat": lat, "long": long,
	}, &out)
	require.Equal(t, http.StatusCreated, code)
	return out
}

func (s *server) signupUser(t *testing.T, name, number string) dto.UserAuthResponse {
	t.Helper()
	var out dto.UserAuthResponse
	code := s.call(t, http.MethodPost, "/api/users/signup", "", map[string]string{"name": name, "phone_number": number}, &out)
	require.Equal(t, http.StatusCreated, code)
	return out
}

func TestRouter_FlujoCompletoDeCola(t *testing.T) {
	s := newServer(t, nil)
	barber := s.signupBarber(t, "centro", 19.0760, 72.8777)
	ana := s.signupUser(t, "Ana", "9876543210")
	luis := s.signupUser(t, "Luis", "9876543211")

	var slot dto.QueueSlotResponse
	require.Equal(t, http.StatusCreated, s.call(t, http.MethodPost, "/api/users/queue/join", ana.Token,
		dto.JoinQueueRequest{BarberID: barber.Barber.ID, Service: "Corte"}, &slot))
	assert.Equal(t, ana.User.ID, slot.UserID)
	require.Equal(t, http.StatusCreated, s.call(t, http.MethodPost, "/api/users/queue/join", luis.Token,
		dto.JoinQueueRequest{BarberID: barber.Barber.ID, Service: "Barba"}, nil))

	var status dto.QueueStatusResponse
	require.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/api/users/queue/status", luis.Token, nil, &status))
	require.True(t, status.InQueue)
	assert.Equal(t, 2, *status.QueuePosition)
	assert.Equal(t, 15, *status.EstimatedWaitTime)

	var list dto.BarberQueueResponse
	require.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/api/barbers/queue", barber.Token, nil, &list))
	require.Equal(t, 2, list.QueueLength)
	assert.Equal(t, ana.User.ID, list.Queue[0].User.ID)

	var removed dto.RemoveFromQueueResponse
	require.Equal(t, http.StatusOK, s.call(t, http.MethodPost, "/api/barbers/queue/remove", barber.Token,
		dto.RemoveFromQueueRequest{UserID: ana.User.ID}, &removed))
	assert.True(t, removed.Removed)
	require.NotNil(t, removed.Served)
	assert.Equal(t, "Corte", removed.Served.Service)

	// Repetir la baja es benigno.
	removed = dto.RemoveFromQueueResponse{}
	require.Equal(t, http.StatusOK, s.call(t, http.MethodPost, "/api/barbers/queue/remove", barber.Token,
		dto.RemoveFromQueueRequest{UserID: ana.User.ID}, &removed))
	assert.False(t, removed.Removed)

	var leave dto.LeaveQueueResponse
	require.Equal(t, http.StatusOK, s.call(t, http.MethodPost, "/api/users/queue/leave", ana.Token, nil, &leave))
	assert.False(t, leave.Left)

	var stats dto.BarberStatsResponse
	require.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/api/barbers/stats", barber.Token, nil, &stats))
}

func TestRouter_RetirarClienteDeOtroBarbero_Retorna403(t *testing.T) {
	s := newServer(t, nil)
	owner := s.signupBarber(t, "norte", 19.07, 72.87)
	otro := s.signupBarber(t, "sur", 19.08, 72.88)
	ana := s.signupUser(t, "Ana", "9876543210")
	require.Equal(t, http.StatusCreated, s.call(t, http.MethodPost, "/api/users/queue/join", ana.Token,
		dto.JoinQueueRequest{BarberID: owner.Barber.ID, Service: "Corte"}, nil))

	var errBody dto.ErrorResponse
	code := s.call(t, http.MethodPost, "/api/barbers/queue/remove", otro.Token, dto.RemoveFromQueueRequest{UserID: ana.User.ID}, &errBody)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", errBody.Code)

	var status dto.QueueStatusResponse
	s.call(t, http.MethodGet, "/api/users/queue/status", ana.Token, nil, &status)
	assert.True(t, status.InQueue)
}

func TestRouter_RolesSeparados(t *testing.T) {
	s := newServer(t, nil)
	barber := s.signupBarber(t, "centro", 19.07, 72.87)
	ana := s.signupUser(t, "Ana", "9876543210")

	assert.Equal(t, http.StatusForbidden, s.call(t, http.MethodGet, "/api/barbers/queue", ana.Token, nil, nil))
	assert.Equal(t, http.StatusForbidden, s.call(t, http.MethodPost, "/api/users/queue/join", barber.Token,
		dto.JoinQueueRequest{BarberID: barber.Barber.ID, Service: "Corte"}, nil))
	assert.Equal(t, http.StatusUnauthorized, s.call(t, http.MethodGet, "/api/users/queue/status", "", nil, nil))
}

func TestRouter_JoinConBarberoInexistente_Retorna404(t *testing.T) {
	s := newServer(t, nil)
	ana := s.signupUser(t, "Ana", "9876543210")

	var errBody dto.ErrorResponse
	code := s.call(t, http.MethodPost, "/api/users/queue/join", ana.Token, dto.JoinQueueRequest{BarberID: 999, Service: "Corte"}, &errBody)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "BARBER_NOT_FOUND", errBody.Code)
}

func TestRouter_SigninConTelefonoNoRegistrado_Retorna401(t *testing.T) {
	s := newServer(t, nil)
	code := s.call(t, http.MethodPost, "/api/users/signin", "", map[string]string{"phone_number": "9000000000"}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_SignupTelefonoDuplicado_Retorna409(t *testing.T) {
	s := newServer(t, nil)
	s.signupUser(t, "Ana", "9876543210")
	code := s.call(t, http.MethodPost, "/api/users/signup", "", map[string]string{"name": "Otra", "phone_number": "+91 98765 43210"}, nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestRouter_BarberosCercanos(t *testing.T) {
	s := newServer(t, nil)
	s.signupBarber(t, "cerca", 19.0760, 72.8777)
	s.signupBarber(t, "lejos", 28.6139, 77.2090)
	ana := s.signupUser(t, "Ana", "9876543210")

	var out dto.NearbyBarbersResponse
	require.Equal(t, http.StatusOK, s.call(t, http.MethodPost, "/api/users/barbers/nearby", ana.Token,
		map[string]float64{"lat": 19.0761, "long": 72.8778, "radius": 5}, &out))
	require.Len(t, out.Barbers, 1)
	assert.Equal(t, "Barbería cerca", out.Barbers[0].Name)

	assert.Equal(t, http.StatusBadRequest, s.call(t, http.MethodPost, "/api/users/barbers/nearby", ana.Token,
		map[string]float64{"lat": 19.0761}, nil))
}

func TestRouter_WalkIn(t *testing.T) {
	s := newServer(t, nil)
	barber := s.signupBarber(t, "centro", 19.07, 72.87)

	var slot dto.QueueSlotResponse
	require.Equal(t, http.StatusCreated, s.call(t, http.MethodPost, "/api/barbers/queue/walk-in", barber.Token,
		dto.WalkInRequest{Name: "Pedro", PhoneNumber: "9123456780", Service: "Corte"}, &slot))
	assert.Equal(t, barber.Barber.ID, slot.BarberID)
	assert.Equal(t, "9123456780", slot.User.PhoneNumber)
}

func TestRouter_PagoVerificadoIngresaALaCola(t *testing.T) {
	s := newServer(t, nil)
	barber := s.signupBarber(t, "centro", 19.07, 72.87)
	ana := s.signupUser(t, "Ana", "9876543210")

	var order dto.OrderResponse
	require.Equal(t, http.StatusCreated, s.call(t, http.MethodPost, "/api/payments/orders", ana.Token,
		map[string]string{"amount": "150.50"}, &order))
	assert.Equal(t, int64(15050), s.orders.lastAmount)
	assert.Equal(t, "INR", order.Currency)

	bad := dto.VerifyPaymentRequest{OrderID: order.ID, PaymentID: "pay_1", Signature: "00", BarberID: barber.Barber.ID, Service: "Corte"}
	var errBody dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, s.call(t, http.MethodPost, "/api/payments/verify", ana.Token, bad, &errBody))
	assert.Equal(t, "INVALID_SIGNATURE", errBody.Code)

	var status dto.QueueStatusResponse
	s.call(t, http.MethodGet, "/api/users/queue/status", ana.Token, nil, &status)
	assert.False(t, status.InQueue, "una firma inválida no debe ingresar al usuario")

	good := bad
	good.Signature = payment.Sign(paymentSecret, order.ID, "pay_1")
	var slot dto.QueueSlotResponse
	require.Equal(t, http.StatusCreated, s.call(t, http.MethodPost, "/api/payments/verify", ana.Token, good, &slot))
	assert.Equal(t, ana.User.ID, slot.UserID)
}

func TestRouter_OrdenConMontoNoPositivo_Retorna400(t *testing.T) {
	s := newServer(t, nil)
	ana := s.signupUser(t, "Ana", "9876543210")
	assert.Equal(t, http.StatusBadRequest, s.call(t, http.MethodPost, "/api/payments/orders", ana.Token, map[string]int{"amount": 0}, nil))
}

func TestRouter_OrdenConMontoFueraDeRango_Retorna400(t *testing.T) {
	s := newServer(t, nil)
	ana := s.signupUser(t, "Ana", "9876543210")

	for _, amount := range []json.Number{
		"184467440737095516.17", // desborda int64 en paise
		"100000000000000000000",
		"200000", // sobre el máximo de la pasarela
		"0.001",  // redondea a 0 paise
		"-5",
	} {
		var errBody dto.ErrorResponse
		code := s.call(t, http.MethodPost, "/api/payments/orders", ana.Token, map[string]json.Number{"amount": amount}, &errBody)
		assert.Equal(t, http.StatusBadRequest, code, string(amount))
		assert.Equal(t, "VALIDATION", errBody.Code, string(amount))
	}
	assert.Zero(t, s.orders.lastAmount, "ningún monto inválido debe llegar al procesador")
}

func TestRouter_RateLimitEnJoin(t *testing.T) {
	s := newServer(t, &denyAfter{n: 1})
	barber := s.signupBarber(t, "centro", 19.07, 72.87)
	ana := s.signupUser(t, "Ana", "9876543210")
	req := dto.JoinQueueRequest{BarberID: barber.Barber.ID, Service: "Corte"}

	assert.Equal(t, http.StatusCreated, s.call(t, http.MethodPost, "/api/users/queue/join", ana.Token, req, nil))
	var errBody dto.ErrorResponse
	assert.Equal(t, http.StatusTooManyRequests, s.call(t, http.MethodPost, "/api/users/queue/join", ana.Token, req, &errBody))
	assert.Equal(t, "RATE_LIMITED", errBody.Code)
}

func TestRouter_CatalogoYHealth(t *testing.T) {
	s := newServer(t, nil)
	var services []dto.ServiceResponse
	require.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/api/services", "", nil, &services))
	assert.NotEmpty(t, services)

	var health map[string]string
	require.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/health", "", nil, &health))
	assert.Equal(t, "ok", health["status"])
}
