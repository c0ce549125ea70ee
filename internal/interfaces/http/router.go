package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/nextcut-api/internal/application/auth"
	"github.com/jhoicas/nextcut-api/internal/application/payment"
	"github.com/jhoicas/nextcut-api/internal/application/ports"
	"github.com/jhoicas/nextcut-api/internal/application/queue"
	"github.com/jhoicas/nextcut-api/internal/domain/entity"
	"github.com/jhoicas/nextcut-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	QueueManager   *queue.Manager
	NearbyUC       *queue.NearbyUseCase
	WalkInUC       *queue.WalkInUseCase
	StatsUC        *queue.StatsUseCase
	CatalogUC      *queue.CatalogUseCase
	PaymentGate    *payment.Gate
	JWTSecret      string
	JWTIssuer      string
	Limiter        ports.RateLimiter // nil = sin límite
	Pinger         Pinger
	MetricsHandler http.Handler // nil = sin /metrics
	Logger         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}

	app.Get("/health", NewHealthHandler(deps.Pinger, log).Health)
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")
	api.Get("/services", NewCatalogHandler(deps.CatalogUC).List)

	authHandler := NewAuthHandler(deps.AuthUC, log.Named("auth"))
	protect := AuthMiddleware(deps.JWTSecret, deps.JWTIssuer)
	limit := func(scope string) fiber.Handler { return RateLimit(scope, deps.Limiter, log) }

	// Clientes
	users := api.Group("/users")
	users.Post("/signup", authHandler.SignupUser)
	users.Post("/signin", authHandler.SigninUser)

	userQueue := NewUserQueueHandler(deps.QueueManager, deps.NearbyUC, log.Named("queue"))
	asUser := users.Group("/", protect, RequireRole(entity.RoleUser))
	asUser.Post("/barbers/nearby", userQueue.Nearby)
	asUser.Post("/queue/join", limit("join"), userQueue.Join)
	asUser.Post("/queue/leave", userQueue.Leave)
	asUser.Get("/queue/status", userQueue.Status)

	// Barberos
	barbers := api.Group("/barbers")
	barbers.Post("/signup", authHandler.SignupBarber)
	barbers.Post("/signin", authHandler.SigninBarber)

	barberQueue := NewBarberQueueHandler(deps.QueueManager, deps.WalkInUC, deps.StatsUC, log.Named("barber"))
	asBarber := barbers.Group("/", protect, RequireRole(entity.RoleBarber))
	asBarber.Get("/queue", barberQueue.Queue)
	asBarber.Post("/queue/remove", barberQueue.Remove)
	asBarber.Post("/queue/walk-in", limit("walk_in"), barberQueue.WalkIn)
	asBarber.Get("/stats", barberQueue.Stats)

	// Pagos
	if deps.PaymentGate != nil {
		paymentHandler := NewPaymentHandler(deps.PaymentGate, log.Named("payment"))
		payments := api.Group("/payments", protect, RequireRole(entity.RoleUser))
		payments.Post("/orders", limit("orders"), paymentHandler.CreateOrder)
		payments.Post("/verify", limit("verify"), paymentHandler.Verify)
	}
}
