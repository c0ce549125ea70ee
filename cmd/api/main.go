package main

import (
	"context"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	_ "github.com/jhoicas/nextcut-api/docs"
	"github.com/jhoicas/nextcut-api/internal/application/auth"
	"github.com/jhoicas/nextcut-api/internal/application/payment"
	"github.com/jhoicas/nextcut-api/internal/application/ports"
	"github.com/jhoicas/nextcut-api/internal/application/queue"
	"github.com/jhoicas/nextcut-api/internal/domain/catalog"
	"github.com/jhoicas/nextcut-api/internal/domain/repository"
	"github.com/jhoicas/nextcut-api/internal/infrastructure/kafka"
	"github.com/jhoicas/nextcut-api/internal/infrastructure/memory"
	"github.com/jhoicas/nextcut-api/internal/infrastructure/metrics"
	"github.com/jhoicas/nextcut-api/internal/infrastructure/postgres"
	"github.com/jhoicas/nextcut-api/internal/infrastructure/ratelimit"
	"github.com/jhoicas/nextcut-api/internal/infrastructure/razorpay"
	httpRouter "github.com/jhoicas/nextcut-api/internal/interfaces/http"
	"github.com/jhoicas/nextcut-api/pkg/config"
	"github.com/jhoicas/nextcut-api/pkg/logger"
)

// storage agrupa los repositorios del driver elegido.
type storage struct {
	barbers repository.BarberRepository
	users   repository.UserRepository
	queue   repository.QueueRepository
	history repository.ServiceHistoryRepository
	tx      queue.TxRunner
	pinger  httpRouter.Pinger
	close   func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	prom := metrics.NewPrometheus()

	var events ports.QueueEventPublisher = ports.NopPublisher{}
	var publisher *kafka.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err = kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix, log.Named("kafka"))
		if err != nil {
			log.Fatal().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("conexión a Kafka")
		}
		events = publisher
	}

	limiter := newLimiter(ctx, cfg, log)

	manager := queue.NewManager(queue.ManagerDeps{
		TxRunner: store.tx,
		Barbers:  store.barbers,
		Users:    store.users,
		Queue:    store.queue,
		Catalog:  catalog.Default(),
		Events:   events,
		Metrics:  prom,
		Logger:   log.Named("queue"),
	}, queue.Config{
		AvgServiceMinutes: cfg.Queue.AvgServiceMinutes,
		StrictServices:    cfg.Queue.StrictServices,
		JoinRetries:       cfg.Queue.JoinRetries,
	})

	var orders payment.OrderCreator
	if cfg.Payment.Configured() {
		orders = razorpay.NewClient(cfg.Payment.BaseURL, cfg.Payment.KeyID, cfg.Payment.KeySecret)
	} else {
		log.Warn().Msg("RAZORPAY_KEY_ID/RAZORPAY_KEY_SECRET no definidos: pagos online deshabilitados")
	}
	gate := payment.NewGate(payment.GateDeps{
		Orders:  orders,
		Joiner:  manager,
		Events:  events,
		Metrics: prom,
		Logger:  log.Named("payment"),
	}, payment.Config{
		KeySecret: cfg.Payment.KeySecret,
		Currency:  cfg.Payment.Currency,
		MaxAmount: cfg.Payment.MaxAmount * 100,
	})

	authUC := auth.NewAuthUseCase(store.users, store.barbers, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.ReplaceAll(cfg.HTTP.CORSOrigins, " ", ""),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "NextCut API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		QueueManager:   manager,
		NearbyUC:       queue.NewNearbyUseCase(store.barbers, store.queue, queue.NearbyConfig{DefaultRadiusKm: cfg.Queue.DefaultRadiusKm, MaxRadiusKm: cfg.Queue.MaxRadiusKm, AvgServiceMinutes: cfg.Queue.AvgServiceMinutes}),
		WalkInUC:       queue.NewWalkInUseCase(store.users, manager),
		StatsUC:        queue.NewStatsUseCase(store.barbers, store.users, store.queue, store.history, cfg.Queue.AvgServiceMinutes, time.Now),
		CatalogUC:      queue.NewCatalogUseCase(catalog.Default()),
		PaymentGate:    gate,
		JWTSecret:      cfg.JWT.Secret,
		JWTIssuer:      cfg.JWT.Issuer,
		Limiter:        limiter,
		Pinger:         store.pinger,
		MetricsHandler: prom.Handler(),
		Logger:         log,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("apagado del servidor")
		}
		if publisher != nil {
			if err := publisher.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar productor Kafka")
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("servidor HTTP finalizado")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.StorageDriver == "memory" {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			barbers: s.Barbers(),
			users:   s.Users(),
			queue:   s.Queue(),
			history: s.History(),
			tx:      s,
			pinger:  s,
			close:   func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool, log.Named("migrate")); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &storage{
		barbers: postgres.NewBarberRepository(pool),
		users:   postgres.NewUserRepository(pool),
		queue:   postgres.NewQueueRepository(pool),
		history: postgres.NewServiceHistoryRepository(pool),
		tx:      postgres.NewTxRunner(pool),
		pinger:  pool,
		close:   pool.Close,
	}, nil
}

// newLimiter usa Redis si está configurado y responde; si no, un limitador local por proceso.
func newLimiter(ctx context.Context, cfg *config.Config, log *logger.Logger) ports.RateLimiter {
	if cfg.RateLimit.PerMinute <= 0 {
		return nil
	}
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		err := client.Ping(pingCtx).Err()
		if err == nil {
			log.Info().Str("addr", cfg.Redis.Addr).Msg("rate limiting con Redis")
			return ratelimit.NewRedisLimiter(client, cfg.RateLimit.PerMinute, time.Minute)
		}
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, rate limiting local")
		_ = client.Close()
	}
	return ratelimit.NewLocalLimiter(cfg.RateLimit.PerMinute, time.Minute)
}
