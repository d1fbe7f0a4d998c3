package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/adapter/email"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/adapter/instrumented"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/adapter/memory"
	mongoadapter "github.com/Abdurahmanit/GroupProject/sharaya-service/internal/adapter/mongo"
	natsadapter "github.com/Abdurahmanit/GroupProject/sharaya-service/internal/adapter/nats"
	redisadapter "github.com/Abdurahmanit/GroupProject/sharaya-service/internal/adapter/redis"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/catalog"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/tracer"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/port/rest"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/repository"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/service"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/state"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const metricsNamespace = "sharaya"

type App struct {
	cfg            *config.Config
	log            logger.Logger
	server         *rest.Server
	metricsServer  *metrics.Server
	tracerProvider *sdktrace.TracerProvider
	redisStore     *redisadapter.KVStore
	mongoStore     *mongoadapter.KVStore
	publisher      *natsadapter.Publisher
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	appLogger, err := logger.New(logger.Options{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Info("Logger initialized")
	appLogger.Infof("Configuration loaded: Env=%s, HTTP Port: %s, Storage: %s", cfg.Env, cfg.HTTPServer.Port, cfg.Storage.Driver)

	application := &App{cfg: cfg, log: appLogger}

	tp, err := tracer.InitTracer(ctx, cfg.Tracing.ServiceName, cfg.Tracing.OTLPEndpoint, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}
	application.tracerProvider = tp

	metricsManager := metrics.NewMetricsManager(metricsNamespace)
	application.metricsServer = metrics.NewServer(cfg.Metrics.Port, metricsManager, appLogger)

	kv, err := application.initStorage(ctx, metricsManager)
	if err != nil {
		application.closeResources(ctx)
		return nil, err
	}

	storeOpts := []state.StoreOption{state.WithMetrics(metricsManager)}
	var orderPublisher service.OrderEventPublisher
	if cfg.NATS.URL != "" {
		appLogger.Info("Initializing NATS publisher...")
		publisher, err := natsadapter.Connect(cfg.NATS, appLogger)
		if err != nil {
			application.closeResources(ctx)
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		application.publisher = publisher
		storeOpts = append(storeOpts, state.WithPublisher(publisher))
		orderPublisher = publisher
		appLogger.Info("NATS publisher initialized")
	} else {
		appLogger.Info("NATS URL not set, change events are disabled")
	}

	var mailer service.EmailSender
	if cfg.SMTP.Enabled() {
		sender, err := email.NewSMTPSender(cfg.SMTP, appLogger)
		if err != nil {
			application.closeResources(ctx)
			return nil, fmt.Errorf("failed to initialize SMTP sender: %w", err)
		}
		mailer = sender
		appLogger.Info("SMTP sender initialized")
	}

	deliveryFee, err := entity.ParsePrice(cfg.Checkout.DeliveryFee)
	if err != nil {
		application.closeResources(ctx)
		return nil, fmt.Errorf("invalid checkout delivery fee %q: %w", cfg.Checkout.DeliveryFee, err)
	}
	if cfg.Checkout.Currency != "" {
		deliveryFee.Currency = strings.ToUpper(cfg.Checkout.Currency)
	}

	cat, err := catalog.LoadDefault()
	if err != nil {
		application.closeResources(ctx)
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	appLogger.Infof("Catalog loaded: %d products, %d posts", len(cat.Products()), len(cat.Posts()))

	cols := state.NewCollections(state.NewStore(kv, appLogger, storeOpts...))

	services := rest.Services{
		Cart:        service.NewCartService(cols, cat, appLogger, service.CartServiceConfig{DeliveryFee: deliveryFee}),
		Favorites:   service.NewFavoritesService(cols, cat, appLogger),
		Collections: service.NewCollectionService(cols, cat, appLogger),
		Chat:        service.NewChatService(cols, cat, appLogger),
		Reviews:     service.NewReviewService(cols, cat, appLogger),
		Account:     service.NewAccountService(cols, appLogger, 0),
		Checkout: service.NewCheckoutService(cols, appLogger,
			service.CheckoutServiceConfig{DeliveryFee: deliveryFee}, orderPublisher, mailer, metricsManager),
		Search: service.NewSearchService(cat, appLogger),
		Feed:   service.NewFeedService(cols, cat, appLogger),
		Seed:   service.NewSeedService(cols, cat, appLogger),
	}

	if cfg.Seed.Demo {
		if _, err := services.Seed.Seed(ctx); err != nil {
			appLogger.Warnf("Demo seed failed: %v", err)
		}
	}

	handler := rest.NewRouter(rest.NewHandler(services, appLogger), appLogger, metricsManager)
	application.server = rest.NewServer(appLogger, cfg.HTTPServer, handler)
	appLogger.Info("HTTP server instance created")

	return application, nil
}

// initStorage picks the KeyValueStore backend and wraps it with tracing and metrics.
func (a *App) initStorage(ctx context.Context, m *metrics.MetricsManager) (repository.KeyValueStore, error) {
	var kv repository.KeyValueStore

	switch a.cfg.Storage.Driver {
	case config.StorageDriverMemory:
		a.log.Warn("Using in-memory storage, state is lost on restart")
		kv = memory.NewKVStore()

	case config.StorageDriverRedis:
		a.log.Infof("Opening Redis state store at %s", a.cfg.Redis.Addr)
		store, err := redisadapter.Open(ctx, a.cfg.Redis, a.cfg.Storage.KeyPrefix)
		if err != nil {
			a.log.Errorf("Failed to open Redis state store: %v", err)
			return nil, fmt.Errorf("failed to open Redis state store: %w", err)
		}
		a.redisStore = store
		kv = store

	case config.StorageDriverMongo:
		a.log.Infof("Opening MongoDB state store %s.%s", a.cfg.MongoDB.Database, a.cfg.MongoDB.Collection)
		store, err := mongoadapter.Open(ctx, a.cfg.MongoDB)
		if err != nil {
			a.log.Errorf("Failed to open MongoDB state store: %v", err)
			return nil, fmt.Errorf("failed to open MongoDB state store: %w", err)
		}
		a.mongoStore = store
		kv = store

	default:
		return nil, fmt.Errorf("unknown storage driver %q", a.cfg.Storage.Driver)
	}

	return instrumented.NewKVStore(kv, a.cfg.Storage.Driver, m), nil
}

func (a *App) Run() {
	a.log.Info("Starting application components...")

	go func() {
		if err := a.server.Start(); err != nil {
			a.log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()
	a.log.Info("HTTP server started in a goroutine")

	go func() {
		if err := a.metricsServer.Start(); err != nil {
			a.log.Errorf("Metrics server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Infof("Received shutdown signal: %v. Shutting down application...", receivedSignal)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful+5*time.Second)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server graceful shutdown: %v", err)
	} else {
		a.log.Info("HTTP server stopped successfully")
	}
	if err := a.metricsServer.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error stopping metrics server: %v", err)
	}

	a.closeResources(shutdownCtx)
	a.log.Info("Application shut down successfully")
	_ = a.log.Sync()
}

func (a *App) closeResources(ctx context.Context) {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Errorf("Error draining NATS publisher: %v", err)
		}
	}
	if a.mongoStore != nil {
		if err := a.mongoStore.Close(ctx); err != nil {
			a.log.Errorf("Error closing MongoDB state store: %v", err)
		}
	}
	if a.redisStore != nil {
		if err := a.redisStore.Close(); err != nil {
			a.log.Errorf("Error closing Redis state store: %v", err)
		}
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			a.log.Errorf("Error shutting down tracer provider: %v", err)
		}
	}
}
