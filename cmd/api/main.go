package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sangkips/developerstore-sales/internal/application/event"
	"github.com/sangkips/developerstore-sales/internal/application/service"
	"github.com/sangkips/developerstore-sales/internal/config"
	domainRepo "github.com/sangkips/developerstore-sales/internal/domain/repository"
	"github.com/sangkips/developerstore-sales/internal/infrastructure/database"
	"github.com/sangkips/developerstore-sales/internal/infrastructure/messaging"
	"github.com/sangkips/developerstore-sales/internal/infrastructure/mongodb"
	"github.com/sangkips/developerstore-sales/internal/infrastructure/repository"
	"github.com/sangkips/developerstore-sales/internal/presentation/http/handler"
	"github.com/sangkips/developerstore-sales/internal/presentation/http/routes"
	"github.com/sangkips/developerstore-sales/pkg/logger"
	"github.com/sangkips/developerstore-sales/pkg/utils"
	"gorm.io/gorm"
)

const (
	shutdownTimeout         = 15 * time.Second
	idempotencySweepEvery   = time.Hour
	readHeaderTimeoutServer = 10 * time.Second
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, log)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db, log); err != nil {
			log.Fatal("failed to run migrations", "error", err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Event handlers are registered once, in a fixed order
	sink, closeSink := auditSink(ctx, cfg, db, log)
	defer closeSink()

	handlers := []event.Handler{
		event.NewAuditHandler(sink, cfg.Audit.Timeout),
		event.NewMetricsHandler(registry),
	}

	if cfg.Redis.Enabled() {
		rdb, err := messaging.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn("redis event broadcast disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			defer rdb.Close()
			handlers = append(handlers, event.NewRedisHandler(rdb, cfg.Redis.EventChannel))
			log.Info("redis event broadcast enabled", "channel", cfg.Redis.EventChannel)
		}
	}

	if cfg.Kafka.Enabled() {
		writer := messaging.NewKafkaWriter(&cfg.Kafka)
		defer func() {
			if err := writer.Close(); err != nil {
				log.Warn("failed to close kafka writer", "error", err)
			}
		}()
		handlers = append(handlers, event.NewKafkaHandler(writer))
		log.Info("kafka event forwarding enabled", "topic", cfg.Kafka.EventTopic)
	}

	publisher := event.NewPublisher(log, handlers...)

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	uowFactory := repository.NewUnitOfWorkFactory(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	saleService := service.NewSaleService(uowFactory, publisher, log)
	checkoutService := service.NewCheckoutService(uowFactory, publisher, log, cfg.Sales.CheckoutBranch)

	router := routes.Setup(ctx, &routes.Handlers{
		Sale:     handler.NewSaleHandler(saleService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
	}, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Log:             log,
		Registry:        registry,
	})

	go sweepIdempotencyKeys(ctx, idempotencyRepo, log)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeoutServer,
	}

	go func() {
		log.Info("starting server", "service", cfg.App.Name, "port", port, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
}

// auditSink picks the event log store. Mongo falls back to the postgres
// table when it cannot be reached at startup.
func auditSink(ctx context.Context, cfg *config.Config, db *gorm.DB, log *logger.Logger) (domainRepo.AuditSink, func()) {
	if cfg.Audit.Backend != config.AuditBackendMongo {
		return repository.NewEventLogRepository(db), func() {}
	}

	client, err := mongodb.Connect(ctx, &cfg.Mongo)
	if err != nil {
		log.Error("mongo audit sink unavailable, using postgres event log", "error", err)
		return repository.NewEventLogRepository(db), func() {}
	}

	log.Info("mongo audit sink enabled", "database", cfg.Mongo.Database, "collection", cfg.Mongo.EventCollection)
	sink := mongodb.NewEventLogRepository(client.Database(cfg.Mongo.Database), cfg.Mongo.EventCollection)
	return sink, func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn("failed to disconnect mongo", "error", err)
		}
	}
}

func sweepIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, log *logger.Logger) {
	ticker := time.NewTicker(idempotencySweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.Warn("failed to delete expired idempotency keys", "error", err)
			}
		}
	}
}
