package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/ozgun/fincore/internal/adapter/http"
	"github.com/ozgun/fincore/internal/adapter/http/handler"
	postgresRepo "github.com/ozgun/fincore/internal/adapter/repository/postgres"
	redisRepo "github.com/ozgun/fincore/internal/adapter/repository/redis"
	"github.com/ozgun/fincore/internal/infrastructure/config"
	"github.com/ozgun/fincore/internal/infrastructure/eventpublisher"
	"github.com/ozgun/fincore/internal/infrastructure/logger"
	"github.com/ozgun/fincore/internal/infrastructure/logging"
	"github.com/ozgun/fincore/internal/infrastructure/metrics"
	"github.com/ozgun/fincore/internal/infrastructure/postgres"
	"github.com/ozgun/fincore/internal/infrastructure/rates"
	"github.com/ozgun/fincore/internal/infrastructure/redis"
	"github.com/ozgun/fincore/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	zerolog.SetGlobalLevel(log.Logger.GetLevel())

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, resolveMigrationsPath()); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Register metrics
	m := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	taxRepo := postgresRepo.NewTaxRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	invoiceRepo := postgresRepo.NewInvoiceRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	consistencyRepo := postgresRepo.NewConsistencyRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Reference rate provider
	var rateProvider usecase.ReferenceRateProvider
	if cfg.RatesURL != "" {
		rateProvider = rates.NewHTTPProvider(cfg.RatesURL, cfg.RatesTimeout)
		log.Info().Str("url", cfg.RatesURL).Msg("using remote reference rates")
	} else {
		rateProvider = rates.NewStaticProvider(nil)
		log.Info().Msg("using built-in reference rates")
	}

	// Initialize use cases
	taxUC := usecase.NewTaxUseCase(taxRepo, cache, idGen, m)
	transactionUC := usecase.NewTransactionUseCase(txManager, transactionRepo, taxUC, outboxRepo, idGen, m)
	reconciliationUC := usecase.NewReconciliationUseCase(txManager, invoiceRepo, paymentRepo, outboxRepo, consistencyRepo, idGen, retrier, m)
	invoiceUC := usecase.NewInvoiceUseCase(txManager, invoiceRepo, paymentRepo, outboxRepo, idGen, m)
	paymentUC := usecase.NewPaymentUseCase(txManager, paymentRepo, outboxRepo, reconciliationUC, idGen, retrier, m)
	rateUC := usecase.NewRateUseCase(rateProvider, cache, m)

	// Initialize handlers
	taxHandler := handler.NewTaxHandler(taxUC)
	transactionHandler := handler.NewTransactionHandler(transactionUC)
	invoiceHandler := handler.NewInvoiceHandler(invoiceUC, reconciliationUC)
	paymentHandler := handler.NewPaymentHandler(paymentUC)
	rateHandler := handler.NewRateHandler(rateUC)
	consistencyHandler := handler.NewConsistencyHandler(reconciliationUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TaxHandler:         taxHandler,
		TransactionHandler: transactionHandler,
		InvoiceHandler:     invoiceHandler,
		PaymentHandler:     paymentHandler,
		RateHandler:        rateHandler,
		ConsistencyHandler: consistencyHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		Logger:             log.Logger,
	})

	// Start outbox publisher
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	slogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(slogger.Logger),
		Logger:     slogger,
		Metrics:    m,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
	})

	go func() {
		if err := publisher.Start(publisherCtx); err != nil && publisherCtx.Err() == nil {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Metrics endpoint
	go func() {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":9091", metricsMux); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func resolveMigrationsPath() string {
	if path := os.Getenv("MIGRATIONS_PATH"); path != "" {
		return path
	}
	return "migrations"
}
