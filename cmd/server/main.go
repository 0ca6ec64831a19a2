package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/veltri/propledger/internal/adapter/http"
	"github.com/veltri/propledger/internal/adapter/http/handler"
	postgresRepo "github.com/veltri/propledger/internal/adapter/repository/postgres"
	redisRepo "github.com/veltri/propledger/internal/adapter/repository/redis"
	"github.com/veltri/propledger/internal/infrastructure/config"
	"github.com/veltri/propledger/internal/infrastructure/logger"
	"github.com/veltri/propledger/internal/infrastructure/metrics"
	"github.com/veltri/propledger/internal/infrastructure/postgres"
	"github.com/veltri/propledger/internal/infrastructure/redis"
	"github.com/veltri/propledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	zerolog.DefaultContextLogger = &appLogger

	ctx := context.Background()

	// Run migrations before accepting traffic
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	journalRepo := postgresRepo.NewJournalRepository(pool)
	entryRepo := postgresRepo.NewLedgerEntryRepository(pool)
	scheduleRepo := postgresRepo.NewScheduleRepository(pool)
	unitRepo := postgresRepo.NewUnitRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	history := redisRepo.NewImbalanceHistory(redisClient, cfg.HistoryRetention)

	appMetrics := metrics.New()

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	postingUC := usecase.NewPostingUseCase(
		txManager, journalRepo, entryRepo, accountRepo,
		history, auditRepo, idGen, appLogger,
	).WithRecurrencePolicy(cfg.RecurrenceWindow(), cfg.RecurrenceThreshold)
	allocationUC := usecase.NewAllocationUseCase(scheduleRepo, unitRepo, auditRepo, appLogger)
	scheduleUC := usecase.NewScheduleUseCase(scheduleRepo, unitRepo, idGen)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	journalHandler := handler.NewJournalHandler(postingUC, retrier, appMetrics)
	allocationHandler := handler.NewAllocationHandler(allocationUC, appMetrics)
	scheduleHandler := handler.NewScheduleHandler(scheduleUC)
	entryHandler := handler.NewEntryHandler(entryRepo)
	auditHandler := handler.NewAuditHandler(auditRepo)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:    accountHandler,
		JournalHandler:    journalHandler,
		AllocationHandler: allocationHandler,
		ScheduleHandler:   scheduleHandler,
		EntryHandler:      entryHandler,
		AuditHandler:      auditHandler,
		HealthHandler:     healthHandler,
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    cfg.IdempotencyTTL,
		Logger:            appLogger,
	})

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
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
