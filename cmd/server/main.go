package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/arledger/internal/adapter/http"
	"github.com/iho/arledger/internal/adapter/http/handler"
	"github.com/iho/arledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/arledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/arledger/internal/adapter/repository/redis"
	"github.com/iho/arledger/internal/infrastructure/auth"
	"github.com/iho/arledger/internal/infrastructure/config"
	"github.com/iho/arledger/internal/infrastructure/eventpublisher"
	"github.com/iho/arledger/internal/infrastructure/logger"
	"github.com/iho/arledger/internal/infrastructure/metrics"
	"github.com/iho/arledger/internal/infrastructure/postgres"
	"github.com/iho/arledger/internal/infrastructure/redis"
	"github.com/iho/arledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		log.Info().Msg("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	holderRepo := postgresRepo.NewHolderRepository(pool)
	invoiceRepo := postgresRepo.NewInvoiceRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	noteRepo := postgresRepo.NewNoteRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	appMetrics := metrics.New()

	// Use cases
	holderUC := usecase.NewHolderUseCase(holderRepo, idGen, appMetrics)
	invoiceUC := usecase.NewInvoiceUseCase(txManager, invoiceRepo, holderRepo, outboxRepo, idGen, appMetrics)
	statementUC := usecase.NewStatementUseCase(invoiceRepo, paymentRepo, holderRepo, cache, cfg.StatementCacheTTL, appMetrics)
	paymentUC := usecase.NewPaymentUseCase(txManager, invoiceRepo, paymentRepo, outboxRepo, idGen, retrier, statementUC, appMetrics)
	noteUC := usecase.NewNoteUseCase(txManager, noteRepo, holderRepo, outboxRepo, idGen, appMetrics)
	agingUC := usecase.NewAgingUseCase(invoiceRepo, noteRepo, holderRepo, appMetrics)
	userUC := usecase.NewUserUseCase(userRepo, idGen)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Handlers
	holderHandler := handler.NewHolderHandler(holderUC)
	invoiceHandler := handler.NewInvoiceHandler(invoiceUC, paymentUC)
	noteHandler := handler.NewNoteHandler(noteUC)
	statementHandler := handler.NewStatementHandler(statementUC, agingUC, invoiceUC, noteUC)
	authHandler := handler.NewAuthHandler(userUC, jwtManager)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		HolderHandler:    holderHandler,
		InvoiceHandler:   invoiceHandler,
		NoteHandler:      noteHandler,
		StatementHandler: statementHandler,
		AuthHandler:      authHandler,
		HealthHandler:    healthHandler,
		Logging:          middleware.NewLoggingMiddleware(appLogger),
		Idempotency:      middleware.NewIdempotencyMiddleware(idempotencyStore),
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		JWTManager:       jwtManager,
		AuthEnabled:      cfg.AuthEnabled,
	})

	// Outbox publisher drains committed events in the background.
	publisherCtx, cancelPublisher := context.WithCancel(ctx)
	defer cancelPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(&appLogger),
		Logger:     &appLogger,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && publisherCtx.Err() == nil {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	cancelPublisher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
