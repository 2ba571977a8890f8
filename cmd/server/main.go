package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/spinhall/ledgercore/internal/adapter/http"
	"github.com/spinhall/ledgercore/internal/adapter/http/handler"
	postgresRepo "github.com/spinhall/ledgercore/internal/adapter/repository/postgres"
	redisRepo "github.com/spinhall/ledgercore/internal/adapter/repository/redis"
	"github.com/spinhall/ledgercore/internal/infrastructure/auth"
	"github.com/spinhall/ledgercore/internal/infrastructure/config"
	"github.com/spinhall/ledgercore/internal/infrastructure/logger"
	"github.com/spinhall/ledgercore/internal/infrastructure/metrics"
	"github.com/spinhall/ledgercore/internal/infrastructure/postgres"
	"github.com/spinhall/ledgercore/internal/infrastructure/redis"
	"github.com/spinhall/ledgercore/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	policy, err := cfg.Policy()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid ledger policy")
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Repositories and infrastructure adapters
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	requestRepo := postgresRepo.NewRequestRepository(pool)
	retrier := postgresRepo.NewRetrier(appLogger, appMetrics)
	idGen := postgresRepo.NewULIDGenerator()

	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	balanceCache := redisRepo.NewCache(redisClient)
	notifier := redisRepo.NewNotifier(redisClient, cfg.EventChannel)

	// Use cases
	walletUC := usecase.NewWalletUseCase(usecase.WalletConfig{
		TxManager:   txManager,
		Accounts:    accountRepo,
		Entries:     entryRepo,
		IDGenerator: idGen,
		Retrier:     retrier,
		Idempotency: idempotencyStore,
		Notifier:    notifier,
		Cache:       balanceCache,
		Policy:      policy,
		Metrics:     appMetrics,
		Logger:      appLogger,
	})
	settlementUC := usecase.NewSettlementUseCase(usecase.SettlementConfig{
		TxManager:   txManager,
		Accounts:    accountRepo,
		Entries:     entryRepo,
		Requests:    requestRepo,
		IDGenerator: idGen,
		Retrier:     retrier,
		Notifier:    notifier,
		Policy:      policy,
		Metrics:     appMetrics,
		Logger:      appLogger,
	})
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, entryRepo, idGen, retrier, policy, balanceCache, appMetrics)
	entryUC := usecase.NewEntryUseCase(entryRepo)
	reconcileUC := usecase.NewReconciliationUseCase(accountRepo, entryRepo, appMetrics, appLogger)

	// Optional authentication
	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		log.Info().Msg("authentication enabled")
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		WalletHandler:      handler.NewWalletHandler(walletUC),
		SettlementHandler:  handler.NewSettlementHandler(settlementUC),
		EntryHandler:       handler.NewEntryHandler(entryUC),
		ReconcileHandler:   handler.NewReconcileHandler(reconcileUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		JWTManager:         jwtManager,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
		Logger:             appLogger,
	})

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
