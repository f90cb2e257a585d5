// @title                       Inventory API
// @version                     1.0
// @description                 Per-account inventory tracking behind token authentication.
// @BasePath                    /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        x-auth-token
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stockroom/inventory-api/internal/api"
	"github.com/stockroom/inventory-api/internal/core/service"
	"github.com/stockroom/inventory-api/internal/infrastructure/config"
	"github.com/stockroom/inventory-api/internal/infrastructure/db/mongo"
	"github.com/stockroom/inventory-api/internal/infrastructure/db/redis"
	"github.com/stockroom/inventory-api/internal/infrastructure/queue"
	"github.com/stockroom/inventory-api/pkg/logger"
)

const serviceName = "inventory-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, os.Getenv("ENV_FILE"))
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: serviceName,
		Env:     cfg.Env,
	})

	if cfg.JWTSecret == "" {
		log.Error().Msg("JWT_SECRET is not set; register, login and protected routes will fail")
	}

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close mongodb connection")
		}
	}()

	accountRepo := mongo.NewAccountRepository(db)
	inventoryRepo := mongo.NewInventoryRepository(db)
	if err := mongo.EnsureIndexes(ctx, accountRepo, inventoryRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:       cfg.Redis.Addr,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
		PoolSize:   cfg.Redis.PoolSize,
		ClientName: serviceName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	journal := queue.NewJournal(cfg.Journal.Workers, mongo.NewChangeRepository(db), logger.Named("journal"))
	journal.Start(workerCtx)

	tokens := service.NewTokenService(cfg.JWTSecret)
	authSvc := service.NewAuthService(accountRepo, tokens, cfg.BcryptCost, logger.Named("auth"))
	inventorySvc := service.NewInventoryService(
		inventoryRepo,
		redis.NewStatsCache(rdb, cfg.Redis.StatsTTL),
		journal,
		logger.Named("inventory"),
	)

	e := api.NewRouter(api.Dependencies{
		Auth:      authSvc,
		Tokens:    tokens,
		Inventory: inventorySvc,
		HealthChecks: map[string]func(context.Context) error{
			"mongodb": mongo.Pinger(mongoClient),
			"redis":   redis.Pinger(rdb),
		},
		Log:               logger.Named("http"),
		ExposeErrorDetail: cfg.Development(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	stopWorkers()
	journal.Wait()
}
