package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/voyariestuff/tours-api/internal/api"
	"github.com/voyariestuff/tours-api/internal/infrastructure/config"
	mongodb "github.com/voyariestuff/tours-api/internal/infrastructure/db/mongo"
	redisdb "github.com/voyariestuff/tours-api/internal/infrastructure/db/redis"
	"github.com/voyariestuff/tours-api/internal/infrastructure/queue"
	"github.com/voyariestuff/tours-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	principalRepo := mongodb.NewPrincipalRepository(db)
	tourRepo := mongodb.NewTourRepository(db)
	requestRepo := mongodb.NewBookingRequestRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"principals":       principalRepo.EnsureIndexes,
		"tours":            tourRepo.EnsureIndexes,
		"booking_requests": requestRepo.EnsureIndexes,
		"reviews":          reviewRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	recompute := queue.NewRatingRecomputer(0, reviewRepo, tourRepo, log)
	recompute.Start(ctx)

	e := api.NewRouter(db, rdb, recompute, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
