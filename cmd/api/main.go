package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/julianacmsantos/recipes-project/config"
	"github.com/julianacmsantos/recipes-project/internal/engine"
	"github.com/julianacmsantos/recipes-project/internal/logging"
	"github.com/julianacmsantos/recipes-project/internal/server"
	"github.com/julianacmsantos/recipes-project/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New("info", "console")
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	// Artifact loading failures leave the engine nil: the server still
	// starts, reports itself not ready and refuses recommendation requests
	// instead of crash-looping.
	eng := initEngine(cfg, logger)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	srv := server.New(cfg, eng, redisClient, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown error")
	}
	logger.Info().Msg("server stopped")
}

// initEngine resolves the artifact locations and initializes the
// recommendation engine. On failure it logs the error and returns nil.
func initEngine(cfg *config.Config, logger zerolog.Logger) *engine.Engine {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	indexPath, err := storage.Fetch(ctx, cfg.IndexPath, cfg.DataDir, logger)
	if err != nil {
		logger.Error().Err(err).Msg("index artifact unavailable, starting degraded")
		return nil
	}
	catalogPath, err := storage.Fetch(ctx, cfg.CatalogPath, cfg.DataDir, logger)
	if err != nil {
		logger.Error().Err(err).Msg("catalog artifact unavailable, starting degraded")
		return nil
	}

	eng, err := engine.Init(indexPath, catalogPath, cfg.EmbeddingModel, logger)
	if err != nil {
		logger.Error().Err(err).Msg("engine initialization failed, starting degraded")
		return nil
	}
	return eng
}
