package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"authserver/internal/config"
	"authserver/internal/repository"
	"authserver/internal/server"
	"authserver/internal/token"
	"authserver/internal/weather_client"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load configuration
	cfgPath := "configs/config.yml"
	if v := os.Getenv("CONFIG_FILE"); v != "" {
		cfgPath = v
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if cfg.Auth.Secret == "" {
		// Deterministic fallback; fine for local testing, never for
		// production.
		cfg.Auth.Secret = token.InsecureDevSecret
		logger.Warn("JWT_SECRET not set, using the insecure built-in dev secret")
	}

	// A missing or corrupt users file is not fatal: the service still
	// starts, serves health checks and accepts new registrations.
	registry := repository.NewFileRegistry(cfg.Auth.UsersFile, logger)
	if err := registry.Load(); err != nil {
		logger.Warn("Could not load users file, starting with an empty registry",
			zap.String("path", cfg.Auth.UsersFile), zap.Error(err))
	}

	weatherClient := weather_client.NewClient(cfg.Weather.APIKey, logger)

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := server.NewServer(cfg, registry, weatherClient, logger)
	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Application stopped.")
}
