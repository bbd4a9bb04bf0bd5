package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raihansarker4343/exchange/internal/config"
	"github.com/raihansarker4343/exchange/internal/db"
	"github.com/raihansarker4343/exchange/internal/logger"
	"github.com/raihansarker4343/exchange/internal/registry"
	"github.com/raihansarker4343/exchange/internal/server"
)

// @title Gift Card Exchange API
// @version 1.0
// @description API for exchanging gift cards to BDT mobile wallet payouts.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	defer logger.Sync()
	logger.Info("Starting exchange application")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Seed(seedCtx, database, cfg.SeedAdminName, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		seedCancel()
		logger.Fatalf("Failed to seed database: %v", err)
	}
	seedCancel()
	logger.Info("Database ready")

	cache := registry.NewCache(cfg.RedisAddr)
	defer cache.Close()

	srv := server.New(database, cfg, cache)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
