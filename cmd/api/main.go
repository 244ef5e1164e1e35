// Package main is the entry point for the finance companion API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/companion/config"
	"github.com/finance-tracker/companion/internal/infra/db"
	"github.com/finance-tracker/companion/internal/infra/dependency"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting finance companion API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
		"responder", cfg.Assistant.Responder,
	)

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// The chat mirror is optional; without it the log lives in memory.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = db.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis connection failed, chat log will not be mirrored", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	injector := dependency.NewInjector(cfg, database.DB(), dependency.Options{Redis: redisClient})

	if err := injector.Engine.Restore(context.Background()); err != nil {
		slog.Warn("Chat log could not be restored, starting empty", "error", err)
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Drop expired rate limit windows once per window.
	window := cfg.Assistant.RateWindow
	if window <= 0 {
		window = time.Minute
	}
	cleanup := time.NewTicker(window)
	defer cleanup.Stop()
	go func() {
		for range cleanup.C {
			injector.RateLimiter.Cleanup()
		}
	}()

	// Drop transaction forms nobody has touched for a while.
	sweep := cfg.Server.FormSessionIdle
	if sweep <= 0 || sweep > time.Minute {
		sweep = time.Minute
	}
	formSweep := time.NewTicker(sweep)
	defer formSweep.Stop()
	go func() {
		for range formSweep.C {
			if removed := injector.FormSessions.Cleanup(); removed > 0 {
				slog.Debug("Dropped idle transaction forms", "count", removed)
			}
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	// Queued assistant replies are dropped on shutdown.
	injector.Engine.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	injector.Engine.Wait()
	slog.Info("Server exited properly")
}
