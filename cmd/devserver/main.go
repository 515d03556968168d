package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evently-client/internal/devserver"
	"evently-client/internal/shared/config"
	"evently-client/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	seed := pflag.Bool("seed", false, "populate the store with demo users and events")
	pflag.Parse()

	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		appLogger.Info("No .env file found, using system environment variables")
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.DevServer.GinMode)

	// rebuild after SetMode so the handler choice follows the mode
	appLogger = logger.NewWithWriter(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	logger.SetDefault(appLogger)

	if cfg.IsProduction() && os.Getenv("JWT_SECRET") == "" {
		appLogger.Warn("JWT_SECRET is not set, tokens are signed with the built-in development secret")
	}

	store := devserver.NewStore(0)
	if *seed {
		if err := devserver.Seed(store, devserver.DefaultSeedUsers, devserver.DefaultSeedEvents); err != nil {
			appLogger.Error("Failed to seed store", slog.Any("error", err))
			os.Exit(1)
		}
		appLogger.Info("Store seeded",
			slog.Int("users", len(devserver.DefaultSeedUsers)),
			slog.Int("events", len(devserver.DefaultSeedEvents)),
		)
	}

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      devserver.NewRouter(cfg, store, appLogger),
		ReadTimeout:  cfg.DevServer.ReadTimeout,
		WriteTimeout: cfg.DevServer.WriteTimeout,
		IdleTimeout:  cfg.DevServer.IdleTimeout,
	}

	go func() {
		appLogger.Info("GraphQL endpoint running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("graphql", fmt.Sprintf("http://localhost:%s/graphql", cfg.DevServer.Port)),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.DevServer.Port)),
			slog.String("version", Version),
			slog.String("build_time", BuildTime),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}
