package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	jwtauth "cat-health-api/internal/adapters/auth/jwt"
	"cat-health-api/internal/adapters/storage/postgres"
	"cat-health-api/internal/config"
	"cat-health-api/internal/httpx"
	"cat-health-api/internal/platform/logger"
	"cat-health-api/internal/router"
)

// @title Cat Health API
// @version 1.0
// @description REST API for cat profiles, health records, insurance and care reminders.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	httpx.SetDevMode(cfg.IsDevelopment())

	opts := router.Options{
		Tokens:     jwtauth.NewManager([]byte(cfg.JWTSecret), cfg.TokenTTL),
		Logger:     zl,
		BcryptCost: cfg.BcryptCost,
	}

	if cfg.DatabaseDSN != "" {
		db, err := postgres.Open(cfg.DatabaseDSN)
		if err != nil {
			zl.Fatalw("open database", "error", err)
		}
		defer db.Close()

		if err := postgres.RunMigrations(db, cfg.MigrationsDir); err != nil {
			zl.Fatalw("run migrations", "error", err)
		}
		opts.DB = db
		zl.Infow("storage ready", "adapter", "postgres")
	} else {
		zl.Infow("storage ready", "adapter", "memory")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Infow("starting server", "addr", srv.Addr, "env", cfg.AppEnv)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatalw("server error", "error", err)
		}
	case sig := <-stop:
		zl.Infow("shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			zl.Errorw("graceful shutdown failed", "error", err)
		}
	}
}
