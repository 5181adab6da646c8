package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/apartments/internal/config"
	"github.com/stwalsh4118/apartments/internal/database"
	apierrors "github.com/stwalsh4118/apartments/internal/errors"
	"github.com/stwalsh4118/apartments/internal/handlers"
	"github.com/stwalsh4118/apartments/internal/logger"
	"github.com/stwalsh4118/apartments/internal/repository"
	"github.com/stwalsh4118/apartments/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
)

// runServe starts the API and blocks until SIGINT or SIGTERM, then drains
// in-flight requests and closes the database.
func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.NewWithLevel(cfg.Server.Env, cfg.Log.Level)
	log.Info("Starting Apartments API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"addr":        cfg.Server.Addr(),
		"driver":      cfg.Database.Driver,
	})

	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Error("Failed to connect to database", err, databaseFields(cfg.Database))
		return err
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Error("Failed to create schema", err, databaseFields(cfg.Database))
		return err
	}

	log.Info("Database connection established", databaseFields(cfg.Database))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	apierrors.RegisterFieldNames()

	apartmentRepo, err := repository.NewApartmentRepository(db)
	if err != nil {
		return err
	}
	apartmentService := services.NewApartmentService(apartmentRepo, log)

	router := handlers.NewRouter(handlers.RouterConfig{
		Log:        log,
		CORS:       cfg.CORS,
		Apartments: handlers.NewApartmentHandler(apartmentService),
		Health:     handlers.NewHealthHandler(db, db.Driver, cfg.Server.Env),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error("Server failed to start", err, nil)
			return err
		}
	case <-sigCtx.Done():
	}

	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
	return nil
}

func databaseFields(cfg config.DatabaseConfig) map[string]interface{} {
	if cfg.Driver == config.DriverSQLite {
		return map[string]interface{}{
			"driver": cfg.Driver,
			"path":   cfg.Path,
		}
	}
	return map[string]interface{}{
		"driver":   cfg.Driver,
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.Name,
		"pool_min": cfg.PoolMin,
		"pool_max": cfg.PoolMax,
	}
}
