package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"acme-hr-api/internal/config"
	"acme-hr-api/internal/db"
	"acme-hr-api/internal/httpapi"
	"acme-hr-api/internal/logging"
	"acme-hr-api/internal/service"
)

func main() {
	// -- Logger --
	logger := logging.New(os.Stdout, zerolog.InfoLevel)

	// -- Configs preload --
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config error")
	}
	logger = logger.Level(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// -- Connect to DB --
	database, err := db.Connect(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection error")
	}
	logger.Info().Msg("connected to the database")

	if cfg.ResetDatabase {
		if err := db.Reset(ctx, database); err != nil {
			logger.Fatal().Err(err).Msg("database reset failed")
		}
		logger.Info().Msg("tables recreated and seed data inserted")
	} else {
		logger.Info().Msg("RESET_DATABASE=false, keeping existing data")
	}

	directoryService := service.NewDirectoryService(database)
	handler := httpapi.NewHandler(directoryService, logger)

	// -- Router --
	mux := http.NewServeMux()
	mux.Handle("/employees", handler)
	mux.Handle("/employees/", handler)
	mux.Handle("/departments", handler)
	mux.Handle("/departments/", handler)
	mux.Handle("/healthcheck", httpapi.NewHealthHandler(directoryService, logger))

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: httpapi.WithRequestID(
			httpapi.WithAccessLog(logger,
				httpapi.WithTimeout(cfg.RequestTimeout, mux))),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// -- Startup --
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
