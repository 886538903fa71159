// Package main ContosoCrafts web application.
//
// Serves the university catalog pages and the JSON products API.
//
//	@title			ContosoCrafts API
//	@version		1.0.0
//	@description	University catalog backed by a JSON file: product listing, ratings and image uploads.
//	@host			localhost:8080
//	@BasePath		/
//	@schemes		http
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
	"github.com/rs/zerolog/log"

	"contosocrafts/internal/config"
	"contosocrafts/internal/jobs"
	"contosocrafts/internal/server"
	"contosocrafts/internal/store"
)

func setupLogger(cfg config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}
}

func gracefulShutdown(ctx context.Context, apiServer *http.Server, done chan bool, cleanupFunc func()) {
	// Wait for the interrupt signal.
	<-ctx.Done()

	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")

	// The server has 5 seconds to finish the requests it is currently handling.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	if cleanupFunc != nil {
		cleanupFunc()
	}

	log.Info().Msg("server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := store.New(cfg.WebRoot)
	log.Info().Str("web_root", st.WebRoot()).Int("port", cfg.Port).Msg("starting server")

	var cleanup func()
	if cfg.ImageSweepSchedule != "" {
		sweeper := jobs.NewImageSweeper(st, st.WebRoot(), cfg.ImageSweepGrace)
		manager := jobs.NewCronManager(cfg.ImageSweepSchedule, sweeper)
		if err := manager.Start(); err != nil {
			log.Fatal().Err(err).Msg("could not start image sweeper")
		}
		cleanup = manager.Stop
	}

	srv, err := server.NewServer(ctx, cfg, st)
	if err != nil {
		log.Fatal().Err(err).Msg("could not build server")
	}

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(ctx, srv, done, cleanup)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server error")
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info().Msg("graceful shutdown complete")
}
