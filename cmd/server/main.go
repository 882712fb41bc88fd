package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmicgarden/internal/app/server/api"
	"cosmicgarden/internal/config"
	"cosmicgarden/internal/infrastructure/storage/postgres"
	"cosmicgarden/internal/live"
	"cosmicgarden/internal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	storage, err := postgres.New(cfg)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer storage.Close()
	log.Info("connected to database")

	hub := live.NewHub(log)
	mux := api.New(cfg, storage, hub, log)

	server := &http.Server{
		Addr:         cfg.Server.RunAddress,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // the live feed holds connections open
		IdleTimeout:  60 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case sig := <-sigCh:
		log.Info("received signal, shutting down", "signal", sig.String())
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
