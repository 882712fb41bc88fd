// Package client implements the terminal garden client: an HTTP client
// for planting and browsing, a local SQLite cache, and a live feed
// subscription that keeps the cached garden current.
package client

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"cosmicgarden/internal/app/client/config"
	"cosmicgarden/internal/domain/flower"
)

type App struct {
	config     *config.Config
	log        *slog.Logger
	httpClient *httpClient
	cache      *GardenCache
	garden     *Garden
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	httpCl := NewHTTPClient(cfg, log)

	cache, err := NewGardenCache(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("init garden cache: %w", err)
	}

	if err := cache.SeedIfEmpty(); err != nil {
		log.Warn("failed to seed sample garden", "error", err)
	}

	return &App{
		config:     cfg,
		log:        log,
		httpClient: httpCl,
		cache:      cache,
		garden:     NewGarden(),
	}, nil
}

// Plant submits a message to the server and caches the result. The
// flower appears in the local garden immediately.
func (a *App) Plant(ctx context.Context, message, author string) (*flower.Flower, error) {
	planted, err := a.httpClient.PlantFlower(ctx, message, author, a.config.Lang)
	if err != nil {
		return nil, err
	}

	a.garden.Merge(*planted)
	if err := a.cache.SaveFlower(*planted); err != nil {
		a.log.Warn("failed to cache planted flower", "error", err)
	}

	return planted, nil
}

// List returns the full garden, preferring the server and falling back
// to the local cache when offline.
func (a *App) List(ctx context.Context) ([]flower.Flower, bool, error) {
	flowers, err := a.httpClient.ListFlowers(ctx)
	if err != nil {
		a.log.Debug("server unavailable, using cache", "error", err)
		cached, cacheErr := a.cache.LoadFlowers()
		if cacheErr != nil {
			return nil, false, fmt.Errorf("list flowers: %w", err)
		}
		return cached, true, nil
	}

	a.garden.Hydrate(flowers)
	if err := a.cache.ReplaceAll(flowers); err != nil {
		a.log.Warn("failed to refresh cache", "error", err)
	}

	return flowers, false, nil
}

// Stats fetches garden statistics from the server.
func (a *App) Stats(ctx context.Context) (flower.Stats, error) {
	return a.httpClient.Stats(ctx)
}

// HealthCheck verifies the server is reachable.
func (a *App) HealthCheck(ctx context.Context) error {
	return a.httpClient.HealthCheck(ctx)
}

// Watch loads the garden, then streams live plantings until the
// context is cancelled. Each new flower is handed to fn exactly once.
func (a *App) Watch(ctx context.Context, fn func(flower.Flower)) error {
	flowers, offline, err := a.List(ctx)
	if err != nil {
		return err
	}
	if offline {
		return fmt.Errorf("cannot watch while the server is unreachable")
	}

	for _, f := range flowers {
		fn(f)
	}

	feed := NewLiveFeed(a.httpClient.FeedURL(), a.log)
	go feed.Run(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case f, ok := <-feed.Events():
			if !ok {
				return nil
			}
			if a.garden.Merge(f) {
				if err := a.cache.SaveFlower(f); err != nil {
					a.log.Warn("failed to cache flower", "error", err)
				}
				fn(f)
			}
		}
	}
}

// Close releases the local cache.
func (a *App) Close() error {
	return a.cache.Close()
}
