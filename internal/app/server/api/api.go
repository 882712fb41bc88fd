package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	flowerAPI "cosmicgarden/internal/app/server/api/http/flower"
	healthAPI "cosmicgarden/internal/app/server/api/http/health"
	liveAPI "cosmicgarden/internal/app/server/api/http/live"
	"cosmicgarden/internal/app/server/api/http/middleware"
	"cosmicgarden/internal/app/server/api/http/middleware/logger"
	"cosmicgarden/internal/app/server/api/http/middleware/remoteip"
	"cosmicgarden/internal/classifier"
	"cosmicgarden/internal/config"
	"cosmicgarden/internal/domain/flower"
	"cosmicgarden/internal/geo"
	"cosmicgarden/internal/infrastructure/storage/postgres"
	"cosmicgarden/internal/live"
)

type Handlers struct {
	Health *healthAPI.Handler
	Flower *flowerAPI.Handler
}

// New builds the chi mux with every operation registered through huma,
// plus the WebSocket live feed mounted directly on the mux.
func New(cfg *config.Config, storage *postgres.Storage, hub *live.Hub, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	humaCfg := huma.DefaultConfig("Cosmic Garden API", "1.0.0")
	API := humachi.New(mux, humaCfg)

	h := handlers(cfg, storage, hub, log)
	h.Health.SetupRoutes(API)
	h.Flower.SetupRoutes(API)

	liveHandler := liveAPI.NewHandler(hub, log)
	mux.Get("/api/v1/live", liveHandler.ServeHTTP)

	return mux
}

func handlers(cfg *config.Config, storage *postgres.Storage, hub *live.Hub, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	repo := postgres.NewFlowerRepository(storage.Pool(), log)
	gateway := classifier.New(classifier.Config{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	}, log)
	locator := geo.New(cfg.Geo.BaseURL, log)
	service := flower.NewService(repo, gateway, locator, hub, log)

	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(remoteip.Middleware())
	flowerHandler := flowerAPI.NewHandler(service, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Flower: flowerHandler,
	}
}
