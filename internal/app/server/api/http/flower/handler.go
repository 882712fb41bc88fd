package flower

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"cosmicgarden/internal/app/server/api/http/middleware/remoteip"
	"cosmicgarden/internal/classifier"
	"cosmicgarden/internal/domain/flower"
	"cosmicgarden/internal/i18n"
)

type Handler struct {
	service    flower.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service flower.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.plantOp(), h.plant)
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.statsOp(), h.stats)
}

func (h *Handler) plant(ctx context.Context, input *plantInput) (*plantOutput, error) {
	f, err := h.service.Plant(ctx, flower.PlantRequest{
		Message:  input.Body.Message,
		Author:   input.Body.Author,
		Lang:     input.Body.Lang,
		RemoteIP: remoteip.FromContext(ctx),
	})
	if err != nil {
		return nil, h.mapError(ctx, input.Body.Lang, err)
	}

	return &plantOutput{
		Body: plantResponse{
			ID:         f.ID,
			FlowerType: f.Type.String(),
			Species:    f.Species,
			Message:    f.Message,
			Author:     f.Author,
			X:          f.X,
			Y:          f.Y,
			CreatedAt:  f.CreatedAt.Format(time.RFC3339),
		},
	}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	garden, err := h.service.List(ctx)
	if err != nil {
		h.log.Error("failed to list flowers", "error", err)
		return nil, huma.Error500InternalServerError(i18n.T(i18n.LocaleEN, i18n.KeyGenericError))
	}

	return &listOutput{
		Body: garden,
	}, nil
}

func (h *Handler) stats(ctx context.Context, _ *struct{}) (*statsOutput, error) {
	stats, err := h.service.Stats(ctx)
	if err != nil {
		h.log.Error("failed to get stats", "error", err)
		return nil, huma.Error500InternalServerError(i18n.T(i18n.LocaleEN, i18n.KeyGenericError))
	}

	return &statsOutput{
		Body: stats,
	}, nil
}

// mapError converts pipeline failures into the API error taxonomy:
// 400 for input validation, 429/402 for provider pressure, and a
// generic 500 for anything else so internal detail never leaks.
func (h *Handler) mapError(_ context.Context, lang string, err error) error {
	locale := i18n.Parse(lang)

	switch {
	case errors.Is(err, flower.ErrEmptyMessage), errors.Is(err, flower.ErrMessageTooLong):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, classifier.ErrRateLimited):
		return huma.Error429TooManyRequests(i18n.T(locale, i18n.KeyRateLimited))
	case errors.Is(err, classifier.ErrQuotaExceeded):
		return huma.NewError(http.StatusPaymentRequired, i18n.T(locale, i18n.KeyQuotaExceeded))
	default:
		h.log.Error("unexpected error while planting flower", "error", err)
		return huma.Error500InternalServerError(i18n.T(locale, i18n.KeyGenericError))
	}
}
