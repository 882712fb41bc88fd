package flower

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"cosmicgarden/internal/i18n"
)

// Servicer is the business-logic contract for the garden.
type Servicer interface {
	// Plant runs the full submission pipeline: sanitize, classify,
	// normalize, place, geolocate, persist, broadcast.
	Plant(ctx context.Context, req PlantRequest) (*Flower, error)
	List(ctx context.Context) (ListResponse, error)
	Stats(ctx context.Context) (Stats, error)
}

// PlantRequest carries one submission through the pipeline.
type PlantRequest struct {
	Message  string
	Author   string
	Lang     string
	RemoteIP string
}

// Service implements Servicer on top of the persistence, classifier,
// geolocation and live-feed ports.
type Service struct {
	repo       Repository
	classifier Classifier
	locator    Locator
	broadcast  Broadcaster
	placer     *Placer
	log        *slog.Logger
}

// NewService creates a new garden service. locator and broadcast may
// be nil; geolocation and live updates are then skipped.
func NewService(repo Repository, classifier Classifier, locator Locator, broadcast Broadcaster, log *slog.Logger) Servicer {
	return &Service{
		repo:       repo,
		classifier: classifier,
		locator:    locator,
		broadcast:  broadcast,
		placer:     NewPlacer(),
		log:        log.With("component", "flower_service"),
	}
}

// Plant processes one submission. Input validation failures and
// classifier rate/quota errors are returned to the caller; every other
// dependency failure degrades inside the pipeline so the flower is
// always planted.
func (s *Service) Plant(ctx context.Context, req PlantRequest) (*Flower, error) {
	message, err := SanitizeMessage(req.Message)
	if err != nil {
		return nil, err
	}

	locale := i18n.Parse(req.Lang)
	author := SanitizeAuthor(req.Author, i18n.T(locale, i18n.KeyAnonymous))

	result, err := s.classifier.Classify(ctx, message)
	if err != nil {
		// Rate-limit and quota errors carry through so the caller can
		// show a specific retry-later message.
		return nil, err
	}

	f := &Flower{
		Species: result.Species,
		Type:    Normalize(result.Species),
		Message: TruncateCaption(result.Caption),
		Author:  author,
	}

	pos := s.placer.Place(s.existingPositions(ctx))
	f.X = pos.X
	f.Y = pos.Y

	f.Geo = s.locate(ctx, req.RemoteIP)

	if err := s.repo.Create(ctx, f); err != nil {
		s.log.Error("failed to create flower", "species", f.Species, "error", err)
		return nil, fmt.Errorf("create flower: %w", err)
	}

	s.log.Info("flower planted",
		"flower_id", f.ID,
		"species", f.Species,
		"type", f.Type,
		"author", f.Author,
	)

	if s.broadcast != nil {
		s.broadcast.Broadcast(*f)
	}

	return f, nil
}

// List returns the whole garden ordered by creation time ascending.
func (s *Service) List(ctx context.Context) (ListResponse, error) {
	flowers, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list flowers", "error", err)
		return ListResponse{}, fmt.Errorf("list flowers: %w", err)
	}

	// Re-normalize on the way out so rows persisted with a species the
	// renderer no longer knows still map into the visual enumeration.
	for i := range flowers {
		flowers[i].Type = Normalize(string(flowers[i].Type))
	}

	return ListResponse{
		Flowers: flowers,
		Total:   len(flowers),
	}, nil
}

// Stats aggregates the garden.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.log.Error("failed to get stats", "error", err)
		return Stats{}, fmt.Errorf("get stats: %w", err)
	}
	return stats, nil
}

// existingPositions fetches occupied coordinates for placement. A
// lookup failure degrades to placing against an empty garden.
func (s *Service) existingPositions(ctx context.Context) []Position {
	positions, err := s.repo.Positions(ctx)
	if err != nil {
		s.log.Warn("failed to load positions, placing without overlap check", "error", err)
		return nil
	}
	return positions
}

// locate resolves the submitter's origin. Best-effort: failures are
// absorbed and the pipeline proceeds without geo data.
func (s *Service) locate(ctx context.Context, ip string) *Geo {
	if s.locator == nil || ip == "" {
		return nil
	}
	geo, err := s.locator.Locate(ctx, ip)
	if err != nil {
		s.log.Warn("geolocation lookup failed", "error", err)
		return nil
	}
	return geo
}
