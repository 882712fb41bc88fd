// Package classifier is the gateway between sanitized user messages
// and the external AI chat-completion provider. Its contract never
// fails for dependency reasons: anything short of a rate-limit or
// quota error degrades to a random species with the original message
// as caption, so the caller always gets a plantable flower.
package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"cosmicgarden/internal/domain/flower"
)

var (
	// ErrRateLimited is returned when the AI provider answers 429.
	ErrRateLimited = errors.New("rate limit exceeded, please try again later")
	// ErrQuotaExceeded is returned when the AI provider answers 402.
	ErrQuotaExceeded = errors.New("payment required")
)

// Config configures the AI gateway. An empty APIKey disables the
// external call entirely; classification then always falls back.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Gateway implements flower.Classifier against an OpenAI-compatible
// chat-completions endpoint.
type Gateway struct {
	client *chatClient
	log    *slog.Logger
}

// New creates a classification gateway.
func New(cfg Config, log *slog.Logger) *Gateway {
	g := &Gateway{
		log: log.With("component", "classifier"),
	}
	if cfg.APIKey == "" {
		g.log.Warn("AI API key is not configured, classification will use random fallback")
		return g
	}
	g.client = newChatClient(cfg, g.log)
	return g
}

// completion is the JSON object the model is instructed to return.
type completion struct {
	FlowerType string `json:"flowerType"`
	Message    string `json:"message"`
}

// Classify maps a sanitized message to a species and caption. The
// single external call is not retried. Only rate-limit and quota
// failures surface as errors; every other failure mode returns the
// fallback classification with a nil error.
func (g *Gateway) Classify(ctx context.Context, message string) (flower.Classification, error) {
	if g.client == nil {
		return fallback(message), nil
	}

	content, err := g.client.complete(ctx, systemPrompt(), message)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			switch se.Status {
			case http.StatusTooManyRequests:
				g.log.Warn("ai gateway rate limited")
				return flower.Classification{}, ErrRateLimited
			case http.StatusPaymentRequired:
				g.log.Warn("ai gateway quota exhausted")
				return flower.Classification{}, ErrQuotaExceeded
			}
		}
		g.log.Error("ai gateway call failed, falling back", "error", err)
		return fallback(message), nil
	}

	return g.parse(content, message), nil
}

// parse extracts the completion, tolerating markdown fences. A
// malformed completion or a species outside the taxonomy never
// reaches the caller; both degrade to the fallback.
func (g *Gateway) parse(content, message string) flower.Classification {
	var parsed completion
	if err := json.Unmarshal([]byte(stripFences(content)), &parsed); err != nil {
		g.log.Error("unparsable ai completion, falling back", "error", err)
		return fallback(message)
	}

	species := parsed.FlowerType
	if !flower.KnownSpecies(species) {
		g.log.Warn("ai returned unknown species, substituting", "species", species)
		species = flower.RandomSpecies()
	}

	caption := parsed.Message
	if caption == "" {
		caption = message
	}

	return flower.Classification{Species: species, Caption: caption}
}

// fallback substitutes a uniformly random species and echoes the
// original message as caption.
func fallback(message string) flower.Classification {
	return flower.Classification{
		Species: flower.RandomSpecies(),
		Caption: message,
	}
}
