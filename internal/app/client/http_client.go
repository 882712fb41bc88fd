package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"cosmicgarden/internal/app/client/config"
	"cosmicgarden/internal/domain/flower"
)

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}

	return &httpClient{
		client:    client,
		log:       log,
		baseURL:   scheme + cfg.ServerAddress,
		userAgent: "CosmicGarden-Client/1.0",
	}
}

// HealthCheck verifies the server is reachable.
func (h *httpClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	return nil
}

type plantRequest struct {
	Message string `json:"message"`
	Author  string `json:"author,omitempty"`
	Lang    string `json:"lang,omitempty"`
}

type plantResponse struct {
	ID         string  `json:"id"`
	FlowerType string  `json:"flowerType"`
	Species    string  `json:"species"`
	Message    string  `json:"message"`
	Author     string  `json:"author"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	CreatedAt  string  `json:"createdAt"`
}

// PlantFlower submits a message and returns the planted flower.
func (h *httpClient) PlantFlower(ctx context.Context, message, author, lang string) (*flower.Flower, error) {
	var planted plantResponse
	if err := h.doJSON(ctx, http.MethodPost, "/api/v1/flowers", plantRequest{
		Message: message,
		Author:  author,
		Lang:    lang,
	}, &planted); err != nil {
		return nil, err
	}

	createdAt, err := time.Parse(time.RFC3339, planted.CreatedAt)
	if err != nil {
		createdAt = time.Now()
	}

	return &flower.Flower{
		ID:        planted.ID,
		Species:   planted.Species,
		Type:      flower.Normalize(planted.FlowerType),
		Message:   planted.Message,
		Author:    planted.Author,
		X:         planted.X,
		Y:         planted.Y,
		CreatedAt: createdAt,
	}, nil
}

// ListFlowers fetches the whole garden ordered by creation time.
func (h *httpClient) ListFlowers(ctx context.Context) ([]flower.Flower, error) {
	var garden flower.ListResponse
	if err := h.doJSON(ctx, http.MethodGet, "/api/v1/flowers", nil, &garden); err != nil {
		return nil, err
	}
	return garden.Flowers, nil
}

// Stats fetches garden statistics.
func (h *httpClient) Stats(ctx context.Context) (flower.Stats, error) {
	var stats flower.Stats
	if err := h.doJSON(ctx, http.MethodGet, "/api/v1/flowers/stats", nil, &stats); err != nil {
		return flower.Stats{}, err
	}
	return stats, nil
}

// FeedURL is the WebSocket endpoint of the live garden feed.
func (h *httpClient) FeedURL() string {
	url := h.baseURL + "/api/v1/live"
	if len(url) > 4 && url[:4] == "http" {
		url = "ws" + url[4:]
	}
	return url
}

func (h *httpClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return h.apiError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}

	return nil
}

// apiError extracts the server's error detail for display.
func (h *httpClient) apiError(status int, body []byte) error {
	var problem struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &problem); err == nil {
		if problem.Detail != "" {
			return fmt.Errorf("server error (%d): %s", status, problem.Detail)
		}
		if problem.Error != "" {
			return fmt.Errorf("server error (%d): %s", status, problem.Error)
		}
		if problem.Title != "" {
			return fmt.Errorf("server error (%d): %s", status, problem.Title)
		}
	}
	return fmt.Errorf("server returned status %d", status)
}
