package flower

import (
	"time"
)

// Flower is a single planted flower: the one durable record in the
// system. Created once, never updated or deleted.
type Flower struct {
	ID        string     `json:"id"`
	Species   string     `json:"species"`
	Type      VisualType `json:"type"`
	Message   string     `json:"message"`
	Author    string     `json:"author"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Geo       *Geo       `json:"geo,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Position is a pair of percentage coordinates inside the garden
// viewport, not a geographic location.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Geo is the best-effort origin of a planting. Absent whenever the
// lookup failed.
type Geo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country,omitempty"`
	City      string  `json:"city,omitempty"`
}

// Position returns the flower's placement coordinates.
func (f *Flower) Position() Position {
	return Position{X: f.X, Y: f.Y}
}

// ListResponse is the payload for garden listings.
type ListResponse struct {
	Flowers []Flower `json:"flowers"`
	Total   int      `json:"total"`
}

// Stats aggregates the garden for the stats endpoint.
type Stats struct {
	Total       int64                `json:"total"`
	ByType      map[VisualType]int64 `json:"by_type"`
	Countries   int64                `json:"countries"`
	LastPlanted *time.Time           `json:"last_planted,omitempty"`
}
