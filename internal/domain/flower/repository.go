package flower

import (
	"context"
)

// Repository is the persistence port for planted flowers. Flowers are
// create-only; there is no update or delete.
type Repository interface {
	// Create persists a flower and fills in the store-assigned ID and
	// CreatedAt.
	Create(ctx context.Context, f *Flower) error
	// List returns every flower ordered by creation time ascending.
	List(ctx context.Context) ([]Flower, error)
	// Positions returns the coordinates of every planted flower.
	Positions(ctx context.Context) ([]Position, error)
	// Stats aggregates the garden.
	Stats(ctx context.Context) (Stats, error)
}

// Classification is the outcome of classifying a mood message.
type Classification struct {
	Species string
	Caption string
}

// Classifier maps a mood message to a flower species with a poetic
// caption. Implementations degrade to a fallback classification on
// every dependency failure except rate limiting and quota exhaustion,
// which are surfaced as distinct errors.
type Classifier interface {
	Classify(ctx context.Context, message string) (Classification, error)
}

// Locator resolves a client address to a best-effort geolocation.
type Locator interface {
	Locate(ctx context.Context, ip string) (*Geo, error)
}

// Broadcaster pushes a freshly planted flower to every live
// subscriber. Delivery is fire-and-forget.
type Broadcaster interface {
	Broadcast(f Flower)
}
