package flower

import (
	"math/rand"
)

// Placement bands, in viewport percent. Flowers grow along the lower
// part of the garden.
const (
	placementXMin  = 10.0
	placementXSpan = 80.0
	placementYMin  = 65.0
	placementYSpan = 25.0

	placementAttempts = 50
	minSeparation     = 8.0
)

// Placer produces non-overlapping garden positions via rejection
// sampling.
type Placer struct {
	rng *rand.Rand
}

// NewPlacer creates a placer with its own random source.
func NewPlacer() *Placer {
	return &Placer{rng: rand.New(rand.NewSource(rand.Int63()))}
}

// NewPlacerWithSeed creates a placer with a deterministic source for
// tests.
func NewPlacerWithSeed(seed int64) *Placer {
	return &Placer{rng: rand.New(rand.NewSource(seed))}
}

// Place returns a position inside the configured bands whose per-axis
// distance to every existing position is at least minSeparation.
// If no such candidate is found within the attempt budget the last
// candidate is returned as is: overlap is preferred over failure, so
// Place never blocks and never errors.
func (p *Placer) Place(existing []Position) Position {
	var candidate Position
	for attempt := 0; attempt < placementAttempts; attempt++ {
		candidate = Position{
			X: placementXMin + p.rng.Float64()*placementXSpan,
			Y: placementYMin + p.rng.Float64()*placementYSpan,
		}
		if !tooClose(candidate, existing) {
			return candidate
		}
	}
	return candidate
}

func tooClose(c Position, existing []Position) bool {
	for _, e := range existing {
		dx := abs(e.X - c.X)
		dy := abs(e.Y - c.Y)
		if dx < minSeparation && dy < minSeparation {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
