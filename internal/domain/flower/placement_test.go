package flower

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlacer_WithinBands(t *testing.T) {
	placer := NewPlacerWithSeed(1)

	for i := 0; i < 1000; i++ {
		pos := placer.Place(nil)
		assert.GreaterOrEqual(t, pos.X, 10.0)
		assert.LessOrEqual(t, pos.X, 90.0)
		assert.GreaterOrEqual(t, pos.Y, 65.0)
		assert.LessOrEqual(t, pos.Y, 90.0)
	}
}

func TestPlacer_RespectsSeparation(t *testing.T) {
	placer := NewPlacerWithSeed(42)

	// A sparse garden leaves room, so every placement must keep the
	// minimum per-axis distance.
	existing := []Position{
		{X: 20, Y: 70},
		{X: 50, Y: 80},
		{X: 80, Y: 88},
	}

	for i := 0; i < 100; i++ {
		pos := placer.Place(existing)
		for _, e := range existing {
			dx := abs(e.X - pos.X)
			dy := abs(e.Y - pos.Y)
			separated := dx >= minSeparation || dy >= minSeparation
			assert.True(t, separated, "placed %v too close to %v", pos, e)
		}
	}
}

func TestPlacer_CrowdedGardenStillPlaces(t *testing.T) {
	placer := NewPlacerWithSeed(7)

	// Tile the whole band so no candidate can satisfy the separation
	// rule. Place must still return a position inside the bands.
	var existing []Position
	for x := 10.0; x <= 90.0; x += 4 {
		for y := 65.0; y <= 90.0; y += 4 {
			existing = append(existing, Position{X: x, Y: y})
		}
	}

	pos := placer.Place(existing)
	assert.GreaterOrEqual(t, pos.X, 10.0)
	assert.LessOrEqual(t, pos.X, 90.0)
	assert.GreaterOrEqual(t, pos.Y, 65.0)
	assert.LessOrEqual(t, pos.Y, 90.0)
}

func TestPlacer_Deterministic(t *testing.T) {
	a := NewPlacerWithSeed(99)
	b := NewPlacerWithSeed(99)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Place(nil), b.Place(nil))
	}
}
