package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cosmicgarden/internal/domain/flower"
)

func gardenFlower(id, message string, offset time.Duration) flower.Flower {
	return flower.Flower{
		ID:        id,
		Species:   "rose",
		Type:      flower.VisualRose,
		Message:   message,
		Author:    "Anonymous",
		CreatedAt: time.Unix(1700000000, 0).Add(offset),
	}
}

func TestGarden_HydrateOrdersByCreation(t *testing.T) {
	garden := NewGarden()
	garden.Hydrate([]flower.Flower{
		gardenFlower("b", "second", time.Minute),
		gardenFlower("a", "first", 0),
	})

	flowers := garden.Flowers()
	assert.Len(t, flowers, 2)
	assert.Equal(t, "a", flowers[0].ID)
	assert.Equal(t, "b", flowers[1].ID)
}

func TestGarden_MergeDeduplicatesByID(t *testing.T) {
	garden := NewGarden()
	garden.Hydrate([]flower.Flower{gardenFlower("a", "hello", 0)})

	assert.False(t, garden.Merge(gardenFlower("a", "hello", 0)))
	assert.True(t, garden.Merge(gardenFlower("b", "world", time.Minute)))
	assert.False(t, garden.Merge(gardenFlower("b", "world", time.Minute)))
	assert.Equal(t, 2, garden.Len())
}

func TestGarden_ProvisionalReplacedByFeedEvent(t *testing.T) {
	garden := NewGarden()

	local := garden.AddProvisional(flower.Flower{
		Message: "a wish",
		Author:  "Luna",
	})
	assert.NotEmpty(t, local.ID)
	assert.Equal(t, 1, garden.Len())

	// The server echo carries the canonical ID; the provisional entry
	// must be replaced, not duplicated.
	server := gardenFlower("server-1", "a wish", 0)
	server.Author = "Luna"
	assert.True(t, garden.Merge(server))

	flowers := garden.Flowers()
	assert.Len(t, flowers, 1)
	assert.Equal(t, "server-1", flowers[0].ID)

	// The freed local ID no longer blocks anything, and the canonical
	// one now deduplicates.
	assert.False(t, garden.Merge(server))
}

func TestGarden_HydrateKeepsProvisional(t *testing.T) {
	garden := NewGarden()
	garden.AddProvisional(flower.Flower{Message: "pending", Author: "Luna"})

	garden.Hydrate([]flower.Flower{gardenFlower("a", "hello", 0)})

	assert.Equal(t, 2, garden.Len())
}
