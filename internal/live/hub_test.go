package live

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"cosmicgarden/internal/domain/flower"
)

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub(slog.Default())
	a := hub.Subscribe()
	b := hub.Subscribe()
	assert.Equal(t, 2, hub.Subscribers())

	hub.Broadcast(flower.Flower{ID: "f1", Species: "rose", Type: flower.VisualRose})

	for _, sub := range []*Subscriber{a, b} {
		payload := <-sub.Events()
		var f flower.Flower
		require.NoError(t, json.Unmarshal(payload, &f))
		assert.Equal(t, "f1", f.ID)
		assert.Equal(t, flower.VisualRose, f.Type)
	}
}

func TestHub_CloseDetachesSubscriber(t *testing.T) {
	hub := NewHub(slog.Default())
	sub := hub.Subscribe()

	sub.Close()
	assert.Equal(t, 0, hub.Subscribers())

	_, open := <-sub.Events()
	assert.False(t, open)

	// Closing twice is safe.
	sub.Close()
}

func TestHub_BroadcastAfterClose(t *testing.T) {
	hub := NewHub(slog.Default())
	sub := hub.Subscribe()
	sub.Close()

	// Must not panic on the closed channel.
	hub.Broadcast(flower.Flower{ID: "f1"})
}

func TestHub_SlowSubscriberDropsEvents(t *testing.T) {
	hub := NewHub(slog.Default())
	sub := hub.Subscribe()

	// Fill the buffer and then some; Broadcast must never block.
	for i := 0; i < sendBuffer+10; i++ {
		hub.Broadcast(flower.Flower{ID: "f"})
	}

	assert.Len(t, sub.Events(), sendBuffer)
}
