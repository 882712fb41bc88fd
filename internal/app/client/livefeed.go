package client

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/slog"

	"cosmicgarden/internal/domain/flower"
)

const (
	reconnectDelay    = 2 * time.Second
	maxReconnectDelay = 30 * time.Second
	readTimeout       = 90 * time.Second
)

// LiveFeed maintains a WebSocket subscription to the server's insert
// feed, reconnecting with backoff when the connection drops.
type LiveFeed struct {
	url    string
	log    *slog.Logger
	events chan flower.Flower
}

func NewLiveFeed(url string, log *slog.Logger) *LiveFeed {
	return &LiveFeed{
		url:    url,
		log:    log.With("component", "live_feed"),
		events: make(chan flower.Flower, 16),
	}
}

// Events delivers flowers as they are planted. The channel is closed
// when Run returns.
func (f *LiveFeed) Events() <-chan flower.Flower {
	return f.events
}

// Run connects and re-connects until the context is cancelled.
func (f *LiveFeed) Run(ctx context.Context) {
	defer close(f.events)

	delay := reconnectDelay
	for {
		if err := f.connect(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			f.log.Warn("feed disconnected, retrying", "error", err, "delay", delay)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		delay *= 2
		if delay > maxReconnectDelay {
			delay = maxReconnectDelay
		}
	}
}

func (f *LiveFeed) connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	f.log.Info("connected to live feed", "url", f.url)

	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(10*time.Second))
	})

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var planted flower.Flower
		if err := json.Unmarshal(payload, &planted); err != nil {
			f.log.Warn("malformed feed event", "error", err)
			continue
		}

		select {
		case f.events <- planted:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
