package client

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"cosmicgarden/internal/domain/flower"
)

// Garden is the client-side view of the shared garden. It merges the
// initial snapshot, live feed events and locally planted flowers into
// one ordered list, keeping each flower exactly once.
type Garden struct {
	mu      sync.Mutex
	flowers []flower.Flower
	seen    map[string]struct{}

	// provisional flowers were planted locally and not yet observed
	// on the feed; keyed by message+author so the server echo can
	// replace them.
	provisional map[string]string
}

func NewGarden() *Garden {
	return &Garden{
		seen:        make(map[string]struct{}),
		provisional: make(map[string]string),
	}
}

// Hydrate replaces the garden with a full snapshot, preserving any
// provisional flowers the snapshot does not yet contain.
func (g *Garden) Hydrate(flowers []flower.Flower) {
	g.mu.Lock()
	defer g.mu.Unlock()

	kept := make([]flower.Flower, 0, len(g.provisional))
	for _, f := range g.flowers {
		if _, ok := g.provisional[provisionalKey(f)]; ok {
			kept = append(kept, f)
		}
	}

	g.flowers = make([]flower.Flower, 0, len(flowers)+len(kept))
	g.seen = make(map[string]struct{}, len(flowers)+len(kept))

	for _, f := range flowers {
		g.add(f)
	}
	for _, f := range kept {
		g.add(f)
	}
}

// Merge inserts a feed event. A flower already present is ignored, and
// a provisional flower matching the event is replaced by the server's
// copy.
func (g *Garden) Merge(f flower.Flower) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.seen[f.ID]; ok {
		return false
	}

	key := provisionalKey(f)
	if localID, ok := g.provisional[key]; ok {
		delete(g.provisional, key)
		g.replace(localID, f)
		return true
	}

	return g.add(f)
}

// AddProvisional records a locally planted flower under a generated ID
// so it shows up immediately, before the feed confirms it.
func (g *Garden) AddProvisional(f flower.Flower) flower.Flower {
	g.mu.Lock()
	defer g.mu.Unlock()

	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	g.provisional[provisionalKey(f)] = f.ID
	g.add(f)
	return f
}

// Flowers returns the garden ordered by creation time.
func (g *Garden) Flowers() []flower.Flower {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]flower.Flower, len(g.flowers))
	copy(out, g.flowers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Len reports how many flowers the garden holds.
func (g *Garden) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.flowers)
}

func (g *Garden) add(f flower.Flower) bool {
	if _, ok := g.seen[f.ID]; ok {
		return false
	}
	g.seen[f.ID] = struct{}{}
	g.flowers = append(g.flowers, f)
	return true
}

func (g *Garden) replace(oldID string, f flower.Flower) {
	delete(g.seen, oldID)
	g.seen[f.ID] = struct{}{}
	for i := range g.flowers {
		if g.flowers[i].ID == oldID {
			g.flowers[i] = f
			return
		}
	}
	g.flowers = append(g.flowers, f)
}

func provisionalKey(f flower.Flower) string {
	return f.Message + "\x00" + f.Author
}
