package client

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"cosmicgarden/internal/domain/flower"
)

// GardenCache is the local flower store. It lets the client render the
// last known garden immediately and keep working while offline.
type GardenCache struct {
	db *sql.DB
}

func NewGardenCache(path string) (*GardenCache, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	cache := &GardenCache{db: db}
	if err := cache.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache tables: %w", err)
	}

	return cache, nil
}

func (c *GardenCache) initTables() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS flowers (
			id TEXT PRIMARY KEY,
			species TEXT NOT NULL,
			visual_type TEXT NOT NULL,
			message TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT 'Anonymous',
			x REAL NOT NULL,
			y REAL NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_flowers_created ON flowers(created_at);
	`)

	return err
}

// SaveFlower upserts a single flower.
func (c *GardenCache) SaveFlower(f flower.Flower) error {
	_, err := c.db.Exec(`
		INSERT INTO flowers (id, species, visual_type, message, author, x, y, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			species = excluded.species,
			visual_type = excluded.visual_type,
			message = excluded.message,
			author = excluded.author,
			x = excluded.x,
			y = excluded.y,
			created_at = excluded.created_at
	`, f.ID, f.Species, f.Type.String(), f.Message, f.Author, f.X, f.Y, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("save flower: %w", err)
	}

	return nil
}

// ReplaceAll swaps the cached garden for a fresh snapshot.
func (c *GardenCache) ReplaceAll(flowers []flower.Flower) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM flowers"); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	for _, f := range flowers {
		_, err := tx.Exec(`
			INSERT INTO flowers (id, species, visual_type, message, author, x, y, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, f.ID, f.Species, f.Type.String(), f.Message, f.Author, f.X, f.Y, f.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert flower: %w", err)
		}
	}

	return tx.Commit()
}

// LoadFlowers returns the cached garden ordered by creation time.
func (c *GardenCache) LoadFlowers() ([]flower.Flower, error) {
	rows, err := c.db.Query(`
		SELECT id, species, visual_type, message, author, x, y, created_at
		FROM flowers
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query flowers: %w", err)
	}
	defer rows.Close()

	var flowers []flower.Flower
	for rows.Next() {
		var f flower.Flower
		var visualType string
		if err := rows.Scan(&f.ID, &f.Species, &visualType, &f.Message, &f.Author, &f.X, &f.Y, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan flower: %w", err)
		}
		f.Type = flower.Normalize(visualType)
		flowers = append(flowers, f)
	}

	return flowers, rows.Err()
}

// sampleMessages seed a fresh cache so the garden never renders empty.
var sampleMessages = []struct {
	message string
	author  string
}{
	{"May everyone find their own light in the stars", "Stargazer"},
	{"Hope the future is as gentle as this evening breeze", "Anonymous"},
	{"To my mother, who taught me to love flowers", "A grateful child"},
	{"Wishing for a world with a little more kindness", "Anonymous"},
	{"Every ending is a seed of something new", "Wanderer"},
}

// SeedIfEmpty plants a handful of sample flowers into an empty cache.
func (c *GardenCache) SeedIfEmpty() error {
	var count int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM flowers").Scan(&count); err != nil {
		return fmt.Errorf("count flowers: %w", err)
	}
	if count > 0 {
		return nil
	}

	placer := flower.NewPlacer()
	var positions []flower.Position

	now := time.Now()
	for i, sample := range sampleMessages {
		species := flower.RandomSpecies()
		pos := placer.Place(positions)
		positions = append(positions, pos)

		f := flower.Flower{
			ID:        fmt.Sprintf("sample-%d", i+1),
			Species:   species,
			Type:      flower.Normalize(species),
			Message:   sample.message,
			Author:    sample.author,
			X:         pos.X,
			Y:         pos.Y,
			CreatedAt: now.Add(time.Duration(i-len(sampleMessages)) * time.Minute),
		}
		if err := c.SaveFlower(f); err != nil {
			return err
		}
	}

	return nil
}

func (c *GardenCache) Close() error {
	return c.db.Close()
}
