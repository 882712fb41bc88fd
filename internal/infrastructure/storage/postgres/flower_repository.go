package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"cosmicgarden/internal/domain/flower"
)

type FlowerRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewFlowerRepository(pool *pgxpool.Pool, log *slog.Logger) *FlowerRepository {
	return &FlowerRepository{
		pool: pool,
		log:  log.With("component", "flower_repository"),
	}
}

// Create inserts a flower. The store assigns id and created_at.
func (r *FlowerRepository) Create(ctx context.Context, f *flower.Flower) error {
	const query = `
		INSERT INTO flowers (species, visual_type, message, author, x, y,
		                     latitude, longitude, country, city)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	var latitude, longitude *float64
	var country, city *string
	if f.Geo != nil {
		latitude = &f.Geo.Latitude
		longitude = &f.Geo.Longitude
		if f.Geo.Country != "" {
			country = &f.Geo.Country
		}
		if f.Geo.City != "" {
			city = &f.Geo.City
		}
	}

	err := r.pool.QueryRow(ctx, query,
		f.Species, f.Type.String(), f.Message, f.Author, f.X, f.Y,
		latitude, longitude, country, city,
	).Scan(&f.ID, &f.CreatedAt)

	if err != nil {
		r.log.Error("failed to create flower",
			"species", f.Species, "type", f.Type, "error", err)
		return fmt.Errorf("create flower: %w", err)
	}

	return nil
}

// List returns the whole garden, oldest first, so clients hydrate in
// creation order before the live feed takes over.
func (r *FlowerRepository) List(ctx context.Context) ([]flower.Flower, error) {
	const query = `
		SELECT id, species, visual_type, message, author, x, y,
		       latitude, longitude, country, city, created_at
		FROM flowers
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list flowers", "error", err)
		return nil, fmt.Errorf("list flowers: %w", err)
	}
	defer rows.Close()

	return r.scanFlowers(rows)
}

// Positions returns the coordinates of every planted flower.
func (r *FlowerRepository) Positions(ctx context.Context) ([]flower.Position, error) {
	const query = `SELECT x, y FROM flowers`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to load positions", "error", err)
		return nil, fmt.Errorf("load positions: %w", err)
	}
	defer rows.Close()

	var positions []flower.Position
	for rows.Next() {
		var p flower.Position
		if err := rows.Scan(&p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		positions = append(positions, p)
	}

	return positions, rows.Err()
}

// Stats aggregates the garden: totals by visual type, distinct
// countries with geo data, and the most recent planting time.
func (r *FlowerRepository) Stats(ctx context.Context) (flower.Stats, error) {
	const query = `
		SELECT visual_type, COUNT(*) AS count
		FROM flowers
		GROUP BY visual_type`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to get stats", "error", err)
		return flower.Stats{}, fmt.Errorf("get stats: %w", err)
	}
	defer rows.Close()

	stats := flower.Stats{
		ByType: make(map[flower.VisualType]int64),
	}

	for rows.Next() {
		var visualType string
		var count int64
		if err := rows.Scan(&visualType, &count); err != nil {
			return flower.Stats{}, fmt.Errorf("scan stat: %w", err)
		}
		stats.ByType[flower.Normalize(visualType)] += count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return flower.Stats{}, fmt.Errorf("read stats: %w", err)
	}

	const extrasQuery = `
		SELECT COUNT(DISTINCT country) FILTER (WHERE country IS NOT NULL),
		       MAX(created_at)
		FROM flowers`

	var lastPlanted sql.NullTime
	if err := r.pool.QueryRow(ctx, extrasQuery).Scan(&stats.Countries, &lastPlanted); err != nil {
		r.log.Error("failed to get stats extras", "error", err)
		return flower.Stats{}, fmt.Errorf("get stats extras: %w", err)
	}
	if lastPlanted.Valid {
		t := lastPlanted.Time
		stats.LastPlanted = &t
	}

	return stats, nil
}

func (r *FlowerRepository) scanFlowers(rows pgx.Rows) ([]flower.Flower, error) {
	var flowers []flower.Flower

	for rows.Next() {
		f, err := scanFlower(rows)
		if err != nil {
			return nil, err
		}
		flowers = append(flowers, *f)
	}

	return flowers, rows.Err()
}

func scanFlower(row interface {
	Scan(dest ...interface{}) error
}) (*flower.Flower, error) {
	var f flower.Flower
	var visualType string
	var latitude, longitude sql.NullFloat64
	var country, city sql.NullString
	var createdAt time.Time

	err := row.Scan(
		&f.ID, &f.Species, &visualType, &f.Message, &f.Author, &f.X, &f.Y,
		&latitude, &longitude, &country, &city, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, flower.ErrNotFound
		}
		return nil, fmt.Errorf("scan flower: %w", err)
	}

	f.Type = flower.VisualType(visualType)
	f.CreatedAt = createdAt

	if latitude.Valid && longitude.Valid {
		f.Geo = &flower.Geo{
			Latitude:  latitude.Float64,
			Longitude: longitude.Float64,
			Country:   country.String,
			City:      city.String,
		}
	}

	return &f, nil
}
