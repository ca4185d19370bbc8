package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"
)

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresRepository stores shops in PostgreSQL with PostGIS
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const postgresSchema = `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS shops (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		address VARCHAR(200) NOT NULL DEFAULT '',
		genres VARCHAR(200) NOT NULL DEFAULT '',
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		plus_code VARCHAR(100) NOT NULL DEFAULT '',
		homepage_url VARCHAR(200) NOT NULL DEFAULT '',
		sns_url VARCHAR(200) NOT NULL DEFAULT '',
		hours VARCHAR(100) NOT NULL DEFAULT '',
		holiday VARCHAR(100) NOT NULL DEFAULT '',
		description VARCHAR(1000) NOT NULL DEFAULT '',
		price_range VARCHAR(50) NOT NULL DEFAULT '',
		place_id VARCHAR(100) NOT NULL DEFAULT '',
		map_url TEXT NOT NULL DEFAULT '',
		geom GEOGRAPHY(POINT, 4326),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (name, address)
	);
	CREATE INDEX IF NOT EXISTS shops_geom_idx ON shops USING GIST (geom);
`

// Migrate creates the shops table if it does not exist.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("repository: failed to migrate: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (r *PostgresRepository) Close() {
	r.db.Close()
}

// BeginBatch opens a transaction for one reconciliation batch.
func (r *PostgresRepository) BeginBatch(ctx context.Context) (Batch, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin batch: %w", err)
	}
	return &PostgresBatch{tx: tx}, nil
}

// ListShops returns all shops ordered by id.
func (r *PostgresRepository) ListShops(ctx context.Context) ([]models.Shop, error) {
	rows, err := r.db.Query(ctx, `SELECT `+shopColumns+` FROM shops ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute list query: %w", err)
	}
	defer rows.Close()

	shops := []models.Shop{}
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan shop: %w", err)
		}
		shops = append(shops, shop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return shops, nil
}

// FindNearbyShops performs a spatial query for shops within radiusMeters of the given coordinates
func (r *PostgresRepository) FindNearbyShops(ctx context.Context, lat, lon, radiusMeters float64) ([]models.NearbyShop, error) {
	sql := `
		SELECT ` + shopColumns + `,
			ST_Distance(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography) AS distance
		FROM shops
		WHERE ST_DWithin(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $3)
		ORDER BY distance
		LIMIT 50
	`

	rows, err := r.db.Query(ctx, sql, lat, lon, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute spatial query: %w", err)
	}
	defer rows.Close()

	shops := []models.NearbyShop{}
	for rows.Next() {
		var distance float64
		shop, err := scanShop(rows, &distance)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan shop: %w", err)
		}
		shops = append(shops, models.NearbyShop{Shop: shop, DistanceMeters: distance})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return shops, nil
}

// PostgresBatch is a reconciliation session backed by one transaction.
type PostgresBatch struct {
	tx   pgx.Tx
	done bool
}

// FindByIdentity locks and returns the shop with the exact (name, address)
// pair, or nil when there is none.
func (b *PostgresBatch) FindByIdentity(ctx context.Context, name, address string) (*models.Shop, error) {
	row := b.tx.QueryRow(ctx,
		`SELECT `+shopColumns+` FROM shops WHERE name = $1 AND address = $2 FOR UPDATE`,
		name, address,
	)
	shop, err := scanShop(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to find shop: %w", err)
	}
	return &shop, nil
}

// Insert adds a new shop and sets its ID.
func (b *PostgresBatch) Insert(ctx context.Context, shop *models.Shop) (*models.Shop, error) {
	point, err := pointEWKB(shop.Latitude, shop.Longitude)
	if err != nil {
		return nil, err
	}

	err = b.tx.QueryRow(ctx, `
		INSERT INTO shops (
			name, address, genres, rating, review_count, latitude, longitude,
			plus_code, homepage_url, sns_url, hours, holiday, description, price_range, place_id, map_url, geom
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, ST_GeomFromEWKB($17)::geography)
		RETURNING id`,
		shop.Name, shop.Address, shop.Genres, shop.Rating, shop.ReviewCount, shop.Latitude, shop.Longitude,
		shop.PlusCode, shop.HomepageURL, shop.SNSURL, shop.Hours, shop.Holiday, shop.Description, shop.PriceRange,
		shop.PlaceID, shop.MapURL, point,
	).Scan(&shop.ID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert shop: %w", err)
	}
	return shop, nil
}

// Update writes every mutable field of an existing shop. Rating and
// review count are not written.
func (b *PostgresBatch) Update(ctx context.Context, shop *models.Shop) error {
	point, err := pointEWKB(shop.Latitude, shop.Longitude)
	if err != nil {
		return err
	}

	tag, err := b.tx.Exec(ctx, `
		UPDATE shops SET
			genres = $2, latitude = $3, longitude = $4, plus_code = $5, homepage_url = $6, sns_url = $7,
			hours = $8, holiday = $9, description = $10, price_range = $11, place_id = $12, map_url = $13,
			geom = ST_GeomFromEWKB($14)::geography, updated_at = now()
		WHERE id = $1`,
		shop.ID, shop.Genres, shop.Latitude, shop.Longitude, shop.PlusCode, shop.HomepageURL, shop.SNSURL,
		shop.Hours, shop.Holiday, shop.Description, shop.PriceRange, shop.PlaceID, shop.MapURL, point,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update shop %d: %w", shop.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", ErrShopNotFound, shop.ID)
	}
	return nil
}

// CommitBatch commits the transaction.
func (b *PostgresBatch) CommitBatch(ctx context.Context) error {
	if err := b.tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: failed to commit batch: %w", err)
	}
	b.done = true
	return nil
}

// Rollback discards an uncommitted batch.
func (b *PostgresBatch) Rollback(ctx context.Context) error {
	if b.done {
		return nil
	}
	b.done = true
	if err := b.tx.Rollback(ctx); err != nil {
		return fmt.Errorf("repository: failed to rollback batch: %w", err)
	}
	return nil
}
