package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"
)

// SQLiteRepository stores shops in an embedded SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens a SQLite database at the given path.
func NewSQLiteRepository(dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("repository: open sqlite: %w", err)
	}
	// One writer; batches hold the only connection until they finish.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, fmt.Errorf("repository: sqlite %s: %w", pragma, err)
		}
	}
	return &SQLiteRepository{db: db}, nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS shops (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	name         TEXT NOT NULL,
	address      TEXT NOT NULL DEFAULT '',
	genres       TEXT NOT NULL DEFAULT '',
	rating       REAL NOT NULL DEFAULT 0,
	review_count INTEGER NOT NULL DEFAULT 0,
	latitude     REAL NOT NULL,
	longitude    REAL NOT NULL,
	plus_code    TEXT NOT NULL DEFAULT '',
	homepage_url TEXT NOT NULL DEFAULT '',
	sns_url      TEXT NOT NULL DEFAULT '',
	hours        TEXT NOT NULL DEFAULT '',
	holiday      TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	price_range  TEXT NOT NULL DEFAULT '',
	place_id     TEXT NOT NULL DEFAULT '',
	map_url      TEXT NOT NULL DEFAULT '',
	created_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE (name, address)
);
`

// Migrate creates the shops table if it does not exist.
func (r *SQLiteRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("repository: sqlite migrate: %w", err)
	}
	return nil
}

// Close closes the database.
func (r *SQLiteRepository) Close() {
	r.db.Close() //nolint:errcheck
}

// BeginBatch opens a transaction for one reconciliation batch.
func (r *SQLiteRepository) BeginBatch(ctx context.Context) (Batch, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("repository: sqlite begin batch: %w", err)
	}
	return &SQLiteBatch{tx: tx}, nil
}

// ListShops returns all shops ordered by id.
func (r *SQLiteRepository) ListShops(ctx context.Context) ([]models.Shop, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+shopColumns+` FROM shops ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("repository: sqlite list shops: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	shops := []models.Shop{}
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: sqlite scan shop: %w", err)
		}
		shops = append(shops, shop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: sqlite iterate shops: %w", err)
	}
	return shops, nil
}

// FindNearbyShops filters all shops by great-circle distance. SQLite has
// no spatial index, so the filter runs in memory.
func (r *SQLiteRepository) FindNearbyShops(ctx context.Context, lat, lon, radiusMeters float64) ([]models.NearbyShop, error) {
	shops, err := r.ListShops(ctx)
	if err != nil {
		return nil, err
	}

	nearby := []models.NearbyShop{}
	for _, s := range shops {
		d := haversineMeters(lat, lon, s.Latitude, s.Longitude)
		if d <= radiusMeters {
			nearby = append(nearby, models.NearbyShop{Shop: s, DistanceMeters: d})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceMeters < nearby[j].DistanceMeters
	})
	if len(nearby) > 50 {
		nearby = nearby[:50]
	}
	return nearby, nil
}

// SQLiteBatch is a reconciliation session backed by one transaction.
type SQLiteBatch struct {
	tx   *sql.Tx
	done bool
}

// FindByIdentity returns the shop with the exact (name, address) pair, or
// nil when there is none.
func (b *SQLiteBatch) FindByIdentity(ctx context.Context, name, address string) (*models.Shop, error) {
	row := b.tx.QueryRowContext(ctx,
		`SELECT `+shopColumns+` FROM shops WHERE name = ? AND address = ?`,
		name, address,
	)
	shop, err := scanShop(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: sqlite find shop: %w", err)
	}
	return &shop, nil
}

// Insert adds a new shop and sets its ID.
func (b *SQLiteBatch) Insert(ctx context.Context, shop *models.Shop) (*models.Shop, error) {
	res, err := b.tx.ExecContext(ctx, `
		INSERT INTO shops (
			name, address, genres, rating, review_count, latitude, longitude,
			plus_code, homepage_url, sns_url, hours, holiday, description, price_range, place_id, map_url
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		shop.Name, shop.Address, shop.Genres, shop.Rating, shop.ReviewCount, shop.Latitude, shop.Longitude,
		shop.PlusCode, shop.HomepageURL, shop.SNSURL, shop.Hours, shop.Holiday, shop.Description, shop.PriceRange,
		shop.PlaceID, shop.MapURL,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: sqlite insert shop: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("repository: sqlite insert id: %w", err)
	}
	shop.ID = id
	return shop, nil
}

// Update writes every mutable field of an existing shop. Rating and
// review count are not written.
func (b *SQLiteBatch) Update(ctx context.Context, shop *models.Shop) error {
	res, err := b.tx.ExecContext(ctx, `
		UPDATE shops SET
			genres = ?, latitude = ?, longitude = ?, plus_code = ?, homepage_url = ?, sns_url = ?,
			hours = ?, holiday = ?, description = ?, price_range = ?, place_id = ?, map_url = ?,
			updated_at = datetime('now')
		WHERE id = ?`,
		shop.Genres, shop.Latitude, shop.Longitude, shop.PlusCode, shop.HomepageURL, shop.SNSURL,
		shop.Hours, shop.Holiday, shop.Description, shop.PriceRange, shop.PlaceID, shop.MapURL, shop.ID,
	)
	if err != nil {
		return fmt.Errorf("repository: sqlite update shop %d: %w", shop.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: sqlite rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrShopNotFound, shop.ID)
	}
	return nil
}

// CommitBatch commits the transaction.
func (b *SQLiteBatch) CommitBatch(_ context.Context) error {
	if err := b.tx.Commit(); err != nil {
		return fmt.Errorf("repository: sqlite commit batch: %w", err)
	}
	b.done = true
	return nil
}

// Rollback discards an uncommitted batch.
func (b *SQLiteBatch) Rollback(_ context.Context) error {
	if b.done {
		return nil
	}
	b.done = true
	if err := b.tx.Rollback(); err != nil {
		return fmt.Errorf("repository: sqlite rollback batch: %w", err)
	}
	return nil
}

const earthRadiusMeters = 6371000.0

func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}
