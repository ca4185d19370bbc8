package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"
)

// ErrShopNotFound is returned when an update targets a missing row.
var ErrShopNotFound = errors.New("repository: shop not found")

// Batch is a single write session. Writes become visible only after
// CommitBatch; Rollback discards them and is a no-op after a commit.
type Batch interface {
	FindByIdentity(ctx context.Context, name, address string) (*models.Shop, error)
	Insert(ctx context.Context, shop *models.Shop) (*models.Shop, error)
	Update(ctx context.Context, shop *models.Shop) error
	CommitBatch(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Store is a shop storage backend.
type Store interface {
	Migrate(ctx context.Context) error
	BeginBatch(ctx context.Context) (Batch, error)
	ListShops(ctx context.Context) ([]models.Shop, error)
	FindNearbyShops(ctx context.Context, lat, lon, radiusMeters float64) ([]models.NearbyShop, error)
	Close()
}

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the backend named by driver.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case DriverPostgres, "":
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("repository: connect postgres: %w", err)
		}
		return NewPostgresRepository(pool), nil
	case DriverSQLite:
		repo, err := NewSQLiteRepository(dsn)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("repository: unknown driver %q", driver)
	}
}

// shopColumns is the select list shared by every shop query.
const shopColumns = `id, name, address, genres, rating, review_count, latitude, longitude,
	plus_code, homepage_url, sns_url, hours, holiday, description, price_range, place_id, map_url`

type scanner interface {
	Scan(dest ...any) error
}

func scanShop(row scanner, extra ...any) (models.Shop, error) {
	var s models.Shop
	dest := []any{
		&s.ID, &s.Name, &s.Address, &s.Genres, &s.Rating, &s.ReviewCount, &s.Latitude, &s.Longitude,
		&s.PlusCode, &s.HomepageURL, &s.SNSURL, &s.Hours, &s.Holiday, &s.Description, &s.PriceRange, &s.PlaceID, &s.MapURL,
	}
	err := row.Scan(append(dest, extra...)...)
	return s, err
}
