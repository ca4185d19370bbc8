package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"
)

// ShopStore is one write session against shop storage. Insert and Update
// are only made durable by CommitBatch.
type ShopStore interface {
	FindByIdentity(ctx context.Context, name, address string) (*models.Shop, error)
	Insert(ctx context.Context, shop *models.Shop) (*models.Shop, error)
	Update(ctx context.Context, shop *models.Shop) error
	CommitBatch(ctx context.Context) error
}

// CoordinateResolver resolves an address to coordinates.
type CoordinateResolver interface {
	Resolve(ctx context.Context, address string) models.Coordinates
}

// ReconcileService merges incoming shop rows into storage, keyed by
// (name, address).
type ReconcileService struct {
	resolver CoordinateResolver
}

// NewReconcileService creates a new reconcile service
func NewReconcileService(resolver CoordinateResolver) *ReconcileService {
	return &ReconcileService{resolver: resolver}
}

// Import prepares every row and reconciles the batch against store.
func (s *ReconcileService) Import(ctx context.Context, rows []models.RawRow, store ShopStore) (models.ReconcileResult, error) {
	ctx = WithBatchLogger(ctx)
	return s.Reconcile(ctx, s.PrepareRows(ctx, rows), store)
}

// WithBatchLogger tags the context logger with a fresh batch id.
func WithBatchLogger(ctx context.Context) context.Context {
	logger := zerolog.Ctx(ctx).With().Str("batch_id", uuid.NewString()).Logger()
	return logger.WithContext(ctx)
}

// PrepareRows runs Prepare over rows sequentially, in input order.
func (s *ReconcileService) PrepareRows(ctx context.Context, rows []models.RawRow) []models.ShopRecord {
	records := make([]models.ShopRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, s.Prepare(ctx, row))
	}
	return records
}

// Prepare normalizes a row, geocodes it when the row carried no usable
// coordinates and derives its map URL.
func (s *ReconcileService) Prepare(ctx context.Context, row models.RawRow) models.ShopRecord {
	rec := Normalize(row)
	if !rec.HasCoordinates && s.resolver != nil {
		coords := s.resolver.Resolve(ctx, rec.Address)
		rec.Latitude = coords.Latitude
		rec.Longitude = coords.Longitude
	}
	rec.MapURL = MapURL(rec)
	return rec
}

// Reconcile inserts or updates each record in order and commits once at
// the end. Any store error aborts the batch before commit.
func (s *ReconcileService) Reconcile(ctx context.Context, records []models.ShopRecord, store ShopStore) (models.ReconcileResult, error) {
	logger := zerolog.Ctx(ctx)

	var result models.ReconcileResult
	for _, rec := range records {
		existing, err := store.FindByIdentity(ctx, rec.Name, rec.Address)
		if err != nil {
			return models.ReconcileResult{}, fmt.Errorf("service: find shop %q: %w", rec.Name, err)
		}

		if existing != nil {
			ApplyUpdate(existing, rec)
			if err := store.Update(ctx, existing); err != nil {
				return models.ReconcileResult{}, fmt.Errorf("service: update shop %q: %w", rec.Name, err)
			}
			result.Updated++
			logger.Debug().Str("name", rec.Name).Bool("plus_code", rec.PlusCode != "").Msg("shop updated")
			continue
		}

		created, err := store.Insert(ctx, NewShop(rec))
		if err != nil {
			return models.ReconcileResult{}, fmt.Errorf("service: insert shop %q: %w", rec.Name, err)
		}
		result.Created++
		logger.Debug().Str("name", rec.Name).Int64("id", created.ID).Msg("shop created")
	}

	if err := store.CommitBatch(ctx); err != nil {
		return models.ReconcileResult{}, fmt.Errorf("service: commit batch: %w", err)
	}

	logger.Info().
		Int("rows", len(records)).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Msg("reconcile batch committed")
	return result, nil
}

// NewShop builds a fresh entity from a record.
func NewShop(rec models.ShopRecord) *models.Shop {
	return &models.Shop{
		Name:        rec.Name,
		Address:     rec.Address,
		Genres:      rec.Genres.Value,
		Rating:      0,
		ReviewCount: 0,
		Latitude:    rec.Latitude,
		Longitude:   rec.Longitude,
		PlusCode:    rec.PlusCode,
		HomepageURL: rec.HomepageURL.Value,
		SNSURL:      rec.SNSURL.Value,
		Hours:       rec.Hours.Value,
		Holiday:     rec.Holiday.Value,
		Description: rec.Description.Value,
		PriceRange:  rec.PriceRange.Value,
		PlaceID:     rec.PlaceID,
		MapURL:      rec.MapURL,
	}
}

// ApplyUpdate merges rec into an existing entity. Location fields are
// always overwritten; descriptive fields only when the row supplied them.
// Rating and review count are never touched.
func ApplyUpdate(shop *models.Shop, rec models.ShopRecord) {
	shop.Latitude = rec.Latitude
	shop.Longitude = rec.Longitude
	shop.MapURL = rec.MapURL
	shop.PlaceID = rec.PlaceID
	shop.PlusCode = rec.PlusCode

	mergeSupplied(&shop.Genres, rec.Genres)
	mergeSupplied(&shop.Hours, rec.Hours)
	mergeSupplied(&shop.Holiday, rec.Holiday)
	mergeSupplied(&shop.Description, rec.Description)
	mergeSupplied(&shop.PriceRange, rec.PriceRange)
}

func mergeSupplied(dst *string, v models.OptString) {
	if v.Supplied {
		*dst = v.Value
	}
}
