package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"
)

// DefaultNearbyRadius is the search radius in metres when none is given.
const DefaultNearbyRadius = 10000.0

// ShopQueryService contains the read side of the shop listing
type ShopQueryService struct {
	repo ShopQueryRepository
}

// ShopQueryRepository interface for dependency injection
type ShopQueryRepository interface {
	ListShops(ctx context.Context) ([]models.Shop, error)
	FindNearbyShops(ctx context.Context, lat, lon, radiusMeters float64) ([]models.NearbyShop, error)
}

// NewShopQueryService creates a new shop query service
func NewShopQueryService(repo ShopQueryRepository) *ShopQueryService {
	return &ShopQueryService{repo: repo}
}

// ListShops returns every stored shop.
func (s *ShopQueryService) ListShops(ctx context.Context) ([]models.Shop, error) {
	shops, err := s.repo.ListShops(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list shops: %w", err)
	}
	return shops, nil
}

// NearbyShops finds shops within radiusMeters of the given coordinates,
// nearest first.
func (s *ShopQueryService) NearbyShops(ctx context.Context, lat, lon, radiusMeters float64) ([]models.NearbyShop, error) {
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("%w: latitude %f", ErrInvalidCoordinates, lat)
	}
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: longitude %f", ErrInvalidCoordinates, lon)
	}
	if radiusMeters <= 0 {
		radiusMeters = DefaultNearbyRadius
	}

	shops, err := s.repo.FindNearbyShops(ctx, lat, lon, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find nearby shops: %w", err)
	}

	return shops, nil
}

// AllGenres is the genre filter value that matches every shop.
const AllGenres = "すべて"

// SearchShops lists shops whose name contains keyword and whose genres
// contain genre. Both matches ignore case; empty values match everything.
func (s *ShopQueryService) SearchShops(ctx context.Context, keyword, genre string) ([]models.Shop, error) {
	shops, err := s.ListShops(ctx)
	if err != nil {
		return nil, err
	}

	keyword = strings.ToLower(strings.TrimSpace(keyword))
	genre = strings.ToLower(strings.TrimSpace(genre))
	if genre == AllGenres {
		genre = ""
	}
	if keyword == "" && genre == "" {
		return shops, nil
	}

	matched := []models.Shop{}
	for _, shop := range shops {
		if keyword != "" && !strings.Contains(strings.ToLower(shop.Name), keyword) {
			continue
		}
		if genre != "" && !strings.Contains(strings.ToLower(shop.Genres), genre) {
			continue
		}
		matched = append(matched, shop)
	}
	return matched, nil
}
