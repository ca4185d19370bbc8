package service

import (
	"context"
	"testing"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockShopQueryRepository is a mock implementation of the ShopQueryRepository interface
type MockShopQueryRepository struct {
	mock.Mock
}

// ListShops implements ShopQueryRepository.
func (m *MockShopQueryRepository) ListShops(ctx context.Context) ([]models.Shop, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Shop), args.Error(1)
}

// FindNearbyShops implements ShopQueryRepository.
func (m *MockShopQueryRepository) FindNearbyShops(ctx context.Context, lat, lon, radius float64) ([]models.NearbyShop, error) {
	args := m.Called(ctx, lat, lon, radius)
	return args.Get(0).([]models.NearbyShop), args.Error(1)
}

func TestShopQueryService_NearbyShops(t *testing.T) {
	jujo := models.NearbyShop{
		Shop: models.Shop{
			ID:        5,
			Name:      "古着83 十条本店",
			Address:   "東京都北区十条仲原1-2-5 赤のれんビル2F",
			Latitude:  35.7616538,
			Longitude: 139.7214768,
		},
		DistanceMeters: 120.5,
	}

	tests := []struct {
		name           string
		lat            float64
		lon            float64
		radius         float64
		expectedRadius float64
		mockShops      []models.NearbyShop
		mockError      error
		expected       []models.NearbyShop
		expectError    bool
		expectCall     bool
	}{
		{
			name:        "latitude out of range",
			lat:         91,
			lon:         139.7,
			expectError: true,
		},
		{
			name:        "longitude out of range",
			lat:         35.7,
			lon:         -181,
			expectError: true,
		},
		{
			name:           "default radius",
			lat:            35.7616,
			lon:            139.7214,
			radius:         0,
			expectedRadius: DefaultNearbyRadius,
			mockShops:      []models.NearbyShop{jujo},
			expected:       []models.NearbyShop{jujo},
			expectCall:     true,
		},
		{
			name:           "explicit radius with no results",
			lat:            26.19,
			lon:            127.66,
			radius:         500,
			expectedRadius: 500,
			mockShops:      []models.NearbyShop{},
			expected:       []models.NearbyShop{},
			expectCall:     true,
		},
		{
			name:           "repository error",
			lat:            35.7616,
			lon:            139.7214,
			radius:         1000,
			expectedRadius: 1000,
			mockShops:      nil,
			mockError:      assert.AnError,
			expectError:    true,
			expectCall:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockShopQueryRepository)
			service := NewShopQueryService(mockRepo)

			if tt.expectCall {
				mockRepo.On("FindNearbyShops", mock.Anything, tt.lat, tt.lon, tt.expectedRadius).Return(tt.mockShops, tt.mockError)
			}

			// Execute
			result, err := service.NearbyShops(context.Background(), tt.lat, tt.lon, tt.radius)

			// Assert
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestShopQueryService_ListShops(t *testing.T) {
	mockRepo := new(MockShopQueryRepository)
	service := NewShopQueryService(mockRepo)

	shops := []models.Shop{{ID: 1, Name: "古着屋JAM 原宿店"}}
	mockRepo.On("ListShops", mock.Anything).Return(shops, nil).Once()
	mockRepo.On("ListShops", mock.Anything).Return([]models.Shop(nil), assert.AnError).Once()

	result, err := service.ListShops(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, shops, result)

	_, err = service.ListShops(context.Background())
	assert.ErrorIs(t, err, assert.AnError)

	mockRepo.AssertExpectations(t)
}

func TestShopQueryService_SearchShops(t *testing.T) {
	jam := models.Shop{ID: 1, Name: "古着屋JAM 原宿店", Genres: "アメカジ,ヴィンテージ"}
	kai := models.Shop{ID: 4, Name: "USED SNEAKERS KAI", Genres: "スニーカー,ストリート"}
	harajuku := models.Shop{ID: 7, Name: "2nd STREET 原宿店", Genres: "ヴィンテージ,ストリート"}
	all := []models.Shop{jam, kai, harajuku}

	tests := []struct {
		name     string
		keyword  string
		genre    string
		expected []models.Shop
	}{
		{name: "no filter", expected: all},
		{name: "all genres", genre: AllGenres, expected: all},
		{name: "keyword ignores case", keyword: "sneakers", expected: []models.Shop{kai}},
		{name: "genre", genre: "ヴィンテージ", expected: []models.Shop{jam, harajuku}},
		{name: "keyword and genre", keyword: "原宿", genre: "ストリート", expected: []models.Shop{harajuku}},
		{name: "no match", keyword: "下北沢", expected: []models.Shop{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockShopQueryRepository)
			mockRepo.On("ListShops", mock.Anything).Return(all, nil)

			result, err := NewShopQueryService(mockRepo).SearchShops(context.Background(), tt.keyword, tt.genre)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}
