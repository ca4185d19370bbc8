package handler

import "github.com/kkpworldkk-arch/furugi-server/internal/models"

// defaultHolidayLabel is shown for shops stored without a holiday.
const defaultHolidayLabel = "年中無休"

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ShopResponse is a shop as served to the map client.
type ShopResponse struct {
	models.Shop
	Genres    []string `json:"genres"`
	ImageURLs []string `json:"imageUrls"`
}

// NearbyShopResponse adds the distance from the query point.
type NearbyShopResponse struct {
	ShopResponse
	DistanceMeters float64 `json:"distanceMeters"`
}

func newShopResponse(s models.Shop) ShopResponse {
	if s.Holiday == "" {
		s.Holiday = defaultHolidayLabel
	}
	return ShopResponse{Shop: s, Genres: s.GenreList(), ImageURLs: []string{}}
}

func newShopResponses(shops []models.Shop) []ShopResponse {
	out := make([]ShopResponse, 0, len(shops))
	for _, s := range shops {
		out = append(out, newShopResponse(s))
	}
	return out
}

func newNearbyShopResponses(shops []models.NearbyShop) []NearbyShopResponse {
	out := make([]NearbyShopResponse, 0, len(shops))
	for _, s := range shops {
		out = append(out, NearbyShopResponse{ShopResponse: newShopResponse(s.Shop), DistanceMeters: s.DistanceMeters})
	}
	return out
}
