package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"
	"github.com/kkpworldkk-arch/furugi-server/internal/service"
)

// ShopHandler serves the shop listing
type ShopHandler struct {
	service  ShopService
	importer ShopImporter
}

// ShopService interface for dependency injection
type ShopService interface {
	SearchShops(ctx context.Context, keyword, genre string) ([]models.Shop, error)
	NearbyShops(ctx context.Context, lat, lon, radiusMeters float64) ([]models.NearbyShop, error)
}

// ShopImporter reconciles submitted rows in one batch.
type ShopImporter interface {
	ImportRows(ctx context.Context, rows []models.RawRow) (models.ReconcileResult, error)
}

// NewShopHandler creates a new shop handler
func NewShopHandler(svc ShopService, importer ShopImporter) *ShopHandler {
	return &ShopHandler{service: svc, importer: importer}
}

// ListShops returns every shop, optionally filtered.
// @Summary List shops
// @Tags Shops
// @Produce json
// @Param q query string false "Name keyword"
// @Param genre query string false "Genre, すべて for all"
// @Success 200 {array} ShopResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/shops [get]
func (h *ShopHandler) ListShops(c *gin.Context) {
	shops, err := h.service.SearchShops(c.Request.Context(), c.Query("q"), c.Query("genre"))
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("list shops failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, newShopResponses(shops))
}

// NearbyShops handles GET /api/shops/nearby requests
// @Summary Shops near a point
// @Tags Shops
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius query number false "Radius in metres" default(10000)
// @Success 200 {array} NearbyShopResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/shops/nearby [get]
func (h *ShopHandler) NearbyShops(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required query parameters 'lat' and 'lon'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid latitude format"})
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid longitude format"})
		return
	}

	var radius float64
	if radiusStr := c.Query("radius"); radiusStr != "" {
		radius, err = strconv.ParseFloat(radiusStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid radius format"})
			return
		}
	}

	shops, err := h.service.NearbyShops(c.Request.Context(), lat, lon, radius)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCoordinates) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "coordinates out of range"})
			return
		}
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("nearby shops failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, newNearbyShopResponses(shops))
}

// ShopRequest is a shop submitted by a client.
type ShopRequest struct {
	Name        *string  `json:"name"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	PlaceID     *string  `json:"placeId"`
	PlusCode    *string  `json:"plusCode"`
	Genres      Genres   `json:"genres" swaggertype:"array,string"`
	Hours       *string  `json:"hours"`
	Holiday     *string  `json:"holiday"`
	HomepageURL *string  `json:"homepageUrl"`
	SNSURL      *string  `json:"snsUrl"`
	Description *string  `json:"description"`
	PriceRange  *string  `json:"priceRange"`
}

// Genres accepts either a comma separated string or a list of strings.
type Genres struct {
	Value string
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *Genres) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		g.Value, g.Set = strings.Join(list, ","), true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("genres must be a string or a list of strings")
	}
	g.Value, g.Set = s, true
	return nil
}

// RawRow converts the request into an input row. Fields the client left
// out stay absent. A zero or missing coordinate drops both so the address
// is geocoded instead.
func (r ShopRequest) RawRow() models.RawRow {
	row := models.RawRow{}
	put := func(key string, v *string) {
		if v != nil {
			row[key] = *v
		}
	}
	put(service.ColName, r.Name)
	put(service.ColAddress, r.Address)
	put(service.ColPlaceID, r.PlaceID)
	put(service.ColPlusCode, r.PlusCode)
	put(service.ColHours, r.Hours)
	put(service.ColHoliday, r.Holiday)
	put(service.ColHomepageURL, r.HomepageURL)
	put(service.ColSNSURL, r.SNSURL)
	put(service.ColDescription, r.Description)
	put(service.ColPriceRange, r.PriceRange)
	if r.Genres.Set {
		row[service.ColGenres] = r.Genres.Value
	}
	if r.Latitude != nil && r.Longitude != nil && *r.Latitude != 0 && *r.Longitude != 0 {
		row[service.ColLatitude] = strconv.FormatFloat(*r.Latitude, 'f', -1, 64)
		row[service.ColLongitude] = strconv.FormatFloat(*r.Longitude, 'f', -1, 64)
	}
	return row
}

// CreateShop reconciles a submitted shop.
// @Summary Submit a shop
// @Description Creates the shop or updates the existing one with the same name and address.
// @Tags Shops
// @Accept json
// @Produce json
// @Param shop body ShopRequest true "Shop"
// @Success 201 {object} models.ReconcileResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/shops [post]
func (h *ShopHandler) CreateShop(c *gin.Context) {
	var req ShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.importer.ImportRows(c.Request.Context(), []models.RawRow{req.RawRow()})
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("create shop failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, result)
}
