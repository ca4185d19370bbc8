package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"
)

// GeocodeHandler handles geocoding requests
type GeocodeHandler struct {
	resolver CoordinateResolver
}

// CoordinateResolver interface for dependency injection
type CoordinateResolver interface {
	Resolve(ctx context.Context, address string) models.Coordinates
}

// NewGeocodeHandler creates a new geocode handler
func NewGeocodeHandler(resolver CoordinateResolver) *GeocodeHandler {
	return &GeocodeHandler{resolver: resolver}
}

// Geocode resolves an address to coordinates.
// @Summary Geocode an address
// @Description Resolves a Japanese address through the geocoder fallback chain. Unresolvable addresses return the Tokyo Station fallback.
// @Tags Geocoding
// @Produce json
// @Param q query string true "Address"
// @Success 200 {object} models.Coordinates
// @Failure 400 {object} ErrorResponse
// @Router /api/geocode [get]
func (h *GeocodeHandler) Geocode(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required query parameter 'q'"})
		return
	}

	coords := h.resolver.Resolve(c.Request.Context(), query)
	c.JSON(http.StatusOK, coords)
}
