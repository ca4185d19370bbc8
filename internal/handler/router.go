package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/kkpworldkk-arch/furugi-server/docs"
)

// NewRouter wires every route. An origin list of exactly "*" allows all
// origins.
func NewRouter(logger zerolog.Logger, origins []string, shops *ShopHandler, geocode *GeocodeHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger), corsMiddleware(origins))

	r.GET("/health", Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.GET("/shops", shops.ListShops)
	api.POST("/shops", shops.CreateShop)
	api.GET("/shops/nearby", shops.NearbyShops)
	api.GET("/geocode", geocode.Geocode)

	return r
}

// Health reports liveness.
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "ngrok-skip-browser-warning"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// requestLogger puts logger on the request context and logs each request
// when it completes.
func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}
