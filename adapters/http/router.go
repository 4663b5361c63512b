package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/khoahotran/namelookup/pkg/logger"
)

type RouterConfig struct {
	// An empty list allows any origin, without credentials.
	AllowedOrigins     []string
	RateLimitPerSecond float64
	RateLimitBurst     int
	// Gatherer backs GET /metrics; the route is not mounted when nil.
	Gatherer prometheus.Gatherer
}

// NewRouter mounts every route and wraps the engine with CORS.
func NewRouter(cfg RouterConfig, lookupHandler *LookupHandler, userHandler *UserHandler, log logger.Logger) http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), ErrorMiddleware(log))

	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api")
	if cfg.RateLimitPerSecond > 0 {
		api.Use(RateLimitMiddleware(NewIPRateLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst)))
	}
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.POST("/getUserByDisplayName", lookupHandler.GetUserByDisplayName)
		api.POST("/users", userHandler.RegisterUser)
	}

	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: len(cfg.AllowedOrigins) > 0,
	}).Handler(router)
}
